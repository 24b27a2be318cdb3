package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
)

// MinSecretLen is the minimum accepted signing-secret length in bytes.
const MinSecretLen = 32

// LoadSecret resolves the signing secret from configuration. The value is
// decoded as standard base64 when possible, otherwise taken as raw bytes.
// When no secret is configured a random one is generated and held only in
// memory: every restart then invalidates all outstanding sessions, which is
// logged as a warning so operators can opt into a persistent secret.
func LoadSecret(configured string) ([]byte, error) {
	if configured == "" {
		secret := make([]byte, MinSecretLen)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		log.Printf("WARNING: SESSION_SECRET not set, generated an in-memory secret; all sessions will be invalidated on restart")
		return secret, nil
	}

	secret := []byte(configured)
	if decoded, err := base64.StdEncoding.DecodeString(configured); err == nil {
		secret = decoded
	}
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLen)
	}
	return secret, nil
}
