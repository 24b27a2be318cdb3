package main

import (
	"log"

	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/config"
	httpinfra "github.com/Elliot-Sones/NGAUGE-V2.0/internal/infra/http"
)

func main() {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	srv, err := httpinfra.NewServer(cfg)
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	log.Printf("gate listening on %s (session ttl %s, %d attempts per %s)",
		cfg.HTTPAddr, cfg.SessionTTL(), cfg.RateLimitAttempts, cfg.RateLimitWindow())
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
