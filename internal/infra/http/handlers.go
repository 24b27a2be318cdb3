package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/domain"

	"github.com/gin-gonic/gin"
)

type verifyRequest struct {
	Password string `json:"password"`
}

type verifySuccessResponse struct {
	Success   bool  `json:"success"`
	ExpiresIn int64 `json:"expiresIn"` // milliseconds
}

type verifyRejectedResponse struct {
	Success           bool `json:"success"`
	RemainingAttempts int  `json:"remainingAttempts"`
}

type rateLimitedResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RetryAfter int64  `json:"retryAfter"` // seconds
}

type statusResponse struct {
	Authenticated bool   `json:"authenticated"`
	ExpiresAt     string `json:"expiresAt,omitempty"`
	RemainingTime int64  `json:"remainingTime,omitempty"` // milliseconds
	Reason        string `json:"reason,omitempty"`
}

type logoutResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleVerify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		writeError(c, fmt.Errorf("%w: password is required", domain.ErrValidationFailed))
		return
	}

	result, err := s.gate.VerifyPassword(c.Request.Context(), req.Password, c.ClientIP())
	writeRateLimitHeaders(c, result.Decision)
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		retryAfter := int64(result.RetryAfter.Seconds())
		c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
		c.JSON(http.StatusTooManyRequests, rateLimitedResponse{
			Message:    "too many attempts, try again later",
			RetryAfter: retryAfter,
		})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, verifyRejectedResponse{
			RemainingAttempts: result.RemainingAttempts,
		})
	case err != nil:
		writeError(c, err)
	default:
		s.setSessionCookie(c, result.Token, int(result.ExpiresIn.Seconds()))
		c.JSON(http.StatusOK, verifySuccessResponse{
			Success:   true,
			ExpiresIn: result.ExpiresIn.Milliseconds(),
		})
	}
}

// handleStatus always answers 200; an unauthenticated session is a normal
// outcome the dashboard redirects on, not an error.
func (s *Server) handleStatus(c *gin.Context) {
	tokenValue, err := c.Cookie(sessionCookieName)
	if err != nil {
		tokenValue = ""
	}

	status := s.gate.Status(tokenValue)
	if !status.Authenticated {
		c.JSON(http.StatusOK, statusResponse{Reason: string(status.Reason)})
		return
	}
	c.JSON(http.StatusOK, statusResponse{
		Authenticated: true,
		ExpiresAt:     status.ExpiresAt.UTC().Format(time.RFC3339),
		RemainingTime: status.Remaining.Milliseconds(),
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	s.gate.Logout()
	s.clearSessionCookie(c)
	c.JSON(http.StatusOK, logoutResponse{Success: true})
}

func writeRateLimitHeaders(c *gin.Context, decision domain.RateLimitDecision) {
	if decision.Limit <= 0 {
		return
	}
	c.Header("RateLimit-Limit", strconv.Itoa(decision.Limit))
	c.Header("RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	if !decision.ResetAt.IsZero() {
		c.Header("RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
	}
}

// writeError maps domain errors onto HTTP status and stable error codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidationFailed):
		writeErrorCode(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	default:
		writeErrorCode(c, http.StatusInternalServerError, "INTERNAL", "verification failed")
	}
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{
		Code:    code,
		Message: message,
	})
}
