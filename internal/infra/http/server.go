package http

import (
	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/config"
	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/domain"
	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/infra/ratelimit"
	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/infra/token"
	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg  config.Config
	r    *gin.Engine
	gate *usecase.Gate
}

// NewServer wires the gate from configuration: signing secret, token codec,
// rate limiter and orchestration. The in-process limiter is the default; the
// redis limiter is used only when REDIS_ADDR is explicitly set.
func NewServer(cfg config.Config) (*Server, error) {
	secret, err := token.LoadSecret(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}
	authenticator := token.NewAuthenticator(secret, nil)

	var limiter domain.RateLimiter
	if cfg.RedisAddr != "" {
		limiter, err = ratelimit.NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, nil)
		if err != nil {
			return nil, err
		}
	} else {
		limiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{
			MaxKeys: cfg.RateLimitMaxKeys,
		})
	}

	gate, err := usecase.NewGate(usecase.GateConfig{
		Password: cfg.DashboardPassword,
		Limiter:  limiter,
		Issuer:   authenticator,
		Verifier: authenticator,
		TTL:      cfg.SessionTTL(),
		Attempts: cfg.RateLimitAttempts,
		Window:   cfg.RateLimitWindow(),
	})
	if err != nil {
		return nil, err
	}

	return NewServerWithDeps(cfg, gate), nil
}

// NewServerWithDeps accepts a pre-built gate; tests use it to inject fixed
// clocks and known secrets.
func NewServerWithDeps(cfg config.Config, gate *usecase.Gate) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{cfg: cfg, r: r, gate: gate}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := s.r.Group("/auth")
	{
		auth.POST("/verify", s.handleVerify)
		auth.GET("/status", s.handleStatus)
		auth.POST("/logout", s.handleLogout)
	}
}

func (s *Server) Run() error {
	return s.r.Run(s.cfg.HTTPAddr)
}
