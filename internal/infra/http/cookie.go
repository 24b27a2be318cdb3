package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionCookieName = "session"

// The cookie is the only place the token lives client-side: HttpOnly keeps
// page scripts away from it, SameSite=Strict keeps it off cross-site
// requests, and Secure is added when serving production TLS traffic.
func (s *Server) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookieName, value, maxAge, "/", "", s.cfg.Production(), true)
}

// clearSessionCookie overwrites the client cookie with an expired one. The
// token bytes themselves stay valid until natural expiry; see Gate.Logout.
func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", s.cfg.Production(), true)
}
