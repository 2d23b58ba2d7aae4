package middleware

import (
	"net/http"
	"strings"
	"time"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Cookie names shared by the auth middleware and the session handler.
const (
	SessionCookie = "sid"
	TokenCookie   = "id_token"
)

// IdentityKey is the gin context key holding the resolved *domain.Identity.
const IdentityKey = "identity"

// AuthConfig carries cookie parameters the middleware needs when it creates
// a session during silent refresh.
type AuthConfig struct {
	SecureCookies bool
	SessionTTL    time.Duration
}

// RequireAuth resolves the caller's identity: session cookie first, then a
// silent refresh from the id_token cookie. Any refresh failure is swallowed
// and the request proceeds to the unauthenticated response.
func RequireAuth(sessions ports.SessionService, cfg AuthConfig, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity := resolveIdentity(c, sessions, cfg, logger); identity != nil {
			c.Set(IdentityKey, identity)
			c.Next()
			return
		}

		// Browsers get bounced to the landing page, API clients get JSON.
		if acceptsHTML(c) {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
}

// OptionalAuth resolves the identity when possible but never blocks.
func OptionalAuth(sessions ports.SessionService, cfg AuthConfig, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity := resolveIdentity(c, sessions, cfg, logger); identity != nil {
			c.Set(IdentityKey, identity)
		}
		c.Next()
	}
}

// RequireRoles gates a route to the allowed role set. Must run after
// RequireAuth.
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	names := make([]string, len(allowed))
	for i, r := range allowed {
		names[i] = string(r)
	}

	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !identity.HasRole(allowed...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":          "Access denied",
				"required_roles": names,
				"your_role":      identity.Role,
			})
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity set by the auth middleware, or nil.
func CurrentIdentity(c *gin.Context) *domain.Identity {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}

func resolveIdentity(c *gin.Context, sessions ports.SessionService, cfg AuthConfig, logger *zap.SugaredLogger) *domain.Identity {
	ctx := c.Request.Context()

	if sid, err := c.Cookie(SessionCookie); err == nil && sid != "" {
		if identity, err := sessions.Resolve(ctx, sid); err == nil {
			return identity
		}
	}

	// Silent refresh: the id_token cookie re-authenticates an expired
	// session without a new login round trip.
	idToken, err := c.Cookie(TokenCookie)
	if err != nil || idToken == "" {
		return nil
	}

	sid, identity, err := sessions.Login(ctx, idToken)
	if err != nil {
		logger.Debugw("silent re-authentication failed", "error", err)
		return nil
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sid, int(cfg.SessionTTL.Seconds()), "/", "", cfg.SecureCookies, true)
	return identity
}

func acceptsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
