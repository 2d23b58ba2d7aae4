package http

import (
	"net/http"
	"time"

	"stockroom/internal/core/ports"
	"stockroom/internal/infrastructure/middleware"
	"stockroom/pkg/errors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	sessions       ports.SessionService
	sessionTTL     time.Duration
	tokenCookieTTL time.Duration
	secureCookies  bool
}

func NewAuthHandler(sessions ports.SessionService, sessionTTL, tokenCookieTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		sessions:       sessions,
		sessionTTL:     sessionTTL,
		tokenCookieTTL: tokenCookieTTL,
		secureCookies:  secureCookies,
	}
}

func (h *AuthHandler) SetupRoutes(router *gin.Engine) {
	router.POST("/auth/session", h.CreateSession)
	router.GET("/logout", h.Logout)
	router.POST("/logout", h.Logout)
}

type CreateSessionRequest struct {
	IDToken string `json:"idToken"`
}

// CreateSession is the explicit login flow: the client posts the ID token it
// obtained from the identity provider.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
		c.Error(errors.NewInvalidInputError("idToken required"))
		return
	}

	sid, identity, err := h.sessions.Login(c.Request.Context(), req.IDToken)
	if err != nil {
		c.Error(errors.NewInvalidTokenError("Invalid or expired token").WithCause(err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sid, int(h.sessionTTL.Seconds()), "/", "", h.secureCookies, true)
	// The raw token is kept client-side for silent re-authentication once
	// the server-side session expires.
	c.SetCookie(middleware.TokenCookie, req.IDToken, int(h.tokenCookieTTL.Seconds()), "/", "", h.secureCookies, true)

	c.JSON(http.StatusOK, gin.H{
		"status": "session_created",
		"role":   identity.Role,
		"email":  identity.Email,
	})
}

// Logout clears the session and both cookies, then bounces to the landing
// page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(middleware.SessionCookie); err == nil && sid != "" {
		// A missing session is not an error on logout.
		_ = h.sessions.Logout(c.Request.Context(), sid)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookies, true)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secureCookies, true)

	c.Redirect(http.StatusFound, "/")
}
