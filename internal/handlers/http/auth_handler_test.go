package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stockroom/internal/core/services"
	"stockroom/internal/infrastructure/middleware"
	"stockroom/internal/infrastructure/repositories/memory"
	"stockroom/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const authTestSecret = "test-secret"

func mintIDToken(t *testing.T, uid, email string, expiry time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"exp":   time.Now().Add(expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(authTestSecret))
	require.NoError(t, err)
	return signed
}

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	verifier := services.NewJWTVerifier(authTestSecret)
	sessions := services.NewSessionService(
		verifier,
		memory.NewMemoryRoleRepository(),
		memory.NewMemorySessionRepository(),
		time.Hour,
		nil,
		zap.NewNop().Sugar(),
	)
	handler := NewAuthHandler(sessions, time.Hour, time.Hour, true)

	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware(zap.NewNop().Sugar()))
	handler.SetupRoutes(router)
	return router
}

func postSession(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCreateSession_SetsCookies(t *testing.T) {
	router := newAuthTestRouter()
	token := mintIDToken(t, "u1", "u1@example.com", time.Hour)

	w := postSession(router, `{"idToken":"`+token+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Status string `json:"status"`
		Role   string `json:"role"`
		Email  string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "session_created", body.Status)
	assert.Equal(t, "viewer", body.Role)
	assert.Equal(t, "u1@example.com", body.Email)

	cookies := w.Result().Cookies()

	sid := cookieByName(cookies, middleware.SessionCookie)
	require.NotNil(t, sid)
	assert.NotEmpty(t, sid.Value)
	assert.True(t, sid.HttpOnly)
	assert.True(t, sid.Secure)
	assert.Equal(t, http.SameSiteLaxMode, sid.SameSite)
	assert.Equal(t, 3600, sid.MaxAge)

	idToken := cookieByName(cookies, middleware.TokenCookie)
	require.NotNil(t, idToken)
	assert.Equal(t, token, idToken.Value)
	assert.True(t, idToken.HttpOnly)
}

func TestCreateSession_MissingToken(t *testing.T) {
	router := newAuthTestRouter()

	w := postSession(router, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), errors.ErrCodeInvalidInput)
}

func TestCreateSession_InvalidToken(t *testing.T) {
	router := newAuthTestRouter()

	w := postSession(router, `{"idToken":"not-a-jwt"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), errors.ErrCodeInvalidToken)
}

func TestCreateSession_ExpiredToken(t *testing.T) {
	router := newAuthTestRouter()
	token := mintIDToken(t, "u1", "u1@example.com", -time.Minute)

	w := postSession(router, `{"idToken":"`+token+`"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_ClearsCookiesAndRedirects(t *testing.T) {
	router := newAuthTestRouter()
	token := mintIDToken(t, "u1", "u1@example.com", time.Hour)

	w := postSession(router, `{"idToken":"`+token+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	sid := cookieByName(w.Result().Cookies(), middleware.SessionCookie)
	require.NotNil(t, sid)

	w = httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(sid)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cleared := cookieByName(w.Result().Cookies(), middleware.SessionCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
