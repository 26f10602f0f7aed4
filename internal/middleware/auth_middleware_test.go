package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lfarias/sisacad/internal/db"
	"github.com/lfarias/sisacad/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key-for-middleware",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "sisacad-test",
	})
}

func setupRouter(jwtService *auth.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	m := NewAuthMiddleware(jwtService)

	handlers := []gin.HandlerFunc{m.JWTAuth()}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := CurrentUserID(c)
		identity, ok := db.IdentityFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"userID":      userID,
			"hasIdentity": ok,
			"identityID":  identity.UserID,
		})
	})

	router.GET("/protected", handlers...)
	return router
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := setupRouter(newTestJWTService())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	router := setupRouter(newTestJWTService())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidTokenBindsIdentity(t *testing.T) {
	jwtService := newTestJWTService()
	router := setupRouter(jwtService)

	accessToken, _, _, _, err := jwtService.GenerateTokenPair(42, "a@b.com", []string{"reader"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":42`)
	assert.Contains(t, w.Body.String(), `"hasIdentity":true`)
	assert.Contains(t, w.Body.String(), `"identityID":42`)
}

func TestRequireRoleHint(t *testing.T) {
	jwtService := newTestJWTService()
	m := NewAuthMiddleware(jwtService)

	tests := []struct {
		name       string
		roles      []string
		wantStatus int
	}{
		{"admin passes", []string{"admin"}, http.StatusOK},
		{"reader is rejected", []string{"reader"}, http.StatusForbidden},
		{"no roles rejected", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(jwtService, m.RequireRoleHint("admin"))

			accessToken, _, _, _, err := jwtService.GenerateTokenPair(1, "a@b.com", tt.roles)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+accessToken)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
