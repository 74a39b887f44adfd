package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"taskpilot/internal/models"
	"taskpilot/internal/services"
)

func newProtectedRouter(t *testing.T, auth services.AuthService, roles ...models.UserRole) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", AuthMiddleware(auth))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt("user_id"),
			"role":    c.GetString("role"),
		})
	})
	return r
}

func doGet(router *gin.Engine, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	auth := services.NewAuthService("secret", time.Hour, time.Hour)
	r := newProtectedRouter(t, auth)

	w := doGet(r, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	auth := services.NewAuthService("secret", time.Hour, time.Hour)
	r := newProtectedRouter(t, auth)

	w := doGet(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "garbage"})
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	auth := services.NewAuthService("secret", time.Hour, time.Hour)
	refresh, err := auth.MintRefreshToken(&models.User{ID: 7, Role: models.RoleUser})
	require.NoError(t, err)
	r := newProtectedRouter(t, auth)

	// refresh-токен не годится для доступа к защищённым ручкам
	w := doGet(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: refresh})
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsCookie(t *testing.T) {
	auth := services.NewAuthService("secret", time.Hour, time.Hour)
	token, err := auth.MintAccessToken(&models.User{ID: 7, Role: models.RoleUser})
	require.NoError(t, err)
	r := newProtectedRouter(t, auth)

	w := doGet(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":7`)
	require.Contains(t, w.Body.String(), `"role":"user"`)
}

func TestAuthMiddlewareAcceptsBearerFallback(t *testing.T) {
	auth := services.NewAuthService("secret", time.Hour, time.Hour)
	token, err := auth.MintAccessToken(&models.User{ID: 7, Role: models.RoleUser})
	require.NoError(t, err)
	r := newProtectedRouter(t, auth)

	w := doGet(r, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleForbidsNonAdmin(t *testing.T) {
	auth := services.NewAuthService("secret", time.Hour, time.Hour)
	r := newProtectedRouter(t, auth, models.RoleAdmin)

	userToken, err := auth.MintAccessToken(&models.User{ID: 7, Role: models.RoleUser})
	require.NoError(t, err)
	w := doGet(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: userToken})
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := auth.MintAccessToken(&models.User{ID: 8, Role: models.RoleAdmin})
	require.NoError(t, err)
	w = doGet(r, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: adminToken})
	})
	require.Equal(t, http.StatusOK, w.Code)
}
