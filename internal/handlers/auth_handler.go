package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"taskpilot/internal/models"
	"taskpilot/internal/repositories"
	"taskpilot/internal/services"
)

const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"
)

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
}

func NewAuthHandler(userService services.UserService, authService services.AuthService) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService}
}

// токены уходят только в httponly secure cookie на весь путь,
// SameSite=None — фронт живёт на другом origin
func setAuthCookie(c *gin.Context, name, value string, maxAge time.Duration) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, value, int(maxAge.Seconds()), "/", "", true, true)
}

func clearAuthCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, "", -1, "/", "", true, true)
}

// @Summary      Вход в систему
// @Description  Проверяет учётные данные и ставит access/refresh cookie
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Данные для входа"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      500    {object}  map[string]interface{}
// @Router       /token [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login] bad request: bind json failed: err=%v", err)
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	email := strings.TrimSpace(req.Email)
	log.Printf("[auth][login] attempt email=%q", email)

	// сначала проверяем существование аккаунта — сообщение различимо
	// от "неверный пароль"; осознанный enumeration trade-off исходной
	// системы, сохранён
	user, err := h.userService.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			log.Printf("[auth][login] user not found email=%q", email)
			fail(c, http.StatusBadRequest, "User with this account does not exist")
			return
		}
		log.Printf("[auth][login] lookup failed email=%q: err=%v", email, err)
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.authService.CheckPassword(user.PasswordHash, req.Password); err != nil {
		log.Printf("[auth][login] password mismatch userID=%d email=%q", user.ID, email)
		fail(c, http.StatusBadRequest, "Invalid Credentials")
		return
	}

	accessToken, err := h.authService.MintAccessToken(user)
	if err != nil {
		log.Printf("[auth][login] sign access token failed userID=%d: err=%v", user.ID, err)
		fail(c, http.StatusInternalServerError, "Failed to generate access token")
		return
	}
	refreshToken, err := h.authService.MintRefreshToken(user)
	if err != nil {
		log.Printf("[auth][login] sign refresh token failed userID=%d: err=%v", user.ID, err)
		fail(c, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	setAuthCookie(c, accessCookieName, accessToken, h.authService.AccessTTL())
	setAuthCookie(c, refreshCookieName, refreshToken, h.authService.RefreshTTL())

	log.Printf("[auth][login] success userID=%d role=%s took=%s",
		user.ID, user.Role, time.Since(start).Truncate(time.Millisecond))

	// у модели PasswordHash помечен json:"-", наружу не уйдёт
	ok(c, http.StatusOK, "user login successfully", gin.H{"userDetails": user})
}

// @Summary      Обновление access-токена
// @Tags         Auth
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /token/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		fail(c, http.StatusBadRequest, "refresh token not found")
		return
	}

	claims, err := h.authService.VerifyRefreshToken(refreshToken)
	if err != nil {
		log.Printf("[auth][refresh] invalid refresh token: %v", err)
		fail(c, http.StatusUnauthorized, "refresh token expired or invalid")
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		log.Printf("[auth][refresh] user lookup failed userID=%d: %v", claims.UserID, err)
		fail(c, http.StatusUnauthorized, "refresh token expired or invalid")
		return
	}

	accessToken, err := h.authService.MintAccessToken(user)
	if err != nil {
		log.Printf("[auth][refresh] sign access token failed userID=%d: %v", user.ID, err)
		fail(c, http.StatusInternalServerError, "Failed to generate access token")
		return
	}

	// refresh не ротируем — только новый access
	setAuthCookie(c, accessCookieName, accessToken, h.authService.AccessTTL())
	log.Printf("[auth][refresh] access token refreshed userID=%d", user.ID)
	ok(c, http.StatusCreated, "Access token refreshed", nil)
}

// @Summary      Выход
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearAuthCookie(c, accessCookieName)
	clearAuthCookie(c, refreshCookieName)
	ok(c, http.StatusOK, "logout successfully", nil)
}
