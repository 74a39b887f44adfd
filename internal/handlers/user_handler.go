package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskpilot/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// @Summary      Список пользователей (admin)
// @Tags         Users
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	limit := 50
	offset := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	users, err := h.service.ListUsers(limit, offset)
	if err != nil {
		log.Printf("[user][list] failed: %v", err)
		fail(c, http.StatusInternalServerError, "failed to list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

type telegramLinkRequest struct {
	ChatID int64 `json:"chat_id" binding:"required"`
	Enable bool  `json:"enable"`
}

// @Summary      Привязка telegram-чата для напоминаний
// @Tags         Users
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /users/telegram [post]
func (h *UserHandler) LinkTelegram(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	if userID == 0 {
		fail(c, http.StatusUnauthorized, "no user in context")
		return
	}

	var req telegramLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "chat_id is required")
		return
	}

	if err := h.service.LinkTelegram(userID, req.ChatID, req.Enable); err != nil {
		log.Printf("[user][tg-link] failed userID=%d: %v", userID, err)
		fail(c, http.StatusInternalServerError, "failed to link telegram")
		return
	}
	log.Printf("[user][tg-link] userID=%d chatID=%d enable=%v", userID, req.ChatID, req.Enable)
	ok(c, http.StatusOK, "telegram linked", nil)
}
