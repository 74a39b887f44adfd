package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskpilot/internal/models"
	"taskpilot/internal/pdf"
	"taskpilot/internal/repositories"
	"taskpilot/internal/services"
)

type TaskHandler struct {
	service services.TaskService
	users   services.UserService
	export  *pdf.TaskReportGenerator
}

func NewTaskHandler(service services.TaskService, users services.UserService, export *pdf.TaskReportGenerator) *TaskHandler {
	return &TaskHandler{service: service, users: users, export: export}
}

type createTaskRequest struct {
	UserID       int       `json:"user_id" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	ScheduledFor time.Time `json:"scheduledFor" binding:"required"`
	Completed    bool      `json:"completed"`
}

// @Summary      Список задач пользователя
// @Tags         Tasks
// @Produce      json
// @Param        user_id  path  int  true  "ID пользователя"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /tasks/{user_id} [get]
func (h *TaskHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "user_id is required")
		return
	}
	if _, err := h.users.GetUserByID(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("[task][list] user lookup failed id=%d: %v", userID, err)
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	tasks, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[task][list] failed user=%d: %v", userID, err)
		fail(c, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
}

// @Summary      Создание задачи
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "user_id, name and scheduledFor are required")
		return
	}

	if _, err := h.users.GetUserByID(req.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("[task][create] user lookup failed id=%d: %v", req.UserID, err)
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	task := &models.Task{
		UserID:       req.UserID,
		Name:         req.Name,
		ScheduledFor: req.ScheduledFor,
		Completed:    req.Completed,
	}
	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		log.Printf("[task][create] failed user=%d: %v", req.UserID, err)
		fail(c, http.StatusInternalServerError, "failed to create task")
		return
	}
	log.Printf("[task][create][ok] id=%d user=%d name=%q", created.ID, created.UserID, created.Name)
	c.JSON(http.StatusCreated, gin.H{"success": true, "task": created})
}

// @Summary      Частичное обновление задачи
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task_id  path  int  true  "ID задачи"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /tasks/edit/{task_id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid task id")
		return
	}

	var patch models.TaskUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), taskID, &patch)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			fail(c, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("[task][update] failed id=%d: %v", taskID, err)
		fail(c, http.StatusInternalServerError, "failed to update task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "task": updated})
}

// @Summary      Удаление задачи
// @Tags         Tasks
// @Produce      json
// @Param        task_id  path  int  true  "ID задачи"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /tasks/delete/{task_id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			fail(c, http.StatusNotFound, "Task not found")
			return
		}
		log.Printf("[task][delete] failed id=%d: %v", taskID, err)
		fail(c, http.StatusInternalServerError, "failed to delete task")
		return
	}
	ok(c, http.StatusOK, "Task deleted successfully", nil)
}

// @Summary      Экспорт задач пользователя в PDF
// @Tags         Tasks
// @Produce      application/pdf
// @Param        user_id  path  int  true  "ID пользователя"
// @Success      200  {file}  binary
// @Router       /tasks/{user_id}/export [get]
func (h *TaskHandler) Export(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "user_id is required")
		return
	}
	user, err := h.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		fail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	tasks, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[task][export] list failed user=%d: %v", userID, err)
		fail(c, http.StatusInternalServerError, "failed to export tasks")
		return
	}

	buf, err := h.export.Generate(user.Username, tasks)
	if err != nil {
		log.Printf("[task][export] pdf failed user=%d: %v", userID, err)
		fail(c, http.StatusInternalServerError, "failed to export tasks")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="tasks.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf)
}
