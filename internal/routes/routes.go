package routes

import (
	"github.com/gin-gonic/gin"

	"taskpilot/internal/handlers"
	"taskpilot/internal/middleware"
	"taskpilot/internal/models"
	"taskpilot/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authService services.AuthService,
	authHandler *handlers.AuthHandler,
	registerHandler *handlers.RegisterHandler,
	taskHandler *handlers.TaskHandler,
	userHandler *handlers.UserHandler,
) *gin.Engine {

	// ---- public
	r.POST("/token", authHandler.Login)
	r.POST("/token/refresh", authHandler.RefreshToken)
	r.POST("/register", registerHandler.Register)
	r.POST("/resendotp", registerHandler.ResendOtp)
	r.POST("/verifyotp", registerHandler.VerifyOtp)

	// ---- protected
	auth := r.Group("/", middleware.AuthMiddleware(authService))
	{
		auth.POST("/logout", authHandler.Logout)

		tasks := auth.Group("/tasks")
		{
			tasks.POST("", taskHandler.Create)
			tasks.GET("/:user_id", taskHandler.ListByUser)
			tasks.GET("/:user_id/export", taskHandler.Export)
			tasks.PATCH("/edit/:task_id", taskHandler.Update)
			tasks.DELETE("/delete/:task_id", taskHandler.Delete)
		}

		auth.POST("/users/telegram", userHandler.LinkTelegram)

		admin := auth.Group("/users", middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("", userHandler.ListUsers)
		}
	}

	return r
}
