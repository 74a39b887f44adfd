package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"taskpilot/internal/cache"
	"taskpilot/internal/config"
	"taskpilot/internal/handlers"
	"taskpilot/internal/pdf"
	"taskpilot/internal/repositories"
	"taskpilot/internal/routes"
	"taskpilot/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "taskpilot/docs"

	"time"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Redis (эфемерное хранилище OTP) ===
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка закрытия redis: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	otpStore := cache.NewOtpStore(redisClient)

	// === Services ===
	authService := services.NewAuthService(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTTL(),
		cfg.Auth.RefreshTTL(),
	)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	userService := services.NewUserService(userRepo, authService)
	otpService := services.NewOtpService(otpStore, userService, emailService, cfg.Otp.TTL(), cfg.Otp.Digits)
	taskService := services.NewTaskService(taskRepo)

	// Telegram-уведомления (опционально)
	var tgNotifier services.TelegramNotifier
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		tgNotifier, err = services.NewTelegramService(cfg.Telegram.BotToken)
		if err != nil {
			log.Printf("Telegram отключён: %v", err)
			tgNotifier = nil
		}
	}

	// Фоновые напоминания по задачам
	if cfg.Reminders.Enabled {
		reminder := services.NewReminderService(
			taskRepo,
			userRepo,
			emailService,
			tgNotifier,
			time.Duration(cfg.Reminders.IntervalSeconds)*time.Second,
			cfg.Reminders.BatchSize,
		)
		go reminder.Run(context.Background())
	}

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	registerHandler := handlers.NewRegisterHandler(otpService)
	taskHandler := handlers.NewTaskHandler(taskService, userService, pdf.NewTaskReportGenerator())
	userHandler := handlers.NewUserHandler(userService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authService,
		authHandler,
		registerHandler,
		taskHandler,
		userHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

// куки уходят кросс-сайт, поэтому wildcard-origin нельзя:
// отражаем Origin и разрешаем credentials
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
