// Package main runs the mentorship platform HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mentorhub/backend/config"
	"github.com/mentorhub/backend/internal/admin"
	"github.com/mentorhub/backend/internal/auth"
	"github.com/mentorhub/backend/internal/availability"
	"github.com/mentorhub/backend/internal/bookings"
	"github.com/mentorhub/backend/internal/emaillogs"
	"github.com/mentorhub/backend/internal/middleware"
	"github.com/mentorhub/backend/internal/models"
	"github.com/mentorhub/backend/internal/requests"
	"github.com/mentorhub/backend/pkg/database"
	"github.com/mentorhub/backend/pkg/queue"
	"github.com/mentorhub/backend/pkg/redis"
	"github.com/mentorhub/backend/pkg/response"
	"github.com/mentorhub/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()
	jobQueue := queue.NewQueue(rdb.Client, logger)

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			AvatarsBucket:        cfg.AWS.AvatarsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Auth & profiles
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, s3Client, jobQueue, cfg.Email.ResetURLBase, logger)

	// Mentorship requests & matches
	requestRepo := requests.NewRepository(pool)
	requestHandler := requests.NewHandler(requestRepo, logger)

	// Availability
	availabilityRepo := availability.NewRepository(pool)
	availabilityHandler := availability.NewHandler(availabilityRepo, logger)

	// Session bookings
	bookingRepo := bookings.NewRepository(pool)
	bookingHandler := bookings.NewHandler(bookingRepo, logger)

	// Admin oversight
	adminRepo := admin.NewRepository(pool)
	adminHandler := admin.NewHandler(adminRepo, authRepo, requestRepo, bookingRepo, logger)

	emailLogsRepo := emaillogs.NewRepository(pool)
	emailLogsHandler := emaillogs.NewHandler(emailLogsRepo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		// Profile
		api.GET("/me", authHandler.Me)
		api.PATCH("/me", authHandler.UpdateMe)
		api.POST("/me/avatar", authHandler.UploadAvatar)

		// Mentorship requests
		api.POST("/requests", middleware.RequireRole(models.RoleMentee), requestHandler.Send)
		api.GET("/requests/incoming", middleware.RequireRole(models.RoleMentor), requestHandler.Incoming)
		api.GET("/requests/outgoing", middleware.RequireRole(models.RoleMentee), requestHandler.Outgoing)
		api.PATCH("/requests/:id", middleware.RequireRole(models.RoleMentor), requestHandler.Respond)
		api.GET("/matches", middleware.RequireRole(models.RoleMentor, models.RoleMentee), requestHandler.Matches)

		// Availability
		api.PUT("/availability", middleware.RequireRole(models.RoleMentor), availabilityHandler.Set)
		api.GET("/availability", middleware.RequireRole(models.RoleMentor), availabilityHandler.ListOwn)
		api.DELETE("/availability", middleware.RequireRole(models.RoleMentor), availabilityHandler.Clear)
		api.DELETE("/availability/:day", middleware.RequireRole(models.RoleMentor), availabilityHandler.ClearDay)
		api.GET("/mentors/:id/availability", availabilityHandler.ListForMentor)

		// Session bookings
		api.POST("/bookings", middleware.RequireRole(models.RoleMentee), bookingHandler.Book)
		api.GET("/bookings", middleware.RequireRole(models.RoleMentor, models.RoleMentee), bookingHandler.List)
		api.PATCH("/bookings/:id/cancel", middleware.RequireRole(models.RoleMentor, models.RoleMentee), bookingHandler.Cancel)
		api.PATCH("/bookings/:id/complete", middleware.RequireRole(models.RoleMentor), bookingHandler.Complete)

		// Admin oversight (role claim plus satellite row)
		adminGroup := api.Group("/admin")
		adminGroup.Use(middleware.RequireRole(models.RoleAdmin), admin.RequireAdminRow(authRepo))
		{
			adminGroup.GET("/stats", adminHandler.GetStats)
			adminGroup.GET("/users", authHandler.List)
			adminGroup.GET("/matches", adminHandler.ListMatches)
			adminGroup.GET("/sessions", adminHandler.ListSessions)
			adminGroup.GET("/email-logs", emailLogsHandler.List)
			adminGroup.PUT("/users/:id/role", adminHandler.ChangeRole)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
