package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggofiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"

	"giveaway-engine/docs"
	"giveaway-engine/internal/common/config"
	"giveaway-engine/internal/common/logger"
	"giveaway-engine/internal/common/middleware"
	entryredis "giveaway-engine/internal/features/entry/repository/redis"
	giveawayhttp "giveaway-engine/internal/features/giveaway/delivery/http"
	giveawayredis "giveaway-engine/internal/features/giveaway/repository/redis"
	giveawayservice "giveaway-engine/internal/features/giveaway/service"
	userredis "giveaway-engine/internal/features/user/repository/redis"
	"giveaway-engine/internal/platform/redis"
)

// @title           Giveaway Engine API
// @version         1.0
// @description     Giveaway lifecycle management with deterministic, auditable winner draws.

// @host      localhost:8080
// @BasePath  /api/v1

// @tag.name giveaways
// @tag.description Giveaway lifecycle - creation, timing updates, deletion

// @tag.name entries
// @tag.description Entries - joining, listing, disqualification, participation queries

// @tag.name draws
// @tag.description Winner selection - seeded draws and single-position rerolls

func main() {
	cfg := config.Load()

	logger.Init("giveaway-engine", cfg.Debug)

	log.Info().
		Bool("debug", cfg.Debug).
		Int("port", cfg.Server.Port).
		Msg("Starting giveaway engine")

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	defer redisClient.Close()

	giveawayRepository := giveawayredis.NewGiveawayRepository(redisClient)
	entryRepository := entryredis.NewEntryRepository(redisClient)
	userDirectory := userredis.NewUserDirectory(redisClient)

	service := giveawayservice.NewGiveawayService(giveawayRepository, entryRepository, userDirectory, log.Logger)

	expiration := giveawayservice.NewExpirationService(
		giveawayRepository,
		time.Duration(cfg.Workers.ExpireIntervalSec)*time.Second,
		log.Logger,
	)
	expiration.Start()
	defer expiration.Stop()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(log.Logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	handler := giveawayhttp.NewGiveawayHandler(service, redisClient, log.Logger)

	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1)

	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginswagger.WrapHandler(swaggofiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "giveaway-engine",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"error":   "redis unavailable",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "giveaway-engine",
		})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
