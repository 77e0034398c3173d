package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/duetcal/duetcal-api/internal/config"
	"github.com/duetcal/duetcal-api/internal/handlers"
	"github.com/duetcal/duetcal-api/internal/logger"
	"github.com/duetcal/duetcal-api/internal/middleware/auth"
	"github.com/duetcal/duetcal-api/internal/middleware/requestlog"
	"github.com/duetcal/duetcal-api/internal/services"
	"github.com/duetcal/duetcal-api/internal/storage"
	"github.com/duetcal/duetcal-api/internal/storage/objects"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	repos      storage.RepositoryContainer
	avatars    *objects.AvatarStore
}

// New creates a new server instance. The avatar store may be nil when object
// storage is not configured.
func New(cfg *config.Config, repos storage.RepositoryContainer, avatars *objects.AvatarStore) *Server {
	return &Server{
		config:  cfg,
		repos:   repos,
		avatars: avatars,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router := s.Router()

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// Router configures the HTTP router with middleware and routes.
func (s *Server) Router() *gin.Engine {
	if s.config.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestlog.New())

	corsConfig := cors.DefaultConfig()
	if s.config.CORS.AllowOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(s.config.CORS.AllowOrigins, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = strings.Split(s.config.CORS.AllowMethods, ",")
	corsConfig.AllowHeaders = strings.Split(s.config.CORS.AllowHeaders, ",")
	router.Use(cors.New(corsConfig))

	userService := services.NewUserService(s.repos)
	partnerService := services.NewPartnerService(s.repos)
	visibilityService := services.NewVisibilityService(s.repos)
	eventService := services.NewEventService(s.repos)
	collabService := services.NewCollabService(s.repos)
	calendarService := services.NewCalendarService(s.repos)

	authHandler := handlers.NewAuthHandler(userService, s.config.JWT.Secret, s.config.JWT.TTL)
	userHandler := handlers.NewUserHandler(userService, s.avatars)
	eventHandler := handlers.NewEventHandler(eventService, visibilityService)
	collabHandler := handlers.NewCollabHandler(collabService, visibilityService)
	partnerHandler := handlers.NewPartnerHandler(partnerService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)

	router.GET("/ping", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := s.repos.Health(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"message": "DuetCal API is running",
			"status":  status,
		})
	})

	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(auth.Middleware(s.config.JWT.Secret))
	{
		users := protected.Group("/users")
		{
			users.GET("/me", userHandler.Me)
			users.POST("/me/avatar", userHandler.UploadAvatar)
		}

		events := protected.Group("/events")
		{
			events.GET("", eventHandler.ListOwn)
			events.GET("/shared", eventHandler.ListShared)
			events.POST("", eventHandler.Create)
			events.GET("/:id", eventHandler.Get)
			events.PATCH("/:id", eventHandler.Update)
			events.DELETE("/:id", eventHandler.Delete)

			events.GET("/:id/participants", eventHandler.ListParticipants)
			events.POST("/:id/participants", eventHandler.AddParticipant)
			events.PATCH("/:id/participants/:userId", eventHandler.SetPermission)
			events.DELETE("/:id/participants/:userId", eventHandler.RemoveParticipant)

			events.GET("/:id/comments", collabHandler.ListComments)
			events.POST("/:id/comments", collabHandler.AddComment)
			events.GET("/:id/reactions", collabHandler.ListReactions)
			events.POST("/:id/reactions", collabHandler.UpsertReaction)
			events.DELETE("/:id/reactions", collabHandler.RemoveReaction)
		}

		partners := protected.Group("/partners")
		{
			partners.GET("", partnerHandler.ListAccepted)
			partners.POST("", partnerHandler.Invite)
			partners.GET("/requests", partnerHandler.ListPending)
			partners.POST("/:id/respond", partnerHandler.Respond)
		}

		calendars := protected.Group("/calendars")
		{
			calendars.GET("", calendarHandler.List)
			calendars.POST("", calendarHandler.Add)
		}
	}

	return router
}
