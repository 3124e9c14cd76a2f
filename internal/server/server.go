package server

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/giastylez/image-board/backend/internal/auth"
	"github.com/giastylez/image-board/backend/internal/database"
	"github.com/giastylez/image-board/backend/internal/handlers"
	"github.com/giastylez/image-board/backend/internal/middleware"
)

type Server struct {
	db      database.Service
	tokens  *auth.TokenService
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer(db database.Service, tokens *auth.TokenService) *http.Server {
	newServer := &Server{
		db:      db,
		tokens:  tokens,
		handler: handlers.NewHandler(db.GetDB(), tokens),
	}

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	return &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// allowedOrigins reads the comma-separated ALLOWED_ORIGINS env var
func allowedOrigins() []string {
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		return strings.Split(origins, ",")
	}
	return []string{"*"}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// API routes
	api := r.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Welcome to GiaStylez API"})
		})

		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Image routes (public reads)
		api.GET("/images", s.handler.Image.GetImages)
		api.GET("/images/:id", s.handler.Image.GetImage)
		api.GET("/images/:id/comments", s.handler.Comment.GetComments)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.RequireUser(s.db.GetDB(), s.tokens))
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.POST("/images", s.handler.Image.CreateImage)
			protected.DELETE("/images/:id", s.handler.Image.DeleteImage)
			protected.POST("/images/:id/vote", s.handler.Image.VoteImage)
			protected.POST("/images/:id/like", s.handler.Image.LikeImage)

			protected.POST("/images/:id/comments", s.handler.Comment.CreateComment)
			protected.DELETE("/comments/:id", s.handler.Comment.DeleteComment)

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", s.handler.Admin.GetUsers)
				admin.POST("/users/:id/ban", s.handler.Admin.BanUser)
				admin.POST("/users/:id/unban", s.handler.Admin.UnbanUser)
				admin.GET("/stats", s.handler.Admin.GetStats)
			}
		}
	}

	return r
}
