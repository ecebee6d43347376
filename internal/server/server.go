package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"alumnihub/internal/config"
	"alumnihub/internal/middleware"
	"alumnihub/internal/version"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	mongo  *mongo.Client
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	mongoClient, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	repos := InitRepositories(db)
	services, err := InitServices(cfg, repos)
	if err != nil {
		return nil, err
	}
	handlers := InitHandlers(services)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := PopulateInitialData(ctx, repos, services); err != nil {
		return nil, fmt.Errorf("failed to populate initial data: %w", err)
	}

	router := setupRouter(cfg, handlers, services, repos)

	return &Server{
		cfg:    cfg,
		router: router,
		mongo:  mongoClient,
	}, nil
}

func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Close disconnects MongoDB client
func (s *Server) Close() error {
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run starts the server
func (s *Server) Run() error {
	fmt.Printf("Alumni backend running on %s\n", s.cfg.Server.Address())
	return s.router.Run(s.cfg.Server.Address())
}

func setupRouter(cfg *config.Config, h *Handlers, s *Services, repos *Repositories) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Uploaded images are served directly; supporting documents go
	// through the gated download route instead.
	r.Static("/uploads", cfg.Uploads.Dir)

	userGate := middleware.RequireUser(s.Tokens)
	adminGate := middleware.RequireAdmin(s.Tokens, repos.User)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
	})

	// User routes
	users := api.Group("/users")
	{
		users.POST("/register", h.Auth.Register)
		users.POST("/login", h.Auth.Login)
		users.GET("/verified-alumni", h.User.VerifiedAlumni)

		users.GET("/profile", userGate, h.User.Profile)
		users.PATCH("/profile", userGate, h.User.UpdateProfile)

		users.GET("/all", adminGate, h.User.ListAll)
		users.GET("/pending", adminGate, h.User.ListPending)
		users.PATCH("/verify/:userId", adminGate, h.User.Verify)
		users.DELETE("/:userId", adminGate, h.User.Delete)
		users.GET("/document/:filename", adminGate, h.User.DownloadDocument)
	}

	// Event routes
	events := api.Group("/events")
	{
		events.POST("", h.Event.Create)
		events.GET("", h.Event.List)
		events.GET("/:id", h.Event.Get)
		events.PATCH("/:id", h.Event.Update)
		events.DELETE("/:id", h.Event.Delete)
	}

	// Job routes: reads are public, mutations require a login
	jobs := api.Group("/jobs")
	{
		jobs.GET("", h.Job.List)
		jobs.POST("", userGate, h.Job.Create)
		jobs.PATCH("/:id", userGate, h.Job.Update)
		jobs.DELETE("/:id", userGate, h.Job.Delete)
	}

	// Survey routes require a login
	surveys := api.Group("/surveys", userGate)
	{
		surveys.POST("", h.Survey.Create)
		surveys.GET("", h.Survey.List)
		surveys.GET("/:id", h.Survey.Get)
		surveys.PATCH("/:id", h.Survey.Update)
		surveys.DELETE("/:id", h.Survey.Delete)
	}

	// Dashboard
	api.GET("/dashboard/stats", h.Dashboard.Stats)

	return r
}
