package server

import (
	"context"
	"fmt"
	"time"

	"alumnihub/internal/auth"
	"alumnihub/internal/config"
	"alumnihub/internal/handler"
	"alumnihub/internal/repository"
	"alumnihub/internal/service"
	"alumnihub/pkg/storage"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories bundles the persistence layer
type Repositories struct {
	User   repository.IUserRepository
	Event  repository.IEventRepository
	Job    repository.IJobRepository
	Survey repository.ISurveyRepository
}

// Services bundles the business logic layer
type Services struct {
	User      *service.UserService
	Event     *service.EventService
	Job       *service.JobService
	Survey    *service.SurveyService
	Dashboard *service.DashboardService
	Tokens    *auth.TokenService
}

// Handlers bundles the HTTP layer
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Event     *handler.EventHandler
	Job       *handler.JobHandler
	Survey    *handler.SurveyHandler
	Dashboard *handler.DashboardHandler
}

// InitRepositories wires repositories to their collections
func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		User:   repository.NewUserRepository(db),
		Event:  repository.NewEventRepository(db),
		Job:    repository.NewJobRepository(db),
		Survey: repository.NewSurveyRepository(db),
	}
}

// InitServices wires services to repositories. The token service and the
// upload store are built here, once, from configuration.
func InitServices(cfg *config.Config, repos *Repositories) (*Services, error) {
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	store, err := storage.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload store: %w", err)
	}

	return &Services{
		User:      service.NewUserService(cfg, repos.User, tokens, store),
		Event:     service.NewEventService(repos.Event, store),
		Job:       service.NewJobService(repos.Job),
		Survey:    service.NewSurveyService(repos.Survey, store),
		Dashboard: service.NewDashboardService(repos.User, repos.Event, repos.Job, repos.Survey),
		Tokens:    tokens,
	}, nil
}

// InitHandlers wires handlers to services
func InitHandlers(services *Services) *Handlers {
	return &Handlers{
		Auth:      handler.NewAuthHandler(services.User),
		User:      handler.NewUserHandler(services.User),
		Event:     handler.NewEventHandler(services.Event),
		Job:       handler.NewJobHandler(services.Job),
		Survey:    handler.NewSurveyHandler(services.Survey),
		Dashboard: handler.NewDashboardHandler(services.Dashboard),
	}
}

// PopulateInitialData ensures indexes and the bootstrap admin account
func PopulateInitialData(ctx context.Context, repos *Repositories, services *Services) error {
	if err := repos.User.EnsureIndexes(ctx); err != nil {
		return err
	}
	return services.User.Bootstrap(ctx)
}
