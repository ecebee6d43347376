package service

import (
	"context"
	"fmt"

	"alumnihub/internal/model"
	"alumnihub/internal/repository"
)

// DashboardService aggregates listing counts
type DashboardService struct {
	users   repository.IUserRepository
	events  repository.IEventRepository
	jobs    repository.IJobRepository
	surveys repository.ISurveyRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(users repository.IUserRepository, events repository.IEventRepository, jobs repository.IJobRepository, surveys repository.ISurveyRepository) *DashboardService {
	return &DashboardService{users: users, events: events, jobs: jobs, surveys: surveys}
}

// Stats counts events, jobs, surveys, and verified non-admin alumni
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	events, err := s.events.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	jobs, err := s.jobs.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}
	surveys, err := s.surveys.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count surveys: %w", err)
	}
	alumni, err := s.users.CountVerifiedAlumni(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count verified alumni: %w", err)
	}

	return &model.DashboardStats{
		Events:         events,
		Jobs:           jobs,
		Surveys:        surveys,
		VerifiedAlumni: alumni,
	}, nil
}
