package service

import (
	"context"
	"fmt"

	"alumnihub/internal/apperr"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"
	"alumnihub/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
)

// JobService handles job board business logic
type JobService struct {
	repo repository.IJobRepository
}

// NewJobService creates a new job service
func NewJobService(repo repository.IJobRepository) *JobService {
	return &JobService{repo: repo}
}

// Create persists a new job posting
func (s *JobService) Create(ctx context.Context, form *model.JobForm) (*model.Job, error) {
	if form.Title == "" || form.CompanyName == "" || form.Description == "" || form.Location == "" || form.Deadline == nil {
		return nil, apperr.Validation("title, company_name, description, location and deadline are required")
	}

	job := &model.Job{
		Title:       form.Title,
		CompanyName: form.CompanyName,
		Description: form.Description,
		Location:    form.Location,
		Deadline:    *form.Deadline,
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return created, nil
}

// List returns all jobs
func (s *JobService) List(ctx context.Context) ([]*model.Job, error) {
	return s.repo.FindAll(ctx)
}

// Update applies a partial update; zero form fields are left untouched
func (s *JobService) Update(ctx context.Context, id string, form *model.JobForm) (*model.Job, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, apperr.Validation("invalid job id")
	}

	fields := bson.M{}
	if form.Title != "" {
		fields["title"] = form.Title
	}
	if form.CompanyName != "" {
		fields["company_name"] = form.CompanyName
	}
	if form.Description != "" {
		fields["description"] = form.Description
	}
	if form.Location != "" {
		fields["location"] = form.Location
	}
	if form.Deadline != nil {
		fields["deadline"] = *form.Deadline
	}

	if len(fields) == 0 {
		return nil, apperr.Validation("no fields to update")
	}

	job, err := s.repo.Update(ctx, objID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	if job == nil {
		return nil, apperr.ErrNotFound
	}
	return job, nil
}

// Delete removes a job posting
func (s *JobService) Delete(ctx context.Context, id string) error {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return apperr.Validation("invalid job id")
	}
	deleted, err := s.repo.Delete(ctx, objID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if !deleted {
		return apperr.ErrNotFound
	}
	return nil
}
