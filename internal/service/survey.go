package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"alumnihub/internal/apperr"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"
	"alumnihub/pkg/storage"
	"alumnihub/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyService handles survey listing business logic
type SurveyService struct {
	repo  repository.ISurveyRepository
	store storage.Store
}

// NewSurveyService creates a new survey service
func NewSurveyService(repo repository.ISurveyRepository, store storage.Store) *SurveyService {
	return &SurveyService{repo: repo, store: store}
}

// Create stores the optional image and persists the survey
func (s *SurveyService) Create(ctx context.Context, form *model.SurveyForm, image *multipart.FileHeader, createdBy primitive.ObjectID) (*model.Survey, error) {
	if form.SurveyTitle == "" || form.Description == "" || form.SurveyLink == "" {
		return nil, apperr.Validation("survey_title, description and survey_link are required")
	}

	survey := &model.Survey{
		SurveyTitle: form.SurveyTitle,
		Description: form.Description,
		SurveyLink:  form.SurveyLink,
		CreatedBy:   createdBy,
	}

	var stored string
	if image != nil {
		name, err := s.store.Save(image)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperr.ErrUpload, err.Error())
		}
		stored = name
		survey.Image = "/uploads/" + name
	}

	created, err := s.repo.Create(ctx, survey)
	if err != nil {
		if stored != "" {
			s.store.Remove(stored)
		}
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}
	return created, nil
}

// List returns all surveys
func (s *SurveyService) List(ctx context.Context) ([]*model.Survey, error) {
	return s.repo.FindAll(ctx)
}

// Get returns a survey by ID
func (s *SurveyService) Get(ctx context.Context, id string) (*model.Survey, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, apperr.Validation("invalid survey id")
	}
	survey, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, apperr.ErrNotFound
	}
	return survey, nil
}

// Update applies a partial update; empty form fields are left untouched
func (s *SurveyService) Update(ctx context.Context, id string, form *model.SurveyForm, image *multipart.FileHeader) (*model.Survey, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, apperr.Validation("invalid survey id")
	}

	fields := bson.M{}
	if form.SurveyTitle != "" {
		fields["survey_title"] = form.SurveyTitle
	}
	if form.Description != "" {
		fields["description"] = form.Description
	}
	if form.SurveyLink != "" {
		fields["survey_link"] = form.SurveyLink
	}
	if image != nil {
		name, err := s.store.Save(image)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperr.ErrUpload, err.Error())
		}
		fields["image"] = "/uploads/" + name
	}

	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	survey, err := s.repo.Update(ctx, objID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update survey: %w", err)
	}
	if survey == nil {
		return nil, apperr.ErrNotFound
	}
	return survey, nil
}

// Delete removes a survey
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return apperr.Validation("invalid survey id")
	}
	deleted, err := s.repo.Delete(ctx, objID)
	if err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	if !deleted {
		return apperr.ErrNotFound
	}
	return nil
}
