package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"alumnihub/internal/apperr"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"
	"alumnihub/pkg/storage"
	"alumnihub/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
)

// EventService handles event listing business logic
type EventService struct {
	repo  repository.IEventRepository
	store storage.Store
}

// NewEventService creates a new event service
func NewEventService(repo repository.IEventRepository, store storage.Store) *EventService {
	return &EventService{repo: repo, store: store}
}

// Create stores the optional poster image and persists the event
func (s *EventService) Create(ctx context.Context, form *model.EventForm, image *multipart.FileHeader) (*model.Event, error) {
	if form.EventTitle == "" || form.Description == "" || form.DateTime == "" || form.Location == "" {
		return nil, apperr.Validation("event_title, description, dateTime and location are required")
	}

	when, err := time.Parse(time.RFC3339, form.DateTime)
	if err != nil {
		return nil, apperr.Validation("dateTime must be RFC 3339")
	}

	event := &model.Event{
		EventTitle:  form.EventTitle,
		Description: form.Description,
		DateTime:    when,
		Location:    form.Location,
	}

	var stored string
	if image != nil {
		name, err := s.store.Save(image)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperr.ErrUpload, err.Error())
		}
		stored = name
		event.Image = "/uploads/" + name
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		if stored != "" {
			s.store.Remove(stored)
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

// List returns all events
func (s *EventService) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.FindAll(ctx)
}

// Get returns an event by ID
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, apperr.Validation("invalid event id")
	}
	event, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperr.ErrNotFound
	}
	return event, nil
}

// Update applies a partial update; empty form fields are left untouched
func (s *EventService) Update(ctx context.Context, id string, form *model.EventForm, image *multipart.FileHeader) (*model.Event, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, apperr.Validation("invalid event id")
	}

	fields := bson.M{}
	if form.EventTitle != "" {
		fields["event_title"] = form.EventTitle
	}
	if form.Description != "" {
		fields["description"] = form.Description
	}
	if form.DateTime != "" {
		when, err := time.Parse(time.RFC3339, form.DateTime)
		if err != nil {
			return nil, apperr.Validation("dateTime must be RFC 3339")
		}
		fields["dateTime"] = when
	}
	if form.Location != "" {
		fields["location"] = form.Location
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

	event, err := s.repo.Update(ctx, objID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if event == nil {
		return nil, apperr.ErrNotFound
	}
	return event, nil
}

// Delete removes an event
func (s *EventService) Delete(ctx context.Context, id string) error {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return apperr.Validation("invalid event id")
	}
	deleted, err := s.repo.Delete(ctx, objID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !deleted {
		return apperr.ErrNotFound
	}
	return nil
}
