package service

import (
	"context"
	"testing"
	"time"

	"alumnihub/internal/apperr"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventForm() *model.EventForm {
	return &model.EventForm{
		EventTitle:  "Alumni Homecoming",
		Description: "Annual gathering",
		DateTime:    time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		Location:    "Main Campus",
	}
}

func TestEventCreate(t *testing.T) {
	store := newFakeStore()
	svc := NewEventService(repository.NewMemoryEventRepository(), store)
	ctx := context.Background()

	created, err := svc.Create(ctx, eventForm(), docFile(t, "poster.png"))
	require.NoError(t, err)
	assert.Equal(t, "Alumni Homecoming", created.EventTitle)
	assert.Contains(t, created.Image, "/uploads/")
	assert.Len(t, store.saved, 1)

	got, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestEventCreate_Validation(t *testing.T) {
	svc := NewEventService(repository.NewMemoryEventRepository(), newFakeStore())
	ctx := context.Background()

	form := eventForm()
	form.Location = ""
	_, err := svc.Create(ctx, form, nil)
	require.ErrorIs(t, err, apperr.ErrValidation)

	form = eventForm()
	form.DateTime = "next tuesday"
	_, err = svc.Create(ctx, form, nil)
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestEventUpdateAndDelete(t *testing.T) {
	svc := NewEventService(repository.NewMemoryEventRepository(), newFakeStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, eventForm(), nil)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID.Hex(), &model.EventForm{Location: "City Hall"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "City Hall", updated.Location)
	assert.Equal(t, created.EventTitle, updated.EventTitle, "untouched fields must survive a partial update")

	require.NoError(t, svc.Delete(ctx, created.ID.Hex()))
	_, err = svc.Get(ctx, created.ID.Hex())
	require.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.Delete(ctx, created.ID.Hex())
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
