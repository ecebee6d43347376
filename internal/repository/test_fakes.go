package repository

// In-memory repository fakes shared by the service, middleware, and
// server tests. Not used by the runtime wiring.

import (
	"context"
	"strings"
	"sync"
	"time"

	"alumnihub/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// duplicateKeyErr mimics the mongo server's unique index violation so
// mongo.IsDuplicateKeyError recognizes it.
var duplicateKeyErr = mongo.WriteException{
	WriteErrors: []mongo.WriteError{{Code: 11000, Message: "duplicate key error"}},
}

// MemoryUserRepository is an in-memory IUserRepository with the same
// matching semantics as the mongo implementation.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User

	// CreateErr, when set, is returned by Create after validation.
	CreateErr error
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[primitive.ObjectID]*model.User)}
}

func copyUser(u *model.User) *model.User {
	c := *u
	return &c
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, duplicateKeyErr
		}
	}
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	r.users[user.ID] = copyUser(user)
	return copyUser(user), nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := []*model.User{}
	for _, u := range r.users {
		users = append(users, copyUser(u))
	}
	return users, nil
}

func (r *MemoryUserRepository) FindPending(ctx context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := []*model.User{}
	for _, u := range r.users {
		if u.Pending() {
			users = append(users, copyUser(u))
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) FindVerifiedAlumni(ctx context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := []*model.User{}
	for _, u := range r.users {
		if u.IsVerified && !u.IsAdmin {
			users = append(users, copyUser(u))
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) Approve(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || !u.Pending() {
		return nil, nil
	}
	u.Status = model.StatusApproved
	u.IsVerified = true
	return copyUser(u), nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *MemoryUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	for key, value := range fields {
		s, _ := value.(string)
		switch key {
		case "first_name":
			u.FirstName = s
		case "middle_name":
			u.MiddleName = s
		case "last_name":
			u.LastName = s
		case "department":
			u.Department = s
		case "batch":
			u.Batch = s
		case "linkedin_profile":
			u.LinkedinProfile = s
		case "profile_image":
			u.ProfileImage = s
		}
	}
	return copyUser(u), nil
}

func (r *MemoryUserRepository) CountAdmins(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, u := range r.users {
		if u.IsAdmin {
			count++
		}
	}
	return count, nil
}

func (r *MemoryUserRepository) CountVerifiedAlumni(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, u := range r.users {
		if u.IsVerified && !u.IsAdmin {
			count++
		}
	}
	return count, nil
}

func (r *MemoryUserRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

// MemoryEventRepository is an in-memory IEventRepository.
type MemoryEventRepository struct {
	mu     sync.Mutex
	events map[primitive.ObjectID]*model.Event
}

func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{events: make(map[primitive.ObjectID]*model.Event)}
}

func (r *MemoryEventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = primitive.NewObjectID()
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	c := *event
	r.events[event.ID] = &c
	return event, nil
}

func (r *MemoryEventRepository) FindAll(ctx context.Context) ([]*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := []*model.Event{}
	for _, e := range r.events {
		c := *e
		events = append(events, &c)
	}
	return events, nil
}

func (r *MemoryEventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.events[id]; ok {
		c := *e
		return &c, nil
	}
	return nil, nil
}

func (r *MemoryEventRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	for key, value := range fields {
		switch key {
		case "event_title":
			e.EventTitle, _ = value.(string)
		case "description":
			e.Description, _ = value.(string)
		case "location":
			e.Location, _ = value.(string)
		case "image":
			e.Image, _ = value.(string)
		case "dateTime":
			if t, ok := value.(time.Time); ok {
				e.DateTime = t
			}
		case "updatedAt":
			if t, ok := value.(time.Time); ok {
				e.UpdatedAt = t
			}
		}
	}
	c := *e
	return &c, nil
}

func (r *MemoryEventRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return false, nil
	}
	delete(r.events, id)
	return true, nil
}

func (r *MemoryEventRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.events)), nil
}

// MemoryJobRepository is an in-memory IJobRepository.
type MemoryJobRepository struct {
	mu   sync.Mutex
	jobs map[primitive.ObjectID]*model.Job
}

func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{jobs: make(map[primitive.ObjectID]*model.Job)}
}

func (r *MemoryJobRepository) Create(ctx context.Context, job *model.Job) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job.ID = primitive.NewObjectID()
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	c := *job
	r.jobs[job.ID] = &c
	return job, nil
}

func (r *MemoryJobRepository) FindAll(ctx context.Context) ([]*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	jobs := []*model.Job{}
	for _, j := range r.jobs {
		c := *j
		jobs = append(jobs, &c)
	}
	return jobs, nil
}

func (r *MemoryJobRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	for key, value := range fields {
		switch key {
		case "title":
			j.Title, _ = value.(string)
		case "company_name":
			j.CompanyName, _ = value.(string)
		case "description":
			j.Description, _ = value.(string)
		case "location":
			j.Location, _ = value.(string)
		case "deadline":
			if t, ok := value.(time.Time); ok {
				j.Deadline = t
			}
		case "updatedAt":
			if t, ok := value.(time.Time); ok {
				j.UpdatedAt = t
			}
		}
	}
	c := *j
	return &c, nil
}

func (r *MemoryJobRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return false, nil
	}
	delete(r.jobs, id)
	return true, nil
}

func (r *MemoryJobRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.jobs)), nil
}

// MemorySurveyRepository is an in-memory ISurveyRepository.
type MemorySurveyRepository struct {
	mu      sync.Mutex
	surveys map[primitive.ObjectID]*model.Survey
}

func NewMemorySurveyRepository() *MemorySurveyRepository {
	return &MemorySurveyRepository{surveys: make(map[primitive.ObjectID]*model.Survey)}
}

func (r *MemorySurveyRepository) Create(ctx context.Context, survey *model.Survey) (*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	survey.ID = primitive.NewObjectID()
	now := time.Now()
	survey.CreatedAt = now
	survey.UpdatedAt = now
	c := *survey
	r.surveys[survey.ID] = &c
	return survey, nil
}

func (r *MemorySurveyRepository) FindAll(ctx context.Context) ([]*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	surveys := []*model.Survey{}
	for _, s := range r.surveys {
		c := *s
		surveys = append(surveys, &c)
	}
	return surveys, nil
}

func (r *MemorySurveyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.surveys[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}

func (r *MemorySurveyRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	for key, value := range fields {
		switch key {
		case "survey_title":
			s.SurveyTitle, _ = value.(string)
		case "description":
			s.Description, _ = value.(string)
		case "survey_link":
			s.SurveyLink, _ = value.(string)
		case "image":
			s.Image, _ = value.(string)
		case "updatedAt":
			if t, ok := value.(time.Time); ok {
				s.UpdatedAt = t
			}
		}
	}
	c := *s
	return &c, nil
}

func (r *MemorySurveyRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.surveys[id]; !ok {
		return false, nil
	}
	delete(r.surveys, id)
	return true, nil
}

func (r *MemorySurveyRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.surveys)), nil
}
