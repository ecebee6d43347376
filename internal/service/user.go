package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"alumnihub/internal/apperr"
	"alumnihub/internal/auth"
	"alumnihub/internal/config"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"
	"alumnihub/pkg/storage"
	"alumnihub/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserService owns registration, login, the verification state machine,
// profile updates, and the bootstrap admin.
type UserService struct {
	repo   repository.IUserRepository
	cfg    *config.Config
	tokens *auth.TokenService
	store  storage.Store
}

// NewUserService creates a new user service
func NewUserService(cfg *config.Config, repo repository.IUserRepository, tokens *auth.TokenService, store storage.Store) *UserService {
	return &UserService{repo: repo, cfg: cfg, tokens: tokens, store: store}
}

// Register creates a pending account. The supporting document is stored
// first; if the insert then fails the stored file is removed so no
// orphaned upload is left behind.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest, doc *multipart.FileHeader) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if err := util.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrValidation, err.Error())
	}
	if req.Department == "" || !model.ValidDepartment(req.Department) {
		return nil, apperr.Validation("department must be one of %s", strings.Join(model.Departments, ", "))
	}
	if doc == nil {
		return nil, apperr.Validation("a supporting document is required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, apperr.ErrDuplicateEmail
	}

	docName, err := s.store.Save(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrUpload, err.Error())
	}

	hash, err := util.HashPassword(req.Password, s.cfg.Auth.BcryptCost)
	if err != nil {
		s.removeStored(docName)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FirstName:       strings.TrimSpace(req.FirstName),
		MiddleName:      strings.TrimSpace(req.MiddleName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           email,
		Password:        hash,
		Department:      req.Department,
		Batch:           req.Batch,
		LinkedinProfile: req.LinkedinProfile,
		IsAdmin:         false,
		IsVerified:      false,
		Status:          model.StatusPending,
		TempDocument:    docName,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// Roll back the stored document so a failed insert does not
		// leak storage.
		s.removeStored(docName)
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// Login validates credentials and issues a token. A pending account gets
// ErrPendingApproval before the password is even checked, so a waiting
// user is never mistaken for a typo'd password.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	normalized := strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", nil, apperr.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return "", nil, apperr.ErrPendingApproval
	}

	if !util.CheckPassword(password, user.Password) {
		return "", nil, apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// Verify applies an admin verification decision. Approve transitions
// pending -> approved atomically; reject deletes the record, which is the
// terminal form of rejection.
func (s *UserService) Verify(ctx context.Context, userID string, approve bool) (*model.User, error) {
	id, err := util.ParseObjectID(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user id")
	}

	if approve {
		user, err := s.repo.Approve(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to approve user: %w", err)
		}
		if user != nil {
			return user, nil
		}
		// Nothing matched the pending filter: either the record is
		// gone or it already left the pending state.
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		if existing == nil {
			return nil, apperr.ErrNotFound
		}
		return nil, apperr.ErrNotPending
	}

	return nil, s.Reject(ctx, userID)
}

// Reject deletes a user record and best-effort removes its supporting
// document so rejected uploads do not accumulate.
func (s *UserService) Reject(ctx context.Context, userID string) error {
	id, err := util.ParseObjectID(userID)
	if err != nil {
		return apperr.Validation("invalid user id")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return apperr.ErrNotFound
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return apperr.ErrNotFound
	}

	if user.TempDocument != "" {
		s.removeStored(user.TempDocument)
	}
	return nil
}

// Profile returns a user's own record
func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	id, err := util.ParseObjectID(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user id")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperr.ErrNotFound
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's own record.
// Verification state is untouchable from here.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest, image *multipart.FileHeader) (*model.User, error) {
	id, err := util.ParseObjectID(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user id")
	}

	fields := bson.M{}
	if req.FirstName != "" {
		fields["first_name"] = strings.TrimSpace(req.FirstName)
	}
	if req.MiddleName != "" {
		fields["middle_name"] = strings.TrimSpace(req.MiddleName)
	}
	if req.LastName != "" {
		fields["last_name"] = strings.TrimSpace(req.LastName)
	}
	if req.Department != "" {
		if !model.ValidDepartment(req.Department) {
			return nil, apperr.Validation("department must be one of %s", strings.Join(model.Departments, ", "))
		}
		fields["department"] = req.Department
	}
	if req.Batch != "" {
		fields["batch"] = req.Batch
	}
	if req.LinkedinProfile != "" {
		fields["linkedin_profile"] = req.LinkedinProfile
	}

	if image != nil {
		name, err := s.store.Save(image)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperr.ErrUpload, err.Error())
		}
		fields["profile_image"] = "/uploads/" + name
	}

	if len(fields) == 0 {
		return s.Profile(ctx, userID)
	}

	user, err := s.repo.UpdateProfile(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if user == nil {
		return nil, apperr.ErrNotFound
	}
	return user, nil
}

// ListAll returns every account, password excluded by the projection DTO
func (s *UserService) ListAll(ctx context.Context) ([]*model.User, error) {
	return s.repo.FindAll(ctx)
}

// ListPending returns accounts awaiting review, including legacy
// boolean-only records.
func (s *UserService) ListPending(ctx context.Context) ([]*model.User, error) {
	return s.repo.FindPending(ctx)
}

// ListVerifiedAlumni returns verified non-admin accounts
func (s *UserService) ListVerifiedAlumni(ctx context.Context) ([]*model.User, error) {
	return s.repo.FindVerifiedAlumni(ctx)
}

// DocumentPath resolves a supporting document for admin review. The name
// is flattened to its base before hitting the store.
func (s *UserService) DocumentPath(filename string) (string, error) {
	path, err := s.store.Path(filepath.Base(filename))
	if err != nil {
		return "", apperr.ErrNotFound
	}
	return path, nil
}

// Bootstrap creates the initial admin account when none exists. Safe to
// run on every start; a concurrent first boot loses the insert race on
// the unique email index, which is treated as success.
func (s *UserService) Bootstrap(ctx context.Context) error {
	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		log.Printf("Admin already exists")
		return nil
	}

	if s.cfg.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required to bootstrap the admin account")
	}

	hash, err := util.HashPassword(s.cfg.Admin.Password, s.cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		FirstName:  s.cfg.Admin.FirstName,
		LastName:   s.cfg.Admin.LastName,
		Email:      strings.ToLower(s.cfg.Admin.Email),
		Password:   hash,
		Department: "Administration",
		IsAdmin:    true,
		IsVerified: true,
		Status:     model.StatusApproved,
		CreatedAt:  time.Now(),
	}

	if _, err := s.repo.Create(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Printf("Admin already exists")
			return nil
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Printf("Admin user created successfully")
	return nil
}

func (s *UserService) removeStored(name string) {
	if err := s.store.Remove(name); err != nil {
		log.Printf("failed to remove stored file %s: %v", name, err)
	}
}
