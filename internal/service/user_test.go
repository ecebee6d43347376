package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"sync"
	"testing"
	"time"

	"alumnihub/internal/apperr"
	"alumnihub/internal/auth"
	"alumnihub/internal/config"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records saves and removals so compensation behavior can be
// asserted.
type fakeStore struct {
	mu      sync.Mutex
	saved   map[string]bool
	removed []string
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[string]bool{}}
}

func (s *fakeStore) Save(file *multipart.FileHeader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return "", s.saveErr
	}
	name := file.Filename
	if name == "" {
		name = "upload"
	}
	stored := name + ".stored"
	s.saved[stored] = true
	return stored, nil
}

func (s *fakeStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, name)
	s.removed = append(s.removed, name)
	return nil
}

func (s *fakeStore) Path(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved[name] {
		return "", errors.New("not found")
	}
	return "/uploads/" + name, nil
}

func docFile(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("tempDocument", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("document bytes"))
	require.NoError(t, err)
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, "/", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["tempDocument"][0]
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{BcryptCost: 4},
		Admin: config.AdminConfig{
			Email:     "admin@dbu.edu.et",
			Password:  "Admin123",
			FirstName: "Admin",
			LastName:  "DBU",
		},
	}
}

func newTestService(t *testing.T) (*UserService, *repository.MemoryUserRepository, *fakeStore, *auth.TokenService) {
	t.Helper()

	repo := repository.NewMemoryUserRepository()
	store := newFakeStore()
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	return NewUserService(testConfig(), repo, tokens, store), repo, store, tokens
}

func registerReq(email string) *model.RegisterRequest {
	return &model.RegisterRequest{
		FirstName:  "Abebe",
		LastName:   "Kebede",
		Email:      email,
		Password:   "Abcdef12",
		Department: "Computer Science",
		Batch:      "2020",
	}
}

func TestRegister_CreatesPendingUser(t *testing.T) {
	svc, _, store, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("a@b.com"), docFile(t, "doc.png"))
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, user.Status)
	assert.False(t, user.IsVerified)
	assert.False(t, user.IsAdmin)
	assert.Equal(t, "a@b.com", user.Email)
	assert.NotEqual(t, "Abcdef12", user.Password, "password stored in plaintext")
	assert.True(t, store.saved[user.TempDocument], "document not stored")
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("A@x.com"), docFile(t, "one.png"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq("a@x.com"), docFile(t, "two.png"))
	require.ErrorIs(t, err, apperr.ErrDuplicateEmail)

	// The duplicate was detected before its document hit storage.
	assert.Len(t, store.saved, 1)
}

func TestRegister_MissingDocument(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("a@b.com"), nil)
	require.ErrorIs(t, err, apperr.ErrValidation)

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users, "no record should persist on validation failure")
}

func TestRegister_WeakPassword(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	req := registerReq("a@b.com")
	req.Password = "abc"
	_, err := svc.Register(context.Background(), req, docFile(t, "doc.png"))
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRegister_InvalidDepartment(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	req := registerReq("a@b.com")
	req.Department = "Astrology"
	_, err := svc.Register(context.Background(), req, docFile(t, "doc.png"))
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRegister_InsertFailureRemovesDocument(t *testing.T) {
	svc, repo, store, _ := newTestService(t)
	repo.CreateErr = errors.New("write concern failure")

	_, err := svc.Register(context.Background(), registerReq("a@b.com"), docFile(t, "doc.png"))
	require.Error(t, err)

	assert.Empty(t, store.saved, "orphaned document left behind")
	assert.NotEmpty(t, store.removed, "compensating removal never ran")
}

func TestLogin_PendingApproval(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("a@b.com"), docFile(t, "doc.png"))
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@b.com", "Abcdef12")
	require.ErrorIs(t, err, apperr.ErrPendingApproval)
}

func TestLogin_AfterApproval(t *testing.T) {
	svc, _, _, tokens := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("a@b.com"), docFile(t, "doc.png"))
	require.NoError(t, err)

	approved, err := svc.Verify(ctx, user.ID.Hex(), true)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)
	assert.True(t, approved.IsVerified)

	token, loggedIn, err := svc.Login(ctx, "a@b.com", "Abcdef12")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.False(t, claims.IsAdmin)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "nobody@b.com", "Abcdef12")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	user, err := svc.Register(ctx, registerReq("a@b.com"), docFile(t, "doc.png"))
	require.NoError(t, err)
	_, err = svc.Verify(ctx, user.ID.Hex(), true)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@b.com", "Wrong1234")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestVerify_RejectDeletesRecord(t *testing.T) {
	svc, repo, store, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("a@b.com"), docFile(t, "doc.png"))
	require.NoError(t, err)

	rejected, err := svc.Verify(ctx, user.ID.Hex(), false)
	require.NoError(t, err)
	assert.Nil(t, rejected)

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, found, "rejected record must not exist")

	// A rejected user logging in is indistinguishable from a bad email.
	_, _, err = svc.Login(ctx, "a@b.com", "Abcdef12")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	// Supporting document cleaned up alongside the record.
	assert.Empty(t, store.saved)
}

func TestVerify_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Verify(context.Background(), "64b0c1d2e3f4a5b6c7d8e9f0", true)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.Reject(context.Background(), "64b0c1d2e3f4a5b6c7d8e9f0")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestVerify_AlreadyApproved(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("a@b.com"), docFile(t, "doc.png"))
	require.NoError(t, err)

	_, err = svc.Verify(ctx, user.ID.Hex(), true)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, user.ID.Hex(), true)
	require.ErrorIs(t, err, apperr.ErrNotPending)
}

func TestListPending_IncludesLegacyRecords(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	// Modern pending record
	_, err := svc.Register(ctx, registerReq("new@b.com"), docFile(t, "doc.png"))
	require.NoError(t, err)

	// Legacy record written before the status field existed
	_, err = repo.Create(ctx, &model.User{
		FirstName: "Old", LastName: "Timer",
		Email: "legacy@b.com", Password: "hash",
	})
	require.NoError(t, err)

	// Approved record must not show up
	approved, err := svc.Register(ctx, registerReq("done@b.com"), docFile(t, "doc2.png"))
	require.NoError(t, err)
	_, err = svc.Verify(ctx, approved.ID.Hex(), true)
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, u := range pending {
		assert.True(t, u.Pending())
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("a@b.com"), docFile(t, "doc.png"))
	require.NoError(t, err)
	_, err = svc.Verify(ctx, user.ID.Hex(), true)
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID.Hex(), &model.UpdateProfileRequest{
		Batch:      "2021",
		Department: "Software Engineering",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2021", updated.Batch)
	assert.Equal(t, "Software Engineering", updated.Department)

	// Profile edits never touch verification state.
	assert.True(t, updated.IsVerified)
	assert.Equal(t, model.StatusApproved, updated.Status)

	_, err = svc.UpdateProfile(ctx, user.ID.Hex(), &model.UpdateProfileRequest{
		Department: "Astrology",
	}, nil)
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestBootstrap_Idempotent(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Bootstrap(ctx))
	require.NoError(t, svc.Bootstrap(ctx))

	count, err := repo.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	admin, err := repo.FindByEmail(ctx, "admin@dbu.edu.et")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsVerified)
	assert.Equal(t, model.StatusApproved, admin.Status)
	assert.Empty(t, admin.TempDocument, "admin needs no supporting document")
}

func TestBootstrap_ConcurrentFirstBoot(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Losing the insert race is treated as success.
			assert.NoError(t, svc.Bootstrap(ctx))
		}()
	}
	wg.Wait()

	count, err := repo.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
