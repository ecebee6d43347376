package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alumnihub/internal/auth"
	"alumnihub/internal/model"
	"alumnihub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService("gate-test-secret", time.Hour)
	require.NoError(t, err)
	return tokens
}

// gatedRouter mounts the gate in front of a probe handler that echoes
// the context identity.
func gatedRouter(gate gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/probe", gate, func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": id, "isAdmin": c.GetBool(ContextIsAdmin)})
	})
	return r
}

func probe(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireUser_MissingHeader(t *testing.T) {
	r := gatedRouter(RequireUser(newTokens(t)))

	w := probe(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestRequireUser_WrongSecret(t *testing.T) {
	other, err := auth.NewTokenService("some-other-secret", time.Hour)
	require.NoError(t, err)
	tok, err := other.Issue("u1", false)
	require.NoError(t, err)

	r := gatedRouter(RequireUser(newTokens(t)))
	w := probe(r, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUser_ValidToken(t *testing.T) {
	tokens := newTokens(t)
	tok, err := tokens.Issue("user-42", false)
	require.NoError(t, err)

	r := gatedRouter(RequireUser(tokens))
	w := probe(r, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-42")
}

func TestRequireUser_RawTokenWithoutScheme(t *testing.T) {
	// Clients send both the raw token and the Bearer form; both must
	// pass.
	tokens := newTokens(t)
	tok, err := tokens.Issue("user-42", false)
	require.NoError(t, err)

	r := gatedRouter(RequireUser(tokens))
	w := probe(r, tok)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens := newTokens(t)
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	admin, err := repo.Create(ctx, &model.User{
		Email: "admin@dbu.edu.et", IsAdmin: true, IsVerified: true,
		Status: model.StatusApproved,
	})
	require.NoError(t, err)
	alumnus, err := repo.Create(ctx, &model.User{
		Email: "a@b.com", IsVerified: true, Status: model.StatusApproved,
	})
	require.NoError(t, err)

	adminTok, err := tokens.Issue(admin.ID.Hex(), true)
	require.NoError(t, err)
	alumnusTok, err := tokens.Issue(alumnus.ID.Hex(), false)
	require.NoError(t, err)
	// Token for an account deleted after issuance
	ghostTok, err := tokens.Issue("64b0c1d2e3f4a5b6c7d8e9f0", true)
	require.NoError(t, err)

	r := gatedRouter(RequireAdmin(tokens, repo))

	t.Run("admin passes", func(t *testing.T) {
		w := probe(r, "Bearer "+adminTok)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"isAdmin":true`)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		w := probe(r, "Bearer "+alumnusTok)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Admin access required")
	})

	t.Run("deleted account forbidden", func(t *testing.T) {
		w := probe(r, "Bearer "+ghostTok)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing header unauthorized", func(t *testing.T) {
		w := probe(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
