package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"alemsite/internal/auth"
	"alemsite/internal/model"
)

// fakeUserRepo is an in-memory user store for middleware tests.
type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	for _, user := range f.users {
		if user.Phone == phone {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, role model.Role, phoneSearch string) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	user.Role = role
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func echoHandler(c echo.Context) error {
	if user, ok := CurrentUser(c); ok {
		return c.String(http.StatusOK, string(user.Role))
	}
	return c.String(http.StatusOK, "anonymous")
}

func runRequest(t *testing.T, mw echo.MiddlewareFunc, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/probe", echoHandler, mw)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticator_Required(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	user := &model.User{ID: uuid.New(), Phone: "01712345678", Role: model.RoleUser}
	authn := NewAuthenticator(tokens, newFakeUserRepo(user))

	token, err := tokens.Issue(user.ID, user.Role)
	assert.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		rec := runRequest(t, authn.Required(), func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user", rec.Body.String())
	})

	t.Run("cookie fallback", func(t *testing.T) {
		rec := runRequest(t, authn.Required(), func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "token", Value: token})
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user", rec.Body.String())
	})

	t.Run("header preferred over cookie", func(t *testing.T) {
		rec := runRequest(t, authn.Required(), func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
			req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := runRequest(t, authn.Required(), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := runRequest(t, authn.Required(), func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("vanished subject", func(t *testing.T) {
		ghost, err := tokens.Issue(uuid.New(), model.RoleUser)
		assert.NoError(t, err)
		rec := runRequest(t, authn.Required(), func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+ghost)
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthenticator_Optional(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	user := &model.User{ID: uuid.New(), Phone: "01712345678", Role: model.RoleUser}
	authn := NewAuthenticator(tokens, newFakeUserRepo(user))

	t.Run("no token still passes", func(t *testing.T) {
		rec := runRequest(t, authn.Optional(), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("bad token still passes anonymously", func(t *testing.T) {
		rec := runRequest(t, authn.Optional(), func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("valid token resolves identity", func(t *testing.T) {
		token, err := tokens.Issue(user.ID, user.Role)
		assert.NoError(t, err)
		rec := runRequest(t, authn.Optional(), func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user", rec.Body.String())
	})
}

func TestAuthenticator_TokenRoleWinsUntilRelogin(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")
	user := &model.User{ID: uuid.New(), Phone: "01712345678", Role: model.RoleUser}
	repo := newFakeUserRepo(user)
	authn := NewAuthenticator(tokens, repo)

	token, err := tokens.Issue(user.ID, user.Role)
	assert.NoError(t, err)

	// Promote the account after the token was issued.
	_, err = repo.UpdateRole(context.Background(), user.ID, model.RoleAdmin)
	assert.NoError(t, err)

	rec := runRequest(t, authn.Required(), func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user", rec.Body.String())

	// A fresh login picks up the stored role.
	fresh, err := tokens.Issue(user.ID, model.RoleAdmin)
	assert.NoError(t, err)
	rec = runRequest(t, authn.Required(), func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+fresh)
	})
	assert.Equal(t, "admin", rec.Body.String())
}
