package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"identity-service/internal/auth"
	"identity-service/internal/domain"
	"identity-service/internal/service"
)

type fakeUserRepo struct {
	users    []*domain.User
	nextID   int64
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (r *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return 0, fmt.Errorf("user already exists")
		}
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users = append(r.users, &copied)
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) List(ctx context.Context, offset, limit int64) ([]domain.User, error) {
	var out []domain.User
	for i := offset; i < int64(len(r.users)) && int64(len(out)) < limit; i++ {
		preview := *r.users[i]
		preview.PasswordHash = ""
		out = append(out, preview)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	for _, user := range r.users {
		if user.ID == id {
			user.Image = imageURL
			return nil
		}
	}
	return fmt.Errorf("user not found")
}

func newTestService(repo *fakeUserRepo) (service.UserService, *auth.TokenService) {
	tokens := auth.NewTokenService([]byte("test-secret-test-secret-test-secret-test-secret-test-secret"), time.Hour)
	return service.NewUserService(repo, tokens), tokens
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("derives username and stores a hash", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc, _ := newTestService(repo)

		user, err := svc.Register(ctx, service.RegisterInput{
			Name:     "Jane Doe",
			Email:    "Jane@X.com",
			Password: "longenough",
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(user.Username, "janedoe"), user.Username)
		assert.Equal(t, "jane@x.com", user.Email)
		assert.Empty(t, user.PasswordHash, "sanitized result must not carry the hash")

		stored, err := repo.GetByEmail(ctx, "jane@x.com")
		require.NoError(t, err)
		assert.NotEmpty(t, stored.PasswordHash)
		assert.NotEqual(t, "longenough", stored.PasswordHash)
		assert.True(t, auth.VerifyPassword("longenough", stored.PasswordHash))
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc, _ := newTestService(repo)

		_, err := svc.Register(ctx, service.RegisterInput{Name: "Jane Doe", Email: "jane@x.com", Password: "longenough"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, service.RegisterInput{Name: "Jane Other", Email: "jane@x.com", Password: "longenough"})
		assert.ErrorIs(t, err, service.ErrUserAlreadyExists)
	})

	t.Run("repository failure surfaces as creation failure", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.failWith = fmt.Errorf("connection refused")
		svc, _ := newTestService(repo)

		_, err := svc.Register(ctx, service.RegisterInput{Name: "Jane Doe", Email: "jane@x.com", Password: "longenough"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrUserAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc service.UserService) {
		t.Helper()
		_, err := svc.Register(ctx, service.RegisterInput{Name: "Jane Doe", Email: "jane@x.com", Password: "longenough"})
		require.NoError(t, err)
	}

	t.Run("issues a verifiable token", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc, tokens := newTestService(repo)
		register(t, svc)

		user, token, err := svc.Login(ctx, "jane@x.com", "longenough")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.Empty(t, user.PasswordHash)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "jane@x.com", claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc, _ := newTestService(repo)
		register(t, svc)

		_, token, err := svc.Login(ctx, "jane@x.com", "wrongpassword")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("unknown email maps to the same error as wrong password", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc, _ := newTestService(repo)
		register(t, svc)

		_, _, err := svc.Login(ctx, "nobody@x.com", "longenough")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("empty stored hash cannot authenticate", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc, _ := newTestService(repo)
		_, err := repo.Create(ctx, &domain.User{Username: "ghost1", Email: "ghost@x.com", Name: "Ghost User"})
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, "ghost@x.com", "")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, "ghost@x.com", "anything")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)

	for i := 0; i < 5; i++ {
		_, err := svc.Register(ctx, service.RegisterInput{
			Name:     fmt.Sprintf("Test User%d", i),
			Email:    fmt.Sprintf("user%d@x.com", i),
			Password: "longenough",
		})
		require.NoError(t, err)
	}

	t.Run("pages with offset and limit", func(t *testing.T) {
		users, err := svc.List(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "user1@x.com", users[0].Email)
		assert.Equal(t, "user2@x.com", users[1].Email)
	})

	t.Run("defaults apply for zero values", func(t *testing.T) {
		users, err := svc.List(ctx, -3, 0)
		require.NoError(t, err)
		assert.Len(t, users, 5)
	})

	t.Run("previews carry no hash", func(t *testing.T) {
		users, err := svc.List(ctx, 0, 10)
		require.NoError(t, err)
		for _, user := range users {
			assert.Empty(t, user.PasswordHash)
		}
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Register(ctx, service.RegisterInput{Name: "Jane Doe", Email: "jane@x.com", Password: "longenough"})
	require.NoError(t, err)

	user, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.GetByID(ctx, 42)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
