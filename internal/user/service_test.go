package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servipro-app/servipro-backend/internal/auth"
)

type fakeRepo struct {
	byEmail map[string]*User
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*User)}
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, exists := r.byEmail[u.Email]; exists {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	u.ID = "user-" + u.Email
	u.CreatedAt = time.Now()
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.byEmail {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, u)
	}
	return out, len(out), nil
}

// fakeHasher avoids bcrypt cost in unit tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return ErrInvalidCredentials
	}
	return nil
}

func TestRegister(t *testing.T) {
	t.Run("creates active user with normalized email", func(t *testing.T) {
		svc := NewService(newFakeRepo(), fakeHasher{})

		u, err := svc.Register(context.Background(), "  Anna@Example.COM ", "password123", "Anna", auth.RoleProfessional)
		require.NoError(t, err)
		assert.Equal(t, "anna@example.com", u.Email)
		assert.Equal(t, auth.RoleProfessional, u.Role)
		assert.True(t, u.IsActive)
		assert.Equal(t, "hashed:password123", u.PasswordHash)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc := NewService(newFakeRepo(), fakeHasher{})

		_, err := svc.Register(context.Background(), "a@b.com", "password123", "A", auth.RoleClient)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "A@B.com", "password456", "A", auth.RoleClient)
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc := NewService(newFakeRepo(), fakeHasher{})
		_, err := svc.Register(context.Background(), "a@b.com", "short", "A", auth.RoleClient)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc := NewService(newFakeRepo(), fakeHasher{})
		_, err := svc.Register(context.Background(), "a@b.com", "password123", "A", auth.Role("admin"))
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestLogin(t *testing.T) {
	newSvc := func(t *testing.T) (Service, *fakeRepo) {
		repo := newFakeRepo()
		svc := NewService(repo, fakeHasher{})
		_, err := svc.Register(context.Background(), "a@b.com", "password123", "A", auth.RoleClient)
		require.NoError(t, err)
		return svc, repo
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, _ := newSvc(t)
		u, err := svc.Login(context.Background(), "a@b.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", u.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newSvc(t)
		_, err := svc.Login(context.Background(), "a@b.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newSvc(t)
		_, err := svc.Login(context.Background(), "nobody@b.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, repo := newSvc(t)
		repo.byEmail["a@b.com"].IsActive = false
		_, err := svc.Login(context.Background(), "a@b.com", "password123")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestListProfessionalsForcesFilter(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeHasher{})

	_, err := svc.Register(context.Background(), "pro@b.com", "password123", "Pro", auth.RoleProfessional)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "client@b.com", "password123", "Client", auth.RoleClient)
	require.NoError(t, err)

	pros, total, err := svc.ListProfessionals(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, pros, 1)
	assert.Equal(t, auth.RoleProfessional, pros[0].Role)
}
