package user

import (
	"context"
	"errors"
	"testing"

	"petshop-be/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, passwordHash string, role auth.Role) (User, error) {
	args := m.Called(ctx, email, passwordHash, role)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) CreateProfile(ctx context.Context, p *Profile) (*Profile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

type stubIssuer struct {
	got auth.Session
	err error
}

func (s *stubIssuer) Generate(sess auth.Session) (string, error) {
	s.got = sess
	return "token-" + sess.UserID, s.err
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		issuer := &stubIssuer{}
		svc := NewService(repo, issuer)

		repo.On("Create", ctx, "asha@example.com", mock.AnythingOfType("string"), auth.RoleUser).
			Return(User{ID: "u-1", Email: "asha@example.com", Role: auth.RoleUser}, nil)
		repo.On("CreateProfile", ctx, mock.MatchedBy(func(p *Profile) bool {
			return p.ID == "u-1" && p.Name == "Asha"
		})).Return(&Profile{ID: "u-1", Name: "Asha", Email: "asha@example.com"}, nil)

		token, p, err := svc.Register(ctx, " Asha ", " Asha@Example.com ", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "token-u-1", token)
		assert.Equal(t, "Asha", p.Name)
		assert.Equal(t, auth.RoleUser, issuer.got.Role)

		hash := repo.Calls[0].Arguments.String(2)
		assert.True(t, CheckPasswordHash("secret123", hash))
	})

	t.Run("EmailExists", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, &stubIssuer{})
		repo.On("Create", ctx, "asha@example.com", mock.Anything, auth.RoleUser).Return(User{}, ErrEmailExists)

		_, _, err := svc.Register(ctx, "Asha", "asha@example.com", "secret123")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		svc := NewService(new(MockRepository), &stubIssuer{})

		_, _, err := svc.Register(ctx, "Asha", "not-an-email", "secret123")
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, _, err = svc.Register(ctx, "", "asha@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, _, err = svc.Register(ctx, "Asha", "asha@example.com", "123")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	stored := User{ID: "u-1", Email: "asha@example.com", Password: hash, Role: auth.RoleAdmin}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		issuer := &stubIssuer{}
		svc := NewService(repo, issuer)
		repo.On("FindByEmail", ctx, "asha@example.com").Return(stored, nil)
		repo.On("GetProfile", ctx, "u-1").Return(&Profile{ID: "u-1", Name: "Asha"}, nil)

		token, p, err := svc.Login(ctx, "ASHA@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "token-u-1", token)
		assert.Equal(t, "Asha", p.Name)
		assert.Equal(t, auth.RoleAdmin, issuer.got.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, &stubIssuer{})
		repo.On("FindByEmail", ctx, "asha@example.com").Return(stored, nil)

		_, _, err := svc.Login(ctx, "asha@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, &stubIssuer{})
		repo.On("FindByEmail", ctx, "who@example.com").Return(User{}, ErrUserNotFound)

		_, _, err := svc.Login(ctx, "who@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("CreatesMissingProfile", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, &stubIssuer{})
		repo.On("FindByEmail", ctx, "asha@example.com").Return(stored, nil)
		repo.On("GetProfile", ctx, "u-1").Return(nil, ErrProfileNotFound)
		repo.On("CreateProfile", ctx, mock.MatchedBy(func(p *Profile) bool { return p.Name == "asha" })).
			Return(&Profile{ID: "u-1", Name: "asha"}, nil)

		_, p, err := svc.Login(ctx, "asha@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "asha", p.Name)
	})

	t.Run("TokenFailure", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, &stubIssuer{err: errors.New("no secret")})
		repo.On("FindByEmail", ctx, "asha@example.com").Return(stored, nil)
		repo.On("GetProfile", ctx, "u-1").Return(&Profile{ID: "u-1"}, nil)

		_, _, err := svc.Login(ctx, "asha@example.com", "secret123")
		assert.Error(t, err)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, &stubIssuer{})

	blank := "   "
	_, err := svc.UpdateProfile(ctx, UpdateProfileParams{UserID: "u-1", Name: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)

	name := " Asha R "
	repo.On("UpdateProfile", ctx, mock.MatchedBy(func(p UpdateProfileParams) bool {
		return p.Name != nil && *p.Name == "Asha R"
	})).Return(&Profile{ID: "u-1", Name: "Asha R"}, nil)

	p, err := svc.UpdateProfile(ctx, UpdateProfileParams{UserID: "u-1", Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Asha R", p.Name)
}
