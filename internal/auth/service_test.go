package auth

import (
	"context"
	"testing"
	"time"

	"cinebook/internal/shared/config"
	"cinebook/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockRepository) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	args := m.Called(ctx, userID, hashedPassword)
	return args.Error(0)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.JWTExpiresIn = time.Hour
	cfg.JWT.RefreshExpiresIn = 24 * time.Hour
	return cfg
}

func TestRegister(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, testConfig())

	repo.On("EmailExists", mock.Anything, "alice@example.com").Return(false, nil)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *users.User) bool {
		// Password must be stored hashed, never plaintext
		return u.Email == "alice@example.com" &&
			u.Role == users.RoleUser &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")) == nil
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*users.User).ID = uuid.New()
	})

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	repo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, testConfig())

	repo.On("EmailExists", mock.Anything, "alice@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegisterNormalizesInvalidRole(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, testConfig())

	repo.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *users.User) bool {
		return u.Role == users.RoleUser
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*users.User).ID = uuid.New()
	})

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret123",
		Role:     "superuser",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, testConfig())

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(&users.User{
		ID:       uuid.New(),
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: string(hashed),
		Role:     users.RoleUser,
	}, nil)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, testConfig())

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(&users.User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Password: string(hashed),
		Role:     users.RoleUser,
	}, nil)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailHidesExistence(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, testConfig())

	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrUserNotFound)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, testConfig())

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(&users.User{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Password: string(hashed),
		Role:     users.RoleUser,
	}, nil)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Access tokens must not be usable as refresh tokens
	_, err = svc.RefreshToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenIssuesNewPair(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, testConfig())

	userID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &users.User{
		ID:       userID,
		Email:    "alice@example.com",
		Password: string(hashed),
		Role:     users.RoleUser,
	}

	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	repo.On("GetUserByID", mock.Anything, userID.String()).Return(user, nil)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewService(&MockRepository{}, testConfig())

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, testConfig())

	userID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo.On("GetUserByID", mock.Anything, userID.String()).Return(&users.User{
		ID:       userID,
		Password: string(hashed),
	}, nil)

	err = svc.ChangePassword(context.Background(), userID.String(), &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertNotCalled(t, "UpdateUserPassword", mock.Anything, mock.Anything, mock.Anything)
}
