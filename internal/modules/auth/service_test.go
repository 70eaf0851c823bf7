package auth

import (
	"context"
	"testing"
	"time"

	"boatwork/internal/domain"
	jwtsvc "boatwork/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func testJWT() *jwtsvc.Service {
	return jwtsvc.New("test-secret", time.Hour)
}

func TestService_Register_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "owner@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockUsers, testJWT())

	res, err := service.Register(context.Background(), RegisterRequest{
		Email:    "Owner@Example.com",
		Password: "password123",
		Name:     "Marina Ortiz",
		Role:     "owner",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "owner@example.com", res.User.Email)
	assert.Equal(t, domain.RoleOwner, res.User.Role)
	assert.NotEqual(t, "password123", res.User.PasswordHash)
}

func TestService_Register_EmailTaken(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{ID: 1, Email: "taken@example.com"}, nil)

	service := NewService(mockUsers, testJWT())

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "password123",
		Name:     "Someone",
		Role:     "provider",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Register_UnknownRole(t *testing.T) {
	service := NewService(new(MockUserRepository), testJWT())

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "admin@example.com",
		Password: "password123",
		Name:     "Admin",
		Role:     "admin",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Login_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "owner@example.com").Return(&domain.User{
		ID:           42,
		Email:        "owner@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleOwner,
	}, nil)

	service := NewService(mockUsers, testJWT())

	res, err := service.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(42), res.User.ID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "owner@example.com").Return(&domain.User{
		ID:           42,
		Email:        "owner@example.com",
		PasswordHash: string(hash),
	}, nil)

	service := NewService(mockUsers, testJWT())

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "owner@example.com",
		Password: "not-the-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockUsers, testJWT())

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
