package user_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meghdad1234/fabric-microservices/internal/user"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, upd user.Update) (*user.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func TestUserService_Register_HashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	var stored *user.User
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*user.User)
		}).
		Return(&user.User{ID: 1, Name: "Ana", Email: "ana@example.com", CreatedAt: time.Now()}, nil).
		Once()

	view, err := svc.Register(context.Background(), user.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, view.ID)

	require.NotNil(t, stored)
	require.NotEqual(t, "secret123", stored.Password, "password must be hashed, not raw")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

	mockRepo.AssertExpectations(t)
}

func TestUserService_Register_ShortPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	_, err := svc.Register(context.Background(), user.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, user.ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Register_BlankName(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	_, err := svc.Register(context.Background(), user.RegisterInput{
		Name:     "   ",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.ErrorIs(t, err, user.ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Register_EmailExists(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
		Return(nil, user.ErrEmailExists).
		Once()

	_, err := svc.Register(context.Background(), user.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.ErrorIs(t, err, user.ErrEmailExists)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	digest, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mockRepo.On("GetByEmail", mock.Anything, "ana@example.com").
		Return(&user.User{ID: 1, Name: "Ana", Email: "ana@example.com", Password: string(digest)}, nil).
		Once()

	view, err := svc.Login(context.Background(), "ana@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", view.Email)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	digest, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mockRepo.On("GetByEmail", mock.Anything, "ana@example.com").
		Return(&user.User{ID: 1, Email: "ana@example.com", Password: string(digest)}, nil).
		Once()

	_, err = svc.Login(context.Background(), "ana@example.com", "wrong")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := user.NewService(mockRepo)

	mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, user.ErrNotFound).
		Once()

	// Same error value as a wrong password: the caller cannot tell whether
	// the account exists.
	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestUserView_NeverSerializesDigest(t *testing.T) {
	u := user.User{ID: 1, Name: "Ana", Email: "ana@example.com", Password: "$2a$10$digest"}

	raw, err := json.Marshal(u.Public())
	require.NoError(t, err)
	require.NotContains(t, string(raw), "password")
	require.NotContains(t, string(raw), "digest")
}
