package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"newsroom/internal/auth"
	apperrors "newsroom/internal/errors"
	"newsroom/internal/model"
	"newsroom/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// Unknown email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when trying to register an existing email.
	ErrUserAlreadyExists = errors.New("email already registered")
	// ErrReservedEmail is returned when registration targets the bootstrap
	// admin address. That identity may never be self-registered.
	ErrReservedEmail = errors.New("admin cannot be registered")
)

// AdminIdentity holds the reserved bootstrap administrator credentials.
type AdminIdentity struct {
	Name     string
	Email    string
	Password string
}

// AuthService handles registration, login, logout and admin bootstrap.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
	// EnsureAdmin converges the reserved admin account into existence.
	// It reports whether a new account was created.
	EnsureAdmin(ctx context.Context) (created bool, err error)
}

type authService struct {
	userRepo repository.UserRepository
	sessions auth.SessionStoreInterface
	admin    AdminIdentity
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessions auth.SessionStoreInterface, admin AdminIdentity) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		admin:    admin,
	}
}

// Register creates a new user with a hashed password and role "user".
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.ErrMissingFields
	}

	email = strings.ToLower(email)
	if email == strings.ToLower(s.admin.Email) {
		return nil, ErrReservedEmail
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and opens a session, returning its token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if email == "" || password == "" {
		return "", nil, apperrors.ErrMissingFields
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, auth.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	return token, user, nil
}

// Logout destroys the session. Destroying an absent session is a no-op.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// EnsureAdmin creates the reserved admin account if it does not exist yet.
// Runs once at startup before requests are served; the unique email index
// backstops concurrent multi-process deployments.
func (s *authService) EnsureAdmin(ctx context.Context) (bool, error) {
	email := strings.ToLower(s.admin.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return false, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check admin existence: %w", err)
	}

	hash, err := auth.HashPassword(s.admin.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		Name:         s.admin.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	return true, nil
}
