package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/weeklisthq/weeklist-api/internal/domain"
	"github.com/weeklisthq/weeklist-api/internal/service/auth"
	"github.com/weeklisthq/weeklist-api/internal/store"
)

// UserService is the user registry: registration with identity uniqueness
// and credential login. Both operations return a freshly issued session
// token on success.
type UserService interface {
	// Register creates a new user. Returns store.ErrEmailExists or
	// store.ErrMobileExists if the identity fields collide with an existing
	// user, and domain validation errors for bad input.
	Register(ctx context.Context, fullname, email, password string, age int, gender, mobile string) (*domain.User, string, error)

	// Login authenticates by email and password. Returns
	// store.ErrUserNotFound if no user matches the email and
	// ErrInvalidCredentials if the hash comparison fails.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	jwt       auth.JWTService
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	jwt auth.JWTService,
	log *slog.Logger,
) *UserServiceImpl {
	if log == nil {
		log = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		jwt:       jwt,
		logger:    log.With("component", "user_service"),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	fullname, email, password string,
	age int,
	gender, mobile string,
) (*domain.User, string, error) {
	user, err := domain.NewUser(fullname, email, password, age, gender, mobile)
	if err != nil {
		s.logger.Debug("rejected invalid registration",
			"error", err,
			"email", email)
		return nil, "", err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("attempted to register duplicate identity",
				"email", email)
		} else {
			s.logger.Error("failed to create user",
				"error", err,
				"email", email)
		}
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to generate token after registration",
			"error", err,
			"user_id", user.ID)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID)
	return user, token, nil
}

// Login implements UserService.Login.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login for unknown email", "email", email)
		} else {
			s.logger.Error("failed to look up user for login",
				"error", err,
				"email", email)
		}
		return nil, "", err
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("password mismatch on login",
			"user_id", user.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to generate token on login",
			"error", err,
			"user_id", user.ID)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}
