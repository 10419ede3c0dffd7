package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/easytech/webapi/internal/store"
	"github.com/easytech/webapi/internal/validation"
	"github.com/easytech/webapi/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// UserService encapsulates account use-cases.
type UserService struct {
	repo UserRepository
	cost int
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo, cost: bcrypt.DefaultCost}
}

// WithHashCost returns a copy of the service hashing at cost. Tests use
// bcrypt.MinCost to stay fast.
func (s *UserService) WithHashCost(cost int) *UserService {
	clone := *s
	clone.cost = cost
	return &clone
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register validates the request, rejects taken usernames and stores the
// account with a bcrypt password hash.
func (s *UserService) Register(ctx context.Context, req types.RegisterRequest) (types.User, error) {
	if err := validation.Struct(req); err != nil {
		return types.User{}, err
	}

	_, err := s.repo.GetByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return types.User{}, ErrUsernameTaken
	case !errors.Is(err, store.ErrNotFound):
		return types.User{}, err
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, store.ErrConflict) {
		return types.User{}, ErrUsernameTaken
	}
	return user, err
}

// Authenticate checks a username and password pair. Unknown users and
// wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
