package users

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, input NewUser, passwordHash string) (User, error)
	Get(ctx context.Context, id int64) (User, error)
	Exist(ctx context.Context, ids []int64) (bool, error)
}

// Service wraps account business rules.
type Service struct {
	repo Store
}

// NewService constructs a new Service.
func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// Register creates an account with a bcrypt password hash. A taken email
// surfaces as a duplicate.
func (s *Service) Register(ctx context.Context, input NewUser) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("users: hash password: %w", err)
	}
	return s.repo.Create(ctx, input, string(hash))
}

// Get returns the account for the id.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// ValidateIDs rejects instructor/creator id sets naming unknown accounts.
func (s *Service) ValidateIDs(ctx context.Context, ids []int64) error {
	ok, err := s.repo.Exist(ctx, ids)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: invalid instructors", shared.ErrValidation)
	}
	return nil
}
