package categories

import (
	"context"
	"fmt"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, input NewCategory) (Category, error)
	Get(ctx context.Context, id int64) (Category, error)
	List(ctx context.Context, onlyActive bool) ([]Category, error)
	Update(ctx context.Context, id int64, input UpdateCategory) (Category, error)
	Delete(ctx context.Context, id int64) error
	Exist(ctx context.Context, ids []int64) (bool, error)
}

// Service wraps category business rules. Mutations are admin only.
type Service struct {
	repo Store
}

// NewService constructs a new Service.
func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// Create stores a category. Admin only.
func (s *Service) Create(ctx context.Context, p *shared.Principal, input NewCategory) (Category, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return Category{}, err
	}
	return s.repo.Create(ctx, input)
}

// Get returns a category; the catalog is public.
func (s *Service) Get(ctx context.Context, id int64) (Category, error) {
	return s.repo.Get(ctx, id)
}

// List returns all categories.
func (s *Service) List(ctx context.Context, onlyActive bool) ([]Category, error) {
	return s.repo.List(ctx, onlyActive)
}

// Update patches a category. Admin only.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, input UpdateCategory) (Category, error) {
	if err := authz.RequireAdmin(p); err != nil {
		return Category{}, err
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a category. Admin only.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	if err := authz.RequireAdmin(p); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ValidateIDs rejects sets naming unknown categories.
func (s *Service) ValidateIDs(ctx context.Context, ids []int64) error {
	ok, err := s.repo.Exist(ctx, ids)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: invalid categories", shared.ErrValidation)
	}
	return nil
}
