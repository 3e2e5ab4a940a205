package modules

import (
	"context"
	"fmt"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, input NewModule) (Module, error)
	Get(ctx context.Context, id int64) (Module, error)
	List(ctx context.Context, access string, accessArgs []any, filters ListFilters) ([]Module, error)
	Update(ctx context.Context, id int64, input UpdateModule) (Module, error)
	Delete(ctx context.Context, id int64) error
	BelongsToCourse(ctx context.Context, moduleID, courseID int64) (bool, error)
}

// Service wraps module business rules.
type Service struct {
	repo Store
	gate *authz.Gate
}

// NewService constructs a new Service.
func NewService(repo Store, gate *authz.Gate) *Service {
	return &Service{repo: repo, gate: gate}
}

// Create stores a module. Instructors of the course only.
func (s *Service) Create(ctx context.Context, p *shared.Principal, input NewModule) (Module, error) {
	if _, err := s.gate.Resolve(ctx, authz.Course, p, input.CourseID, authz.IsCourseInstructor{}); err != nil {
		return Module{}, err
	}
	return s.repo.Create(ctx, input)
}

// Get returns a module visible to the principal.
func (s *Service) Get(ctx context.Context, p *shared.Principal, id int64) (Module, error) {
	if _, err := s.gate.Resolve(ctx, authz.Module, p, id, authz.IsEnrolled{}); err != nil {
		return Module{}, err
	}
	return s.repo.Get(ctx, id)
}

// List returns the modules of courses the principal can see.
func (s *Service) List(ctx context.Context, p *shared.Principal, filters ListFilters) ([]Module, error) {
	access, args := authz.ListPredicate(authz.Module, p, 1, authz.IsEnrolled{})
	return s.repo.List(ctx, access, args, filters)
}

// Update patches a module. Instructors of the owning course only.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, input UpdateModule) (Module, error) {
	if _, err := s.gate.Resolve(ctx, authz.Module, p, id, authz.IsCourseInstructor{}); err != nil {
		return Module{}, err
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a module. Instructors of the owning course only.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	if _, err := s.gate.Resolve(ctx, authz.Module, p, id, authz.IsCourseInstructor{}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ValidatePair rejects a (course, module) pair that does not line up.
func (s *Service) ValidatePair(ctx context.Context, courseID, moduleID int64) error {
	ok, err := s.repo.BelongsToCourse(ctx, moduleID, courseID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: module does not belong to the given course", shared.ErrValidation)
	}
	return nil
}
