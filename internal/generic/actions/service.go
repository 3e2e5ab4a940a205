package actions

import (
	"context"
	"fmt"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/generic"
	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, creatorID, courseID int64, input NewAction) (Action, error)
	CountByObject(ctx context.Context, objectModel string, objectID int64, action string) (int64, error)
	DeleteByObject(ctx context.Context, creatorID int64, objectModel string, objectID int64) error
}

// Service wraps like/dislike business rules.
type Service struct {
	repo     Store
	gate     *authz.Gate
	registry *generic.Registry
}

// NewService constructs a new Service.
func NewService(repo Store, gate *authz.Gate, registry *generic.Registry) *Service {
	return &Service{repo: repo, gate: gate, registry: registry}
}

// Create places an action on an allow-listed content object. The target's
// permission chain gates the call; a duplicate action conflicts.
func (s *Service) Create(ctx context.Context, p *shared.Principal, input NewAction) (Action, error) {
	target, err := s.registry.Resolve(input.ObjectModel)
	if err != nil {
		return Action{}, err
	}
	obj, err := target.Authorize(ctx, s.gate, p, input.ObjectID)
	if err != nil {
		return Action{}, err
	}
	if obj == nil {
		return Action{}, fmt.Errorf("%w: invalid generic model", shared.ErrValidation)
	}
	input.ObjectModel = target.Resource.Name
	return s.repo.Create(ctx, p.ID, obj.CourseID, input)
}

// ValidateModel rejects model names outside the registry. Handlers run it
// before inspecting the object id, so an unknown model always surfaces as
// a validation error.
func (s *Service) ValidateModel(name string) error {
	_, err := s.registry.Resolve(name)
	return err
}

// Count tallies the actions of one kind on a content object. The model
// name is validated against the registry first.
func (s *Service) Count(ctx context.Context, p *shared.Principal, objectModel string, objectID int64, action string) (int64, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return 0, err
	}
	target, err := s.registry.Resolve(objectModel)
	if err != nil {
		return 0, err
	}
	if action != Like && action != Dislike {
		return 0, fmt.Errorf("%w: invalid action", shared.ErrValidation)
	}
	return s.repo.CountByObject(ctx, target.Resource.Name, objectID, action)
}

// Delete removes the caller's actions on a content object.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, objectModel string, objectID int64) error {
	if err := authz.RequireAuthenticated(p); err != nil {
		return err
	}
	target, err := s.registry.Resolve(objectModel)
	if err != nil {
		return err
	}
	return s.repo.DeleteByObject(ctx, p.ID, target.Resource.Name, objectID)
}
