package answers

import (
	"context"
	"fmt"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/generic"
	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, creatorID, courseID int64, input NewAnswer) (Answer, error)
	Get(ctx context.Context, id int64) (Answer, error)
	ListByObject(ctx context.Context, access string, accessArgs []any, objectModel string, objectID int64) ([]Answer, error)
	Update(ctx context.Context, id int64, input UpdateAnswer) (Answer, error)
	Delete(ctx context.Context, id int64) error
}

// Service wraps answer business rules. Targets come from a closed
// registry; the target's own permission chain gates every create.
type Service struct {
	repo     Store
	gate     *authz.Gate
	registry *generic.Registry
}

// NewService constructs a new Service.
func NewService(repo Store, gate *authz.Gate, registry *generic.Registry) *Service {
	return &Service{repo: repo, gate: gate, registry: registry}
}

// Create stores an answer attached to an allow-listed content object. The
// owning course is taken from the resolved target, never from the caller.
func (s *Service) Create(ctx context.Context, p *shared.Principal, input NewAnswer) (Answer, error) {
	target, err := s.registry.Resolve(input.ObjectModel)
	if err != nil {
		return Answer{}, err
	}
	obj, err := target.Authorize(ctx, s.gate, p, input.ObjectID)
	if err != nil {
		return Answer{}, err
	}
	if obj == nil {
		return Answer{}, fmt.Errorf("%w: invalid generic model", shared.ErrValidation)
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

// Get returns an answer visible to the principal.
func (s *Service) Get(ctx context.Context, p *shared.Principal, id int64) (Answer, error) {
	if _, err := s.gate.Resolve(ctx, authz.Answer, p, id, authz.IsEnrolled{}); err != nil {
		return Answer{}, err
	}
	return s.repo.Get(ctx, id)
}

// ListByObject returns the answers on one content object. The model name
// is validated against the registry before any id is dereferenced.
func (s *Service) ListByObject(ctx context.Context, p *shared.Principal, objectModel string, objectID int64) ([]Answer, error) {
	target, err := s.registry.Resolve(objectModel)
	if err != nil {
		return nil, err
	}
	access, args := authz.ListPredicate(authz.Answer, p, 1, authz.IsEnrolled{})
	return s.repo.ListByObject(ctx, access, args, target.Resource.Name, objectID)
}

// Update patches an answer. Creator only.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, input UpdateAnswer) (Answer, error) {
	if _, err := s.gate.Resolve(ctx, authz.Answer, p, id, authz.IsCreator{}); err != nil {
		return Answer{}, err
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes an answer. The creator or any instructor of the owning
// course may delete.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	if _, err := s.gate.Resolve(ctx, authz.Answer, p, id,
		authz.Any{authz.IsCreator{}, authz.IsCourseInstructor{}}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
