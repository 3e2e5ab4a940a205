package questions

import (
	"context"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, creatorID, courseID int64, input NewQuestion) (Question, error)
	Get(ctx context.Context, id int64) (Question, error)
	List(ctx context.Context, access string, accessArgs []any, filters ListFilters) ([]Question, error)
	Update(ctx context.Context, id int64, input UpdateQuestion) (Question, error)
	Delete(ctx context.Context, id int64) error
}

// Service wraps question business rules.
type Service struct {
	repo Store
	gate *authz.Gate
}

// NewService constructs a new Service.
func NewService(repo Store, gate *authz.Gate) *Service {
	return &Service{repo: repo, gate: gate}
}

// Create stores a question on a lesson the principal can see.
func (s *Service) Create(ctx context.Context, p *shared.Principal, input NewQuestion) (Question, error) {
	obj, err := s.gate.Resolve(ctx, authz.Lesson, p, input.LessonID, authz.IsEnrolled{})
	if err != nil {
		return Question{}, err
	}
	return s.repo.Create(ctx, p.ID, obj.CourseID, input)
}

// Get returns a question visible to the principal.
func (s *Service) Get(ctx context.Context, p *shared.Principal, id int64) (Question, error) {
	if _, err := s.gate.Resolve(ctx, authz.Question, p, id, authz.IsEnrolled{}); err != nil {
		return Question{}, err
	}
	return s.repo.Get(ctx, id)
}

// List returns the questions of courses the principal can see.
func (s *Service) List(ctx context.Context, p *shared.Principal, filters ListFilters) ([]Question, error) {
	access, args := authz.ListPredicate(authz.Question, p, 1, authz.IsEnrolled{})
	return s.repo.List(ctx, access, args, filters)
}

// Update patches a question. Creator only.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, input UpdateQuestion) (Question, error) {
	if _, err := s.gate.Resolve(ctx, authz.Question, p, id, authz.IsCreator{}); err != nil {
		return Question{}, err
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a question. Creator only.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	if _, err := s.gate.Resolve(ctx, authz.Question, p, id, authz.IsCreator{}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
