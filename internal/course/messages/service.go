package messages

import (
	"context"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, creatorID int64, input NewMessage) (Message, error)
	Get(ctx context.Context, id int64) (Message, error)
	List(ctx context.Context, access string, accessArgs []any, filters ListFilters) ([]Message, error)
	Update(ctx context.Context, id int64, input UpdateMessage) (Message, error)
	Delete(ctx context.Context, id int64) error
}

// Service wraps message business rules. Announcements are written by
// instructors and read by the enrolled.
type Service struct {
	repo Store
	gate *authz.Gate
}

// NewService constructs a new Service.
func NewService(repo Store, gate *authz.Gate) *Service {
	return &Service{repo: repo, gate: gate}
}

// Create stores a message. Instructors of the course only.
func (s *Service) Create(ctx context.Context, p *shared.Principal, input NewMessage) (Message, error) {
	if _, err := s.gate.Resolve(ctx, authz.Course, p, input.CourseID, authz.IsCourseInstructor{}); err != nil {
		return Message{}, err
	}
	return s.repo.Create(ctx, p.ID, input)
}

// Get returns a message visible to the principal. Enrollment (or an
// instructor seat) is required.
func (s *Service) Get(ctx context.Context, p *shared.Principal, id int64) (Message, error) {
	if _, err := s.gate.Resolve(ctx, authz.Message, p, id, authz.IsEnrolled{}); err != nil {
		return Message{}, err
	}
	return s.repo.Get(ctx, id)
}

// List returns the messages of courses the principal can see, narrowed by
// filters. Enforcement happens in the query itself.
func (s *Service) List(ctx context.Context, p *shared.Principal, filters ListFilters) ([]Message, error) {
	access, args := authz.ListPredicate(authz.Message, p, 1, authz.IsEnrolled{})
	return s.repo.List(ctx, access, args, filters)
}

// Update patches a message. Instructors of the owning course only.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, input UpdateMessage) (Message, error) {
	if _, err := s.gate.Resolve(ctx, authz.Message, p, id, authz.IsCourseInstructor{}); err != nil {
		return Message{}, err
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a message. Instructors of the owning course only.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	if _, err := s.gate.Resolve(ctx, authz.Message, p, id, authz.IsCourseInstructor{}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
