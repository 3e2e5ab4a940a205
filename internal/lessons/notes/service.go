package notes

import (
	"context"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, creatorID, courseID int64, input NewNote) (Note, error)
	Get(ctx context.Context, id int64) (Note, error)
	List(ctx context.Context, creatorID, lessonID int64) ([]Note, error)
	Update(ctx context.Context, id int64, input UpdateNote) (Note, error)
	Delete(ctx context.Context, id int64) error
}

// Service wraps note business rules. Notes are strictly private to their
// creator.
type Service struct {
	repo Store
	gate *authz.Gate
}

// NewService constructs a new Service.
func NewService(repo Store, gate *authz.Gate) *Service {
	return &Service{repo: repo, gate: gate}
}

// Create stores a note on a lesson the principal can see.
func (s *Service) Create(ctx context.Context, p *shared.Principal, input NewNote) (Note, error) {
	obj, err := s.gate.Resolve(ctx, authz.Lesson, p, input.LessonID, authz.IsEnrolled{})
	if err != nil {
		return Note{}, err
	}
	return s.repo.Create(ctx, p.ID, obj.CourseID, input)
}

// Get returns a note. Creator only.
func (s *Service) Get(ctx context.Context, p *shared.Principal, id int64) (Note, error) {
	if _, err := s.gate.Resolve(ctx, authz.Note, p, id, authz.IsCreator{}); err != nil {
		return Note{}, err
	}
	return s.repo.Get(ctx, id)
}

// List returns the caller's notes, optionally for a single lesson.
func (s *Service) List(ctx context.Context, p *shared.Principal, lessonID int64) ([]Note, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, p.ID, lessonID)
}

// Update patches a note. Creator only.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, input UpdateNote) (Note, error) {
	if _, err := s.gate.Resolve(ctx, authz.Note, p, id, authz.IsCreator{}); err != nil {
		return Note{}, err
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a note. Creator only.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	if _, err := s.gate.Resolve(ctx, authz.Note, p, id, authz.IsCreator{}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
