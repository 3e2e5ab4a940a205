package contents

import (
	"context"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, courseID int64, input NewContent) (Content, error)
	Get(ctx context.Context, id int64) (Content, error)
	List(ctx context.Context, access string, accessArgs []any, lessonID int64) ([]Content, error)
	Update(ctx context.Context, id int64, input UpdateContent) (Content, error)
	Delete(ctx context.Context, id int64) error
}

// Service wraps content business rules.
type Service struct {
	repo Store
	gate *authz.Gate
}

// NewService constructs a new Service.
func NewService(repo Store, gate *authz.Gate) *Service {
	return &Service{repo: repo, gate: gate}
}

// Create attaches content to a lesson. Instructors of the owning course
// only.
func (s *Service) Create(ctx context.Context, p *shared.Principal, input NewContent) (Content, error) {
	obj, err := s.gate.Resolve(ctx, authz.Lesson, p, input.LessonID, authz.IsCourseInstructor{})
	if err != nil {
		return Content{}, err
	}
	return s.repo.Create(ctx, obj.CourseID, input)
}

// Get returns a content row visible to the principal.
func (s *Service) Get(ctx context.Context, p *shared.Principal, id int64) (Content, error) {
	if _, err := s.gate.Resolve(ctx, authz.Content, p, id, authz.IsEnrolled{}); err != nil {
		return Content{}, err
	}
	return s.repo.Get(ctx, id)
}

// List returns the contents of courses the principal can see.
func (s *Service) List(ctx context.Context, p *shared.Principal, lessonID int64) ([]Content, error) {
	access, args := authz.ListPredicate(authz.Content, p, 1, authz.IsEnrolled{})
	return s.repo.List(ctx, access, args, lessonID)
}

// Update patches a content row. Instructors of the owning course only.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, input UpdateContent) (Content, error) {
	if _, err := s.gate.Resolve(ctx, authz.Content, p, id, authz.IsCourseInstructor{}); err != nil {
		return Content{}, err
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a content row. Instructors of the owning course only.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	if _, err := s.gate.Resolve(ctx, authz.Content, p, id, authz.IsCourseInstructor{}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
