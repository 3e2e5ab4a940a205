package lessons

import (
	"context"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, input NewLesson) (Lesson, error)
	Get(ctx context.Context, id int64) (Lesson, error)
	List(ctx context.Context, access string, accessArgs []any, filters ListFilters) ([]Lesson, error)
	Update(ctx context.Context, id int64, input UpdateLesson) (Lesson, error)
	Delete(ctx context.Context, id int64) error
	CreateRelation(ctx context.Context, lessonID, creatorID int64) (Relation, error)
	GetRelation(ctx context.Context, lessonID, creatorID int64) (Relation, error)
	ListRelations(ctx context.Context, creatorID int64) ([]Relation, error)
	UpdateRelation(ctx context.Context, lessonID, creatorID int64, done bool) (Relation, error)
	DeleteRelation(ctx context.Context, lessonID, creatorID int64) error
}

// PairValidator rejects (course, module) pairs that do not line up.
type PairValidator interface {
	ValidatePair(ctx context.Context, courseID, moduleID int64) error
}

// Service wraps lesson business rules.
type Service struct {
	repo    Store
	gate    *authz.Gate
	modules PairValidator
}

// NewService constructs a new Service.
func NewService(repo Store, gate *authz.Gate, modules PairValidator) *Service {
	return &Service{repo: repo, gate: gate, modules: modules}
}

// Create stores a lesson. Instructors of the course only; the module must
// belong to the same course.
func (s *Service) Create(ctx context.Context, p *shared.Principal, input NewLesson) (Lesson, error) {
	if _, err := s.gate.Resolve(ctx, authz.Course, p, input.CourseID, authz.IsCourseInstructor{}); err != nil {
		return Lesson{}, err
	}
	if err := s.modules.ValidatePair(ctx, input.CourseID, input.ModuleID); err != nil {
		return Lesson{}, err
	}
	return s.repo.Create(ctx, input)
}

// Get returns a lesson visible to the principal.
func (s *Service) Get(ctx context.Context, p *shared.Principal, id int64) (Lesson, error) {
	if _, err := s.gate.Resolve(ctx, authz.Lesson, p, id, authz.IsEnrolled{}); err != nil {
		return Lesson{}, err
	}
	return s.repo.Get(ctx, id)
}

// List returns the lessons of courses the principal can see.
func (s *Service) List(ctx context.Context, p *shared.Principal, filters ListFilters) ([]Lesson, error) {
	access, args := authz.ListPredicate(authz.Lesson, p, 1, authz.IsEnrolled{})
	return s.repo.List(ctx, access, args, filters)
}

// Update patches a lesson. Instructors of the owning course only.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, input UpdateLesson) (Lesson, error) {
	if _, err := s.gate.Resolve(ctx, authz.Lesson, p, id, authz.IsCourseInstructor{}); err != nil {
		return Lesson{}, err
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a lesson. Instructors of the owning course only.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	if _, err := s.gate.Resolve(ctx, authz.Lesson, p, id, authz.IsCourseInstructor{}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// StartRelation begins progress tracking on a lesson. Enrollment required;
// a second relation for the same lesson conflicts.
func (s *Service) StartRelation(ctx context.Context, p *shared.Principal, lessonID int64) (Relation, error) {
	if _, err := s.gate.Resolve(ctx, authz.Lesson, p, lessonID, authz.IsEnrolled{}); err != nil {
		return Relation{}, err
	}
	return s.repo.CreateRelation(ctx, lessonID, p.ID)
}

// GetRelation returns the caller's progress for a lesson.
func (s *Service) GetRelation(ctx context.Context, p *shared.Principal, lessonID int64) (Relation, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return Relation{}, err
	}
	return s.repo.GetRelation(ctx, lessonID, p.ID)
}

// ListRelations returns all of the caller's lesson progress rows.
func (s *Service) ListRelations(ctx context.Context, p *shared.Principal) ([]Relation, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	return s.repo.ListRelations(ctx, p.ID)
}

// UpdateRelation marks the caller's progress for a lesson.
func (s *Service) UpdateRelation(ctx context.Context, p *shared.Principal, lessonID int64, done bool) (Relation, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return Relation{}, err
	}
	return s.repo.UpdateRelation(ctx, lessonID, p.ID, done)
}

// DeleteRelation removes the caller's progress for a lesson.
func (s *Service) DeleteRelation(ctx context.Context, p *shared.Principal, lessonID int64) error {
	if err := authz.RequireAuthenticated(p); err != nil {
		return err
	}
	return s.repo.DeleteRelation(ctx, lessonID, p.ID)
}
