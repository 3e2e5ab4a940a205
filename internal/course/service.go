package course

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, input NewCourse, instructors, categories []int64) (Course, error)
	Get(ctx context.Context, id int64) (Course, error)
	List(ctx context.Context, filters ListFilters) ([]Course, error)
	Update(ctx context.Context, id int64, input UpdateCourse) (Course, error)
	Delete(ctx context.Context, id int64) error

	CreateRelation(ctx context.Context, courseID, creatorID int64) (Relation, error)
	GetRelation(ctx context.Context, courseID, creatorID int64) (Relation, error)
	ListRelations(ctx context.Context, creatorID int64) ([]Relation, error)
	UpdateRelation(ctx context.Context, courseID, creatorID int64, done bool) (Relation, error)
	DeleteRelation(ctx context.Context, courseID, creatorID int64) error
}

// MemberValidator rejects id sets naming unknown rows.
type MemberValidator interface {
	ValidateIDs(ctx context.Context, ids []int64) error
}

// StatsEnqueuer schedules a background stats refresh for a course.
type StatsEnqueuer interface {
	EnqueueStatsRefresh(ctx context.Context, courseID int64) error
}

// Service wraps course business rules.
type Service struct {
	logger     *slog.Logger
	repo       Store
	gate       *authz.Gate
	users      MemberValidator
	categories MemberValidator
	stats      StatsEnqueuer
}

// NewService constructs a new Service. stats may be nil when no worker is
// wired.
func NewService(logger *slog.Logger, repo Store, gate *authz.Gate, users, categories MemberValidator, stats StatsEnqueuer) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, repo: repo, gate: gate, users: users, categories: categories, stats: stats}
}

// Create validates the member sets and stores the course. The creator
// always becomes an instructor.
func (s *Service) Create(ctx context.Context, p *shared.Principal, input NewCourse) (Course, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return Course{}, err
	}
	if err := s.users.ValidateIDs(ctx, input.Instructors); err != nil {
		return Course{}, fmt.Errorf("%w: invalid instructors", shared.ErrValidation)
	}
	if err := s.categories.ValidateIDs(ctx, input.Categories); err != nil {
		return Course{}, fmt.Errorf("%w: invalid categories", shared.ErrValidation)
	}
	instructors := appendUnique(input.Instructors, p.ID)
	return s.repo.Create(ctx, input, instructors, input.Categories)
}

// Get returns a course; the catalog is public.
func (s *Service) Get(ctx context.Context, id int64) (Course, error) {
	return s.repo.Get(ctx, id)
}

// List returns courses narrowed by the declarative filters.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Course, error) {
	return s.repo.List(ctx, filters)
}

// Update patches a course. Instructor only.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, input UpdateCourse) (Course, error) {
	if _, err := s.gate.Resolve(ctx, authz.Course, p, id, authz.IsCourseInstructor{}); err != nil {
		return Course{}, err
	}
	if input.Instructors != nil {
		if err := s.users.ValidateIDs(ctx, input.Instructors); err != nil {
			return Course{}, fmt.Errorf("%w: invalid instructors", shared.ErrValidation)
		}
	}
	if input.Categories != nil {
		if err := s.categories.ValidateIDs(ctx, input.Categories); err != nil {
			return Course{}, fmt.Errorf("%w: invalid categories", shared.ErrValidation)
		}
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a course. Instructor only.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	if _, err := s.gate.Resolve(ctx, authz.Course, p, id, authz.IsCourseInstructor{}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Enroll creates the caller's relation with an existing course.
func (s *Service) Enroll(ctx context.Context, p *shared.Principal, courseID int64) (Relation, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return Relation{}, err
	}
	if _, err := s.repo.Get(ctx, courseID); err != nil {
		return Relation{}, err
	}
	rel, err := s.repo.CreateRelation(ctx, courseID, p.ID)
	if err != nil {
		return Relation{}, err
	}
	s.enqueueStats(ctx, courseID)
	return rel, nil
}

// GetRelation returns the caller's enrollment for a course.
func (s *Service) GetRelation(ctx context.Context, p *shared.Principal, courseID int64) (Relation, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return Relation{}, err
	}
	return s.repo.GetRelation(ctx, courseID, p.ID)
}

// ListRelations returns every enrollment of the caller.
func (s *Service) ListRelations(ctx context.Context, p *shared.Principal) ([]Relation, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	return s.repo.ListRelations(ctx, p.ID)
}

// UpdateRelation flips the caller's done flag.
func (s *Service) UpdateRelation(ctx context.Context, p *shared.Principal, courseID int64, done bool) (Relation, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return Relation{}, err
	}
	return s.repo.UpdateRelation(ctx, courseID, p.ID, done)
}

// DeleteRelation removes the caller's enrollment.
func (s *Service) DeleteRelation(ctx context.Context, p *shared.Principal, courseID int64) error {
	if err := authz.RequireAuthenticated(p); err != nil {
		return err
	}
	if err := s.repo.DeleteRelation(ctx, courseID, p.ID); err != nil {
		return err
	}
	s.enqueueStats(ctx, courseID)
	return nil
}

func (s *Service) enqueueStats(ctx context.Context, courseID int64) {
	if s.stats == nil {
		return
	}
	if err := s.stats.EnqueueStatsRefresh(ctx, courseID); err != nil {
		s.logger.Warn("enqueue stats refresh", slog.Int64("course_id", courseID), slog.Any("error", err))
	}
}

func appendUnique(ids []int64, id int64) []int64 {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
