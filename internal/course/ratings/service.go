package ratings

import (
	"context"
	"log/slog"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

// Store abstracts persistence for the service.
type Store interface {
	Create(ctx context.Context, creatorID int64, input NewRating) (Rating, error)
	Get(ctx context.Context, id int64) (Rating, error)
	List(ctx context.Context, filters ListFilters) ([]Rating, error)
	Update(ctx context.Context, id int64, input UpdateRating) (Rating, error)
	Delete(ctx context.Context, id int64) error
}

// StatsEnqueuer schedules a course statistics refresh after a rating
// changes.
type StatsEnqueuer interface {
	EnqueueStatsRefresh(ctx context.Context, courseID int64) error
}

// Service wraps rating business rules.
type Service struct {
	logger *slog.Logger
	repo   Store
	gate   *authz.Gate
	stats  StatsEnqueuer
}

// NewService constructs a new Service.
func NewService(logger *slog.Logger, repo Store, gate *authz.Gate, stats StatsEnqueuer) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, repo: repo, gate: gate, stats: stats}
}

// Create stores a rating. Only users enrolled in the course (or its
// instructors) may rate it; a second rating by the same user conflicts.
func (s *Service) Create(ctx context.Context, p *shared.Principal, input NewRating) (Rating, error) {
	if _, err := s.gate.Resolve(ctx, authz.Course, p, input.CourseID, authz.IsEnrolled{}); err != nil {
		return Rating{}, err
	}
	rt, err := s.repo.Create(ctx, p.ID, input)
	if err != nil {
		return Rating{}, err
	}
	s.enqueueStats(ctx, rt.CourseID)
	return rt, nil
}

// Get returns a rating; reviews are public.
func (s *Service) Get(ctx context.Context, id int64) (Rating, error) {
	return s.repo.Get(ctx, id)
}

// List returns ratings narrowed by filters.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Rating, error) {
	return s.repo.List(ctx, filters)
}

// Update patches a rating. Creator only.
func (s *Service) Update(ctx context.Context, p *shared.Principal, id int64, input UpdateRating) (Rating, error) {
	if _, err := s.gate.Resolve(ctx, authz.Rating, p, id, authz.IsCreator{}); err != nil {
		return Rating{}, err
	}
	rt, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return Rating{}, err
	}
	s.enqueueStats(ctx, rt.CourseID)
	return rt, nil
}

// Delete removes a rating. Creator only.
func (s *Service) Delete(ctx context.Context, p *shared.Principal, id int64) error {
	obj, err := s.gate.Resolve(ctx, authz.Rating, p, id, authz.IsCreator{})
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.enqueueStats(ctx, obj.CourseID)
	return nil
}

func (s *Service) enqueueStats(ctx context.Context, courseID int64) {
	if s.stats == nil {
		return
	}
	if err := s.stats.EnqueueStatsRefresh(ctx, courseID); err != nil {
		s.logger.Warn("enqueue stats refresh", "course_id", courseID, "error", err)
	}
}
