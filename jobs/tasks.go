package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/educa-hq/educa/internal/course"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCourseStatsRefresh recomputes the denormalised aggregates of a course.
	TaskCourseStatsRefresh = "course:stats_refresh"
)

// CourseStatsRefreshPayload identifies the course to recompute.
type CourseStatsRefreshPayload struct {
	CourseID int64 `json:"course_id"`
}

// NewCourseStatsRefreshTask constructs an Asynq task.
func NewCourseStatsRefreshTask(payload CourseStatsRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCourseStatsRefresh, data), nil
}

// StatsRefresher recomputes course aggregates in storage.
type StatsRefresher interface {
	RefreshStats(ctx context.Context, courseID int64) (course.Stats, error)
}

// StatsInvalidator drops cached aggregates after a refresh.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, courseID int64)
}

// NewCourseStatsRefreshHandler processes TaskCourseStatsRefresh tasks.
func NewCourseStatsRefreshHandler(repo StatsRefresher, cache StatsInvalidator, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload CourseStatsRefreshPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		stats, err := repo.RefreshStats(ctx, payload.CourseID)
		if err != nil {
			return err
		}
		if cache != nil {
			cache.Invalidate(ctx, payload.CourseID)
		}
		logger.Info("course stats refreshed",
			slog.Int64("course_id", payload.CourseID),
			slog.Int64("enrolled", stats.EnrolledCount),
			slog.Float64("average_rating", stats.AverageRating))
		return nil
	}
}
