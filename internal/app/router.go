package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/educa-hq/educa/internal/auth"
	"github.com/educa-hq/educa/internal/course"
	"github.com/educa-hq/educa/internal/course/categories"
	"github.com/educa-hq/educa/internal/course/messages"
	"github.com/educa-hq/educa/internal/course/ratings"
	"github.com/educa-hq/educa/internal/generic/actions"
	"github.com/educa-hq/educa/internal/generic/answers"
	"github.com/educa-hq/educa/internal/lessons"
	"github.com/educa-hq/educa/internal/lessons/contents"
	"github.com/educa-hq/educa/internal/lessons/notes"
	"github.com/educa-hq/educa/internal/lessons/questions"
	"github.com/educa-hq/educa/internal/modules"
	"github.com/educa-hq/educa/internal/observability"
	"github.com/educa-hq/educa/internal/quizzes"
	"github.com/educa-hq/educa/internal/users"
	"github.com/educa-hq/educa/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthHandler     *auth.Handler
	UsersHandler    *users.Handler
	CourseHandler   *course.Handler
	CategoryHandler *categories.Handler
	RatingHandler   *ratings.Handler
	MessageHandler  *messages.Handler
	ModuleHandler   *modules.Handler
	LessonHandler   *lessons.Handler
	NoteHandler     *notes.Handler
	QuestionHandler *questions.Handler
	ContentHandler  *contents.Handler
	QuizHandler     *quizzes.Handler
	AnswerHandler   *answers.Handler
	ActionHandler   *actions.Handler
	JobHandler      *jobs.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with Educa defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/user", params.UsersHandler.MountRoutes)

	r.Route("/course", func(r chi.Router) {
		r.Route("/category", params.CategoryHandler.MountRoutes)
		r.Route("/rating", params.RatingHandler.MountRoutes)
		r.Route("/message", params.MessageHandler.MountRoutes)
		r.Route("/module", params.ModuleHandler.MountRoutes)
		r.Route("/lesson", func(r chi.Router) {
			r.Route("/note", params.NoteHandler.MountRoutes)
			r.Route("/question", params.QuestionHandler.MountRoutes)
			r.Route("/content", params.ContentHandler.MountRoutes)
			r.Group(params.LessonHandler.MountRoutes)
		})
		params.CourseHandler.MountRoutes(r)
	})

	r.Route("/module/quiz", params.QuizHandler.MountRoutes)

	r.Route("/generic", func(r chi.Router) {
		r.Route("/answer", params.AnswerHandler.MountRoutes)
		r.Route("/action", params.ActionHandler.MountRoutes)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
