package course

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/educa-hq/educa/internal/platform/httpx"
	"github.com/educa-hq/educa/internal/shared"
)

// Handler wires HTTP endpoints for courses and enrollments.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	stats    *StatsReader
	authmw   func(http.Handler) http.Handler
	validate *validator.Validate
}

// NewHandler constructs a Handler instance. authmw guards the mutation
// routes; reads of the catalog stay public.
func NewHandler(logger *slog.Logger, service *Service, stats *StatsReader, authmw func(http.Handler) http.Handler) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, stats: stats, authmw: authmw, validate: validator.New()}
}

// MountRoutes registers course routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{course_id}", h.handleGet)
	r.Get("/{course_id}/stats", h.handleStats)

	r.Group(func(r chi.Router) {
		r.Use(h.authmw)
		r.Post("/", h.handleCreate)
		r.Patch("/{course_id}", h.handleUpdate)
		r.Delete("/{course_id}", h.handleDelete)

		r.Route("/relation", func(r chi.Router) {
			r.Post("/", h.handleEnroll)
			r.Get("/", h.handleListRelations)
			r.Get("/{course_id}", h.handleGetRelation)
			r.Patch("/{course_id}", h.handleUpdateRelation)
			r.Delete("/{course_id}", h.handleDeleteRelation)
		})
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input NewCourse
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	created, err := h.service.Create(r.Context(), shared.PrincipalFromContext(r.Context()), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, created)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "course_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, found)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	categories, err := shared.ParseIDSet(r.URL.Query().Get("categories"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	filters := ListFilters{
		Categories: categories,
		Language:   r.URL.Query().Get("language"),
		Level:      r.URL.Query().Get("level"),
		Search:     r.URL.Query().Get("search"),
	}
	courses, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list courses", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, courses)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "course_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input UpdateCourse
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	updated, err := h.service.Update(r.Context(), shared.PrincipalFromContext(r.Context()), id, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "course_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), shared.PrincipalFromContext(r.Context()), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "course_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if _, err := h.service.Get(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	stats, err := h.stats.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("course stats", slog.Int64("course_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

type relationIn struct {
	CourseID int64 `json:"course_id" validate:"required,gt=0"`
}

type relationUpdate struct {
	Done bool `json:"done"`
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	var input relationIn
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	rel, err := h.service.Enroll(r.Context(), shared.PrincipalFromContext(r.Context()), input.CourseID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rel)
}

func (h *Handler) handleGetRelation(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "course_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rel, err := h.service.GetRelation(r.Context(), shared.PrincipalFromContext(r.Context()), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rel)
}

func (h *Handler) handleListRelations(w http.ResponseWriter, r *http.Request) {
	relations, err := h.service.ListRelations(r.Context(), shared.PrincipalFromContext(r.Context()))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, relations)
}

func (h *Handler) handleUpdateRelation(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "course_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input relationUpdate
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	rel, err := h.service.UpdateRelation(r.Context(), shared.PrincipalFromContext(r.Context()), id, input.Done)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rel)
}

func (h *Handler) handleDeleteRelation(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "course_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteRelation(r.Context(), shared.PrincipalFromContext(r.Context()), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
