package lessons

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/educa-hq/educa/internal/platform/httpx"
	"github.com/educa-hq/educa/internal/shared"
)

// Handler wires HTTP endpoints for lessons and lesson progress.
type Handler struct {
	service  *Service
	authmw   func(http.Handler) http.Handler
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(service *Service, authmw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authmw: authmw, validate: validator.New()}
}

// MountRoutes registers lesson routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.authmw)
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)

	r.Route("/relation", func(r chi.Router) {
		r.Post("/", h.handleStartRelation)
		r.Get("/", h.handleListRelations)
		r.Get("/{lesson_id}", h.handleGetRelation)
		r.Patch("/{lesson_id}", h.handleUpdateRelation)
		r.Delete("/{lesson_id}", h.handleDeleteRelation)
	})

	r.Get("/{lesson_id}", h.handleGet)
	r.Patch("/{lesson_id}", h.handleUpdate)
	r.Delete("/{lesson_id}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input NewLesson
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	l, err := h.service.Create(r.Context(), p, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, l)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "lesson_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	l, err := h.service.Get(r.Context(), p, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, l)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filters ListFilters
	if raw := q.Get("course_id"); raw != "" {
		id, err := httpx.QueryID(raw)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		filters.CourseID = id
	}
	if raw := q.Get("module_id"); raw != "" {
		id, err := httpx.QueryID(raw)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		filters.ModuleID = id
	}
	filters.Title = q.Get("title")

	p := shared.PrincipalFromContext(r.Context())
	list, err := h.service.List(r.Context(), p, filters)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "lesson_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input UpdateLesson
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	l, err := h.service.Update(r.Context(), p, id, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, l)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "lesson_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

type relationIn struct {
	LessonID int64 `json:"lesson_id" validate:"required,gt=0"`
}

type relationUpdate struct {
	Done bool `json:"done"`
}

func (h *Handler) handleStartRelation(w http.ResponseWriter, r *http.Request) {
	var input relationIn
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	rel, err := h.service.StartRelation(r.Context(), p, input.LessonID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rel)
}

func (h *Handler) handleGetRelation(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "lesson_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	rel, err := h.service.GetRelation(r.Context(), p, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rel)
}

func (h *Handler) handleListRelations(w http.ResponseWriter, r *http.Request) {
	p := shared.PrincipalFromContext(r.Context())
	list, err := h.service.ListRelations(r.Context(), p)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleUpdateRelation(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "lesson_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input relationUpdate
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	rel, err := h.service.UpdateRelation(r.Context(), p, id, input.Done)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rel)
}

func (h *Handler) handleDeleteRelation(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "lesson_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	if err := h.service.DeleteRelation(r.Context(), p, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
