package ratings

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/educa-hq/educa/internal/platform/httpx"
	"github.com/educa-hq/educa/internal/shared"
)

// Handler wires HTTP endpoints for course ratings.
type Handler struct {
	service  *Service
	authmw   func(http.Handler) http.Handler
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(service *Service, authmw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authmw: authmw, validate: validator.New()}
}

// MountRoutes registers rating routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{rating_id}", h.handleGet)

	r.Group(func(r chi.Router) {
		r.Use(h.authmw)
		r.Post("/", h.handleCreate)
		r.Patch("/{rating_id}", h.handleUpdate)
		r.Delete("/{rating_id}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input NewRating
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	rt, err := h.service.Create(r.Context(), p, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rt)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "rating_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rt, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rt)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	list, err := h.service.List(r.Context(), filters)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func parseFilters(r *http.Request) (ListFilters, error) {
	q := r.URL.Query()
	var filters ListFilters
	if raw := q.Get("course_id"); raw != "" {
		id, err := httpx.QueryID(raw)
		if err != nil {
			return ListFilters{}, err
		}
		filters.CourseID = id
	}
	filters.Comment = q.Get("comment")
	rng, err := shared.ParseNumericRange(q.Get("rating"), 1, 5)
	if err != nil {
		return ListFilters{}, err
	}
	filters.Rating = rng
	return filters, nil
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "rating_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input UpdateRating
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	rt, err := h.service.Update(r.Context(), p, id, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rt)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "rating_id")
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
