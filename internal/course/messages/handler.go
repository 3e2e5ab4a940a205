package messages

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/educa-hq/educa/internal/platform/httpx"
	"github.com/educa-hq/educa/internal/shared"
)

// Handler wires HTTP endpoints for course messages. Every route requires
// authentication; finer rules live in the service.
type Handler struct {
	service  *Service
	authmw   func(http.Handler) http.Handler
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(service *Service, authmw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authmw: authmw, validate: validator.New()}
}

// MountRoutes registers message routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.authmw)
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Get("/{message_id}", h.handleGet)
	r.Patch("/{message_id}", h.handleUpdate)
	r.Delete("/{message_id}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input NewMessage
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	m, err := h.service.Create(r.Context(), p, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, m)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "message_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	m, err := h.service.Get(r.Context(), p, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
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
	filters.Title = q.Get("title")
	created, err := shared.ParseDateRange(q.Get("created"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	filters.Created = created

	p := shared.PrincipalFromContext(r.Context())
	list, err := h.service.List(r.Context(), p, filters)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "message_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input UpdateMessage
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	m, err := h.service.Update(r.Context(), p, id, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "message_id")
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
