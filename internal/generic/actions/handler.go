package actions

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/educa-hq/educa/internal/platform/httpx"
	"github.com/educa-hq/educa/internal/shared"
)

// Handler wires HTTP endpoints for generic actions.
type Handler struct {
	service  *Service
	authmw   func(http.Handler) http.Handler
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(service *Service, authmw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authmw: authmw, validate: validator.New()}
}

// MountRoutes registers action routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.authmw)
	r.Post("/", h.handleCreate)
	r.Get("/{object_model}/{object_id}", h.handleCount)
	r.Delete("/{object_model}/{object_id}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input NewAction
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	a, err := h.service.Create(r.Context(), p, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, a)
}

type countOut struct {
	ObjectModel string `json:"object_model"`
	ObjectID    int64  `json:"object_id"`
	Action      string `json:"action"`
	Count       int64  `json:"count"`
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "object_model")
	if err := h.service.ValidateModel(model); err != nil {
		httpx.RespondError(w, err)
		return
	}
	objectID, err := httpx.PathID(r, "object_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	action := r.URL.Query().Get("action")
	if action == "" {
		action = Like
	}

	p := shared.PrincipalFromContext(r.Context())
	count, err := h.service.Count(r.Context(), p, model, objectID, action)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, countOut{ObjectModel: model, ObjectID: objectID, Action: action, Count: count})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "object_model")
	if err := h.service.ValidateModel(model); err != nil {
		httpx.RespondError(w, err)
		return
	}
	objectID, err := httpx.PathID(r, "object_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	if err := h.service.Delete(r.Context(), p, model, objectID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
