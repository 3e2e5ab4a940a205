package answers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/educa-hq/educa/internal/platform/httpx"
	"github.com/educa-hq/educa/internal/shared"
)

// Handler wires HTTP endpoints for generic answers.
type Handler struct {
	service  *Service
	authmw   func(http.Handler) http.Handler
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(service *Service, authmw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authmw: authmw, validate: validator.New()}
}

// MountRoutes registers answer routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.authmw)
	r.Post("/", h.handleCreate)
	r.Get("/{object_model}/{object_id}", h.handleListByObject)
	r.Get("/{answer_id}", h.handleGet)
	r.Patch("/{answer_id}", h.handleUpdate)
	r.Delete("/{answer_id}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input NewAnswer
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

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "answer_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	a, err := h.service.Get(r.Context(), p, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

func (h *Handler) handleListByObject(w http.ResponseWriter, r *http.Request) {
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
	list, err := h.service.ListByObject(r.Context(), p, model, objectID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "answer_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input UpdateAnswer
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	a, err := h.service.Update(r.Context(), p, id, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "answer_id")
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
