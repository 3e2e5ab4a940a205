package categories

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/educa-hq/educa/internal/platform/httpx"
	"github.com/educa-hq/educa/internal/shared"
)

// Handler wires HTTP endpoints for the category catalog.
type Handler struct {
	service  *Service
	authmw   func(http.Handler) http.Handler
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(service *Service, authmw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authmw: authmw, validate: validator.New()}
}

// MountRoutes registers category routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{category_id}", h.handleGet)

	r.Group(func(r chi.Router) {
		r.Use(h.authmw)
		r.Post("/", h.handleCreate)
		r.Patch("/{category_id}", h.handleUpdate)
		r.Delete("/{category_id}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input NewCategory
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	cat, err := h.service.Create(r.Context(), p, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, cat)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "category_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	cat, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cat)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"
	cats, err := h.service.List(r.Context(), onlyActive)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cats)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "category_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input UpdateCategory
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	cat, err := h.service.Update(r.Context(), p, id, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cat)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "category_id")
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
