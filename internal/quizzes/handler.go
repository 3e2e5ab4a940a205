package quizzes

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/educa-hq/educa/internal/platform/httpx"
	"github.com/educa-hq/educa/internal/shared"
)

// Handler wires HTTP endpoints for quizzes.
type Handler struct {
	service  *Service
	authmw   func(http.Handler) http.Handler
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(service *Service, authmw func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authmw: authmw, validate: validator.New()}
}

// MountRoutes registers quiz routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.authmw)
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Post("/question", h.handleCreateQuestion)

	r.Route("/relation", func(r chi.Router) {
		r.Get("/", h.handleListRelations)
		r.Delete("/{quiz_id}", h.handleDeleteRelation)
	})

	r.Get("/{quiz_id}", h.handleGet)
	r.Patch("/{quiz_id}", h.handleUpdate)
	r.Delete("/{quiz_id}", h.handleDelete)
	r.Post("/{quiz_id}/check", h.handleCheck)
	r.Patch("/{quiz_id}/question/{question_id}", h.handleUpdateQuestion)
	r.Delete("/{quiz_id}/question/{question_id}", h.handleDeleteQuestion)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input NewQuiz
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	q, err := h.service.Create(r.Context(), p, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "quiz_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	q, err := h.service.Get(r.Context(), p, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var courseID int64
	if raw := r.URL.Query().Get("course_id"); raw != "" {
		id, err := httpx.QueryID(raw)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		courseID = id
	}
	p := shared.PrincipalFromContext(r.Context())
	list, err := h.service.List(r.Context(), p, courseID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "quiz_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input UpdateQuiz
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	q, err := h.service.Update(r.Context(), p, id, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "quiz_id")
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

func (h *Handler) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var input NewQuestion
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	q, err := h.service.CreateQuestion(r.Context(), p, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

func (h *Handler) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, err := httpx.PathID(r, "quiz_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	questionID, err := httpx.PathID(r, "question_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input UpdateQuestion
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	q, err := h.service.UpdateQuestion(r.Context(), p, quizID, questionID, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, err := httpx.PathID(r, "quiz_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	questionID, err := httpx.PathID(r, "question_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	if err := h.service.DeleteQuestion(r.Context(), p, quizID, questionID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

type checkIn struct {
	Response map[int64]int32 `json:"response" validate:"required"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "quiz_id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input checkIn
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validate.Struct(input); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	p := shared.PrincipalFromContext(r.Context())
	result, err := h.service.Check(r.Context(), p, id, input.Response)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) handleListRelations(w http.ResponseWriter, r *http.Request) {
	var quizID int64
	if raw := r.URL.Query().Get("quiz_id"); raw != "" {
		id, err := httpx.QueryID(raw)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		quizID = id
	}
	p := shared.PrincipalFromContext(r.Context())
	list, err := h.service.ListRelations(r.Context(), p, quizID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleDeleteRelation(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "quiz_id")
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
