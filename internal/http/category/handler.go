package category

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cofre/internal/auth"
	"github.com/MrJamesThe3rd/cofre/internal/category"
	"github.com/MrJamesThe3rd/cofre/internal/http/respond"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

type categoryResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Type      transaction.Type `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Type: c.Type, CreatedAt: c.CreatedAt}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	cats, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make([]categoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = toResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createCategoryRequest struct {
	Name string           `json:"name"`
	Type transaction.Type `json:"type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req createCategoryRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), category.CreateParams{UserID: userID, Name: req.Name, Type: req.Type})
	if err != nil {
		if errors.Is(err, category.ErrInvalid) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}
