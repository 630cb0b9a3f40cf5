package license

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/http/respond"
	"github.com/MrJamesThe3rd/cofre/internal/license"
)

type AdminHandler struct {
	svc *license.AdminService
}

func NewAdminHandler(svc *license.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Routes(r chi.Router) {
	r.Post("/", h.issue)
	r.Get("/", h.list)
	r.Post("/{key}/block", h.block)
	r.Post("/{key}/unblock", h.unblock)
}

type licenseResponse struct {
	ID          string          `json:"id"`
	Key         string          `json:"key"`
	ClientName  string          `json:"client_name"`
	Status      license.Status  `json:"status"`
	Price       decimal.Decimal `json:"price"`
	Origin      string          `json:"origin,omitempty"`
	ProductType string          `json:"product_type,omitempty"`
	MachineID   *string         `json:"machine_id"`
	ActivatedAt *time.Time      `json:"activated_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toResponse(l *license.License) licenseResponse {
	resp := licenseResponse{
		ID:          l.ID,
		Key:         l.Key,
		ClientName:  l.ClientName,
		Status:      l.Status,
		Price:       l.Price,
		Origin:      l.Origin,
		ProductType: l.ProductType,
		ActivatedAt: l.ActivatedAt,
		CreatedAt:   l.CreatedAt,
	}

	if l.Bound() {
		resp.MachineID = new(l.MachineID)
	}

	return resp
}

type issueRequest struct {
	ClientName  string          `json:"client_name"`
	Price       decimal.Decimal `json:"price"`
	Origin      string          `json:"origin"`
	ProductType string          `json:"product_type"`
}

func (h *AdminHandler) issue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	l, err := h.svc.Issue(r.Context(), license.IssueParams{
		ClientName:  req.ClientName,
		Price:       req.Price,
		Origin:      req.Origin,
		ProductType: req.ProductType,
	})
	if err != nil {
		if errors.Is(err, license.ErrInvalid) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		respond.Error(w, http.StatusInternalServerError, "could not issue license")

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(l))
}

func (h *AdminHandler) list(w http.ResponseWriter, r *http.Request) {
	ls, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make([]licenseResponse, len(ls))
	for i, l := range ls {
		resp[i] = toResponse(l)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) block(w http.ResponseWriter, r *http.Request) {
	h.writeStatusResult(w, h.svc.Block(r.Context(), chi.URLParam(r, "key")))
}

func (h *AdminHandler) unblock(w http.ResponseWriter, r *http.Request) {
	h.writeStatusResult(w, h.svc.Unblock(r.Context(), chi.URLParam(r, "key")))
}

func (h *AdminHandler) writeStatusResult(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, license.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "license not found")
	default:
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}
