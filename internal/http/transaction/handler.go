package transaction

import (
	"context"
	"errors"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/auth"
	"github.com/MrJamesThe3rd/cofre/internal/draft"
	httpdraft "github.com/MrJamesThe3rd/cofre/internal/http/draft"
	"github.com/MrJamesThe3rd/cofre/internal/http/respond"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

type Submitter interface {
	Submit(ctx context.Context, d draft.Draft, userID string) ([]*transaction.Transaction, error)
}

type Handler struct {
	svc         *transaction.Service
	installment Submitter
}

func NewHandler(svc *transaction.Service, installment Submitter) *Handler {
	return &Handler{svc: svc, installment: installment}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/payment", h.confirmPayment)
}

// create takes a draft and stores one transaction per installment.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req httpdraft.Payload
	if !respond.Decode(w, r, &req) {
		return
	}

	d := req.Draft()

	if !d.Type.Valid() {
		respond.Error(w, http.StatusBadRequest, "type must be income or expense")
		return
	}

	if !d.StartDate.IsValid() {
		respond.Error(w, http.StatusBadRequest, "start_date is required")
		return
	}

	if err := httpdraft.CheckCount(d); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := h.installment.Submit(r.Context(), d, userID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "could not save transactions")
		return
	}

	respond.JSON(w, http.StatusCreated, toResponseList(txs))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	filter := transaction.ListFilter{UserID: userID}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(transaction.Status(s))
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		d, err := civil.ParseDate(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}

		filter.StartDate = new(d)
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		d, err := civil.ParseDate(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
			return
		}

		filter.EndDate = new(d)
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, ok := h.load(w, r)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	tx, ok := h.load(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), tx.ID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateTransactionRequest struct {
	Description *string           `json:"description,omitempty"`
	Amount      *decimal.Decimal  `json:"amount,omitempty"`
	Type        *transaction.Type `json:"type,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Date        *civil.Date       `json:"date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateTransactionRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	tx, ok := h.load(w, r)
	if !ok {
		return
	}

	if req.Description != nil {
		tx.Description = *req.Description
	}

	if req.Amount != nil {
		tx.Amount = *req.Amount
	}

	if req.Type != nil {
		if !req.Type.Valid() {
			respond.Error(w, http.StatusBadRequest, "type must be income or expense")
			return
		}

		tx.Type = *req.Type
	}

	if req.Category != nil {
		tx.Category = *req.Category
	}

	if req.Date != nil {
		tx.Date = *req.Date
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

type confirmPaymentRequest struct {
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

func (h *Handler) confirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	tx, ok := h.load(w, r)
	if !ok {
		return
	}

	if err := h.svc.ConfirmPayment(r.Context(), tx.ID, req.PaidAmount); err != nil {
		writeError(w, err)
		return
	}

	tx.Status = transaction.StatusCompleted
	tx.PaidAmount = req.PaidAmount

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

// load fetches the transaction named in the URL, hiding other users' rows as
// not found.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*transaction.Transaction, bool) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, err.Error())
		return nil, false
	}

	tx, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err == nil && tx.UserID != userID {
		err = transaction.ErrNotFound
	}

	if err != nil {
		writeError(w, err)
		return nil, false
	}

	return tx, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, transaction.ErrInvalid):
		respond.Error(w, http.StatusBadRequest, err.Error())
	default:
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}
