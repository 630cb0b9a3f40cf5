package draft

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/draft"
	"github.com/MrJamesThe3rd/cofre/internal/http/respond"
	"github.com/MrJamesThe3rd/cofre/internal/installment"
)

// Handler lets a front-end keep a draft reconciled without duplicating the
// rounding rules.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/reconcile", h.reconcile)
}

type eventRequest struct {
	Kind  draft.EventKind `json:"kind"`
	Field draft.InputMode `json:"field,omitempty"`
	Raw   string          `json:"raw,omitempty"`
	Count int             `json:"count,omitempty"`
}

type reconcileRequest struct {
	Draft Payload      `json:"draft"`
	Event eventRequest `json:"event"`
}

type scheduleEntry struct {
	Description string          `json:"description"`
	Date        civil.Date      `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
}

type reconcileResponse struct {
	Draft    Payload         `json:"draft"`
	Schedule []scheduleEntry `json:"schedule"`
}

func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	d, err := draft.Apply(req.Draft.Draft(), draft.Event{
		Kind:  req.Event.Kind,
		Field: req.Event.Field,
		Raw:   req.Event.Raw,
		Count: req.Event.Count,
	})
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := CheckCount(d); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	// Category resolution needs the user's categories and isn't part of the preview.
	params := installment.Expand(d, "", nil)

	schedule := make([]scheduleEntry, len(params))
	for i, p := range params {
		schedule[i] = scheduleEntry{Description: p.Description, Date: p.Date, Amount: p.Amount.Round(2)}
	}

	respond.JSON(w, http.StatusOK, reconcileResponse{Draft: FromDraft(d), Schedule: schedule})
}
