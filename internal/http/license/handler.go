package license

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cofre/internal/http/respond"
	"github.com/MrJamesThe3rd/cofre/internal/license"
)

type Validator interface {
	Check(ctx context.Context, key, machineID string) license.Result
}

// Handler is the public validation endpoint used by desktop installs.
type Handler struct {
	svc Validator
}

func NewHandler(svc Validator) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/validate", h.validate)
}

type validateRequest struct {
	Key       string `json:"key"`
	MachineID string `json:"machine_id"`
}

// statusByCode keeps the response body meaningful on failure while letting
// clients branch on the HTTP status.
var statusByCode = map[string]int{
	"activated":           http.StatusOK,
	"valid":               http.StatusOK,
	"not_found":           http.StatusNotFound,
	"blocked":             http.StatusForbidden,
	"machine_mismatch":    http.StatusConflict,
	"configuration_error": http.StatusServiceUnavailable,
	"connectivity_error":  http.StatusBadGateway,
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if req.Key == "" || req.MachineID == "" {
		respond.Error(w, http.StatusBadRequest, "key and machine_id are required")
		return
	}

	res := h.svc.Check(r.Context(), req.Key, req.MachineID)

	status, ok := statusByCode[res.Code]
	if !ok {
		status = http.StatusBadGateway
	}

	respond.JSON(w, status, res)
}
