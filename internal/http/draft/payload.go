package draft

import (
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/MrJamesThe3rd/cofre/internal/draft"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

// Payload is the wire form of a draft. Amounts are integer cents.
type Payload struct {
	Description       string           `json:"description"`
	TotalAmount       int64            `json:"total_amount"`
	InstallmentAmount int64            `json:"installment_amount"`
	InputMode         draft.InputMode  `json:"input_mode"`
	InstallmentCount  int              `json:"installment_count"`
	Type              transaction.Type `json:"type"`
	Category          string           `json:"category,omitempty"`
	StartDate         civil.Date       `json:"start_date"`
}

// Draft converts p, filling in the defaults a fresh draft would have.
func (p Payload) Draft() draft.Draft {
	d := draft.New(p.StartDate)
	d.Description = p.Description
	d.TotalAmount = p.TotalAmount
	d.InstallmentAmount = p.InstallmentAmount
	d.Category = p.Category

	if p.InputMode.Valid() {
		d.InputMode = p.InputMode
	}

	if p.InstallmentCount > 0 {
		d.InstallmentCount = p.InstallmentCount
	}

	if p.Type != "" {
		d.Type = p.Type
	}

	return d
}

func FromDraft(d draft.Draft) Payload {
	return Payload{
		Description:       d.Description,
		TotalAmount:       d.TotalAmount,
		InstallmentAmount: d.InstallmentAmount,
		InputMode:         d.InputMode,
		InstallmentCount:  d.InstallmentCount,
		Type:              d.Type,
		Category:          d.Category,
		StartDate:         d.StartDate,
	}
}

// CheckCount rejects drafts that would expand into more installments than the
// API serves.
func CheckCount(d draft.Draft) error {
	if d.InstallmentCount > draft.MaxInstallments {
		return fmt.Errorf("installment_count must be at most %d", draft.MaxInstallments)
	}

	return nil
}
