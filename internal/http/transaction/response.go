package transaction

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

type transactionResponse struct {
	ID          string             `json:"id"`
	AccountID   string             `json:"account_id"`
	Description string             `json:"description"`
	Amount      decimal.Decimal    `json:"amount"`
	Type        transaction.Type   `json:"type"`
	Category    string             `json:"category,omitempty"`
	Status      transaction.Status `json:"status"`
	PaidAmount  decimal.Decimal    `json:"paid_amount"`
	Interest    decimal.Decimal    `json:"interest"`
	IsRecurring bool               `json:"is_recurring"`
	Date        civil.Date         `json:"date"`
	CreatedAt   time.Time          `json:"created_at"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Category:    tx.Category,
		Status:      tx.Status,
		PaidAmount:  tx.PaidAmount,
		Interest:    tx.Interest(),
		IsRecurring: tx.IsRecurring,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
