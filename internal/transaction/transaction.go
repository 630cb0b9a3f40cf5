package transaction

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("transaction not found")
	ErrInvalid  = errors.New("invalid transaction")
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Status represents the lifecycle state of a transaction.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// DefaultAccountID is the single account every transaction is booked against.
const DefaultAccountID = "acc1"

// Transaction represents a financial transaction. Installments of the same
// purchase are independent rows that only share a "(i/N)" description suffix.
type Transaction struct {
	ID          string
	UserID      string
	AccountID   string
	Description string
	Amount      decimal.Decimal // Per-installment amount in major units
	Type        Type
	Category    string
	Status      Status
	PaidAmount  decimal.Decimal
	IsRecurring bool
	Date        civil.Date
	CreatedAt   time.Time
}

// Interest is the amount paid on top of the booked amount. Zero while unpaid
// or when paid for less than the amount.
func (t *Transaction) Interest() decimal.Decimal {
	if t.Status != StatusCompleted || t.PaidAmount.LessThanOrEqual(t.Amount) {
		return decimal.Zero
	}

	return t.PaidAmount.Sub(t.Amount)
}
