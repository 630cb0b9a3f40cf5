package transaction

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	ConfirmPayment(ctx context.Context, id string, paidAmount decimal.Decimal) error
	DeleteTransaction(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams is the creation payload for a single transaction record.
type CreateParams struct {
	UserID      string
	AccountID   string
	Category    string
	Amount      decimal.Decimal
	Description string
	Type        Type
	Status      Status
	Date        civil.Date
	IsRecurring bool
}

type ListFilter struct {
	UserID    string
	Status    *Status
	StartDate *civil.Date
	EndDate   *civil.Date
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	txs, err := s.CreateBatch(ctx, []CreateParams{params})
	if err != nil {
		return nil, err
	}

	return txs[0], nil
}

// CreateBatch persists all params in a single repository call. Whether the
// batch is atomic is up to the repository.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := paramsToTransactions(params)
	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	return txs, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	return s.repo.UpdateTransaction(ctx, tx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// ConfirmPayment marks the transaction completed with the amount actually
// paid, which may exceed the booked amount.
func (s *Service) ConfirmPayment(ctx context.Context, id string, paidAmount decimal.Decimal) error {
	if paidAmount.IsNegative() {
		return fmt.Errorf("%w: negative paid amount %s", ErrInvalid, paidAmount)
	}

	return s.repo.ConfirmPayment(ctx, id, paidAmount)
}

func paramsToTransactions(params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		status := p.Status
		if status == "" {
			status = StatusPending
		}

		accountID := p.AccountID
		if accountID == "" {
			accountID = DefaultAccountID
		}

		txs[i] = &Transaction{
			UserID:      p.UserID,
			AccountID:   accountID,
			Description: p.Description,
			Amount:      p.Amount,
			Type:        p.Type,
			Category:    p.Category,
			Status:      status,
			PaidAmount:  decimal.Zero,
			IsRecurring: p.IsRecurring,
			Date:        p.Date,
		}
	}

	return txs
}
