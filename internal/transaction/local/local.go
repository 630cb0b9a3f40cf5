// Package local stores transactions in the embedded local store.
package local

import (
	"context"
	"fmt"
	"slices"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cofre/internal/localstore"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

type Gateway interface {
	GetAll(ctx context.Context, table localstore.Table) []localstore.Record
	Insert(ctx context.Context, table localstore.Table, fields localstore.Record) (string, error)
	Update(ctx context.Context, table localstore.Table, id string, fields localstore.Record) (int64, error)
	Remove(ctx context.Context, table localstore.Table, id string) (int64, error)
}

type Store struct {
	gw     Gateway
	logger *zap.Logger
}

func New(gw Gateway, logger *zap.Logger) *Store {
	return &Store{gw: gw, logger: logger}
}

// CreateTransactions inserts one row at a time. A failure part way leaves the
// earlier rows in place.
func (s *Store) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	for i, tx := range txs {
		id, err := s.gw.Insert(ctx, localstore.TableTransactions, toRecord(tx))
		if err != nil {
			return fmt.Errorf("creating transaction %d of %d: %w", i+1, len(txs), err)
		}

		tx.ID = id
		tx.CreatedAt = time.Now().UTC()
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*transaction.Transaction, error) {
	for _, r := range s.gw.GetAll(ctx, localstore.TableTransactions) {
		if r.ID() != id {
			continue
		}

		return fromRecord(r)
	}

	return nil, transaction.ErrNotFound
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction

	for _, r := range s.gw.GetAll(ctx, localstore.TableTransactions) {
		tx, err := fromRecord(r)
		if err != nil {
			s.logger.Warn("skipping unreadable local transaction", zap.String("id", r.ID()), zap.Error(err))
			continue
		}

		if matches(tx, filter) {
			out = append(out, tx)
		}
	}

	slices.SortStableFunc(out, func(a, b *transaction.Transaction) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}

		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return out, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	n, err := s.gw.Update(ctx, localstore.TableTransactions, tx.ID, localstore.Record{
		"description": tx.Description,
		"amount":      tx.Amount.String(),
		"type":        string(tx.Type),
		"category":    nullable(tx.Category),
		"date":        tx.Date.String(),
	})
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return found(n)
}

func (s *Store) ConfirmPayment(ctx context.Context, id string, paidAmount decimal.Decimal) error {
	n, err := s.gw.Update(ctx, localstore.TableTransactions, id, localstore.Record{
		"status":      string(transaction.StatusCompleted),
		"paid_amount": paidAmount.String(),
	})
	if err != nil {
		return fmt.Errorf("confirming payment: %w", err)
	}

	return found(n)
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	n, err := s.gw.Remove(ctx, localstore.TableTransactions, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return found(n)
}

func matches(tx *transaction.Transaction, f transaction.ListFilter) bool {
	switch {
	case f.UserID != "" && tx.UserID != f.UserID:
		return false
	case f.Status != nil && tx.Status != *f.Status:
		return false
	case f.StartDate != nil && tx.Date.Before(*f.StartDate):
		return false
	case f.EndDate != nil && tx.Date.After(*f.EndDate):
		return false
	}

	return true
}

func toRecord(tx *transaction.Transaction) localstore.Record {
	return localstore.Record{
		"user_id":      tx.UserID,
		"account_id":   tx.AccountID,
		"description":  tx.Description,
		"amount":       tx.Amount.String(),
		"type":         string(tx.Type),
		"category":     nullable(tx.Category),
		"status":       string(tx.Status),
		"paid_amount":  tx.PaidAmount.String(),
		"is_recurring": tx.IsRecurring,
		"date":         tx.Date.String(),
	}
}

func fromRecord(r localstore.Record) (*transaction.Transaction, error) {
	amount, err := decimal.NewFromString(r.String("amount"))
	if err != nil {
		return nil, fmt.Errorf("parsing amount: %w", err)
	}

	paid, err := decimal.NewFromString(r.String("paid_amount"))
	if err != nil {
		return nil, fmt.Errorf("parsing paid amount: %w", err)
	}

	date, err := civil.ParseDate(r.String("date"))
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}

	// A bad created_at only affects ordering.
	createdAt, _ := time.Parse(time.RFC3339Nano, r.String("created_at"))

	return &transaction.Transaction{
		ID:          r.ID(),
		UserID:      r.String("user_id"),
		AccountID:   r.String("account_id"),
		Description: r.String("description"),
		Amount:      amount,
		Type:        transaction.Type(r.String("type")),
		Category:    r.String("category"),
		Status:      transaction.Status(r.String("status")),
		PaidAmount:  paid,
		IsRecurring: r.Bool("is_recurring"),
		Date:        date,
		CreatedAt:   createdAt,
	}, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}

	return s
}

func found(n int64) error {
	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
