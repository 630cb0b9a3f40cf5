package installment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cofre/internal/category"
	"github.com/MrJamesThe3rd/cofre/internal/draft"
	"github.com/MrJamesThe3rd/cofre/internal/observability"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

type CategoryLister interface {
	List(ctx context.Context, userID string) ([]*category.Category, error)
}

type TransactionCreator interface {
	CreateBatch(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error)
}

type Service struct {
	categories   CategoryLister
	transactions TransactionCreator
	metrics      *observability.Metrics
	logger       *zap.Logger
}

func NewService(categories CategoryLister, transactions TransactionCreator, metrics *observability.Metrics, logger *zap.Logger) *Service {
	return &Service{
		categories:   categories,
		transactions: transactions,
		metrics:      metrics,
		logger:       logger,
	}
}

// Submit expands d and persists every installment in one batch. Whether a
// failed batch leaves some installments behind depends on the repository.
func (s *Service) Submit(ctx context.Context, d draft.Draft, userID string) ([]*transaction.Transaction, error) {
	var categories []*category.Category

	if d.Category == "" {
		cats, err := s.categories.List(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("listing categories: %w", err)
		}

		categories = cats
	}

	txs, err := s.transactions.CreateBatch(ctx, Expand(d, userID, categories))
	if err != nil {
		return nil, fmt.Errorf("saving installments: %w", err)
	}

	s.metrics.RecordInstallmentPlan(len(txs))
	s.logger.Info("installment plan created",
		zap.String("user_id", userID),
		zap.Int("count", len(txs)),
		zap.String("mode", string(d.InputMode)),
	)

	return txs, nil
}
