package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner and returns a populated Transaction.
// Expected column order: id, user_id, account_id, description, amount, type, category, status,
// paid_amount, is_recurring, date, created_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr, statusStr string

	var category sql.NullString

	var date time.Time

	if err := s.Scan(
		&tx.ID, &tx.UserID, &tx.AccountID, &tx.Description, &tx.Amount, &typeStr, &category, &statusStr,
		&tx.PaidAmount, &tx.IsRecurring, &date, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.Status = transaction.Status(statusStr)
	tx.Category = category.String
	tx.Date = civil.DateOf(date)

	return &tx, nil
}

const selectTransactionColumns = `
	id::text, user_id, account_id, description, amount, type, category, status,
	paid_amount, is_recurring, date, created_at
`

const insertTransactionQuery = `
	INSERT INTO transactions (user_id, account_id, description, amount, type, category, status, paid_amount, is_recurring, date, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	RETURNING id::text, created_at
`

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateTransactions inserts every transaction inside one database transaction,
// so an installment batch is persisted entirely or not at all.
func (s *Store) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, insertTransactionQuery)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		err := stmt.QueryRowContext(ctx,
			tx.UserID,
			tx.AccountID,
			tx.Description,
			tx.Amount,
			tx.Type,
			nullableString(tx.Category),
			tx.Status,
			tx.PaidAmount,
			tx.IsRecurring,
			tx.Date.In(time.UTC),
		).Scan(&tx.ID, &tx.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transactions: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*transaction.Transaction, error) {
	if !validID(id) {
		return nil, transaction.ErrNotFound
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)

		args = append(args, filter.UserID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, filter.StartDate.In(time.UTC))
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, filter.EndDate.In(time.UTC))
		argIdx++
	}

	query += " ORDER BY date ASC, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if !validID(tx.ID) {
		return transaction.ErrNotFound
	}

	query := `
		UPDATE transactions
		SET description = $1, amount = $2, type = $3, category = $4, date = $5
		WHERE id = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.Description,
		tx.Amount,
		tx.Type,
		nullableString(tx.Category),
		tx.Date.In(time.UTC),
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return expectOneRow(res)
}

func (s *Store) ConfirmPayment(ctx context.Context, id string, paidAmount decimal.Decimal) error {
	if !validID(id) {
		return transaction.ErrNotFound
	}

	query := `
		UPDATE transactions
		SET status = $1, paid_amount = $2
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, transaction.StatusCompleted, paidAmount, id)
	if err != nil {
		return fmt.Errorf("confirming payment: %w", err)
	}

	return expectOneRow(res)
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	if !validID(id) {
		return transaction.ErrNotFound
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return expectOneRow(res)
}

// validID rejects ids Postgres would refuse to cast to uuid.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
