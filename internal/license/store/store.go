package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/license"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectLicenseColumns = `
	id::text, key, client_name, status, price, origin, product_type, machine_id, activated_at, created_at
`

func scanLicense(s scanner) (*license.License, error) {
	var (
		l           license.License
		status      string
		price       decimal.NullDecimal
		origin      sql.NullString
		productType sql.NullString
		machineID   sql.NullString
		activatedAt sql.NullTime
	)

	if err := s.Scan(
		&l.ID, &l.Key, &l.ClientName, &status, &price, &origin, &productType, &machineID, &activatedAt, &l.CreatedAt,
	); err != nil {
		return nil, err
	}

	l.Status = license.Status(status)
	l.Price = price.Decimal
	l.Origin = origin.String
	l.ProductType = productType.String
	l.MachineID = machineID.String

	if activatedAt.Valid {
		l.ActivatedAt = &activatedAt.Time
	}

	return &l, nil
}

func (s *Store) FindByKey(ctx context.Context, key string) (*license.License, error) {
	query := `SELECT ` + selectLicenseColumns + ` FROM licenses WHERE key = $1`

	l, err := scanLicense(s.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, license.ErrNotFound
		}

		return nil, fmt.Errorf("finding license: %w", err)
	}

	return l, nil
}

// BindMachine only writes while machine_id is still NULL and the license is
// active, so two machines racing to activate the same key cannot both win and a
// block landing after the read is not overridden.
func (s *Store) BindMachine(ctx context.Context, id, machineID string, activatedAt time.Time) error {
	query := `
		UPDATE licenses
		SET machine_id = $1, activated_at = $2
		WHERE id = $3 AND machine_id IS NULL AND status = $4
	`

	res, err := s.db.ExecContext(ctx, query, machineID, activatedAt, id, string(license.StatusActive))
	if err != nil {
		return fmt.Errorf("binding machine: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return license.ErrAlreadyBound
	}

	return nil
}

func (s *Store) CreateLicense(ctx context.Context, l *license.License) error {
	query := `
		INSERT INTO licenses (key, client_name, status, price, origin, product_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id::text, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		l.Key,
		l.ClientName,
		l.Status,
		l.Price,
		nullableString(l.Origin),
		nullableString(l.ProductType),
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return license.ErrDuplicateKey
		}

		return fmt.Errorf("creating license: %w", err)
	}

	return nil
}

func (s *Store) ListLicenses(ctx context.Context) ([]*license.License, error) {
	query := `SELECT ` + selectLicenseColumns + ` FROM licenses ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing licenses: %w", err)
	}
	defer rows.Close()

	var out []*license.License

	for rows.Next() {
		l, err := scanLicense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning license: %w", err)
		}

		out = append(out, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating licenses: %w", err)
	}

	return out, nil
}

func (s *Store) SetStatus(ctx context.Context, key string, status license.Status) error {
	res, err := s.db.ExecContext(ctx, `UPDATE licenses SET status = $1 WHERE key = $2`, status, key)
	if err != nil {
		return fmt.Errorf("updating license status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return license.ErrNotFound
	}

	return nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
