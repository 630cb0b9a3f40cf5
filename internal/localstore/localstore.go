// Package localstore is the embedded SQLite store used when running without
// the remote backend. It exposes table-generic CRUD over a fixed set of tables.
//
// Reads fail soft: errors are logged and an empty result is returned. Writes
// fail hard and return the error.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/MrJamesThe3rd/cofre/internal/observability"
)

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown column")
	ErrNoFields      = errors.New("no fields to write")
)

// Record is one row keyed by column name. The id column is always present on
// records read back.
type Record map[string]any

type Store struct {
	db      *sql.DB
	logger  *zap.Logger
	metrics *observability.Metrics
}

// Open opens (creating if needed) the database file at path in WAL mode and
// ensures every table exists. One process should own the file.
func Open(ctx context.Context, path string, logger *zap.Logger, metrics *observability.Metrics) (*Store, error) {
	dsn := "file:" + path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating local tables: %w", err)
	}

	return &Store{db: db, logger: logger, metrics: metrics}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetAll returns every row of table in id order, or nil on any error.
func (s *Store) GetAll(ctx context.Context, table Table) []Record {
	return readSoft(s, table, func() ([]Record, error) {
		if err := checkTable(table); err != nil {
			return nil, err
		}

		rows, err := s.db.QueryContext(ctx, `SELECT * FROM `+string(table)+` ORDER BY id`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		return scanRecords(rows)
	})
}

// Insert adds a row and returns its id. A caller-supplied id is ignored and
// booleans are stored as 0 or 1.
func (s *Store) Insert(ctx context.Context, table Table, fields Record) (string, error) {
	cols, args, err := prepare(table, fields)
	if err != nil {
		return "", writeHard("insert", table, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table,
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
	)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return "", writeHard("insert", table, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", writeHard("insert", table, err)
	}

	return strconv.FormatInt(id, 10), nil
}

// Update sets fields on the row with id and reports how many rows changed.
func (s *Store) Update(ctx context.Context, table Table, id string, fields Record) (int64, error) {
	cols, args, err := prepare(table, fields)
	if err != nil {
		return 0, writeHard("update", table, err)
	}

	assignments := make([]string, len(cols))
	for i, c := range cols {
		assignments[i] = c + " = ?"
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?`, table, strings.Join(assignments, ", "))

	n, err := s.exec(ctx, query, append(args, id)...)
	if err != nil {
		return 0, writeHard("update", table, err)
	}

	return n, nil
}

// Remove deletes the row with id and reports how many rows were removed.
func (s *Store) Remove(ctx context.Context, table Table, id string) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, writeHard("remove", table, err)
	}

	n, err := s.exec(ctx, `DELETE FROM `+string(table)+` WHERE id = ?`, id)
	if err != nil {
		return 0, writeHard("remove", table, err)
	}

	return n, nil
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

// readSoft is the read-path policy: log, count and swallow.
func readSoft(s *Store, table Table, fn func() ([]Record, error)) []Record {
	records, err := fn()
	if err != nil {
		s.logger.Warn("local read failed, returning empty result",
			zap.String("table", string(table)),
			zap.Error(err),
		)
		s.metrics.IncrLocalReadFailure(string(table))

		return nil
	}

	return records
}

// writeHard is the write-path policy: always surface the error.
func writeHard(op string, table Table, err error) error {
	return fmt.Errorf("local %s into %s: %w", op, table, err)
}

func checkTable(table Table) error {
	if _, ok := columns[table]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	return nil
}

// prepare validates fields against the table's columns and returns them in a
// stable order with their values coerced for storage.
func prepare(table Table, fields Record) ([]string, []any, error) {
	if err := checkTable(table); err != nil {
		return nil, nil, err
	}

	allowed := columns[table]

	cols := slices.Sorted(maps.Keys(fields))
	cols = slices.DeleteFunc(cols, func(c string) bool { return c == "id" })

	if len(cols) == 0 {
		return nil, nil, ErrNoFields
	}

	args := make([]any, len(cols))

	for i, c := range cols {
		if _, ok := allowed[c]; !ok {
			return nil, nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, c)
		}

		args[i] = coerce(fields[c])
	}

	return cols, args, nil
}

func coerce(v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return 1
		}

		return 0
	}

	return v
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Record

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))

		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make(Record, len(cols))
		for i, c := range cols {
			rec[c] = values[i]
		}

		out = append(out, rec)
	}

	return out, rows.Err()
}
