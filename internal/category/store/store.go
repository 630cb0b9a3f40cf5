package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/cofre/internal/category"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]*category.Category, error) {
	query := `
		SELECT id::text, user_id, name, type, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at ASC, name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		var (
			c       category.Category
			typeStr string
		)

		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &typeStr, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		c.Type = transaction.Type(typeStr)
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (user_id, name, type, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id::text, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, c.UserID, c.Name, c.Type).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}
