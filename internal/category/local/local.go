// Package local stores categories in the embedded local store.
package local

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/cofre/internal/category"
	"github.com/MrJamesThe3rd/cofre/internal/localstore"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

type Gateway interface {
	GetAll(ctx context.Context, table localstore.Table) []localstore.Record
	Insert(ctx context.Context, table localstore.Table, fields localstore.Record) (string, error)
}

type Store struct {
	gw Gateway
}

func New(gw Gateway) *Store {
	return &Store{gw: gw}
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]*category.Category, error) {
	var out []*category.Category

	for _, r := range s.gw.GetAll(ctx, localstore.TableCategories) {
		if r.String("user_id") != userID {
			continue
		}

		createdAt, _ := time.Parse(time.RFC3339Nano, r.String("created_at"))

		out = append(out, &category.Category{
			ID:        r.ID(),
			UserID:    r.String("user_id"),
			Name:      r.String("name"),
			Type:      transaction.Type(r.String("type")),
			CreatedAt: createdAt,
		})
	}

	return out, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	id, err := s.gw.Insert(ctx, localstore.TableCategories, localstore.Record{
		"user_id": c.UserID,
		"name":    c.Name,
		"type":    string(c.Type),
	})
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	c.ID = id
	c.CreatedAt = time.Now().UTC()

	return nil
}
