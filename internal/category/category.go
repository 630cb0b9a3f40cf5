package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

// DefaultName is used when a transaction has no category and the user has
// none of the matching type.
const DefaultName = "Geral"

var ErrInvalid = errors.New("invalid category")

type Category struct {
	ID        string
	UserID    string
	Name      string
	Type      transaction.Type
	CreatedAt time.Time
}

//go:generate mockgen -source=category.go -destination=repository_mock.go -package=category
type Repository interface {
	ListCategories(ctx context.Context, userID string) ([]*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID string
	Name   string
	Type   transaction.Type
}

func (s *Service) List(ctx context.Context, userID string) ([]*Category, error) {
	return s.repo.ListCategories(ctx, userID)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalid)
	}

	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalid, params.Type)
	}

	c := &Category{
		UserID: params.UserID,
		Name:   name,
		Type:   params.Type,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return c, nil
}

// Resolve picks the category for a new transaction: the explicit one if set,
// else the first category of the matching type, else DefaultName.
func Resolve(explicit string, typ transaction.Type, categories []*Category) string {
	if explicit != "" {
		return explicit
	}

	for _, c := range categories {
		if c.Type == typ {
			return c.Name
		}
	}

	return DefaultName
}
