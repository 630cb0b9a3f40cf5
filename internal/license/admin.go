package license

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const issueAttempts = 3

type AdminService struct {
	repo   AdminRepository
	logger *zap.Logger
}

func NewAdminService(repo AdminRepository, logger *zap.Logger) *AdminService {
	return &AdminService{repo: repo, logger: logger}
}

type IssueParams struct {
	ClientName  string
	Price       decimal.Decimal
	Origin      string
	ProductType string
}

// Issue creates an active, unbound license under a freshly generated key.
func (s *AdminService) Issue(ctx context.Context, params IssueParams) (*License, error) {
	if strings.TrimSpace(params.ClientName) == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalid)
	}

	if params.Price.IsNegative() {
		return nil, fmt.Errorf("%w: negative price %s", ErrInvalid, params.Price)
	}

	for range issueAttempts {
		key, err := GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("generating key: %w", err)
		}

		lic := &License{
			Key:         key,
			ClientName:  strings.TrimSpace(params.ClientName),
			Status:      StatusActive,
			Price:       params.Price,
			Origin:      params.Origin,
			ProductType: params.ProductType,
		}

		err = s.repo.CreateLicense(ctx, lic)
		if errors.Is(err, ErrDuplicateKey) {
			s.logger.Warn("generated license key collided, retrying")
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("creating license: %w", err)
		}

		s.logger.Info("license issued",
			zap.String("id", lic.ID),
			zap.String("client", lic.ClientName),
		)

		return lic, nil
	}

	return nil, fmt.Errorf("creating license: %w", ErrDuplicateKey)
}

func (s *AdminService) List(ctx context.Context) ([]*License, error) {
	return s.repo.ListLicenses(ctx)
}

func (s *AdminService) Block(ctx context.Context, key string) error {
	return s.setStatus(ctx, key, StatusBlocked)
}

// Unblock reactivates a license. Its machine binding is left as it was.
func (s *AdminService) Unblock(ctx context.Context, key string) error {
	return s.setStatus(ctx, key, StatusActive)
}

func (s *AdminService) setStatus(ctx context.Context, key string, status Status) error {
	key = NormalizeKey(key)

	if err := s.repo.SetStatus(ctx, key, status); err != nil {
		return fmt.Errorf("setting license %s: %w", status, err)
	}

	s.logger.Info("license status changed",
		zap.String("key", maskKey(key)),
		zap.String("status", string(status)),
	)

	return nil
}
