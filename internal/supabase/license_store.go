package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/license"
)

const licensesTable = "licenses"

type licenseRow struct {
	ID          string              `json:"id"`
	Key         string              `json:"key"`
	ClientName  string              `json:"client_name"`
	Status      string              `json:"status"`
	Price       decimal.NullDecimal `json:"price"`
	Origin      *string             `json:"origin"`
	ProductType *string             `json:"product_type"`
	MachineID   *string             `json:"machine_id"`
	ActivatedAt *time.Time          `json:"activated_at"`
	CreatedAt   time.Time           `json:"created_at"`
}

func (r licenseRow) toDomain() *license.License {
	return &license.License{
		ID:          r.ID,
		Key:         r.Key,
		ClientName:  r.ClientName,
		Status:      license.Status(r.Status),
		Price:       r.Price.Decimal,
		Origin:      deref(r.Origin),
		ProductType: deref(r.ProductType),
		MachineID:   deref(r.MachineID),
		ActivatedAt: r.ActivatedAt,
		CreatedAt:   r.CreatedAt,
	}
}

// LicenseRepository validates licenses against the hosted licenses table.
type LicenseRepository struct {
	client *Client
}

func NewLicenseRepository(client *Client) *LicenseRepository {
	return &LicenseRepository{client: client}
}

func (r *LicenseRepository) FindByKey(ctx context.Context, key string) (*license.License, error) {
	var rows []licenseRow
	if err := r.client.Select(ctx, licensesTable, &rows, Eq("key", key)); err != nil {
		return nil, mapErr(err)
	}

	if len(rows) == 0 {
		return nil, license.ErrNotFound
	}

	return rows[0].toDomain(), nil
}

// BindMachine filters on machine_id IS NULL and an active status so the patch
// is a no-op once any machine holds the license or it has been blocked.
func (r *LicenseRepository) BindMachine(ctx context.Context, id, machineID string, activatedAt time.Time) error {
	patch := map[string]any{
		"machine_id":   machineID,
		"activated_at": activatedAt.UTC(),
	}

	var rows []licenseRow
	if err := r.client.Update(ctx, licensesTable, patch, &rows, Eq("id", id), IsNull("machine_id"), Eq("status", string(license.StatusActive))); err != nil {
		return mapErr(err)
	}

	if len(rows) == 0 {
		return license.ErrAlreadyBound
	}

	return nil
}

// mapErr treats a missing or rejected API key as misconfiguration. Anything
// else is left for the caller to count as a connectivity failure.
func mapErr(err error) error {
	if errors.Is(err, ErrNotConfigured) {
		return fmt.Errorf("%w: %w", license.ErrConfiguration, err)
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) && (statusErr.Code == http.StatusUnauthorized || statusErr.Code == http.StatusForbidden) {
		return fmt.Errorf("%w: %w", license.ErrConfiguration, err)
	}

	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
