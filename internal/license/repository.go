package license

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=license

// Repository is what validation needs from a license backend.
type Repository interface {
	FindByKey(ctx context.Context, key string) (*License, error)
	// BindMachine sets the machine only while none is set, returning
	// ErrAlreadyBound otherwise.
	BindMachine(ctx context.Context, id, machineID string, activatedAt time.Time) error
}

// AdminRepository adds issuing and status management.
type AdminRepository interface {
	Repository
	CreateLicense(ctx context.Context, l *License) error
	ListLicenses(ctx context.Context) ([]*License, error)
	SetStatus(ctx context.Context, key string, status Status) error
}
