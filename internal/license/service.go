package license

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cofre/internal/observability"
)

// Service validates keys and binds them to machines. Every failure, including
// ones it does not recognise, denies access.
type Service struct {
	repo    Repository
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewService accepts a nil repo, in which case every validation fails with
// ErrConfiguration.
func NewService(repo Repository, metrics *observability.Metrics, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Validate checks key for machineID, binding the license on first use. A
// license is only reported as activated once the binding has been stored.
func (s *Service) Validate(ctx context.Context, key, machineID string) (Outcome, error) {
	key = NormalizeKey(key)

	outcome, err := s.validate(ctx, key, machineID)

	code := Code(outcome, err)
	s.metrics.IncrLicenseValidation(code)

	if err != nil {
		s.logger.Warn("license validation failed",
			zap.String("key", maskKey(key)),
			zap.String("code", code),
			zap.Error(err),
		)

		return "", err
	}

	s.logger.Info("license validated",
		zap.String("key", maskKey(key)),
		zap.String("code", code),
	)

	return outcome, nil
}

// Check is Validate reduced to a presentable result.
func (s *Service) Check(ctx context.Context, key, machineID string) Result {
	return NewResult(s.Validate(ctx, key, machineID))
}

func (s *Service) validate(ctx context.Context, key, machineID string) (Outcome, error) {
	if s.repo == nil {
		return "", ErrConfiguration
	}

	if machineID == "" {
		return "", fmt.Errorf("%w: empty machine id", ErrConfiguration)
	}

	lic, err := s.find(ctx, key)
	if err != nil {
		return "", err
	}

	if lic.Status != StatusActive {
		return "", ErrBlocked
	}

	if lic.Bound() {
		return checkBinding(lic, machineID)
	}

	err = s.repo.BindMachine(ctx, lic.ID, machineID, s.now().UTC())
	switch {
	case err == nil:
		return OutcomeActivated, nil
	case errors.Is(err, ErrAlreadyBound):
		// Another machine got there between our read and write.
		lic, err := s.find(ctx, key)
		if err != nil {
			return "", err
		}

		if lic.Status != StatusActive {
			return "", ErrBlocked
		}

		return checkBinding(lic, machineID)
	default:
		return "", fmt.Errorf("%w: binding machine: %w", ErrConnectivity, err)
	}
}

func (s *Service) find(ctx context.Context, key string) (*License, error) {
	lic, err := s.repo.FindByKey(ctx, key)
	switch {
	case err == nil:
		return lic, nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConfiguration):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
}

func checkBinding(lic *License, machineID string) (Outcome, error) {
	if lic.MachineID != machineID {
		return "", ErrMachineMismatch
	}

	return OutcomeValid, nil
}

// maskKey keeps the first group so logs can tell keys apart without leaking them.
func maskKey(key string) string {
	if len(key) <= groupSize {
		return "****"
	}

	return key[:groupSize] + "-****"
}
