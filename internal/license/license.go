// Package license issues license keys and binds each one to the first machine
// that activates it.
package license

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("license not found")
	ErrBlocked         = errors.New("license blocked")
	ErrMachineMismatch = errors.New("license bound to another machine")
	ErrConnectivity    = errors.New("license backend unreachable")
	ErrConfiguration   = errors.New("license backend not configured")

	// ErrAlreadyBound is returned by a repository when a conditional bind
	// finds the license already has a machine.
	ErrAlreadyBound = errors.New("license already bound")
	ErrDuplicateKey = errors.New("license key already exists")

	ErrInvalid = errors.New("invalid license")
)

type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusBlocked
}

// License is an issued key. MachineID is empty until the first activation
// and never changes afterwards.
type License struct {
	ID          string
	Key         string
	ClientName  string
	Status      Status
	Price       decimal.Decimal
	Origin      string
	ProductType string
	MachineID   string
	ActivatedAt *time.Time
	CreatedAt   time.Time
}

func (l *License) Bound() bool {
	return l.MachineID != ""
}

// Outcome is how a successful validation went.
type Outcome string

const (
	OutcomeActivated Outcome = "activated"
	OutcomeValid     Outcome = "valid"
)

// Result is a validation outcome ready to show to a user.
type Result struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Code names the outcome or failure kind of a validation.
func Code(outcome Outcome, err error) string {
	switch {
	case err == nil:
		return string(outcome)
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrBlocked):
		return "blocked"
	case errors.Is(err, ErrMachineMismatch):
		return "machine_mismatch"
	case errors.Is(err, ErrConfiguration):
		return "configuration_error"
	default:
		return "connectivity_error"
	}
}

// Message is the user-facing explanation for a validation result. Unknown
// errors are reported as connectivity failures.
func Message(outcome Outcome, err error) string {
	switch Code(outcome, err) {
	case string(OutcomeActivated):
		return "License activated on this machine."
	case string(OutcomeValid):
		return "License valid."
	case "not_found":
		return "License key not found. Check the key and try again."
	case "blocked":
		return "This license has been blocked. Contact support."
	case "machine_mismatch":
		return "This license is already activated on another machine."
	case "configuration_error":
		return "License server is not configured on this installation."
	default:
		return "Could not reach the license server. Check your connection and try again."
	}
}

func NewResult(outcome Outcome, err error) Result {
	return Result{
		OK:      err == nil,
		Code:    Code(outcome, err),
		Message: Message(outcome, err),
	}
}
