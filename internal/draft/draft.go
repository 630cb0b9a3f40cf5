// Package draft keeps the total and per-installment amounts of a transaction
// being composed consistent with each other while the user edits them.
package draft

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

// InputMode names the amount field the user is driving. The other one is derived.
type InputMode string

const (
	ModeTotal       InputMode = "total"
	ModeInstallment InputMode = "installment"
)

// MaxInstallments is the largest count the outer surfaces accept. The
// reconciler itself takes any count.
const MaxInstallments = 600

func (m InputMode) Valid() bool {
	return m == ModeTotal || m == ModeInstallment
}

// Draft is the unpersisted state of a transaction being composed. Amounts are
// integer cents.
type Draft struct {
	Description       string
	TotalAmount       int64
	InstallmentAmount int64
	InputMode         InputMode
	InstallmentCount  int
	Type              transaction.Type
	Category          string
	StartDate         civil.Date
}

// New returns an empty expense draft for a single payment starting on start.
func New(start civil.Date) Draft {
	return Draft{
		InputMode:        ModeTotal,
		InstallmentCount: 1,
		Type:             transaction.TypeExpense,
		StartDate:        start,
	}
}

// Count is the installment count clamped to at least one.
func (d Draft) Count() int {
	return max(1, d.InstallmentCount)
}

// OnAmountEdited handles a keystroke in one of the amount fields. Everything
// but digits is dropped from raw. An empty result zeroes the edited field and
// leaves the other one untouched; otherwise the other field is recomputed.
// A derived total that would not fit in int64 is treated like an empty edit:
// the edited value is kept and the other field is left alone.
func OnAmountEdited(raw string, field InputMode, d Draft) Draft {
	d.InputMode = field

	cents, ok := parseCents(raw)
	if !ok {
		d.setAmount(field, 0)
		return d
	}

	d.setAmount(field, cents)
	d.recompute()

	return d
}

// OnInstallmentCountChanged sets the count (coercing anything below one to
// one) and recomputes the derived field. The input mode is never changed. A
// derived total that would overflow leaves the previous total in place.
func OnInstallmentCountChanged(count int, d Draft) Draft {
	d.InstallmentCount = max(1, count)
	d.recompute()

	return d
}

// ParseCount turns installment count text into a count, with anything that is
// not a positive integer becoming one.
func ParseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}

	return n
}

// RoundDiv divides cents by count rounding half up to the nearest cent.
func RoundDiv(cents int64, count int) int64 {
	return decimal.NewFromInt(cents).
		Div(decimal.NewFromInt(int64(max(1, count)))).
		Round(0).
		IntPart()
}

func (d *Draft) setAmount(field InputMode, cents int64) {
	if field == ModeInstallment {
		d.InstallmentAmount = cents
		return
	}

	d.TotalAmount = cents
}

func (d *Draft) recompute() {
	if d.InputMode == ModeInstallment {
		if total, ok := mulCents(d.InstallmentAmount, d.Count()); ok {
			d.TotalAmount = total
		}

		return
	}

	d.InstallmentAmount = RoundDiv(d.TotalAmount, d.Count())
}

// mulCents multiplies cents by count, reporting false when the product does
// not fit in int64.
func mulCents(cents int64, count int) (int64, bool) {
	p := decimal.NewFromInt(cents).Mul(decimal.NewFromInt(int64(count)))
	if p.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || p.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, false
	}

	return p.IntPart(), true
}

// parseCents keeps only the digits of raw. Empty or overflowing input is not a number.
func parseCents(raw string) (int64, bool) {
	digits := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}

		return -1
	}, raw)
	if digits == "" {
		return 0, false
	}

	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
