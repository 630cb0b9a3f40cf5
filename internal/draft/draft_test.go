package draft_test

import (
	"math"
	"strconv"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cofre/internal/draft"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

var start = civil.Date{Year: 2024, Month: 1, Day: 31}

func TestNew(t *testing.T) {
	d := draft.New(start)

	assert.Equal(t, draft.ModeTotal, d.InputMode)
	assert.Equal(t, 1, d.InstallmentCount)
	assert.Equal(t, transaction.TypeExpense, d.Type)
	assert.Equal(t, start, d.StartDate)
	assert.Zero(t, d.TotalAmount)
	assert.Zero(t, d.InstallmentAmount)
}

func TestOnAmountEdited(t *testing.T) {
	type testCase struct {
		name      string
		initial   draft.Draft
		raw       string
		field     draft.InputMode
		wantMode  draft.InputMode
		wantTotal int64
		wantInst  int64
	}

	base := draft.New(start)
	base.InstallmentCount = 3

	tests := []testCase{
		{
			name:      "TotalDividedAcrossInstallments",
			initial:   base,
			raw:       "10000",
			field:     draft.ModeTotal,
			wantMode:  draft.ModeTotal,
			wantTotal: 10000,
			wantInst:  3333,
		},
		{
			name:      "HalfCentRoundsUp",
			initial:   func() draft.Draft { d := base; d.InstallmentCount = 2; return d }(),
			raw:       "5",
			field:     draft.ModeTotal,
			wantMode:  draft.ModeTotal,
			wantTotal: 5,
			wantInst:  3,
		},
		{
			name:      "InstallmentMultipliedByCount",
			initial:   base,
			raw:       "2500",
			field:     draft.ModeInstallment,
			wantMode:  draft.ModeInstallment,
			wantTotal: 7500,
			wantInst:  2500,
		},
		{
			name:      "NonDigitsStripped",
			initial:   base,
			raw:       "R$ 1.234,56",
			field:     draft.ModeInstallment,
			wantMode:  draft.ModeInstallment,
			wantTotal: 370368,
			wantInst:  123456,
		},
		{
			name: "EmptyInputLeavesOtherField",
			initial: func() draft.Draft {
				d := base
				d.TotalAmount = 9000
				d.InstallmentAmount = 3000
				return d
			}(),
			raw:       "",
			field:     draft.ModeInstallment,
			wantMode:  draft.ModeInstallment,
			wantTotal: 9000,
			wantInst:  0,
		},
		{
			name: "OverflowTreatedAsNotNumeric",
			initial: func() draft.Draft {
				d := base
				d.InstallmentAmount = 42
				return d
			}(),
			raw:       "99999999999999999999999",
			field:     draft.ModeTotal,
			wantMode:  draft.ModeTotal,
			wantTotal: 0,
			wantInst:  42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := draft.OnAmountEdited(tt.raw, tt.field, tt.initial)

			assert.Equal(t, tt.wantMode, got.InputMode)
			assert.Equal(t, tt.wantTotal, got.TotalAmount)
			assert.Equal(t, tt.wantInst, got.InstallmentAmount)
			assert.Equal(t, tt.initial.InstallmentCount, got.InstallmentCount)
		})
	}
}

func TestOnInstallmentCountChanged(t *testing.T) {
	t.Run("TotalModeRederivesInstallment", func(t *testing.T) {
		d := draft.OnAmountEdited("10000", draft.ModeTotal, draft.New(start))
		d = draft.OnInstallmentCountChanged(4, d)

		assert.Equal(t, draft.ModeTotal, d.InputMode)
		assert.Equal(t, int64(10000), d.TotalAmount)
		assert.Equal(t, int64(2500), d.InstallmentAmount)
	})

	t.Run("InstallmentModeRederivesTotal", func(t *testing.T) {
		d := draft.OnAmountEdited("1500", draft.ModeInstallment, draft.New(start))
		d = draft.OnInstallmentCountChanged(12, d)

		assert.Equal(t, draft.ModeInstallment, d.InputMode)
		assert.Equal(t, int64(18000), d.TotalAmount)
		assert.Equal(t, int64(1500), d.InstallmentAmount)
	})

	t.Run("BelowOneCoercedToOne", func(t *testing.T) {
		d := draft.OnAmountEdited("777", draft.ModeTotal, draft.New(start))

		for _, n := range []int{0, -3} {
			got := draft.OnInstallmentCountChanged(n, d)
			assert.Equal(t, 1, got.InstallmentCount)
			assert.Equal(t, int64(777), got.InstallmentAmount)
		}
	})
}

func TestDerivedTotalOverflow(t *testing.T) {
	tests := []struct {
		name      string
		apply     func(draft.Draft) draft.Draft
		wantTotal int64
		wantInst  int64
		wantCount int
	}{
		{
			name: "InstallmentEditKeepsPreviousTotal",
			apply: func(d draft.Draft) draft.Draft {
				d = draft.OnInstallmentCountChanged(2, d)
				d = draft.OnAmountEdited("1500", draft.ModeInstallment, d)
				return draft.OnAmountEdited("9223372036854775807", draft.ModeInstallment, d)
			},
			wantTotal: 3000,
			wantInst:  math.MaxInt64,
			wantCount: 2,
		},
		{
			name: "LargestFittingProductIsExact",
			apply: func(d draft.Draft) draft.Draft {
				d = draft.OnInstallmentCountChanged(2, d)
				return draft.OnAmountEdited("4611686018427387903", draft.ModeInstallment, d)
			},
			wantTotal: 9223372036854775806,
			wantInst:  4611686018427387903,
			wantCount: 2,
		},
		{
			name: "CountChangeKeepsPreviousTotal",
			apply: func(d draft.Draft) draft.Draft {
				d = draft.OnAmountEdited("4611686018427387904", draft.ModeInstallment, d)
				return draft.OnInstallmentCountChanged(3, d)
			},
			wantTotal: 4611686018427387904,
			wantInst:  4611686018427387904,
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.apply(draft.New(start))

			assert.Equal(t, draft.ModeInstallment, got.InputMode)
			assert.Equal(t, tt.wantTotal, got.TotalAmount)
			assert.Equal(t, tt.wantInst, got.InstallmentAmount)
			assert.Equal(t, tt.wantCount, got.InstallmentCount)
			assert.GreaterOrEqual(t, got.TotalAmount, int64(0))
		})
	}
}

func TestReconciledFieldsStayConsistent(t *testing.T) {
	for total := int64(0); total <= 2000; total += 7 {
		for count := 1; count <= 24; count++ {
			d := draft.New(start)
			d = draft.OnInstallmentCountChanged(count, d)
			d = draft.OnAmountEdited(strconv.FormatInt(total, 10), draft.ModeTotal, d)

			drift := d.InstallmentAmount*int64(count) - total
			if drift < 0 {
				drift = -drift
			}

			require.LessOrEqualf(t, 2*drift, int64(count), "total=%d count=%d", total, count)
		}
	}

	for inst := int64(0); inst <= 500; inst += 13 {
		for count := 1; count <= 24; count++ {
			d := draft.New(start)
			d = draft.OnAmountEdited(strconv.FormatInt(inst, 10), draft.ModeInstallment, d)
			d = draft.OnInstallmentCountChanged(count, d)

			require.Equalf(t, inst*int64(count), d.TotalAmount, "inst=%d count=%d", inst, count)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := map[string]int{
		"3":    3,
		" 12 ": 12,
		"":     1,
		"0":    1,
		"-2":   1,
		"abc":  1,
		"2.5":  1,
	}

	for raw, want := range tests {
		assert.Equalf(t, want, draft.ParseCount(raw), "raw=%q", raw)
	}
}

func TestApply(t *testing.T) {
	d := draft.New(start)

	d, err := draft.Apply(d, draft.Event{Kind: draft.EventCount, Count: 3})
	require.NoError(t, err)

	d, err = draft.Apply(d, draft.Event{Kind: draft.EventAmount, Field: draft.ModeTotal, Raw: "100,00"})
	require.NoError(t, err)
	assert.Equal(t, int64(3333), d.InstallmentAmount)

	_, err = draft.Apply(d, draft.Event{Kind: draft.EventAmount, Field: "other", Raw: "1"})
	assert.Error(t, err)

	_, err = draft.Apply(d, draft.Event{Kind: "bogus"})
	assert.Error(t, err)
}
