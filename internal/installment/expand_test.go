package installment_test

import (
	"strconv"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cofre/internal/category"
	"github.com/MrJamesThe3rd/cofre/internal/draft"
	"github.com/MrJamesThe3rd/cofre/internal/installment"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func newDraft(total int64, count int) draft.Draft {
	d := draft.New(date(2024, 1, 31))
	d.Description = "Notebook"
	d = draft.OnInstallmentCountChanged(count, d)

	return draft.OnAmountEdited(strconv.FormatInt(total, 10), draft.ModeTotal, d)
}

func TestExpand_Dates(t *testing.T) {
	params := installment.Expand(newDraft(30000, 3), "user-1", nil)
	require.Len(t, params, 3)

	assert.Equal(t, date(2024, 1, 31), params[0].Date)
	assert.Equal(t, date(2024, 3, 2), params[1].Date)
	assert.Equal(t, date(2024, 3, 31), params[2].Date)
}

func TestExpand_Shape(t *testing.T) {
	params := installment.Expand(newDraft(30000, 3), "user-1", nil)
	require.Len(t, params, 3)

	for i, p := range params {
		assert.Equal(t, "user-1", p.UserID)
		assert.Equal(t, transaction.DefaultAccountID, p.AccountID)
		assert.Equal(t, transaction.StatusPending, p.Status)
		assert.Equal(t, transaction.TypeExpense, p.Type)
		assert.True(t, p.IsRecurring)
		assert.True(t, decimal.RequireFromString("100").Equal(p.Amount), "installment %d amount %s", i, p.Amount)
	}

	assert.Equal(t, "Notebook (1/3)", params[0].Description)
	assert.Equal(t, "Notebook (2/3)", params[1].Description)
	assert.Equal(t, "Notebook (3/3)", params[2].Description)
}

func TestExpand_SinglePayment(t *testing.T) {
	d := newDraft(4990, 1)

	params := installment.Expand(d, "user-1", nil)
	require.Len(t, params, 1)

	assert.Equal(t, "Notebook", params[0].Description)
	assert.False(t, params[0].IsRecurring)
	assert.Equal(t, "49.90", params[0].Amount.StringFixed(2))
}

func TestExpand_CountClampedToOne(t *testing.T) {
	for _, count := range []int{0, -5} {
		d := newDraft(1000, 1)
		d.InstallmentCount = count

		params := installment.Expand(d, "user-1", nil)
		require.Len(t, params, 1)
		assert.False(t, params[0].IsRecurring)
	}
}

func TestExpand_CountAndRecurringFlag(t *testing.T) {
	for count := 1; count <= 36; count++ {
		params := installment.Expand(newDraft(12345, count), "u", nil)

		require.Len(t, params, count)
		for _, p := range params {
			assert.Equal(t, count > 1, p.IsRecurring)
		}
	}
}

// Total mode divides the total again at expansion time without rounding,
// while installment mode reuses the reconciled cents. This keeps parity with
// the amounts existing data was created with.
func TestExpand_AmountByInputMode(t *testing.T) {
	t.Run("TotalModeIsUnrounded", func(t *testing.T) {
		d := newDraft(10000, 3)
		require.Equal(t, int64(3333), d.InstallmentAmount)

		params := installment.Expand(d, "u", nil)

		assert.Equal(t, "33.33", params[0].Amount.StringFixed(2))
		assert.False(t, params[0].Amount.Equal(decimal.RequireFromString("33.33")))
	})

	t.Run("InstallmentModeUsesReconciledCents", func(t *testing.T) {
		d := draft.New(date(2024, 5, 10))
		d = draft.OnInstallmentCountChanged(3, d)
		d = draft.OnAmountEdited("3333", draft.ModeInstallment, d)

		params := installment.Expand(d, "u", nil)

		for _, p := range params {
			assert.True(t, p.Amount.Equal(decimal.RequireFromString("33.33")))
		}
	})
}

func TestExpand_CategoryResolution(t *testing.T) {
	cats := []*category.Category{
		{Name: "Salário", Type: transaction.TypeIncome},
		{Name: "Mercado", Type: transaction.TypeExpense},
		{Name: "Lazer", Type: transaction.TypeExpense},
	}

	tests := []struct {
		name       string
		explicit   string
		typ        transaction.Type
		categories []*category.Category
		want       string
	}{
		{name: "Explicit", explicit: "Saúde", typ: transaction.TypeExpense, categories: cats, want: "Saúde"},
		{name: "FirstMatchingType", typ: transaction.TypeExpense, categories: cats, want: "Mercado"},
		{name: "IncomeMatch", typ: transaction.TypeIncome, categories: cats, want: "Salário"},
		{name: "NoMatchFallsBack", typ: transaction.TypeIncome, categories: cats[1:], want: category.DefaultName},
		{name: "NoCategories", typ: transaction.TypeExpense, want: category.DefaultName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDraft(1000, 2)
			d.Category = tt.explicit
			d.Type = tt.typ

			for _, p := range installment.Expand(d, "u", tt.categories) {
				assert.Equal(t, tt.want, p.Category)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		from civil.Date
		n    int
		want civil.Date
	}{
		{date(2024, 1, 15), 1, date(2024, 2, 15)},
		{date(2023, 1, 31), 1, date(2023, 3, 3)},
		{date(2024, 8, 31), 1, date(2024, 10, 1)},
		{date(2024, 11, 10), 2, date(2025, 1, 10)},
		{date(2024, 3, 31), 0, date(2024, 3, 31)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, installment.AddMonths(tt.from, tt.n), "%s + %d", tt.from, tt.n)
	}
}
