// Package installment turns a reconciled draft into the transactions that
// represent it, one per monthly installment.
package installment

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/category"
	"github.com/MrJamesThe3rd/cofre/internal/draft"
	"github.com/MrJamesThe3rd/cofre/internal/transaction"
)

var hundred = decimal.NewFromInt(100)

// Expand produces one pending transaction per installment, due on consecutive
// months from the draft's start date. Siblings are only linked by the
// "(i/N)" suffix of their descriptions.
//
// In total mode the per-installment amount is the total divided here and is
// not rounded, so it may differ from the reconciled InstallmentAmount by a
// fraction of a cent.
func Expand(d draft.Draft, userID string, categories []*category.Category) []transaction.CreateParams {
	count := d.Count()
	amount := PerInstallmentAmount(d)
	cat := category.Resolve(d.Category, d.Type, categories)

	params := make([]transaction.CreateParams, count)
	for i := range count {
		description := d.Description
		if count > 1 {
			description = fmt.Sprintf("%s (%d/%d)", d.Description, i+1, count)
		}

		params[i] = transaction.CreateParams{
			UserID:      userID,
			AccountID:   transaction.DefaultAccountID,
			Category:    cat,
			Amount:      amount,
			Description: description,
			Type:        d.Type,
			Status:      transaction.StatusPending,
			Date:        AddMonths(d.StartDate, i),
			IsRecurring: count > 1,
		}
	}

	return params
}

// PerInstallmentAmount is the amount of each installment in major units.
func PerInstallmentAmount(d draft.Draft) decimal.Decimal {
	if d.InputMode == draft.ModeInstallment {
		return decimal.NewFromInt(d.InstallmentAmount).Div(hundred)
	}

	return decimal.NewFromInt(d.TotalAmount).
		Div(decimal.NewFromInt(int64(d.Count()))).
		Div(hundred)
}

// AddMonths advances date by n calendar months. A day the target month lacks
// overflows into the next month, so Jan 31 plus one month is Mar 2 in a leap
// year.
func AddMonths(date civil.Date, n int) civil.Date {
	return civil.DateOf(time.Date(date.Year, date.Month+time.Month(n), date.Day, 0, 0, 0, 0, time.UTC))
}
