package view

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatAmount renders an amount in reais, e.g. "R$ 1.234,56".
func FormatAmount(amount decimal.Decimal) string {
	return printer.Sprintf("R$ %.2f", amount.Round(2).InexactFloat64())
}

// FormatCents renders an amount held in integer cents.
func FormatCents(cents int64) string {
	return FormatAmount(decimal.New(cents, -2))
}

func FormatDate(d civil.Date) string {
	return d.In(time.UTC).Format("02/01/2006")
}
