package view

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "R$ 33,33", FormatCents(3333))
	assert.Equal(t, "R$ 33,33", FormatAmount(decimal.RequireFromString("33.333333")))
	assert.Equal(t, "02/03/2024", FormatDate(civil.Date{Year: 2024, Month: 3, Day: 2}))
}

func TestParsePaid(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "104.90", want: "104.9"},
		{in: "R$ 1.234,56", want: "1234.56"},
		{in: "10,5", want: "10.5"},
		{in: "abc", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePaid(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
