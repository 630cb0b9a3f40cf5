package view

import (
	"time"

	"cloud.google.com/go/civil"
)

// Timeframe is a date window the transaction list can be narrowed to.
type Timeframe int

const (
	TimeframeAll Timeframe = iota
	TimeframeThisMonth
	TimeframeNextMonth
	TimeframeLastMonth
	timeframeCount
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeAll:
		return "All Time"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeNextMonth:
		return "Next Month"
	case TimeframeLastMonth:
		return "Last Month"
	}

	return "Unknown"
}

// Next cycles through the timeframes in display order.
func (t Timeframe) Next() Timeframe {
	return (t + 1) % timeframeCount
}

// Range returns the inclusive bounds of t relative to today. Both are nil for
// TimeframeAll.
func (t Timeframe) Range(today civil.Date) (*civil.Date, *civil.Date) {
	var offset int

	switch t {
	case TimeframeThisMonth:
		offset = 0
	case TimeframeNextMonth:
		offset = 1
	case TimeframeLastMonth:
		offset = -1
	default:
		return nil, nil
	}

	start, end := monthBounds(today, offset)

	return &start, &end
}

// monthBounds returns the first and last day of the month offset months away
// from the one containing d.
func monthBounds(d civil.Date, offset int) (civil.Date, civil.Date) {
	first := time.Date(d.Year, d.Month+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	return civil.DateOf(first), civil.DateOf(last)
}
