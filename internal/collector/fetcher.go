package collector

import (
	"context"
	"errors"
	"sort"
	"time"

	"StockPulse/internal/model"
)

var (
	// ErrNoData means the provider has no bars for the symbol and date range.
	ErrNoData = errors.New("no data found for the ticker symbol and date range")
	// ErrLiveQuoteUnavailable means the provider returned no usable session quote.
	ErrLiveQuoteUnavailable = errors.New("live quote unavailable")
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchHistory returns daily bars from start up to now, ascending by date.
	FetchHistory(ctx context.Context, symbol string, start time.Time) ([]model.Bar, error)
	// FetchLiveQuote returns the most recent session's open and last price.
	FetchLiveQuote(ctx context.Context, symbol string) (model.LiveQuote, error)
	Name() string
}

// normalizeBars sorts bars by date and keeps the last bar seen for each date.
func normalizeBars(bars []model.Bar) []model.Bar {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Date.Equal(b.Date) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

// sessionDate truncates t to its calendar day in loc, expressed as UTC midnight.
func sessionDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
