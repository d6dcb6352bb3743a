package model

import "time"

// Bar represents a single daily OHLC bar.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// IndicatorRow is a bar augmented with its derived indicators.
// RSI and RVI are NaN where undefined.
type IndicatorRow struct {
	Bar
	RSI float64
	RVI float64
}

// LiveQuote holds the most recent session's open and last traded price.
// A nil field means the provider did not supply it.
type LiveQuote struct {
	Open *float64
	Last *float64
}

// Complete reports whether both prices are present.
func (q LiveQuote) Complete() bool {
	return q.Open != nil && q.Last != nil
}

// Analysis is the result of one single-symbol run.
type Analysis struct {
	Symbol    string
	Start     time.Time
	Rows      []IndicatorRow
	Live      *LiveDelta // nil means no live data
	FetchedAt time.Time
}

// Bars returns the plain bars of the analysed series.
func (a *Analysis) Bars() []Bar {
	bars := make([]Bar, len(a.Rows))
	for i, r := range a.Rows {
		bars[i] = r.Bar
	}
	return bars
}
