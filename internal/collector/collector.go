package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price      float64
	Bars       []model.Bar
	Quote      *model.LiveQuote
	HistoryErr error
	QuoteErr   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, _ string, start time.Time) ([]model.Bar, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	days := int(time.Since(start).Hours() / 24)
	if days <= 0 {
		return nil, ErrNoData
	}
	return generateMockBars(m.Price, start, days), nil
}

func (m *MockFetcher) FetchLiveQuote(_ context.Context, _ string) (model.LiveQuote, error) {
	if m.QuoteErr != nil {
		return model.LiveQuote{}, m.QuoteErr
	}
	if m.Quote != nil {
		return *m.Quote, nil
	}
	open, last := m.Price*0.999, m.Price
	return model.LiveQuote{Open: &open, Last: &last}, nil
}

func generateMockBars(basePrice float64, start time.Time, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:   sessionDate(start.AddDate(0, 0, i), time.UTC),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// RunError reports a fatal failure of one analysis run.
type RunError struct {
	Symbol string
	Op     string
	Err    error
}

func (e *RunError) Error() string {
	if errors.Is(e.Err, ErrNoData) {
		return fmt.Sprintf("no data found for %s in the requested range. Check the ticker symbol and date range", e.Symbol)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Symbol, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher   Fetcher
	RSIPeriod int
	RVIPeriod int
	Now       func() time.Time
}

// NewCollector creates a new Collector. Non-positive periods fall back to the defaults.
func NewCollector(fetcher Fetcher, rsiPeriod, rviPeriod int) *Collector {
	if rsiPeriod <= 0 {
		rsiPeriod = calculator.DefaultRSIPeriod
	}
	if rviPeriod <= 0 {
		rviPeriod = calculator.DefaultRVIPeriod
	}
	return &Collector{
		Fetcher:   fetcher,
		RSIPeriod: rsiPeriod,
		RVIPeriod: rviPeriod,
		Now:       time.Now,
	}
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Analyze fetches the live quote and the daily history for symbol since start,
// then derives RSI, RVI and the live delta. A failed live quote only drops the
// live section; a failed history fetch aborts the run.
func (c *Collector) Analyze(ctx context.Context, symbol string, start time.Time) (*model.Analysis, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, &RunError{Symbol: symbol, Op: "validate", Err: errors.New("ticker symbol is required")}
	}

	quote, err := c.Fetcher.FetchLiveQuote(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] live quote for %s unavailable: %v", symbol, err)
		quote = model.LiveQuote{}
	}

	bars, err := c.Fetcher.FetchHistory(ctx, symbol, start)
	if err == nil && len(bars) == 0 {
		err = ErrNoData
	}
	if err != nil {
		rerr := &RunError{Symbol: symbol, Op: "fetch history", Err: err}
		log.Printf("[ERROR] fetch history for %s from %s: %v", symbol, start.Format("2006-01-02"), err)
		return nil, rerr
	}

	rsi, err := calculator.CalculateRSI(bars, c.RSIPeriod)
	if err != nil {
		log.Printf("[ERROR] RSI for %s: %v", symbol, err)
		return nil, &RunError{Symbol: symbol, Op: "calculate RSI", Err: err}
	}
	rvi, err := calculator.CalculateRVI(bars, c.RVIPeriod)
	if err != nil {
		log.Printf("[ERROR] RVI for %s: %v", symbol, err)
		return nil, &RunError{Symbol: symbol, Op: "calculate RVI", Err: err}
	}

	rows := make([]model.IndicatorRow, len(bars))
	for i, b := range bars {
		rows[i] = model.IndicatorRow{Bar: b, RSI: rsi[i], RVI: rvi[i]}
	}

	return &model.Analysis{
		Symbol:    symbol,
		Start:     start,
		Rows:      rows,
		Live:      calculator.CalculateLiveDelta(quote),
		FetchedAt: c.Now(),
	}, nil
}
