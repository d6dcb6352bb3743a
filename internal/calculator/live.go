package calculator

import (
	"math"

	"StockPulse/internal/model"
)

// CalculateLiveDelta returns the change of the last price against the session
// open, or nil when either price is missing.
func CalculateLiveDelta(q model.LiveQuote) *model.LiveDelta {
	if !q.Complete() {
		return nil
	}
	open, last := *q.Open, *q.Last
	diff := last - open

	pct := math.NaN()
	if open != 0 {
		pct = diff / open * 100
	}

	dir := model.DirectionFlat
	switch {
	case diff > 0:
		dir = model.DirectionUp
	case diff < 0:
		dir = model.DirectionDown
	}

	return &model.LiveDelta{
		Open:          open,
		Last:          last,
		PriceDiff:     diff,
		PercentChange: pct,
		Direction:     dir,
	}
}
