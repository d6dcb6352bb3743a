package calculator

import (
	"errors"
	"math"

	"StockPulse/internal/model"
)

// DefaultRVIPeriod is the rolling window used when none is configured.
const DefaultRVIPeriod = 14

// CalculateRVI computes the Relative Vigor Index for every bar: the trailing
// mean of (close - open) divided by the trailing mean of (high - low) over
// exactly period bars. Values are NaN while the window is incomplete and
// when the mean range of the window is zero.
func CalculateRVI(bars []model.Bar, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	body := make([]float64, len(bars))
	span := make([]float64, len(bars))
	for i, b := range bars {
		body[i] = b.Close - b.Open
		span[i] = b.High - b.Low
	}

	num, err := RollingMean(body, period)
	if err != nil {
		return nil, err
	}
	den, err := RollingMean(span, period)
	if err != nil {
		return nil, err
	}

	rvi := make([]float64, len(bars))
	for i := range bars {
		if math.IsNaN(den[i]) || den[i] == 0 {
			rvi[i] = math.NaN()
			continue
		}
		rvi[i] = num[i] / den[i]
	}
	return rvi, nil
}
