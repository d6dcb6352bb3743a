package calculator

import (
	"errors"
	"math"

	"StockPulse/internal/model"
)

// CalculateSMA computes the simple moving average of the last period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// RollingMean returns the trailing simple mean over exactly period values for
// every index. Indexes with fewer than period observations are NaN.
// Each window is summed afresh so an all-zero window yields exactly zero.
func RollingMean(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]float64, len(values))
	for i := range values {
		if i < period-1 {
			out[i] = math.NaN()
			continue
		}
		mean, err := CalculateSMA(values[:i+1], period)
		if err != nil {
			return nil, err
		}
		out[i] = mean
	}
	return out, nil
}

// EWM returns the exponentially weighted mean with smoothing factor alpha,
// seeded with the first value: avg[i] = alpha*v[i] + (1-alpha)*avg[i-1].
func EWM(values []float64, alpha float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if i == 0 {
			out[i] = v
			continue
		}
		out[i] = alpha*v + (1-alpha)*out[i-1]
	}
	return out
}

func extractCloses(bars []model.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
