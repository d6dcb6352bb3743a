package calculator

import (
	"errors"
	"math"

	"StockPulse/internal/model"
)

// DefaultRSIPeriod is the smoothing span used when none is configured.
const DefaultRSIPeriod = 14

// CalculateRSI computes one RSI value per bar using exponentially weighted
// average gains and losses with alpha = 2/(period+1).
//
// The first value is NaN since it has no prior close. After that a zero
// average loss yields 100, including a perfectly flat series. No minimum
// history is enforced, so early values are valid but low-confidence.
func CalculateRSI(bars []model.Bar, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	closes := extractCloses(bars)

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	alpha := 2.0 / float64(period+1)
	avgGain := EWM(gains, alpha)
	avgLoss := EWM(losses, alpha)

	rsi := make([]float64, len(closes))
	for i := range closes {
		if i == 0 {
			rsi[i] = math.NaN()
			continue
		}
		if avgLoss[i] == 0 {
			rsi[i] = 100.0
			continue
		}
		rs := avgGain[i] / avgLoss[i]
		rsi[i] = 100.0 - 100.0/(1.0+rs)
	}
	return rsi, nil
}
