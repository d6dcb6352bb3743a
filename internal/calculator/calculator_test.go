package calculator

import (
	"math"
	"testing"
	"time"

	"StockPulse/internal/model"
)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f)", label, got, want, tol)
	}
}

func closeBars(closes ...float64) []model.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Date:  start.AddDate(0, 0, i),
			Open:  c,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}
	return bars
}

func TestRollingMean(t *testing.T) {
	got, err := RollingMean([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(got[0]) || !math.IsNaN(got[1]) {
		t.Errorf("expected NaN for incomplete window, got %v", got[:2])
	}
	assertClose(t, "mean[2]", got[2], 2, 1e-12)
	assertClose(t, "mean[3]", got[3], 3, 1e-12)
	assertClose(t, "mean[4]", got[4], 4, 1e-12)

	if _, err := RollingMean([]float64{1}, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestEWM_AdjustFalse(t *testing.T) {
	got := EWM([]float64{0, 1, 0}, 0.5)
	want := []float64{0, 0.5, 0.25}
	for i := range want {
		assertClose(t, "ewm", got[i], want[i], 1e-12)
	}
}

func TestCalculateRSI_HandComputed(t *testing.T) {
	// alpha = 0.5; gains 0,1,0; losses 0,0,1
	// avgGain 0,0.5,0.25; avgLoss 0,0,0.5
	rsi, err := CalculateRSI(closeBars(10, 11, 10), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(rsi) != 3 {
		t.Fatalf("expected 3 values, got %d", len(rsi))
	}
	if !math.IsNaN(rsi[0]) {
		t.Errorf("rsi[0]: expected NaN, got %f", rsi[0])
	}
	assertClose(t, "rsi[1]", rsi[1], 100, 1e-9)
	assertClose(t, "rsi[2]", rsi[2], 100.0/3.0, 1e-9)
}

func TestCalculateRSI_Bounds(t *testing.T) {
	closes := []float64{44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42,
		45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00, 46.03, 46.41,
		46.22, 45.64, 46.21, 46.25, 45.71, 46.45, 45.78, 45.35, 44.03, 44.18}
	rsi, err := CalculateRSI(closeBars(closes...), DefaultRSIPeriod)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(rsi); i++ {
		if math.IsNaN(rsi[i]) || rsi[i] < 0 || rsi[i] > 100 {
			t.Errorf("rsi[%d] = %f out of [0,100]", i, rsi[i])
		}
	}
}

func TestCalculateRSI_RisingApproaches100(t *testing.T) {
	closes := []float64{10, 9}
	for i := 0; i < 60; i++ {
		closes = append(closes, 10+float64(i))
	}
	rsi, err := CalculateRSI(closeBars(closes...), DefaultRSIPeriod)
	if err != nil {
		t.Fatal(err)
	}
	for i := 3; i < len(rsi); i++ {
		if rsi[i] < rsi[i-1] {
			t.Errorf("rsi[%d]=%f decreased from %f", i, rsi[i], rsi[i-1])
		}
	}
	if last := rsi[len(rsi)-1]; last < 99 {
		t.Errorf("expected RSI near 100 after a long rise, got %f", last)
	}

	pure, _ := CalculateRSI(closeBars(10, 11, 12, 13, 14), DefaultRSIPeriod)
	for i := 1; i < len(pure); i++ {
		assertClose(t, "all-gain rsi", pure[i], 100, 0)
	}
}

func TestCalculateRSI_FlatSeriesIs100(t *testing.T) {
	rsi, err := CalculateRSI(closeBars(50, 50, 50, 50), DefaultRSIPeriod)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(rsi[0]) {
		t.Errorf("rsi[0]: expected NaN, got %f", rsi[0])
	}
	for i := 1; i < len(rsi); i++ {
		if rsi[i] != 100 {
			t.Errorf("rsi[%d]: expected 100 for zero average loss, got %f", i, rsi[i])
		}
	}
}

func TestCalculateRSI_Errors(t *testing.T) {
	if _, err := CalculateRSI(closeBars(1, 2), 0); err == nil {
		t.Error("expected error for zero period")
	}
	rsi, err := CalculateRSI(nil, DefaultRSIPeriod)
	if err != nil || len(rsi) != 0 {
		t.Errorf("expected empty result for empty series, got %v, %v", rsi, err)
	}
}

func TestCalculateRVI(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := []model.Bar{
		{Date: day, Open: 10, High: 12, Low: 9, Close: 11},
		{Date: day.AddDate(0, 0, 1), Open: 11, High: 13, Low: 10, Close: 12},
		{Date: day.AddDate(0, 0, 2), Open: 12, High: 12.5, Low: 10.5, Close: 11},
		{Date: day.AddDate(0, 0, 3), Open: 11, High: 11, Low: 11, Close: 11},
		{Date: day.AddDate(0, 0, 4), Open: 11, High: 11, Low: 11, Close: 11},
		{Date: day.AddDate(0, 0, 5), Open: 11, High: 11, Low: 11, Close: 11},
	}
	rvi, err := CalculateRVI(bars, 3)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		idx int
		nan bool
		val float64
	}{
		{0, true, 0},
		{1, true, 0},
		{2, false, 0.125},
		{3, false, 0},
		{4, false, -0.5},
		{5, true, 0}, // every bar in the window has high == low
	}
	for _, tt := range tests {
		got := rvi[tt.idx]
		if tt.nan {
			if !math.IsNaN(got) {
				t.Errorf("rvi[%d]: expected NaN, got %f", tt.idx, got)
			}
			continue
		}
		assertClose(t, "rvi", got, tt.val, 1e-12)
	}
}

func TestCalculateRVI_DefinedFromPeriodMinusOne(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i%5)
	}
	bars := closeBars(closes...)
	rvi, err := CalculateRVI(bars, DefaultRVIPeriod)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range rvi {
		if i < DefaultRVIPeriod-1 && !math.IsNaN(v) {
			t.Errorf("rvi[%d]: expected NaN before window fills, got %f", i, v)
		}
		if i >= DefaultRVIPeriod-1 && math.IsNaN(v) {
			t.Errorf("rvi[%d]: expected value once window fills", i)
		}
	}
	if _, err := CalculateRVI(bars, -1); err == nil {
		t.Error("expected error for negative period")
	}
}

func TestCalculateLiveDelta(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	up := CalculateLiveDelta(model.LiveQuote{Open: f(100), Last: f(105)})
	if up == nil {
		t.Fatal("expected live delta")
	}
	assertClose(t, "diff", up.PriceDiff, 5, 1e-12)
	assertClose(t, "pct", up.PercentChange, 5, 1e-12)
	if up.Direction != model.DirectionUp {
		t.Errorf("expected up, got %s", up.Direction)
	}

	flat := CalculateLiveDelta(model.LiveQuote{Open: f(100), Last: f(100)})
	if flat.Direction != model.DirectionFlat || flat.PriceDiff != 0 {
		t.Errorf("expected flat zero change, got %+v", flat)
	}

	down := CalculateLiveDelta(model.LiveQuote{Open: f(200), Last: f(190)})
	if down.Direction != model.DirectionDown {
		t.Errorf("expected down, got %s", down.Direction)
	}
	assertClose(t, "pct down", down.PercentChange, -5, 1e-12)

	if d := CalculateLiveDelta(model.LiveQuote{Last: f(105)}); d != nil {
		t.Errorf("expected no live data when open is absent, got %+v", d)
	}
	if d := CalculateLiveDelta(model.LiveQuote{Open: f(105)}); d != nil {
		t.Errorf("expected no live data when last is absent, got %+v", d)
	}

	zero := CalculateLiveDelta(model.LiveQuote{Open: f(0), Last: f(1)})
	if zero == nil || !math.IsNaN(zero.PercentChange) {
		t.Errorf("expected NaN percent for zero open, got %+v", zero)
	}
}

func TestCalculatePeriodRange(t *testing.T) {
	high, low, err := CalculatePeriodRange(closeBars(10, 15, 8))
	if err != nil {
		t.Fatal(err)
	}
	if high != 16 || low != 7 {
		t.Errorf("expected 16/7, got %f/%f", high, low)
	}
	if _, _, err := CalculatePeriodRange(nil); err == nil {
		t.Error("expected error for empty bars")
	}

	tests := []struct {
		price, high, low, want float64
	}{
		{5, 10, 0, 0.5},
		{12, 10, 0, 1},
		{-1, 10, 0, 0},
		{3, 3, 3, 0.5},
	}
	for _, tt := range tests {
		got, err := CalculateRangePosition(tt.price, tt.high, tt.low)
		if err != nil {
			t.Fatal(err)
		}
		assertClose(t, "position", got, tt.want, 1e-12)
	}
}
