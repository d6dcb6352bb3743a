package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"StockPulse/internal/model"
)

func sampleAnalysis(live *model.LiveDelta) *model.Analysis {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return &model.Analysis{
		Symbol: "AAPL",
		Start:  day,
		Rows: []model.IndicatorRow{
			{Bar: model.Bar{Date: day, Open: 1187.154, High: 1190, Low: 1180.5, Close: 1185.649}, RSI: math.NaN(), RVI: math.NaN()},
			{Bar: model.Bar{Date: day.AddDate(0, 0, 1), Open: 1185, High: 1188, Low: 1181, Close: 1186}, RSI: 66.66666, RVI: 0.123456},
		},
		Live: live,
	}
}

func TestCurrencyAndFixed(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Currency(1234.5), "$1,234.50"},
		{Currency(0.456), "$0.46"},
		{Currency(math.NaN()), "NaN"},
		{Fixed(66.66666, 2), "66.67"},
		{Fixed(0.123456, 4), "0.1235"},
		{Fixed(math.NaN(), 2), "NaN"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestRender_WithLive(t *testing.T) {
	var buf bytes.Buffer
	live := &model.LiveDelta{Open: 100, Last: 105, PriceDiff: 5, PercentChange: 5, Direction: model.DirectionUp}
	if err := Render(&buf, sampleAnalysis(live)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Stock data for AAPL from 2024-01-02 to current date:",
		"Period high: $1,190.00 | Period low: $1,180.50",
		"$1,187.15",
		"66.67",
		"0.1235",
		"Live Data for AAPL:",
		"Price Change: $5.00 ↑",
		"Percent Change: 5.00% ↑",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_WithoutLive(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleAnalysis(nil)); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Live Data") {
		t.Errorf("expected no live section:\n%s", buf.String())
	}
}

func TestRenderLive_UndefinedPercent(t *testing.T) {
	var buf bytes.Buffer
	live := &model.LiveDelta{Open: 0, Last: 1, PriceDiff: 1, PercentChange: math.NaN(), Direction: model.DirectionUp}
	if err := RenderLive(&buf, sampleAnalysis(live)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Percent Change: n/a ↑") {
		t.Errorf("expected n/a percent:\n%s", buf.String())
	}
}

func TestSummary(t *testing.T) {
	s := Summary(sampleAnalysis(nil))
	if !strings.Contains(s, "AAPL 2024-01-03") || !strings.Contains(s, "RSI=66.67") {
		t.Errorf("unexpected summary %q", s)
	}
}
