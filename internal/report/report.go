// Package report renders an analysis for the terminal.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
)

const dateLayout = "2006-01-02"

// Currency formats v as "$1,234.56".
func Currency(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Fixed rounds v to places decimals. NaN renders as "NaN".
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Render writes the header, the indicator table and, when present, the live section.
func Render(w io.Writer, a *model.Analysis) error {
	if err := RenderHeader(w, a); err != nil {
		return err
	}
	if err := RenderTable(w, a); err != nil {
		return err
	}
	return RenderLive(w, a)
}

// RenderHeader writes the title line and the high/low of the fetched period.
func RenderHeader(w io.Writer, a *model.Analysis) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\nStock data for %s from %s to current date:\n", a.Symbol, a.Start.Format(dateLayout)))
	if high, low, err := calculator.CalculatePeriodRange(a.Bars()); err == nil {
		b.WriteString(fmt.Sprintf("Period high: %s | Period low: %s", Currency(high), Currency(low)))
		if n := len(a.Rows); n > 0 {
			if pos, err := calculator.CalculateRangePosition(a.Rows[n-1].Close, high, low); err == nil {
				b.WriteString(fmt.Sprintf(" | Last close at %.0f%% of range", pos*100))
			}
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderTable writes one grid row per date.
func RenderTable(w io.Writer, a *model.Analysis) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Open", "High", "Low", "Close", "RSI", "RVI"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetRowLine(true)
	for _, r := range a.Rows {
		table.Append([]string{
			r.Date.Format(dateLayout),
			Currency(r.Open),
			Currency(r.High),
			Currency(r.Low),
			Currency(r.Close),
			Fixed(r.RSI, 2),
			Fixed(r.RVI, 4),
		})
	}
	table.Render()
	return nil
}

// RenderLive writes the live quote section. Nothing is written without live data.
func RenderLive(w io.Writer, a *model.Analysis) error {
	d := a.Live
	if d == nil {
		return nil
	}
	glyph := d.Direction.Glyph()
	pct := "n/a"
	if !math.IsNaN(d.PercentChange) {
		pct = fmt.Sprintf("%.2f%%", d.PercentChange)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("\nLive Data for %s:\n", a.Symbol))
	b.WriteString(fmt.Sprintf("  Opening Price: $%.2f\n", d.Open))
	b.WriteString(fmt.Sprintf("  Current Price: $%.2f\n", d.Last))
	b.WriteString(fmt.Sprintf("  Price Change: $%.2f %s\n", d.PriceDiff, glyph))
	b.WriteString(fmt.Sprintf("  Percent Change: %s %s\n", pct, glyph))
	_, err := io.WriteString(w, b.String())
	return err
}

// Summary is a one-line digest of the latest row, used in logs.
func Summary(a *model.Analysis) string {
	if len(a.Rows) == 0 {
		return fmt.Sprintf("%s: no rows", a.Symbol)
	}
	last := a.Rows[len(a.Rows)-1]
	s := fmt.Sprintf("%s %s close=%s RSI=%s RVI=%s",
		a.Symbol, last.Date.Format(dateLayout), Currency(last.Close), Fixed(last.RSI, 2), Fixed(last.RVI, 4))
	if a.Live != nil {
		s += fmt.Sprintf(" live=%.2f%s", a.Live.Last, a.Live.Direction.Glyph())
	}
	return s
}
