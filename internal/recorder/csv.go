package recorder

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"StockPulse/internal/model"
)

const csvDateLayout = "2006-01-02"

var csvHeader = []string{"Date", "Open", "High", "Low", "Close", "RSI", "RVI"}

// DefaultCSVName returns "{SYMBOL}_from_{YYYY-MM-DD}.csv".
func DefaultCSVName(symbol string, start time.Time) string {
	return fmt.Sprintf("%s_from_%s.csv", strings.ToUpper(symbol), start.Format(csvDateLayout))
}

// WriteCSV writes the OHLC columns and indicators at full precision, one line
// per date. Undefined indicator values are written as empty fields.
func WriteCSV(path string, rows []model.IndicatorRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Date.Format(csvDateLayout),
			formatFloat(r.Open),
			formatFloat(r.High),
			formatFloat(r.Low),
			formatFloat(r.Close),
			formatFloat(r.RSI),
			formatFloat(r.RVI),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write csv row %s: %w", rec[0], err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// ReadCSV parses a file written by WriteCSV.
func ReadCSV(path string) ([]model.IndicatorRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: missing header")
	}

	rows := make([]model.IndicatorRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		date, err := time.Parse(csvDateLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: parse date: %w", i+2, err)
		}
		vals := make([]float64, len(rec)-1)
		for j, field := range rec[1:] {
			v, err := parseFloat(field)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse %s: %w", i+2, csvHeader[j+1], err)
			}
			vals[j] = v
		}
		rows = append(rows, model.IndicatorRow{
			Bar: model.Bar{
				Date:  date,
				Open:  vals[0],
				High:  vals[1],
				Low:   vals[2],
				Close: vals[3],
			},
			RSI: vals[4],
			RVI: vals[5],
		})
	}
	return rows, nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
