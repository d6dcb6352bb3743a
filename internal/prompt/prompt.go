// Package prompt implements the interactive analysis loop.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"StockPulse/internal/collector"
	"StockPulse/internal/recorder"
	"StockPulse/internal/report"
)

const dateLayout = "2006-01-02"

// Session asks for a symbol and start date, analyses it, and repeats until
// the user declines or input ends. Failures of one symbol never end the loop.
type Session struct {
	lines     <-chan string
	out       io.Writer
	collector *collector.Collector
	recorder  recorder.Recorder
	csvDir    string
}

func NewSession(in io.Reader, out io.Writer, col *collector.Collector, rec recorder.Recorder, csvDir string) *Session {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Session{
		lines:     readLines(in),
		out:       out,
		collector: col,
		recorder:  rec,
		csvDir:    csvDir,
	}
}

// readLines feeds input lines to a channel so prompts can also wait on a context.
// The channel is closed when input ends.
func readLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

// Run blocks until the user stops, input is exhausted or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	for {
		if !s.runOnce(ctx) {
			break
		}
		again, ok := s.ask(ctx, "\nWould you like to analyze another stock or ETF? (yes/no): ")
		if !ok || strings.ToLower(again) != "yes" {
			break
		}
	}
	if ctx.Err() != nil {
		fmt.Fprintln(s.out)
	}
	fmt.Fprintln(s.out, "Thank you for using the stock data viewer. Goodbye!")
	return nil
}

// runOnce handles one symbol. It returns false when input has ended or ctx is cancelled.
func (s *Session) runOnce(ctx context.Context) bool {
	symbol, ok := s.ask(ctx, "Enter the stock or ETF ticker symbol (e.g., AAPL for Apple, SPY for S&P 500 ETF): ")
	if !ok {
		return false
	}
	rawDate, ok := s.ask(ctx, "Enter the start date (YYYY-MM-DD): ")
	if !ok {
		return false
	}

	start, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		log.Printf("[ERROR] parse start date %q: %v", rawDate, err)
		fmt.Fprintf(s.out, "Error: invalid start date %q, expected YYYY-MM-DD\n", rawDate)
		return true
	}

	a, err := s.collector.Analyze(ctx, symbol, start)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return true
	}
	if err := report.Render(s.out, a); err != nil {
		log.Printf("[ERROR] render %s: %v", a.Symbol, err)
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return true
	}
	if err := s.recorder.RecordAnalysis(a); err != nil {
		log.Printf("[WARN] record analysis for %s: %v", a.Symbol, err)
	}

	save, ok := s.ask(ctx, "\nDo you want to save this data to a CSV file? (yes/no): ")
	if !ok {
		return false
	}
	if strings.ToLower(save) == "yes" {
		path := filepath.Join(s.csvDir, recorder.DefaultCSVName(a.Symbol, a.Start))
		if err := recorder.WriteCSV(path, a.Rows); err != nil {
			log.Printf("[ERROR] save %s: %v", path, err)
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return true
		}
		fmt.Fprintf(s.out, "Data saved to %s\n", path)
	}
	return true
}

// ask returns false when input has ended or ctx is cancelled.
func (s *Session) ask(ctx context.Context, question string) (string, bool) {
	fmt.Fprint(s.out, question)
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-s.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}
