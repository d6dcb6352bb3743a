package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"StockPulse/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
	Now       func() time.Time
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: yahooBaseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
		Now: time.Now,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

func (f *YahooFetcher) FetchHistory(ctx context.Context, symbol string, start time.Time) ([]model.Bar, error) {
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("period1", fmt.Sprint(start.Unix()))
	q.Set("period2", fmt.Sprint(f.Now().Unix()))
	q.Set("events", "history")
	bars, err := f.fetchChart(ctx, symbol, q)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	return bars, nil
}

func (f *YahooFetcher) FetchLiveQuote(ctx context.Context, symbol string) (model.LiveQuote, error) {
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("range", "1d")
	bars, err := f.fetchChart(ctx, symbol, q)
	if err != nil {
		return model.LiveQuote{}, err
	}
	if len(bars) == 0 {
		return model.LiveQuote{}, ErrLiveQuoteUnavailable
	}
	last := bars[len(bars)-1]
	return model.LiveQuote{Open: &last.Open, Last: &last.Close}, nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol string, q url.Values) ([]model.Bar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yahoo decode: invalid json")
	}
	if desc := gjson.GetBytes(body, "chart.error.description"); desc.Exists() {
		return nil, fmt.Errorf("yahoo api error: %s", desc.String())
	}

	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, nil
	}
	return parseChartResult(result), nil
}

// parseChartResult converts one chart result into bars. Entries with a null
// price (holidays, halted sessions) are skipped.
func parseChartResult(result gjson.Result) []model.Bar {
	loc := time.UTC
	if tz := result.Get("meta.exchangeTimezoneName").String(); tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	bars := make([]model.Bar, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(opens) || i >= len(highs) || i >= len(lows) || i >= len(closes) {
			break
		}
		if opens[i].Type == gjson.Null || highs[i].Type == gjson.Null ||
			lows[i].Type == gjson.Null || closes[i].Type == gjson.Null {
			continue
		}
		var vol float64
		if i < len(volumes) {
			vol = volumes[i].Float()
		}
		bars = append(bars, model.Bar{
			Date:   sessionDate(time.Unix(ts.Int(), 0), loc),
			Open:   opens[i].Float(),
			High:   highs[i].Float(),
			Low:    lows[i].Float(),
			Close:  closes[i].Float(),
			Volume: vol,
		})
	}
	return normalizeBars(bars)
}
