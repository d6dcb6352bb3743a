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

// RESTFetcher implements Fetcher against a self-hosted market data REST API.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// FetchHistory expects a JSON array of {timestamp, open, high, low, close, volume}.
func (f *RESTFetcher) FetchHistory(ctx context.Context, symbol string, start time.Time) ([]model.Bar, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&from=%s",
		f.BaseURL, url.QueryEscape(symbol), start.Format("2006-01-02"))
	body, err := f.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	var bars []model.Bar
	gjson.ParseBytes(body).ForEach(func(_, v gjson.Result) bool {
		bars = append(bars, model.Bar{
			Date:   sessionDate(time.Unix(v.Get("timestamp").Int(), 0), time.UTC),
			Open:   v.Get("open").Float(),
			High:   v.Get("high").Float(),
			Low:    v.Get("low").Float(),
			Close:  v.Get("close").Float(),
			Volume: v.Get("volume").Float(),
		})
		return true
	})
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	return normalizeBars(bars), nil
}

// FetchLiveQuote expects {"open": ..., "last": ...}; either field may be missing.
func (f *RESTFetcher) FetchLiveQuote(ctx context.Context, symbol string) (model.LiveQuote, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	body, err := f.get(ctx, endpoint)
	if err != nil {
		return model.LiveQuote{}, fmt.Errorf("fetch quote: %w", err)
	}

	var q model.LiveQuote
	if v := gjson.GetBytes(body, "open"); v.Exists() && v.Type != gjson.Null {
		open := v.Float()
		q.Open = &open
	}
	if v := gjson.GetBytes(body, "last"); v.Exists() && v.Type != gjson.Null {
		last := v.Float()
		q.Last = &last
	}
	if q.Open == nil && q.Last == nil {
		return q, ErrLiveQuoteUnavailable
	}
	return q, nil
}

func (f *RESTFetcher) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid json body")
	}
	return body, nil
}
