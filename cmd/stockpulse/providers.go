package main

import (
	"fmt"
	"log"
	"os"

	"StockPulse/internal/collector"
	"StockPulse/internal/config"
	"StockPulse/internal/recorder"
)

type appEnv struct {
	cfg       *config.Config
	collector *collector.Collector
	recorder  recorder.Recorder
}

// setup loads config, redirects logging and wires the fetcher and recorder.
func setup() (*appEnv, func(), error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation: %w", err)
	}

	closeLog := setupLog(cfg.Log.File)

	fetcher := newFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	rec := newRecorder(cfg)
	env := &appEnv{
		cfg:       cfg,
		collector: collector.NewCollector(fetcher, cfg.Indicators.RSIPeriod, cfg.Indicators.RVIPeriod),
		recorder:  rec,
	}
	cleanup := func() {
		if err := rec.Close(); err != nil {
			log.Printf("[WARN] close recorder: %v", err)
		}
		closeLog()
	}
	return env, cleanup, nil
}

func setupLog(path string) func() {
	if path == "" {
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("[WARN] open log file %s, logging to stderr: %v", path, err)
		return func() {}
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	if cfg.DataSource.BaseURL != "" {
		return collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	}
	return collector.NewYahooFetcher(cfg.Proxy)
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}
