package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockPulse/internal/collector"
	"StockPulse/internal/recorder"
	"StockPulse/internal/report"

	"github.com/robfig/cron/v3"
)

// Scheduler re-runs the analysis of one symbol on a cron schedule.
// Every tick is an independent run over a fresh lookback window.
type Scheduler struct {
	Cron         *cron.Cron
	Collector    *collector.Collector
	Recorder     recorder.Recorder
	Ctx          context.Context
	Symbol       string
	LookbackDays int
	Now          func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, rec recorder.Recorder, symbol string, lookbackDays int) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Collector:    col,
		Recorder:     rec,
		Ctx:          ctx,
		Symbol:       collector.NormalizeSymbol(symbol),
		LookbackDays: lookbackDays,
		Now:          time.Now,
	}
}

// Register adds the analysis task for the given cron expression.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Printf("[INFO] scheduler started for %s", s.Symbol)
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes one analysis immediately and returns its error.
func (s *Scheduler) RunNow() error {
	return s.run()
}

// RunAnalysisNow executes the analysis task immediately (for RUN_ON_START),
// logging failures the same way as a cron tick.
func (s *Scheduler) RunAnalysisNow() {
	s.analysisTask()
}

func (s *Scheduler) analysisTask() {
	if err := s.run(); err != nil {
		log.Printf("[ERROR] scheduled analysis: %v", err)
	}
}

func (s *Scheduler) run() error {
	start := s.Now().AddDate(0, 0, -s.LookbackDays)
	log.Printf("[INFO] running analysis for %s from %s", s.Symbol, start.Format("2006-01-02"))

	a, err := s.Collector.Analyze(s.Ctx, s.Symbol, start)
	if err != nil {
		return err
	}
	log.Printf("[INFO] %s", report.Summary(a))

	if err := s.Recorder.RecordAnalysis(a); err != nil {
		return fmt.Errorf("record analysis: %w", err)
	}
	return nil
}
