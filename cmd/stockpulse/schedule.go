package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"StockPulse/internal/scheduler"
)

var runOnStart bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Re-run the configured symbol on a cron schedule and record each run",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		cfg := env.cfg
		if err := cfg.ValidateSchedule(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sched := scheduler.NewScheduler(ctx, env.collector, env.recorder, cfg.Schedule.Symbol, cfg.Schedule.LookbackDays)
		if err := sched.Register(cfg.Schedule.Cron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if runOnStart || os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, executing analysis now")
			go sched.RunAnalysisNow()
		}

		log.Printf("[INFO] schedule %q running for %s. Press Ctrl+C to stop.", cfg.Schedule.Cron, sched.Symbol)
		fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s on %q. Press Ctrl+C to stop.\n", sched.Symbol, cfg.Schedule.Cron)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
		return nil
	},
}

func init() {
	scheduleCmd.Flags().BoolVar(&runOnStart, "run-now", false, "run one analysis immediately")
	rootCmd.AddCommand(scheduleCmd)
}
