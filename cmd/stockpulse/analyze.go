package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"StockPulse/internal/recorder"
	"StockPulse/internal/report"
)

var (
	analyzeFrom string
	analyzeSave bool
	analyzeOut  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL",
	Short: "Analyze one symbol and exit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse("2006-01-02", analyzeFrom)
		if err != nil {
			return fmt.Errorf("invalid --from %q, expected YYYY-MM-DD", analyzeFrom)
		}

		env, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		a, err := env.collector.Analyze(ctx, args[0], start)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := report.Render(out, a); err != nil {
			return err
		}
		if err := env.recorder.RecordAnalysis(a); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: record history: %v\n", err)
		}

		if !analyzeSave && analyzeOut == "" {
			return nil
		}
		path := analyzeOut
		if path == "" {
			path = filepath.Join(env.cfg.Output.CSVDir, recorder.DefaultCSVName(a.Symbol, a.Start))
		}
		if err := recorder.WriteCSV(path, a.Rows); err != nil {
			return err
		}
		fmt.Fprintf(out, "Data saved to %s\n", path)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFrom, "from", "", "start date (YYYY-MM-DD)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "write {SYMBOL}_from_{DATE}.csv to the configured csv dir")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "write the CSV to this path instead")
	_ = analyzeCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(analyzeCmd)
}
