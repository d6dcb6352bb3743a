package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"StockPulse/internal/prompt"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "stockpulse",
	Short: "Daily prices with RSI and RVI for a ticker symbol",
	Long: `stockpulse fetches daily OHLC bars for a ticker symbol, derives RSI and
RVI, and shows them with the live session change. Without a subcommand it
runs interactively.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return prompt.NewSession(os.Stdin, cmd.OutOrStdout(), env.collector, env.recorder, env.cfg.Output.CSVDir).Run(ctx)
	},
}

func init() {
	def := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		def = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", def, "path to the YAML config file")
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
