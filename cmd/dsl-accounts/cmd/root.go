// Package cmd provides the CLI commands for dsl-accounts.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamishcoleman/dsl-accounts/pkg/config"
	"github.com/hamishcoleman/dsl-accounts/pkg/ledger"
)

var (
	cfgFile   string
	dirFlag   string
	futureDir string
	filters   []string
	debug     bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dsl-accounts",
	Short: "Run calculations and transformations on cash data",
	Long: `dsl-accounts tracks dues, bills and cash locations from
tab-separated flat files, without a database.

It supports:
- Exact decimal summation and balance checks
- A tag-by-month grid with running totals and forecast propagation
- Pending-payment (topay) tables as text or HTML
- Monthly statistics with membership and revenue projections
- CSV, JSON and HTML page exports

Example:
  dsl-accounts --dir cash sum
  dsl-accounts --dir cash --future-dir cash/future grid
  dsl-accounts stats --tsv`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "ledger input directory (default from LEDGER_DIR)")
	rootCmd.PersistentFlags().StringVar(&futureDir, "future-dir", "", "forecast input directory (default from LEDGER_FUTURE_DIR)")
	rootCmd.PersistentFlags().StringArrayVar(&filters, "filter", nil, "row filter expression field<op>value (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(sumCmd)
	rootCmd.AddCommand(partyCmd)
	rootCmd.AddCommand(topayCmd)
	rootCmd.AddCommand(topayHTMLCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(csvCmd)
	rootCmd.AddCommand(jsonPaymentsCmd)
	rootCmd.AddCommand(makeBalanceCmd)
	rootCmd.AddCommand(statsCmd)
}

// loadLedger loads configuration and the full ledger collection, applying
// any --filter expressions. It is the shared front half of every
// subcommand.
func loadLedger() (*ledger.RowSet, *config.Config, time.Time, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	if dirFlag != "" {
		cfg.Ledger.Dir = dirFlag
	}
	if futureDir != "" {
		cfg.Ledger.FutureDir = futureDir
	}
	if err := cfg.Validate("dir"); err != nil {
		return nil, nil, time.Time{}, err
	}

	now, err := cfg.Now()
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	slog.Debug("Loading ledger", "dir", cfg.Ledger.Dir, "future_dir", cfg.Ledger.FutureDir)
	rs, err := ledger.LoadDirs(cfg.Ledger.Dir, cfg.Ledger.FutureDir)
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	slog.Debug("Ledger loaded", "rows", rs.Len())

	if len(filters) > 0 {
		rs, err = rs.Filter(now, filters...)
		if err != nil {
			return nil, nil, time.Time{}, err
		}
		slog.Debug("Filters applied", "filters", filters, "rows", rs.Len())
	}

	return rs, cfg, now, nil
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
