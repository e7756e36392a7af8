package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hamishcoleman/dsl-accounts/pkg/config"
	"github.com/hamishcoleman/dsl-accounts/pkg/report"
)

// makeBalanceCmd represents the make_balance command.
var makeBalanceCmd = &cobra.Command{
	Use:   "make_balance",
	Short: "Render the HTML balance page",
	Long: `Render the HTML balance page by substituting the grid, the
current balance and the next rent due date into the configured template.

Example:
  dsl-accounts --dir cash make_balance`,
	Run: runMakeBalance,
}

func runMakeBalance(cmd *cobra.Command, args []string) {
	rs, cfg, now, err := loadLedger()
	exitOnError(err, "failed to load ledger")

	reportCfg, err := config.LoadReport(cfg.Ledger.ReportPath)
	exitOnError(err, "failed to load report configuration")

	err = report.WritePage(reportCfg.PageOut, reportCfg.Template, rs, now)
	exitOnError(err, "failed to render balance page")

	slog.Info("Balance page written", "path", reportCfg.PageOut)
}
