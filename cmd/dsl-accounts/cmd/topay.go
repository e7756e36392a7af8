package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamishcoleman/dsl-accounts/pkg/config"
	"github.com/hamishcoleman/dsl-accounts/pkg/report"
)

// topayCmd represents the topay command.
var topayCmd = &cobra.Command{
	Use:   "topay",
	Short: "List all pending payments",
	Run: func(cmd *cobra.Command, args []string) {
		runTopay(report.TopayPlain)
	},
}

// topayHTMLCmd represents the topay_html command.
var topayHTMLCmd = &cobra.Command{
	Use:   "topay_html",
	Short: "List all pending payments as HTML table",
	Run: func(cmd *cobra.Command, args []string) {
		runTopay(report.TopayHTML)
	},
}

func runTopay(style report.TopayStrings) {
	rs, cfg, now, err := loadLedger()
	exitOnError(err, "failed to load ledger")

	reportCfg, err := config.LoadReport(cfg.Ledger.ReportPath)
	exitOnError(err, "failed to load report configuration")

	out, err := report.Topay(rs, reportCfg.Bills, style, now)
	exitOnError(err, "failed to render topay report")

	fmt.Print(out)
}
