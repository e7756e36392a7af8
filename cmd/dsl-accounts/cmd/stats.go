package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamishcoleman/dsl-accounts/pkg/config"
	"github.com/hamishcoleman/dsl-accounts/pkg/stats"
)

var statsTSV bool

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display monthly statistics",
	Long: `Display per-month incoming/outgoing/dues splits, membership
counts, average revenue per member, and projection figures.

Months strictly before the current one are reported individually; the
current month appears as the MonthTD row, followed by the Average and
Total rollups.

Example:
  dsl-accounts --dir cash stats
  dsl-accounts --dir cash stats --tsv`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsTSV, "tsv", false, "output tab-separated values")
}

func runStats(cmd *cobra.Command, args []string) {
	rs, cfg, now, err := loadLedger()
	exitOnError(err, "failed to load ledger")

	reportCfg, err := config.LoadReport(cfg.Ledger.ReportPath)
	exitOnError(err, "failed to load report configuration")

	report, err := stats.Aggregate(rs, now)
	exitOnError(err, "failed to aggregate statistics")

	if statsTSV {
		fmt.Print(report.RenderTSV())
		return
	}

	rates, err := reportCfg.Rates()
	exitOnError(err, "invalid dues rates in report configuration")

	fmt.Print(report.RenderTable(rates, reportCfg.MemberCounts))
}
