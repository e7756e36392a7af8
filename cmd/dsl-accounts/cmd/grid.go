package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamishcoleman/dsl-accounts/pkg/grid"
)

// gridCmd represents the grid command.
var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Output a grid of transaction tags vs months",
	Long: `Output the ledger as an aligned tag-by-month grid with per-month
totals, running balances and a grand total. Forecast cells are marked
with "*"; once a month is still forecast, its running balance and every
later one carry the marker too.

Example:
  dsl-accounts --dir cash --future-dir cash/future grid`,
	Run: runGrid,
}

func runGrid(cmd *cobra.Command, args []string) {
	rs, _, now, err := loadLedger()
	exitOnError(err, "failed to load ledger")

	g, err := grid.Accumulate(rs, now)
	exitOnError(err, "failed to accumulate grid")

	fmt.Print(g.Render())
}
