package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hamishcoleman/dsl-accounts/pkg/report"
)

var csvOut string

// csvCmd represents the csv command.
var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Output transactions as csv",
	Run:   runCSV,
}

func init() {
	csvCmd.Flags().StringVar(&csvOut, "out", "", "output file (default stdout)")
}

func runCSV(cmd *cobra.Command, args []string) {
	rs, _, _, err := loadLedger()
	exitOnError(err, "failed to load ledger")

	out := os.Stdout
	if csvOut != "" {
		f, err := os.Create(csvOut)
		exitOnError(err, "failed to create output file")
		defer f.Close()
		out = f
	}

	exitOnError(report.CSV(out, rs), "failed to write csv")
}
