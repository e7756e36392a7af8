package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamishcoleman/dsl-accounts/pkg/report"
)

// jsonPaymentsCmd represents the json_payments command.
var jsonPaymentsCmd = &cobra.Command{
	Use:   "json_payments",
	Short: "Output last payment date per category as JSON",
	Run:   runJSONPayments,
}

func runJSONPayments(cmd *cobra.Command, args []string) {
	rs, _, now, err := loadLedger()
	exitOnError(err, "failed to load ledger")

	out, err := report.JSONPayments(rs, now)
	exitOnError(err, "failed to render payments")

	fmt.Println(string(out))
}
