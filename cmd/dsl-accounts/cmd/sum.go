package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamishcoleman/dsl-accounts/pkg/ledger"
)

// sumCmd represents the sum command.
var sumCmd = &cobra.Command{
	Use:   "sum",
	Short: "Sum all transactions",
	Long: `Sum all transactions and print the exact decimal total.

The settled (non-forecast) ledger must never sum below zero; a negative
settled balance aborts the report.

Example:
  dsl-accounts --dir cash sum`,
	Run: runSum,
}

// partyCmd represents the party command.
var partyCmd = &cobra.Command{
	Use:   "party",
	Short: "Is it party time or not?",
	Run:   runParty,
}

func runSum(cmd *cobra.Command, args []string) {
	rs, _, _, err := loadLedger()
	exitOnError(err, "failed to load ledger")

	exitOnError(ledger.CheckBalance(rs), "balance check failed")

	fmt.Println(rs.Value().String())
}

func runParty(cmd *cobra.Command, args []string) {
	rs, _, _, err := loadLedger()
	exitOnError(err, "failed to load ledger")

	if rs.Value().IsPositive() {
		fmt.Println("Success")
	} else {
		fmt.Println("Fail")
	}
}
