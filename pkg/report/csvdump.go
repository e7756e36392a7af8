package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/hamishcoleman/dsl-accounts/pkg/ledger"
)

// CSV dumps every row of the collection, sorted by date, as comma-
// separated values: a capitalized header, one line per row, a blank line,
// and a trailing Sum row with the exact total.
func CSV(w io.Writer, rs *ledger.RowSet) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Value", "Date", "Comment", "Direction"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	sorted := rs.Sorted()
	for _, r := range sorted.Rows() {
		record := []string{
			r.Value.String(),
			r.Date.Format(ledger.DateFormat),
			r.Comment,
			string(r.Direction),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	for _, record := range [][]string{{""}, {"Sum"}, {sorted.Value().String()}} {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv trailer: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
