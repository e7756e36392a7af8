package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hamishcoleman/dsl-accounts/pkg/ledger"
)

// JSONPayments renders a JSON object mapping each category hashtag to the
// date of its most recent incoming payment. Untagged incoming rows are
// not reported.
func JSONPayments(rs *ledger.RowSet, now time.Time) ([]byte, error) {
	incoming, err := rs.Filter(now, "direction==incoming")
	if err != nil {
		return nil, err
	}

	byTag, err := incoming.GroupBy("hashtag", now)
	if err != nil {
		return nil, err
	}

	payments := make(map[string]string, len(byTag))
	for tag, rows := range byTag {
		if tag == "" {
			continue
		}
		last, ok := rows.Last()
		if !ok {
			continue
		}
		payments[tag] = last.Date.Format(ledger.DateFormat)
	}

	out, err := json.MarshalIndent(payments, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode payments: %w", err)
	}
	return out, nil
}
