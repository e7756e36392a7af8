package stats

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// tsvColumns documents the export's column-number-to-field-name mapping.
// The header comment block in RenderTSV is generated from this table so
// the two can never drift apart.
var tsvColumns = []string{
	"month",
	"incoming",
	"outgoing",
	"dues",
	"other",
	"members",
	"arpm",
	"balance",
}

func formatARPM(arpm int64) string {
	return fmt.Sprintf("%d", arpm)
}

// RenderTSV renders the report as tab-separated values with a commented
// header block naming each column.
func (r *Report) RenderTSV() string {
	var sb strings.Builder

	sb.WriteString("# Columns:\n")
	for i, name := range tsvColumns {
		fmt.Fprintf(&sb, "# %d: %s\n", i+1, name)
	}

	for _, row := range r.Rows {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			row.Label,
			row.Incoming.String(),
			row.Outgoing.String(),
			row.Dues.String(),
			row.Other.String(),
			row.Members,
			formatARPM(row.ARPM),
			row.Balance.String(),
		)
	}
	return sb.String()
}

// RenderTable renders the report as a human-readable aligned table,
// followed by projection lines for each configured candidate dues rate
// and member count. Projections are computed against the Average row's
// outgoing costs.
func (r *Report) RenderTable(rates []decimal.Decimal, memberCounts []int64) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-8s %10s %10s %10s %10s %8s %6s %10s\n",
		"Month", "Incoming", "Outgoing", "Dues", "Other", "Members", "ARPM", "Balance")

	for _, row := range r.Rows {
		fmt.Fprintf(&sb, "%-8s %10s %10s %10s %10s %8d %6s %10s\n",
			row.Label,
			row.Incoming.String(),
			row.Outgoing.String(),
			row.Dues.String(),
			row.Other.String(),
			row.Members,
			formatARPM(row.ARPM),
			row.Balance.String(),
		)
	}

	average := r.rollup(LabelAverage)
	if average == nil || (len(rates) == 0 && len(memberCounts) == 0) {
		return sb.String()
	}

	sb.WriteString("\n")
	for _, rate := range rates {
		fmt.Fprintf(&sb, "Members needed at dues %s: %d\n",
			rate.String(), MembersNeeded(average.Outgoing, rate))
	}
	for _, count := range memberCounts {
		fmt.Fprintf(&sb, "Dues needed for %d members: %d\n",
			count, DuesNeeded(average.Outgoing, count))
	}
	return sb.String()
}

// rollup finds a rollup row by label.
func (r *Report) rollup(label string) *MonthStats {
	for i := range r.Rows {
		if r.Rows[i].Label == label {
			return &r.Rows[i]
		}
	}
	return nil
}
