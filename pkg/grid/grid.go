// Package grid buckets a ledger into tag-by-month cells and renders the
// result as a column-aligned text table with per-month totals, running
// balances and forecast propagation.
package grid

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamishcoleman/dsl-accounts/pkg/ledger"
)

// monthColumnWidth is the fixed width of every month column. Month labels
// are seven characters ("2006-01"); one extra column position leaves room
// for the forecast marker on running balances.
const monthColumnWidth = 8

// Cell is one tag-by-month bucket after forecast reconciliation.
type Cell struct {
	Value      decimal.Decimal
	IsForecast bool
}

// Grid is the accumulated tag-by-month view of a ledger.
type Grid struct {
	Months []string // chronologically sorted month keys
	Tags   []string // sorted derived tag names

	Cells   map[string]map[string]Cell // tag -> month -> cell
	Totals  map[string]Cell            // month -> column total
	Running map[string]Cell            // month -> running balance
	Total   decimal.Decimal            // grand total
}

// rowTag derives the grid bucket name for a row: the hashtag (or
// "unknown") prefixed with the direction and capitalized. The row's own
// hashtag is left untouched for other consumers.
func rowTag(r ledger.Row) string {
	tag := r.Hashtag()
	if tag == "" {
		tag = "unknown"
	}
	if r.Direction == ledger.Outgoing {
		tag = "out " + tag
	} else {
		tag = "in " + tag
	}
	return strings.ToUpper(tag[:1]) + tag[1:]
}

// Accumulate builds the grid from a ledger collection. Each tag-month
// cell is forecast-reconciled before summing, so a settled payment
// supersedes its forecast placeholder in every total. Running balances
// are prefix sums in chronological month order; once a month's total is
// still forecast, that month's running balance and every later one are
// marked forecast too.
func Accumulate(rs *ledger.RowSet, now time.Time) (*Grid, error) {
	byMonth, err := rs.GroupBy("month", now)
	if err != nil {
		return nil, err
	}

	g := &Grid{
		Cells:   make(map[string]map[string]Cell),
		Totals:  make(map[string]Cell),
		Running: make(map[string]Cell),
	}

	tags := make(map[string]bool)
	for month, monthRows := range byMonth {
		if month == "" {
			return nil, fmt.Errorf("ledger contains undated rows")
		}
		g.Months = append(g.Months, month)

		total := Cell{Value: decimal.Zero}
		for tag, cellRows := range monthRows.GroupByFunc(rowTag) {
			reconciled := cellRows.ForecastFilter()
			cell := Cell{
				Value:      reconciled.Value(),
				IsForecast: reconciled.IsForecast(),
			}

			if g.Cells[tag] == nil {
				g.Cells[tag] = make(map[string]Cell)
			}
			g.Cells[tag][month] = cell
			tags[tag] = true

			total.Value = total.Value.Add(cell.Value)
			total.IsForecast = total.IsForecast || cell.IsForecast
		}
		g.Totals[month] = total
		g.Total = g.Total.Add(total.Value)
	}

	sort.Strings(g.Months)
	for tag := range tags {
		g.Tags = append(g.Tags, tag)
	}
	sort.Strings(g.Tags)

	running := decimal.Zero
	tainted := false
	for _, month := range g.Months {
		total := g.Totals[month]
		running = running.Add(total.Value)
		tainted = tainted || total.IsForecast
		g.Running[month] = Cell{Value: running, IsForecast: tainted}
	}

	return g, nil
}

// formatAmount renders a decimal without a decimal point when it has no
// fractional remainder, and at full precision otherwise.
func formatAmount(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.Truncate(0).String()
	}
	return d.String()
}

// formatCell right-aligns an amount in a month column, appending the
// forecast marker when the cell is still unconfirmed.
func formatCell(c Cell) string {
	s := formatAmount(c.Value)
	if c.IsForecast {
		s += "*"
	}
	return fmt.Sprintf("%*s", monthColumnWidth, s)
}

// Render lays the grid out as aligned text: a month header row, one row
// per sorted tag, a TOTALS row, a Running row, and the grand total.
func (g *Grid) Render() string {
	tagsLen := len("Running")
	for _, tag := range g.Tags {
		if len(tag) > tagsLen {
			tagsLen = len(tag)
		}
	}

	var sb strings.Builder

	sb.WriteString(strings.Repeat(" ", tagsLen))
	for _, month := range g.Months {
		fmt.Fprintf(&sb, " %*s", monthColumnWidth, month)
	}
	sb.WriteString("\n")

	for _, tag := range g.Tags {
		fmt.Fprintf(&sb, "%-*s", tagsLen, tag)
		for _, month := range g.Months {
			if cell, ok := g.Cells[tag][month]; ok {
				sb.WriteString(" " + formatCell(cell))
			} else {
				sb.WriteString(" " + strings.Repeat(" ", monthColumnWidth))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%-*s", tagsLen, "TOTALS")
	for _, month := range g.Months {
		sb.WriteString(" " + formatCell(g.Totals[month]))
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "%-*s", tagsLen, "Running")
	for _, month := range g.Months {
		sb.WriteString(" " + formatCell(g.Running[month]))
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "TOTAL: %s\n", formatAmount(g.Total))

	return sb.String()
}
