// Package report renders ledger collections into the text, HTML, CSV and
// JSON output formats.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hamishcoleman/dsl-accounts/pkg/ledger"
)

// TopayStrings holds the formatting fragments for one topay output
// flavor. The same table-walking logic drives both the plain-text and
// the HTML form.
type TopayStrings struct {
	Header     string // fmt verb: month
	TableStart string
	TableRow   string // fmt verbs: bill name, price, date
	TableEnd   string
}

// TopayPlain formats the topay report as aligned plain text.
var TopayPlain = TopayStrings{
	Header:     "Date: %s",
	TableStart: "Bill\t\tPrice\tPay Date",
	TableRow:   "%-15s\t%s\t%s",
	TableEnd:   "",
}

// TopayHTML formats the topay report as HTML tables.
var TopayHTML = TopayStrings{
	Header:     "<h2>Date: <i>%s</i></h2>",
	TableStart: "<table>\n<tr><th>Bills</th><th>Price</th><th>Pay Date</th></tr>",
	TableRow:   "<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
	TableEnd:   "</table>",
}

// findBill looks for the bill's payment among one month's outgoing rows.
// More than one row with the same hashtag in a month is ambiguous and
// rejected. The returned price is the positive magnitude as displayed.
func findBill(rows *ledger.RowSet, bill string, now time.Time) (price, date string, err error) {
	matching, err := rows.Filter(now, "hashtag=="+bill)
	if err != nil {
		return "", "", err
	}

	switch matching.Len() {
	case 0:
		return "$0", "Not yet", nil
	case 1:
		row := matching.Rows()[0]
		return row.Value.Neg().String(), row.Date.Format(ledger.DateFormat), nil
	}
	return "", "", fmt.Errorf("multiple rows with hashtag %q in one month", bill)
}

// Topay renders, per payment month, the paid state of each configured
// bill: its price and pay date once paid, placeholders until then.
func Topay(rs *ledger.RowSet, bills []string, style TopayStrings, now time.Time) (string, error) {
	byMonth, err := rs.GroupBy("month", now)
	if err != nil {
		return "", err
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	var sb strings.Builder
	for _, month := range months {
		outgoing, err := byMonth[month].Filter(now, "direction==outgoing")
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&sb, style.Header, month)
		sb.WriteString("\n")
		sb.WriteString(style.TableStart)
		sb.WriteString("\n")

		for _, bill := range bills {
			price, date, err := findBill(outgoing, bill, now)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&sb, style.TableRow, capitalize(bill), price, date)
			sb.WriteString("\n")
		}

		sb.WriteString(style.TableEnd)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
