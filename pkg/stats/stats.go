// Package stats computes per-month income/outgoing/dues splits, membership
// counts, average revenue per member, and projection figures from a ledger
// collection.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamishcoleman/dsl-accounts/pkg/ledger"
)

// ARPMSentinel is reported instead of average revenue per member when a
// period has no dues-paying members. Sparse months must still render.
const ARPMSentinel = -1

// Rollup row labels, in presentation order after the real months.
const (
	LabelAverage = "Average"
	LabelMonthTD = "MonthTD"
	LabelTotal   = "Total"
)

// MonthStats is the aggregate of one presentation row: a real month, the
// month-to-date bucket, or a synthetic rollup.
type MonthStats struct {
	Label    string
	Incoming decimal.Decimal
	Outgoing decimal.Decimal
	Dues     decimal.Decimal
	Other    decimal.Decimal
	Members  int64
	ARPM     int64
	Balance  decimal.Decimal
}

// Net is the month's net movement.
func (m MonthStats) Net() decimal.Decimal {
	return m.Incoming.Add(m.Outgoing)
}

// Report is the full statistics view: real months in ascending order,
// then the Average, MonthTD and Total rollups, each with a running
// balance computed over that same presentation order.
type Report struct {
	Rows []MonthStats
}

// Aggregate builds the statistics report for the given ledger. Real
// months are those strictly before now's month; the current month feeds
// the MonthTD row only.
func Aggregate(rs *ledger.RowSet, now time.Time) (*Report, error) {
	byMonth, err := rs.GroupBy("month", now)
	if err != nil {
		return nil, err
	}

	currentMonth := now.Format(ledger.MonthFormat)
	var realMonths []string
	for month := range byMonth {
		if month != "" && month < currentMonth {
			realMonths = append(realMonths, month)
		}
	}
	sort.Strings(realMonths)

	report := &Report{}
	for _, month := range realMonths {
		row, err := monthStats(month, byMonth[month], now)
		if err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, row)
	}

	report.Rows = append(report.Rows, average(report.Rows))

	monthTD := byMonth[currentMonth]
	if monthTD == nil {
		monthTD = ledger.NewRowSet()
	}
	td, err := monthStats(LabelMonthTD, monthTD, now)
	if err != nil {
		return nil, err
	}
	report.Rows = append(report.Rows, td)

	report.Rows = append(report.Rows, total(report.Rows[:len(realMonths)]))

	balance := decimal.Zero
	for i := range report.Rows {
		balance = balance.Add(report.Rows[i].Net())
		report.Rows[i].Balance = balance
	}

	return report, nil
}

// monthStats splits one month's collection into the incoming, outgoing,
// dues and other buckets, using the same filter vocabulary as every other
// report. Duplicate dues rows (same tag, same amount, same month) are a
// data-quality error.
func monthStats(label string, rs *ledger.RowSet, now time.Time) (MonthStats, error) {
	incoming, err := rs.Filter(now, "value>0")
	if err != nil {
		return MonthStats{}, err
	}
	outgoing, err := rs.Filter(now, "value<0")
	if err != nil {
		return MonthStats{}, err
	}
	dues, err := rs.Filter(now, "hashtag=~^dues:")
	if err != nil {
		return MonthStats{}, err
	}
	other, err := rs.Filter(now, "value>0", "hashtag!~^dues:")
	if err != nil {
		return MonthStats{}, err
	}

	byMember, err := dues.GroupBy("hashtag", now)
	if err != nil {
		return MonthStats{}, err
	}
	for tag, payments := range byMember {
		if err := checkDuplicateDues(label, tag, payments); err != nil {
			return MonthStats{}, err
		}
	}
	members := int64(len(byMember))

	return MonthStats{
		Label:    label,
		Incoming: incoming.Value(),
		Outgoing: outgoing.Value(),
		Dues:     dues.Value(),
		Other:    other.Value(),
		Members:  members,
		ARPM:     floorDiv(dues.Value(), members),
	}, nil
}

// checkDuplicateDues rejects two same-amount payments under one dues tag
// in a single month: almost certainly the same payment entered twice, and
// never resolved silently.
func checkDuplicateDues(month, tag string, payments *ledger.RowSet) error {
	rows := payments.Rows()
	for i, a := range rows {
		for _, b := range rows[i+1:] {
			if a.Value.Equal(b.Value) {
				return fmt.Errorf("duplicate dues payment %s %s in %s", tag, a.Value, month)
			}
		}
	}
	return nil
}

// floorDiv divides dues by the member count, floored toward negative
// infinity to a whole unit. A zero member count yields the sentinel
// rather than a division error.
func floorDiv(value decimal.Decimal, count int64) int64 {
	if count <= 0 {
		return ARPMSentinel
	}
	return value.Div(decimal.NewFromInt(count)).RoundFloor(0).IntPart()
}

// average computes the Average rollup over the real-month rows: each
// money field is the per-field sum divided by the number of months,
// floored at whole cents; the member count is floored to a whole member.
func average(months []MonthStats) MonthStats {
	row := MonthStats{Label: LabelAverage, ARPM: ARPMSentinel}
	if len(months) == 0 {
		return row
	}

	sum := total(months)
	count := decimal.NewFromInt(int64(len(months)))
	row.Incoming = sum.Incoming.Div(count).RoundFloor(2)
	row.Outgoing = sum.Outgoing.Div(count).RoundFloor(2)
	row.Dues = sum.Dues.Div(count).RoundFloor(2)
	row.Other = sum.Other.Div(count).RoundFloor(2)
	row.Members = decimal.NewFromInt(sum.Members).Div(count).RoundFloor(0).IntPart()
	row.ARPM = floorDiv(row.Dues, row.Members)
	return row
}

// total computes the Total rollup over the real-month rows.
func total(months []MonthStats) MonthStats {
	row := MonthStats{
		Label:    LabelTotal,
		Incoming: decimal.Zero,
		Outgoing: decimal.Zero,
		Dues:     decimal.Zero,
		Other:    decimal.Zero,
	}
	for _, m := range months {
		row.Incoming = row.Incoming.Add(m.Incoming)
		row.Outgoing = row.Outgoing.Add(m.Outgoing)
		row.Dues = row.Dues.Add(m.Dues)
		row.Other = row.Other.Add(m.Other)
		row.Members += m.Members
	}
	row.ARPM = floorDiv(row.Dues, row.Members)
	return row
}

// MembersNeeded projects how many members at the given dues rate cover
// the given outgoing costs, using the same floor-division policy as ARPM.
// A non-positive rate yields the sentinel.
func MembersNeeded(outgoing, rate decimal.Decimal) int64 {
	if !rate.IsPositive() {
		return ARPMSentinel
	}
	return outgoing.Abs().Div(rate).RoundFloor(0).IntPart()
}

// DuesNeeded projects the dues rate at which the given member count
// covers the given outgoing costs. A non-positive member count yields the
// sentinel.
func DuesNeeded(outgoing decimal.Decimal, members int64) int64 {
	return floorDiv(outgoing.Abs(), members)
}
