package ledger

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

var cent = decimal.New(1, -2)

// Split expands a row whose comment carries a `!months:N` bangtag into N
// rows, one per consecutive month starting at the row's own month. Each
// part keeps the comment, direction and forecast flag; the parts' values
// sum exactly to the original.
//
// Remainder rule: every part gets the original value divided by N and
// floored (toward negative infinity) at whole cents; the shortfall is
// then handed out one cent at a time starting with the earliest month,
// and any sub-cent residue of the original value also lands on the
// earliest month.
//
// Rows without the bangtag come back as a single-element slice unchanged.
func (r Row) Split() ([]Row, error) {
	vals := r.Bangtag("months")
	if len(vals) == 0 {
		return []Row{r}, nil
	}

	n, err := strconv.Atoi(vals[0])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("invalid months bangtag %q in %q", vals[0], r.Comment)
	}
	if n == 1 {
		return []Row{r}, nil
	}
	if r.Date.IsZero() {
		return nil, fmt.Errorf("cannot split undated row %q", r.Comment)
	}

	count := decimal.NewFromInt(int64(n))
	base := r.Value.Div(count).RoundFloor(2)
	remainder := r.Value.Sub(base.Mul(count))

	parts := make([]Row, n)
	for i := range parts {
		share := base
		if remainder.GreaterThanOrEqual(cent) {
			share = share.Add(cent)
			remainder = remainder.Sub(cent)
		}
		part := r
		part.Value = share
		part.Date = addMonths(r.Date, i)
		parts[i] = part
	}
	if !remainder.IsZero() {
		parts[0].Value = parts[0].Value.Add(remainder)
	}
	return parts, nil
}

// addMonths shifts a date forward by whole months, clamping the day to
// the target month's length so January 31 never spills into March.
func addMonths(t time.Time, months int) time.Time {
	if months == 0 {
		return t
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}
