// Package ledger implements the in-memory transaction ledger: row parsing
// and validation, hashtag/bangtag extraction, multi-month splitting, and a
// queryable collection with grouping, filtering and forecast reconciliation.
package ledger

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction marks which side of the ledger a transaction sits on.
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

// DateFormat is the on-disk date layout for all ledger files.
const DateFormat = "2006-01-02"

// MonthFormat is the year-month bucket key layout.
const MonthFormat = "2006-01"

// ErrMultipleHashtags is returned when a comment carries more than one
// hashtag. Categorization must be unambiguous, so the row is rejected
// rather than picking one tag.
var ErrMultipleHashtags = errors.New("multiple hashtags in comment")

var (
	hashtagPattern = regexp.MustCompile(`#(\S+)`)
	bangtagPattern = regexp.MustCompile(`!(\w+):(\S+)`)
)

// Row is a single ledger transaction. Value is an exact decimal amount:
// negative for outgoing transactions, positive for incoming. Date may be
// the zero time for rows that never carried a usable date; derived
// accessors tolerate that.
type Row struct {
	Value      decimal.Decimal
	Date       time.Time
	Comment    string
	Direction  Direction
	IsForecast bool
}

// NewRow builds a Row from the raw string fields of a ledger file line.
// The amount on disk is an unsigned magnitude; outgoing rows are negated
// here so that summation needs no further sign handling. It fails on an
// unrecognized direction, a malformed amount or date, or a comment with
// more than one hashtag.
func NewRow(value, date, comment, direction string) (Row, error) {
	dir := Direction(direction)
	if dir != Incoming && dir != Outgoing {
		return Row{}, fmt.Errorf("direction %q unhandled", direction)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Row{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	if dir == Outgoing {
		amount = amount.Neg()
	}

	when, err := time.Parse(DateFormat, strings.TrimSpace(date))
	if err != nil {
		return Row{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	if tags := hashtagPattern.FindAllStringSubmatch(comment, -1); len(tags) > 1 {
		return Row{}, fmt.Errorf("%w: %q", ErrMultipleHashtags, comment)
	}

	return Row{
		Value:     amount,
		Date:      when,
		Comment:   comment,
		Direction: dir,
	}, nil
}

// Month returns the year-month bucket key for this row, or the empty
// string when the row has no date.
func (r Row) Month() string {
	if r.Date.IsZero() {
		return ""
	}
	return r.Date.Format(MonthFormat)
}

// Hashtag returns the category tag extracted from the comment, or the
// empty string when the comment carries none. Comments with multiple tags
// are rejected at construction, so at most one match exists here.
func (r Row) Hashtag() string {
	m := hashtagPattern.FindStringSubmatch(r.Comment)
	if m == nil {
		return ""
	}
	return m[1]
}

// Bangtag returns the comma-separated values of the `!key:v1,v2`
// annotation with the given key, or nil when the comment has no such
// annotation.
func (r Row) Bangtag(key string) []string {
	for _, m := range bangtagPattern.FindAllStringSubmatch(r.Comment, -1) {
		if m[1] == key {
			return strings.Split(m[2], ",")
		}
	}
	return nil
}

// Location returns the cash location for this row. An explicit `!locn:`
// bangtag wins; otherwise a legacy comment-substring heuristic is applied
// in fixed priority order. Returns the empty string when neither matches.
func (r Row) Location() string {
	if vals := r.Bangtag("locn"); len(vals) > 0 {
		return vals[0]
	}

	// Transitional compatibility with comments written before bangtags
	// existed.
	heuristics := []struct {
		substr   string
		location string
	}{
		{"cash on bank", "bank"},
		{"deducted from bank", "bank"},
		{"cash on paypal", "paypal"},
	}
	for _, h := range heuristics {
		if strings.Contains(r.Comment, h.substr) {
			return h.location
		}
	}
	return ""
}

// RelMonths returns the signed offset in whole months of this row's month
// from now's month: 0 for the current month, negative for past months.
func (r Row) RelMonths(now time.Time) int {
	return (r.Date.Year()*12 + int(r.Date.Month())) -
		(now.Year()*12 + int(now.Month()))
}

// Tuple returns the raw field strings (amount, date, comment, direction)
// that reproduce this row through NewRow. Outgoing amounts are emitted as
// the positive magnitude stored on disk.
func (r Row) Tuple() (string, string, string, string) {
	amount := r.Value
	if r.Direction == Outgoing {
		amount = amount.Neg()
	}
	return amount.String(), r.Date.Format(DateFormat), r.Comment, string(r.Direction)
}
