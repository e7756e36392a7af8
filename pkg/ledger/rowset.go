package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RowSet is an ordered, appendable collection of rows. Insertion order is
// preserved for deterministic rendering, but semantically the collection
// is a multiset. Filter, GroupBy and ForecastFilter derive new collections
// and never mutate the source.
type RowSet struct {
	rows []Row
}

// NewRowSet returns an empty collection.
func NewRowSet() *RowSet {
	return &RowSet{}
}

// Append adds rows to the end of the collection.
func (rs *RowSet) Append(rows ...Row) {
	rs.rows = append(rs.rows, rows...)
}

// Merge appends every row of other, preserving both orders.
func (rs *RowSet) Merge(other *RowSet) {
	rs.rows = append(rs.rows, other.rows...)
}

// Rows returns the members in insertion order. The slice is shared;
// callers treat it as read-only.
func (rs *RowSet) Rows() []Row {
	return rs.rows
}

// Len returns the number of members.
func (rs *RowSet) Len() int {
	return len(rs.rows)
}

// Value returns the exact decimal sum over all members. No rounding is
// applied; display formatting is the renderer's concern.
func (rs *RowSet) Value() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rs.rows {
		sum = sum.Add(r.Value)
	}
	return sum
}

// IsForecast reports whether any member is a forecast row.
func (rs *RowSet) IsForecast() bool {
	for _, r := range rs.rows {
		if r.IsForecast {
			return true
		}
	}
	return false
}

// Last returns the member with the maximum date. The second return is
// false for an empty collection.
func (rs *RowSet) Last() (Row, bool) {
	if len(rs.rows) == 0 {
		return Row{}, false
	}
	last := rs.rows[0]
	for _, r := range rs.rows[1:] {
		if r.Date.After(last.Date) {
			last = r
		}
	}
	return last, true
}

// Sorted returns a new collection with the members ordered by date.
// Members sharing a date keep their insertion order.
func (rs *RowSet) Sorted() *RowSet {
	out := &RowSet{rows: make([]Row, len(rs.rows))}
	copy(out.rows, rs.rows)
	sort.SliceStable(out.rows, func(i, j int) bool {
		return out.rows[i].Date.Before(out.rows[j].Date)
	})
	return out
}

// GroupBy partitions the members by the named derived field, returning a
// map from the field's string form to a sub-collection. Key iteration
// order is the caller's responsibility. Rows on which the field cannot be
// resolved group under the empty key.
func (rs *RowSet) GroupBy(field string, now time.Time) (map[string]*RowSet, error) {
	spec, ok := fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return rs.GroupByFunc(func(r Row) string {
		key, err := spec.get(r, now)
		if err != nil {
			return ""
		}
		return key
	}), nil
}

// GroupByFunc partitions the members by an arbitrary derived key
// function. The key function must not mutate the row; derived keys leave
// the original rows unchanged for any other consumer.
func (rs *RowSet) GroupByFunc(key func(Row) string) map[string]*RowSet {
	groups := make(map[string]*RowSet)
	for _, r := range rs.rows {
		k := key(r)
		sub, ok := groups[k]
		if !ok {
			sub = NewRowSet()
			groups[k] = sub
		}
		sub.Append(r)
	}
	return groups
}

// Filter returns a new collection of the members satisfying every given
// `field<op>value` expression. An empty expression list is a no-op copy.
// Each expression is parsed once before being applied to the members;
// a malformed expression or unknown field fails here, never silently.
func (rs *RowSet) Filter(now time.Time, exprs ...string) (*RowSet, error) {
	preds, err := ParsePredicates(exprs)
	if err != nil {
		return nil, err
	}

	out := NewRowSet()
	for _, r := range rs.rows {
		match := true
		for _, p := range preds {
			if !p.Match(r, now) {
				match = false
				break
			}
		}
		if match {
			out.Append(r)
		}
	}
	return out, nil
}

// ForecastFilter reconciles forecast rows against settled ones. When the
// collection holds exactly one forecast row and at least one settled row,
// the settled subset is returned: the real data has arrived and the
// placeholder is superseded. In every other case (no forecast, multiple
// forecasts, or nothing settled to reconcile against) the collection is
// returned unchanged.
func (rs *RowSet) ForecastFilter() *RowSet {
	forecast := NewRowSet()
	settled := NewRowSet()
	for _, r := range rs.rows {
		if r.IsForecast {
			forecast.Append(r)
		} else {
			settled.Append(r)
		}
	}

	if forecast.Len() != 1 || settled.Len() == 0 {
		return rs
	}
	return settled
}
