package ledger

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Operator is a predicate comparison operator.
type Operator string

const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpRegexMatch   Operator = "=~"
	OpRegexNoMatch Operator = "!~"
)

// ErrUnknownField is returned when a predicate names a field that is not
// in the closed accessor table.
var ErrUnknownField = errors.New("unknown filter field")

type fieldKind int

const (
	kindString fieldKind = iota
	kindDecimal
	kindDate
	kindInt
)

// errNoValue signals that an attribute could not be resolved for a row
// (e.g. a date-derived field on an undated row). The row simply does not
// match; it is never a fatal error.
var errNoValue = errors.New("attribute has no value")

// fieldSpec resolves one filterable attribute to its string form. The
// kind selects the comparison domain for the ordering operators.
type fieldSpec struct {
	kind fieldKind
	get  func(Row, time.Time) (string, error)
}

// fields is the closed table of filterable attributes. Predicate parsing
// rejects any name not listed here.
var fields = map[string]fieldSpec{
	"value": {kindDecimal, func(r Row, _ time.Time) (string, error) {
		return r.Value.String(), nil
	}},
	"date": {kindDate, func(r Row, _ time.Time) (string, error) {
		if r.Date.IsZero() {
			return "", errNoValue
		}
		return r.Date.Format(DateFormat), nil
	}},
	"month": {kindString, func(r Row, _ time.Time) (string, error) {
		if r.Date.IsZero() {
			return "", errNoValue
		}
		return r.Month(), nil
	}},
	"comment": {kindString, func(r Row, _ time.Time) (string, error) {
		return r.Comment, nil
	}},
	"direction": {kindString, func(r Row, _ time.Time) (string, error) {
		return string(r.Direction), nil
	}},
	"hashtag": {kindString, func(r Row, _ time.Time) (string, error) {
		return r.Hashtag(), nil
	}},
	"location": {kindString, func(r Row, _ time.Time) (string, error) {
		return r.Location(), nil
	}},
	"isforecast": {kindString, func(r Row, _ time.Time) (string, error) {
		return strconv.FormatBool(r.IsForecast), nil
	}},
	"rel_months": {kindInt, func(r Row, now time.Time) (string, error) {
		if r.Date.IsZero() {
			return "", errNoValue
		}
		return strconv.Itoa(r.RelMonths(now)), nil
	}},
}

// operators in scan order: two-character operators first so that "==" is
// not misread as an empty-field "=" form.
var operators = []Operator{OpEqual, OpNotEqual, OpRegexMatch, OpRegexNoMatch, OpGreater, OpLess}

// Predicate is one parsed `field<op>value` filter expression. Parsing
// validates the field name, the operator, and the literal against the
// field's type, so Match itself cannot fail.
type Predicate struct {
	Field   string
	Op      Operator
	Literal string

	spec    fieldSpec
	re      *regexp.Regexp
	decimal decimal.Decimal
	date    time.Time
	integer int
}

// ParsePredicate parses a textual `field<op>value` expression. Unknown
// fields, unknown operators and literals that do not fit the field's type
// are construction-time errors.
func ParsePredicate(expr string) (*Predicate, error) {
	var (
		field, literal string
		op             Operator
	)
	for _, candidate := range operators {
		if f, v, ok := strings.Cut(expr, string(candidate)); ok {
			field, op, literal = f, candidate, v
			break
		}
	}
	if op == "" {
		return nil, fmt.Errorf("no operator in filter %q", expr)
	}

	spec, ok := fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	p := &Predicate{Field: field, Op: op, Literal: literal, spec: spec}

	switch op {
	case OpRegexMatch, OpRegexNoMatch:
		re, err := regexp.Compile(literal)
		if err != nil {
			return nil, fmt.Errorf("invalid regex in filter %q: %w", expr, err)
		}
		p.re = re
		return p, nil
	}

	switch spec.kind {
	case kindDecimal:
		d, err := decimal.NewFromString(literal)
		if err != nil {
			return nil, fmt.Errorf("invalid decimal in filter %q: %w", expr, err)
		}
		p.decimal = d
	case kindDate:
		t, err := time.Parse(DateFormat, literal)
		if err != nil {
			return nil, fmt.Errorf("invalid date in filter %q: %w", expr, err)
		}
		p.date = t
	case kindInt:
		n, err := strconv.Atoi(literal)
		if err != nil {
			return nil, fmt.Errorf("invalid integer in filter %q: %w", expr, err)
		}
		p.integer = n
	}
	return p, nil
}

// ParsePredicates parses a list of filter expressions. An empty list
// parses to an empty predicate set, which matches every row.
func ParsePredicates(exprs []string) ([]*Predicate, error) {
	preds := make([]*Predicate, 0, len(exprs))
	for _, expr := range exprs {
		p, err := ParsePredicate(expr)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

// Match reports whether the row satisfies the predicate. A row whose
// attribute cannot be resolved does not match.
func (p *Predicate) Match(r Row, now time.Time) bool {
	got, err := p.spec.get(r, now)
	if err != nil {
		return false
	}

	switch p.Op {
	case OpRegexMatch:
		return p.re.MatchString(got)
	case OpRegexNoMatch:
		return !p.re.MatchString(got)
	}

	cmp := p.compare(got)
	switch p.Op {
	case OpEqual:
		return cmp == 0
	case OpNotEqual:
		return cmp != 0
	case OpGreater:
		return cmp > 0
	case OpLess:
		return cmp < 0
	}
	return false
}

// compare orders the row's attribute value against the literal in the
// field's native domain: decimal for value, date ordering for date,
// integer for rel_months, string otherwise.
func (p *Predicate) compare(got string) int {
	switch p.spec.kind {
	case kindDecimal:
		// got is the exact String() form of the row value, so this
		// round trip is lossless.
		d, err := decimal.NewFromString(got)
		if err != nil {
			return -1
		}
		return d.Cmp(p.decimal)
	case kindDate:
		t, err := time.Parse(DateFormat, got)
		if err != nil {
			return -1
		}
		return t.Compare(p.date)
	case kindInt:
		n, err := strconv.Atoi(got)
		if err != nil {
			return -1
		}
		switch {
		case n < p.integer:
			return -1
		case n > p.integer:
			return 1
		}
		return 0
	}
	return strings.Compare(got, p.Literal)
}
