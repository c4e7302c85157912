// Package leadfilter compiles the loosely-typed listing query parameters into
// a structured predicate over leads. Compilation is pure: no I/O, deterministic
// output, and unknown parameters are ignored so new filters can be added
// without breaking old clients.
package leadfilter

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/leads-api/internal/domain"
)

// Filter is the compiled predicate. All conditions are combined with AND, and
// OwnerID is always set: the ownership constraint cannot be overridden by any
// request parameter.
type Filter struct {
	OwnerID     string
	Text        []TextCondition
	Enum        []EnumCondition
	Number      []NumberCondition
	Date        []DateCondition
	IsQualified *bool
}

// TextCondition matches a free-text field: case-insensitive substring by
// default, exact equality when Exact is set.
type TextCondition struct {
	Field string
	Value string
	Exact bool
}

// EnumCondition matches an enumerated field against one or more values
// (membership). Values are passed through uncompiled; an unknown value simply
// matches nothing.
type EnumCondition struct {
	Field  string
	Values []string
}

// NumberCondition constrains a numeric field. At most one "shape" is active
// after compilation: Eq, the open Gt/Lt pair, or the closed Gte/Lte pair.
type NumberCondition struct {
	Field string
	Eq    *decimal.Decimal
	Gt    *decimal.Decimal
	Lt    *decimal.Decimal
	Gte   *decimal.Decimal
	Lte   *decimal.Decimal
}

// DateCondition constrains a timestamp field. All set bounds apply at once.
type DateCondition struct {
	Field string
	Gt    *time.Time
	Gte   *time.Time
	Lt    *time.Time
	Lte   *time.Time
}

var (
	textFields   = []string{"email", "company", "city", "first_name", "last_name", "state"}
	enumFields   = []string{"status", "source"}
	numberFields = []string{"score", "lead_value"}
	dateFields   = []string{"created_at", "last_activity_at"}
)

// Compile turns raw query parameters into a Filter scoped to ownerID.
//
// Precedence per field, later rules overwriting earlier ones unless noted:
//   - text: `<f>` substring, `<f>_exact` exact (wins).
//   - enum: single value equality, repeated values membership.
//   - number: `<f>` equality; `<f>_gt`/`<f>_lt` merge into an open range,
//     dropping equality; `<f>_min` AND `<f>_max` together replace everything
//     with an inclusive range (one of them alone is ignored).
//   - date: `<f>_on` is the half-open calendar day [d, d+1d); `<f>_before` /
//     `<f>_after` set strict bounds over it; `<f>_from` AND `<f>_to` together
//     replace everything with an inclusive range.
//   - is_qualified: the literal strings "true"/"false" only.
//
// Malformed numbers and dates return a *domain.FieldError; everything else
// degrades silently (unknown names ignored, empty values treated as absent).
//
// Calendar-day boundaries (`_on`, date-only values) are interpreted in the
// server's local timezone, not UTC. This mirrors the behavior the data was
// created under; changing it would shift every `_on` window by the UTC offset.
func Compile(params map[string][]string, ownerID string) (Filter, error) {
	f := Filter{}

	for _, field := range textFields {
		if v, ok := first(params, field); ok {
			f.Text = append(f.Text, TextCondition{Field: field, Value: v})
		}
		if v, ok := first(params, field+"_exact"); ok {
			f.Text = dropField(f.Text, field)
			f.Text = append(f.Text, TextCondition{Field: field, Value: v, Exact: true})
		}
	}

	for _, field := range enumFields {
		if vs := nonEmpty(params[field]); len(vs) > 0 {
			f.Enum = append(f.Enum, EnumCondition{Field: field, Values: vs})
		}
	}

	for _, field := range numberFields {
		cond := NumberCondition{Field: field}
		active := false
		if v, ok := first(params, field); ok {
			n, err := parseNumber(field, v)
			if err != nil {
				return Filter{}, err
			}
			cond.Eq = n
			active = true
		}
		if v, ok := first(params, field+"_gt"); ok {
			n, err := parseNumber(field+"_gt", v)
			if err != nil {
				return Filter{}, err
			}
			cond.Eq, cond.Gt = nil, n
			active = true
		}
		if v, ok := first(params, field+"_lt"); ok {
			n, err := parseNumber(field+"_lt", v)
			if err != nil {
				return Filter{}, err
			}
			cond.Eq, cond.Lt = nil, n
			active = true
		}
		vMin, okMin := first(params, field+"_min")
		vMax, okMax := first(params, field+"_max")
		if okMin && okMax {
			lo, err := parseNumber(field+"_min", vMin)
			if err != nil {
				return Filter{}, err
			}
			hi, err := parseNumber(field+"_max", vMax)
			if err != nil {
				return Filter{}, err
			}
			cond = NumberCondition{Field: field, Gte: lo, Lte: hi}
			active = true
		}
		if active {
			f.Number = append(f.Number, cond)
		}
	}

	for _, field := range dateFields {
		cond := DateCondition{Field: field}
		active := false
		if v, ok := first(params, field+"_on"); ok {
			t, err := parseDate(field+"_on", v)
			if err != nil {
				return Filter{}, err
			}
			next := t.AddDate(0, 0, 1)
			cond.Gte, cond.Lt = &t, &next
			active = true
		}
		if v, ok := first(params, field+"_before"); ok {
			t, err := parseDate(field+"_before", v)
			if err != nil {
				return Filter{}, err
			}
			cond.Lt = &t
			active = true
		}
		if v, ok := first(params, field+"_after"); ok {
			t, err := parseDate(field+"_after", v)
			if err != nil {
				return Filter{}, err
			}
			cond.Gt = &t
			active = true
		}
		vFrom, okFrom := first(params, field+"_from")
		vTo, okTo := first(params, field+"_to")
		if okFrom && okTo {
			from, err := parseDate(field+"_from", vFrom)
			if err != nil {
				return Filter{}, err
			}
			to, err := parseDate(field+"_to", vTo)
			if err != nil {
				return Filter{}, err
			}
			cond = DateCondition{Field: field, Gte: &from, Lte: &to}
			active = true
		}
		if active {
			f.Date = append(f.Date, cond)
		}
	}

	// Only the exact literals count; "TRUE", "1" or garbage leave the field unconstrained.
	if v, ok := first(params, "is_qualified"); ok {
		switch v {
		case "true":
			b := true
			f.IsQualified = &b
		case "false":
			b := false
			f.IsQualified = &b
		}
	}

	// Applied last and unconditionally: no parameter can widen visibility.
	f.OwnerID = ownerID
	return f, nil
}

// first returns the first non-empty value for key.
func first(params map[string][]string, key string) (string, bool) {
	for _, v := range params[key] {
		if v != "" {
			return v, true
		}
	}
	return "", false
}

func nonEmpty(vs []string) []string {
	var out []string
	for _, v := range vs {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func dropField(conds []TextCondition, field string) []TextCondition {
	out := conds[:0]
	for _, c := range conds {
		if c.Field != field {
			out = append(out, c)
		}
	}
	return out
}

func parseNumber(param, raw string) (*decimal.Decimal, error) {
	n, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.NewFieldError(param, "must be a number")
	}
	return &n, nil
}

// dateOnly is the calendar-day format; interpreted in the server's local zone.
const dateOnly = "2006-01-02"

func parseDate(param, raw string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateOnly, raw, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, domain.NewFieldError(param, "must be a date (YYYY-MM-DD or RFC 3339)")
}
