// Package query implements the small PostgREST-style filter grammar the
// admin dashboard speaks: field=eq.VALUE, field=neq.VALUE, limit, offset
// and select=count. Values are parsed once at the HTTP boundary into a
// typed Query; nothing downstream re-parses raw query strings.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Op is a filter operator. Only equality and exclusion exist.
type Op int

const (
	OpEq Op = iota
	OpNeq
)

// Filter is one typed filter expression.
type Filter struct {
	Field string
	Op    Op
	Value string
}

// Query is the parsed form of a filter query string.
type Query struct {
	Filters   []Filter
	Limit     int
	Offset    int
	CountOnly bool
}

const (
	// DefaultLimit applies to feedback and email listings.
	DefaultLimit = 50
	// DefaultContentLimit applies to content listings.
	DefaultContentLimit = 100
)

// reserved query keys that are not field filters. "order" is accepted but
// ignored: the store always returns newest-first.
var reserved = map[string]bool{
	"limit":  true,
	"offset": true,
	"select": true,
	"order":  true,
}

// ParseValues interprets url.Values as a Query. It never fails: malformed
// numerics fall back to the defaults and unrecognized constructs become
// plain eq filters which the store is free to ignore.
func ParseValues(values url.Values, defaultLimit int) Query {
	q := Query{Limit: defaultLimit}

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		val := vals[0]
		switch key {
		case "limit":
			q.Limit = parseInt(val, defaultLimit)
		case "offset":
			q.Offset = parseInt(val, 0)
		case "select":
			if strings.EqualFold(val, "count") {
				q.CountOnly = true
			}
		case "order":
			// accepted, no effect
		default:
			q.Filters = append(q.Filters, parseFilter(key, val))
		}
	}
	return q
}

// parseFilter maps "eq.V" / "neq.V" / bare "V" onto a typed filter. A bare
// value is an exact match.
func parseFilter(field, raw string) Filter {
	switch {
	case strings.HasPrefix(raw, "eq."):
		return Filter{Field: field, Op: OpEq, Value: raw[len("eq."):]}
	case strings.HasPrefix(raw, "neq."):
		return Filter{Field: field, Op: OpNeq, Value: raw[len("neq."):]}
	default:
		return Filter{Field: field, Op: OpEq, Value: raw}
	}
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// Eq builds an equality filter. Handlers use this to construct queries
// directly instead of formatting query strings.
func Eq(field, value string) Filter { return Filter{Field: field, Op: OpEq, Value: value} }

// Neq builds an exclusion filter.
func Neq(field, value string) Filter { return Filter{Field: field, Op: OpNeq, Value: value} }

// Get returns the first filter on the given field.
func (q Query) Get(field string) (Filter, bool) {
	for _, f := range q.Filters {
		if f.Field == field {
			return f, true
		}
	}
	return Filter{}, false
}

// Has reports whether any filter targets the given field.
func (q Query) Has(field string) bool {
	_, ok := q.Get(field)
	return ok
}

// With returns a copy of q with an extra filter appended.
func (q Query) With(f Filter) Query {
	filters := make([]Filter, 0, len(q.Filters)+1)
	filters = append(filters, q.Filters...)
	filters = append(filters, f)
	q.Filters = filters
	return q
}

// Match applies the filter to a stored field value. Booleans are compared
// against their strconv form ("true"/"false").
func (f Filter) Match(value string) bool {
	if f.Op == OpNeq {
		return value != f.Value
	}
	return value == f.Value
}
