package criteria

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// Filter is a row predicate that renders to SQL text with named placeholders
// and to the matching parameter set. The set of implementations is closed:
// EqualsFilter, LessThanFilter, AndFilter and OrFilter.
//
// Predicate and Parameters always agree on parameter names, so consumers
// must use them together.
type Filter interface {
	// Predicate returns the condition text, e.g. `"user_id" = :3f1c...`.
	Predicate() string
	// Parameters returns the values for every placeholder in Predicate,
	// keyed by placeholder name without the leading colon.
	Parameters() map[string]any

	filter()
}

// EqualsFilter matches rows whose column equals a value.
type EqualsFilter struct {
	column string
	value  any
	key    string
}

// Equals builds an EqualsFilter. The placeholder name is derived from the
// column and the printed value, so equal inputs always bind to the same name.
func Equals(column string, value any) EqualsFilter {
	return EqualsFilter{column: column, value: value, key: parameterKey(column, value)}
}

func (f EqualsFilter) Column() string { return f.column }
func (f EqualsFilter) Value() any     { return f.value }
func (f EqualsFilter) Key() string    { return f.key }

func (f EqualsFilter) Predicate() string {
	return fmt.Sprintf(`"%s" = :%s`, f.column, f.key)
}

func (f EqualsFilter) Parameters() map[string]any {
	return map[string]any{f.key: f.value}
}

func (EqualsFilter) filter() {}

// LessThanFilter matches rows whose column is strictly below a value.
type LessThanFilter struct {
	column string
	value  any
	key    string
}

// LessThan builds a LessThanFilter. Its placeholder name never collides with
// an Equals filter over the same column and value.
func LessThan(column string, value any) LessThanFilter {
	return LessThanFilter{column: column, value: value, key: parameterKey("<"+column, value)}
}

func (f LessThanFilter) Column() string { return f.column }
func (f LessThanFilter) Value() any     { return f.value }
func (f LessThanFilter) Key() string    { return f.key }

func (f LessThanFilter) Predicate() string {
	return fmt.Sprintf(`"%s" < :%s`, f.column, f.key)
}

func (f LessThanFilter) Parameters() map[string]any {
	return map[string]any{f.key: f.value}
}

func (LessThanFilter) filter() {}

// AndFilter is the conjunction of two or more filters.
type AndFilter struct {
	filters []Filter
}

// And joins filters with AND, rendering them in the order given.
func And(first, second Filter, rest ...Filter) AndFilter {
	return AndFilter{filters: compose(first, second, rest)}
}

func (f AndFilter) Filters() []Filter { return append([]Filter(nil), f.filters...) }

func (f AndFilter) Predicate() string { return join(f.filters, "AND") }

func (f AndFilter) Parameters() map[string]any { return merge(f.filters) }

func (AndFilter) filter() {}

// OrFilter is the disjunction of two or more filters.
type OrFilter struct {
	filters []Filter
}

// Or joins filters with OR, rendering them in the order given.
func Or(first, second Filter, rest ...Filter) OrFilter {
	return OrFilter{filters: compose(first, second, rest)}
}

func (f OrFilter) Filters() []Filter { return append([]Filter(nil), f.filters...) }

func (f OrFilter) Predicate() string { return join(f.filters, "OR") }

func (f OrFilter) Parameters() map[string]any { return merge(f.filters) }

func (OrFilter) filter() {}

// parameterKey is md5(column + value) in hex. Only determinism matters here.
func parameterKey(column string, value any) string {
	sum := md5.Sum([]byte(column + fmt.Sprint(value)))
	return hex.EncodeToString(sum[:])
}

func compose(first, second Filter, rest []Filter) []Filter {
	filters := make([]Filter, 0, 2+len(rest))
	filters = append(filters, first, second)
	return append(filters, rest...)
}

func join(filters []Filter, op string) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, f.Predicate())
	}
	return "(" + strings.Join(parts, ") "+op+" (") + ")"
}

func merge(filters []Filter) map[string]any {
	out := make(map[string]any)
	for _, f := range filters {
		for k, v := range f.Parameters() {
			out[k] = v
		}
	}
	return out
}
