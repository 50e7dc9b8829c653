package cvcue

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Combinator is the logical joiner applied across the terms of a filter
// expression. It is fixed when the builder is constructed.
type Combinator string

const (
	// CombineAnd requires every predicate to match.
	CombineAnd Combinator = "AND"

	// CombineOr requires at least one predicate to match.
	CombineOr Combinator = "OR"
)

// operatorTokens maps human-friendly operator names to the wire-level tokens
// the CV-CUE API expects inside a filter object.
var operatorTokens = map[string]string{
	"equals":            "=",
	"not_equals":        "!=",
	"greater_than":      ">",
	"less_than":         "<",
	"greater_or_equals": ">=",
	"less_or_equals":    "<=",
	"contains":          "contains",
	"in":                "in",
}

// OperatorNames returns the valid operator names in sorted order.
func OperatorNames() []string {
	names := make([]string, 0, len(operatorTokens))
	for name := range operatorTokens {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Filter is a single property/operator/value predicate. Value is always a
// list on the wire, even for a single scalar.
type Filter struct {
	Property string        `json:"property"`
	Operator string        `json:"operator"`
	Value    []interface{} `json:"value"`
}

// NewFilter builds a Filter from a human-friendly operator name and a scalar
// or slice value. Unknown operator names fail with *InvalidFilterError.
func NewFilter(property, operator string, value interface{}) (Filter, error) {
	token, ok := operatorTokens[operator]
	if !ok {
		return Filter{}, &InvalidFilterError{
			Message: fmt.Sprintf("unknown operator %q, valid operators: %s",
				operator, strings.Join(OperatorNames(), ", ")),
		}
	}

	return Filter{
		Property: property,
		Operator: token,
		Value:    normalizeValue(value),
	}, nil
}

// normalizeValue wraps a scalar into a single-element list and passes slices
// through unchanged. Scalars keep their type, no coercion.
func normalizeValue(value interface{}) []interface{} {
	switch v := value.(type) {
	case []interface{}:
		return v
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}

		return out
	case []int:
		out := make([]interface{}, len(v))
		for i, n := range v {
			out[i] = n
		}

		return out
	default:
		return []interface{}{value}
	}
}

// FilterBuilder composes filter predicates under a single combinator and
// serializes them to the URL-encoded JSON array the API expects. Methods
// chain; the first error is remembered and surfaced by Build.
type FilterBuilder struct {
	combinator Combinator
	terms      []Filter
	err        error
}

// NewFilterBuilder creates a builder whose combinator is fixed for its
// lifetime.
func NewFilterBuilder(combinator Combinator) *FilterBuilder {
	return &FilterBuilder{combinator: combinator}
}

// Add appends a predicate built from a named operator.
func (b *FilterBuilder) Add(property, operator string, value interface{}) *FilterBuilder {
	if b.err != nil {
		return b
	}

	filter, err := NewFilter(property, operator, value)
	if err != nil {
		b.err = err

		return b
	}

	b.terms = append(b.terms, filter)

	return b
}

// Equals adds an equality predicate.
func (b *FilterBuilder) Equals(property string, value interface{}) *FilterBuilder {
	return b.Add(property, "equals", value)
}

// NotEquals adds an inequality predicate.
func (b *FilterBuilder) NotEquals(property string, value interface{}) *FilterBuilder {
	return b.Add(property, "not_equals", value)
}

// Contains adds a substring predicate.
func (b *FilterBuilder) Contains(property string, value interface{}) *FilterBuilder {
	return b.Add(property, "contains", value)
}

// GreaterThan adds a greater-than predicate.
func (b *FilterBuilder) GreaterThan(property string, value interface{}) *FilterBuilder {
	return b.Add(property, "greater_than", value)
}

// LessThan adds a less-than predicate.
func (b *FilterBuilder) LessThan(property string, value interface{}) *FilterBuilder {
	return b.Add(property, "less_than", value)
}

// In adds a set-membership predicate.
func (b *FilterBuilder) In(property string, values ...interface{}) *FilterBuilder {
	return b.Add(property, "in", values)
}

// Combinator returns the combinator fixed at construction.
func (b *FilterBuilder) Combinator() Combinator {
	return b.combinator
}

// Len returns the number of terms added so far.
func (b *FilterBuilder) Len() int {
	return len(b.terms)
}

// encode serializes the terms to a JSON array in insertion order.
func (b *FilterBuilder) encode() (string, error) {
	if b.err != nil {
		return "", b.err
	}

	if len(b.terms) == 0 {
		return "", &InvalidFilterError{Message: "empty filter expression, add at least one predicate"}
	}

	data, err := json.Marshal(b.terms)
	if err != nil {
		return "", fmt.Errorf("serializing filter terms: %w", err)
	}

	return string(data), nil
}

// Build serializes the expression and percent-encodes it for inclusion as a
// single query-string value.
func (b *FilterBuilder) Build() (string, error) {
	encoded, err := b.encode()
	if err != nil {
		return "", err
	}

	return url.QueryEscape(encoded), nil
}

// ToValues returns the filter as query parameters: the JSON array under
// "filter" and the combinator under the sibling "combineOperation" key.
// Values are unescaped; url.Values.Encode handles percent-encoding.
func (b *FilterBuilder) ToValues() (url.Values, error) {
	encoded, err := b.encode()
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("filter", encoded)
	values.Set("combineOperation", string(b.combinator))

	return values, nil
}
