// Package schema validates decoded configuration documents.
//
// The validator walks a document against a declarative schema and
// accumulates every violation as data instead of stopping at the first
// failure. Violations carry the location of the offending value as a
// dotted path with array indices (e.g., "actions[2].key").
package schema

import (
	"fmt"
	"regexp"
	"sync"
)

// Type is a schema value type.
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	// TypeAny accepts any value; used for elements validated elsewhere.
	TypeAny Type = "any"
)

// Schema describes the expected shape of a value.
type Schema struct {
	// Type is the expected value type.
	Type Type

	// Required lists object properties that must be present.
	Required []string

	// Properties are the known object properties.
	Properties map[string]*Schema

	// AdditionalProperties permits object properties not listed in
	// Properties. Unknown properties are violations when false.
	AdditionalProperties bool

	// PropertyNames constrains the names of all object properties.
	PropertyNames *Schema

	// ValueSchema constrains every property value of a map-like object
	// (one whose property names are data, not a fixed set).
	ValueSchema *Schema

	// Items is the schema for every array element.
	Items *Schema

	// Pattern is a regular expression string values must match in full.
	Pattern string

	// Enum lists the allowed string values.
	Enum []string

	// MinLength is the minimum string length.
	MinLength int

	// Minimum and Maximum bound numeric values; nil bounds are open.
	Minimum *float64
	Maximum *float64

	// OneOf accepts a value matching at least one alternative. When set,
	// the other fields are ignored.
	OneOf []*Schema
}

// patternCache caches compiled patterns across validations.
var patternCache sync.Map // pattern string -> *regexp.Regexp

func compiledPattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid schema pattern %q: %w", pattern, err)
	}
	patternCache.Store(pattern, re)
	return re, nil
}

// Float64 returns a pointer to v, for bounds literals.
func Float64(v float64) *float64 { return &v }
