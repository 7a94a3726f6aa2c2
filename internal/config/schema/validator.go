package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Validate walks value against the schema and returns every violation
// found. A nil schema accepts anything.
func (s *Schema) Validate(value any) []Violation {
	vs := &Violations{}
	s.validate("", value, vs)
	return vs.List()
}

// ValidateInto walks value against the schema, recording violations at
// locations prefixed with root.
func (s *Schema) ValidateInto(root string, value any, vs *Violations) {
	s.validate(root, value, vs)
}

func (s *Schema) validate(loc string, value any, vs *Violations) {
	if s == nil {
		return
	}

	if len(s.OneOf) > 0 {
		for _, alt := range s.OneOf {
			probe := &Violations{}
			alt.validate(loc, value, probe)
			if !probe.HasViolations() {
				return
			}
		}
		vs.Add(loc, "value does not match any allowed form")
		return
	}

	switch s.Type {
	case TypeAny:
		return
	case TypeObject:
		s.validateObject(loc, value, vs)
	case TypeArray:
		s.validateArray(loc, value, vs)
	case TypeString:
		s.validateString(loc, value, vs)
	case TypeInteger, TypeNumber:
		s.validateNumber(loc, value, vs)
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			vs.Addf(loc, "expected boolean, got %s", typeName(value))
		}
	default:
		vs.Addf(loc, "unsupported schema type %q", s.Type)
	}
}

func (s *Schema) validateObject(loc string, value any, vs *Violations) {
	obj, ok := value.(map[string]any)
	if !ok {
		vs.Addf(loc, "expected object, got %s", typeName(value))
		return
	}

	for _, req := range s.Required {
		if _, present := obj[req]; !present {
			vs.Addf(join(loc, req), "required property %q is missing", req)
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		child := join(loc, k)

		if s.PropertyNames != nil {
			probe := &Violations{}
			s.PropertyNames.validate(child, k, probe)
			if probe.HasViolations() {
				vs.Addf(child, "invalid property name %q", k)
			}
		}

		if s.ValueSchema != nil {
			s.ValueSchema.validate(child, obj[k], vs)
			continue
		}

		prop, known := s.Properties[k]
		if !known {
			if !s.AdditionalProperties && s.Properties != nil {
				vs.Addf(child, "unknown property %q", k)
			}
			continue
		}
		prop.validate(child, obj[k], vs)
	}
}

func (s *Schema) validateArray(loc string, value any, vs *Violations) {
	arr, ok := value.([]any)
	if !ok {
		vs.Addf(loc, "expected array, got %s", typeName(value))
		return
	}
	if s.Items == nil {
		return
	}
	for i, elem := range arr {
		s.Items.validate(fmt.Sprintf("%s[%d]", loc, i), elem, vs)
	}
}

func (s *Schema) validateString(loc string, value any, vs *Violations) {
	str, ok := value.(string)
	if !ok {
		vs.Addf(loc, "expected string, got %s", typeName(value))
		return
	}
	if len(str) < s.MinLength {
		vs.Addf(loc, "string is shorter than %d characters", s.MinLength)
	}
	if len(s.Enum) > 0 {
		found := false
		for _, allowed := range s.Enum {
			if str == allowed {
				found = true
				break
			}
		}
		if !found {
			vs.Addf(loc, "value %q is not one of [%s]", str, strings.Join(s.Enum, ", "))
		}
	}
	if s.Pattern != "" {
		re, err := compiledPattern(s.Pattern)
		if err != nil {
			vs.Add(loc, err.Error())
			return
		}
		if !re.MatchString(str) {
			vs.Addf(loc, "value %q does not match pattern %q", str, s.Pattern)
		}
	}
}

func (s *Schema) validateNumber(loc string, value any, vs *Violations) {
	num, ok := toFloat(value)
	if !ok {
		vs.Addf(loc, "expected %s, got %s", s.Type, typeName(value))
		return
	}
	if s.Type == TypeInteger && num != math.Trunc(num) {
		vs.Addf(loc, "expected integer, got %v", value)
		return
	}
	if s.Minimum != nil && num < *s.Minimum {
		vs.Addf(loc, "value %v is below minimum %v", value, *s.Minimum)
	}
	if s.Maximum != nil && num > *s.Maximum {
		vs.Addf(loc, "value %v is above maximum %v", value, *s.Maximum)
	}
}

// toFloat converts the numeric types produced by JSON and TOML decoding.
func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, uint64:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func join(loc, key string) string {
	if loc == "" {
		return key
	}
	return loc + "." + key
}
