// Package validation evaluates ordered (field, predicate, message) rules
// against a decoded request body. Predicates are go-playground/validator
// tags applied to a single string value.
package validation

import (
	"github.com/go-playground/validator/v10"
)

// Rule checks one field of a body of type T.
type Rule[T any] struct {
	Field    string          // Field is the key reported in the error map
	Value    func(T) *string // Value extracts the field; nil means absent
	Optional bool            // Optional rules are skipped for absent fields
	Tag      string          // Tag is a validator tag such as "min=1" or "email"
	Message  string          // Message is reported when Tag fails
}

// RuleSet is a named, ordered list of rules for one body type. Name
// identifies the set in logs.
type RuleSet[T any] struct {
	Name  string
	Rules []Rule[T]
}

// Check runs every rule in order and returns the message of the first
// failing rule per field. A nil map means the body is valid.
//
// Absent required fields are checked as the empty string.
func (s RuleSet[T]) Check(v *validator.Validate, body T) map[string]string {
	var failed map[string]string
	for _, r := range s.Rules {
		if _, done := failed[r.Field]; done {
			continue
		}

		value := r.Value(body)
		if value == nil && r.Optional {
			continue
		}

		var str string
		if value != nil {
			str = *value
		}

		if err := v.Var(str, r.Tag); err != nil {
			if failed == nil {
				failed = make(map[string]string)
			}
			failed[r.Field] = r.Message
		}
	}
	return failed
}
