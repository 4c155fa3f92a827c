package schemas

import (
	"encoding/json"
	"strings"
)

// Optional records whether a JSON field was present in a request body and whether it was null.
// It backs partial updates where an omitted field keeps its stored value.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// UnmarshalJSON is only invoked for keys present in the body.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// UnmarshalParam decodes a form value. An empty value clears the field, strings are taken verbatim.
func (o *Optional[T]) UnmarshalParam(param string) error {
	o.Set = true
	if strings.TrimSpace(param) == "" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	if target, ok := any(&o.Value).(*string); ok {
		*target = param
		return nil
	}
	return json.Unmarshal([]byte(param), &o.Value)
}

// Present returns the value and true when the field carries a non-null value.
func (o Optional[T]) Present() (interface{}, bool) {
	return o.Value, o.Set && !o.Null
}

// Cleared reports whether the field was sent as null or as the zero value.
func (o Optional[T]) Cleared() bool {
	if !o.Set {
		return false
	}
	if o.Null {
		return true
	}
	var zero T
	return any(o.Value) == any(zero)
}
