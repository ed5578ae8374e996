package schema

import "fmt"

// Record is the resolved configuration: one converted value per field,
// keyed by field name.
type Record map[string]any

// Value returns the raw converted value for a field.
func (r Record) Value(field string) (any, bool) {
	v, ok := r[field]

	return v, ok
}

// As returns the value of a field as a concrete type:
//
//	port, err := schema.As[int64](rec, "port")
//
// It fails when the field does not exist in the record or when the
// converted value is not of type T. Optional fields resolved to nil do not
// assert to any concrete type; check Value for nil first.
func As[T any](r Record, field string) (T, error) {
	var zero T

	v, ok := r[field]
	if !ok {
		return zero, fmt.Errorf("record has no field %q", field)
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("field %q holds %T, not %T", field, v, zero)
	}

	return typed, nil
}
