package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-env/duration"
	"github.com/0xalexb/hjarta-env/parser"
)

// datetimeLayouts are the accepted ISO-8601 date-and-time shapes, tried in
// order.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

const dateLayout = "2006-01-02"

// convertVar runs the full conversion pipeline for one field: the
// field-level converter if any, otherwise registered type converters,
// otherwise the built-in dispatch; then the field's validators.
func (s *Schema) convertVar(spec *FieldSpec, v parser.Var) (any, error) {
	value, err := s.dispatch(spec, spec.typ, v)
	if err != nil {
		return nil, err
	}

	for _, validate := range spec.validators {
		if err := validate(value); err != nil {
			return nil, invalidValue(err)
		}
	}

	return value, nil
}

func (s *Schema) dispatch(spec *FieldSpec, t Type, v parser.Var) (any, error) {
	if spec != nil && spec.convert != nil {
		return spec.convert(v)
	}

	return s.dispatchType(t, v)
}

// dispatchType selects a converter for the declared type: registered type
// converters first, then the built-ins. Recursive conversions of composite
// element types re-enter here, so registered converters also apply to
// nested types.
func (s *Schema) dispatchType(t Type, v parser.Var) (any, error) {
	for _, converter := range s.opts.converters {
		if converter.CanConvert(t) {
			return converter.Convert(t, v)
		}
	}

	switch t.kind {
	case KindString:
		return convertString(v)
	case KindBool:
		return convertBool(v)
	case KindInt:
		return convertInt(v)
	case KindFloat:
		return convertFloat(v)
	case KindNone:
		return convertNone(v)
	case KindOptional:
		if v.Unset {
			return nil, nil
		}

		return s.dispatchType(t.elems[0], v)
	case KindUnion:
		return s.convertUnion(t, v)
	case KindLiteral:
		return s.convertLiteral(t, v)
	case KindList:
		return s.convertList(t, v)
	case KindTuple:
		return s.convertTuple(t, v)
	case KindFilePath:
		return s.convertFilePath(v)
	case KindDate:
		return convertDate(v)
	case KindDateTime:
		return convertDateTime(v)
	case KindDuration:
		return convertDuration(v)
	case KindYAML:
		return convertYAML(v)
	default:
		return nil, fmt.Errorf("%w %q for variable %q", ErrNotImplemented, t, v.Name)
	}
}

func convertString(v parser.Var) (any, error) {
	return stringValue(v)
}

// stringValue is the common "must be set" guard shared by every converter
// that needs a raw string.
func stringValue(v parser.Var) (string, error) {
	if v.Unset {
		return "", fmt.Errorf("%w: variable %q was expected to be set", ErrVariableUnset, v.Name)
	}

	return v.Value, nil
}

func convertBool(v parser.Var) (any, error) {
	str, err := stringValue(v)
	if err != nil {
		return nil, err
	}

	switch str {
	case "true", "True":
		return true, nil
	case "false", "False":
		return false, nil
	default:
		return nil, cannotConvert(v, "bool")
	}
}

func convertInt(v parser.Var) (any, error) {
	str, err := stringValue(v)
	if err != nil {
		return nil, err
	}

	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return nil, cannotConvert(v, "int")
	}

	return n, nil
}

func convertFloat(v parser.Var) (any, error) {
	str, err := stringValue(v)
	if err != nil {
		return nil, err
	}

	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return nil, cannotConvert(v, "float")
	}

	return f, nil
}

func convertNone(v parser.Var) (any, error) {
	if !v.Unset {
		return nil, fmt.Errorf("%w: expected variable %q to be unset, not %q", ErrCannotConvert, v.Name, v.Value)
	}

	return nil, nil
}

// convertUnion tries each branch in declared order and returns the first
// success. Branch failures are non-fatal except ErrNotImplemented, which
// marks a schema defect and propagates immediately.
func (s *Schema) convertUnion(t Type, v parser.Var) (any, error) {
	for _, branch := range t.elems {
		value, err := s.dispatchType(branch, v)
		if err == nil {
			return value, nil
		}

		if isNotImplemented(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: expected variable %q to be one of %s, got %q",
		ErrCannotConvert, v.Name, joinTypeNames(t.elems), describeValue(v))
}

// convertLiteral converts the raw value with each option's own type and
// compares for equality, returning the first matching option.
func (s *Schema) convertLiteral(t Type, v parser.Var) (any, error) {
	for _, option := range t.lits {
		value, err := s.dispatchType(option.typ, v)
		if err != nil {
			if isNotImplemented(err) {
				return nil, err
			}

			continue
		}

		if value == option.value {
			return option.value, nil
		}
	}

	return nil, fmt.Errorf("%w: expected variable %q to be one of %s, got %q",
		ErrCannotConvert, v.Name, t, describeValue(v))
}

func (s *Schema) convertList(t Type, v parser.Var) (any, error) {
	elem := t.elems[0]
	if v.Unset {
		return emptyListValue(elem), nil
	}

	items, err := s.convertItems(v, []Type{elem}, true)
	if err != nil {
		return nil, err
	}

	return typedList(elem, items), nil
}

func (s *Schema) convertTuple(t Type, v parser.Var) (any, error) {
	if v.Unset {
		return []any{}, nil
	}

	return s.convertItems(v, t.elems, false)
}

// convertItems splits a raw sequence value and converts the items. With
// repeatElem the single element type applies to every item (lists);
// otherwise the item count must match the declared arity (tuples).
func (s *Schema) convertItems(v parser.Var, elems []Type, repeatElem bool) ([]any, error) {
	raw := v.Value
	if s.opts.trimItems {
		raw = strings.TrimSpace(raw)
	}

	parts := strings.Split(raw, s.opts.separator)
	if s.opts.trimItems {
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
	}

	if !repeatElem {
		if len(parts) < len(elems) {
			return nil, fmt.Errorf("%w: too few items for variable %q: expected %d, got %d",
				ErrInvalidValue, v.Name, len(elems), len(parts))
		}

		if len(parts) > len(elems) {
			return nil, fmt.Errorf("%w: too many items for variable %q: expected %d, got %d",
				ErrInvalidValue, v.Name, len(elems), len(parts))
		}
	}

	values := make([]any, 0, len(parts))

	for i, part := range parts {
		elem := elems[0]
		if !repeatElem {
			elem = elems[i]
		}

		item := parser.Var{Name: v.Name, Value: part}

		value, err := s.dispatchType(elem, item)
		if err != nil {
			return nil, fmt.Errorf("item %d of variable %q: %w", i, v.Name, err)
		}

		values = append(values, value)
	}

	return values, nil
}

func (s *Schema) convertFilePath(v parser.Var) (any, error) {
	str, err := stringValue(v)
	if err != nil {
		return nil, err
	}

	path := filepath.Clean(str)

	if s.opts.filePathResolve {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("%w: resolving path %q: %v", ErrCannotConvert, path, err)
		}

		path = abs
	}

	if s.opts.filePathMustExist {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: expected path %q set by variable %q to exist",
				ErrFilePathNotExist, path, v.Name)
		}
	}

	return path, nil
}

func convertDate(v parser.Var) (any, error) {
	str, err := stringValue(v)
	if err != nil {
		return nil, err
	}

	t, err := time.Parse(dateLayout, str)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse date: %v", ErrCannotParse, err)
	}

	return t, nil
}

func convertDateTime(v parser.Var) (any, error) {
	str, err := stringValue(v)
	if err != nil {
		return nil, err
	}

	var lastErr error

	for _, layout := range datetimeLayouts {
		t, err := time.Parse(layout, str)
		if err == nil {
			return t, nil
		}

		lastErr = err
	}

	return nil, fmt.Errorf("%w: cannot parse datetime: %v", ErrCannotParse, lastErr)
}

func convertDuration(v parser.Var) (any, error) {
	str, err := stringValue(v)
	if err != nil {
		return nil, err
	}

	d, err := duration.Parse(str)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotParse, err)
	}

	return d, nil
}

func convertYAML(v parser.Var) (any, error) {
	str, err := stringValue(v)
	if err != nil {
		return nil, err
	}

	var out any
	if err := yaml.Unmarshal([]byte(str), &out); err != nil {
		return nil, fmt.Errorf("%w: decoding variable %q as yaml: %v", ErrCannotConvert, v.Name, err)
	}

	return out, nil
}

// typedList narrows a converted []any to a typed slice for primitive
// element kinds, matching how callers naturally consume lists.
func typedList(elem Type, items []any) any {
	switch elem.kind {
	case KindString:
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = item.(string)
		}

		return out
	case KindBool:
		out := make([]bool, len(items))
		for i, item := range items {
			out[i] = item.(bool)
		}

		return out
	case KindInt:
		out := make([]int64, len(items))
		for i, item := range items {
			out[i] = item.(int64)
		}

		return out
	case KindFloat:
		out := make([]float64, len(items))
		for i, item := range items {
			out[i] = item.(float64)
		}

		return out
	default:
		return items
	}
}

func emptyListValue(elem Type) any {
	return typedList(elem, nil)
}

func cannotConvert(v parser.Var, typeName string) error {
	return fmt.Errorf("%w: failed to convert variable %s=%q to type %q",
		ErrCannotConvert, v.Name, v.Value, typeName)
}

func invalidValue(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, err)
}

func describeValue(v parser.Var) string {
	if v.Unset {
		return "<unset>"
	}

	return v.Value
}

func isNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}
