package schema

import (
	"fmt"
	"strings"
)

// Kind is the tag of a declared type. The set of kinds is closed; custom
// behavior is added by registering a TypeConverter for a Custom type, not by
// extending the tag set.
type Kind int

const (
	// KindInvalid is the zero Kind. A field with an invalid type fails
	// schema compilation.
	KindInvalid Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
	KindNone
	KindOptional
	KindUnion
	KindLiteral
	KindList
	KindTuple
	KindFilePath
	KindDate
	KindDateTime
	KindDuration
	KindYAML
	KindCustom
)

// Type describes how a raw dotenv string is validated and converted.
// Construct values with the constructor functions (String, Optional, ...);
// the zero Type is invalid.
type Type struct {
	kind  Kind
	elems []Type          // Optional/Union/List/Tuple element types.
	lits  []literalOption // Literal options.
	name  string          // Custom type name.
}

type literalOption struct {
	value any
	typ   Type
}

// String declares a plain string value. An unset variable is an error.
func String() Type { return Type{kind: KindString} }

// Bool declares a boolean accepting exactly "true", "True", "false" and
// "False".
func Bool() Type { return Type{kind: KindBool} }

// Int declares an integer; values convert to int64.
func Int() Type { return Type{kind: KindInt} }

// Float declares a floating point number; values convert to float64.
func Float() Type { return Type{kind: KindFloat} }

// None declares that the variable must be unset; the converted value is nil.
// Even an empty string value is rejected.
func None() Type { return Type{kind: KindNone} }

// Optional declares a value that may be unset. Unset converts to nil,
// anything else converts with the inner type.
func Optional(inner Type) Type {
	return Type{kind: KindOptional, elems: []Type{inner}}
}

// Union declares a value matching any of the given types, tried in declared
// order; the first successful conversion wins.
func Union(options ...Type) Type {
	return Type{kind: KindUnion, elems: options}
}

// Literals declares a fixed set of allowed values. Options may be string,
// bool, int, int64 or float64; each raw value is converted with the option's
// own type and compared for equality.
func Literals(options ...any) Type {
	t := Type{kind: KindLiteral}
	for _, option := range options {
		t.lits = append(t.lits, literalOption{
			value: normalizeLiteral(option),
			typ:   literalType(option),
		})
	}

	return t
}

// List declares a separated list of values of a single element type. An
// unset variable converts to an empty list.
func List(elem Type) Type {
	return Type{kind: KindList, elems: []Type{elem}}
}

// Tuple declares a separated sequence with a fixed arity, converted
// position-wise. An unset variable converts to an empty tuple.
func Tuple(elems ...Type) Type {
	return Type{kind: KindTuple, elems: elems}
}

// FilePath declares a filesystem path. Resolution to an absolute path and
// the existence requirement are controlled by WithFilePathResolve and
// WithFilePathMustExist.
func FilePath() Type { return Type{kind: KindFilePath} }

// Date declares an ISO-8601 calendar date (2006-01-02); values convert to
// time.Time.
func Date() Type { return Type{kind: KindDate} }

// DateTime declares an ISO-8601 date and time; values convert to time.Time.
func DateTime() Type { return Type{kind: KindDateTime} }

// Duration declares a compound duration literal ("1h 30m"); values convert
// to time.Duration.
func Duration() Type { return Type{kind: KindDuration} }

// YAML declares a structured value embedded in a single variable, decoded
// with goccy/go-yaml into maps, slices and scalars.
func YAML() Type { return Type{kind: KindYAML} }

// Custom declares a named type with no built-in conversion. A TypeConverter
// registered with WithTypeConverter must handle it; otherwise conversion
// fails with ErrNotImplemented.
func Custom(name string) Type { return Type{kind: KindCustom, name: name} }

// Kind returns the type's tag.
func (t Type) Kind() Kind { return t.kind }

// Elems returns the element types of a composite type (optional inner type,
// union branches, list element, tuple positions).
func (t Type) Elems() []Type { return t.elems }

// Equal reports whether two declared types are structurally identical.
func (t Type) Equal(other Type) bool {
	if t.kind != other.kind || t.name != other.name {
		return false
	}

	if len(t.elems) != len(other.elems) || len(t.lits) != len(other.lits) {
		return false
	}

	for i, elem := range t.elems {
		if !elem.Equal(other.elems[i]) {
			return false
		}
	}

	for i, lit := range t.lits {
		if lit.value != other.lits[i].value || !lit.typ.Equal(other.lits[i].typ) {
			return false
		}
	}

	return true
}

// String returns a human-readable name for the type, used in error
// messages.
func (t Type) String() string {
	switch t.kind {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindNone:
		return "none"
	case KindOptional:
		return "optional(" + joinTypeNames(t.elems) + ")"
	case KindUnion:
		return "union(" + joinTypeNames(t.elems) + ")"
	case KindLiteral:
		names := make([]string, 0, len(t.lits))
		for _, lit := range t.lits {
			names = append(names, fmt.Sprintf("%v", lit.value))
		}

		return "literal(" + strings.Join(names, ", ") + ")"
	case KindList:
		return "list(" + joinTypeNames(t.elems) + ")"
	case KindTuple:
		return "tuple(" + joinTypeNames(t.elems) + ")"
	case KindFilePath:
		return "filepath"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	case KindDuration:
		return "duration"
	case KindYAML:
		return "yaml"
	case KindCustom:
		return t.name
	default:
		return "invalid"
	}
}

// validate checks structural rules at schema compile time.
func (t Type) validate() error {
	switch t.kind {
	case KindOptional:
		if len(t.elems) != 1 {
			return fmt.Errorf("%w: optional requires exactly one inner type", ErrInvalidSchema)
		}
	case KindUnion:
		if len(t.elems) == 0 {
			return fmt.Errorf("%w: union requires at least one option", ErrInvalidSchema)
		}
	case KindLiteral:
		if len(t.lits) == 0 {
			return fmt.Errorf("%w: literal requires at least one option", ErrInvalidSchema)
		}

		for _, lit := range t.lits {
			if lit.typ.kind == KindInvalid {
				return fmt.Errorf("%w: unsupported literal option %v (%T)", ErrInvalidSchema, lit.value, lit.value)
			}
		}
	case KindList:
		if len(t.elems) != 1 {
			return fmt.Errorf("%w: list requires exactly one element type", ErrInvalidSchema)
		}
	case KindTuple:
		if len(t.elems) == 0 {
			return fmt.Errorf("%w: tuple requires at least one element type", ErrInvalidSchema)
		}
	case KindCustom:
		if t.name == "" {
			return fmt.Errorf("%w: custom type requires a name", ErrInvalidSchema)
		}
	case KindInvalid:
		return fmt.Errorf("%w: field has no declared type", ErrInvalidSchema)
	default:
	}

	for _, elem := range t.elems {
		if err := elem.validate(); err != nil {
			return err
		}
	}

	return nil
}

func joinTypeNames(types []Type) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}

	return strings.Join(names, ", ")
}

// literalType derives the declared type of a literal option from its Go
// value; unsupported option values map to the invalid type and are rejected
// at schema compile time.
func literalType(v any) Type {
	switch v.(type) {
	case string:
		return String()
	case bool:
		return Bool()
	case int, int64:
		return Int()
	case float64:
		return Float()
	case nil:
		return None()
	default:
		return Type{}
	}
}

// normalizeLiteral widens int options to int64 so that equality against
// converted values holds.
func normalizeLiteral(v any) any {
	if i, ok := v.(int); ok {
		return int64(i)
	}

	return v
}
