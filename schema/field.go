package schema

import "github.com/0xalexb/hjarta-env/parser"

// ConvertFunc converts a raw variable into a typed value. It is attached to
// a single field with FieldSpec.Convert and takes precedence over every
// other converter for that field.
type ConvertFunc func(parser.Var) (any, error)

// ValidateFunc checks a converted value. A non-nil error is surfaced as
// ErrInvalidValue with the error's message kept verbatim.
type ValidateFunc func(value any) error

// FieldSpec describes one target record field: its name, the dotenv
// variable it is resolved from, its declared type, an optional default and
// optional field-level converter and validators.
//
// Builder methods return an updated copy, so specs can be composed before
// the schema is compiled:
//
//	schema.Field("port", schema.Int()).
//	    Retarget("SERVER_PORT").
//	    Validate(func(v any) error { ... })
type FieldSpec struct {
	fieldName    string
	varName      string // Explicit retarget; empty means derive from fieldName.
	typ          Type
	def          any
	hasDefault   bool
	convert      ConvertFunc
	convertCount int
	validators   []ValidateFunc
	ignoreCase   bool
}

// Field declares a record field with the given name and declared type. The
// dotenv variable name is derived from the field name by the schema's case
// policy unless Retarget overrides it.
func Field(name string, typ Type) FieldSpec {
	return FieldSpec{fieldName: name, typ: typ}
}

// Default sets the value used when the variable is absent from the input.
// The default is taken as-is; it is not converted or validated.
func (f FieldSpec) Default(value any) FieldSpec {
	f.def = value
	f.hasDefault = true

	return f
}

// Retarget resolves the field from the given dotenv variable name instead
// of the name derived from the field name. The old name is no longer
// recognized.
func (f FieldSpec) Retarget(varName string) FieldSpec {
	f.varName = varName

	return f
}

// IgnoreCase matches this field's variable name case-insensitively even
// when the schema's case policy is case-sensitive. Fields under a
// case-sensitive policy are looked up first, so an exact match on another
// field is never masked by a case-insensitive one.
func (f FieldSpec) IgnoreCase() FieldSpec {
	f.ignoreCase = true

	return f
}

// Validate appends a validator run against the converted value. Validators
// run in registration order after conversion.
func (f FieldSpec) Validate(fn ValidateFunc) FieldSpec {
	f.validators = append(f.validators[:len(f.validators):len(f.validators)], fn)

	return f
}

// Convert sets a field-level converter, bypassing registered type
// converters and built-ins. At most one converter may be set; a second call
// fails schema compilation.
func (f FieldSpec) Convert(fn ConvertFunc) FieldSpec {
	f.convert = fn
	f.convertCount++

	return f
}

// Name returns the target field name.
func (f FieldSpec) Name() string { return f.fieldName }

// Type returns the declared type.
func (f FieldSpec) Type() Type { return f.typ }
