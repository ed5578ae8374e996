package schema

import "errors"

// ErrCannotParse is returned when a domain value (date, datetime, duration)
// does not match its grammar.
var ErrCannotParse = errors.New("cannot parse value")

// ErrVariableUnset is returned when a variable was declared without a value
// but its declared type requires one.
var ErrVariableUnset = errors.New("variable unset")

// ErrVariableNotSpecified is returned when the input contains a variable no
// field declares. Suppressed by AllowIncomplete.
var ErrVariableNotSpecified = errors.New("variable not specified")

// ErrVariableMissing is returned when required fields received no value and
// declare no default.
var ErrVariableMissing = errors.New("variable missing")

// ErrVariableDuplicate is returned when a variable appears more than once in
// the input. Suppressed by AllowDuplicates.
var ErrVariableDuplicate = errors.New("variable duplicate")

// ErrCannotConvert is returned when a raw value cannot be converted to the
// field's declared type.
var ErrCannotConvert = errors.New("cannot convert to type")

// ErrInvalidValue is returned when a converted value is rejected by a
// field validator, or when a sequence value has the wrong number of items.
var ErrInvalidValue = errors.New("invalid value")

// ErrFilePathNotExist is returned when a file path value points to a path
// that does not exist and the schema requires existence.
var ErrFilePathNotExist = errors.New("file path does not exist")

// ErrNotImplemented is returned when no converter, built-in or registered,
// handles a declared type. It indicates a schema configuration defect and is
// never swallowed by union or literal branch dispatch.
var ErrNotImplemented = errors.New("no conversion implemented for type")

// ErrInvalidSchema is returned by New when the field specifications
// themselves are inconsistent.
var ErrInvalidSchema = errors.New("invalid schema")
