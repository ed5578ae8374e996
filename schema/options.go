package schema

import (
	"log/slog"

	"github.com/0xalexb/hjarta-env/logging"
	"github.com/0xalexb/hjarta-env/parser"
)

// Case controls how dotenv variable names are derived from field names and
// matched against the input.
type Case string

const (
	// CaseUpper derives upper-cased variable names (field "db_host" matches
	// DB_HOST). This is the default.
	CaseUpper Case = "upper"
	// CaseLower derives lower-cased variable names.
	CaseLower Case = "lower"
	// CasePreserve uses field names as-is.
	CasePreserve Case = "preserve"
	// CaseIgnore matches variable names case-insensitively.
	CaseIgnore Case = "ignore"
)

// DefaultSeparator splits list and tuple values.
const DefaultSeparator = ","

// TypeConverter converts values of declared types the built-ins do not
// handle, or overrides built-in handling. Converters registered with
// WithTypeConverter are consulted in registration order before the built-in
// dispatch, after any field-level converter.
type TypeConverter interface {
	// CanConvert reports whether this converter handles the declared type.
	CanConvert(t Type) bool
	// Convert converts the raw variable to a value of the declared type.
	Convert(t Type, v parser.Var) (any, error)
}

// Option configures a Schema at compile time.
type Option func(*options)

type options struct {
	caseMode          Case
	allowIncomplete   bool
	allowDuplicates   bool
	separator         string
	trimItems         bool
	filePathResolve   bool
	filePathMustExist bool
	converters        []TypeConverter
	logger            *slog.Logger
}

func defaultOptions() options {
	return options{
		caseMode:          CaseUpper,
		separator:         DefaultSeparator,
		trimItems:         true,
		filePathResolve:   true,
		filePathMustExist: true,
		logger:            logging.Nop(),
	}
}

// WithCase sets the case policy for deriving and matching variable names.
func WithCase(c Case) Option {
	return func(o *options) {
		o.caseMode = c
	}
}

// AllowIncomplete tolerates variables in the input that no field declares;
// they are skipped instead of failing with ErrVariableNotSpecified.
func AllowIncomplete() Option {
	return func(o *options) {
		o.allowIncomplete = true
	}
}

// AllowDuplicates switches duplicate variables from an error to
// last-write-wins: a repeated variable overwrites the previously resolved
// value. Without this option a duplicate fails with ErrVariableDuplicate.
func AllowDuplicates() Option {
	return func(o *options) {
		o.allowDuplicates = true
	}
}

// WithSeparator sets the string that splits list and tuple values.
func WithSeparator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// WithTrimItems controls whether list and tuple items are trimmed of
// surrounding whitespace before element conversion. Enabled by default.
func WithTrimItems(trim bool) Option {
	return func(o *options) {
		o.trimItems = trim
	}
}

// WithFilePathResolve controls whether file path values are resolved to
// absolute paths. Enabled by default.
func WithFilePathResolve(resolve bool) Option {
	return func(o *options) {
		o.filePathResolve = resolve
	}
}

// WithFilePathMustExist controls whether file path values must exist on the
// filesystem. Enabled by default.
func WithFilePathMustExist(mustExist bool) Option {
	return func(o *options) {
		o.filePathMustExist = mustExist
	}
}

// WithTypeConverter registers a converter consulted before the built-in
// dispatch. Converters are tried in registration order; the first whose
// CanConvert returns true wins.
func WithTypeConverter(c TypeConverter) Option {
	return func(o *options) {
		o.converters = append(o.converters, c)
	}
}

// WithLogger sets the logger used for resolution debug messages (defaults
// applied, unknown variables skipped). Logging is off by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// ConvertType builds a TypeConverter for one declared type from a plain
// conversion function and optional validators, typically paired with a
// Custom type:
//
//	port := schema.Custom("system_port")
//	sch, err := schema.New(fields,
//	    schema.WithTypeConverter(schema.ConvertType(port, convertPort, validatePort)),
//	)
func ConvertType(t Type, convert ConvertFunc, validators ...ValidateFunc) TypeConverter {
	return &typeConverter{typ: t, convert: convert, validators: validators}
}

type typeConverter struct {
	typ        Type
	convert    ConvertFunc
	validators []ValidateFunc
}

func (c *typeConverter) CanConvert(t Type) bool {
	return c.typ.Equal(t)
}

func (c *typeConverter) Convert(_ Type, v parser.Var) (any, error) {
	value, err := c.convert(v)
	if err != nil {
		return nil, err
	}

	for _, validate := range c.validators {
		if err := validate(value); err != nil {
			return nil, invalidValue(err)
		}
	}

	return value, nil
}
