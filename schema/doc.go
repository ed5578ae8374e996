// Package schema resolves parsed dotenv variables against a declared set of
// typed fields.
//
// A schema is declared as an explicit list of field specifications, each
// carrying a declared type built from the closed set of type constructors:
//
//	fields := []schema.FieldSpec{
//	    schema.Field("host", schema.String()).Default("localhost"),
//	    schema.Field("port", schema.Int()),
//	    schema.Field("mode", schema.Literals("dev", "prod")),
//	    schema.Field("timeout", schema.Optional(schema.Duration())),
//	    schema.Field("tags", schema.List(schema.String())),
//	}
//
//	sch, err := schema.New(fields, schema.AllowIncomplete())
//	rec, err := sch.Parse("PORT=8080\nMODE=dev\nTAGS=a,b\nTIMEOUT=\n")
//
// Resolution matches each variable to its field by name under the schema's
// case policy, converts the raw string with the field's declared type,
// applies defaults for absent variables and fails on unknown, duplicate or
// missing variables according to policy. Conversion is a dispatch over the
// type's tag: a field-level converter wins over converters registered with
// WithTypeConverter, which win over the built-ins.
//
// All failures wrap one of the package's sentinel errors and are checkable
// with errors.Is.
package schema
