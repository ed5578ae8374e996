// Package env parses text in the .env file format into a strongly-typed
// configuration record.
//
// The library is split into two layers that this package ties together: the
// parser subpackage tokenizes dotenv text into name/value pairs, and the
// schema subpackage resolves those pairs against a declared set of typed
// fields, converting and validating each value.
//
// Typical use:
//
//	fields := []schema.FieldSpec{
//	    schema.Field("host", schema.String()).Default("localhost"),
//	    schema.Field("port", schema.Int()),
//	}
//
//	sch, err := schema.New(fields)
//	rec, err := env.Load(".env", sch)
//	port, err := schema.As[int64](rec, "port")
//
// Applications built on Fx can instead install the module returned by
// NewModule, which supplies the resolved record to the DI container under a
// named tag.
package env
