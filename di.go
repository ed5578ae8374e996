package env

import (
	"errors"
	"fmt"

	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-env/schema"
)

// ErrEmptyName is returned when the module name is empty.
var ErrEmptyName = errors.New("module name must not be empty")

// ErrNilSchema is returned when a nil schema is provided.
var ErrNilSchema = errors.New("schema must not be nil")

// ErrNilFetcher is returned when a nil fetcher is provided.
var ErrNilFetcher = errors.New("fetcher must not be nil")

// NewModule creates an Fx module that supplies the resolved schema.Record
// under the given name's DI tag. Call multiple times with different names
// and schemas to load several dotenv sources side by side:
//
//	fx.New(
//	    env.NewModule("app", appSchema, file.NewFetcher(".env")),
//	    fx.Invoke(fx.Annotate(run, fx.ParamTags(`name:"app"`))),
//	)
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, sch *schema.Schema, fetcher Fetcher) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	if sch == nil {
		return fx.Error(ErrNilSchema)
	}

	if fetcher == nil {
		return fx.Error(ErrNilFetcher)
	}

	return fx.Module(name, fx.Provide(
		fx.Annotate(
			Provider(sch, fetcher),
			fx.ResultTags(fmt.Sprintf(`name:%q`, name)),
		),
	))
}
