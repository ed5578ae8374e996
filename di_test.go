package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	env "github.com/0xalexb/hjarta-env"
	"github.com/0xalexb/hjarta-env/schema"
)

func TestNewModule(t *testing.T) {
	t.Parallel()

	var got schema.Record

	app := fxtest.New(t,
		env.NewModule("app", appSchema(t), &env.StaticFetcher{
			Text: "HOST=localhost\nDEBUG=true\n",
		}),
		fx.Invoke(fx.Annotate(
			func(rec schema.Record) {
				got = rec
			},
			fx.ParamTags(`name:"app"`),
		)),
	)
	app.RequireStart().RequireStop()

	assert.Equal(t, "localhost", got["host"])
	assert.Equal(t, int64(8080), got["port"])
	assert.Equal(t, true, got["debug"])
}

func TestNewModule_TwoSources(t *testing.T) {
	t.Parallel()

	dbSchema, err := schema.New([]schema.FieldSpec{
		schema.Field("dsn", schema.String()),
	})
	require.NoError(t, err)

	var app, db schema.Record

	fxApp := fxtest.New(t,
		env.NewModule("app", appSchema(t), &env.StaticFetcher{
			Text: "HOST=localhost\nDEBUG=false\n",
		}),
		env.NewModule("db", dbSchema, &env.StaticFetcher{
			Text: "DSN=postgres://localhost/app\n",
		}),
		fx.Invoke(fx.Annotate(
			func(appRec, dbRec schema.Record) {
				app, db = appRec, dbRec
			},
			fx.ParamTags(`name:"app"`, `name:"db"`),
		)),
	)
	fxApp.RequireStart().RequireStop()

	assert.Equal(t, "localhost", app["host"])
	assert.Equal(t, "postgres://localhost/app", db["dsn"])
}

func TestNewModule_InvalidArguments(t *testing.T) {
	t.Parallel()

	sch := appSchema(t)
	fetcher := &env.StaticFetcher{}

	testCases := []struct {
		name    string
		option  fx.Option
		wantErr error
	}{
		{"empty name", env.NewModule("", sch, fetcher), env.ErrEmptyName},
		{"nil schema", env.NewModule("app", nil, fetcher), env.ErrNilSchema},
		{"nil fetcher", env.NewModule("app", sch, nil), env.ErrNilFetcher},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := fx.New(tc.option, fx.NopLogger)

			err := app.Err()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
