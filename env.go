package env

import (
	"fmt"

	"github.com/0xalexb/hjarta-env/fetcher/file"
	"github.com/0xalexb/hjarta-env/schema"
)

// Fetcher supplies the dotenv text to parse. Implementations decide where
// the text comes from (a file, an in-memory string, ...); the parsing core
// itself performs no I/O.
type Fetcher interface {
	Fetch() (string, error)
}

// StaticFetcher is a Fetcher over an in-memory string. Useful for tests and
// for sources that were already read elsewhere.
type StaticFetcher struct {
	Text string
}

// Fetch returns the static text.
func (f *StaticFetcher) Fetch() (string, error) {
	return f.Text, nil
}

// Provider returns a function that fetches dotenv text and resolves it
// against the schema. The returned function is shaped for use as an Fx
// constructor but works standalone.
func Provider(sch *schema.Schema, fetcher Fetcher) func() (schema.Record, error) {
	return func() (schema.Record, error) {
		text, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading data error: %w", err)
		}

		rec, err := sch.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parsing error: %w", err)
		}

		return rec, nil
	}
}

// Load reads a single .env file and resolves it against the schema.
func Load(path string, sch *schema.Schema) (schema.Record, error) {
	return Provider(sch, file.NewFetcher(path))()
}
