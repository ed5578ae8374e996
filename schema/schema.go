package schema

import (
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-env/parser"
)

// Schema is a compiled set of field specifications plus resolution policy.
// Compile once with New; a Schema is immutable afterwards and safe for
// concurrent use, with each Resolve or Parse call carrying its own state.
type Schema struct {
	fields []FieldSpec
	opts   options

	// Lookup spaces are kept separate so that a case-sensitive name can
	// never be masked by a case-insensitive one.
	sensitive   map[string]int
	insensitive map[string]int
}

// New compiles field specifications into a Schema.
func New(fields []FieldSpec, opts ...Option) (*Schema, error) {
	s := &Schema{
		fields:      fields,
		opts:        defaultOptions(),
		sensitive:   make(map[string]int),
		insensitive: make(map[string]int),
	}

	for _, apply := range opts {
		apply(&s.opts)
	}

	seenFields := make(map[string]struct{}, len(fields))

	for i := range s.fields {
		spec := &s.fields[i]

		if spec.fieldName == "" {
			return nil, fmt.Errorf("%w: field with empty name", ErrInvalidSchema)
		}

		if _, ok := seenFields[spec.fieldName]; ok {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, spec.fieldName)
		}

		seenFields[spec.fieldName] = struct{}{}

		if spec.convertCount > 1 {
			return nil, fmt.Errorf("%w: field %q has more than one converter", ErrInvalidSchema, spec.fieldName)
		}

		if spec.convert == nil {
			if err := spec.typ.validate(); err != nil {
				return nil, fmt.Errorf("field %q: %w", spec.fieldName, err)
			}
		}

		if err := s.index(i, spec); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// index registers the spec's external name in the lookup space selected by
// the case policy.
func (s *Schema) index(i int, spec *FieldSpec) error {
	name := spec.varName
	if name == "" {
		name = transformCase(s.opts.caseMode, spec.fieldName)
	}

	spec.varName = name

	if s.opts.caseMode == CaseIgnore || spec.ignoreCase {
		key := strings.ToLower(name)
		if _, ok := s.insensitive[key]; ok {
			return fmt.Errorf("%w: duplicate variable name %q (case-insensitive)", ErrInvalidSchema, name)
		}

		s.insensitive[key] = i

		return nil
	}

	if _, ok := s.sensitive[name]; ok {
		return fmt.Errorf("%w: duplicate variable name %q", ErrInvalidSchema, name)
	}

	s.sensitive[name] = i

	return nil
}

// lookup finds the spec index for a variable name: exact case-sensitive
// match first, then the case-insensitive space.
func (s *Schema) lookup(name string) (int, bool) {
	if i, ok := s.sensitive[name]; ok {
		return i, true
	}

	if i, ok := s.insensitive[strings.ToLower(name)]; ok {
		return i, true
	}

	return 0, false
}

// Fields returns the compiled field specifications in declaration order.
func (s *Schema) Fields() []FieldSpec {
	return s.fields
}

// Parse tokenizes dotenv text and resolves it against the schema in a
// single pass.
func (s *Schema) Parse(input string) (Record, error) {
	state := s.newResolveState()

	scanner := parser.NewScanner(input)
	for scanner.Scan() {
		if err := state.consume(scanner.Var()); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return state.finish()
}

// Resolve matches already-parsed variables against the schema and returns
// the typed record.
func (s *Schema) Resolve(vars []parser.Var) (Record, error) {
	state := s.newResolveState()

	for _, v := range vars {
		if err := state.consume(v); err != nil {
			return nil, err
		}
	}

	return state.finish()
}

// resolveState is the per-call bookkeeping: which specs already received a
// value, and the values accumulated so far.
type resolveState struct {
	schema   *Schema
	resolved []bool
	values   Record
}

func (s *Schema) newResolveState() *resolveState {
	return &resolveState{
		schema:   s,
		resolved: make([]bool, len(s.fields)),
		values:   make(Record, len(s.fields)),
	}
}

func (r *resolveState) consume(v parser.Var) error {
	s := r.schema

	i, ok := s.lookup(v.Name)
	if !ok {
		if s.opts.allowIncomplete {
			s.opts.logger.Debug("skipping variable without a field", "variable", v.Name)

			return nil
		}

		return fmt.Errorf("%w: no field for variable %q", ErrVariableNotSpecified, v.Name)
	}

	spec := &s.fields[i]

	if r.resolved[i] && !s.opts.allowDuplicates {
		return fmt.Errorf("%w: variable %q appears more than once", ErrVariableDuplicate, v.Name)
	}

	value, err := s.convertVar(spec, v)
	if err != nil {
		return err
	}

	r.resolved[i] = true
	r.values[spec.fieldName] = value

	return nil
}

// finish applies defaults and aggregates missing fields.
func (r *resolveState) finish() (Record, error) {
	s := r.schema

	var missingFields, missingVars []string

	for i := range s.fields {
		if r.resolved[i] {
			continue
		}

		spec := &s.fields[i]

		if spec.hasDefault {
			r.values[spec.fieldName] = spec.def
			r.resolved[i] = true

			s.opts.logger.Debug("default applied", "field", spec.fieldName, "variable", spec.varName)

			continue
		}

		missingFields = append(missingFields, spec.fieldName)
		missingVars = append(missingVars, spec.varName)
	}

	if len(missingFields) > 0 {
		return nil, fmt.Errorf("%w: fields %s have no values: variables %s are not set in the dotenv",
			ErrVariableMissing, quoteJoin(missingFields), quoteJoin(missingVars))
	}

	return r.values, nil
}

func transformCase(mode Case, name string) string {
	switch mode {
	case CaseLower, CaseIgnore:
		return strings.ToLower(name)
	case CasePreserve:
		return name
	case CaseUpper:
		return strings.ToUpper(name)
	default:
		return strings.ToUpper(name)
	}
}

func quoteJoin(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, fmt.Sprintf("%q", name))
	}

	return strings.Join(quoted, ", ")
}
