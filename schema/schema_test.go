package schema

import (
	"testing"

	"github.com/0xalexb/hjarta-env/parser"
)

func TestTransformCase(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		mode Case
		in   string
		want string
	}{
		{CaseUpper, "db_host", "DB_HOST"},
		{CaseLower, "DB_Host", "db_host"},
		{CasePreserve, "Db_Host", "Db_Host"},
		{CaseIgnore, "Db_Host", "db_host"},
	}

	for _, tc := range testCases {
		tc := tc
		got := transformCase(tc.mode, tc.in)
		if got != tc.want {
			t.Errorf("transformCase(%q, %q) = %q, want %q", tc.mode, tc.in, got, tc.want)
		}
	}
}

func TestNew_RejectsDuplicateFieldNames(t *testing.T) {
	t.Parallel()

	_, err := New([]FieldSpec{
		Field("port", Int()),
		Field("port", String()),
	})

	if err == nil {
		t.Fatal("expected error for duplicate field names")
	}
}

func TestNew_RejectsDuplicateVariableNames(t *testing.T) {
	t.Parallel()

	// Distinct field names that derive the same upper-cased variable name.
	_, err := New([]FieldSpec{
		Field("db_host", String()),
		Field("DB_HOST", String()),
	})

	if err == nil {
		t.Fatal("expected error for colliding variable names")
	}
}

func TestNew_RejectsInvalidTypes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		typ  Type
	}{
		{"zero type", Type{}},
		{"empty union", Union()},
		{"empty literal", Literals()},
		{"unsupported literal option", Literals(struct{}{})},
		{"empty tuple", Tuple()},
		{"unnamed custom", Custom("")},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := New([]FieldSpec{Field("f", tc.typ)})
			if err == nil {
				t.Fatal("expected schema compile error")
			}
		})
	}
}

func TestNew_RejectsDoubleConvert(t *testing.T) {
	t.Parallel()

	identity := func(v parser.Var) (any, error) { return v.Value, nil }

	_, err := New([]FieldSpec{
		Field("f", String()).Convert(identity).Convert(identity),
	})

	if err == nil {
		t.Fatal("expected error for a second field converter")
	}
}

func TestLookup_SensitiveBeforeInsensitive(t *testing.T) {
	t.Parallel()

	s, err := New([]FieldSpec{
		Field("api_key", String()),                                  // sensitive: API_KEY
		Field("other", String()).IgnoreCase(),                       // insensitive: other
		Field("api_key2", String()).Retarget("KEY_2").IgnoreCase(), // insensitive: key_2
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	i, ok := s.lookup("API_KEY")
	if !ok || s.fields[i].fieldName != "api_key" {
		t.Errorf("exact lookup failed: ok=%v idx=%d", ok, i)
	}

	i, ok = s.lookup("OTHER")
	if !ok || s.fields[i].fieldName != "other" {
		t.Errorf("insensitive lookup failed: ok=%v idx=%d", ok, i)
	}

	if _, ok := s.lookup("api_key"); ok {
		t.Error("case-sensitive name must not match through the insensitive space")
	}

	if _, ok := s.lookup("kEy_2"); !ok {
		t.Error("insensitive retargeted name should match any casing")
	}
}

func TestTypeString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		typ  Type
		want string
	}{
		{String(), "string"},
		{Optional(Int()), "optional(int)"},
		{Union(Int(), String()), "union(int, string)"},
		{Literals("foo", 42), "literal(foo, 42)"},
		{List(Bool()), "list(bool)"},
		{Tuple(Float(), Float()), "tuple(float, float)"},
		{Custom("system_port"), "system_port"},
		{Duration(), "duration"},
	}

	for _, tc := range testCases {
		tc := tc
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestTypeEqual(t *testing.T) {
	t.Parallel()

	if !Union(Int(), String()).Equal(Union(Int(), String())) {
		t.Error("identical unions should be equal")
	}

	if Union(Int(), String()).Equal(Union(String(), Int())) {
		t.Error("branch order is significant")
	}

	if !Literals("a", 1).Equal(Literals("a", 1)) {
		t.Error("identical literals should be equal")
	}

	if Custom("a").Equal(Custom("b")) {
		t.Error("custom types with different names must differ")
	}
}
