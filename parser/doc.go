// Package parser tokenizes text in the .env file format into a sequence of
// name/value pairs.
//
// The parser is a single-pass, character-at-a-time state machine with no
// backtracking. It distinguishes a variable that was declared with an empty
// value (KEY="") from one that was declared with no value at all (KEY=
// followed by a line break); the latter is reported as unset.
//
// Supported syntax:
//   - NAME=value assignments, one per line
//   - unquoted names starting with a letter, continuing with letters,
//     digits and underscores
//   - single-quoted names ('weird name'=value)
//   - unquoted, single-quoted and double-quoted values
//   - backslash escapes inside quoted values (full C-style escape table in
//     double quotes, only \' and \\ in single quotes)
//   - comments introduced by # outside of quotes
//
// Usage:
//
//	s := parser.NewScanner("HOST=localhost\nPORT=8080\n")
//	for s.Scan() {
//	    v := s.Var()
//	    // v.Name, v.Value, v.Unset
//	}
//	if err := s.Err(); err != nil {
//	    // Handle error: use errors.Is(err, parser.ErrCannotParse).
//	}
package parser
