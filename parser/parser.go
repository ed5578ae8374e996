package parser

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrCannotParse is returned when the input is not valid dotenv syntax.
var ErrCannotParse = errors.New("cannot parse dotenv")

// Var is one parsed name/value pair. Unset reports that the variable was
// declared without any value (KEY= followed by a line break or end of
// input), which is distinct from an empty string value (KEY="").
type Var struct {
	Name  string
	Value string
	Unset bool
}

type state int

const (
	stateBeforeName state = iota
	stateInUnquotedName
	stateInQuotedName
	stateInQuotedNameEscape
	stateAfterName
	stateBeforeValue
	stateInUnquotedValue
	stateInDoubleQuotedValue
	stateInDoubleQuotedValueEscape
	stateInSingleQuotedValue
	stateInSingleQuotedValueEscape
	stateAfterValue
	stateInComment
)

// Scanner walks dotenv text and yields one Var per assignment, in input
// order. It holds O(1) state beyond the name and value accumulators and is
// safe to discard at any point; a fresh Scanner starts over from the
// beginning of its input.
type Scanner struct {
	input string
	pos   int
	state state
	name  []rune
	value []rune
	cur   Var
	err   error
	done  bool
}

// NewScanner returns a Scanner over the given dotenv text.
func NewScanner(input string) *Scanner {
	return &Scanner{input: input}
}

// Parse tokenizes the entire input and returns all variables in order.
func Parse(input string) ([]Var, error) {
	var vars []Var

	s := NewScanner(input)
	for s.Scan() {
		vars = append(vars, s.Var())
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	return vars, nil
}

// Scan advances to the next variable. It returns false when the input is
// exhausted or a syntax error occurred; Err disambiguates the two.
func (s *Scanner) Scan() bool {
	if s.err != nil || s.done {
		return false
	}

	for s.pos < len(s.input) {
		ch, size := utf8.DecodeRuneInString(s.input[s.pos:])
		s.pos += size

		emitted, err := s.step(ch)
		if err != nil {
			s.err = err

			return false
		}

		if emitted {
			return true
		}
	}

	return s.finish()
}

// Var returns the variable found by the last successful call to Scan.
func (s *Scanner) Var() Var {
	return s.cur
}

// Err returns the first syntax error encountered, or nil if scanning
// stopped because the input was exhausted.
func (s *Scanner) Err() error {
	return s.err
}

// finish applies the end-of-input rules: a pending unquoted or closed value
// is emitted, a pending empty value yields an unset variable, and any other
// unfinished construct is an unterminated name or value.
func (s *Scanner) finish() bool {
	if s.done {
		return false
	}

	s.done = true

	switch s.state {
	case stateInUnquotedValue, stateAfterValue:
		s.emit(false)

		return true
	case stateBeforeValue:
		s.emit(true)

		return true
	case stateBeforeName, stateInComment:
		return false
	default:
		s.err = fmt.Errorf("%w: input ended with unterminated name or value", ErrCannotParse)

		return false
	}
}

// step feeds a single character to the state machine. It reports whether a
// complete Var was emitted.
//
//nolint:gocyclo,cyclop // one branch per parser state; splitting obscures the transition table.
func (s *Scanner) step(ch rune) (bool, error) {
	switch s.state {
	case stateBeforeName:
		return false, s.stepBeforeName(ch)
	case stateInUnquotedName:
		return false, s.stepInUnquotedName(ch)
	case stateInQuotedName:
		switch ch {
		case '\'':
			s.state = stateAfterName
		case '\\':
			s.state = stateInQuotedNameEscape
		default:
			s.name = append(s.name, ch)
		}

		return false, nil
	case stateInQuotedNameEscape:
		if ch != '\'' && ch != '\\' {
			return false, s.failf("invalid escape sequence '\\%c' inside single-quoted name", ch)
		}

		s.name = append(s.name, ch)
		s.state = stateInQuotedName

		return false, nil
	case stateAfterName:
		if ch == '=' {
			s.state = stateBeforeValue

			return false, nil
		}

		if isInlineSpace(ch) {
			return false, nil
		}

		return false, s.failf("invalid non-whitespace character %q after name and before '='", ch)
	case stateBeforeValue:
		return s.stepBeforeValue(ch)
	case stateInUnquotedValue:
		return s.stepInUnquotedValue(ch)
	case stateInDoubleQuotedValue:
		switch ch {
		case '"':
			s.state = stateAfterValue
		case '\\':
			s.state = stateInDoubleQuotedValueEscape
		default:
			s.value = append(s.value, ch)
		}

		return false, nil
	case stateInDoubleQuotedValueEscape:
		unescaped, ok := unescapeDoubleQuoted(ch)
		if !ok {
			return false, s.failf("invalid escape sequence '\\%c' inside double-quoted value", ch)
		}

		s.value = append(s.value, unescaped)
		s.state = stateInDoubleQuotedValue

		return false, nil
	case stateInSingleQuotedValue:
		switch ch {
		case '\'':
			s.state = stateAfterValue
		case '\\':
			s.state = stateInSingleQuotedValueEscape
		default:
			s.value = append(s.value, ch)
		}

		return false, nil
	case stateInSingleQuotedValueEscape:
		if ch != '\'' && ch != '\\' {
			return false, s.failf("invalid escape sequence '\\%c' inside single-quoted value", ch)
		}

		s.value = append(s.value, ch)
		s.state = stateInSingleQuotedValue

		return false, nil
	case stateAfterValue:
		return s.stepAfterValue(ch)
	case stateInComment:
		if isLineBreak(ch) {
			s.state = stateBeforeName
		}

		return false, nil
	default:
		return false, s.failf("unhandled parser state %d", s.state)
	}
}

func (s *Scanner) stepBeforeName(ch rune) error {
	switch {
	case isLineBreak(ch) || isInlineSpace(ch):
		return nil
	case ch == '#':
		s.state = stateInComment

		return nil
	case ch == '\'':
		s.state = stateInQuotedName

		return nil
	case isLetter(ch):
		s.name = append(s.name, ch)
		s.state = stateInUnquotedName

		return nil
	default:
		return s.failf("unquoted variable names may only start with letters (A-Za-z), found %q", ch)
	}
}

func (s *Scanner) stepInUnquotedName(ch rune) error {
	switch {
	case ch == '=':
		s.state = stateBeforeValue

		return nil
	case isInlineSpace(ch):
		s.state = stateAfterName

		return nil
	case ch == '_' || isLetter(ch) || isDigit(ch):
		s.name = append(s.name, ch)

		return nil
	default:
		return s.failf("unquoted variable names may only contain letters, digits and underscores, found %q", ch)
	}
}

func (s *Scanner) stepBeforeValue(ch rune) (bool, error) {
	switch {
	case isLineBreak(ch):
		s.emit(true)

		return true, nil
	case ch == '"':
		s.state = stateInDoubleQuotedValue

		return false, nil
	case ch == '\'':
		s.state = stateInSingleQuotedValue

		return false, nil
	case ch == '#':
		s.emit(false)
		s.state = stateInComment

		return true, nil
	case isInlineSpace(ch):
		// Leading whitespace before the value is trimmed.
		return false, nil
	default:
		s.value = append(s.value, ch)
		s.state = stateInUnquotedValue

		return false, nil
	}
}

func (s *Scanner) stepInUnquotedValue(ch rune) (bool, error) {
	switch {
	case isLineBreak(ch):
		s.emit(false)

		return true, nil
	case isInlineSpace(ch):
		s.state = stateAfterValue

		return false, nil
	default:
		s.value = append(s.value, ch)

		return false, nil
	}
}

func (s *Scanner) stepAfterValue(ch rune) (bool, error) {
	switch {
	case isLineBreak(ch):
		s.emit(false)

		return true, nil
	case ch == '#':
		s.emit(false)
		s.state = stateInComment

		return true, nil
	case isInlineSpace(ch):
		return false, nil
	default:
		return false, s.failf("invalid non-whitespace character %q after value ended", ch)
	}
}

// emit finalizes the pending variable and resets the accumulators. Unless
// the caller moved to another state already, scanning continues before the
// next name.
func (s *Scanner) emit(unset bool) {
	s.cur = Var{
		Name:  string(s.name),
		Value: string(s.value),
		Unset: unset,
	}
	s.name = s.name[:0]
	s.value = s.value[:0]
	s.state = stateBeforeName
}

func (s *Scanner) failf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	return fmt.Errorf("%w: %s (offset %d)", ErrCannotParse, msg, s.pos)
}

func unescapeDoubleQuoted(ch rune) (rune, bool) {
	switch ch {
	case '"':
		return '"', true
	case 'n':
		return '\n', true
	case '\\':
		return '\\', true
	case 't':
		return '\t', true
	case '\'':
		return '\'', true
	case 'r':
		return '\r', true
	case 'v':
		return '\v', true
	case 'f':
		return '\f', true
	case 'b':
		return '\b', true
	case 'a':
		return '\a', true
	default:
		return 0, false
	}
}

func isLineBreak(ch rune) bool {
	return ch == '\n' || ch == '\r' || ch == '\f'
}

func isInlineSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\v'
}

func isLetter(ch rune) bool {
	return ('A' <= ch && ch <= 'Z') || ('a' <= ch && ch <= 'z')
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
