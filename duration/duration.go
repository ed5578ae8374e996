package duration

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// ErrCannotParse is returned when the input is not a valid compound
// duration literal.
var ErrCannotParse = errors.New("cannot parse duration")

// units, largest magnitude first. The rank is the index; tokens must use
// strictly increasing indices so that magnitudes strictly decrease.
var units = []struct {
	symbol string
	dur    time.Duration
}{
	{"w", 7 * 24 * time.Hour},
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
	{"ms", time.Millisecond},
	{"us", time.Microsecond},
}

// Parse parses a compound duration literal like "1h 30m" or "2d,6h".
func Parse(input string) (time.Duration, error) {
	p := &parser{input: input}

	return p.parse()
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parse() (time.Duration, error) {
	var total time.Duration

	prevRank := -1
	sawToken := false

	for {
		sawSeparator, err := p.skipSeparators(sawToken)
		if err != nil {
			return 0, err
		}

		if p.pos >= len(p.input) {
			if sawSeparator {
				return 0, p.failf("dangling separator at end of input")
			}

			break
		}

		number, err := p.scanNumber()
		if err != nil {
			return 0, err
		}

		rank, unitDur, err := p.scanUnit(prevRank)
		if err != nil {
			return 0, err
		}

		prevRank = rank
		sawToken = true
		total += time.Duration(number * float64(unitDur))
	}

	if !sawToken {
		return 0, p.failf("empty input")
	}

	return total, nil
}

// skipSeparators consumes whitespace and at most one comma between tokens.
// A comma is only legal after a complete token.
func (p *parser) skipSeparators(afterToken bool) (bool, error) {
	sawComma := false

	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t':
			p.pos++
		case ',':
			if !afterToken {
				return false, p.failf("separator ',' before any duration component")
			}

			if sawComma {
				return false, p.failf("repeated separator ','")
			}

			sawComma = true
			p.pos++
		default:
			return sawComma, nil
		}
	}

	return sawComma, nil
}

// scanNumber consumes -?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)? and returns its
// value.
func (p *parser) scanNumber() (float64, error) {
	start := p.pos

	if p.pos < len(p.input) && p.input[p.pos] == '-' {
		p.pos++
	}

	p.scanDigits()

	if p.pos < len(p.input) && p.input[p.pos] == '.' {
		p.pos++
		p.scanDigits()
	}

	if p.pos < len(p.input) && (p.input[p.pos] == 'e' || p.input[p.pos] == 'E') {
		p.pos++

		if p.pos < len(p.input) && (p.input[p.pos] == '-' || p.input[p.pos] == '+') {
			p.pos++
		}

		if !p.scanDigits() {
			return 0, p.failf("exponent without digits in number %q", p.input[start:p.pos])
		}
	}

	text := p.input[start:p.pos]
	if text == "" || text == "-" {
		return 0, p.failf("expected a number, found %q", p.rest())
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, p.failf("invalid number %q", text)
	}

	return value, nil
}

func (p *parser) scanDigits() bool {
	start := p.pos
	for p.pos < len(p.input) && '0' <= p.input[p.pos] && p.input[p.pos] <= '9' {
		p.pos++
	}

	return p.pos > start
}

// scanUnit consumes a unit symbol and enforces the strictly-decreasing
// magnitude rule against the previous token's rank.
func (p *parser) scanUnit(prevRank int) (int, time.Duration, error) {
	start := p.pos
	for p.pos < len(p.input) && isUnitRune(p.input[p.pos:]) {
		_, size := utf8.DecodeRuneInString(p.input[p.pos:])
		p.pos += size
	}

	symbol := p.input[start:p.pos]
	if symbol == "" {
		return 0, 0, p.failf("dangling number without a unit")
	}

	// µ (U+00B5) and μ (U+03BC) are both accepted for microseconds.
	if symbol == "µs" || symbol == "μs" {
		symbol = "us"
	}

	for rank, unit := range units {
		if unit.symbol != symbol {
			continue
		}

		switch {
		case rank == prevRank:
			return 0, 0, p.failf("unit %q appears more than once", symbol)
		case rank < prevRank:
			return 0, 0, p.failf("unit %q out of order: units must strictly decrease in magnitude", symbol)
		}

		return rank, unit.dur, nil
	}

	return 0, 0, p.failf("unknown unit %q", symbol)
}

func isUnitRune(s string) bool {
	ch, _ := utf8.DecodeRuneInString(s)

	return ('a' <= ch && ch <= 'z') || ch == 'µ' || ch == 'μ'
}

func (p *parser) rest() string {
	return p.input[p.pos:]
}

func (p *parser) failf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	return fmt.Errorf("%w: %s", ErrCannotParse, msg)
}
