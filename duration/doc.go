// Package duration parses compound duration literals such as "1h 30m" or
// "1w,12h" into a time.Duration.
//
// A literal is a sequence of <number><unit> tokens. Numbers may be negative,
// fractional and carry an exponent ("1.5e2s"). Units are w (weeks), d
// (days), h (hours), m (minutes), s (seconds), ms (milliseconds) and us
// (microseconds, also accepted as µs/μs). Tokens may be separated by spaces,
// tabs and at most one comma, and must appear in strictly decreasing unit
// magnitude with no unit repeated.
//
// This grammar intentionally differs from time.ParseDuration: it supports
// weeks and days, and rejects out-of-order or repeated units.
package duration
