// Package tzerr defines the sentinel error kinds shared by tzif, posixtz,
// internal/calendar, and tz. Callers compare with errors.Is; wrapped
// context is added with fmt.Errorf at the point of failure.
package tzerr

import "errors"

var (
	// InvalidFile means a TZif byte stream was malformed: bad magic or
	// version, truncated data, non-monotonic tables, out-of-range
	// indices, a designation pool missing its trailing NUL, or a footer
	// inconsistent with the explicit transition table's tail.
	InvalidFile = errors.New("tzif: invalid file")

	// InvalidTZString means a POSIX TZ string failed to parse: syntax
	// error, out-of-range numeric component, a DST segment missing its
	// rule pair, or trailing garbage.
	InvalidTZString = errors.New("posixtz: invalid TZ string")

	// OverflowYear means a timestamp requires a year outside the
	// signed 32-bit range measured from 1900.
	OverflowYear = errors.New("tz: year overflow")

	// Unrepresentable means a civil time cannot be canonicalized
	// without overflowing the year.
	Unrepresentable = errors.New("tz: unrepresentable civil time")
)
