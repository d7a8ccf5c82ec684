// Package calendar implements the proleptic-Gregorian civil time arithmetic
// that underlies tz's forward and inverse conversions: UTC timestamp <->
// (year, month, day, hour, minute, second, weekday, yearday).
//
// The day-counting core is the same absolute-zero-year decomposition used
// by the stdlib time package: split years into 400/100/4/1-year
// blocks, each block a fixed day count under the Gregorian leap rule. Unlike
// the C implementation this module is ported from, Go's int64 arithmetic
// does not need the 2001-epoch, Monday-anchored micro-optimization the spec
// describes for bounding intermediate values — the absolute-zero-year
// decomposition is correct over the same (and a far larger) range without
// it, so that is what Normalize/ToTimestamp/FromTimestamp use.
package calendar

import "github.com/nvigier/tzengine/tzerr"

// Civil is a broken-down civil date and time, full (unbiased) year,
// 1-based month and day. The tz package biases Year by -1900 and Month by
// -1 when it fills a public Civil record, to match the struct-tm-style
// field semantics in the spec's data model.
type Civil struct {
	Year           int64
	Month          int // 1..12
	Day            int // 1..31
	Hour, Min, Sec int
	Weekday        int // 0=Sunday .. 6=Saturday
	YDay           int // 0-based day of year
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour

	daysPer400Years = 365*400 + 97
	daysPer100Years = 365*100 + 24
	daysPer4Years   = 365*4 + 1

	// absoluteZeroYear anchors the 400-year block decomposition far enough
	// in the past that (year - absoluteZeroYear) is always a nonnegative
	// multiple-friendly quantity for every year this package is asked to
	// handle. Copied from the stdlib time package's internal epoch.
	absoluteZeroYear = -292277022399

	unixEpochYear = 1970
)

// yearSpan bounds the representable year range: spec 4.A defines
// OverflowYear as a year outside signed-32-bit range measured from 1900.
const yearSpan = int64(1)<<31 - 70 // INT32_MAX+1-70, per spec 4.A

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysBeforeMonthCommon = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
var daysBeforeMonthLeap = [13]int{0, 0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335}

func daysBeforeMonth(year int64, month int) int {
	if IsLeapYear(year) {
		return daysBeforeMonthLeap[month]
	}
	return daysBeforeMonthCommon[month]
}

// DaysInMonth returns the number of days in month (1..12) of year.
func DaysInMonth(year int64, month int) int {
	var next int
	if month == 12 {
		if IsLeapYear(year) {
			next = 366
		} else {
			next = 365
		}
	} else {
		next = daysBeforeMonth(year, month+1)
	}
	return next - daysBeforeMonth(year, month)
}

// daysSinceAbsoluteZero returns the number of days from the absolute zero
// year to the start of year, accounting for the Gregorian leap pattern.
func daysSinceAbsoluteZero(year int64) int64 {
	y := uint64(year - absoluteZeroYear)

	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	d += 365 * y

	return int64(d)
}

var daysToUnixEpoch = daysSinceAbsoluteZero(unixEpochYear)

// yearFromDays inverts daysSinceAbsoluteZero: given a day count measured
// from the absolute zero year, returns the year it falls in and the
// 0-based day-of-year remainder.
func yearFromDays(absDays int64) (year int64, yday int) {
	d := uint64(absDays)

	n := d / daysPer400Years
	d -= n * daysPer400Years
	y := 400 * n

	// At most three century blocks peeled by division; a quotient of four
	// (only on the 400-year block's final leap day) is clamped to three,
	// since a fourth would land back on a 400-year boundary, which the
	// preceding step already consumed.
	n = d / daysPer100Years
	if n == 4 {
		n = 3
	}
	d -= n * daysPer100Years
	y += 100 * n

	n = d / daysPer4Years
	d -= n * daysPer4Years
	y += 4 * n

	n = d / 365
	if n == 4 {
		n = 3
	}
	d -= n * 365
	y += n

	return int64(y) + absoluteZeroYear, int(d)
}

// YMDToDays returns the number of days from 1970-01-01 to the given civil
// date (month 1..12, day 1..31, both may be out of their nominal range;
// callers normalize via Normalize first if canonical mday/mon are needed).
func YMDToDays(year int64, month, day int) int64 {
	// Fold an out-of-range month into the year before computing
	// daysBeforeMonth, so callers passing month<1 or month>12 (canonicalize's
	// carry) still get a correct absolute day count.
	year, month = normalizeMonth(year, month)
	absDays := daysSinceAbsoluteZero(year) + int64(daysBeforeMonth(year, month)) + int64(day-1)
	return absDays - daysToUnixEpoch
}

func normalizeMonth(year int64, month int) (int64, int) {
	// month is 1-based; shift to 0-based for the floor-division carry.
	m := month - 1
	y := year + floorDiv(int64(m), 12)
	m = int(floorMod(int64(m), 12))
	return y, m + 1
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// DaysToYMD inverts YMDToDays: given a day count since 1970-01-01, returns
// the civil date, 0-based weekday (0=Sunday), and 0-based yearday.
func DaysToYMD(days int64) (year int64, month, day, weekday, yday int) {
	absDays := days + daysToUnixEpoch
	year, yd := yearFromDays(absDays)

	month = 1
	for month < 12 && yd >= daysBeforeMonth(year, month+1) {
		month++
	}
	day = yd - daysBeforeMonth(year, month) + 1

	// 1970-01-01 (days=0) was a Thursday (weekday index 4, Sunday=0).
	weekday = int(floorMod(days+4, 7))

	return year, month, day, weekday, yd
}

// ToTimestamp converts a civil date/time to a Unix timestamp (seconds
// since 1970-01-01T00:00:00 UTC), ignoring leap seconds. Fields may be
// out of their nominal range (e.g. Sec=65, Day=32); the carry is folded
// into the day count before applying Hour/Min/Sec, so this implements
// the "canonicalize as a side effect of conversion" behaviour 4.A and
// 4.G rely on.
func ToTimestamp(c Civil) (int64, error) {
	days := YMDToDays(c.Year, c.Month, c.Day)
	secs := int64(c.Hour)*secondsPerHour + int64(c.Min)*secondsPerMinute + int64(c.Sec)
	extraDays := floorDiv(secs, secondsPerDay)
	secs = floorMod(secs, secondsPerDay)
	totalDays := days + extraDays

	ts := totalDays*secondsPerDay + secs

	year, _, _, _, _ := DaysToYMD(totalDays)
	if year > yearSpan+1900 || year < 1900-yearSpan {
		return 0, tzerr.OverflowYear
	}
	return ts, nil
}

// FromTimestamp converts a Unix timestamp to its UTC civil fields
// (weekday, yearday included), ignoring leap seconds — callers needing
// leap-second adjustment apply it to ts before calling this, per 4.F.
func FromTimestamp(ts int64) (Civil, error) {
	days := floorDiv(ts, secondsPerDay)
	secOfDay := floorMod(ts, secondsPerDay)

	year, month, day, weekday, yday := DaysToYMD(days)
	if year > yearSpan+1900 || year < 1900-yearSpan {
		return Civil{}, tzerr.OverflowYear
	}

	return Civil{
		Year:    year,
		Month:   month,
		Day:     day,
		Hour:    int(secOfDay / secondsPerHour),
		Min:     int((secOfDay / secondsPerMinute) % 60),
		Sec:     int(secOfDay % secondsPerMinute),
		Weekday: weekday,
		YDay:    yday,
	}, nil
}

// Normalize folds out-of-range Sec/Min/Hour/Day/Month into Year/Month/Day,
// recomputing Weekday and YDay, and returns the normalized value. It is
// the Go encoding of 4.A's canonicalize: it never fails on overflowing
// low-order fields, only when the resulting year does not fit.
func Normalize(c Civil) (Civil, error) {
	ts, err := ToTimestamp(c)
	if err != nil {
		return Civil{}, err
	}
	return FromTimestamp(ts)
}
