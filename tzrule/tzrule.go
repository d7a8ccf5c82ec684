// Package tzrule materialises a parsed POSIX TZ rule pair (posixtz.TZ) into
// a compact table that resolves the active offset for any timestamp — far
// in the future or past — without recomputing the rule's date arithmetic
// each time.
//
// The spec describes this as a flat 28-entry array addressed by bit tricks
// on a cyclic 400-year table (§3, §4.C design note 9). Design note 9 itself
// invites a first-class representation instead of replicating the sentinel
// negative-index arithmetic, so this package buckets years by "year type" —
// (is-leap, weekday of January 1st), 14 combinations, exactly the 14
// representative years the spec samples — and stores, per type, the two
// transitions' offsets-within-year. Any calendar year shares its
// transition structure with every other year of the same type (leap-ness
// and weekday pattern fully determine it), and every type recurs within
// any 400-year span, so this is the same cyclic table the spec asks for,
// addressed by a named classification instead of packed array sentinels.
package tzrule

import (
	"github.com/nvigier/tzengine/internal/calendar"
	"github.com/nvigier/tzengine/posixtz"
)

const secondsPerDay = 24 * 3600

// yearTypeCount is 7 weekdays x {leap, non-leap}.
const yearTypeCount = 14

// TypeOffsets holds, for one year type, the UTC-relative seconds-since-
// year-start of the std->dst transition (Start) and the dst->std
// transition (End). Either may be negative or exceed a year's length by a
// little (signedTime allows times up to +-167h), matching 4.C.4's "local -
// utoff_of_prior_offset" derivation.
type TypeOffsets struct {
	Start int64
	End   int64
}

// Materialized is the output of Materialise.
type Materialized struct {
	// AlwaysDST is true when the rule pair describes permanent DST (4.C.1):
	// no per-year table is needed or built.
	AlwaysDST bool

	Std Offset
	Dst Offset

	// ByType[YearType(year)] gives the transition offsets for any year of
	// that type.
	ByType [yearTypeCount]TypeOffsets
}

// Offset is the (utoff, isdst, designation) triple the spec calls an
// "offset record".
type Offset struct {
	UTOff int32
	IsDST bool
	Desig string
}

// YearType buckets a Gregorian year into one of 14 classes: its leap-ness
// and the weekday of January 1st fully determine its calendar shape, and
// both repeat with period 400 (leap-ness) and period simpler-but-compatible
// 400 (weekday, since 400 Gregorian years is a whole number of weeks).
func YearType(year int64) int {
	jan1Days := calendar.YMDToDays(year, 1, 1)
	_, _, _, weekday, _ := calendar.DaysToYMD(jan1Days)
	leapBit := 0
	if calendar.IsLeapYear(year) {
		leapBit = 1
	}
	return weekday*2 + leapBit
}

// representativeYears are sample years, one per (leap, weekday) class, as
// enumerated in spec 4.C.2.
var representativeYears = [yearTypeCount]int64{
	2006, 2001, 2002, 2003, 2009, 2010, 2005, 2012, 2024, 2008, 2020, 2004, 2016, 2028,
}

// Materialise builds the cyclic transition table for tz.
func Materialise(tz posixtz.TZ) Materialized {
	m := Materialized{
		Std: Offset{UTOff: tz.Std.UTOff, IsDST: false, Desig: tz.Std.Desig},
	}
	if !tz.HasDST {
		return m
	}
	m.Dst = Offset{UTOff: tz.Dst.UTOff, IsDST: true, Desig: tz.Dst.Desig}

	if isAlwaysDST(tz) {
		m.AlwaysDST = true
		return m
	}

	seen := make(map[int]bool, yearTypeCount)
	for _, y := range representativeYears {
		t := YearType(y)
		if seen[t] {
			continue
		}
		seen[t] = true
		startOff := dayOfYear0(y, tz.Start)*secondsPerDay + int64(tz.Start.Time) - int64(tz.Std.UTOff)
		endOff := dayOfYear0(y, tz.End)*secondsPerDay + int64(tz.End.Time) - int64(tz.Dst.UTOff)
		m.ByType[t] = TypeOffsets{Start: startOff, End: endOff}
	}
	// representativeYears is constructed to cover all 14 types (see
	// TestYearTypeCoversAllClasses in tzrule_test.go); any gaps would mean a year type is never
	// resolvable and a bug in the table above.
	return m
}

// isAlwaysDST implements 4.C.1's always-DST test: std is J1 at time 0 and
// dst is J365 at time 86400+dst.UTOff-std.UTOff.
func isAlwaysDST(tz posixtz.TZ) bool {
	std := tz.Start
	dst := tz.End
	stdIsJ1Midnight := std.Kind == posixtz.KindJulianNoLeap && std.JDay == 1 && std.Time == 0
	wantDstTime := int32(secondsPerDay) + tz.Dst.UTOff - tz.Std.UTOff
	dstIsJ365 := dst.Kind == posixtz.KindJulianNoLeap && dst.JDay == 365 && dst.Time == wantDstTime
	return stdIsJ1Midnight && dstIsJ365
}

// dayOfYear0 returns the 0-based day-of-year on which rule r falls in year.
func dayOfYear0(year int64, r posixtz.Rule) int64 {
	switch r.Kind {
	case posixtz.KindMonthWeekDay:
		mday := monthWeekDay(year, r.Month, r.Week, r.Day)
		return calendar.YMDToDays(year, r.Month, mday) - calendar.YMDToDays(year, 1, 1)
	case posixtz.KindJulianNoLeap:
		d := int64(r.JDay - 1)
		if calendar.IsLeapYear(year) && r.JDay > 59 {
			d++
		}
		return d
	default: // KindJulianLeap
		return int64(r.JDay)
	}
}

// monthWeekDay resolves the Mm.w.d rule form: the w-th occurrence of
// weekday (0=Sunday) in month, clamped to the last occurrence when w==5.
func monthWeekDay(year int64, month, week, weekday int) int {
	firstOfMonth := calendar.YMDToDays(year, month, 1)
	_, _, _, firstWeekday, _ := calendar.DaysToYMD(firstOfMonth)
	firstOccurrence := 1 + (weekday-firstWeekday+7)%7
	daysInMonth := calendar.DaysInMonth(year, month)
	if week == 5 {
		last := firstOccurrence
		for last+7 <= daysInMonth {
			last += 7
		}
		return last
	}
	day := firstOccurrence + (week-1)*7
	if day > daysInMonth {
		day = firstOccurrence
	}
	return day
}
