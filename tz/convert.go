package tz

import (
	"fmt"
	"math"
	"sort"

	"github.com/nvigier/tzengine/internal/calendar"
	"github.com/nvigier/tzengine/tzerr"
	"github.com/nvigier/tzengine/tzrule"
)

// Civil is the broken-down local-time record a Zone converts to and from.
// Field semantics follow struct tm: Year is years since 1900, Mon is
// 0-based (January = 0), and Isdst is a tri-state -- 1 means DST is in
// effect, 0 means it isn't, and -1 means "unknown, resolve it" and is
// only meaningful as FromCivil input.
type Civil struct {
	Sec, Min, Hour int
	Mday           int
	Mon            int
	Year           int64
	Wday           int
	Yday           int
	Isdst          int
	UTOff          int32
	Abbrev         string
}

// ToCivil converts a Unix timestamp to the civil time it denotes under z.
func (z *Zone) ToCivil(t int64) (Civil, error) {
	adjusted, extra := z.leapAdjust(t)
	off := z.offsetAt(t)

	localT := adjusted + int64(off.UTOff)
	cc, err := calendar.FromTimestamp(localT)
	if err != nil {
		return Civil{}, err
	}

	isdst := 0
	if off.IsDST {
		isdst = 1
	}
	return Civil{
		Sec:    cc.Sec + extra,
		Min:    cc.Min,
		Hour:   cc.Hour,
		Mday:   cc.Day,
		Mon:    cc.Month - 1,
		Year:   cc.Year - 1900,
		Wday:   cc.Weekday,
		Yday:   cc.YDay,
		Isdst:  isdst,
		UTOff:  off.UTOff,
		Abbrev: off.Desig,
	}, nil
}

// FromCivil resolves a civil time to a timestamp under z. c.Isdst
// disambiguates a fold (a local moment two offsets both claim) and, for a
// gap (a local moment no offset claims), picks the offset whose DST flag
// matches it to compute the timestamp; it is ignored for an ordinary
// local time. A civil time whose year does not fit is reported as
// tzerr.Unrepresentable. The returned Civil is the canonical,
// fully-derived rendering of the resolved timestamp -- for a fold or gap
// this generally differs from c in Isdst, UTOff, Abbrev and, for a gap,
// in Hour/Min/Sec too.
func (z *Zone) FromCivil(c Civil) (int64, Civil, error) {
	naive := calendar.Civil{
		Year: c.Year + 1900,
		Month: c.Mon + 1,
		Day:   c.Mday,
		Hour:  c.Hour,
		Min:   c.Min,
		Sec:   c.Sec,
	}
	tsUTC, err := calendar.ToTimestamp(naive)
	if err != nil {
		return 0, Civil{}, fmt.Errorf("%w: %v", tzerr.Unrepresentable, err)
	}

	off, start, end := z.offsetAndBounds(tsUTC)
	prevOff, prevStart, _ := z.offsetAndBounds(start - 1)
	var nextOff Offset
	var nextEnd int64 = math.MaxInt64
	if end != math.MaxInt64 {
		nextOff, _, nextEnd = z.offsetAndBounds(end)
	}

	tsMid := tsUTC - int64(off.UTOff)
	tsPrev := tsUTC - int64(prevOff.UTOff)
	tsNext := tsUTC - int64(nextOff.UTOff)

	validMid := tsMid >= start && tsMid < end
	validPrev := tsPrev >= prevStart && tsPrev < start
	validNext := end != math.MaxInt64 && tsNext >= end && tsNext < nextEnd

	var chosen int64
	switch {
	case validMid && validPrev:
		// Fold at the start boundary: prevOff is the earlier branch.
		if wantsOffset(prevOff, off, c.Isdst) {
			chosen = tsPrev
		} else {
			chosen = tsMid
		}
	case validMid && validNext:
		// Fold at the end boundary: off is the earlier branch.
		if wantsOffset(off, nextOff, c.Isdst) {
			chosen = tsMid
		} else {
			chosen = tsNext
		}
	case validMid:
		chosen = tsMid
	case validPrev:
		chosen = tsPrev
	case validNext:
		chosen = tsNext
	case tsMid < start:
		// Gap between prevOff and off: apply the gap policy directly,
		// since neither candidate lands in its own interval.
		if prevOff.IsDST == (c.Isdst == 1) {
			chosen = tsPrev
		} else {
			chosen = tsMid
		}
	default:
		// Gap between off and nextOff.
		if off.IsDST == (c.Isdst == 1) {
			chosen = tsMid
		} else {
			chosen = tsNext
		}
	}

	chosen += int64(z.leapCorrectionAt(chosen))

	result, err := z.ToCivil(chosen)
	if err != nil {
		return 0, Civil{}, err
	}
	return chosen, result, nil
}

// wantsOffset reports whether, given a fold between the earlier offset a
// and the later offset b, isdst picks a over b.
func wantsOffset(a, b Offset, isdst int) bool {
	if isdst != 0 && isdst != 1 {
		return true // no preference stated: default to the earlier branch.
	}
	want := isdst == 1
	if a.IsDST == want && b.IsDST != want {
		return true
	}
	if b.IsDST == want && a.IsDST != want {
		return false
	}
	return true
}

// offsetAt returns the offset in effect at the UTC-timescale instant t
// (before any leap-second adjustment).
func (z *Zone) offsetAt(t int64) Offset {
	off, _, _ := z.offsetAndBounds(t)
	return off
}

// offsetAndBounds returns the offset active at t along with the
// half-open interval [start, end) over which it applies. end is
// math.MaxInt64 when the interval is unbounded.
func (z *Zone) offsetAndBounds(t int64) (off Offset, start, end int64) {
	if len(z.Timestamps) > 1 && t < z.Timestamps[len(z.Timestamps)-1] {
		i := sort.Search(len(z.Timestamps), func(i int) bool { return z.Timestamps[i] > t }) - 1
		if i < 0 {
			i = 0
		}
		off = z.Offsets[z.OffsetMap[i]]
		start = z.Timestamps[i]
		end = z.Timestamps[i+1]
		return
	}

	lastStart := int64(minInstant)
	if len(z.Timestamps) > 0 {
		lastStart = z.Timestamps[len(z.Timestamps)-1]
	}

	if !z.HasCycle {
		off = z.Offsets[z.OffsetMap[len(z.OffsetMap)-1]]
		start = lastStart
		end = math.MaxInt64
		return
	}
	if z.Cycle.AlwaysDST {
		off = z.Cycle.Dst
		start = lastStart
		end = math.MaxInt64
		return
	}
	return z.cycleOffsetAndBounds(t)
}

// cycleOffsetAndBounds resolves t against the materialised POSIX rule by
// bracketing t with the two year-type transitions nearest it, built from
// a four-year window around t's approximate calendar year. A window this
// wide always contains t's actual bracketing transitions, since any
// single DST rule has at most two transitions per year.
func (z *Zone) cycleOffsetAndBounds(t int64) (Offset, int64, int64) {
	year := int64(2001)
	if cc, err := calendar.FromTimestamp(t); err == nil {
		year = cc.Year
	}

	type cand struct {
		instant int64
		off     Offset
	}
	var cands []cand
	for _, yy := range []int64{year - 1, year, year + 1, year + 2} {
		typ := tzrule.YearType(yy)
		offs := z.Cycle.ByType[typ]
		yearStart := calendar.YMDToDays(yy, 1, 1) * secondsPerDay
		cands = append(cands,
			cand{yearStart + offs.Start, z.Cycle.Dst},
			cand{yearStart + offs.End, z.Cycle.Std},
		)
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].instant < cands[j].instant })

	best := -1
	for i, cd := range cands {
		if cd.instant <= t {
			best = i
		}
	}
	if best == -1 {
		return z.Cycle.Std, minInstant, cands[0].instant
	}
	end := int64(math.MaxInt64)
	if best+1 < len(cands) {
		end = cands[best+1].instant
	}
	return cands[best].off, cands[best].instant, end
}

const secondsPerDay = 24 * 3600

// leapAdjust removes the accumulated leap-second correction in effect at
// t, so the remainder can be fed through ordinary proleptic-Gregorian
// calendar math. extra is 1 during the one-second window that represents
// a leap second itself (displayed as sec=60), 0 otherwise.
func (z *Zone) leapAdjust(t int64) (adjusted int64, extra int) {
	if len(z.Leap) == 0 {
		return t, 0
	}
	i := sort.Search(len(z.Leap), func(i int) bool { return z.Leap[i].Occur > t }) - 1
	if i < 0 {
		return t, 0
	}
	lsec := z.Leap[i].Corr
	if t > z.Leap[i].Occur-1 && t <= z.Leap[i].Occur {
		extra = 1
	}
	return t - int64(lsec), extra
}

// leapCorrectionAt returns the cumulative leap correction in effect at
// the raw (non-leap-adjusted) instant t.
func (z *Zone) leapCorrectionAt(t int64) int32 {
	if len(z.Leap) == 0 {
		return 0
	}
	i := sort.Search(len(z.Leap), func(i int) bool { return z.Leap[i].Occur > t }) - 1
	if i < 0 {
		return 0
	}
	return z.Leap[i].Corr
}
