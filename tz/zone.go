// Package tz ties the calendar, posixtz, tzrule and tzif packages together
// into the zone record and the forward/inverse conversions that are the
// point of the whole module: timestamp <-> civil time under a zone.
//
// A Zone is built once, by FromTZif or FromPosixTZ, and is immutable
// afterwards -- ToCivil and FromCivil never mutate it, so a *Zone may be
// shared across goroutines without synchronisation once published.
package tz

import (
	"math"

	"github.com/nvigier/tzengine/tzrule"
)

// Offset is the utoff/isdst/designation triple active over a transition
// interval. It is tzrule's Offset type: the rule materialiser already
// produces exactly this record shape for the cyclic extension, and the
// TZif loader fills one of these per local time type record, so there is
// no reason to define a second, TZif-specific copy of the same three
// fields.
type Offset = tzrule.Offset

type leapRecord struct {
	Occur int64
	Corr  int32
}

// Zone is the immutable, arena-free (ordinary Go slices do the job; see
// SPEC_FULL.md section 9) representation of §3's zone record. It always holds an
// explicit transition table -- possibly just the Timestamps[0] sentinel,
// for a POSIX-only zone -- and, when HasCycle is true, a materialised
// rule pair that resolves any time beyond the explicit table's reach.
//
// This corresponds to design note 9's "three shapes" (no DST ever, DST
// that stops after the explicit table, DST that cycles forever): rather
// than three Go types, ToCivil and FromCivil dispatch once, at entry, on
// HasCycle and Cycle.AlwaysDST.
type Zone struct {
	// Timestamps[0] is the math.MinInt64 sentinel; Timestamps[i] for i>0
	// are the file's explicit transition instants in ascending order.
	Timestamps []int64
	// OffsetMap[i] indexes Offsets for the interval starting at
	// Timestamps[i].
	OffsetMap []int
	Offsets   []Offset

	// Leap holds the zone's leap-second table, empty if it has none.
	Leap []leapRecord

	// HasCycle is true when time at or beyond Timestamps[len-1] resolves
	// through Cycle rather than through the last explicit offset -- set
	// whenever the zone's POSIX rule (a TZif footer, or the string given
	// to FromPosixTZ) has a DST part. A POSIX rule without DST leaves it
	// false, and the zone resolves every time to its one offset.
	HasCycle bool
	Cycle    tzrule.Materialized
}

const minInstant = math.MinInt64
