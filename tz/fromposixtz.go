package tz

import (
	"github.com/nvigier/tzengine/posixtz"
	"github.com/nvigier/tzengine/tzrule"
)

// FromPosixTZ builds a Zone purely from a POSIX TZ string, with no
// explicit transition history -- every timestamp is resolved through the
// materialised rule. This is how zones without an IANA TZif entry (a
// fixed offset, or a rule supplied directly by a caller) are built.
func FromPosixTZ(s string) (*Zone, error) {
	parsed, err := posixtz.Parse(s)
	if err != nil {
		return nil, err
	}
	mat := tzrule.Materialise(parsed)

	z := &Zone{
		Timestamps: []int64{minInstant},
		OffsetMap:  []int{0},
	}
	if !parsed.HasDST {
		z.Offsets = []Offset{mat.Std}
		return z, nil
	}
	z.Offsets = []Offset{mat.Std, mat.Dst}
	z.HasCycle = true
	z.Cycle = mat
	return z, nil
}
