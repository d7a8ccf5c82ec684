package tz

import (
	"bytes"
	"fmt"
	"math"

	"github.com/nvigier/tzengine/posixtz"
	"github.com/nvigier/tzengine/tzerr"
	"github.com/nvigier/tzengine/tzif"
	"github.com/nvigier/tzengine/tzrule"
)

// FromTZif decodes a TZif file and builds the Zone it describes. Only
// version 2+ files are supported: a version-1-only file has no 64-bit
// transition table and nothing to say about any instant past January
// 2038, which isn't enough to serve as a general-purpose zone.
func FromTZif(data []byte) (*Zone, error) {
	f, err := tzif.DecodeFile(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if f.Version < tzif.V2 {
		return nil, fmt.Errorf("%w: only version 2+ TZif files are supported", tzerr.InvalidFile)
	}

	d := f.V2Data
	offsets, err := designatedOffsets(d.LocalTimeTypeRecord, d.TimeZoneDesignation)
	if err != nil {
		return nil, err
	}

	times := append([]int64(nil), d.TransitionTimes...)
	types := append([]uint8(nil), d.TransitionTypes...)
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("%w: transition times are not strictly increasing", tzerr.InvalidFile)
		}
	}

	// Some compilers emit a final transition at INT32_MAX as a workaround
	// for readers that mishandle version-1-only data; it carries no
	// information beyond the transition before it once the two share an
	// offset, so drop it.
	if n := len(times); n >= 2 && times[n-1] == math.MaxInt32 && types[n-1] == types[n-2] {
		times = times[:n-1]
		types = types[:n-1]
	}

	z := &Zone{Offsets: offsets}

	initial := 0
	for i, r := range d.LocalTimeTypeRecord {
		if !r.Dst {
			initial = i
			break
		}
	}
	z.Timestamps = make([]int64, 0, len(times)+1)
	z.OffsetMap = make([]int, 0, len(times)+1)
	z.Timestamps = append(z.Timestamps, minInstant)
	z.OffsetMap = append(z.OffsetMap, initial)
	for i, t := range times {
		if int(types[i]) >= len(offsets) {
			return nil, fmt.Errorf("%w: transition type index out of range", tzerr.InvalidFile)
		}
		z.Timestamps = append(z.Timestamps, t)
		z.OffsetMap = append(z.OffsetMap, int(types[i]))
	}

	leap, err := leapRecords(d.LeapSecondRecords)
	if err != nil {
		return nil, err
	}
	z.Leap = leap

	if len(f.V2Footer.TZString) == 0 {
		return z, nil
	}
	rule, err := posixtz.Parse(string(f.V2Footer.TZString))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing footer TZ string: %v", tzerr.InvalidFile, err)
	}
	mat := tzrule.Materialise(rule)
	if !rule.HasDST {
		return z, nil
	}
	z.HasCycle = true
	z.Cycle = mat

	lastIdx := len(z.Timestamps) - 1
	lastOffset := z.Offsets[z.OffsetMap[lastIdx]]
	var expected Offset
	if mat.AlwaysDST {
		expected = mat.Dst
	} else {
		expected, _, _ = z.cycleOffsetAndBounds(z.Timestamps[lastIdx])
	}
	if expected.UTOff != lastOffset.UTOff || expected.IsDST != lastOffset.IsDST {
		return nil, fmt.Errorf("%w: footer TZ string disagrees with last explicit transition", tzerr.InvalidFile)
	}

	return z, nil
}

// designatedOffsets resolves each local time type record's designation
// index into its NUL-terminated string in pool.
func designatedOffsets(records []tzif.LocalTimeTypeRecord, pool []byte) ([]Offset, error) {
	offsets := make([]Offset, len(records))
	for i, r := range records {
		if int(r.Idx) >= len(pool) {
			return nil, fmt.Errorf("%w: designation index out of range", tzerr.InvalidFile)
		}
		end := bytes.IndexByte(pool[r.Idx:], 0)
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated designation", tzerr.InvalidFile)
		}
		offsets[i] = Offset{
			UTOff: r.Utoff,
			IsDST: r.Dst,
			Desig: string(pool[r.Idx : int(r.Idx)+end]),
		}
	}
	return offsets, nil
}

func leapRecords(in []tzif.V2LeapSecondRecord) ([]leapRecord, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]leapRecord, len(in))
	for i, r := range in {
		if i > 0 {
			if r.Occur <= in[i-1].Occur {
				return nil, fmt.Errorf("%w: leap-second occurrences are not strictly increasing", tzerr.InvalidFile)
			}
			if diff := r.Corr - in[i-1].Corr; diff != 1 && diff != -1 {
				return nil, fmt.Errorf("%w: leap-second corrections must differ by exactly one", tzerr.InvalidFile)
			}
		}
		out[i] = leapRecord{Occur: r.Occur, Corr: r.Corr}
	}
	return out, nil
}
