package tz

import (
	"bytes"
	"testing"

	"github.com/nvigier/tzengine/tzif"
)

// These fixtures are hand-built the way tzif_test.go builds its RFC 8536
// Appendix B fixtures (TestV2FileRepresentingPacificHonululu and
// neighbours): literal Header/V2DataBlock/Footer values, encoded with
// File.Encode and then decoded back with FromTZif, so the decode path
// itself -- not just the in-memory Zone it would produce -- is exercised.
// Transition epochs are the real America/New_York, Australia/Melbourne and
// Europe/London transitions for the years involved.

func encodeV2(t *testing.T, f tzif.File) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Encode(&buf); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

// newYorkFixture returns a v2 TZif file for America/New_York covering the
// 2010-2012 US DST transitions (EST5EDT,M3.2.0,M11.1.0 took effect in 2007
// and has applied ever since).
func newYorkFixture(t *testing.T) []byte {
	t.Helper()
	designations := []byte("EST\x00EDT\x00")
	types := []tzif.LocalTimeTypeRecord{
		{Utoff: -18000, Dst: false, Idx: 0}, // EST
		{Utoff: -14400, Dst: true, Idx: 4},  // EDT
	}
	times := []int64{
		1268550000, // 2010-03-14 spring forward
		1289109600, // 2010-11-07 fall back
		1299999600, // 2011-03-13 spring forward
		1320559200, // 2011-11-06 fall back
		1331449200, // 2012-03-11 spring forward
		1352008800, // 2012-11-04 fall back
	}
	typeIdx := []uint8{1, 0, 1, 0, 1, 0}

	f := tzif.File{
		Version:   tzif.V2,
		V1Missing: true,
		V2Header: tzif.Header{
			Version:  tzif.V2,
			Timecnt:  uint32(len(times)),
			Typecnt:  uint32(len(types)),
			Charcnt:  uint32(len(designations)),
			Leapcnt:  0,
			Isutcnt:  0,
			Isstdcnt: 0,
		},
		V2Data: tzif.V2DataBlock{
			TransitionTimes:     times,
			TransitionTypes:     typeIdx,
			LocalTimeTypeRecord: types,
			TimeZoneDesignation: designations,
		},
		V2Footer: tzif.Footer{TZString: []byte("EST5EDT,M3.2.0,M11.1.0")},
	}
	return encodeV2(t, f)
}

// melbourneFixture returns a v2 TZif file for Australia/Melbourne as it
// stood on 1970-01-01: a single fixed AEST offset, no transitions yet (the
// Whitlam-era DST trial didn't begin until summer 1971-72).
func melbourneFixture(t *testing.T) []byte {
	t.Helper()
	designations := []byte("AEST\x00")
	types := []tzif.LocalTimeTypeRecord{
		{Utoff: 36000, Dst: false, Idx: 0},
	}
	f := tzif.File{
		Version:   tzif.V2,
		V1Missing: true,
		V2Header: tzif.Header{
			Version: tzif.V2,
			Timecnt: 0,
			Typecnt: uint32(len(types)),
			Charcnt: uint32(len(designations)),
		},
		V2Data: tzif.V2DataBlock{
			LocalTimeTypeRecord: types,
			TimeZoneDesignation: designations,
		},
		V2Footer: tzif.Footer{TZString: []byte("AEST-10")},
	}
	return encodeV2(t, f)
}

// londonFixture returns a v2 TZif file for Europe/London covering the 1999
// and 2000 GMT/BST transitions, with the standard UK footer rule so a
// query past the last explicit transition resolves through the cycle.
func londonFixture(t *testing.T) []byte {
	t.Helper()
	designations := []byte("GMT\x00BST\x00")
	types := []tzif.LocalTimeTypeRecord{
		{Utoff: 0, Dst: false, Idx: 0}, // GMT
		{Utoff: 3600, Dst: true, Idx: 4}, // BST
	}
	times := []int64{
		922582800, // 1999-03-28 spring forward
		941331600, // 1999-10-31 fall back
		954032400, // 2000-03-26 spring forward
		972781200, // 2000-10-29 fall back
	}
	typeIdx := []uint8{1, 0, 1, 0}

	f := tzif.File{
		Version:   tzif.V2,
		V1Missing: true,
		V2Header: tzif.Header{
			Version: tzif.V2,
			Timecnt: uint32(len(times)),
			Typecnt: uint32(len(types)),
			Charcnt: uint32(len(designations)),
		},
		V2Data: tzif.V2DataBlock{
			TransitionTimes:     times,
			TransitionTypes:     typeIdx,
			LocalTimeTypeRecord: types,
			TimeZoneDesignation: designations,
		},
		V2Footer: tzif.Footer{TZString: []byte("GMT0BST,M3.5.0/1,M10.5.0")},
	}
	return encodeV2(t, f)
}

// S1: a pre-DST-trial Melbourne instant is plain AEST.
func TestScenarioS1MelbourneBeforeDSTTrial(t *testing.T) {
	z, err := FromTZif(melbourneFixture(t))
	if err != nil {
		t.Fatalf("FromTZif: %v", err)
	}
	c, err := z.ToCivil(0)
	if err != nil {
		t.Fatalf("ToCivil: %v", err)
	}
	if c.Isdst != 0 || c.UTOff != 36000 || c.Abbrev != "AEST" {
		t.Fatalf("got isdst=%d utoff=%d abbrev=%q, want isdst=0 utoff=36000 abbrev=AEST",
			c.Isdst, c.UTOff, c.Abbrev)
	}
}

// S2: the Unix epoch falls in pre-history New York EST, before the TZif's
// first explicit transition.
func TestScenarioS2NewYorkAtEpoch(t *testing.T) {
	z, err := FromTZif(newYorkFixture(t))
	if err != nil {
		t.Fatalf("FromTZif: %v", err)
	}
	c, err := z.ToCivil(0)
	if err != nil {
		t.Fatalf("ToCivil: %v", err)
	}
	if c.Year+1900 != 1969 || c.Mon != 11 || c.Mday != 31 || c.Hour != 19 ||
		c.Min != 0 || c.Sec != 0 || c.Isdst != 0 || c.UTOff != -18000 || c.Abbrev != "EST" {
		t.Fatalf("got %+v, want 1969-12-31 19:00:00 EST isdst=0 utoff=-18000", c)
	}
	if c.Wday != 3 {
		t.Fatalf("got wday=%d, want 3 (Wednesday)", c.Wday)
	}
	if c.Yday != 364 {
		t.Fatalf("got yday=%d, want 364", c.Yday)
	}
}

// S3: the last instant of GMT before the millennium resolves through
// London's cyclic footer rule, since it lies past the last explicit
// transition in the fixture.
func TestScenarioS3LondonMillenniumEve(t *testing.T) {
	z, err := FromTZif(londonFixture(t))
	if err != nil {
		t.Fatalf("FromTZif: %v", err)
	}
	c, err := z.ToCivil(978307199)
	if err != nil {
		t.Fatalf("ToCivil: %v", err)
	}
	if c.Year+1900 != 2000 || c.Mon != 11 || c.Mday != 31 || c.Hour != 23 ||
		c.Min != 59 || c.Sec != 59 || c.Isdst != 0 || c.UTOff != 0 || c.Abbrev != "GMT" {
		t.Fatalf("got %+v, want 2000-12-31 23:59:59 GMT isdst=0 utoff=0", c)
	}
}

// S4: New York's fall-back fold, decoded from a real TZif transition table
// rather than a synthesised POSIX-only zone -- Isdst disambiguates which
// of the two 01:30 instants the caller meant.
func TestScenarioS4NewYorkFallBackFold(t *testing.T) {
	z, err := FromTZif(newYorkFixture(t))
	if err != nil {
		t.Fatalf("FromTZif: %v", err)
	}

	edt := Civil{Year: 112, Mon: 10, Mday: 4, Hour: 1, Min: 30, Sec: 0, Isdst: 1}
	ts, c, err := z.FromCivil(edt)
	if err != nil {
		t.Fatalf("FromCivil(isdst=1): %v", err)
	}
	if ts != 1352007000 || c.Abbrev != "EDT" || c.UTOff != -14400 {
		t.Fatalf("got ts=%d abbrev=%s utoff=%d, want ts=1352007000 abbrev=EDT utoff=-14400", ts, c.Abbrev, c.UTOff)
	}

	est := Civil{Year: 112, Mon: 10, Mday: 4, Hour: 1, Min: 30, Sec: 0, Isdst: 0}
	ts, c, err = z.FromCivil(est)
	if err != nil {
		t.Fatalf("FromCivil(isdst=0): %v", err)
	}
	if ts != 1352010600 || c.Abbrev != "EST" || c.UTOff != -18000 {
		t.Fatalf("got ts=%d abbrev=%s utoff=%d, want ts=1352010600 abbrev=EST utoff=-18000", ts, c.Abbrev, c.UTOff)
	}
}

// S5: New York's spring-forward gap rewrites a nonexistent 02:30 wall
// clock reading to its 03:30 EDT equivalent.
func TestScenarioS5NewYorkSpringForwardGap(t *testing.T) {
	z, err := FromTZif(newYorkFixture(t))
	if err != nil {
		t.Fatalf("FromTZif: %v", err)
	}

	gap := Civil{Year: 112, Mon: 2, Mday: 11, Hour: 2, Min: 30, Sec: 0, Isdst: 0}
	ts, c, err := z.FromCivil(gap)
	if err != nil {
		t.Fatalf("FromCivil: %v", err)
	}
	if ts != 1331451000 {
		t.Fatalf("got ts=%d, want 1331451000", ts)
	}
	if c.Hour != 3 || c.Min != 30 || c.Isdst != 1 || c.UTOff != -14400 || c.Abbrev != "EDT" {
		t.Fatalf("got %+v, want 03:30:00 EDT isdst=1 utoff=-14400", c)
	}
}

// S7: a far-future instant past every explicit transition resolves through
// the materialised EST5EDT cycle, confirming the loader wires the footer
// rule into the zone's unbounded tail rather than stopping at the last
// compiled transition.
func TestScenarioS7NewYorkFarFutureCycle(t *testing.T) {
	z, err := FromTZif(newYorkFixture(t))
	if err != nil {
		t.Fatalf("FromTZif: %v", err)
	}
	// 2401-01-01T00:00:00Z: midwinter, so standard time applies regardless
	// of which cyclic year-type 2401 resolves to.
	const farFuture = 13601088000
	c, err := z.ToCivil(farFuture)
	if err != nil {
		t.Fatalf("ToCivil: %v", err)
	}
	if c.Isdst != 0 || c.UTOff != -18000 || c.Abbrev != "EST" {
		t.Fatalf("got isdst=%d utoff=%d abbrev=%q, want isdst=0 utoff=-18000 abbrev=EST", c.Isdst, c.UTOff, c.Abbrev)
	}
}
