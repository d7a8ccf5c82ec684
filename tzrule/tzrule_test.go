package tzrule

import (
	"testing"

	"github.com/nvigier/tzengine/internal/calendar"
	"github.com/nvigier/tzengine/posixtz"
)

func TestYearTypeCoversAllClasses(t *testing.T) {
	seen := make(map[int]int64)
	for _, y := range representativeYears {
		typ := YearType(y)
		if other, ok := seen[typ]; ok {
			t.Errorf("years %d and %d collide on type %d", other, y, typ)
		}
		seen[typ] = y
	}
	if len(seen) != yearTypeCount {
		t.Fatalf("representative years cover %d types, want %d", len(seen), yearTypeCount)
	}
}

func TestYearTypeStable(t *testing.T) {
	// 2000 and 2400 are both leap years with January 1st on a Saturday;
	// they must land in the same bucket 400 years apart.
	if YearType(2000) != YearType(2400) {
		t.Errorf("YearType(2000)=%d, YearType(2400)=%d, want equal", YearType(2000), YearType(2400))
	}
}

func TestMaterialiseUSEasternMatchesKnownTransitions(t *testing.T) {
	tz, err := posixtz.Parse("EST5EDT,M3.2.0,M11.1.0")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	m := Materialise(tz)
	if m.AlwaysDST {
		t.Fatalf("AlwaysDST = true, want false")
	}

	year1Jan := calendar.YMDToDays(2012, 1, 1) * 86400
	typ := YearType(2012)
	offs := m.ByType[typ]

	gotStart := year1Jan + offs.Start
	gotEnd := year1Jan + offs.End

	const wantStart = 1331449200 // 2012-03-11 07:00:00 UTC
	const wantEnd = 1352008800   // 2012-11-04 06:00:00 UTC

	if gotStart != wantStart {
		t.Errorf("2012 DST start = %d, want %d", gotStart, wantStart)
	}
	if gotEnd != wantEnd {
		t.Errorf("2012 DST end = %d, want %d", gotEnd, wantEnd)
	}
}

func TestMaterialiseAlwaysDST(t *testing.T) {
	tz, err := posixtz.Parse("EST5EDT,J1/0,J365/25")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	m := Materialise(tz)
	if !m.AlwaysDST {
		t.Errorf("AlwaysDST = false, want true")
	}
}

func TestMaterialiseStdOnly(t *testing.T) {
	tz, err := posixtz.Parse("HKT-8")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	m := Materialise(tz)
	if m.AlwaysDST {
		t.Errorf("AlwaysDST = true, want false")
	}
	if m.Std.UTOff != 28800 || m.Std.Desig != "HKT" {
		t.Errorf("Std = %+v", m.Std)
	}
	var zero [yearTypeCount]TypeOffsets
	if m.ByType != zero {
		t.Errorf("ByType populated for a zone with no DST: %+v", m.ByType)
	}
}

func TestMonthWeekDayLastOccurrence(t *testing.T) {
	// M11.5.0 in November 2012 means the last Sunday, the 25th.
	day := monthWeekDay(2012, 11, 5, 0)
	if day != 25 {
		t.Errorf("monthWeekDay(2012, 11, 5, 0) = %d, want 25", day)
	}
}
