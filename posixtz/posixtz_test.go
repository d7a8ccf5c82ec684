package posixtz

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStdOnly(t *testing.T) {
	got, err := Parse("HKT-8")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := TZ{Std: Rule{Desig: "HKT", UTOff: 28800}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(\"HKT-8\") mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWithDST(t *testing.T) {
	got, err := Parse("EST5EDT,M3.2.0,M11.1.0")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := TZ{
		Std:    Rule{Desig: "EST", UTOff: -18000},
		HasDST: true,
		Dst:    Rule{Desig: "EDT", UTOff: -14400},
		Start:  Rule{Kind: KindMonthWeekDay, Month: 3, Week: 2, Day: 0, Time: 7200},
		End:    Rule{Kind: KindMonthWeekDay, Month: 11, Week: 1, Day: 0, Time: 7200},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseExplicitDSTOffsetAndRuleTimes(t *testing.T) {
	got, err := Parse("AEST-10AEDT-11,M10.1.0/2,M4.1.0/3")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := TZ{
		Std:    Rule{Desig: "AEST", UTOff: 36000},
		HasDST: true,
		Dst:    Rule{Desig: "AEDT", UTOff: 39600},
		Start:  Rule{Kind: KindMonthWeekDay, Month: 10, Week: 1, Day: 0, Time: 7200},
		End:    Rule{Kind: KindMonthWeekDay, Month: 4, Week: 1, Day: 0, Time: 10800},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJulianAndQuotedDesignations(t *testing.T) {
	got, err := Parse("<-03>3<-02>,J1/0,J365/23")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := TZ{
		Std:    Rule{Desig: "-03", UTOff: -10800},
		HasDST: true,
		Dst:    Rule{Desig: "-02", UTOff: -10800 + 3600},
		Start:  Rule{Kind: KindJulianNoLeap, JDay: 1, Time: 0},
		End:    Rule{Kind: KindJulianNoLeap, JDay: 365, Time: 23 * 3600},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBareJulianDayForm(t *testing.T) {
	got, err := Parse("XXX-1YYY,59/12,300")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got.Start.Kind != KindJulianLeap || got.Start.JDay != 59 || got.Start.Time != 12*3600 {
		t.Errorf("Start = %+v", got.Start)
	}
	if got.End.Kind != KindJulianLeap || got.End.JDay != 300 || got.End.Time != 2*3600 {
		t.Errorf("End = %+v", got.End)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"ES",                   // designation too short
		"EST",                  // missing offset
		"EST5EDT",              // dst present, no rules
		"EST5EDT,M3.2.0",       // missing end rule
		"EST5EDT,M3.2.0,M11.1.0 ", // trailing garbage
		"EST5EDT,M13.2.0,M11.1.0", // month out of range
		"EST200",              // offset out of range
	}
	for _, s := range cases {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q): expected error, got nil", s)
		}
	}
}
