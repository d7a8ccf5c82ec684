package calendar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromTimestamp(t *testing.T) {
	cases := []struct {
		ts   int64
		want Civil
	}{
		{0, Civil{Year: 1970, Month: 1, Day: 1, Weekday: 4, YDay: 0}},
		{-1, Civil{Year: 1969, Month: 12, Day: 31, Hour: 23, Min: 59, Sec: 59, Weekday: 3, YDay: 364}},
		{978307199, Civil{Year: 2000, Month: 12, Day: 31, Hour: 23, Min: 59, Sec: 59, Weekday: 0, YDay: 365}},
		{951782400, Civil{Year: 2000, Month: 2, Day: 29, Weekday: 2, YDay: 59}},
	}
	for _, c := range cases {
		got, err := FromTimestamp(c.ts)
		if err != nil {
			t.Fatalf("FromTimestamp(%d) error: %v", c.ts, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("FromTimestamp(%d) mismatch (-want +got):\n%s", c.ts, diff)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tss := []int64{0, 1, -1, 86399, 86400, -86400, 1331451000, 1352007000, 13601088000, -2208988800}
	for _, ts := range tss {
		c, err := FromTimestamp(ts)
		if err != nil {
			t.Fatalf("FromTimestamp(%d) error: %v", ts, err)
		}
		got, err := ToTimestamp(c)
		if err != nil {
			t.Fatalf("ToTimestamp(%+v) error: %v", c, err)
		}
		if got != ts {
			t.Errorf("round trip %d -> %+v -> %d", ts, c, got)
		}
	}
}

func TestIsLeapYear(t *testing.T) {
	cases := []struct {
		year int64
		want bool
	}{
		{2000, true},
		{1900, false},
		{2004, true},
		{2001, false},
		{2400, true},
	}
	for _, c := range cases {
		if got := IsLeapYear(c.year); got != c.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", c.year, got, c.want)
		}
	}
}

func TestNormalizeCarriesOverflow(t *testing.T) {
	// 2012-03-11 24:00:00 is a carried way of writing 2012-03-12 00:00:00.
	got, err := Normalize(Civil{Year: 2012, Month: 3, Day: 11, Hour: 24})
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	want := Civil{Year: 2012, Month: 3, Day: 12, Weekday: 1, YDay: 71}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestToTimestampOverflowYear(t *testing.T) {
	_, err := ToTimestamp(Civil{Year: 1900 + yearSpan + 10, Month: 1, Day: 1})
	if err == nil {
		t.Fatalf("expected OverflowYear error")
	}
}
