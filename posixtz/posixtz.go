// Package posixtz parses POSIX TZ strings of the form
//
//	std offset [dst [offset] [,start[/time],end[/time]]]
//
// as defined by POSIX and used in the TZif footer (RFC 8536 section 3.3),
// into a pair of Rule values describing standard and (if present) daylight
// saving time.
//
// The grammar accepted is stricter than POSIX in one respect the spec
// calls out: when a dst designation is present, both start and end rules
// are required. The scanner style — manual rune-by-rune parsing driven by
// a small cursor, reporting a wrapped error with the input and the cursor
// position — is a hand-written scanner rather than a parser-combinator or
// regexp library; neither is needed for a grammar this small.
package posixtz

import (
	"fmt"

	"github.com/nvigier/tzengine/tzerr"
)

// RuleKind identifies which of the three POSIX transition-rule forms a
// Rule uses.
type RuleKind int

const (
	// KindJulianNoLeap is the "Jn" form: the n-th day of the year,
	// 1..365, with February 29 never counted even in leap years.
	KindJulianNoLeap RuleKind = iota
	// KindJulianLeap is the bare "n" form: the n-th day of the year,
	// 0..365, counting February 29 in leap years.
	KindJulianLeap
	// KindMonthWeekDay is the "Mm.w.d" form: the w-th occurrence of
	// weekday d in month m (w=5 means "last").
	KindMonthWeekDay
)

// Rule is one transition rule: either the standard-time descriptor (which
// carries only Desig and UTOff) or a DST descriptor (which additionally
// carries Kind/Month/Week/Day/JDay/Time describing when it starts or ends).
type Rule struct {
	Desig string // abbreviation, 3..6 chars after trimming '<' '>'
	UTOff int32  // seconds to add to UTC to get this rule's local time

	Kind  RuleKind
	Month int // 1..12, for KindMonthWeekDay
	Week  int // 1..5, for KindMonthWeekDay (5 = last occurrence)
	Day   int // 0..6 Sunday=0, for KindMonthWeekDay
	JDay  int // 1..365 for KindJulianNoLeap, 0..365 for KindJulianLeap

	Time int32 // seconds after local midnight the transition occurs, default 7200 (02:00:00)
}

// TZ is a fully parsed POSIX TZ string.
type TZ struct {
	Std Rule
	// HasDST is true if a dst descriptor was present.
	HasDST bool
	Dst    Rule
	// Start/End are defined iff HasDST; they describe when DST begins
	// and ends, respectively (fields Kind/Month/Week/Day/JDay/Time of
	// the two Rule values -- Dst itself only carries Desig/UTOff).
	Start, End Rule
}

type parser struct {
	s   string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.s) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("%w: at %d in %q: %s", tzerr.InvalidTZString, p.pos, p.s, fmt.Sprintf(format, args...))
}

// Parse parses a POSIX TZ string into its std/dst rule pair.
func Parse(s string) (TZ, error) {
	p := &parser{s: s}
	var tz TZ

	desig, err := p.desig()
	if err != nil {
		return TZ{}, err
	}
	utoff, err := p.signedTime()
	if err != nil {
		return TZ{}, err
	}
	tz.Std = Rule{Desig: desig, UTOff: -utoff}

	if p.eof() {
		return tz, nil
	}

	dstDesig, err := p.desig()
	if err != nil {
		return TZ{}, err
	}
	tz.HasDST = true
	dstOff := tz.Std.UTOff + 3600
	if !p.eof() && p.peek() != ',' {
		signed, err := p.signedTime()
		if err != nil {
			return TZ{}, err
		}
		dstOff = -signed
	}
	tz.Dst = Rule{Desig: dstDesig, UTOff: dstOff}

	if p.eof() {
		return TZ{}, p.errf("dst segment present but missing start/end rules")
	}
	if err := p.expect(','); err != nil {
		return TZ{}, err
	}
	tz.Start, err = p.rule()
	if err != nil {
		return TZ{}, err
	}
	if err := p.expect(','); err != nil {
		return TZ{}, err
	}
	tz.End, err = p.rule()
	if err != nil {
		return TZ{}, err
	}
	if !p.eof() {
		return TZ{}, p.errf("trailing garbage")
	}
	return tz, nil
}

func (p *parser) expect(c byte) error {
	if p.eof() || p.peek() != c {
		return p.errf("expected %q", c)
	}
	p.pos++
	return nil
}

// desig parses DESIG := LETTERS | '<' [A-Za-z0-9+-]+ '>', 3..6 chars after trim.
func (p *parser) desig() (string, error) {
	if p.eof() {
		return "", p.errf("expected designation")
	}
	var raw string
	if p.peek() == '<' {
		start := p.pos + 1
		p.pos++
		for !p.eof() && p.peek() != '>' {
			c := p.peek()
			if !isAlnum(c) && c != '+' && c != '-' {
				return "", p.errf("invalid character %q in quoted designation", c)
			}
			p.pos++
		}
		if p.eof() {
			return "", p.errf("unterminated quoted designation")
		}
		raw = p.s[start:p.pos]
		p.pos++ // consume '>'
	} else {
		start := p.pos
		for !p.eof() && isAlpha(p.peek()) {
			p.pos++
		}
		raw = p.s[start:p.pos]
	}
	if len(raw) < 3 || len(raw) > 6 {
		return "", p.errf("designation %q must be 3..6 characters", raw)
	}
	return raw, nil
}

// signedTime parses SIGNED_TIME := ['-'|'+'] TIME, TIME := hh[:mm[:ss]].
// Returns the value in seconds.
func (p *parser) signedTime() (int32, error) {
	neg := false
	if !p.eof() && (p.peek() == '+' || p.peek() == '-') {
		neg = p.peek() == '-'
		p.pos++
	}
	hh, err := p.number(3)
	if err != nil {
		return 0, p.errf("expected hour: %v", err)
	}
	secs := int64(hh) * 3600
	if !p.eof() && p.peek() == ':' {
		p.pos++
		mm, err := p.number(2)
		if err != nil {
			return 0, p.errf("expected minute: %v", err)
		}
		secs += int64(mm) * 60
		if !p.eof() && p.peek() == ':' {
			p.pos++
			ss, err := p.number(2)
			if err != nil {
				return 0, p.errf("expected second: %v", err)
			}
			secs += int64(ss)
		}
	}
	if neg {
		secs = -secs
	}
	if secs < -(167*3600) || secs > 167*3600 {
		return 0, p.errf("time %d out of range", secs)
	}
	return int32(secs), nil
}

// number reads up to maxDigits decimal digits and returns their value.
func (p *parser) number(maxDigits int) (int, error) {
	start := p.pos
	for !p.eof() && isDigit(p.peek()) && p.pos-start < maxDigits {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errf("expected digit")
	}
	n := 0
	for _, c := range p.s[start:p.pos] {
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// rule parses RULE := 'M' m '.' w '.' d ['/' SIGNED_TIME]
//
//	| 'J' jday ['/' SIGNED_TIME]
//	| jday ['/' SIGNED_TIME]
func (p *parser) rule() (Rule, error) {
	r := Rule{Time: 2 * 3600}
	switch {
	case !p.eof() && p.peek() == 'M':
		p.pos++
		r.Kind = KindMonthWeekDay
		m, err := p.smallInt(1, 12)
		if err != nil {
			return Rule{}, p.errf("month: %v", err)
		}
		if err := p.expect('.'); err != nil {
			return Rule{}, err
		}
		w, err := p.smallInt(1, 5)
		if err != nil {
			return Rule{}, p.errf("week: %v", err)
		}
		if err := p.expect('.'); err != nil {
			return Rule{}, err
		}
		d, err := p.smallInt(0, 6)
		if err != nil {
			return Rule{}, p.errf("weekday: %v", err)
		}
		r.Month, r.Week, r.Day = m, w, d
	case !p.eof() && p.peek() == 'J':
		p.pos++
		r.Kind = KindJulianNoLeap
		n, err := p.smallInt(1, 365)
		if err != nil {
			return Rule{}, p.errf("julian day: %v", err)
		}
		r.JDay = n
	default:
		r.Kind = KindJulianLeap
		n, err := p.smallInt(0, 365)
		if err != nil {
			return Rule{}, p.errf("day: %v", err)
		}
		r.JDay = n
	}
	if !p.eof() && p.peek() == '/' {
		p.pos++
		t, err := p.signedTime()
		if err != nil {
			return Rule{}, err
		}
		r.Time = t
	}
	return r, nil
}

func (p *parser) smallInt(min, max int) (int, error) {
	start := p.pos
	for !p.eof() && isDigit(p.peek()) && p.pos-start < 3 {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errf("expected digit")
	}
	n := 0
	for _, c := range p.s[start:p.pos] {
		n = n*10 + int(c-'0')
	}
	if n < min || n > max {
		return 0, p.errf("%d out of range [%d,%d]", n, min, max)
	}
	return n, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }
