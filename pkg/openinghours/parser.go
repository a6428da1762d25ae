package openinghours

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	minutesPerDay = 24 * 60
)

var weekdayAbbrev = map[string]time.Weekday{
	"su": time.Sunday,
	"mo": time.Monday,
	"tu": time.Tuesday,
	"we": time.Wednesday,
	"th": time.Thursday,
	"fr": time.Friday,
	"sa": time.Saturday,
}

// span. [start, end) in minutes from the start of the day it belongs to. end may exceed minutesPerDay when the
// span runs past midnight.
type span struct {
	start, end int
}

/*
Schedule. compiled weekly opening_hours schedule.

supported subset of the opening_hours grammar (https://wiki.openstreetmap.org/wiki/Key:opening_hours):
  - "24/7"
  - rules separated by ";", a later rule replaces the hours of the weekdays it names
  - weekday selectors: "Mo", "Mo-Fr", "Mo,We,Fr", wrapping ranges like "Fr-Mo"
  - time spans "08:00-18:00", comma separated, ending past midnight ("22:00-02:00") or at "24:00"
  - "off" / "closed"

holiday rules (PH, SH) cannot be evaluated without a holiday calendar and are skipped.
*/
type Schedule struct {
	days [7][]span
}

func Parse(spec string) (*Schedule, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrNoData
	}

	s := &Schedule{}
	for _, rule := range strings.Split(spec, ";") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		if err := s.applyRule(rule); err != nil {
			return nil, fmt.Errorf("%w: rule %q: %v", ErrInvalidSpec, rule, err)
		}
	}
	return s, nil
}

func (s *Schedule) applyRule(rule string) error {
	if rule == "24/7" {
		for d := range s.days {
			s.days[d] = []span{{0, minutesPerDay}}
		}
		return nil
	}

	lower := strings.ToLower(rule)
	if strings.HasPrefix(lower, "ph") || strings.HasPrefix(lower, "sh") {
		return nil
	}

	var (
		dayPart, timePart string
		off               bool
	)
	switch {
	case lower == "off" || lower == "closed":
		off = true
	case strings.HasSuffix(lower, " off"):
		off = true
		dayPart = rule[:len(rule)-len(" off")]
	case strings.HasSuffix(lower, " closed"):
		off = true
		dayPart = rule[:len(rule)-len(" closed")]
	default:
		idx := strings.IndexFunc(rule, unicode.IsDigit)
		if idx == -1 {
			return fmt.Errorf("no time span")
		}
		dayPart, timePart = rule[:idx], rule[idx:]
	}

	days, err := parseWeekdays(dayPart)
	if err != nil {
		return err
	}

	var spans []span
	if !off {
		spans, err = parseSpans(timePart)
		if err != nil {
			return err
		}
	}

	for _, d := range days {
		s.days[d] = spans
	}
	return nil
}

// parseWeekdays. empty selector means every day.
func parseWeekdays(sel string) ([]time.Weekday, error) {
	sel = strings.ReplaceAll(strings.TrimSpace(sel), " ", "")
	if sel == "" {
		return []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
			time.Friday, time.Saturday}, nil
	}

	seen := make(map[time.Weekday]struct{}, 7)
	days := make([]time.Weekday, 0, 7)
	add := func(d time.Weekday) {
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			days = append(days, d)
		}
	}

	for _, part := range strings.Split(sel, ",") {
		from, to, isRange := strings.Cut(part, "-")
		start, ok := weekdayAbbrev[strings.ToLower(from)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", from)
		}
		if !isRange {
			add(start)
			continue
		}
		end, ok := weekdayAbbrev[strings.ToLower(to)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", to)
		}
		for d := start; ; d = (d + 1) % 7 {
			add(d)
			if d == end {
				break
			}
		}
	}
	return days, nil
}

func parseSpans(timePart string) ([]span, error) {
	timePart = strings.ReplaceAll(strings.TrimSpace(timePart), " ", "")
	if timePart == "24/7" {
		return []span{{0, minutesPerDay}}, nil
	}

	spans := make([]span, 0, 2)
	for _, part := range strings.Split(timePart, ",") {
		from, to, ok := strings.Cut(part, "-")
		if !ok {
			return nil, fmt.Errorf("time span %q without end", part)
		}
		start, err := parseClock(from)
		if err != nil {
			return nil, err
		}
		end, err := parseClock(to)
		if err != nil {
			return nil, err
		}
		if start >= minutesPerDay {
			return nil, fmt.Errorf("time span %q starts at 24:00", part)
		}
		if end <= start {
			end += minutesPerDay
		}
		spans = append(spans, span{start, end})
	}
	return spans, nil
}

// parseClock. "HH:MM" -> minutes since midnight, 24:00 allowed.
func parseClock(clock string) (int, error) {
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid time %q", clock)
	}
	return h*60 + m, nil
}

// IsOpen. evaluated in the location of at.
func (s *Schedule) IsOpen(at time.Time) bool {
	minute := at.Hour()*60 + at.Minute()
	today := at.Weekday()
	for _, sp := range s.days[today] {
		if minute >= sp.start && minute < sp.end {
			return true
		}
	}

	yesterday := (today + 6) % 7
	for _, sp := range s.days[yesterday] {
		if minute+minutesPerDay >= sp.start && minute+minutesPerDay < sp.end {
			return true
		}
	}
	return false
}

// Parser. Oracle that compiles the specification on every query.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) IsOpen(spec string, at time.Time) (bool, error) {
	s, err := Parse(spec)
	if err != nil {
		return false, err
	}
	return s.IsOpen(at), nil
}
