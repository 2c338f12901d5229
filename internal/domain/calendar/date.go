package calendar

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("check-out must be after check-in")
	ErrInvalidMonth = errors.New("invalid month")
)

// Date is a civil calendar date. It is stored as midnight UTC so that day
// arithmetic never crosses a DST transition.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as observed in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return NewDate(lt.Year(), lt.Month(), lt.Day())
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 date-time; date-times are
// converted to their local date in loc.
func ParseDate(s string, loc *time.Location) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return NewDate(t.Year(), t.Month(), t.Day()), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t, loc), nil
}

// ParseCivilDate accepts only YYYY-MM-DD. It is used where no time zone is
// known to turn a date-time into a local date.
func ParseCivilDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q, want YYYY-MM-DD", ErrInvalidDate, s)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) AddDays(n int) Date           { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Before(o Date) bool           { return d.t.Before(o.t) }
func (d Date) After(o Date) bool            { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool            { return d.t.Equal(o.t) }
func (d Date) IsZero() bool                 { return d.t.IsZero() }
func (d Date) Weekday() time.Weekday        { return d.t.Weekday() }
func (d Date) Year() int                    { return d.t.Year() }
func (d Date) Month() time.Month            { return d.t.Month() }
func (d Date) Day() int                     { return d.t.Day() }
func (d Date) Time() time.Time              { return d.t }
func (d Date) String() string               { return d.t.Format(dateLayout) }
func (d Date) Compare(o Date) int           { return d.t.Compare(o.t) }
func (d Date) IsWeekend() bool              { return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday }
func (d Date) InMonth(m Month) bool         { return d.Year() == m.Year && d.Month() == m.Month }
func (d Date) DaysUntil(o Date) int         { return int(o.t.Sub(d.t) / (24 * time.Hour)) }
func (d Date) MonthOf() Month               { return Month{Year: d.Year(), Month: d.Month()} }
func (d Date) NotAfter(o Date) bool         { return !d.After(o) }
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseCivilDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FromTime keeps the Y-M-D fields of t and drops everything else.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Range is the half-open interval [Start, End).
type Range struct {
	Start Date
	End   Date
}

func NewRange(start, end Date) (Range, error) {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

// SingleDay is the range [d, d+1).
func SingleDay(d Date) Range {
	return Range{Start: d, End: d.AddDays(1)}
}

func (r Range) Nights() int {
	return r.Start.DaysUntil(r.End)
}

// Overlaps reports whether the two half-open ranges share at least one night.
// Adjacent ranges do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && d.Before(r.End)
}

// Days yields every date from Start (inclusive) to End (exclusive).
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.Start; d.Before(r.End); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}
}

func (r Range) String() string {
	return fmt.Sprintf("[%s,%s)", r.Start, r.End)
}

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) First() Date { return NewDate(m.Year, m.Month, 1) }

func (m Month) Range() Range {
	first := m.First()
	return Range{Start: first, End: Date{t: first.t.AddDate(0, 1, 0)}}
}

func (m Month) Days() int { return m.Range().Nights() }

func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)) }

// MonthsSpanned lists every month touched by the nights of r.
func (r Range) MonthsSpanned() []Month {
	var months []Month
	last := r.End.AddDays(-1)
	for m := r.Start.MonthOf(); ; {
		months = append(months, m)
		if m == last.MonthOf() {
			break
		}
		m = Date{t: m.First().t.AddDate(0, 1, 0)}.MonthOf()
	}
	return months
}
