package shared

import (
	"strings"
	"time"

	"staybook/internal/domain/calendar"
)

// ParseStay converts request dates into the property's civil dates.
func ParseStay(loc *time.Location, checkIn, checkOut string) (calendar.Range, error) {
	in, err := calendar.ParseDate(checkIn, loc)
	if err != nil {
		return calendar.Range{}, ClassifyDomainError(err)
	}
	out, err := calendar.ParseDate(checkOut, loc)
	if err != nil {
		return calendar.Range{}, ClassifyDomainError(err)
	}
	stay, err := calendar.NewRange(in, out)
	if err != nil {
		return calendar.Range{}, ClassifyDomainError(err)
	}
	return stay, nil
}

// PrecheckStay runs the date checks that hold in every time zone, so they can
// run before the room is loaded. Plain dates compare as dates and date-times
// as instants; a mixed pair is left to ParseStay.
func PrecheckStay(checkIn, checkOut string) error {
	in, inIsDate, err := parseBound(checkIn)
	if err != nil {
		return ClassifyDomainError(err)
	}
	out, outIsDate, err := parseBound(checkOut)
	if err != nil {
		return ClassifyDomainError(err)
	}
	if inIsDate == outIsDate && !out.After(in) {
		return ClassifyDomainError(calendar.ErrInvalidRange)
	}
	return nil
}

func parseBound(s string) (time.Time, bool, error) {
	d, err := calendar.ParseDate(s, time.UTC)
	if err != nil {
		return time.Time{}, false, err
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(s)); err == nil {
		return t, false, nil
	}
	return d.Time(), true, nil
}
