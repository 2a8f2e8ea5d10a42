// Package businessday maps calendar dates in the restaurant's time zone to
// UTC instant ranges. Orders and dispatch items are bucketed by the
// business date of their creation instant.
package businessday

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without /usr/share/zoneinfo

	"github.com/pos-manage/api/internal/ledger"
)

// Layout is the wire format of a business date.
const Layout = "2006-01-02"

// DefaultZone is used when no zone is configured.
const DefaultZone = "Asia/Taipei"

// Load resolves an IANA zone name. Empty means DefaultZone.
func Load(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load business time zone %q: %w", name, err)
	}
	return loc, nil
}

// Today returns the business date containing now.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(Layout)
}

// Of returns the business date an instant falls on.
func Of(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Layout)
}

// Range returns the half-open UTC interval [start, end) covered by date.
// A malformed date yields ledger.ErrValidation.
func Range(date string, loc *time.Location) (start, end time.Time, err error) {
	d, err := time.ParseInLocation(Layout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ledger.ErrValidation)
	}
	return d.UTC(), d.AddDate(0, 0, 1).UTC(), nil
}

// Span returns the half-open UTC interval from the start of startDate to the
// end of endDate, both inclusive as business dates.
func Span(startDate, endDate string, loc *time.Location) (start, end time.Time, err error) {
	start, _, err = Range(startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date: %w", err)
	}
	_, end, err = Range(endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date: %w", err)
	}
	if end.Before(start) || end.Equal(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date must not be before start_date", ledger.ErrValidation)
	}
	return start, end, nil
}
