package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateOnly wraps time.Time for calendar-date columns (ETA, gate-out)
// so we can control both JSON un/marshaling and SQL driver encoding.
// The time-of-day part is always midnight UTC.
type DateOnly time.Time

const dateOnlyLayout = "2006-01-02"

// NewDate builds a DateOnly from year/month/day.
func NewDate(year int, month time.Month, day int) DateOnly {
	return DateOnly(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) DateOnly {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// UnmarshalJSON accepts "2006-01-02" or a full RFC3339 timestamp
// (some clients send the latter; only the date part is kept).
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		*d = DateOnly(t)
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("DateOnly.UnmarshalJSON: cannot parse %q: %w", s, err)
	}
	*d = DateOf(t)
	return nil
}

// MarshalJSON always emits "2006-01-02".
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(dateOnlyLayout))
}

// Value implements driver.Valuer so GORM/pgx can turn DateOnly
// into a SQL DATE parameter.
func (d DateOnly) Value() (driver.Value, error) {
	return time.Time(d), nil
}

// Scan implements sql.Scanner so GORM can read DATE columns back.
func (d *DateOnly) Scan(src interface{}) error {
	if src == nil {
		*d = DateOnly(time.Time{})
		return nil
	}

	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("DateOnly.Scan: unsupported type %T", src)
	}
}

// Drivers differ in how they hand DATE columns back: postgres gives a
// time.Time, sqlite a text datetime.
func (d *DateOnly) scanString(s string) error {
	for _, layout := range []string{
		dateOnlyLayout,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = DateOf(t)
			return nil
		}
	}
	return fmt.Errorf("DateOnly.Scan: cannot parse %q", s)
}

// Time returns the underlying time.Time (midnight UTC).
func (d DateOnly) Time() time.Time { return time.Time(d) }

// IsZero reports whether the date is unset.
func (d DateOnly) IsZero() bool { return time.Time(d).IsZero() }

// ISO returns the ISO-8601 date string.
func (d DateOnly) ISO() string { return time.Time(d).Format(dateOnlyLayout) }

// Display returns the human-readable form used in tracking responses,
// e.g. "January 02, 2006".
func (d DateOnly) Display() string { return time.Time(d).Format("January 02, 2006") }

// Before reports whether d is strictly before other.
func (d DateOnly) Before(other DateOnly) bool {
	return time.Time(d).Before(time.Time(other))
}

// DaysSince returns the whole number of days from other to d
// (negative when d is earlier).
func (d DateOnly) DaysSince(other DateOnly) int {
	return int(time.Time(d).Sub(time.Time(other)).Hours() / 24)
}
