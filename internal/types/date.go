// Package types implements special types for the Centsible backend.
package types

import (
	"database/sql"
	"database/sql/driver"
	"time"
)

// Date is a calendar date without a time component.
//
// Budgets and transactions work on whole days; all date arithmetic in the
// backend is done in UTC on this type.
type Date time.Time

// NewDate returns a new Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date a time instant falls on, in UTC.
func DateOf(t time.Time) Date {
	year, month, day := t.UTC().Date()
	return NewDate(year, month, day)
}

// Today returns the current date in UTC.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a string in RFC3339 full-date format ("2006-01-02").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format("2006-01-02")
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The date is expected as "2006-01-02"; a full RFC3339 timestamp is
// accepted and truncated to its date.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := string(data)
	if value == `""` || value == "null" {
		return nil
	}

	t, err := time.Parse(`"2006-01-02"`, value)
	if err != nil {
		t, err = time.Parse(`"`+time.RFC3339+`"`, value)
		if err != nil {
			return err
		}
	}

	*d = DateOf(t)
	return nil
}

// Scan reads the value from the database.
func (d *Date) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*d = DateOf(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (d Date) Value() (driver.Value, error) {
	year, month, day := time.Time(d).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Date) GormDataType() string {
	return "date"
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// Day returns the day of the month.
func (d Date) Day() int {
	return time.Time(d).Day()
}

// AddDays adds a number of days, which may be negative.
func (d Date) AddDays(days int) Date {
	return Date(time.Time(d).AddDate(0, 0, days))
}

// DaysUntil returns the number of whole days from d until o.
// It is negative when o is before d.
func (d Date) DaysUntil(o Date) int {
	return int(time.Time(o).Sub(time.Time(d)).Hours() / 24)
}

// Before reports whether the date d is before o.
func (d Date) Before(o Date) bool {
	return time.Time(d).Before(time.Time(o))
}

// After reports whether the date d is after o.
func (d Date) After(o Date) bool {
	return time.Time(d).After(time.Time(o))
}

// Equal reports whether d and o represent the same date.
func (d Date) Equal(o Date) bool {
	return time.Time(d).Equal(time.Time(o))
}

// FirstOfMonth returns the first day of the month d is in.
func (d Date) FirstOfMonth() Date {
	year, month, _ := time.Time(d).Date()
	return NewDate(year, month, 1)
}

// LastOfMonth returns the last day of the month d is in.
func (d Date) LastOfMonth() Date {
	year, month, _ := time.Time(d).Date()
	return Date(time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}

// MonthOfDate returns the Month the date is in.
func (d Date) MonthOfDate() Month {
	return MonthOf(time.Time(d))
}
