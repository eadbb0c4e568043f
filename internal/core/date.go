package core

import "time"

type (
	// Date is a calendar day. The embedded time is always midnight UTC so
	// two Dates for the same day compare equal regardless of origin.
	Date struct {
		time.Time
	}

	// MonthKey identifies a calendar month as "YYYY-MM".
	MonthKey string
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO date string ("2006-01-02").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t.UTC()}, nil
}

// DateOf truncates an instant to its calendar day in UTC.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), int(u.Month()), u.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as an int.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// MonthKey returns the month the date falls in.
func (d Date) MonthKey() MonthKey {
	return MonthKey(d.Format("2006-01"))
}

// MonthKeyAt returns the month key for an arbitrary instant, interpreted
// in UTC like everything else in this package.
func MonthKeyAt(t time.Time) MonthKey {
	return MonthKey(t.UTC().Format("2006-01"))
}

func (k MonthKey) String() string {
	return string(k)
}

// Time returns the first instant of the month, midnight UTC on the 1st.
// The bool is false when the key is not a well-formed "YYYY-MM".
func (k MonthKey) Time() (time.Time, bool) {
	t, err := time.Parse("2006-01", string(k))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
