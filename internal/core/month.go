package core

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// Month is a calendar year+month key with no day component. It identifies
// both ledger entries and schedule window positions.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth builds a Month, normalizing out-of-range month values the way
// time.Date does (year 2024 month 13 becomes 2025-01).
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// MonthOf returns the month a time falls in.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// AddMonths returns the month n calendar months later (earlier for negative n).
func (m Month) AddMonths(n int) Month {
	return NewMonth(m.Year, m.Month+time.Month(n))
}

// Index maps the month onto a linear scale so that consecutive months differ
// by exactly one. Used for ordering and month-distance arithmetic.
func (m Month) Index() int {
	return m.Year*12 + int(m.Month) - 1
}

// Before reports whether m is strictly earlier than o.
func (m Month) Before(o Month) bool {
	return m.Index() < o.Index()
}

// Compare returns -1, 0, or 1 ordering m against o.
func (m Month) Compare(o Month) int {
	switch {
	case m.Index() < o.Index():
		return -1
	case m.Index() > o.Index():
		return 1
	default:
		return 0
	}
}

// MonthsBetween returns the signed number of calendar months from one month
// to another.
func MonthsBetween(from, to Month) int {
	return to.Index() - from.Index()
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

func (m Month) Validate() error {
	if m.Year < 1 || m.Month < time.January || m.Month > time.December {
		return ErrInvalidMonth
	}
	return nil
}

// String renders the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Display renders the month as "January 2006" for schedule views.
func (m Month) Display() string {
	return fmt.Sprintf("%s %d", m.Month.String(), m.Year)
}

// MarshalText makes Month usable as a JSON object key, so a Ledger marshals
// to the original {"YYYY-MM": amount} shape.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
