package core

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Year != 2024 || m.Month != time.January {
		t.Fatalf("got %v", m)
	}

	for _, bad := range []string{"", "2024", "2024-13", "2024-00", "24-01", "2024/01", "2024-1"} {
		if _, err := ParseMonth(bad); err == nil {
			t.Fatalf("ParseMonth(%q) expected error", bad)
		}
	}
}

func TestMonthAddMonths(t *testing.T) {
	cases := []struct {
		start Month
		n     int
		want  Month
	}{
		{Month{2024, time.January}, 1, Month{2024, time.February}},
		{Month{2024, time.December}, 1, Month{2025, time.January}},
		{Month{2024, time.January}, 12, Month{2025, time.January}},
		{Month{2024, time.March}, -3, Month{2023, time.December}},
		{Month{2024, time.June}, 0, Month{2024, time.June}},
	}
	for _, tc := range cases {
		if got := tc.start.AddMonths(tc.n); got != tc.want {
			t.Fatalf("%v.AddMonths(%d) = %v, want %v", tc.start, tc.n, got, tc.want)
		}
	}
}

func TestMonthOrdering(t *testing.T) {
	jan := Month{2024, time.January}
	feb := Month{2024, time.February}
	if !jan.Before(feb) {
		t.Fatal("jan should be before feb")
	}
	if feb.Before(jan) {
		t.Fatal("feb should not be before jan")
	}
	if jan.Compare(jan) != 0 {
		t.Fatal("month should compare equal to itself")
	}
	if MonthsBetween(jan, feb) != 1 {
		t.Fatalf("MonthsBetween = %d, want 1", MonthsBetween(jan, feb))
	}
	if MonthsBetween(feb, jan) != -1 {
		t.Fatalf("MonthsBetween = %d, want -1", MonthsBetween(feb, jan))
	}
	if MonthsBetween(Month{2023, time.November}, Month{2024, time.February}) != 3 {
		t.Fatal("cross-year month distance wrong")
	}
}

func TestMonthText(t *testing.T) {
	m := Month{2024, time.March}
	if m.String() != "2024-03" {
		t.Fatalf("String = %q", m.String())
	}
	if m.Display() != "March 2024" {
		t.Fatalf("Display = %q", m.Display())
	}

	var parsed Month
	if err := parsed.UnmarshalText([]byte("2024-03")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed != m {
		t.Fatalf("round trip got %v", parsed)
	}
}
