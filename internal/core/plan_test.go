package core

import (
	"testing"
	"time"
)

func TestInstallmentCountTiers(t *testing.T) {
	cases := []struct {
		amount string
		want   int
	}{
		{"50", 0},
		{"100", 0},
		{"100.01", 3},
		{"300", 3},
		{"300.01", 6},
		{"600", 6},
		{"600.01", 9},
		{"1000", 9},
		{"1200", 9},
		{"1200.01", 12},
		{"1800", 12},
		{"1800.01", 18},
		{"2400", 18},
		{"2400.01", 24},
		{"9999", 24},
	}
	for _, tc := range cases {
		amount, err := ParseMoney(tc.amount)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.amount, err)
		}
		if got := InstallmentCount(amount); got != tc.want {
			t.Fatalf("InstallmentCount(%s) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestInstallmentCountMonotonic(t *testing.T) {
	prev := 0
	for cents := int64(1); cents <= 300_000; cents += 97 {
		got := InstallmentCount(Money{Cents: cents})
		if got < prev {
			t.Fatalf("installment count decreased at %d cents: %d -> %d", cents, prev, got)
		}
		prev = got
	}
}

func TestMonthlyPaymentFor(t *testing.T) {
	cases := []struct {
		amount       string
		installments int
		want         string
	}{
		{"1000", 9, "111.11"},
		{"300", 3, "100.00"},
		{"100.01", 3, "33.34"}, // 33.336... rounds up
		{"50", 0, "0.00"},
		{"2500", 24, "104.17"},
	}
	for _, tc := range cases {
		amount, _ := ParseMoney(tc.amount)
		got := MonthlyPaymentFor(amount, tc.installments)
		if got.String() != tc.want {
			t.Fatalf("MonthlyPaymentFor(%s, %d) = %s, want %s", tc.amount, tc.installments, got, tc.want)
		}
	}
}

// The total across all installments may deviate from the amount by at most
// half a cent per installment.
func TestMonthlyPaymentDeviationBound(t *testing.T) {
	for cents := int64(10_001); cents < 260_000; cents += 331 {
		amount := Money{Cents: cents}
		n := InstallmentCount(amount)
		if n == 0 {
			continue
		}
		pay := MonthlyPaymentFor(amount, n)
		diff := pay.Cents*int64(n) - cents
		if diff < 0 {
			diff = -diff
		}
		if 2*diff > int64(n) {
			t.Fatalf("amount %d cents, %d installments: drift %d cents exceeds bound", cents, n, diff)
		}
	}
}

func TestFirstPaymentMonth(t *testing.T) {
	cases := []struct {
		date string
		want Month
	}{
		{"2024-01-15", Month{2024, time.February}},
		{"2024-12-31", Month{2025, time.January}},
		{"2024-12-01", Month{2025, time.January}},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.date)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.date, err)
		}
		if got := FirstPaymentMonth(d); got != tc.want {
			t.Fatalf("FirstPaymentMonth(%s) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestScheduleWindow(t *testing.T) {
	p := testPurchase("p1", "tv", "1000", "2024-01-15")
	first, last := ScheduleWindow(p)
	if first != (Month{2024, time.February}) {
		t.Fatalf("first = %v", first)
	}
	if last != (Month{2024, time.October}) {
		t.Fatalf("last = %v", last)
	}
	if InWindow(p, Month{2024, time.January}) {
		t.Fatal("purchase month must be outside the payment window")
	}
	if !InWindow(p, Month{2024, time.February}) || !InWindow(p, Month{2024, time.October}) {
		t.Fatal("window bounds must be inclusive")
	}
	if InWindow(p, Month{2024, time.November}) {
		t.Fatal("month after window end must be outside")
	}
}

func TestScheduleWindowDueInFull(t *testing.T) {
	p := testPurchase("p1", "book", "50", "2024-03-10")
	first, last := ScheduleWindow(p)
	own := Month{2024, time.March}
	if first != own || last != own {
		t.Fatalf("window = [%v, %v], want own month only", first, last)
	}
	if !InWindow(p, own) {
		t.Fatal("due-in-full purchase must be eligible in its own month")
	}
	if InWindow(p, own.AddMonths(1)) {
		t.Fatal("due-in-full purchase has a single-month window")
	}
}

// testPurchase builds a purchase with its plan snapshotted the way the
// submission path does.
func testPurchase(id, name, amount, date string) Purchase {
	m, err := ParseMoney(amount)
	if err != nil {
		panic(err)
	}
	d, err := ParseDate(date)
	if err != nil {
		panic(err)
	}
	installments, monthly := NewPurchasePlan(m)
	return Purchase{
		ID:             id,
		Name:           name,
		Amount:         m,
		Date:           d,
		Installments:   installments,
		MonthlyPayment: monthly,
	}
}
