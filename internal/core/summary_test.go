package core

import "testing"

func TestSummarize(t *testing.T) {
	p1 := testPurchase("a", "tv", "1000", "2024-01-15")
	p2 := testPurchase("b", "book", "50", "2024-01-20")
	ledger := Ledger{
		mustMonth(t, "2024-02"): Money{Cents: cents("111.11")},
	}

	s := Summarize([]Purchase{p1, p2}, ledger, Money{Cents: cents("5000")})
	wantDebt := cents("1000") - cents("111.11") + cents("50")
	if s.TotalRemainingDebt.Cents != wantDebt {
		t.Fatalf("debt = %s, want %d cents", s.TotalRemainingDebt, wantDebt)
	}
	if s.AvailableCredit.Cents != cents("5000")-wantDebt {
		t.Fatalf("available = %s", s.AvailableCredit)
	}
}

func TestSummarizeFloorsAvailableCredit(t *testing.T) {
	p := testPurchase("a", "big", "9000", "2024-01-15")
	s := Summarize([]Purchase{p}, Ledger{}, Money{Cents: cents("5000")})
	if s.AvailableCredit.Cents != 0 {
		t.Fatalf("available = %s, want 0 when debt exceeds the limit", s.AvailableCredit)
	}
	if s.TotalRemainingDebt.Cents != cents("9000") {
		t.Fatalf("debt = %s", s.TotalRemainingDebt)
	}
}

func TestSummarizeEmptySnapshot(t *testing.T) {
	s := Summarize(nil, Ledger{}, Money{Cents: cents("5000")})
	if s.TotalRemainingDebt.Cents != 0 {
		t.Fatalf("debt = %s, want 0", s.TotalRemainingDebt)
	}
	if s.AvailableCredit.Cents != cents("5000") {
		t.Fatalf("available = %s, want the full limit", s.AvailableCredit)
	}
}
