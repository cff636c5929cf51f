package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestPurchaseValidate(t *testing.T) {
	good := testPurchase("p1", "tv", "1000", "2024-01-15")
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Purchase{
		{ID: "x", Name: "", Amount: Money{Cents: 100}, Date: NewDate(2024, time.January, 1)},
		{ID: "x", Name: "   ", Amount: Money{Cents: 100}, Date: NewDate(2024, time.January, 1)},
		{ID: "x", Name: strings.Repeat("a", 201), Amount: Money{Cents: 100}, Date: NewDate(2024, time.January, 1)},
		{ID: "x", Name: "ok", Amount: Money{Cents: 0}, Date: NewDate(2024, time.January, 1)},
		{ID: "x", Name: "ok", Amount: Money{Cents: -100}, Date: NewDate(2024, time.January, 1)},
		{ID: "x", Name: "ok", Amount: Money{Cents: 100}, Date: Date{}},
	}
	for i, p := range bads {
		if err := p.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestLedgerValidate(t *testing.T) {
	good := Ledger{
		Month{2024, time.January}: Money{Cents: 0},
		Month{2024, time.March}:   Money{Cents: 5000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := Ledger{Month{2024, time.January}: Money{Cents: -1}}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for negative entry")
	}
}

func TestLedgerSortedMonths(t *testing.T) {
	l := Ledger{
		Month{2024, time.May}:      Money{Cents: 1},
		Month{2023, time.December}: Money{Cents: 1},
		Month{2024, time.January}:  Money{Cents: 1},
	}
	months := l.SortedMonths()
	for i := 1; i < len(months); i++ {
		if months[i].Before(months[i-1]) {
			t.Fatalf("months out of order: %v", months)
		}
	}
}

func TestLedgerJSONShape(t *testing.T) {
	l := Ledger{Month{2024, time.March}: Money{Cents: 12000}}
	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"2024-03":120.00}` {
		t.Fatalf("got %s", data)
	}

	var back Ledger
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back[Month{2024, time.March}].Cents != 12000 {
		t.Fatalf("round trip lost the amount: %v", back)
	}
}

func TestPurchaseJSONShape(t *testing.T) {
	p := testPurchase("abc", "laptop", "1000", "2024-01-15")
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Purchase
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != p {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, p)
	}
}
