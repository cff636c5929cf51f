package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"rate/internal/core"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	purchases []core.Purchase
	ledger    core.Ledger

	appendErr error
	snapErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{ledger: core.Ledger{}}
}

func (f *fakeStore) AppendPurchase(_ context.Context, p core.Purchase) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.purchases = append(f.purchases, p)
	return nil
}

func (f *fakeStore) ListPurchases(_ context.Context) ([]core.Purchase, error) {
	return f.purchases, nil
}

func (f *fakeStore) ReadLedger(_ context.Context) (core.Ledger, error) {
	return f.ledger.Clone(), nil
}

func (f *fakeStore) IncrementMonth(_ context.Context, m core.Month, amount core.Money) (core.Money, error) {
	total := f.ledger[m].Add(amount)
	f.ledger[m] = total
	return total, nil
}

func (f *fakeStore) ReplaceMonth(_ context.Context, m core.Month, amount core.Money) (core.Money, error) {
	if amount.IsNegative() {
		amount = core.Money{}
	}
	f.ledger[m] = amount
	return amount, nil
}

func (f *fakeStore) Snapshot(_ context.Context) ([]core.Purchase, core.Ledger, error) {
	if f.snapErr != nil {
		return nil, nil, f.snapErr
	}
	return f.purchases, f.ledger.Clone(), nil
}

type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) PublishPurchaseSync(_ context.Context, purchaseID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, purchaseID)
	return nil
}

func TestCreatePurchaseDerivesPlan(t *testing.T) {
	st := newFakeStore()
	pub := &fakePublisher{}
	svc := NewPurchaseService(st, pub)

	p, err := svc.CreatePurchase(context.Background(), "laptop", core.Money{Cents: 100_000}, core.NewDate(2024, time.January, 15))
	if err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}

	if p.ID == "" {
		t.Error("purchase should get a generated ID")
	}
	if p.Installments != 9 {
		t.Errorf("installments = %d, want 9", p.Installments)
	}
	if p.MonthlyPayment.Cents != 11_111 {
		t.Errorf("monthly payment = %d cents, want 11111", p.MonthlyPayment.Cents)
	}
	if len(st.purchases) != 1 {
		t.Fatalf("stored %d purchases, want 1", len(st.purchases))
	}
	if len(pub.published) != 1 || pub.published[0] != p.ID {
		t.Errorf("published = %v, want [%s]", pub.published, p.ID)
	}
}

func TestCreatePurchaseRejectsInvalid(t *testing.T) {
	svc := NewPurchaseService(newFakeStore(), nil)

	_, err := svc.CreatePurchase(context.Background(), "  ", core.Money{Cents: 5000}, core.NewDate(2024, time.March, 1))
	if !errors.Is(err, core.ErrEmptyName) {
		t.Errorf("blank name: err = %v, want ErrEmptyName", err)
	}

	_, err = svc.CreatePurchase(context.Background(), "coffee", core.Money{Cents: 0}, core.NewDate(2024, time.March, 1))
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("zero amount: err = %v, want ErrInvalidAmount", err)
	}
}

func TestCreatePurchaseSurvivesPublishFailure(t *testing.T) {
	st := newFakeStore()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewPurchaseService(st, pub)

	p, err := svc.CreatePurchase(context.Background(), "tv", core.Money{Cents: 150_000}, core.NewDate(2024, time.February, 3))
	if err != nil {
		t.Fatalf("publish failure must not fail the request: %v", err)
	}
	if len(st.purchases) != 1 || st.purchases[0].ID != p.ID {
		t.Error("purchase should still be stored locally")
	}
}

func TestCreatePurchaseWithoutPublisher(t *testing.T) {
	svc := NewPurchaseService(newFakeStore(), nil)
	if _, err := svc.CreatePurchase(context.Background(), "book", core.Money{Cents: 8000}, core.NewDate(2024, time.May, 9)); err != nil {
		t.Fatalf("nil publisher should be tolerated: %v", err)
	}
}

func TestRecordPayment(t *testing.T) {
	st := newFakeStore()
	svc := NewLedgerService(st)
	m := core.Month{Year: 2024, Month: time.March}

	total, err := svc.RecordPayment(context.Background(), m, core.Money{Cents: 5000})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if total.Cents != 5000 {
		t.Errorf("total = %d, want 5000", total.Cents)
	}

	total, err = svc.RecordPayment(context.Background(), m, core.Money{Cents: 2500})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if total.Cents != 7500 {
		t.Errorf("total after second payment = %d, want 7500", total.Cents)
	}
}

func TestRecordPaymentRejectsNegative(t *testing.T) {
	svc := NewLedgerService(newFakeStore())
	m := core.Month{Year: 2024, Month: time.March}

	_, err := svc.RecordPayment(context.Background(), m, core.Money{Cents: -100})
	if !errors.Is(err, core.ErrNegativeAmount) {
		t.Errorf("err = %v, want ErrNegativeAmount", err)
	}
}

func TestCorrectMonthOverwrites(t *testing.T) {
	st := newFakeStore()
	svc := NewLedgerService(st)
	m := core.Month{Year: 2024, Month: time.June}

	if _, err := svc.RecordPayment(context.Background(), m, core.Money{Cents: 9000}); err != nil {
		t.Fatal(err)
	}

	total, err := svc.CorrectMonth(context.Background(), m, core.Money{Cents: 4000})
	if err != nil {
		t.Fatalf("CorrectMonth: %v", err)
	}
	if total.Cents != 4000 {
		t.Errorf("total = %d, want 4000", total.Cents)
	}

	total, err = svc.CorrectMonth(context.Background(), m, core.Money{Cents: -500})
	if err != nil {
		t.Fatalf("CorrectMonth negative: %v", err)
	}
	if total.Cents != 0 {
		t.Errorf("negative correction should clamp to 0, got %d", total.Cents)
	}
}

func TestBuildScheduleFromSnapshot(t *testing.T) {
	st := newFakeStore()
	st.purchases = []core.Purchase{{
		ID:             "p1",
		Name:           "laptop",
		Amount:         core.Money{Cents: 100_000},
		Date:           core.NewDate(2024, time.January, 15),
		Installments:   9,
		MonthlyPayment: core.Money{Cents: 11_111},
	}}
	st.ledger = core.Ledger{
		{Year: 2024, Month: time.February}: {Cents: 11_111},
	}

	svc := NewScheduleService(st, core.Money{Cents: 500_000})
	svc.now = func() time.Time { return time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC) }

	view, err := svc.BuildSchedule(context.Background())
	if err != nil {
		t.Fatalf("BuildSchedule: %v", err)
	}

	if len(view.Rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(view.Rows))
	}
	if view.Summary.TotalRemainingDebt.Cents != 100_000-11_111 {
		t.Errorf("debt = %d, want %d", view.Summary.TotalRemainingDebt.Cents, 100_000-11_111)
	}
	if view.Summary.AvailableCredit.Cents != 500_000-(100_000-11_111) {
		t.Errorf("available credit = %d", view.Summary.AvailableCredit.Cents)
	}
}

func TestBuildSchedulePropagatesSnapshotError(t *testing.T) {
	st := newFakeStore()
	st.snapErr = errors.New("disk gone")

	svc := NewScheduleService(st, core.Money{Cents: 500_000})
	if _, err := svc.BuildSchedule(context.Background()); err == nil {
		t.Fatal("expected snapshot error to propagate")
	}
}
