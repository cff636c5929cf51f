package core

import (
	"sort"
	"time"
)

// Residues below this many cents are shown as fully paid. Masks trailing
// dust from the monthly payment rounding.
const paidOffEpsilonCents = 5

// ScheduleRow is one (purchase, month) pair in the display timeline.
// Identity figures are carried only on the row at the purchase's own month
// (First == true); later rows leave them blank to avoid repetition.
type ScheduleRow struct {
	PurchaseID    string `json:"purchaseId"`
	Month         Month  `json:"month"`
	MonthDisplay  string `json:"monthYear"`
	PaidThisMonth Money  `json:"amountPaidThisMonth"`
	Projected     Money  `json:"projectedMonthlyPayment"`
	First         bool   `json:"isFirstRow"`
	PurchaseDate  Date   `json:"purchaseDate"`

	// Identity figures, set only when First.
	Name            string `json:"purchaseName,omitempty"`
	Amount          Money  `json:"amount"`
	Installments    int    `json:"installments"`
	AmountLeft      Money  `json:"amountLeft"`
	MonthsElapsed   int    `json:"monthsPassed"`
	MonthsRemaining int    `json:"monthsLeft"`
}

// BuildSchedule projects the full display timeline for a snapshot: one row
// per purchase per month from the purchase's own month through the end of
// its schedule window. Rows across purchases are interleaved into a single
// chronological timeline, ordered by month, then purchase date, then ID.
//
// now anchors the elapsed/remaining month counters; callers pass the current
// time so the projection itself stays pure.
func BuildSchedule(purchases []Purchase, ledger Ledger, now time.Time) []ScheduleRow {
	alloc := Allocate(purchases, ledger)
	current := MonthOf(now)

	var rows []ScheduleRow
	for _, p := range purchases {
		purchaseMonth := p.Date.MonthKey()

		// installments+1 rows when installments > 0, else exactly one.
		for i := 0; i <= p.Installments; i++ {
			month := purchaseMonth.AddMonths(i)
			row := ScheduleRow{
				PurchaseID:    p.ID,
				Month:         month,
				MonthDisplay:  month.Display(),
				PaidThisMonth: alloc.Applied(p.ID, month),
				Projected:     ProjectedForMonth(purchases, month),
				First:         i == 0,
				PurchaseDate:  p.Date,
			}
			if row.First {
				row.Name = p.Name
				row.Amount = p.Amount
				row.Installments = p.Installments
				row.AmountLeft = AmountLeft(p, alloc)
				row.MonthsElapsed = clampNonNegative(MonthsBetween(purchaseMonth, current))
				// Before the first payment month nothing has elapsed yet, so
				// the remaining count caps at the installment count.
				sinceFirst := clampNonNegative(MonthsBetween(FirstPaymentMonth(p.Date), current))
				row.MonthsRemaining = clampNonNegative(p.Installments - sinceFirst)
			}
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := a.Month.Compare(b.Month); c != 0 {
			return c < 0
		}
		if !a.PurchaseDate.Equal(b.PurchaseDate.Time) {
			return a.PurchaseDate.Before(b.PurchaseDate.Time)
		}
		return a.PurchaseID < b.PurchaseID
	})
	return rows
}

// ProjectedForMonth is the planned aggregate payment for a month: the sum of
// monthly payments over every purchase whose schedule window includes it,
// independent of what was actually paid.
func ProjectedForMonth(purchases []Purchase, m Month) Money {
	var sum int64
	for _, p := range purchases {
		if InWindow(p, m) {
			sum += p.MonthlyPayment.Cents
		}
	}
	return Money{Cents: sum}
}

// AmountLeft is the remaining unpaid balance on a purchase: floored at zero,
// with residues below the paid-off epsilon treated as fully paid.
func AmountLeft(p Purchase, alloc Allocation) Money {
	left := p.Amount.Cents - alloc.Total(p.ID).Cents
	if left < paidOffEpsilonCents {
		return Money{}
	}
	return Money{Cents: left}
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
