package core

import "sort"

// Allocation is the derived mapping purchase -> month -> cash applied. It is
// recomputed from a (purchases, ledger) snapshot on every query and is never
// persisted.
type Allocation struct {
	applied map[string]map[Month]int64
	totals  map[string]int64
}

// Allocate distributes each ledger month's cash across purchase debts,
// month-major, in a fixed precedence order: ascending first payment month,
// tie-broken by purchase date, then by ID. The order is recomputed from
// scratch on every call, so the result is independent of input slice order.
//
// Per-month cap policy: a purchase with installments receives at most its
// fixed monthly payment in a single month; a purchase due in full is capped
// only by its outstanding debt. Cash left in a month with no eligible
// purchase stays unattributed.
func Allocate(purchases []Purchase, ledger Ledger) Allocation {
	order := precedenceOrder(purchases)

	applied := make(map[string]map[Month]int64, len(purchases))
	cumulative := make(map[string]int64, len(purchases))
	for _, p := range purchases {
		applied[p.ID] = make(map[Month]int64)
	}

	for _, month := range ledger.SortedMonths() {
		remaining := ledger[month].Cents
		if remaining <= 0 {
			continue
		}
		for _, p := range order {
			if remaining <= 0 {
				break
			}
			if !InWindow(p, month) {
				continue
			}
			debt := p.Amount.Cents - cumulative[p.ID]
			if debt <= 0 {
				continue
			}
			limit := debt
			if p.Installments > 0 {
				limit = p.MonthlyPayment.Cents
			}
			apply := min3(remaining, debt, limit)
			if apply <= 0 {
				continue
			}
			applied[p.ID][month] += apply
			cumulative[p.ID] += apply
			remaining -= apply
		}
	}

	// Per-purchase totals are summed across months once, here, rather than
	// accumulated through repeated rounded intermediates.
	totals := make(map[string]int64, len(purchases))
	for id, byMonth := range applied {
		var sum int64
		for _, cents := range byMonth {
			sum += cents
		}
		totals[id] = sum
	}

	return Allocation{applied: applied, totals: totals}
}

// Applied returns the cash applied to a purchase in a given month.
func (a Allocation) Applied(purchaseID string, m Month) Money {
	return Money{Cents: a.applied[purchaseID][m]}
}

// Total returns the cumulative cash applied to a purchase across all months.
func (a Allocation) Total(purchaseID string) Money {
	return Money{Cents: a.totals[purchaseID]}
}

// MonthTotal returns the cash distributed in a month across all purchases.
func (a Allocation) MonthTotal(m Month) Money {
	var sum int64
	for _, byMonth := range a.applied {
		sum += byMonth[m]
	}
	return Money{Cents: sum}
}

func precedenceOrder(purchases []Purchase) []Purchase {
	order := make([]Purchase, len(purchases))
	copy(order, purchases)
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if c := FirstPaymentMonth(a.Date).Compare(FirstPaymentMonth(b.Date)); c != 0 {
			return c < 0
		}
		if !a.Date.Equal(b.Date.Time) {
			return a.Date.Before(b.Date.Time)
		}
		return a.ID < b.ID
	})
	return order
}

func min3(a, b, c int64) int64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
