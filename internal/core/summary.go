package core

// Summary carries the aggregate figures shown above the schedule.
type Summary struct {
	TotalRemainingDebt Money `json:"totalRemainingDebt"`
	AvailableCredit    Money `json:"availableCredit"`
	CreditLimit        Money `json:"creditLimit"`
}

// Summarize computes total remaining debt and available credit for a
// snapshot. The credit limit is an externally supplied constant, never
// derived from the data. Both figures are floored at zero.
func Summarize(purchases []Purchase, ledger Ledger, creditLimit Money) Summary {
	alloc := Allocate(purchases, ledger)

	var debt int64
	for _, p := range purchases {
		debt += AmountLeft(p, alloc).Cents
	}

	available := creditLimit.Cents - debt
	if available < 0 {
		available = 0
	}

	return Summary{
		TotalRemainingDebt: Money{Cents: debt},
		AvailableCredit:    Money{Cents: available},
		CreditLimit:        creditLimit,
	}
}
