package core

// Installment tier bounds in cents. Each tier's upper bound is inclusive;
// amounts at or below the lowest bound are due in full with no schedule.
var installmentTiers = []struct {
	maxCents     int64
	installments int
}{
	{10_000, 0},
	{30_000, 3},
	{60_000, 6},
	{120_000, 9},
	{180_000, 12},
	{240_000, 18},
}

const maxInstallments = 24

// InstallmentCount classifies a purchase amount into its installment count.
func InstallmentCount(amount Money) int {
	for _, tier := range installmentTiers {
		if amount.Cents <= tier.maxCents {
			return tier.installments
		}
	}
	return maxInstallments
}

// MonthlyPaymentFor derives the fixed monthly payment for an amount split
// into the given number of installments, rounding half away from zero to
// cents. The rounding remainder left after the final installment is accepted
// as drift; no reconciliation is performed.
func MonthlyPaymentFor(amount Money, installments int) Money {
	if installments <= 0 {
		return Money{}
	}
	n := int64(installments)
	q := amount.Cents / n
	if (amount.Cents%n)*2 >= n {
		q++
	}
	return Money{Cents: q}
}

// NewPurchasePlan snapshots the installment plan for an amount: count and
// monthly payment as stored on the purchase at creation time.
func NewPurchasePlan(amount Money) (installments int, monthlyPayment Money) {
	installments = InstallmentCount(amount)
	return installments, MonthlyPaymentFor(amount, installments)
}

// FirstPaymentMonth is the calendar month immediately following the purchase
// month. The day of month is discarded.
func FirstPaymentMonth(d Date) Month {
	return d.MonthKey().AddMonths(1)
}

// ScheduleWindow returns the inclusive span of months during which a
// purchase's installments fall due: Installments consecutive months starting
// the month after purchase, or just the purchase's own month when the
// purchase is due in full.
func ScheduleWindow(p Purchase) (first, last Month) {
	if p.Installments <= 0 {
		m := p.Date.MonthKey()
		return m, m
	}
	first = FirstPaymentMonth(p.Date)
	return first, first.AddMonths(p.Installments - 1)
}

// InWindow reports whether a month falls inside the purchase's schedule
// window, i.e. whether the purchase can receive cash in that month.
func InWindow(p Purchase, m Month) bool {
	first, last := ScheduleWindow(p)
	return !m.Before(first) && !last.Before(m)
}
