package core

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrEmptyName      = errors.New("empty purchase name")
	ErrNameTooLong    = errors.New("purchase name too long (max 200 characters)")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("negative amount")
	ErrInvalidMonth   = errors.New("invalid month")
)

// Purchase is an immutable revolving-credit purchase. Installments and
// MonthlyPayment are derived from Amount once, at creation, and stay fixed
// even if the classification tiers later change.
type Purchase struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Amount         Money  `json:"amount"`
	Date           Date   `json:"date"`
	Installments   int    `json:"installments"`
	MonthlyPayment Money  `json:"monthlyPayment"`
}

func (p Purchase) Validate() error {
	if len(strings.TrimSpace(p.Name)) == 0 {
		return ErrEmptyName
	}
	if len(p.Name) > 200 {
		return ErrNameTooLong
	}
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if err := p.Date.Validate(); err != nil {
		return err
	}
	if p.Installments < 0 {
		return errors.New("negative installment count")
	}
	return nil
}

// Ledger maps a month to the total cash applied in that month across all
// purchases. Amounts are non-negative; entries are never deleted.
type Ledger map[Month]Money

func (l Ledger) Validate() error {
	for m, amount := range l {
		if err := m.Validate(); err != nil {
			return err
		}
		if amount.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}

// SortedMonths returns the ledger's months in ascending chronological order.
func (l Ledger) SortedMonths() []Month {
	months := make([]Month, 0, len(l))
	for m := range l {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for m, amount := range l {
		out[m] = amount
	}
	return out
}
