package terminal

import "github.com/shopspring/decimal"

// InstallmentOption is one row of the installment schedule returned to the
// merchant: a count and the total amount due for that count.
type InstallmentOption struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// InstallmentOptions always includes {count:1, amount}. For currency=="try",
// cardType=="credit", an enabled installment policy, and amount at or above
// the policy's minimum, it additionally emits one option per count from 2
// through MaxCount. Per-count commission application is an open extension
// point (spec.md §9); this reports the total unchanged across counts.
func (t Entity) InstallmentOptions(amount decimal.Decimal, currency Currency, cardType string) []InstallmentOption {
	options := []InstallmentOption{{Count: 1, Amount: amount}}

	if currency != TRY || cardType != "credit" || !t.Installment.Enabled {
		return options
	}
	if amount.LessThan(t.Installment.MinAmount) {
		return options
	}
	for i := 2; i <= t.Installment.MaxCount; i++ {
		options = append(options, InstallmentOption{Count: i, Amount: amount})
	}
	return options
}
