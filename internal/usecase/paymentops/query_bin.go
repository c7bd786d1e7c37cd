package paymentops

import (
	"context"

	"github.com/shopspring/decimal"

	"vpos-orchestrator/internal/domain/terminal"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

// BinQuery is the input to QueryBin.
type BinQuery struct {
	BIN      string
	Amount   decimal.Decimal
	Currency terminal.Currency
	Company  string
}

// Pos identifies the terminal a BIN query would route a payment to, per
// spec.md §4.6's flattened `pos:{id,name,bankCode,provider}` view.
type Pos struct {
	ID       string
	Name     string
	BankCode terminal.BankCode
	Provider terminal.Provider
}

// BinQueryResult reports the resolved acquirer and the installment plan it
// would offer for amount/currency, without creating any transaction.
type BinQueryResult struct {
	Bank         terminal.BankCode
	Brand        string
	CardType     string
	Family       string
	Country      string
	Pos          Pos
	Installments []terminal.InstallmentOption
}

// QueryBin resolves a BIN and previews the acquirer/installment decision a
// subsequent CreatePayment would make, per spec.md §4.2.
func (s *Service) QueryBin(ctx context.Context, q BinQuery) (BinQueryResult, error) {
	info, err := s.binResolver.Resolve(ctx, q.BIN)
	if err != nil {
		return BinQueryResult{}, err
	}

	candidates, err := s.terminals.FindForSelection(ctx, terminal.SelectionFilter{Company: q.Company, Currency: q.Currency})
	if err != nil {
		return BinQueryResult{}, err
	}

	chosen, ok := terminal.Select(candidates, q.Currency, &info)
	if !ok {
		return BinQueryResult{}, pkgerrors.ErrNoSuitableTerminal.WithDetails("currency", string(q.Currency))
	}

	return BinQueryResult{
		Bank:     info.BankCode,
		Brand:    info.Brand,
		CardType: info.CardType,
		Family:   info.Family,
		Country:  info.Country,
		Pos: Pos{
			ID:       chosen.ID,
			Name:     chosen.Name,
			BankCode: chosen.BankCode,
			Provider: chosen.Provider,
		},
		Installments: chosen.InstallmentOptions(q.Amount, q.Currency, info.CardType),
	}, nil
}
