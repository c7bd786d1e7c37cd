package payment

import (
	"net/http"

	"github.com/shopspring/decimal"

	"vpos-orchestrator/internal/domain/terminal"
	"vpos-orchestrator/internal/usecase/paymentops"
	pkgerrors "vpos-orchestrator/pkg/errors"
	"vpos-orchestrator/pkg/httputil"
)

type binQueryRequest struct {
	BIN      string          `json:"bin"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Company  string          `json:"company,omitempty"`
}

type posResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	BankCode terminal.BankCode `json:"bankCode"`
	Provider terminal.Provider `json:"provider"`
}

type binQueryResponse struct {
	Success      bool                         `json:"success"`
	Bank         terminal.BankCode            `json:"bank"`
	Brand        string                       `json:"brand"`
	CardType     string                       `json:"cardType"`
	CardFamily   string                       `json:"cardFamily"`
	Country      string                       `json:"country"`
	Pos          posResponse                  `json:"pos"`
	Installments []terminal.InstallmentOption `json:"installments"`
}

// queryBin resolves the acquirer a card BIN would route to and the
// installment options the chosen terminal offers for the given amount.
func (h *Handler) queryBin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req binQueryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if req.BIN == "" || req.Currency == "" {
		h.respondError(w, r, pkgerrors.ErrValidation.WithDetails("reason", "bin and currency are required"))
		return
	}

	result, err := h.service.QueryBin(ctx, paymentops.BinQuery{
		BIN:      req.BIN,
		Amount:   req.Amount,
		Currency: terminal.Currency(req.Currency),
		Company:  req.Company,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, binQueryResponse{
		Success:    true,
		Bank:       result.Bank,
		Brand:      result.Brand,
		CardType:   result.CardType,
		CardFamily: result.Family,
		Country:    result.Country,
		Pos: posResponse{
			ID:       result.Pos.ID,
			Name:     result.Pos.Name,
			BankCode: result.Pos.BankCode,
			Provider: result.Pos.Provider,
		},
		Installments: result.Installments,
	})
}
