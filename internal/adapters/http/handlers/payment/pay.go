package payment

import (
	"net/http"

	"github.com/shopspring/decimal"

	"vpos-orchestrator/internal/domain/terminal"
	"vpos-orchestrator/internal/domain/transaction"
	"vpos-orchestrator/internal/usecase/paymentops"
	"vpos-orchestrator/pkg/httputil"
	"vpos-orchestrator/pkg/validation"
)

type cardRequest struct {
	Holder string `json:"holder"`
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

type customerRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type createPaymentRequest struct {
	TerminalID  string          `json:"terminalId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Installment int             `json:"installment,omitempty"`
	Card        cardRequest     `json:"card"`
	Customer    customerRequest `json:"customer,omitempty"`
	Company     string          `json:"company,omitempty"`
}

type createPaymentResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	FormURL       string `json:"formUrl,omitempty"`
}

// createPayment resolves an acquirer (explicit or BIN-driven) and starts a
// new payment attempt, returning whether the caller must next fetch the
// 3-D Secure form.
func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createPaymentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	for _, check := range []func() error{
		func() error { return validation.RequiredString(req.Card.Number, "card.number") },
		func() error { return validation.RequiredString(req.Card.Expiry, "card.expiry") },
		func() error { return validation.RequiredString(req.Card.CVV, "card.cvv") },
		func() error { return validation.RequiredString(req.Currency, "currency") },
	} {
		if err := check(); err != nil {
			h.respondError(w, r, err)
			return
		}
	}
	if req.Customer.Email != "" {
		if err := validation.ValidateEmail(req.Customer.Email); err != nil {
			h.respondError(w, r, err)
			return
		}
	}

	ip := clientIP(r)
	result, err := h.service.CreatePayment(ctx, paymentops.CreatePaymentInput{
		TerminalID:  req.TerminalID,
		Amount:      req.Amount,
		Currency:    terminal.Currency(req.Currency),
		Installment: req.Installment,
		Card: transaction.CardFields{
			Holder: req.Card.Holder,
			Number: req.Card.Number,
			Expiry: req.Card.Expiry,
			CVV:    req.Card.CVV,
		},
		Customer: transaction.CustomerSnapshot{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
			IP:    ip,
		},
		Company: req.Company,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, createPaymentResponse{
		Success:       true,
		TransactionID: result.Transaction.ID,
		FormURL:       result.FormURL,
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
