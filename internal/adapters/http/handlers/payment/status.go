package payment

import (
	"net/http"

	"vpos-orchestrator/internal/domain/transaction"
)

type transactionStatusResponse struct {
	Status      bool                   `json:"status"`
	Transaction transaction.PublicView `json:"transaction"`
}

// getTransactionStatus returns a transaction's current public-safe state.
func (h *Handler) getTransactionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := getID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	view, err := h.service.GetTransactionStatus(ctx, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, transactionStatusResponse{Status: true, Transaction: view})
}
