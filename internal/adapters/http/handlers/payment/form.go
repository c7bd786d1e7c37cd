package payment

import (
	"net/http"

	"vpos-orchestrator/pkg/httputil"
)

// getPaymentForm returns the acquirer's 3-D Secure auto-submit HTML form.
// Public: the cardholder's browser fetches this directly, there is no
// authenticated caller here.
func (h *Handler) getPaymentForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := getID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	html, err := h.service.GetPaymentForm(ctx, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set(httputil.HeaderContentType, httputil.ContentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}
