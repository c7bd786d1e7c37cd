package payment

import (
	"encoding/json"
	"fmt"
	"net/http"

	"vpos-orchestrator/internal/domain/transaction"
	"vpos-orchestrator/pkg/httputil"
)

// processCallback handles the bank's 3-D Secure authentication result POST.
// Public: called directly by the issuer's ACS, not by an authenticated API
// client. The response is a small HTML page that posts the outcome to the
// parent window, since the bank lands the cardholder's browser here inside
// the same iframe/popup that rendered the 3-D Secure form.
func (h *Handler) processCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := getID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.respondError(w, r, err)
		return
	}

	postFields := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		postFields[k] = r.PostForm.Get(k)
	}

	view, err := h.service.ProcessCallback(ctx, id, postFields)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	data, err := json.Marshal(callbackResultData{
		TransactionID: view.ID,
		Status:        view.Status,
		Result:        view.Result,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set(httputil.HeaderContentType, httputil.ContentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, callbackResultHTML, data)
}

// callbackResultData is the `data` payload of the postMessage event, per
// spec.md §6: the full outcome, not just a status string, so an iframe
// integrator can surface the decline message to the cardholder.
type callbackResultData struct {
	TransactionID string             `json:"transactionId"`
	Status        transaction.Status `json:"status"`
	Result        transaction.Result `json:"result"`
}

const callbackResultHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Payment result</title></head>
<body>
<script>
  if (window.parent) {
    window.parent.postMessage({type: "payment_result", data: %s}, "*");
  }
</script>
</body>
</html>`
