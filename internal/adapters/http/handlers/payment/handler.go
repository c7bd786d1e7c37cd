// Package payment provides HTTP handlers for the payment orchestration API.
//
// Handler Organization (grounded on the teacher's payment handler split):
//   - handler.go: handler struct, constructor, route tables, response helper
//   - bin.go: BIN lookup (acquirer/installment discovery)
//   - pay.go: payment creation
//   - status.go: transaction status lookup
//   - form.go: public 3-D Secure form retrieval
//   - callback.go: public bank callback webhook
//
// Authenticated routes are mounted under Routes(); the 3-D Secure form and
// callback endpoints are public (called by the cardholder's browser and the
// bank respectively) and are mounted separately via PublicRoutes().
package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"vpos-orchestrator/internal/usecase/paymentops"
	pkgerrors "vpos-orchestrator/pkg/errors"
	"vpos-orchestrator/pkg/httputil"
)

func getID(r *http.Request) (string, error) {
	return httputil.GetURLParam(r, "id")
}

// Handler serves the payment orchestration HTTP API.
type Handler struct {
	service *paymentops.Service
}

// NewHandler creates a payment Handler.
func NewHandler(service *paymentops.Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the authenticated payment endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/bin", h.queryBin)
	r.Post("/pay", h.createPayment)
	r.Get("/{id}", h.getTransactionStatus)
	return r
}

// PublicRoutes mounts the unauthenticated endpoints a cardholder's browser
// and the issuing bank call directly: the 3-D Secure form and its callback.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}/form", h.getPaymentForm)
	r.Post("/{id}/callback", h.processCallback)
	return r
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := pkgerrors.GetHTTPStatus(err)
	h.respondJSON(w, r, status, errorEnvelope{Error: apiError{Code: errorCode(err), Message: err.Error()}})
}

func errorCode(err error) string {
	var domainErr *pkgerrors.Error
	if pkgerrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "INTERNAL_ERROR"
}
