package iyzico

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strconv"
	"time"

	"vpos-orchestrator/internal/adapters/provider"
	"vpos-orchestrator/internal/domain/terminal"
	"vpos-orchestrator/internal/domain/transaction"
	"vpos-orchestrator/pkg/codec"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

const (
	apiURLTest = "https://sandbox-api.iyzipay.com"
	apiURLProd = "https://api.iyzipay.com"

	initializePath = "/payment/3dsecure/initialize"
	authPath       = "/payment/3dsecure/auth"
)

// Adapter implements provider.Adapter for iyzico's JSON 3-D Secure API.
type Adapter struct {
	provider.Base
	client          *provider.HTTPClient
	callbackBaseURL string
}

func New(client *provider.HTTPClient, callbackBaseURL string) provider.Adapter {
	return &Adapter{Base: provider.Base{Name: "iyzico"}, client: client, callbackBaseURL: callbackBaseURL}
}

func (a *Adapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{Initialize: true, GetFormHTML: true, ProcessCallback: true, ProcessProvision: true}
}

func (a *Adapter) Initialize(ctx context.Context, tx *transaction.Entity, t terminal.Entity) (provider.InitializeResult, error) {
	body := map[string]interface{}{
		"locale":         "tr",
		"conversationId": tx.ID,
		"price":          codec.AmountDecimal(tx.Amount),
		"paidPrice":      codec.AmountDecimal(tx.Amount),
		"currency":       upperCurrency(string(tx.Currency)),
		"installment":    installmentOrOne(tx.Installment),
		"basketId":       tx.ID,
		"paymentChannel": "WEB",
		"paymentGroup":   "PRODUCT",
		"callbackUrl":    provider.CallbackURL(a.callbackBaseURL, tx.ID),
		"paymentCard": map[string]interface{}{
			"cardHolderName": tx.Card.Holder,
			"cardNumber":     tx.Card.Number,
			"expireMonth":    monthOf(tx.Card.Expiry),
			"expireYear":     "20" + yearOf(tx.Card.Expiry),
			"cvc":            tx.Card.CVV,
		},
		"buyer": map[string]interface{}{
			"id":      tx.ID,
			"email":   tx.Customer.Email,
			"ip":      tx.Customer.IP,
			"name":    firstName(tx.Customer.Name),
			"surname": lastName(tx.Customer.Name),
		},
	}

	rnd := strconv.FormatInt(time.Now().UnixNano(), 10)
	auth := AuthHeader(t.Credentials.MerchantID, t.Credentials.SecretKey, rnd, body)

	payload, err := json.Marshal(body)
	if err != nil {
		return provider.InitializeResult{}, pkgerrors.ErrValidation.Wrap(err)
	}

	api := apiURLProd
	if t.TestMode {
		api = apiURLTest
	}
	respBody, err := a.client.PostJSON(ctx, api+initializePath, payload, map[string]string{
		"Authorization": auth,
		"x-iyzi-rnd":    rnd,
	})
	if err != nil {
		return provider.InitializeResult{}, err
	}

	var resp ThreeDSInitializeResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return provider.InitializeResult{}, pkgerrors.ErrNetwork.Wrap(err)
	}
	if resp.Status != "success" {
		return provider.InitializeResult{OK: false, Code: resp.ErrorCode, Message: resp.ErrorMessage}, nil
	}

	tx.Secure = transaction.Secure3D{
		Adapter: terminal.ProviderIyzico,
		Payload: map[string]interface{}{
			"threeDSHtmlContent": resp.ThreeDSHtmlContent,
		},
		MD: resp.ConversationID,
	}
	return provider.InitializeResult{OK: true}, nil
}

func (a *Adapter) GetFormHTML(_ context.Context, tx *transaction.Entity, _ terminal.Entity) (string, error) {
	p := tx.Secure.Payload
	if p == nil {
		return "", pkgerrors.ErrState.WithDetails("reason", "no formData persisted")
	}
	encoded, _ := p["threeDSHtmlContent"].(string)
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", pkgerrors.ErrState.Wrap(err)
	}
	return string(decoded), nil
}

func (a *Adapter) ProcessCallback(ctx context.Context, tx *transaction.Entity, t terminal.Entity, postFields map[string]string) (provider.CallbackResult, error) {
	if postFields["status"] != "success" {
		return provider.CallbackResult{Valid: false, Code: postFields["status"], Message: "3-D Secure authentication not completed"}, nil
	}
	secure := tx.Secure
	secure.Payload = clonePayloadWithAuth(secure.Payload, postFields["paymentId"], postFields["conversationData"])
	return provider.CallbackResult{Valid: true, Secure: secure}, nil
}

func (a *Adapter) ProcessProvision(ctx context.Context, tx *transaction.Entity, t terminal.Entity, secure transaction.Secure3D) (provider.ProvisionResult, error) {
	paymentID, _ := secure.Payload["paymentId"].(string)
	conversationData, _ := secure.Payload["conversationData"].(string)

	body := map[string]interface{}{
		"locale":           "tr",
		"conversationId":   tx.ID,
		"paymentId":        paymentID,
		"conversationData": conversationData,
	}
	rnd := strconv.FormatInt(time.Now().UnixNano(), 10)
	auth := AuthHeader(t.Credentials.MerchantID, t.Credentials.SecretKey, rnd, body)

	payload, err := json.Marshal(body)
	if err != nil {
		return provider.ProvisionResult{}, pkgerrors.ErrValidation.Wrap(err)
	}

	api := apiURLProd
	if t.TestMode {
		api = apiURLTest
	}
	respBody, err := a.client.PostJSON(ctx, api+authPath, payload, map[string]string{
		"Authorization": auth,
		"x-iyzi-rnd":    rnd,
	})
	if err != nil {
		return provider.ProvisionResult{}, err
	}

	var resp ThreeDSAuthResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return provider.ProvisionResult{}, pkgerrors.ErrNetwork.Wrap(err)
	}
	if resp.Status != "success" || resp.PaymentStatus != "SUCCESS" {
		return provider.ProvisionResult{Approved: false, Code: resp.ErrorCode, Message: resp.ErrorMessage}, nil
	}
	return provider.ProvisionResult{Approved: true, Code: "00", AuthCode: resp.AuthCode, RefNumber: resp.HostReference}, nil
}

func clonePayloadWithAuth(p map[string]interface{}, paymentID, conversationData string) map[string]interface{} {
	out := make(map[string]interface{}, len(p)+2)
	for k, v := range p {
		out[k] = v
	}
	out["paymentId"] = paymentID
	out["conversationData"] = conversationData
	return out
}

func upperCurrency(c string) string {
	switch c {
	case "try":
		return "TRY"
	case "usd":
		return "USD"
	case "eur":
		return "EUR"
	case "gbp":
		return "GBP"
	default:
		return c
	}
}

func installmentOrOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func monthOf(expiry string) string {
	if len(expiry) >= 2 {
		return expiry[:2]
	}
	return ""
}

func yearOf(expiry string) string {
	if len(expiry) >= 5 {
		return expiry[3:]
	}
	return ""
}

func firstName(full string) string {
	for i, r := range full {
		if r == ' ' {
			return full[:i]
		}
	}
	return full
}

func lastName(full string) string {
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == ' ' {
			return full[i+1:]
		}
	}
	return full
}
