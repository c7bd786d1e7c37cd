package qnb

import (
	"context"
	"fmt"
	"html"

	"vpos-orchestrator/internal/adapters/provider"
	"vpos-orchestrator/internal/domain/terminal"
	"vpos-orchestrator/internal/domain/transaction"
	"vpos-orchestrator/pkg/codec"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

const (
	gateURLTest = "https://vpostest.qnbfinansbank.com/Vpos.Gateway/Home/Index"
	gateURLProd = "https://vpos.qnbfinansbank.com/Vpos.Gateway/Home/Index"
	apiURLTest  = "https://vpostest.qnbfinansbank.com/Vpos.Gateway/Home/SendFim"
	apiURLProd  = "https://vpos.qnbfinansbank.com/Vpos.Gateway/Home/SendFim"
)

// Adapter implements provider.Adapter for QNB Finansbank's (CardFinans)
// virtual POS.
type Adapter struct {
	provider.Base
	client          *provider.HTTPClient
	callbackBaseURL string
}

func New(client *provider.HTTPClient, callbackBaseURL string) provider.Adapter {
	return &Adapter{Base: provider.Base{Name: "qnb"}, client: client, callbackBaseURL: callbackBaseURL}
}

func (a *Adapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{Initialize: true, GetFormHTML: true, ProcessCallback: true, ProcessProvision: true}
}

func (a *Adapter) Initialize(ctx context.Context, tx *transaction.Entity, t terminal.Entity) (provider.InitializeResult, error) {
	callbackURL := provider.CallbackURL(a.callbackBaseURL, tx.ID)
	amount := codec.AmountDecimal(tx.Amount)
	installment := codec.InstallmentOmitIfSingle(tx.Installment)
	rnd := RndNow()
	hash := Hash(tx.ID, amount, callbackURL, callbackURL, installment, rnd, t.Credentials.Password)

	gate := gateURLProd
	if t.TestMode {
		gate = gateURLTest
	}
	payload := map[string]interface{}{
		"gateUrl":     gate,
		"clientid":    t.Credentials.MerchantID,
		"oid":         tx.ID,
		"amount":      amount,
		"okUrl":       callbackURL,
		"failUrl":     callbackURL,
		"islemtipi":   "Auth",
		"taksit":      installment,
		"rnd":         rnd,
		"hash":        hash,
		"pan":         tx.Card.Number,
		"Ecom_Payment_Card_ExpDate_Year":  "20" + yearOf(tx.Card.Expiry),
		"Ecom_Payment_Card_ExpDate_Month": monthOf(tx.Card.Expiry),
		"cv2":         tx.Card.CVV,
		"storetype":   "3d",
	}
	tx.Secure = transaction.Secure3D{Adapter: terminal.ProviderQNB, Payload: payload}
	return provider.InitializeResult{OK: true}, nil
}

func (a *Adapter) GetFormHTML(_ context.Context, tx *transaction.Entity, _ terminal.Entity) (string, error) {
	p := tx.Secure.Payload
	if p == nil {
		return "", pkgerrors.ErrState.WithDetails("reason", "no formData persisted")
	}
	var b []byte
	b = append(b, []byte(fmt.Sprintf(`<html><body onload="document.forms[0].submit()"><form method="POST" action="%s">`, html.EscapeString(fmt.Sprint(p["gateUrl"]))))...)
	for k, v := range p {
		if k == "gateUrl" {
			continue
		}
		b = append(b, []byte(fmt.Sprintf(`<input type="hidden" name="%s" value="%s">`, html.EscapeString(k), html.EscapeString(fmt.Sprint(v))))...)
	}
	b = append(b, []byte(`</form></body></html>`)...)
	return string(b), nil
}

func (a *Adapter) ProcessCallback(ctx context.Context, tx *transaction.Entity, t terminal.Entity, postFields map[string]string) (provider.CallbackResult, error) {
	mdStatus := postFields["mdStatus"]
	if mdStatus != "1" {
		return provider.CallbackResult{Valid: false, Code: mdStatus, Message: "mdStatus not accepted"}, nil
	}
	secure := tx.Secure
	secure.ECI = postFields["eci"]
	secure.CAVV = postFields["cavv"]
	secure.MD = postFields["md"]
	return provider.CallbackResult{Valid: true, Secure: secure}, nil
}

func (a *Adapter) ProcessProvision(ctx context.Context, tx *transaction.Entity, t terminal.Entity, secure transaction.Secure3D) (provider.ProvisionResult, error) {
	amount := codec.AmountDecimal(tx.Amount)
	fields := map[string]string{
		"clientid":           t.Credentials.MerchantID,
		"oid":                tx.ID,
		"amount":             amount,
		"islemtipi":          "Auth",
		"taksit":             codec.InstallmentOmitIfSingle(tx.Installment),
		"PayerTxnId":         secure.MD,
		"PayerSecurityLevel": "3D",
		"PayerAuthenticationCode": secure.CAVV,
		"storetype":          "3d_pay",
	}
	form := codec.FormURLEncode(fields, nil)

	api := apiURLProd
	if t.TestMode {
		api = apiURLTest
	}
	respBody, err := a.client.PostForm(ctx, api, form)
	if err != nil {
		return provider.ProvisionResult{}, err
	}

	resp := parseSemicolonPairs(string(respBody))
	if resp["ProcReturnCode"] != "00" {
		return provider.ProvisionResult{Approved: false, Code: resp["ProcReturnCode"], Message: resp["ErrMsg"]}, nil
	}
	return provider.ProvisionResult{Approved: true, Code: resp["ProcReturnCode"], AuthCode: resp["AuthCode"], RefNumber: resp["HostRefNum"]}, nil
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
