package payten

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"

	"vpos-orchestrator/internal/adapters/provider"
	"vpos-orchestrator/internal/domain/terminal"
	"vpos-orchestrator/internal/domain/transaction"
	"vpos-orchestrator/pkg/codec"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

const (
	gateURLTest = "https://testvpos.payten.com.tr/fim/est3Dgate"
	gateURLProd = "https://vpos.payten.com.tr/fim/est3Dgate"
	apiURLTest  = "https://testvpos.payten.com.tr/fim/api"
	apiURLProd  = "https://vpos.payten.com.tr/fim/api"
)

// acceptedMdStatuses is the default {1} from spec.md §9's open question.
// The set is fixed for every terminal; no terminal setting widens it.
var acceptedMdStatuses = map[string]bool{"1": true}

// Adapter implements provider.Adapter for the Payten/NestPay gateway.
type Adapter struct {
	provider.Base
	client          *provider.HTTPClient
	callbackBaseURL string
}

func New(client *provider.HTTPClient, callbackBaseURL string) provider.Adapter {
	return &Adapter{Base: provider.Base{Name: "payten"}, client: client, callbackBaseURL: callbackBaseURL}
}

func (a *Adapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{Initialize: true, GetFormHTML: true, ProcessCallback: true, ProcessProvision: true}
}

func (a *Adapter) Initialize(ctx context.Context, tx *transaction.Entity, t terminal.Entity) (provider.InitializeResult, error) {
	callbackURL := provider.CallbackURL(a.callbackBaseURL, tx.ID)
	fields := map[string]string{
		"clientid": t.Credentials.MerchantID,
		"oid":      tx.ID,
		"amount":   codec.AmountDecimal(tx.Amount),
		"currency": codec.NumericISO4217[string(tx.Currency)],
		"okurl":    callbackURL,
		"failurl":  callbackURL,
		"islemtipi": "Auth",
		"taksit":    codec.InstallmentOmitIfSingle(tx.Installment),
		"pan":       tx.Card.Number,
		"Ecom_Payment_Card_ExpDate_Year":  "20" + yearOf(tx.Card.Expiry),
		"Ecom_Payment_Card_ExpDate_Month": monthOf(tx.Card.Expiry),
		"cv2": tx.Card.CVV,
		"storetype": "3d",
	}
	hash := HashV3(fields, t.Credentials.SecretKey)

	gate := gateURLProd
	if t.TestMode {
		gate = gateURLTest
	}
	payload := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		payload[k] = v
	}
	payload["gateUrl"] = gate
	payload["hash"] = hash

	tx.Secure = transaction.Secure3D{Adapter: terminal.ProviderPayten, Payload: payload}
	return provider.InitializeResult{OK: true}, nil
}

func (a *Adapter) GetFormHTML(ctx context.Context, tx *transaction.Entity, _ terminal.Entity) (string, error) {
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
	if !acceptedMdStatuses[mdStatus] {
		return provider.CallbackResult{Valid: false, Code: mdStatus, Message: "mdStatus not accepted"}, nil
	}
	secure := tx.Secure
	secure.ECI = postFields["eci"]
	secure.CAVV = postFields["cavv"]
	secure.MD = postFields["md"]
	return provider.CallbackResult{Valid: true, Secure: secure}, nil
}

// CC5Request is Payten's XML provisioning envelope.
type CC5Request struct {
	XMLName xml.Name `xml:"CC5Request"`
	Name     string `xml:"Name"`
	Password string `xml:"Password"`
	ClientId string `xml:"ClientId"`
	OrderId  string `xml:"OrderId"`
	Type     string `xml:"Type"`
	Number   string `xml:"Number,omitempty"`
	Expires  string `xml:"Expires,omitempty"`
	Cvv2Val  string `xml:"Cvv2Val,omitempty"`
	Total    string `xml:"Total"`
	Currency string `xml:"Currency"`
	Taksit   string `xml:"Taksit,omitempty"`
	PayerTxnId   string `xml:"PayerTxnId,omitempty"`
	PayerSecurityLevel string `xml:"PayerSecurityLevel,omitempty"`
	PayerAuthenticationCode string `xml:"PayerAuthenticationCode,omitempty"`
}

// CC5Response is Payten's XML response envelope.
type CC5Response struct {
	XMLName        xml.Name `xml:"CC5Response"`
	OrderId        string   `xml:"OrderId"`
	Response       string   `xml:"Response"`
	ProcReturnCode string   `xml:"ProcReturnCode"`
	ErrMsg         string   `xml:"ErrMsg"`
	AuthCode       string   `xml:"AuthCode"`
	HostRefNum     string   `xml:"HostRefNum"`
}

func (a *Adapter) ProcessProvision(ctx context.Context, tx *transaction.Entity, t terminal.Entity, secure transaction.Secure3D) (provider.ProvisionResult, error) {
	req := CC5Request{
		Name:                    t.Credentials.Username,
		Password:                t.Credentials.Password,
		ClientId:                t.Credentials.MerchantID,
		OrderId:                 tx.ID,
		Type:                    "Auth",
		Total:                   codec.AmountDecimal(tx.Amount),
		Currency:                codec.NumericISO4217[string(tx.Currency)],
		Taksit:                  codec.InstallmentOmitIfSingle(tx.Installment),
		PayerTxnId:              secure.MD,
		PayerSecurityLevel:      "3D",
		PayerAuthenticationCode: secure.CAVV,
	}
	body, err := codec.XMLBuild(req, "UTF-8")
	if err != nil {
		return provider.ProvisionResult{}, err
	}

	api := apiURLProd
	if t.TestMode {
		api = apiURLTest
	}
	respBody, err := a.client.PostXML(ctx, api, body)
	if err != nil {
		return provider.ProvisionResult{}, err
	}

	var resp CC5Response
	if err := codec.XMLParse(respBody, &resp); err != nil {
		return provider.ProvisionResult{}, err
	}
	if resp.Response != "Approved" {
		return provider.ProvisionResult{Approved: false, Code: resp.ProcReturnCode, Message: resp.ErrMsg}, nil
	}
	return provider.ProvisionResult{Approved: true, Code: resp.ProcReturnCode, AuthCode: resp.AuthCode, RefNumber: resp.HostRefNum}, nil
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
