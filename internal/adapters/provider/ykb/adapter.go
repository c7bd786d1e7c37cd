package ykb

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/url"

	"vpos-orchestrator/internal/adapters/provider"
	"vpos-orchestrator/internal/domain/terminal"
	"vpos-orchestrator/internal/domain/transaction"
	"vpos-orchestrator/pkg/codec"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

const (
	gateURLTest = "https://entegrasyon.asseco-see.com.tr/fim/est3Dgate"
	gateURLProd = "https://sanalpos.yapikredi.com.tr/fim/est3Dgate"
	apiURLTest  = "https://entegrasyon.asseco-see.com.tr/fim/api"
	apiURLProd  = "https://sanalpos.yapikredi.com.tr/fim/api"
)

// Adapter implements provider.Adapter for Yapı Kredi Bankası's POSNET
// gateway. Initialize calls the bank server-to-server for the data1/data2/
// sign triple a browser form then posts to the bank's own ACS redirect
// page; ProcessCallback decrypts the returned MerchantPacket.
type Adapter struct {
	provider.Base
	client          *provider.HTTPClient
	callbackBaseURL string
}

func New(client *provider.HTTPClient, callbackBaseURL string) provider.Adapter {
	return &Adapter{Base: provider.Base{Name: "ykb"}, client: client, callbackBaseURL: callbackBaseURL}
}

func (a *Adapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{Initialize: true, GetFormHTML: true, ProcessCallback: true, ProcessProvision: true}
}

func (a *Adapter) Initialize(ctx context.Context, tx *transaction.Entity, t terminal.Entity) (provider.InitializeResult, error) {
	orderID := codec.ZeroPadOrderID(tx.ID)
	amount := codec.AmountDotStripped(tx.Amount)
	currency := codec.YKBAlphaCurrency[string(tx.Currency)]
	installment := codec.InstallmentTwoDigit(tx.Installment)

	req := OOSRequestData{
		MerchantID:   t.Credentials.MerchantID,
		TerminalID:   t.Credentials.TerminalID,
		PosnetID:     extraFields(t)["posnetId"],
		XID:          orderID,
		Amount:       amount,
		CurrencyCode: currency,
		OrderID:      orderID,
		Pan:          tx.Card.Number,
		Expires:      ykbExpiry(tx.Card.Expiry),
		Cvc:          tx.Card.CVV,
		Installment:  installment,
		UseOOS:       "1",
	}
	body, err := codec.XMLBuild(req, "ISO-8859-9")
	if err != nil {
		return provider.InitializeResult{}, err
	}

	api := apiURLProd
	if t.TestMode {
		api = apiURLTest
	}
	formBody := "xmldata=" + url.QueryEscape(string(body))
	respBody, err := a.client.PostForm(ctx, api, formBody)
	if err != nil {
		return provider.InitializeResult{}, err
	}

	var resp OOSRequestDataResponse
	if err := codec.XMLParse(respBody, &resp); err != nil {
		return provider.InitializeResult{}, err
	}
	if resp.ApprovedStatus != "1" {
		return provider.InitializeResult{OK: false, Code: resp.RespCode, Message: resp.RespText}, nil
	}

	gate := gateURLProd
	if t.TestMode {
		gate = gateURLTest
	}
	tx.Secure = transaction.Secure3D{
		Adapter: terminal.ProviderYKB,
		Payload: map[string]interface{}{
			"gateUrl":  firstNonEmpty(resp.URL, gate),
			"data1":    resp.Data1,
			"data2":    resp.Data2,
			"sign":     resp.Sign,
			"orderId":  orderID,
			"xid":      orderID,
			"amount":   amount,
			"currency": currency,
		},
	}
	return provider.InitializeResult{OK: true}, nil
}

func (a *Adapter) GetFormHTML(_ context.Context, tx *transaction.Entity, _ terminal.Entity) (string, error) {
	p := tx.Secure.Payload
	if p == nil {
		return "", pkgerrors.ErrState.WithDetails("reason", "no formData persisted")
	}
	return fmt.Sprintf(`<html><body onload="document.forms[0].submit()">
<form method="POST" action="%s">
<input type="hidden" name="data1" value="%s">
<input type="hidden" name="data2" value="%s">
<input type="hidden" name="sign" value="%s">
</form></body></html>`,
		html.EscapeString(fmt.Sprint(p["gateUrl"])),
		html.EscapeString(fmt.Sprint(p["data1"])),
		html.EscapeString(fmt.Sprint(p["data2"])),
		html.EscapeString(fmt.Sprint(p["sign"])),
	), nil
}

func (a *Adapter) ProcessCallback(ctx context.Context, tx *transaction.Entity, t terminal.Entity, postFields map[string]string) (provider.CallbackResult, error) {
	packet := postFields["MerchantPacket"]
	fields, err := DecryptMerchantPacket(packet, t.Credentials.SecretKey)
	if err != nil {
		return provider.CallbackResult{}, err
	}
	if !AcceptedTdsMdStatus(fields.TdsMdStatus) {
		return provider.CallbackResult{Valid: false, Code: fields.TdsMdStatus, Message: "tds_md_status not accepted"}, nil
	}

	secure := tx.Secure
	secure.Payload = cloneWithMerchantPacket(secure.Payload, packet, fields)
	secure.MD = fields.XID
	return provider.CallbackResult{Valid: true, Secure: secure}, nil
}

func (a *Adapter) ProcessProvision(ctx context.Context, tx *transaction.Entity, t terminal.Entity, secure transaction.Secure3D) (provider.ProvisionResult, error) {
	orderID := codec.ZeroPadOrderID(tx.ID)
	amount := codec.AmountDotStripped(tx.Amount)
	currency := codec.YKBAlphaCurrency[string(tx.Currency)]
	mac := ProvisionMAC(t.Credentials.SecretKey, t.Credentials.TerminalID, secure.MD, amount, currency, t.Credentials.MerchantID)

	req := SaleRequest{MerchantID: t.Credentials.MerchantID, TerminalID: t.Credentials.TerminalID}
	req.OOS.OrderID = orderID
	req.OOS.MerchantPacket, _ = secure.Payload["merchantPacket"].(string)
	req.OOS.Mac = mac
	req.OOS.Amount = amount
	req.OOS.CurrencyCode = currency
	req.OOS.Installment = codec.InstallmentTwoDigit(tx.Installment)
	req.OOS.XID = secure.MD

	body, err := codec.XMLBuild(req, "ISO-8859-9")
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

	var resp SaleResponse
	if err := codec.XMLParse(respBody, &resp); err != nil {
		return provider.ProvisionResult{}, err
	}
	if resp.Approved != "1" {
		return provider.ProvisionResult{Approved: false, Code: resp.RespCode, Message: resp.RespText}, nil
	}
	return provider.ProvisionResult{Approved: true, Code: resp.RespCode, AuthCode: resp.AuthCode, RefNumber: resp.HostLogKey}, nil
}

func cloneWithMerchantPacket(p map[string]interface{}, packet string, fields MerchantPacketFields) map[string]interface{} {
	out := make(map[string]interface{}, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out["merchantPacket"] = packet
	out["tdsTxStatus"] = fields.TdsTxStatus
	out["tdsMdStatus"] = fields.TdsMdStatus
	return out
}

func ykbExpiry(expiryMMYY string) string {
	v, err := codec.ExpiryYYMM(expiryMMYY)
	if err != nil {
		return ""
	}
	return v
}

// extraFields decodes a terminal's decrypted Extra JSON blob. The
// orchestrator decrypts Credentials.Extra before dispatching to an adapter;
// a malformed or absent blob degrades to an empty map rather than an error,
// since posnetId is only required by banks still on the legacy POSNET
// multiplexed-merchant setup.
func extraFields(t terminal.Entity) map[string]string {
	var m map[string]string
	if err := json.Unmarshal([]byte(t.Credentials.Extra), &m); err != nil {
		return map[string]string{}
	}
	return m
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
