// Package vakifbank implements VakıfBank VPOS's two-call 3-D Secure flow:
// a VerifyEnrollmentRequest against the card's issuer, followed by a browser
// redirect to the card issuer's own ACS page, followed by a VposRequest
// provisioning call carrying the ACS's PaRes/MD/Cavv/Eci fields back.
package vakifbank

import (
	"context"
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
	gateURLTest = "https://onlineodemetest.vakifbank.com.tr/VposService/v3/Vposreq"
	gateURLProd = "https://onlineodeme.vakifbank.com.tr/VposService/v3/Vposreq"
)

// Adapter implements provider.Adapter for VakıfBank's VPOS gateway.
type Adapter struct {
	provider.Base
	client          *provider.HTTPClient
	callbackBaseURL string
}

func New(client *provider.HTTPClient, callbackBaseURL string) provider.Adapter {
	return &Adapter{Base: provider.Base{Name: "vakifbank"}, client: client, callbackBaseURL: callbackBaseURL}
}

func (a *Adapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{Initialize: true, GetFormHTML: true, ProcessCallback: true, ProcessProvision: true}
}

func (a *Adapter) Initialize(ctx context.Context, tx *transaction.Entity, t terminal.Entity) (provider.InitializeResult, error) {
	expiry, err := codec.ExpiryYYMM(tx.Card.Expiry)
	if err != nil {
		return provider.InitializeResult{}, pkgerrors.ErrValidation.Wrap(err)
	}
	callbackURL := provider.CallbackURL(a.callbackBaseURL, tx.ID)

	req := VerifyEnrollmentRequest{
		MerchantId:    t.Credentials.MerchantID,
		Pan:           tx.Card.Number,
		ExpiryDate:    expiry,
		Cvv:           tx.Card.CVV,
		Amount:        codec.AmountDecimal(tx.Amount),
		Currency:      codec.NumericISO4217[string(tx.Currency)],
		SuccessUrl:    callbackURL,
		FailureUrl:    callbackURL,
		TransactionId: tx.ID,
		BrandCode:     codec.VakifBrandCode[tx.Bin.Brand],
	}
	body, err := codec.XMLBuild(req, "UTF-8")
	if err != nil {
		return provider.InitializeResult{}, err
	}

	gate := gateURLProd
	if t.TestMode {
		gate = gateURLTest
	}
	respBody, err := a.client.PostForm(ctx, gate, "prmstr="+url.QueryEscape(string(body)))
	if err != nil {
		return provider.InitializeResult{}, err
	}

	var resp VerifyEnrollmentResponse
	if err := codec.XMLParse(respBody, &resp); err != nil {
		return provider.InitializeResult{}, err
	}
	if resp.Status != "Y" {
		// Issuer not enrolled in 3-D Secure: no form to serve, transaction fails.
		return provider.InitializeResult{OK: false, Code: resp.ResultCode, Message: resp.ResultMsg}, nil
	}

	tx.Secure = transaction.Secure3D{
		Adapter: terminal.ProviderVakifbank,
		Payload: map[string]interface{}{
			"acsUrl":  resp.ACSUrl,
			"paReq":   resp.PaReq,
			"termUrl": resp.TermUrl,
		},
		MD: resp.MD,
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
<input type="hidden" name="PaReq" value="%s">
<input type="hidden" name="TermUrl" value="%s">
<input type="hidden" name="MD" value="%s">
</form></body></html>`,
		html.EscapeString(fmt.Sprint(p["acsUrl"])),
		html.EscapeString(fmt.Sprint(p["paReq"])),
		html.EscapeString(fmt.Sprint(p["termUrl"])),
		html.EscapeString(tx.Secure.MD),
	), nil
}

func (a *Adapter) ProcessCallback(ctx context.Context, tx *transaction.Entity, t terminal.Entity, postFields map[string]string) (provider.CallbackResult, error) {
	if postFields["Status"] != "Y" {
		return provider.CallbackResult{Valid: false, Code: postFields["Status"], Message: "ACS authentication not completed"}, nil
	}
	secure := tx.Secure
	secure.CAVV = postFields["Cavv"]
	secure.ECI = postFields["Eci"]
	secure.MD = postFields["MD"]
	secure.Payload = clonePayloadWithPaRes(secure.Payload, postFields["PaRes"])
	return provider.CallbackResult{Valid: true, Secure: secure}, nil
}

func (a *Adapter) ProcessProvision(ctx context.Context, tx *transaction.Entity, t terminal.Entity, secure transaction.Secure3D) (provider.ProvisionResult, error) {
	expiry, err := codec.ExpiryYYYYMM(tx.Card.Expiry)
	if err != nil {
		return provider.ProvisionResult{}, pkgerrors.ErrValidation.Wrap(err)
	}

	req := SaleRequest{
		MerchantId:              t.Credentials.MerchantID,
		Password:                t.Credentials.Password,
		TerminalNo:              t.Credentials.TerminalID,
		TransactionType:         "Sale",
		Pan:                     tx.Card.Number,
		ExpiryDate:              expiry,
		Amount:                  codec.AmountDecimal(tx.Amount),
		Currency:                codec.NumericISO4217[string(tx.Currency)],
		OrderId:                 tx.ID,
		InstallmentCount:        codec.InstallmentOmitIfSingle(tx.Installment),
		PayerAuthenticationCode: secure.CAVV,
		PayerTxnId:              secure.ECI,
		MD:                      secure.MD,
	}
	body, err := codec.XMLBuild(req, "UTF-8")
	if err != nil {
		return provider.ProvisionResult{}, err
	}

	gate := gateURLProd
	if t.TestMode {
		gate = gateURLTest
	}
	respBody, err := a.client.PostForm(ctx, gate, "prmstr="+url.QueryEscape(string(body)))
	if err != nil {
		return provider.ProvisionResult{}, err
	}

	var resp SaleResponse
	if err := codec.XMLParse(respBody, &resp); err != nil {
		return provider.ProvisionResult{}, err
	}
	if resp.ResultCode != "0000" {
		return provider.ProvisionResult{Approved: false, Code: resp.ResultCode, Message: resp.ResultMsg}, nil
	}
	return provider.ProvisionResult{Approved: true, Code: resp.ResultCode, AuthCode: resp.AuthCode, RefNumber: resp.HostLogKey}, nil
}

func clonePayloadWithPaRes(p map[string]interface{}, paRes string) map[string]interface{} {
	out := make(map[string]interface{}, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out["paRes"] = paRes
	return out
}
