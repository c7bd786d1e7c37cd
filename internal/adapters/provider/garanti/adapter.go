package garanti

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
	gateURLTest = "https://sanalposprovtest.garantibbva.com.tr/VPServlet"
	gateURLProd = "https://sanalposprov.garantibbva.com.tr/VPServlet"
)

// Adapter implements provider.Adapter for Garanti BBVA's GVPS version-512
// protocol. It expects t.Credentials to already hold cleartext
// Password/SecretKey — the orchestrator decrypts terminal credentials
// before dispatching to any adapter.
type Adapter struct {
	provider.Base
	client          *provider.HTTPClient
	callbackBaseURL string
}

func New(client *provider.HTTPClient, callbackBaseURL string) provider.Adapter {
	return &Adapter{Base: provider.Base{Name: "garanti"}, client: client, callbackBaseURL: callbackBaseURL}
}

func (a *Adapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{Initialize: true, GetFormHTML: true, ProcessCallback: true, ProcessProvision: true}
}

func (a *Adapter) Initialize(ctx context.Context, tx *transaction.Entity, t terminal.Entity) (provider.InitializeResult, error) {
	card, err := decryptedCard(tx)
	if err != nil {
		return provider.InitializeResult{}, err
	}

	amount := codec.AmountCentsInteger(tx.Amount)
	currencyCode := codec.NumericISO4217[string(tx.Currency)]
	callbackURL := provider.CallbackURL(a.callbackBaseURL, tx.ID)
	installment := codec.InstallmentOmitIfSingle(tx.Installment)

	hp := passwordHash(t.Credentials.Password, t.Credentials.TerminalID)
	hash := form3DHash(t.Credentials.TerminalID, tx.ID, amount, currencyCode, callbackURL, callbackURL, installment, t.Credentials.SecretKey, hp)

	gate := gateURLProd
	if t.TestMode {
		gate = gateURLTest
	}

	tx.Secure = transaction.Secure3D{
		Adapter: terminal.ProviderGaranti,
		Payload: map[string]interface{}{
			"gateUrl":       gate,
			"secure3dhash":  hash,
			"terminalId":    t.Credentials.TerminalID,
			"merchantId":    t.Credentials.MerchantID,
			"orderId":       tx.ID,
			"amount":        amount,
			"currency":      currencyCode,
			"successUrl":    callbackURL,
			"errorUrl":      callbackURL,
			"installment":   installment,
			"cardNumber":    card.Number,
			"cardExpiry":    garantiExpiry(card.Expiry),
			"cardCVV":       card.CVV,
			"storeKey":      t.Credentials.SecretKey,
		},
	}
	return provider.InitializeResult{OK: true}, nil
}

func (a *Adapter) GetFormHTML(_ context.Context, tx *transaction.Entity, _ terminal.Entity) (string, error) {
	if tx.Secure.Payload == nil {
		return "", pkgerrors.ErrState.WithDetails("reason", "no formData persisted")
	}
	p := tx.Secure.Payload
	return fmt.Sprintf(`<html><body onload="document.forms[0].submit()">
<form method="POST" action="%s">
<input type="hidden" name="secure3dsecuritylevel" value="3D">
<input type="hidden" name="terminalprovuserid" value="PROVAUT">
<input type="hidden" name="terminaluserid" value="PROVAUT">
<input type="hidden" name="terminalmerchantid" value="%s">
<input type="hidden" name="terminalid" value="%s">
<input type="hidden" name="orderid" value="%s">
<input type="hidden" name="secure3dhash" value="%s">
<input type="hidden" name="txnamount" value="%s">
<input type="hidden" name="txncurrencycode" value="%s">
<input type="hidden" name="successurl" value="%s">
<input type="hidden" name="errorurl" value="%s">
<input type="hidden" name="cardnumber" value="%s">
<input type="hidden" name="cardexpiredatemonth" value="%s">
<input type="hidden" name="cardexpiredateyear" value="%s">
<input type="hidden" name="cardcvv2" value="%s">
</form></body></html>`,
		html.EscapeString(fmt.Sprint(p["gateUrl"])),
		html.EscapeString(fmt.Sprint(p["merchantId"])),
		html.EscapeString(fmt.Sprint(p["terminalId"])),
		html.EscapeString(fmt.Sprint(p["orderId"])),
		html.EscapeString(fmt.Sprint(p["secure3dhash"])),
		html.EscapeString(fmt.Sprint(p["amount"])),
		html.EscapeString(fmt.Sprint(p["currency"])),
		html.EscapeString(fmt.Sprint(p["successUrl"])),
		html.EscapeString(fmt.Sprint(p["errorUrl"])),
		html.EscapeString(fmt.Sprint(p["cardNumber"])),
		html.EscapeString(monthOf(fmt.Sprint(p["cardExpiry"]))),
		html.EscapeString(yearOf(fmt.Sprint(p["cardExpiry"]))),
		html.EscapeString(fmt.Sprint(p["cardCVV"])),
	), nil
}

// acceptedMdStatuses is Garanti's 3-D accepted status set: {1} only.
var acceptedMdStatuses = map[string]bool{"1": true}

func (a *Adapter) ProcessCallback(ctx context.Context, tx *transaction.Entity, t terminal.Entity, postFields map[string]string) (provider.CallbackResult, error) {
	mdStatus := postFields["mdstatus"]
	if !acceptedMdStatuses[mdStatus] {
		return provider.CallbackResult{Valid: false, Code: mdStatus, Message: "3-D Secure authentication not completed"}, nil
	}

	secure := tx.Secure
	secure.ECI = postFields["eci"]
	secure.CAVV = postFields["cavv"]
	secure.MD = postFields["md"]
	return provider.CallbackResult{Valid: true, Secure: secure}, nil
}

func (a *Adapter) ProcessProvision(ctx context.Context, tx *transaction.Entity, t terminal.Entity, secure transaction.Secure3D) (provider.ProvisionResult, error) {
	amount := codec.AmountCentsInteger(tx.Amount)
	currencyCode := codec.NumericISO4217[string(tx.Currency)]
	hp := passwordHash(t.Credentials.Password, t.Credentials.TerminalID)
	// Card number is empty: this call completes a 3-D-verified sale.
	hash := provisionHash(tx.ID, t.Credentials.TerminalID, "", amount, currencyCode, hp)

	req := GVPSRequest{}
	req.Mode = "PROD"
	if t.TestMode {
		req.Mode = "test"
	}
	req.Version = "512"
	req.Terminal.ProvUserID = "PROVAUT"
	req.Terminal.UserID = "PROVAUT"
	req.Terminal.HashData = hash
	req.Terminal.ID = t.Credentials.TerminalID
	req.Terminal.MerchantID = t.Credentials.MerchantID
	req.Order.OrderID = tx.ID
	req.Transaction.Type = "sales"
	req.Transaction.Amount = amount
	req.Transaction.CurrencyCode = currencyCode
	req.Transaction.CardholderPresentCode = "13"
	req.Transaction.MotoInd = "N"
	req.Transaction.InstallmentCnt = codec.InstallmentOmitIfSingle(tx.Installment)
	req.Transaction.Secure3D = &Secure3DBlock{TxnID: secure.MD, Md: secure.MD, AuthenticationCode: secure.CAVV, SecurityLevel: "3D"}

	body, err := codec.XMLBuild(req, "ISO-8859-9")
	if err != nil {
		return provider.ProvisionResult{}, err
	}

	gate := gateURLProd
	if t.TestMode {
		gate = gateURLTest
	}
	respBody, err := a.client.PostXML(ctx, gate, body)
	if err != nil {
		return provider.ProvisionResult{}, err
	}

	var resp GVPSResponse
	if err := codec.XMLParse(respBody, &resp); err != nil {
		return provider.ProvisionResult{}, err
	}

	if !resp.approved() {
		return provider.ProvisionResult{
			Approved: false,
			Code:     resp.Transaction.Response.ReasonCode,
			Message:  firstNonEmpty(resp.Transaction.Response.ErrorMsg, resp.Transaction.Response.Message),
		}, nil
	}
	return provider.ProvisionResult{
		Approved:  true,
		Code:      resp.Transaction.Response.Code,
		AuthCode:  resp.Transaction.AuthCode,
		RefNumber: resp.Transaction.RetrefNum,
	}, nil
}

func decryptedCard(tx *transaction.Entity) (transaction.CardFields, error) {
	// The orchestrator decrypts tx.Card via the transaction store before
	// calling Initialize; by the time an adapter sees it, it is cleartext.
	return tx.Card, nil
}

func garantiExpiry(expiryMMYY string) string { return expiryMMYY }

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

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
