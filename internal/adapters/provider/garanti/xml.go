package garanti

import "encoding/xml"

// GVPSRequest is Garanti's version-512 XML request envelope.
type GVPSRequest struct {
	XMLName xml.Name `xml:"GVPSRequest"`
	Mode    string   `xml:"Mode"`
	Version string   `xml:"Version"`
	Terminal struct {
		ProvUserID string `xml:"ProvUserID"`
		HashData   string `xml:"HashData"`
		UserID     string `xml:"UserID"`
		ID         string `xml:"ID"`
		MerchantID string `xml:"MerchantID"`
	} `xml:"Terminal"`
	Customer struct {
		IPAddress    string `xml:"IPAddress"`
		EmailAddress string `xml:"EmailAddress"`
	} `xml:"Customer"`
	Card struct {
		Number     string `xml:"Number"`
		ExpireDate string `xml:"ExpireDate"`
		CVV2       string `xml:"CVV2"`
	} `xml:"Card"`
	Order struct {
		OrderID string `xml:"OrderID"`
		GroupID string `xml:"GroupID"`
	} `xml:"Order"`
	Transaction struct {
		Type                  string `xml:"Type"`
		Amount                string `xml:"Amount"`
		CurrencyCode          string `xml:"CurrencyCode"`
		CardholderPresentCode string `xml:"CardholderPresentCode"`
		MotoInd               string `xml:"MotoInd"`
		InstallmentCnt        string `xml:"InstallmentCnt"`
		Secure3D              *Secure3DBlock `xml:"Secure3D"`
	} `xml:"Transaction"`
}

// Secure3DBlock carries the 3-D Secure hash and authentication evidence.
type Secure3DBlock struct {
	AuthenticationCode string `xml:"AuthenticationCode"`
	SecurityLevel      string `xml:"SecurityLevel"`
	TxnID              string `xml:"TxnID"`
	Md                 string `xml:"Md"`
}

// GVPSResponse is Garanti's response envelope; only the fields the
// orchestrator inspects are modeled.
type GVPSResponse struct {
	XMLName xml.Name `xml:"GVPSResponse"`
	Order   struct {
		OrderID string `xml:"OrderID"`
	} `xml:"Order"`
	Transaction struct {
		Response struct {
			Source      string `xml:"Source"`
			Code        string `xml:"Code"`
			ReasonCode  string `xml:"ReasonCode"`
			Message     string `xml:"Message"`
			ErrorMsg    string `xml:"ErrorMsg"`
			SysErrMsg   string `xml:"SysErrMsg"`
		} `xml:"Response"`
		RetrefNum  string `xml:"RetrefNum"`
		AuthCode   string `xml:"AuthCode"`
	} `xml:"Transaction"`
}

func (r GVPSResponse) approved() bool {
	return r.Transaction.Response.Message == "Approved"
}
