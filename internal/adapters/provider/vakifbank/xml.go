package vakifbank

import "encoding/xml"

// VerifyEnrollmentRequest is VakıfBank VPOS's first 3-D Secure call: ask the
// card's issuing bank whether it participates in 3-D Secure at all.
type VerifyEnrollmentRequest struct {
	XMLName       xml.Name `xml:"VposRequest"`
	MerchantId    string   `xml:"MerchantId"`
	Pan           string   `xml:"Pan"`
	ExpiryDate    string   `xml:"Expiry"`
	Cvv           string   `xml:"Cvv"`
	Amount        string   `xml:"Amount"`
	Currency      string   `xml:"Currency"`
	SuccessUrl    string   `xml:"SuccessUrl"`
	FailureUrl    string   `xml:"FailureUrl"`
	TransactionId string   `xml:"TransactionId"`
	BrandCode     string   `xml:"CardBrand"`
}

// VerifyEnrollmentResponse is the VERes: Status=="Y" means the card is
// enrolled and the browser must be redirected to ACSUrl carrying PaReq/MD.
type VerifyEnrollmentResponse struct {
	XMLName    xml.Name `xml:"VposResponse"`
	Status     string   `xml:"Status"`
	ACSUrl     string   `xml:"ACSUrl"`
	PaReq      string   `xml:"PaReq"`
	TermUrl    string   `xml:"TermUrl"`
	MD         string   `xml:"MD"`
	ResultCode string   `xml:"ResultCode"`
	ResultMsg  string   `xml:"ResultMsg"`
}

// SaleRequest is VakıfBank's VposRequest provisioning call, posted as the
// form field "prmstr" after a successful ACS callback.
type SaleRequest struct {
	XMLName       xml.Name `xml:"VposRequest"`
	MerchantId    string   `xml:"MerchantId"`
	Password      string   `xml:"Password"`
	TerminalNo    string   `xml:"TerminalNo"`
	TransactionType string `xml:"TransactionType"`
	Pan           string   `xml:"Pan"`
	ExpiryDate    string   `xml:"Expiry"`
	Amount        string   `xml:"Amount"`
	Currency      string   `xml:"Currency"`
	OrderId       string   `xml:"OrderId"`
	InstallmentCount string `xml:"InstallmentCount"`
	PayerAuthenticationCode string `xml:"Cavv"`
	PayerTxnId    string   `xml:"Eci"`
	MD            string   `xml:"MD"`
}

// SaleResponse is VakıfBank's provisioning response. ResultCode=="0000"
// means approved.
type SaleResponse struct {
	XMLName       xml.Name `xml:"VposResponse"`
	ResultCode    string   `xml:"ResultCode"`
	ResultMsg     string   `xml:"ResultMsg"`
	AuthCode      string   `xml:"AuthCode"`
	TransactionId string   `xml:"TransactionId"`
	HostLogKey    string   `xml:"HostLogKey"`
}
