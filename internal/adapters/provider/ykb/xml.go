package ykb

import "encoding/xml"

// OOSRequestData is POSNET's server-to-server 3-D Secure initialize call:
// the bank echoes back the data1/data2/sign triple the browser must POST to
// its own ACS gateway, rather than handing back a single redirect URL.
type OOSRequestData struct {
	XMLName   xml.Name `xml:"OOS_Request_Data"`
	MerchantID string  `xml:"MerchantId"`
	TerminalID string  `xml:"TerminalId"`
	PosnetID   string  `xml:"PosnetId"`
	XID        string  `xml:"XID"`
	Amount     string  `xml:"Amount"`
	CurrencyCode string `xml:"CurrencyCode"`
	OrderID    string  `xml:"OrderId"`
	Pan        string  `xml:"Pan"`
	Expires    string  `xml:"Expires"`
	Cvc        string  `xml:"Cvc"`
	Installment string `xml:"Installment"`
	UseOOS     string  `xml:"UseOOS"`
}

// OOSRequestDataResponse carries the data1/data2/sign triple and the gate
// URL the browser form must post to.
type OOSRequestDataResponse struct {
	XMLName xml.Name `xml:"OOS_Request_Data_Response"`
	ApprovedStatus string `xml:"ApprovedStatus"`
	Data1   string `xml:"Data1"`
	Data2   string `xml:"Data2"`
	Sign    string `xml:"Sign"`
	URL     string `xml:"URL"`
	RespCode string `xml:"RespCode"`
	RespText string `xml:"RespText"`
}

// SaleRequest is POSNET's provisioning envelope: a completed 3-D sale
// carries the bank's own MerchantPacket/Mac pair back unmodified.
type SaleRequest struct {
	XMLName  xml.Name `xml:"posnetRequest"`
	MerchantID string `xml:"mid"`
	TerminalID string `xml:"tid"`
	OOS        struct {
		OrderID        string `xml:"orderId"`
		MerchantPacket string `xml:"merchantPacket"`
		Mac            string `xml:"mac"`
		Amount         string `xml:"amount"`
		CurrencyCode   string `xml:"currencyCode"`
		Installment    string `xml:"installment"`
		XID            string `xml:"xid"`
	} `xml:"oosTran"`
}

// SaleResponse is POSNET's provisioning response.
type SaleResponse struct {
	XMLName   xml.Name `xml:"posnetResponse"`
	Approved  string   `xml:"approved"`
	RespCode  string   `xml:"respCode"`
	RespText  string   `xml:"respText"`
	HostLogKey string  `xml:"hostlogkey"`
	AuthCode  string   `xml:"authCode"`
}
