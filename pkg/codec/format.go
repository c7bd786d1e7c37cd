package codec

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NumericISO4217 is the numeric ISO-4217 currency code table shared by
// Garanti, Payten, and VakıfBank.
var NumericISO4217 = map[string]string{
	"try": "949",
	"usd": "840",
	"eur": "978",
	"gbp": "826",
}

// YKBAlphaCurrency is YKB POSNET's two-letter alpha currency table.
var YKBAlphaCurrency = map[string]string{
	"try": "TL",
	"usd": "US",
	"eur": "EU",
	"gbp": "PU",
}

// VakifBrandCode maps a card brand to VakıfBank VPOS's numeric brand code.
var VakifBrandCode = map[string]string{
	"visa":        "100",
	"mastercard":  "200",
	"master_card": "200",
	"amex":        "300",
}

// AmountDecimal renders amount with two fixed decimal places, e.g. "150.00".
func AmountDecimal(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// AmountCentsInteger renders amount as an integer count of minor units, e.g.
// "15000" for 150.00 — Garanti's wire format.
func AmountCentsInteger(amount decimal.Decimal) string {
	return amount.Shift(2).StringFixed(0)
}

// AmountDotStripped renders amount with two decimal places and then strips
// the dot, e.g. "15000" — YKB POSNET's amount field.
func AmountDotStripped(amount decimal.Decimal) string {
	return strings.ReplaceAll(AmountDecimal(amount), ".", "")
}

// InstallmentOmitIfSingle returns "" for installment==1, else the decimal
// string — Garanti/Payten's convention of omitting the field for a single
// installment.
func InstallmentOmitIfSingle(installment int) string {
	if installment <= 1 {
		return ""
	}
	return fmt.Sprintf("%d", installment)
}

// InstallmentTwoDigit zero-pads installment to two digits, using "00" for a
// single installment — YKB POSNET's convention.
func InstallmentTwoDigit(installment int) string {
	if installment <= 1 {
		return "00"
	}
	return fmt.Sprintf("%02d", installment)
}

// ZeroPadOrderID left-pads orderID with zeros to 20 characters, the POSNET
// order-id wire shape.
func ZeroPadOrderID(orderID string) string {
	if len(orderID) >= 20 {
		return orderID[len(orderID)-20:]
	}
	return strings.Repeat("0", 20-len(orderID)) + orderID
}

// ExpiryYYMM reformats an "MM/YY" expiry into "YYMM", VakıfBank's enrollment
// call shape.
func ExpiryYYMM(expiry string) (string, error) {
	mm, yy, err := splitExpiry(expiry)
	if err != nil {
		return "", err
	}
	return yy + mm, nil
}

// ExpiryYYYYMM reformats an "MM/YY" expiry into "YYYYMM", VakıfBank's
// payment call shape.
func ExpiryYYYYMM(expiry string) (string, error) {
	mm, yy, err := splitExpiry(expiry)
	if err != nil {
		return "", err
	}
	century := "20"
	if yy[0] >= '7' { // 1970s pivot, never actually reachable for live cards
		century = "19"
	}
	return century + yy + mm, nil
}

func splitExpiry(expiry string) (mm, yy string, err error) {
	parts := strings.SplitN(expiry, "/", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return "", "", fmt.Errorf("codec: expiry %q is not in MM/YY form", expiry)
	}
	return parts[0], parts[1], nil
}
