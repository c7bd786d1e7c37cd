package codec

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMaskPAN(t *testing.T) {
	got := MaskPAN("4282209004348016")
	want := "4282 20** **** 8016"
	if got != want {
		t.Fatalf("MaskPAN = %q, want %q", got, want)
	}
}

func TestBIN(t *testing.T) {
	if got := BIN("4282209004348016"); got != "42822090" {
		t.Fatalf("BIN = %q, want 42822090", got)
	}
}

func TestAmountFormats(t *testing.T) {
	amt := decimal.RequireFromString("150.00")
	if got := AmountDecimal(amt); got != "150.00" {
		t.Fatalf("AmountDecimal = %q", got)
	}
	if got := AmountCentsInteger(amt); got != "15000" {
		t.Fatalf("AmountCentsInteger = %q", got)
	}
	if got := AmountDotStripped(amt); got != "15000" {
		t.Fatalf("AmountDotStripped = %q", got)
	}
}

func TestInstallmentFormats(t *testing.T) {
	if got := InstallmentOmitIfSingle(1); got != "" {
		t.Fatalf("InstallmentOmitIfSingle(1) = %q", got)
	}
	if got := InstallmentOmitIfSingle(3); got != "3" {
		t.Fatalf("InstallmentOmitIfSingle(3) = %q", got)
	}
	if got := InstallmentTwoDigit(1); got != "00" {
		t.Fatalf("InstallmentTwoDigit(1) = %q", got)
	}
	if got := InstallmentTwoDigit(9); got != "09" {
		t.Fatalf("InstallmentTwoDigit(9) = %q", got)
	}
}

func TestZeroPadOrderID(t *testing.T) {
	got := ZeroPadOrderID("42")
	want := "00000000000000000042"
	if got != want {
		t.Fatalf("ZeroPadOrderID = %q, want %q", got, want)
	}
}

func TestPKIString(t *testing.T) {
	value := map[string]interface{}{
		"locale":        "tr",
		"conversationId": "123456789",
		"price":         "1",
	}
	got := PKIString(value)
	want := "conversationId=123456789,locale=tr,price=1"
	if got != want {
		t.Fatalf("PKIString = %q, want %q", got, want)
	}
}

func TestFormURLEncodeDeterministic(t *testing.T) {
	m := map[string]string{"b": "2", "a": "1"}
	got := FormURLEncode(m, nil)
	want := "a=1&b=2"
	if got != want {
		t.Fatalf("FormURLEncode = %q, want %q", got, want)
	}
}
