package iyzico

import "testing"

func TestClonePayloadWithAuthPreservesExistingKeys(t *testing.T) {
	p := map[string]interface{}{"threeDSHtmlContent": "PGh0bWw+"}
	out := clonePayloadWithAuth(p, "pay-1", "conv-data")
	if out["paymentId"] != "pay-1" || out["conversationData"] != "conv-data" {
		t.Fatalf("unexpected payload: %+v", out)
	}
	if out["threeDSHtmlContent"] != p["threeDSHtmlContent"] {
		t.Fatal("existing key lost")
	}
}

func TestFirstNameAndLastName(t *testing.T) {
	if got := firstName("Ada Lovelace"); got != "Ada" {
		t.Fatalf("firstName() = %q", got)
	}
	if got := lastName("Ada Lovelace"); got != "Lovelace" {
		t.Fatalf("lastName() = %q", got)
	}
	if got := lastName("Cher"); got != "Cher" {
		t.Fatalf("lastName() single word = %q", got)
	}
}

func TestInstallmentOrOne(t *testing.T) {
	if installmentOrOne(0) != 1 {
		t.Fatal("installmentOrOne(0) should default to 1")
	}
	if installmentOrOne(6) != 6 {
		t.Fatal("installmentOrOne(6) should pass through")
	}
}
