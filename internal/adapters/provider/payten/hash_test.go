package payten

import "testing"

// goldenHashV3 pins {clientid:100, oid:tx-1, amount:150.00} against
// storeKey123, computed independently from the hash-v3 definition in
// spec.md §4.5 (sorted keys, pipe-escaped values, sha512, base64).
const goldenHashV3 = "igBxspZCcbgAlA6e3gymAcE8pSNiI3SgXzI2meYnuZCZiGNln+HNDh/QwGxKj+2of/f1u5tuANrQ15IuRemMDA=="

func TestHashV3IsDeterministicAndOrderIndependent(t *testing.T) {
	fields := map[string]string{
		"clientid": "100",
		"oid":      "tx-1",
		"amount":   "150.00",
		"Encoding": "utf-8", // excluded, different case
		"Hash":     "stale", // excluded
	}
	got := HashV3(fields, "storeKey123")
	want := HashV3(fields, "storeKey123")
	if got != want {
		t.Fatal("HashV3 is not deterministic")
	}
	if got != goldenHashV3 {
		t.Fatalf("HashV3() = %q, want golden %q", got, goldenHashV3)
	}
}

func TestEscapeHandlesPipeAndBackslash(t *testing.T) {
	got := escape(`a\b|c`)
	want := `a\\b\|c`
	if got != want {
		t.Fatalf("escape(%q) = %q, want %q", `a\b|c`, got, want)
	}
}

func TestHashV3ChangesWithFieldValue(t *testing.T) {
	const goldenH1 = "9EkYOE5DMLWhH1NySudaDCMPvcjf+8fulHiqz0wl3GLDhDz16q9juq2XR6iOR0cx6UmpJ8hxx082JqDxHgYF/w=="
	base := map[string]string{"amount": "150.00", "oid": "tx-1"}
	h1 := HashV3(base, "sk")
	if h1 != goldenH1 {
		t.Fatalf("HashV3() = %q, want golden %q", h1, goldenH1)
	}
	base["amount"] = "151.00"
	h2 := HashV3(base, "sk")
	if h1 == h2 {
		t.Fatal("HashV3 should change when a field value changes")
	}
}
