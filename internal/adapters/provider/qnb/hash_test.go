package qnb

import "testing"

// goldenHash pins {orderId:tx-1, amount:150.00, okUrl:https://ok,
// failUrl:https://fail, installment:"", rnd:"0.12345678 1700000000",
// merchantPassword:secret} against base64(sha1(raw)) — the raw-digest-bytes
// operator QNB shares with Payten's sha512 hash, not base64-of-hex.
const goldenHash = "nAqgXDCIjBEYNoLLYlhzGOfB5vE="

func TestHashIsDeterministic(t *testing.T) {
	h1 := Hash("tx-1", "150.00", "https://ok", "https://fail", "", "0.12345678 1700000000", "secret")
	h2 := Hash("tx-1", "150.00", "https://ok", "https://fail", "", "0.12345678 1700000000", "secret")
	if h1 != h2 {
		t.Fatal("Hash is not deterministic")
	}
	if h1 != goldenHash {
		t.Fatalf("Hash() = %q, want golden %q", h1, goldenHash)
	}
}

func TestHashChangesWithRnd(t *testing.T) {
	h1 := Hash("tx-1", "150.00", "https://ok", "https://fail", "", "0.11111111 1700000000", "secret")
	h2 := Hash("tx-1", "150.00", "https://ok", "https://fail", "", "0.22222222 1700000000", "secret")
	if h1 == h2 {
		t.Fatal("Hash should depend on rnd")
	}
}

func TestRndShape(t *testing.T) {
	got := Rnd(12345678, 1700000000)
	want := "0.12345678 1700000000"
	if got != want {
		t.Fatalf("Rnd() = %q, want %q", got, want)
	}
}
