package iyzico

import "testing"

func TestAuthHeaderIsDeterministic(t *testing.T) {
	body := map[string]interface{}{"locale": "tr", "price": "150.00"}
	h1 := AuthHeader("api-key", "api-secret", "1700000000123", body)
	h2 := AuthHeader("api-key", "api-secret", "1700000000123", body)
	if h1 != h2 {
		t.Fatal("AuthHeader is not deterministic")
	}
	if h1[:6] != "IYZWS " {
		t.Fatalf("AuthHeader() = %q, want IYZWS prefix", h1)
	}
}

func TestAuthHeaderChangesWithRandomString(t *testing.T) {
	body := map[string]interface{}{"locale": "tr"}
	h1 := AuthHeader("api-key", "api-secret", "rnd-1", body)
	h2 := AuthHeader("api-key", "api-secret", "rnd-2", body)
	if h1 == h2 {
		t.Fatal("AuthHeader should depend on randomString")
	}
}
