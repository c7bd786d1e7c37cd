package vakifbank

import "testing"

func TestClonePayloadWithPaResPreservesExistingKeys(t *testing.T) {
	p := map[string]interface{}{"acsUrl": "https://acs.example/", "termUrl": "https://cb.example/"}
	out := clonePayloadWithPaRes(p, "paRes-value")
	if out["paRes"] != "paRes-value" {
		t.Fatalf("paRes not set: %+v", out)
	}
	if out["acsUrl"] != p["acsUrl"] || out["termUrl"] != p["termUrl"] {
		t.Fatalf("existing keys lost: %+v", out)
	}
	// original map must not be mutated
	if _, ok := p["paRes"]; ok {
		t.Fatal("clonePayloadWithPaRes mutated its input")
	}
}
