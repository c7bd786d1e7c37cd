package terminal

import "testing"

// TestSelectOnUsBeatsPriority is scenario S4 from spec.md §8: a lower
// priority on-us terminal wins over a higher priority one, by rule 1.
func TestSelectOnUsBeatsPriority(t *testing.T) {
	a := Entity{ID: "A", BankCode: BankGaranti, Active: true, Priority: 0,
		Currencies: []Currency{TRY}, DefaultForCurrencies: []Currency{TRY}}
	b := Entity{ID: "B", BankCode: "isbank", Active: true, Priority: 10,
		Currencies: []Currency{TRY}}

	bin := &BinInfo{BankCode: BankGaranti}
	got, ok := Select([]Entity{a, b}, TRY, bin)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.ID != "A" {
		t.Fatalf("Select = %q, want A (on-us rule should beat B's higher priority)", got.ID)
	}
}

func TestSelectCardFamilyFallback(t *testing.T) {
	a := Entity{ID: "A", BankCode: BankGaranti, Active: true, Priority: 5,
		Currencies: []Currency{TRY}, SupportedCardFamilies: []string{"bonus"}}
	b := Entity{ID: "B", BankCode: BankYKB, Active: true, Priority: 1,
		Currencies: []Currency{TRY}, SupportedCardFamilies: []string{"world"}}

	bin := &BinInfo{Family: "World"} // case-insensitive match
	got, ok := Select([]Entity{a, b}, TRY, bin)
	if !ok || got.ID != "B" {
		t.Fatalf("Select = %+v, ok=%v, want B via card-family rule", got, ok)
	}
}

func TestSelectDefaultForCurrency(t *testing.T) {
	a := Entity{ID: "A", Active: true, Priority: 1, Currencies: []Currency{TRY}}
	b := Entity{ID: "B", Active: true, Priority: 2, Currencies: []Currency{TRY}, DefaultForCurrencies: []Currency{TRY}}

	got, ok := Select([]Entity{a, b}, TRY, nil)
	if !ok || got.ID != "B" {
		t.Fatalf("Select = %+v, ok=%v, want B via default-for-currency rule", got, ok)
	}
}

func TestSelectPriorityFallback(t *testing.T) {
	a := Entity{ID: "A", Active: true, Priority: 1, Currencies: []Currency{TRY}}
	b := Entity{ID: "B", Active: true, Priority: 9, Currencies: []Currency{TRY}}

	got, ok := Select([]Entity{a, b}, TRY, nil)
	if !ok || got.ID != "B" {
		t.Fatalf("Select = %+v, ok=%v, want B (highest priority)", got, ok)
	}
}

func TestSelectNoSuitableTerminal(t *testing.T) {
	a := Entity{ID: "A", Active: true, Priority: 1, Currencies: []Currency{EUR}}
	_, ok := Select([]Entity{a}, TRY, nil)
	if ok {
		t.Fatal("expected no match for unsupported currency")
	}
}

// TestSelectIsDeterministic is invariant 5 from spec.md §8: fixed inputs
// always produce the same terminal.
func TestSelectIsDeterministic(t *testing.T) {
	a := Entity{ID: "A", Active: true, Priority: 3, Currencies: []Currency{TRY}}
	b := Entity{ID: "B", Active: true, Priority: 3, Currencies: []Currency{TRY}}

	first, _ := Select([]Entity{a, b}, TRY, nil)
	for i := 0; i < 10; i++ {
		got, _ := Select([]Entity{a, b}, TRY, nil)
		if got.ID != first.ID {
			t.Fatalf("Select is not deterministic: got %q then %q", first.ID, got.ID)
		}
	}
}
