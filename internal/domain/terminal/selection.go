package terminal

import "sort"

// BinInfo is the BIN resolver's output: bank/brand/type/family/country for
// a resolved card BIN.
type BinInfo struct {
	BankCode BankCode
	Brand    string
	CardType string
	Family   string
	Country  string
}

// rule is one link of the ordered acquirer-selection chain. It returns the
// chosen terminal and true if it matched; false lets evaluation fall
// through to the next rule.
type rule func(candidates []Entity, currency Currency, bin *BinInfo) (Entity, bool)

var rules = []rule{
	ruleOnUs,
	ruleCardFamily,
	ruleDefaultForCurrency,
	rulePriorityFallback,
}

// Select evaluates the four-rule ordered chain from spec §4.4 against the
// active, currency-matching terminals in candidates (pre-filtered by the
// repository's FindForSelection). Candidates are expected already sorted by
// descending priority, then insertion order, by the repository query; ties
// within a rule are broken by that ordering.
func Select(candidates []Entity, currency Currency, bin *BinInfo) (Entity, bool) {
	active := make([]Entity, 0, len(candidates))
	for _, c := range candidates {
		if c.Active && c.SupportsCurrency(currency) {
			active = append(active, c)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority > active[j].Priority
	})

	for _, r := range rules {
		if t, ok := r(active, currency, bin); ok {
			return t, true
		}
	}
	return Entity{}, false
}

func ruleOnUs(candidates []Entity, _ Currency, bin *BinInfo) (Entity, bool) {
	if bin == nil || bin.BankCode == "" {
		return Entity{}, false
	}
	for _, t := range candidates {
		if t.BankCode == bin.BankCode {
			return t, true
		}
	}
	return Entity{}, false
}

func ruleCardFamily(candidates []Entity, _ Currency, bin *BinInfo) (Entity, bool) {
	if bin == nil || bin.Family == "" {
		return Entity{}, false
	}
	for _, t := range candidates {
		if t.SupportsCardFamily(bin.Family) {
			return t, true
		}
	}
	return Entity{}, false
}

func ruleDefaultForCurrency(candidates []Entity, currency Currency, _ *BinInfo) (Entity, bool) {
	for _, t := range candidates {
		if t.IsDefaultForCurrency(currency) {
			return t, true
		}
	}
	return Entity{}, false
}

func rulePriorityFallback(candidates []Entity, _ Currency, _ *BinInfo) (Entity, bool) {
	if len(candidates) == 0 {
		return Entity{}, false
	}
	return candidates[0], true
}
