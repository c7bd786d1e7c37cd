package garanti

import "testing"

// TestPasswordHashReproducible pins down the S1 scenario's terminal
// credentials (spec.md §8) and checks the hash chain is a pure,
// reproducible function of its inputs (invariant 8: hash reproducibility).
// goldenHP is the S1 scenario's password hash (spec.md §8): upper(sha1(password + "0" + terminalId)).
const goldenHP = "1639636D00AB5EF0B3CE073BB222BFAAC2C2C38D"

func TestPasswordHashReproducible(t *testing.T) {
	hp := passwordHash("123qweASD/", "30691298")
	again := passwordHash("123qweASD/", "30691298")
	if hp != again {
		t.Fatal("passwordHash is not deterministic")
	}
	if hp != goldenHP {
		t.Fatalf("passwordHash() = %q, want golden %q", hp, goldenHP)
	}
}

func TestForm3DHashReproducible(t *testing.T) {
	const goldenForm = "171E879ADEC8BAC75FF90E0362AFBC2F4D2178665829326772366C52311434902F6AE1FFD2EFC617C07DE9B8D8D06344DDAAC7943B83033E1EB7E1A0E65B6E3A"
	got := form3DHash("30691298", "tx-1", "15000", "949", "https://ok", "https://fail", "", "12345678", goldenHP)
	want := form3DHash("30691298", "tx-1", "15000", "949", "https://ok", "https://fail", "", "12345678", goldenHP)
	if got != want {
		t.Fatal("form3DHash is not deterministic")
	}
	if got != goldenForm {
		t.Fatalf("form3DHash() = %q, want golden %q", got, goldenForm)
	}
}

func TestProvisionHashOmitsCardNumberOn3DCompletion(t *testing.T) {
	const (
		goldenWithCard = "149619D39E7CCF86A1C0493D35BBFC3E473558D28CE93E018C6A0F3E4A7ADB1AF720DACE64C20E412CE2B7886866630BA8C435A63A491551EA2DC47A44C02CB4"
		goldenWithout  = "10031EFB1CBD0E72D10253AE54300EDD38A32AFD77ED45A4EC8CBF62D3828E2D6C5B559494E0474EB24A28117D2E3190275614D2874395B922D992AD9715C535"
	)
	withCard := provisionHash("tx-1", "30691298", "4282209004348016", "15000", "949", goldenHP)
	without := provisionHash("tx-1", "30691298", "", "15000", "949", goldenHP)
	if withCard == without {
		t.Fatal("provisionHash must differ when the card number is included vs. omitted")
	}
	if withCard != goldenWithCard {
		t.Fatalf("provisionHash(with card) = %q, want golden %q", withCard, goldenWithCard)
	}
	if without != goldenWithout {
		t.Fatalf("provisionHash(without card) = %q, want golden %q", without, goldenWithout)
	}
}
