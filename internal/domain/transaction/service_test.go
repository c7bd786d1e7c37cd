package transaction

import "testing"

func TestValidateTransitionHappyPath(t *testing.T) {
	if !ValidateTransition(StatusPending, StatusProcessing) {
		t.Error("pending -> processing should be legal")
	}
	if !ValidateTransition(StatusProcessing, StatusSuccess) {
		t.Error("processing -> success should be legal")
	}
	if !ValidateTransition(StatusProcessing, StatusFailed) {
		t.Error("processing -> failed should be legal")
	}
}

func TestValidateTransitionRejectsIllegalEdges(t *testing.T) {
	cases := []struct{ from, to Status }{
		{StatusSuccess, StatusProcessing},
		{StatusFailed, StatusSuccess},
		{StatusPending, StatusSuccess},
		{StatusCancelled, StatusProcessing},
		{StatusPending, StatusPending},
	}
	for _, c := range cases {
		if ValidateTransition(c.from, c.to) {
			t.Errorf("ValidateTransition(%s, %s) = true, want false", c.from, c.to)
		}
	}
}

func TestTransitionClearsCVVOnSuccess(t *testing.T) {
	svc := NewService()
	e := &Entity{Status: StatusProcessing, Card: CardFields{CVV: "358"}}
	if err := svc.Transition(e, StatusSuccess); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if e.Card.CVV != "" {
		t.Errorf("CVV = %q, want cleared on success", e.Card.CVV)
	}
	if e.CompletedAt == nil {
		t.Error("CompletedAt should be set once terminal")
	}
}

func TestTransitionRejectsIllegalEdge(t *testing.T) {
	svc := NewService()
	e := &Entity{Status: StatusSuccess}
	if err := svc.Transition(e, StatusFailed); err == nil {
		t.Error("expected a state_error for success -> failed")
	}
}

func TestAppendLogIsMonotonic(t *testing.T) {
	svc := NewService()
	e := &Entity{}
	svc.AppendLog(e, LogEntry{Type: LogInit})
	svc.AppendLog(e, LogEntry{Type: LogForm3D})
	if len(e.Logs) != 2 {
		t.Fatalf("len(Logs) = %d, want 2", len(e.Logs))
	}
	if e.Logs[0].Type != LogInit || e.Logs[1].Type != LogForm3D {
		t.Fatal("log entries should preserve insertion order")
	}
}

func TestPublicViewNeverLeaksEncryptedFields(t *testing.T) {
	e := Entity{
		ID:     "tx1",
		Status: StatusSuccess,
		Card:   CardFields{Holder: "ciphertext-holder", Number: "ciphertext-number", Expiry: "ciphertext-expiry", Masked: "4282 20** **** 8016", BIN: "42822090"},
	}
	view := e.Public()
	if view.Card.Masked != e.Card.Masked || view.Card.BIN != e.Card.BIN {
		t.Fatal("public view should carry masked/bin")
	}
	// PublicView's type has no field capable of carrying Holder/Number/
	// Expiry/CVV at all -- this is enforced structurally, not just by
	// this assertion, but the test documents the invariant.
}
