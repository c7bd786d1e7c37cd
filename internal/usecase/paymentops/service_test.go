package paymentops

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vpos-orchestrator/internal/adapters/provider"
	"vpos-orchestrator/internal/domain/terminal"
	"vpos-orchestrator/internal/domain/transaction"
	"vpos-orchestrator/pkg/cryptoutil"
)

type fakeBinResolver struct{ info terminal.BinInfo }

func (f fakeBinResolver) Resolve(ctx context.Context, bin string) (terminal.BinInfo, error) {
	return f.info, nil
}

type fakeTerminalRepo struct{ entities []terminal.Entity }

func (f *fakeTerminalRepo) Create(ctx context.Context, t *terminal.Entity) error { return nil }
func (f *fakeTerminalRepo) FindByID(ctx context.Context, id string) (*terminal.Entity, error) {
	for i := range f.entities {
		if f.entities[i].ID == id {
			return &f.entities[i], nil
		}
	}
	return nil, nil
}
func (f *fakeTerminalRepo) FindForSelection(ctx context.Context, filter terminal.SelectionFilter) ([]terminal.Entity, error) {
	return f.entities, nil
}
func (f *fakeTerminalRepo) Update(ctx context.Context, id string, patch func(*terminal.Entity)) (*terminal.Entity, error) {
	return nil, nil
}
func (f *fakeTerminalRepo) SetDefaultForCurrency(ctx context.Context, id string, currency terminal.Currency) error {
	return nil
}
func (f *fakeTerminalRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeTransactionRepo struct {
	byID map[string]*transaction.Entity
	logs map[string][]transaction.LogEntry
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{byID: map[string]*transaction.Entity{}, logs: map[string][]transaction.LogEntry{}}
}
func (f *fakeTransactionRepo) Create(ctx context.Context, e *transaction.Entity) error {
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}
func (f *fakeTransactionRepo) FindByID(ctx context.Context, id string) (*transaction.Entity, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}
func (f *fakeTransactionRepo) AppendLog(ctx context.Context, id string, entry transaction.LogEntry) error {
	f.logs[id] = append(f.logs[id], entry)
	return nil
}
func (f *fakeTransactionRepo) UpdateStatusAtomic(ctx context.Context, id string, from, to transaction.Status) (*transaction.Entity, error) {
	e := f.byID[id]
	if e.Status != from {
		return nil, nil
	}
	e.Status = to
	return e, nil
}
func (f *fakeTransactionRepo) SaveSecure(ctx context.Context, id string, secure transaction.Secure3D) error {
	f.byID[id].Secure = secure
	return nil
}
func (f *fakeTransactionRepo) ClearCVV(ctx context.Context, id string) error {
	f.byID[id].Card.CVV = ""
	return nil
}
func (f *fakeTransactionRepo) GetDecryptedCard(ctx context.Context, e *transaction.Entity) (transaction.CardFields, error) {
	return transaction.CardFields{Number: "4111111111111111", Expiry: "12/30", CVV: "000", Holder: "Test Holder"}, nil
}

type stubAdapter struct{ provider.Base }

func (stubAdapter) Capabilities() provider.Capabilities {
	return provider.Capabilities{Initialize: true, GetFormHTML: true, ProcessCallback: true, ProcessProvision: true}
}
func (stubAdapter) Initialize(ctx context.Context, tx *transaction.Entity, t terminal.Entity) (provider.InitializeResult, error) {
	tx.Secure = transaction.Secure3D{Adapter: t.Provider, Payload: map[string]interface{}{"ok": true}}
	return provider.InitializeResult{OK: true}, nil
}
func (stubAdapter) GetFormHTML(ctx context.Context, tx *transaction.Entity, t terminal.Entity) (string, error) {
	return "<html></html>", nil
}
func (stubAdapter) ProcessCallback(ctx context.Context, tx *transaction.Entity, t terminal.Entity, postFields map[string]string) (provider.CallbackResult, error) {
	return provider.CallbackResult{Valid: true, Secure: tx.Secure}, nil
}
func (stubAdapter) ProcessProvision(ctx context.Context, tx *transaction.Entity, t terminal.Entity, secure transaction.Secure3D) (provider.ProvisionResult, error) {
	return provider.ProvisionResult{Approved: true, Code: "00", AuthCode: "123456"}, nil
}

func newTestService(t *testing.T) (*Service, *fakeTransactionRepo) {
	t.Helper()
	cipher := cryptoutil.NewFieldCipher("test-master-secret")
	txRepo := newFakeTransactionRepo()
	termRepo := &fakeTerminalRepo{entities: []terminal.Entity{{
		ID: "term-1", Provider: "stub", Active: true, Currencies: []terminal.Currency{terminal.TRY},
		DefaultForCurrencies: []terminal.Currency{terminal.TRY},
	}}}
	registry := provider.NewRegistry()
	registry.Register("stub", func(client *provider.HTTPClient, callbackBaseURL string) provider.Adapter {
		return stubAdapter{}
	})

	return NewService(Config{
		Terminals:       termRepo,
		Transactions:    txRepo,
		BinResolver:     fakeBinResolver{info: terminal.BinInfo{BankCode: "garanti", Family: "bonus"}},
		Registry:        registry,
		HTTPClient:      provider.NewHTTPClient(zap.NewNop(), false),
		Cipher:          cipher,
		CallbackBaseURL: "https://vpos.example",
		Logger:          zap.NewNop(),
	}), txRepo
}

func TestCreatePaymentMovesToProcessingOnValidInitialize(t *testing.T) {
	svc, _ := newTestService(t)
	result, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		Amount:   decimal.NewFromInt(150),
		Currency: terminal.TRY,
		Card:     transaction.CardFields{Number: "4111111111111111", Expiry: "12/30", CVV: "000"},
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	if !result.RequiresForm {
		t.Fatal("expected RequiresForm true")
	}
	if result.Transaction.Status != transaction.StatusProcessing {
		t.Fatalf("status = %q, want processing", result.Transaction.Status)
	}
	wantFormURL := "https://vpos.example/payment/" + result.Transaction.ID + "/form"
	if result.FormURL != wantFormURL {
		t.Fatalf("FormURL = %q, want %q", result.FormURL, wantFormURL)
	}
}

// TestCreatePaymentRejectsForeignCardOnNonTRYCurrency pins invariant 6
// (spec.md §8): a transaction with currency != "try" and BIN country == "tr"
// is rejected at createPayment, before a terminal is even selected.
func TestCreatePaymentRejectsForeignCardOnNonTRYCurrency(t *testing.T) {
	cipher := cryptoutil.NewFieldCipher("test-master-secret")
	txRepo := newFakeTransactionRepo()
	termRepo := &fakeTerminalRepo{entities: []terminal.Entity{{
		ID: "term-1", Provider: "stub", Active: true, Currencies: []terminal.Currency{terminal.TRY, terminal.EUR},
		DefaultForCurrencies: []terminal.Currency{terminal.TRY, terminal.EUR},
	}}}
	registry := provider.NewRegistry()
	registry.Register("stub", func(client *provider.HTTPClient, callbackBaseURL string) provider.Adapter {
		return stubAdapter{}
	})
	svc := NewService(Config{
		Terminals:       termRepo,
		Transactions:    txRepo,
		BinResolver:     fakeBinResolver{info: terminal.BinInfo{BankCode: "garanti", Country: "tr"}},
		Registry:        registry,
		HTTPClient:      provider.NewHTTPClient(zap.NewNop(), false),
		Cipher:          cipher,
		CallbackBaseURL: "https://vpos.example",
		Logger:          zap.NewNop(),
	})

	_, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		Amount:   decimal.NewFromInt(150),
		Currency: terminal.EUR,
		Card:     transaction.CardFields{Number: "4111111111111111", Expiry: "12/30", CVV: "000"},
	})
	if err == nil {
		t.Fatal("expected CreatePayment to reject a foreign card paid in a non-try currency")
	}
	if len(txRepo.byID) != 0 {
		t.Fatal("expected no transaction to be created when the currency gate rejects")
	}
}

func TestProcessCallbackMovesToSuccess(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		Amount:   decimal.NewFromInt(150),
		Currency: terminal.TRY,
		Card:     transaction.CardFields{Number: "4111111111111111", Expiry: "12/30", CVV: "000"},
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	view, err := svc.ProcessCallback(context.Background(), created.Transaction.ID, map[string]string{"mdstatus": "1"})
	if err != nil {
		t.Fatalf("ProcessCallback: %v", err)
	}
	if view.Status != transaction.StatusSuccess {
		t.Fatalf("status = %q, want success", view.Status)
	}
}

func TestProcessCallbackOnTerminalTransactionIsNoOp(t *testing.T) {
	svc, txRepo := newTestService(t)
	created, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		Amount:   decimal.NewFromInt(150),
		Currency: terminal.TRY,
		Card:     transaction.CardFields{Number: "4111111111111111", Expiry: "12/30", CVV: "000"},
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	txRepo.byID[created.Transaction.ID].Status = transaction.StatusSuccess

	view, err := svc.ProcessCallback(context.Background(), created.Transaction.ID, map[string]string{"mdstatus": "1"})
	if err != nil {
		t.Fatalf("ProcessCallback: %v", err)
	}
	if view.Status != transaction.StatusSuccess {
		t.Fatalf("status = %q, want success (unchanged)", view.Status)
	}
}
