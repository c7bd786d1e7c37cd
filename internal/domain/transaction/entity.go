// Package transaction models a single payment attempt: its encrypted card
// fields, the opaque 3-D Secure envelope each adapter populates, the
// append-only exchange log, and the state machine that governs status
// transitions.
package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"vpos-orchestrator/internal/domain/terminal"
)

// Status is the transaction's position in the state machine graph of
// spec.md §4.5.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// LogType tags one append-only exchange log entry.
type LogType string

const (
	LogInit      LogType = "init"
	LogForm3D    LogType = "3d_form"
	LogCallback3D LogType = "3d_callback"
	LogProvision LogType = "provision"
	LogRefund    LogType = "refund"
	LogCancel    LogType = "cancel"
	LogStatus    LogType = "status"
	LogPreAuth   LogType = "pre_auth"
	LogPostAuth  LogType = "post_auth"
	LogError     LogType = "error"
)

// CardFields holds the card data for a single attempt. Holder, Number,
// Expiry, and CVV are encrypted at rest (cryptoutil.FieldCipher
// ciphertext); Masked and BIN are the clear, public-safe projection.
type CardFields struct {
	Holder string `bson:"holder"` // ciphertext
	Number string `bson:"number"` // ciphertext
	Expiry string `bson:"expiry"` // ciphertext, "MM/YY"
	CVV    string `bson:"cvv"`    // ciphertext; cleared to "" on success
	Masked string `bson:"masked"`
	BIN    string `bson:"bin"`
}

// BinSnapshot freezes the BIN resolver's answer at transaction-creation
// time, independent of the live resolver's state.
type BinSnapshot struct {
	Bank     terminal.BankCode `bson:"bank"`
	Brand    string            `bson:"brand"`
	CardType string            `bson:"card_type"`
	Family   string            `bson:"family"`
	Country  string            `bson:"country"`
}

// CustomerSnapshot carries the cardholder-supplied contact details.
type CustomerSnapshot struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Phone string `bson:"phone"`
	IP    string `bson:"ip"`
}

// Secure3D is the opaque, adapter-tagged 3-D Secure envelope. Payload is
// serialized verbatim by the store and never diffed field-by-field — see
// SPEC_FULL.md §4.3 on mixed-shape nested state.
type Secure3D struct {
	Adapter terminal.Provider      `bson:"adapter"`
	Payload map[string]interface{} `bson:"payload"`
	ECI     string                 `bson:"eci,omitempty"`
	CAVV    string                 `bson:"cavv,omitempty"`
	MD      string                 `bson:"md,omitempty"`
}

// Result is the terminal outcome of a transaction.
type Result struct {
	Success   bool   `bson:"success"`
	Code      string `bson:"code,omitempty"`
	Message   string `bson:"message,omitempty"`
	AuthCode  string `bson:"auth_code,omitempty"`
	RefNumber string `bson:"ref_number,omitempty"`
}

// LogEntry is one append-only record of an external exchange.
type LogEntry struct {
	Type     LogType     `bson:"type"`
	Request  interface{} `bson:"request"`
	Response interface{} `bson:"response"`
	At       time.Time   `bson:"at"`
}

// Entity is the persisted Transaction aggregate.
type Entity struct {
	ID           string           `bson:"_id"`
	TerminalID   string           `bson:"terminal_id"`
	Amount       decimal.Decimal  `bson:"amount"`
	Currency     terminal.Currency `bson:"currency"`
	Installment  int              `bson:"installment"`
	Card         CardFields       `bson:"card"`
	Bin          BinSnapshot      `bson:"bin"`
	Customer     CustomerSnapshot `bson:"customer"`
	Status       Status           `bson:"status"`
	Secure       Secure3D         `bson:"secure"`
	Result       Result           `bson:"result"`
	Logs         []LogEntry       `bson:"logs"`
	ExternalID   string           `bson:"external_id,omitempty"`
	RefundOfID   string           `bson:"refund_of_id,omitempty"`
	CancelOfID   string           `bson:"cancel_of_id,omitempty"`
	CreatedAt    time.Time        `bson:"created_at"`
	CompletedAt  *time.Time       `bson:"completed_at,omitempty"`
	RefundedAt   *time.Time       `bson:"refunded_at,omitempty"`
	CancelledAt  *time.Time       `bson:"cancelled_at,omitempty"`
}

// IsTerminalState reports whether the transaction has reached a state the
// state machine has no further outbound edges from.
func (e Entity) IsTerminalState() bool {
	return e.Status == StatusSuccess || e.Status == StatusFailed || e.Status == StatusCancelled
}

// PublicView is the safe, serializable projection spec.md §3/§8 requires:
// no encrypted field ever leaks beyond Masked and BIN.
type PublicView struct {
	ID          string      `json:"id"`
	Status      Status      `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    terminal.Currency `json:"currency"`
	Installment int         `json:"installment"`
	Card        PublicCard  `json:"card"`
	Result      Result      `json:"result"`
	CreatedAt   time.Time   `json:"createdAt"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

// PublicCard is the only card projection ever serialized to a client.
type PublicCard struct {
	Masked string `json:"masked"`
	BIN    string `json:"bin"`
}

// Public projects e into its public-safe view.
func (e Entity) Public() PublicView {
	return PublicView{
		ID:          e.ID,
		Status:      e.Status,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Installment: e.Installment,
		Card:        PublicCard{Masked: e.Card.Masked, BIN: e.Card.BIN},
		Result:      e.Result,
		CreatedAt:   e.CreatedAt,
		CompletedAt: e.CompletedAt,
	}
}
