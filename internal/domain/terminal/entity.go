// Package terminal models the Terminal (VirtualPos) entity: the binding
// between one merchant and one acquirer, its credentials, 3-D Secure and
// installment configuration, and the acquirer-selection policy over a set
// of terminals.
package terminal

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankCode is drawn from a closed enumeration of acquirer banks.
type BankCode string

const (
	BankGaranti    BankCode = "garanti"
	BankAkbank     BankCode = "akbank"
	BankYKB        BankCode = "ykb"
	BankVakifbank  BankCode = "vakifbank"
	BankPayten     BankCode = "payten"
	BankQNB        BankCode = "qnb"
	BankDenizbank  BankCode = "denizbank"
	BankKuveytturk BankCode = "kuveytturk"
	BankPaytr      BankCode = "paytr"
	BankIyzico     BankCode = "iyzico"
	BankSigmapay   BankCode = "sigmapay"
)

// Provider is the adapter tag the registry dispatches on. Several bank
// codes share a single protocol adapter (e.g. every Payten/NestPay-licensed
// bank speaks the same wire protocol).
type Provider string

const (
	ProviderGaranti   Provider = "garanti"
	ProviderPayten    Provider = "payten"
	ProviderYKB       Provider = "ykb"
	ProviderVakifbank Provider = "vakifbank"
	ProviderQNB       Provider = "qnb"
	ProviderIyzico    Provider = "iyzico"
)

// Currency is a closed enum of the currencies the orchestrator handles.
type Currency string

const (
	TRY Currency = "try"
	EUR Currency = "eur"
	USD Currency = "usd"
	GBP Currency = "gbp"
)

// Credentials holds acquirer-issued identifiers. Password, SecretKey, and
// Extra are encrypted at rest; their ciphertext carries the
// cryptoutil.FieldCipher sentinel so re-encryption is idempotent.
type Credentials struct {
	MerchantID string `bson:"merchant_id"`
	TerminalID string `bson:"terminal_id"`
	Username   string `bson:"username"`
	Password   string `bson:"password"`   // ciphertext
	SecretKey  string `bson:"secret_key"` // ciphertext (storeKey / apiSecret)
	Extra      string `bson:"extra"`      // ciphertext JSON, decrypted lazily
}

// ThreeDSecureConfig controls whether and how 3-D Secure is driven for this
// terminal.
type ThreeDSecureConfig struct {
	Enabled  bool `bson:"enabled"`
	Required bool `bson:"required"`
	StoreKey bool `bson:"store_key"`
}

// CampaignRate is a per-card-family or per-BIN-prefix installment campaign.
type CampaignRate struct {
	CardFamily string          `bson:"card_family,omitempty"`
	BINPrefix  string          `bson:"bin_prefix,omitempty"`
	Rate       decimal.Decimal `bson:"rate"`
}

// InstallmentPolicy governs whether and how a terminal offers installments.
type InstallmentPolicy struct {
	Enabled      bool                       `bson:"enabled"`
	MinCount     int                        `bson:"min_count"`
	MaxCount     int                        `bson:"max_count"`
	MinAmount    decimal.Decimal            `bson:"min_amount"`
	RatesByCount map[int]decimal.Decimal    `bson:"rates_by_count"`
	Campaigns    []CampaignRate             `bson:"campaigns"`
}

// CommissionPeriod is a time-indexed commission rate window.
type CommissionPeriod struct {
	From time.Time       `bson:"from"`
	To   time.Time       `bson:"to"`
	Rate decimal.Decimal `bson:"rate"`
}

// Limits bounds the per-transaction amount a terminal may authorize.
type Limits struct {
	MinAmount decimal.Decimal `bson:"min_amount"`
	MaxAmount decimal.Decimal `bson:"max_amount"`
}

// Entity is the persisted Terminal (VirtualPos) aggregate.
type Entity struct {
	ID                   string               `bson:"_id"`
	Company              string               `bson:"company"`
	Name                 string               `bson:"name"`
	BankCode             BankCode             `bson:"bank_code"`
	Provider             Provider             `bson:"provider"`
	Currencies           []Currency           `bson:"currencies"`
	DefaultForCurrencies []Currency           `bson:"default_for_currencies"`
	Priority             int                  `bson:"priority"`
	Active               bool                 `bson:"active"`
	TestMode             bool                 `bson:"test_mode"`
	InsecureSkipVerify   bool                 `bson:"insecure_skip_verify"`
	Credentials          Credentials          `bson:"credentials"`
	ThreeDSecure         ThreeDSecureConfig   `bson:"three_d_secure"`
	Installment          InstallmentPolicy    `bson:"installment"`
	CommissionPeriods    []CommissionPeriod   `bson:"commission_periods"`
	Limits               Limits               `bson:"limits"`
	SupportedCardFamilies []string            `bson:"supported_card_families"`
	CreatedAt            time.Time            `bson:"created_at"`
	UpdatedAt            time.Time            `bson:"updated_at"`
}

// SupportsCurrency reports whether cur is in the terminal's accepted set.
func (t Entity) SupportsCurrency(cur Currency) bool {
	for _, c := range t.Currencies {
		if c == cur {
			return true
		}
	}
	return false
}

// IsDefaultForCurrency reports whether t is the default terminal for cur.
func (t Entity) IsDefaultForCurrency(cur Currency) bool {
	for _, c := range t.DefaultForCurrencies {
		if c == cur {
			return true
		}
	}
	return false
}

// SupportsCardFamily reports case-insensitive membership of family in the
// terminal's supported card families.
func (t Entity) SupportsCardFamily(family string) bool {
	for _, f := range t.SupportedCardFamilies {
		if equalFold(f, family) {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
