// Package bin implements the BIN-resolver external collaborator (spec.md
// §4.2/§9): a pluggable function BIN -> {bank, brand, type, family,
// country}, memoized in-process and, optionally, across orchestrator
// replicas.
package bin

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"

	"vpos-orchestrator/internal/domain/terminal"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

// LookupTimeout is the 5s BIN-lookup default from spec.md §5.
const LookupTimeout = 5 * time.Second

// Resolver resolves a BIN to its bank/brand/type/family/country.
type Resolver interface {
	Resolve(ctx context.Context, bin string) (terminal.BinInfo, error)
}

// HTTPResolver calls the injected upstream BIN lookup service over HTTP —
// an external collaborator per spec.md §1, not implemented by this core.
type HTTPResolver struct {
	client  *resty.Client
	baseURL string
}

func NewHTTPResolver(baseURL string) *HTTPResolver {
	return &HTTPResolver{client: resty.New().SetTimeout(LookupTimeout), baseURL: baseURL}
}

type binLookupResponse struct {
	Bank     string `json:"bank"`
	Brand    string `json:"brand"`
	CardType string `json:"type"`
	Family   string `json:"family"`
	Country  string `json:"country"`
}

func (r *HTTPResolver) Resolve(ctx context.Context, binDigits string) (terminal.BinInfo, error) {
	resp, err := r.client.R().SetContext(ctx).SetQueryParam("bin", binDigits).Get(r.baseURL)
	if err != nil {
		return terminal.BinInfo{}, pkgerrors.ErrNetwork.Wrap(err)
	}
	var body binLookupResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return terminal.BinInfo{}, pkgerrors.ErrValidation.Wrap(err)
	}
	return terminal.BinInfo{
		BankCode: terminal.BankCode(body.Bank),
		Brand:    body.Brand,
		CardType: body.CardType,
		Family:   body.Family,
		Country:  body.Country,
	}, nil
}
