package amm

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// QuoteParams describes a quote request. Amount is the exact input size for ExactIn
// and the exact output size for ExactOut.
type QuoteParams struct {
	Amount     uint64
	InputMint  solana.PublicKey
	OutputMint solana.PublicKey
	SwapMode   SwapMode
	FeeMode    FeeMode
}

type Quote struct {
	MinInAmount  *uint64
	MinOutAmount *uint64
	InAmount     uint64
	OutAmount    uint64
	FeeAmount    uint64
	FeeMint      solana.PublicKey
	// FeePct is informational; FeeAmount carries the charged amount.
	FeePct decimal.Decimal
}

var one = decimal.NewFromInt(1)

// Validate checks the quote against the request it was produced for: the fee mint is
// one of the two traded mints and the fee fraction lies in [0,1).
func (q Quote) Validate(params QuoteParams) error {
	if !q.FeeMint.Equals(params.InputMint) && !q.FeeMint.Equals(params.OutputMint) {
		return errors.Wrapf(ErrInvalidQuote, "fee mint %s is neither input %s nor output %s", q.FeeMint, params.InputMint, params.OutputMint)
	}
	if q.FeePct.IsNegative() || q.FeePct.GreaterThanOrEqual(one) {
		return errors.Wrapf(ErrInvalidQuote, "fee pct %s out of range [0,1)", q.FeePct)
	}
	return nil
}
