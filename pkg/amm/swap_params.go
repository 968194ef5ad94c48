package amm

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/venuekit/amm-interface/pkg/swap"
)

// QuoteMintToReferrer maps a quote mint to the referrer token account collecting fees in it.
type QuoteMintToReferrer map[solana.PublicKey]solana.PublicKey

type SwapParams struct {
	SwapMode                SwapMode
	InAmount                uint64
	OutAmount               uint64
	SourceMint              solana.PublicKey
	DestinationMint         solana.PublicKey
	SourceTokenAccount      solana.PublicKey
	DestinationTokenAccount solana.PublicKey
	// TokenTransferAuthority is the user or the program authority over SourceTokenAccount.
	TokenTransferAuthority solana.PublicKey
	// Payer signs for venues that name a payer. Zero means TokenTransferAuthority.
	Payer               solana.PublicKey
	OpenOrderAddress    *solana.PublicKey
	QuoteMintToReferrer QuoteMintToReferrer
	AggregatorProgramID solana.PublicKey
	// MissingDynamicAccountsAsDefault substitutes the placeholder account for dynamic
	// accounts that are not known yet instead of failing.
	MissingDynamicAccountsAsDefault bool
}

// PlaceholderAccountMeta marks an unused optional account or terminates a run of
// remaining accounts. It is the aggregator program id, read-only.
func (p SwapParams) PlaceholderAccountMeta() *solana.AccountMeta {
	return solana.NewAccountMeta(p.AggregatorProgramID, false, false)
}

// DynamicAccountMeta returns the meta for a data-dependent account. When the account is
// unknown it returns the placeholder if the caller opted in, ErrMissingDynamicAccount otherwise.
func (p SwapParams) DynamicAccountMeta(key solana.PublicKey, found bool, writable bool) (*solana.AccountMeta, error) {
	if found {
		return solana.NewAccountMeta(key, writable, false), nil
	}
	if p.MissingDynamicAccountsAsDefault {
		return p.PlaceholderAccountMeta(), nil
	}
	return nil, errors.Wrapf(ErrMissingDynamicAccount, "dynamic account %s not resolved", key)
}

// Referrer looks up the referrer account for mint, if any.
func (p SwapParams) Referrer(mint solana.PublicKey) (solana.PublicKey, bool) {
	if p.QuoteMintToReferrer == nil {
		return solana.PublicKey{}, false
	}
	ref, ok := p.QuoteMintToReferrer[mint]
	return ref, ok
}

type SwapAndAccountMetas struct {
	Swap         swap.Swap
	AccountMetas []*solana.AccountMeta
}
