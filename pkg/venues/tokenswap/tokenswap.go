// Package tokenswap is a constant product venue backed by the SPL token-swap program.
package tokenswap

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/venuekit/amm-interface/pkg/amm"
	"github.com/venuekit/amm-interface/pkg/swap"
	"github.com/venuekit/amm-interface/pkg/venues/internal/curve"
)

const Label = "Token Swap"

var ProgramID = solana.TokenSwapProgramID

var _ amm.Factory = New

type TokenSwap struct {
	amm.Defaults

	key       solana.PublicKey
	programID solana.PublicKey
	authority solana.PublicKey
	state     State

	reserves [2]uint64
	updated  bool
}

// New decodes the swap account. Reserves are unknown until Update.
func New(ka amm.KeyedAccount, _ amm.AmmContext) (amm.Amm, error) {
	state, err := DecodeState(ka.Account.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "pool %s", ka.Key)
	}
	authority, err := solana.CreateProgramAddress([][]byte{ka.Key[:], {state.BumpSeed}}, ka.Account.Owner)
	if err != nil {
		return nil, errors.Wrapf(amm.ErrMalformedState, "pool %s: authority: %v", ka.Key, err)
	}
	return &TokenSwap{
		key:       ka.Key,
		programID: ka.Account.Owner,
		authority: authority,
		state:     state,
	}, nil
}

func (t *TokenSwap) Label() string               { return Label }
func (t *TokenSwap) ProgramID() solana.PublicKey { return t.programID }
func (t *TokenSwap) Key() solana.PublicKey       { return t.key }
func (t *TokenSwap) Authority() solana.PublicKey { return t.authority }
func (t *TokenSwap) State() State                { return t.state }
func (t *TokenSwap) Reserves() (a, b uint64)     { return t.reserves[0], t.reserves[1] }
func (t *TokenSwap) GetAccountsLen() int         { return 11 }
func (t *TokenSwap) IsActive() bool              { return t.updated }

func (t *TokenSwap) GetReserveMints() []solana.PublicKey {
	return []solana.PublicKey{t.state.TokenAMint, t.state.TokenBMint}
}

func (t *TokenSwap) GetAccountsToUpdate() []solana.PublicKey {
	return []solana.PublicKey{t.state.TokenA, t.state.TokenB}
}

func (t *TokenSwap) ProgramDependencies() []amm.ProgramDependency {
	return []amm.ProgramDependency{{ProgramID: t.programID, Name: "spl_token_swap"}}
}

func (t *TokenSwap) Update(accounts amm.AccountProvider) error {
	a, err := decodeVault(accounts, t.state.TokenA, t.state.TokenAMint)
	if err != nil {
		return err
	}
	b, err := decodeVault(accounts, t.state.TokenB, t.state.TokenBMint)
	if err != nil {
		return err
	}
	t.reserves = [2]uint64{a, b}
	t.updated = true
	return nil
}

// direction returns the reserve index of the input mint.
func (t *TokenSwap) direction(in, out solana.PublicKey) (int, error) {
	switch {
	case in.Equals(t.state.TokenAMint) && out.Equals(t.state.TokenBMint):
		return 0, nil
	case in.Equals(t.state.TokenBMint) && out.Equals(t.state.TokenAMint):
		return 1, nil
	}
	return 0, errors.Wrapf(amm.ErrUnsupportedMint, "pool %s cannot trade %s -> %s", t.key, in, out)
}

// fee mirrors the program: a non-zero rate on a non-zero amount charges at least one unit.
func fee(amount, num, den uint64) uint64 {
	if num == 0 || amount == 0 {
		return 0
	}
	f, _ := curve.MulDivFloor(amount, num, den)
	if f == 0 {
		return 1
	}
	return f
}

func (t *TokenSwap) Quote(params amm.QuoteParams) (amm.Quote, error) {
	if params.SwapMode != amm.ExactIn {
		return amm.Quote{}, errors.Wrapf(amm.ErrExactOutUnsupported, "pool %s", t.key)
	}
	i, err := t.direction(params.InputMint, params.OutputMint)
	if err != nil {
		return amm.Quote{}, err
	}
	src, dst := t.reserves[i], t.reserves[1-i]
	if src == 0 || dst == 0 {
		return amm.Quote{}, errors.Wrapf(amm.ErrInsufficientLiquidity, "pool %s has empty reserves", t.key)
	}

	var tradeFee, ownerFee uint64
	feePct := decimal.Zero
	if params.FeeMode == amm.FeeModeNormal {
		f := t.state.Fees
		tradeFee = fee(params.Amount, f.TradeFeeNumerator, f.TradeFeeDenominator)
		ownerFee = fee(params.Amount, f.OwnerTradeFeeNumerator, f.OwnerTradeFeeDenominator)
		feePct = curve.Ratio(f.TradeFeeNumerator, f.TradeFeeDenominator).Add(curve.Ratio(f.OwnerTradeFeeNumerator, f.OwnerTradeFeeDenominator))
	}
	totalFee := tradeFee + ownerFee
	if totalFee >= params.Amount {
		return amm.Quote{}, errors.Wrapf(amm.ErrInsufficientLiquidity, "pool %s: amount %d does not cover fee %d", t.key, params.Amount, totalFee)
	}

	out := curve.ConstantProductOut(src, dst, params.Amount-totalFee)
	if out == 0 {
		return amm.Quote{}, errors.Wrapf(amm.ErrInsufficientLiquidity, "pool %s: amount %d trades for nothing", t.key, params.Amount)
	}
	return amm.Quote{
		InAmount:  params.Amount,
		OutAmount: out,
		FeeAmount: totalFee,
		FeeMint:   params.InputMint,
		FeePct:    feePct,
	}, nil
}

func (t *TokenSwap) GetSwapAndAccountMetas(params amm.SwapParams) (amm.SwapAndAccountMetas, error) {
	i, err := t.direction(params.SourceMint, params.DestinationMint)
	if err != nil {
		return amm.SwapAndAccountMetas{}, err
	}
	vaults := [2]solana.PublicKey{t.state.TokenA, t.state.TokenB}

	metas := []*solana.AccountMeta{
		solana.Meta(t.key),
		solana.Meta(t.authority),
		solana.Meta(params.TokenTransferAuthority).SIGNER(),
		solana.Meta(params.SourceTokenAccount).WRITE(),
		solana.Meta(vaults[i]).WRITE(),
		solana.Meta(vaults[1-i]).WRITE(),
		solana.Meta(params.DestinationTokenAccount).WRITE(),
		solana.Meta(t.state.PoolMint).WRITE(),
		solana.Meta(t.state.PoolFeeAccount).WRITE(),
		solana.Meta(t.state.TokenProgramID),
	}
	if host, ok := params.Referrer(t.state.PoolMint); ok {
		metas = append(metas, solana.Meta(host).WRITE())
	}
	return amm.SwapAndAccountMetas{
		Swap:         swap.TokenSwap{},
		AccountMetas: metas,
	}, nil
}

func (t *TokenSwap) Clone() amm.Amm {
	c := *t
	return &c
}
