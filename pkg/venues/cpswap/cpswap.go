// Package cpswap is a constant product venue for CP-swap pools. Pools carry a config
// account with the fee rates and only trade once their open time has passed on chain.
package cpswap

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/venuekit/amm-interface/pkg/amm"
	"github.com/venuekit/amm-interface/pkg/swap"
	"github.com/venuekit/amm-interface/pkg/venues/internal/curve"
)

const DefaultLabel = "Raydium CP"

var (
	ProgramID = solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")

	authoritySeed = []byte("vault_and_lp_mint_auth_seed")

	ErrPoolNotOpen = errors.New("pool not open for swaps")
)

// Params is the optional venue configuration carried in KeyedAccount.Params.
type Params struct {
	Label string `json:"label"`
}

var _ amm.Factory = New

type CPSwap struct {
	amm.Defaults

	key       solana.PublicKey
	programID solana.PublicKey
	authority solana.PublicKey
	label     string
	clock     *amm.ClockRef

	pool     PoolState
	config   AmmConfig
	reserves [2]uint64
	updated  bool
}

// New decodes the pool account. The fee config and reserves are loaded by Update.
func New(ka amm.KeyedAccount, ctx amm.AmmContext) (amm.Amm, error) {
	if ctx.ClockRef == nil {
		return nil, errors.Errorf("pool %s: clock reference required", ka.Key)
	}
	if !IsPoolState(ka.Account.Data) {
		return nil, errors.Wrapf(amm.ErrNotVenueState, "%s", ka.Key)
	}
	pool, err := DecodePoolState(ka.Account.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "pool %s", ka.Key)
	}
	label := DefaultLabel
	if ka.Params != nil {
		var p Params
		if err := json.Unmarshal(ka.Params, &p); err != nil {
			return nil, errors.Wrapf(amm.ErrParse, "pool %s params: %v", ka.Key, err)
		}
		if p.Label != "" {
			label = p.Label
		}
	}
	authority, err := solana.CreateProgramAddress([][]byte{authoritySeed, {pool.AuthBump}}, ka.Account.Owner)
	if err != nil {
		return nil, errors.Wrapf(amm.ErrMalformedState, "pool %s: authority: %v", ka.Key, err)
	}
	return &CPSwap{
		key:       ka.Key,
		programID: ka.Account.Owner,
		authority: authority,
		label:     label,
		clock:     ctx.ClockRef,
		pool:      pool,
	}, nil
}

func (c *CPSwap) Label() string               { return c.label }
func (c *CPSwap) ProgramID() solana.PublicKey { return c.programID }
func (c *CPSwap) Key() solana.PublicKey       { return c.key }
func (c *CPSwap) Authority() solana.PublicKey { return c.authority }
func (c *CPSwap) Pool() PoolState             { return c.pool }
func (c *CPSwap) Config() AmmConfig           { return c.config }
func (c *CPSwap) Reserves() (r0, r1 uint64)   { return c.reserves[0], c.reserves[1] }
func (c *CPSwap) SupportsExactOut() bool      { return true }
func (c *CPSwap) GetAccountsLen() int         { return 13 }

func (c *CPSwap) GetReserveMints() []solana.PublicKey {
	return []solana.PublicKey{c.pool.Token0Mint, c.pool.Token1Mint}
}

func (c *CPSwap) GetAccountsToUpdate() []solana.PublicKey {
	return []solana.PublicKey{c.key, c.pool.AmmConfig, c.pool.Token0Vault, c.pool.Token1Vault}
}

func (c *CPSwap) ProgramDependencies() []amm.ProgramDependency {
	return []amm.ProgramDependency{{ProgramID: c.programID, Name: "raydium_cp_swap"}}
}

// IsActive reports whether swaps are enabled and the open time has passed.
func (c *CPSwap) IsActive() bool {
	return c.pool.SwapEnabled() && c.clock.UnixTimestamp() >= int64(c.pool.OpenTime)
}

func (c *CPSwap) Update(accounts amm.AccountProvider) error {
	data, err := amm.TryGetAccountData(accounts, c.key)
	if err != nil {
		return err
	}
	pool, err := DecodePoolState(data)
	if err != nil {
		return errors.Wrapf(err, "pool %s", c.key)
	}
	if !pool.AmmConfig.Equals(c.pool.AmmConfig) || !pool.Token0Vault.Equals(c.pool.Token0Vault) || !pool.Token1Vault.Equals(c.pool.Token1Vault) {
		return errors.Wrapf(amm.ErrMalformedState, "pool %s: accounts changed since construction", c.key)
	}

	data, err = amm.TryGetAccountData(accounts, pool.AmmConfig)
	if err != nil {
		return err
	}
	config, err := DecodeAmmConfig(data)
	if err != nil {
		return errors.Wrapf(err, "pool %s", c.key)
	}

	v0, err := decodeVault(accounts, pool.Token0Vault, pool.Token0Mint)
	if err != nil {
		return err
	}
	v1, err := decodeVault(accounts, pool.Token1Vault, pool.Token1Mint)
	if err != nil {
		return err
	}
	r0, ok0 := subFees(v0, pool.ProtocolFeesToken0, pool.FundFeesToken0)
	r1, ok1 := subFees(v1, pool.ProtocolFeesToken1, pool.FundFeesToken1)
	if !ok0 || !ok1 {
		return errors.Wrapf(amm.ErrMalformedState, "pool %s: accrued fees exceed vault balance", c.key)
	}

	c.pool, c.config = pool, config
	c.reserves = [2]uint64{r0, r1}
	c.updated = true
	return nil
}

func subFees(amount, protocol, fund uint64) (uint64, bool) {
	if protocol > amount || fund > amount-protocol {
		return 0, false
	}
	return amount - protocol - fund, true
}

func (c *CPSwap) direction(in, out solana.PublicKey) (int, error) {
	switch {
	case in.Equals(c.pool.Token0Mint) && out.Equals(c.pool.Token1Mint):
		return 0, nil
	case in.Equals(c.pool.Token1Mint) && out.Equals(c.pool.Token0Mint):
		return 1, nil
	}
	return 0, errors.Wrapf(amm.ErrUnsupportedMint, "pool %s cannot trade %s -> %s", c.key, in, out)
}

func (c *CPSwap) Quote(params amm.QuoteParams) (amm.Quote, error) {
	if !c.pool.SwapEnabled() {
		return amm.Quote{}, errors.Wrapf(ErrPoolNotOpen, "pool %s: swap disabled", c.key)
	}
	if now := c.clock.UnixTimestamp(); now < int64(c.pool.OpenTime) {
		return amm.Quote{}, errors.Wrapf(ErrPoolNotOpen, "pool %s opens at %d, now %d", c.key, c.pool.OpenTime, now)
	}
	i, err := c.direction(params.InputMint, params.OutputMint)
	if err != nil {
		return amm.Quote{}, err
	}
	src, dst := c.reserves[i], c.reserves[1-i]
	if !c.updated || src == 0 || dst == 0 {
		return amm.Quote{}, errors.Wrapf(amm.ErrInsufficientLiquidity, "pool %s has empty reserves", c.key)
	}

	rate := c.config.TradeFeeRate
	if params.FeeMode == amm.FeeModeIgnore {
		rate = 0
	}
	q := amm.Quote{
		FeeMint: params.InputMint,
		FeePct:  curve.Ratio(rate, FeeRateDenominator),
	}

	switch params.SwapMode {
	case amm.ExactIn:
		fee, _ := curve.MulDivCeil(params.Amount, rate, FeeRateDenominator)
		out := curve.ConstantProductOut(src, dst, params.Amount-fee)
		if out == 0 {
			return amm.Quote{}, errors.Wrapf(amm.ErrInsufficientLiquidity, "pool %s: amount %d trades for nothing", c.key, params.Amount)
		}
		q.InAmount, q.OutAmount, q.FeeAmount = params.Amount, out, fee
	case amm.ExactOut:
		inLessFee, ok := curve.ConstantProductIn(src, dst, params.Amount)
		if !ok {
			return amm.Quote{}, errors.Wrapf(amm.ErrInsufficientLiquidity, "pool %s: cannot buy %d of %d", c.key, params.Amount, dst)
		}
		in, ok := curve.MulDivCeil(inLessFee, FeeRateDenominator, FeeRateDenominator-rate)
		if !ok {
			return amm.Quote{}, errors.Wrapf(amm.ErrInsufficientLiquidity, "pool %s: input for %d overflows", c.key, params.Amount)
		}
		q.InAmount, q.OutAmount, q.FeeAmount = in, params.Amount, in-inLessFee
	default:
		return amm.Quote{}, errors.Wrapf(amm.ErrParse, "swap mode %d", params.SwapMode)
	}
	return q, nil
}

func (c *CPSwap) GetSwapAndAccountMetas(params amm.SwapParams) (amm.SwapAndAccountMetas, error) {
	i, err := c.direction(params.SourceMint, params.DestinationMint)
	if err != nil {
		return amm.SwapAndAccountMetas{}, err
	}
	vaults := [2]solana.PublicKey{c.pool.Token0Vault, c.pool.Token1Vault}
	programs := [2]solana.PublicKey{c.pool.Token0Program, c.pool.Token1Program}
	mints := [2]solana.PublicKey{c.pool.Token0Mint, c.pool.Token1Mint}
	payer := params.Payer
	if payer.IsZero() {
		payer = params.TokenTransferAuthority
	}
	// pools created before the oracle was introduced carry no observation account
	observation, err := params.DynamicAccountMeta(c.pool.ObservationKey, !c.pool.ObservationKey.IsZero(), true)
	if err != nil {
		return amm.SwapAndAccountMetas{}, errors.Wrapf(err, "pool %s observation", c.key)
	}

	return amm.SwapAndAccountMetas{
		Swap: swap.RaydiumCP{},
		AccountMetas: []*solana.AccountMeta{
			solana.Meta(payer).SIGNER(),
			solana.Meta(c.authority),
			solana.Meta(c.pool.AmmConfig),
			solana.Meta(c.key).WRITE(),
			solana.Meta(params.SourceTokenAccount).WRITE(),
			solana.Meta(params.DestinationTokenAccount).WRITE(),
			solana.Meta(vaults[i]).WRITE(),
			solana.Meta(vaults[1-i]).WRITE(),
			solana.Meta(programs[i]),
			solana.Meta(programs[1-i]),
			solana.Meta(mints[i]),
			solana.Meta(mints[1-i]),
			observation,
		},
	}, nil
}

// Clone shares the clock reference and copies everything else.
func (c *CPSwap) Clone() amm.Amm {
	cp := *c
	return &cp
}
