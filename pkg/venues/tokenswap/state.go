package tokenswap

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/pkg/errors"

	"github.com/venuekit/amm-interface/pkg/amm"
)

const (
	// StateLen is the size of a version 1 swap account: version byte plus the SwapV1 layout.
	StateLen = 1 + 1 + 1 + 7*32 + 8*8 + 1 + 32

	stateVersion = 1

	CurveConstantProduct uint8 = 0
)

// State is the swap account of the SPL token-swap program.
type State struct {
	Version        uint8
	IsInitialized  bool
	BumpSeed       uint8
	TokenProgramID solana.PublicKey
	TokenA         solana.PublicKey // vault
	TokenB         solana.PublicKey // vault
	PoolMint       solana.PublicKey
	TokenAMint     solana.PublicKey
	TokenBMint     solana.PublicKey
	PoolFeeAccount solana.PublicKey
	Fees           Fees
	CurveType      uint8
	CurveParams    [32]byte
}

// Fees are numerator/denominator pairs.
type Fees struct {
	TradeFeeNumerator           uint64
	TradeFeeDenominator         uint64
	OwnerTradeFeeNumerator      uint64
	OwnerTradeFeeDenominator    uint64
	OwnerWithdrawFeeNumerator   uint64
	OwnerWithdrawFeeDenominator uint64
	HostFeeNumerator            uint64
	HostFeeDenominator          uint64
}

func DecodeState(data []byte) (State, error) {
	if len(data) < StateLen {
		return State{}, errors.Wrapf(amm.ErrMalformedState, "token swap: expected %d bytes, got %d", StateLen, len(data))
	}
	var s State
	if err := bin.NewBinDecoder(data[:StateLen]).Decode(&s); err != nil {
		return State{}, errors.Wrapf(amm.ErrMalformedState, "token swap: %v", err)
	}
	switch {
	case s.Version != stateVersion:
		return State{}, errors.Wrapf(amm.ErrMalformedState, "token swap: unsupported version %d", s.Version)
	case !s.IsInitialized:
		return State{}, errors.Wrap(amm.ErrMalformedState, "token swap: not initialized")
	case s.CurveType != CurveConstantProduct:
		return State{}, errors.Wrapf(amm.ErrMalformedState, "token swap: unsupported curve type %d", s.CurveType)
	}
	f := s.Fees
	for _, pair := range [][2]uint64{
		{f.TradeFeeNumerator, f.TradeFeeDenominator},
		{f.OwnerTradeFeeNumerator, f.OwnerTradeFeeDenominator},
	} {
		if pair[0] > 0 && pair[0] >= pair[1] {
			return State{}, errors.Wrapf(amm.ErrMalformedState, "token swap: invalid fee %d/%d", pair[0], pair[1])
		}
	}
	return s, nil
}

// decodeVault reads the token account at key and checks it holds mint.
func decodeVault(accounts amm.AccountProvider, key, mint solana.PublicKey) (uint64, error) {
	data, err := amm.TryGetAccountData(accounts, key)
	if err != nil {
		return 0, err
	}
	var acc token.Account
	if err := acc.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return 0, errors.Wrapf(amm.ErrMalformedState, "vault %s: %v", key, err)
	}
	if !acc.Mint.Equals(mint) {
		return 0, errors.Wrapf(amm.ErrMalformedState, "vault %s holds %s, expected %s", key, acc.Mint, mint)
	}
	return acc.Amount, nil
}
