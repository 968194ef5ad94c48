package cpswap

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/pkg/errors"

	"github.com/venuekit/amm-interface/pkg/amm"
)

const (
	// PoolStateLen: discriminator, 10 keys, 5 u8, 7 u64, 31 u64 padding.
	PoolStateLen = 8 + 10*32 + 5 + 7*8 + 31*8
	// AmmConfigLen: discriminator, u8, bool, u16, 4 u64, 2 keys, 16 u64 padding.
	AmmConfigLen = 8 + 1 + 1 + 2 + 4*8 + 2*32 + 16*8

	// FeeRateDenominator is the denominator of every rate in AmmConfig.
	FeeRateDenominator = 1_000_000

	statusSwapDisabled uint8 = 1 << 2
)

var (
	PoolStateDiscriminator = bin.SighashTypeID(bin.SIGHASH_ACCOUNT_NAMESPACE, "PoolState")
	AmmConfigDiscriminator = bin.SighashTypeID(bin.SIGHASH_ACCOUNT_NAMESPACE, "AmmConfig")
)

type PoolState struct {
	AccountDiscriminator [8]byte
	AmmConfig            solana.PublicKey
	PoolCreator          solana.PublicKey
	Token0Vault          solana.PublicKey
	Token1Vault          solana.PublicKey
	LpMint               solana.PublicKey
	Token0Mint           solana.PublicKey
	Token1Mint           solana.PublicKey
	Token0Program        solana.PublicKey
	Token1Program        solana.PublicKey
	ObservationKey       solana.PublicKey
	AuthBump             uint8
	Status               uint8 // bit 0 disables deposit, bit 1 withdraw, bit 2 swap
	LpMintDecimals       uint8
	Mint0Decimals        uint8
	Mint1Decimals        uint8
	LpSupply             uint64
	ProtocolFeesToken0   uint64
	ProtocolFeesToken1   uint64
	FundFeesToken0       uint64
	FundFeesToken1       uint64
	OpenTime             uint64
	RecentEpoch          uint64
	Padding              [31]uint64
}

func (p PoolState) SwapEnabled() bool {
	return p.Status&statusSwapDisabled == 0
}

type AmmConfig struct {
	AccountDiscriminator [8]byte
	Bump                 uint8
	DisableCreatePool    bool
	Index                uint16
	TradeFeeRate         uint64
	ProtocolFeeRate      uint64
	FundFeeRate          uint64
	CreatePoolFee        uint64
	ProtocolOwner        solana.PublicKey
	FundOwner            solana.PublicKey
	Padding              [16]uint64
}

func decodeAnchor(name string, data []byte, size int, disc bin.TypeID, v interface{}) error {
	if len(data) < size {
		return errors.Wrapf(amm.ErrMalformedState, "%s: expected %d bytes, got %d", name, size, len(data))
	}
	if got := bin.TypeIDFromBytes(data[:8]); got != disc {
		return errors.Wrapf(amm.ErrMalformedState, "%s: invalid discriminator %x", name, got[:])
	}
	if err := bin.NewBinDecoder(data[:size]).Decode(v); err != nil {
		return errors.Wrapf(amm.ErrMalformedState, "%s: %v", name, err)
	}
	return nil
}

// IsPoolState reports whether data carries the PoolState discriminator. The program
// also owns config and observation accounts.
func IsPoolState(data []byte) bool {
	return len(data) >= 8 && bin.TypeIDFromBytes(data[:8]) == PoolStateDiscriminator
}

func DecodePoolState(data []byte) (PoolState, error) {
	var p PoolState
	if err := decodeAnchor("pool state", data, PoolStateLen, PoolStateDiscriminator, &p); err != nil {
		return PoolState{}, err
	}
	return p, nil
}

func DecodeAmmConfig(data []byte) (AmmConfig, error) {
	var c AmmConfig
	if err := decodeAnchor("amm config", data, AmmConfigLen, AmmConfigDiscriminator, &c); err != nil {
		return AmmConfig{}, err
	}
	if c.TradeFeeRate >= FeeRateDenominator {
		return AmmConfig{}, errors.Wrapf(amm.ErrMalformedState, "amm config: trade fee rate %d", c.TradeFeeRate)
	}
	return c, nil
}

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
