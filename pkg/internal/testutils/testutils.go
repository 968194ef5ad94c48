package testutils

import (
	"bytes"
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/require"

	"github.com/venuekit/amm-interface/pkg/amm"
)

// Context returns a context with the test's deadline, if available.
func Context(tb testing.TB) context.Context {
	ctx := context.Background()
	var cancel func()
	switch t := tb.(type) {
	case *testing.T:
		if d, ok := t.Deadline(); ok {
			ctx, cancel = context.WithDeadline(ctx, d)
		}
	}
	if cancel == nil {
		ctx, cancel = context.WithCancel(ctx)
	}
	tb.Cleanup(cancel)
	return ctx
}

// RandomKey returns a fresh public key.
func RandomKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

// BinEncode serializes v with the bin encoder used for fixed account layouts.
func BinEncode(tb testing.TB, v interface{}) []byte {
	buf := new(bytes.Buffer)
	require.NoError(tb, bin.NewBinEncoder(buf).Encode(v))
	return buf.Bytes()
}

// TokenAccountData returns an initialized SPL token account holding amount of mint.
func TokenAccountData(tb testing.TB, mint, owner solana.PublicKey, amount uint64) []byte {
	buf := new(bytes.Buffer)
	acc := token.Account{
		Mint:   mint,
		Owner:  owner,
		Amount: amount,
		State:  token.Initialized,
	}
	require.NoError(tb, acc.MarshalWithEncoder(bin.NewBinEncoder(buf)))
	return buf.Bytes()
}

// TokenAccount wraps TokenAccountData in an account owned by tokenProgram.
func TokenAccount(tb testing.TB, tokenProgram, mint, owner solana.PublicKey, amount uint64) *amm.Account {
	return &amm.Account{
		Lamports: 2039280,
		Data:     TokenAccountData(tb, mint, owner, amount),
		Owner:    tokenProgram,
	}
}

// ClockAccount returns the Clock sysvar account for c.
func ClockAccount(tb testing.TB, c amm.Clock) *amm.Account {
	return &amm.Account{
		Lamports: 1169280,
		Data:     BinEncode(tb, c),
		Owner:    solana.MustPublicKeyFromBase58("Sysvar1111111111111111111111111111111111111"),
	}
}
