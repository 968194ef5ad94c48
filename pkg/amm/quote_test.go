package amm

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_Validate(t *testing.T) {
	t.Parallel()
	in, out := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	params := QuoteParams{Amount: 100, InputMint: in, OutputMint: out}

	for _, tc := range []struct {
		name  string
		quote Quote
		ok    bool
	}{
		{"input fee", Quote{FeeMint: in, FeePct: decimal.RequireFromString("0.003")}, true},
		{"output fee", Quote{FeeMint: out}, true},
		{"foreign fee mint", Quote{FeeMint: solana.SolMint}, false},
		{"negative pct", Quote{FeeMint: in, FeePct: decimal.NewFromInt(-1)}, false},
		{"full pct", Quote{FeeMint: in, FeePct: decimal.NewFromInt(1)}, false},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.quote.Validate(params)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidQuote)
		})
	}
}
