package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/venuekit/amm-interface/pkg/amm"
	"github.com/venuekit/amm-interface/pkg/logger"
	"github.com/venuekit/amm-interface/pkg/market"
	"github.com/venuekit/amm-interface/pkg/metrics"
	"github.com/venuekit/amm-interface/pkg/swap"
	"github.com/venuekit/amm-interface/pkg/venues/cpswap"
	"github.com/venuekit/amm-interface/pkg/venues/tokenswap"
)

func encode(t *testing.T, v interface{}) []byte {
	buf := new(bytes.Buffer)
	require.NoError(t, bin.NewBinEncoder(buf).Encode(v))
	return buf.Bytes()
}

func tokenAccount(t *testing.T, mint, owner solana.PublicKey, amount uint64) amm.Account {
	buf := new(bytes.Buffer)
	acc := token.Account{Mint: mint, Owner: owner, Amount: amount, State: token.Initialized}
	require.NoError(t, acc.MarshalWithEncoder(bin.NewBinEncoder(buf)))
	return amm.Account{Lamports: 1, Data: buf.Bytes(), Owner: solana.TokenProgramID}
}

type pool struct {
	state    tokenswap.State
	snapshot []byte
}

// newPool writes a snapshot holding a Token Swap pool with 1e6 A and 2e6 B, its vaults,
// a CP-swap config account and a record that does not decode.
func newPool(t *testing.T) pool {
	key := solana.NewWallet().PublicKey()
	authority, bump, err := solana.FindProgramAddress([][]byte{key[:]}, tokenswap.ProgramID)
	require.NoError(t, err)
	state := tokenswap.State{
		Version:        1,
		IsInitialized:  true,
		BumpSeed:       bump,
		TokenProgramID: solana.TokenProgramID,
		TokenA:         solana.NewWallet().PublicKey(),
		TokenB:         solana.NewWallet().PublicKey(),
		PoolMint:       solana.NewWallet().PublicKey(),
		TokenAMint:     solana.NewWallet().PublicKey(),
		TokenBMint:     solana.NewWallet().PublicKey(),
		PoolFeeAccount: solana.NewWallet().PublicKey(),
		Fees: tokenswap.Fees{
			TradeFeeNumerator:        25,
			TradeFeeDenominator:      10000,
			OwnerTradeFeeNumerator:   5,
			OwnerTradeFeeDenominator: 10000,
		},
	}

	records := []interface{}{
		amm.KeyedAccount{Key: key, Account: amm.Account{Lamports: 1, Data: encode(t, state), Owner: tokenswap.ProgramID}}.ToUi(),
		amm.KeyedAccount{Key: state.TokenA, Account: tokenAccount(t, state.TokenAMint, authority, 1_000_000)}.ToUi(),
		amm.KeyedAccount{Key: state.TokenB, Account: tokenAccount(t, state.TokenBMint, authority, 2_000_000)}.ToUi(),
		amm.KeyedAccount{Key: solana.NewWallet().PublicKey(), Account: amm.Account{Lamports: 1, Data: encode(t, cpswap.AmmConfig{
			AccountDiscriminator: cpswap.AmmConfigDiscriminator,
			TradeFeeRate:         2500,
		}), Owner: cpswap.ProgramID}}.ToUi(),
		map[string]interface{}{"pubkey": "bogus"},
	}
	raw, err := json.Marshal(records)
	require.NoError(t, err)
	return pool{state: state, snapshot: raw}
}

func TestParseFlags(t *testing.T) {
	_, err := parseFlags([]string{"-in", "x"})
	require.Error(t, err)

	o, err := parseFlags([]string{"-in", "a", "-out", "b", "-amount", "5", "-mode", "ExactOut"})
	require.NoError(t, err)
	_, err = o.quoteParams()
	require.Error(t, err, "mints must be base58 keys")

	o.in, o.out = solana.SolMint.String(), solana.TokenProgramID.String()
	params, err := o.quoteParams()
	require.NoError(t, err)
	assert.Equal(t, amm.ExactOut, params.SwapMode)
	assert.Equal(t, uint64(5), params.Amount)
}

func TestVenueAccounts(t *testing.T) {
	accounts := []amm.KeyedAccount{
		{Account: amm.Account{Owner: tokenswap.ProgramID}},
		{Account: amm.Account{Owner: solana.TokenProgramID}},
	}
	assert.Len(t, venueAccounts(newRegistry(), accounts), 1)
}

func TestRun(t *testing.T) {
	p := newPool(t)
	args := []string{
		"-in", p.state.TokenAMint.String(),
		"-out", p.state.TokenBMint.String(),
		"-amount", "10000",
	}

	t.Run("stdin", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(context.Background(), args, bytes.NewReader(p.snapshot), &out))
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[1], tokenswap.Label)
		assert.Contains(t, lines[1], "19743")
	})

	t.Run("config and inspect", func(t *testing.T) {
		dir := t.TempDir()
		snapshot := filepath.Join(dir, "snapshot.json")
		require.NoError(t, os.WriteFile(snapshot, p.snapshot, 0o600))
		cfg := filepath.Join(dir, "amm.toml")
		require.NoError(t, os.WriteFile(cfg, []byte("SnapshotPath = \""+filepath.ToSlash(snapshot)+"\"\nLogLevel = \"error\"\n"), 0o600))

		var out bytes.Buffer
		user := solana.NewWallet().PublicKey()
		require.NoError(t, run(context.Background(), append(args, "-config", cfg, "-inspect", "-user", user.String()), strings.NewReader(""), &out))
		assert.Contains(t, out.String(), "Swap: TokenSwap 03")
		assert.Contains(t, out.String(), "Accounts[len=")
		assert.Contains(t, out.String(), "-S "+user.String())
	})

	t.Run("unknown pair", func(t *testing.T) {
		var out bytes.Buffer
		args := []string{"-in", solana.SolMint.String(), "-out", p.state.TokenBMint.String(), "-amount", "1"}
		require.NoError(t, run(context.Background(), args, bytes.NewReader(p.snapshot), &out))
		assert.Equal(t, 1, strings.Count(out.String(), "\n"))
	})
}

func TestLoadSnapshot_ProgramAccounts(t *testing.T) {
	p := newPool(t)
	accounts, err := amm.DecodeKeyedUiAccounts(p.snapshot)
	require.Error(t, err, "bogus record")
	require.Len(t, accounts, 4)

	registry := newRegistry()
	candidates := venueAccounts(registry, accounts)
	require.Len(t, candidates, 2, "pool and config account")

	core, logs := observer.New(zap.DebugLevel)
	cache := market.NewCache(registry, amm.AmmContext{}, logger.FromZap(zap.New(core)), metrics.New("test", prometheus.NewRegistry()), 1)
	require.NoError(t, cache.Load(context.Background(), candidates))
	require.Len(t, cache.Venues(), 1)
	assert.Equal(t, tokenswap.Label, cache.Venues()[0].Label())
	assert.Zero(t, logs.FilterLevelExact(zap.WarnLevel).Len())
	assert.Equal(t, 1, logs.FilterMessage("skipped account").Len())
}

// hookVenue returns fixed metas followed by transfer hook accounts.
type hookVenue struct {
	amm.Defaults
	key   solana.PublicKey
	fixed []*solana.AccountMeta
	hooks []swap.RemainingAccountsGroup
	// extra is added to the first declared slice length
	extra uint8
}

func (h *hookVenue) Label() string                            { return "Hooks" }
func (h *hookVenue) ProgramID() solana.PublicKey              { return solana.TokenSwapProgramID }
func (h *hookVenue) Key() solana.PublicKey                    { return h.key }
func (h *hookVenue) GetReserveMints() []solana.PublicKey      { return nil }
func (h *hookVenue) GetAccountsToUpdate() []solana.PublicKey  { return nil }
func (h *hookVenue) Update(amm.AccountProvider) error         { return nil }
func (h *hookVenue) Quote(amm.QuoteParams) (amm.Quote, error) { return amm.Quote{}, nil }

func (h *hookVenue) Clone() amm.Amm {
	c := *h
	return &c
}

func (h *hookVenue) GetSwapAndAccountMetas(amm.SwapParams) (amm.SwapAndAccountMetas, error) {
	trailing, info, err := swap.Build(h.hooks)
	if err != nil {
		return amm.SwapAndAccountMetas{}, err
	}
	info.Slices[0].Length += h.extra
	return amm.SwapAndAccountMetas{
		Swap:         swap.WhirlpoolSwapV2{AToB: true, RemainingAccountsInfo: info},
		AccountMetas: append(append([]*solana.AccountMeta{}, h.fixed...), trailing...),
	}, nil
}

func TestInspect_RemainingAccounts(t *testing.T) {
	hookA := solana.NewWallet().PublicKey()
	hookB := []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()}
	v := &hookVenue{
		key: solana.NewWallet().PublicKey(),
		fixed: []*solana.AccountMeta{
			solana.Meta(solana.NewWallet().PublicKey()).SIGNER(),
			solana.Meta(solana.NewWallet().PublicKey()).WRITE(),
		},
		hooks: []swap.RemainingAccountsGroup{
			{AccountsType: swap.TransferHookA, Accounts: []*solana.AccountMeta{solana.Meta(hookA)}},
			{AccountsType: swap.TransferHookB, Accounts: []*solana.AccountMeta{solana.Meta(hookB[0]), solana.Meta(hookB[1])}},
		},
	}

	var out bytes.Buffer
	require.NoError(t, inspect(&out, v, amm.SwapParams{}))
	assert.Contains(t, out.String(), "Accounts[len=2]")
	assert.Contains(t, out.String(), "RemainingAccounts[len=3]")
	assert.Contains(t, out.String(), "TransferHookA[len=1]")
	assert.Contains(t, out.String(), "TransferHookB[len=2]")
	assert.Contains(t, out.String(), hookB[1].String())

	v.extra = 10
	err := inspect(&bytes.Buffer{}, v, amm.SwapParams{})
	require.ErrorIs(t, err, swap.ErrRemainingAccountsMismatch)
}
