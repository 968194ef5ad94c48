package market

import (
	"encoding/binary"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/venuekit/amm-interface/pkg/amm"
	"github.com/venuekit/amm-interface/pkg/internal/testutils"
	"github.com/venuekit/amm-interface/pkg/logger"
	"github.com/venuekit/amm-interface/pkg/metrics"
)

var (
	fakeProgram = testutils.RandomKey()
	mintA       = testutils.RandomKey()
	mintB       = testutils.RandomKey()
)

// fakeVenue pays rate units of B per unit of A. Its state account holds the key of a
// rate account; Update reads the rate from there. 8-byte accounts stand in for the
// program's other accounts.
type fakeVenue struct {
	amm.Defaults
	key         solana.PublicKey
	rateAccount solana.PublicKey
	rate        uint64
	// block, when set, holds Update until closed
	block chan struct{}
}

func newFakeVenue(ka amm.KeyedAccount, _ amm.AmmContext) (amm.Amm, error) {
	if len(ka.Account.Data) == 8 {
		return nil, errors.Wrap(amm.ErrNotVenueState, "fake config")
	}
	if len(ka.Account.Data) != 32 {
		return nil, errors.Wrap(amm.ErrMalformedState, "fake venue")
	}
	return &fakeVenue{key: ka.Key, rateAccount: solana.PublicKeyFromBytes(ka.Account.Data)}, nil
}

func (f *fakeVenue) Label() string                           { return "Fake" }
func (f *fakeVenue) ProgramID() solana.PublicKey             { return fakeProgram }
func (f *fakeVenue) Key() solana.PublicKey                   { return f.key }
func (f *fakeVenue) GetReserveMints() []solana.PublicKey     { return []solana.PublicKey{mintA, mintB} }
func (f *fakeVenue) GetAccountsToUpdate() []solana.PublicKey { return []solana.PublicKey{f.rateAccount} }
func (f *fakeVenue) IsActive() bool                          { return f.rate > 0 }

func (f *fakeVenue) Update(accounts amm.AccountProvider) error {
	if f.block != nil {
		<-f.block
	}
	data, err := amm.TryGetAccountData(accounts, f.rateAccount)
	if err != nil {
		return err
	}
	if len(data) != 8 {
		return errors.Wrap(amm.ErrMalformedState, "rate")
	}
	f.rate = binary.LittleEndian.Uint64(data)
	return nil
}

func (f *fakeVenue) Quote(params amm.QuoteParams) (amm.Quote, error) {
	if params.SwapMode == amm.ExactOut {
		in := (params.Amount + f.rate - 1) / f.rate
		return amm.Quote{InAmount: in, OutAmount: params.Amount, FeeMint: params.InputMint}, nil
	}
	return amm.Quote{InAmount: params.Amount, OutAmount: params.Amount * f.rate, FeeMint: params.InputMint}, nil
}

func (f *fakeVenue) GetSwapAndAccountMetas(amm.SwapParams) (amm.SwapAndAccountMetas, error) {
	return amm.SwapAndAccountMetas{}, nil
}

func (f *fakeVenue) Clone() amm.Amm {
	c := *f
	return &c
}

func rateData(rate uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, rate)
	return b
}

type harness struct {
	cache *Cache
	logs  *observer.ObservedLogs
	// venue key -> rate account
	venues map[solana.PublicKey]solana.PublicKey
}

func newHarness(t *testing.T, n int) harness {
	registry := amm.NewRegistry()
	registry.Register(fakeProgram, newFakeVenue)
	core, logs := observer.New(zap.DebugLevel)
	cache := NewCache(registry, amm.AmmContext{}, logger.FromZap(zap.New(core)), metrics.New("test", prometheus.NewRegistry()), 2)

	h := harness{cache: cache, logs: logs, venues: map[solana.PublicKey]solana.PublicKey{}}
	var accounts []amm.KeyedAccount
	for i := 0; i < n; i++ {
		key, rate := testutils.RandomKey(), testutils.RandomKey()
		h.venues[key] = rate
		accounts = append(accounts, amm.KeyedAccount{Key: key, Account: amm.Account{Data: rate.Bytes(), Owner: fakeProgram}})
	}
	require.NoError(t, cache.Load(testutils.Context(t), accounts))
	return h
}

// rates builds a provider assigning rate i+1 to the i-th venue in load order.
func (h harness) rates() amm.AccountMap {
	m := amm.AccountMap{}
	for i, v := range h.cache.Venues() {
		m[h.venues[v.Key()]] = &amm.Account{Data: rateData(uint64(i + 1))}
	}
	return m
}

func TestCache_Load(t *testing.T) {
	t.Parallel()
	h := newHarness(t, 3)
	assert.Len(t, h.cache.Venues(), 3)

	err := h.cache.Load(testutils.Context(t), []amm.KeyedAccount{
		{Key: testutils.RandomKey(), Account: amm.Account{Owner: solana.SystemProgramID}},
		{Key: testutils.RandomKey(), Account: amm.Account{Data: []byte{1}, Owner: fakeProgram}},
		{Key: testutils.RandomKey(), Account: amm.Account{Data: testutils.RandomKey().Bytes(), Owner: fakeProgram}},
		{Key: testutils.RandomKey(), Account: amm.Account{Data: make([]byte, 8), Owner: fakeProgram}},
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, amm.ErrNotVenueState)
	assert.ErrorIs(t, err, amm.ErrUnknownProgram)
	assert.ErrorIs(t, err, amm.ErrMalformedState)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Len(t, h.cache.Venues(), 4)
	assert.Equal(t, 2, h.logs.FilterMessage("failed to construct venue").Len())
	assert.Equal(t, 1, h.logs.FilterMessage("skipped account").Len())
}

func TestCache_LoadUi(t *testing.T) {
	t.Parallel()
	h := newHarness(t, 0)
	good := amm.KeyedAccount{Key: testutils.RandomKey(), Account: amm.Account{Data: testutils.RandomKey().Bytes(), Owner: fakeProgram}}
	bad := good.ToUi()
	bad.Pubkey = "nope"

	err := h.cache.LoadUi(testutils.Context(t), []amm.KeyedUiAccount{good.ToUi(), bad})
	require.ErrorIs(t, err, amm.ErrParse)
	_, ok := h.cache.Get(good.Key)
	assert.True(t, ok)
}

func TestCache_AccountsToUpdate(t *testing.T) {
	t.Parallel()
	h := newHarness(t, 2)
	// a second venue sharing the first venue's rate account
	first := h.venues[h.cache.Venues()[0].Key()]
	require.NoError(t, h.cache.Load(testutils.Context(t), []amm.KeyedAccount{
		{Key: testutils.RandomKey(), Account: amm.Account{Data: first.Bytes(), Owner: fakeProgram}},
	}))

	keys := h.cache.AccountsToUpdate()
	assert.Len(t, keys, 3)
	assert.Equal(t, solana.SysVarClockPubkey, keys[0])
	assert.Contains(t, keys, first)
}

func TestCache_Update(t *testing.T) {
	t.Parallel()
	h := newHarness(t, 3)
	ctx := testutils.Context(t)
	accounts := h.rates()
	accounts[solana.SysVarClockPubkey] = testutils.ClockAccount(t, amm.Clock{Slot: 42, UnixTimestamp: 1000})

	before := h.cache.Venues()
	require.NoError(t, h.cache.Update(ctx, accounts))
	after := h.cache.Venues()
	for i := range before {
		assert.Zero(t, before[i].(*fakeVenue).rate, "refresh must not touch the published instance")
		assert.Equal(t, uint64(i+1), after[i].(*fakeVenue).rate)
	}
	assert.Equal(t, uint64(42), h.cache.Clock().Slot())

	t.Run("failed refresh keeps previous instance", func(t *testing.T) {
		missing := h.rates()
		victim := after[1]
		delete(missing, h.venues[victim.Key()])

		err := h.cache.Update(ctx, missing)
		require.ErrorIs(t, err, amm.ErrAccountNotFound)
		got, ok := h.cache.Get(victim.Key())
		require.True(t, ok)
		assert.Same(t, victim, got)
		assert.Equal(t, 1, h.logs.FilterMessage("failed to refresh venue").Len())
	})
}

func TestCache_ReadersDuringRefresh(t *testing.T) {
	t.Parallel()
	h := newHarness(t, 1)
	ctx := testutils.Context(t)
	require.NoError(t, h.cache.Update(ctx, h.rates()))

	v := h.cache.Venues()[0].(*fakeVenue)
	release := make(chan struct{})
	v.block = release

	accounts := h.rates()
	accounts[h.venues[v.key]] = &amm.Account{Data: rateData(7)}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, h.cache.Update(ctx, accounts))
	}()

	params := amm.QuoteParams{Amount: 10, InputMint: mintA, OutputMint: mintB}
	results, err := h.cache.QuoteAll(ctx, params)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, uint64(10), results[0].Quote.OutAmount)

	close(release)
	wg.Wait()
	results, err = h.cache.QuoteAll(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, uint64(70), results[0].Quote.OutAmount)
}

func TestCache_QuoteAll(t *testing.T) {
	t.Parallel()
	h := newHarness(t, 3)
	ctx := testutils.Context(t)

	results, err := h.cache.QuoteAll(ctx, amm.QuoteParams{Amount: 10, InputMint: mintA, OutputMint: mintB})
	require.NoError(t, err)
	assert.Empty(t, results, "inactive before first refresh")

	require.NoError(t, h.cache.Update(ctx, h.rates()))

	results, err = h.cache.QuoteAll(ctx, amm.QuoteParams{Amount: 10, InputMint: mintA, OutputMint: mintB})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []uint64{30, 20, 10}, []uint64{results[0].Quote.OutAmount, results[1].Quote.OutAmount, results[2].Quote.OutAmount})

	results, err = h.cache.QuoteAll(ctx, amm.QuoteParams{Amount: 12, InputMint: mintA, OutputMint: mintB, SwapMode: amm.ExactOut})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		require.ErrorIs(t, r.Err, amm.ErrExactOutUnsupported)
	}

	results, err = h.cache.QuoteAll(ctx, amm.QuoteParams{Amount: 10, InputMint: mintA, OutputMint: solana.SolMint})
	require.NoError(t, err)
	assert.Empty(t, results)
}
