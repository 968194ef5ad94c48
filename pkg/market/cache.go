// Package market keeps a set of venues fresh and quotes across them.
package market

import (
	"context"
	"sort"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/venuekit/amm-interface/pkg/amm"
	"github.com/venuekit/amm-interface/pkg/logger"
	"github.com/venuekit/amm-interface/pkg/metrics"
)

// DefaultConcurrency bounds parallel refreshes when none is configured.
const DefaultConcurrency = 8

// Cache owns venue instances. Refreshes never mutate an instance readers can see: each
// venue is cloned, the clone refreshed, and the clone swapped in. Venue instances are
// compared by identity, so implementations must be pointer types.
type Cache struct {
	registry    *amm.Registry
	ammCtx      amm.AmmContext
	lggr        logger.Logger
	metrics     metrics.Metrics
	concurrency int

	mu     sync.RWMutex
	venues map[solana.PublicKey]amm.Amm
	order  []solana.PublicKey
}

func NewCache(registry *amm.Registry, ammCtx amm.AmmContext, lggr logger.Logger, m metrics.Metrics, concurrency int) *Cache {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if ammCtx.ClockRef == nil {
		ammCtx.ClockRef = &amm.ClockRef{}
	}
	return &Cache{
		registry:    registry,
		ammCtx:      ammCtx,
		lggr:        lggr,
		metrics:     m,
		concurrency: concurrency,
		venues:      map[solana.PublicKey]amm.Amm{},
	}
}

// Clock is the snapshot handed to every venue.
func (c *Cache) Clock() *amm.ClockRef {
	return c.ammCtx.ClockRef
}

// Load constructs a venue per account. Accounts a venue program owns that are not venue
// state are skipped silently. Failed records are skipped and reported in the combined
// error; a key loaded twice keeps the latest instance.
func (c *Cache) Load(ctx context.Context, accounts []amm.KeyedAccount) error {
	var merr error
	for _, ka := range accounts {
		if err := ctx.Err(); err != nil {
			return multierr.Append(merr, err)
		}
		v, err := c.registry.FromKeyedAccount(ka, c.ammCtx)
		if errors.Is(err, amm.ErrNotVenueState) {
			c.lggr.Debugw("skipped account", "key", ka.Key, "owner", ka.Account.Owner)
			continue
		}
		if err != nil {
			c.metrics.ObserveConstruct(ka.Account.Owner.String(), err)
			c.lggr.Warnw("failed to construct venue", "key", ka.Key, "owner", ka.Account.Owner, "err", err)
			merr = multierr.Append(merr, err)
			continue
		}
		c.metrics.ObserveConstruct(v.Label(), nil)
		c.put(v)
	}

	c.mu.RLock()
	n := len(c.venues)
	c.mu.RUnlock()
	c.metrics.SetVenues(n)
	c.lggr.Debugw("loaded venues", "accounts", len(accounts), "venues", n)
	return merr
}

// LoadUi decodes the transport records and loads the ones that decode.
func (c *Cache) LoadUi(ctx context.Context, records []amm.KeyedUiAccount) error {
	var merr error
	accounts := make([]amm.KeyedAccount, 0, len(records))
	for _, rec := range records {
		ka, err := rec.ToKeyedAccount()
		if err != nil {
			c.lggr.Warnw("failed to decode keyed account", "pubkey", rec.Pubkey, "err", err)
			merr = multierr.Append(merr, err)
			continue
		}
		accounts = append(accounts, ka)
	}
	return multierr.Append(merr, c.Load(ctx, accounts))
}

func (c *Cache) put(v amm.Amm) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.venues[v.Key()]; !ok {
		c.order = append(c.order, v.Key())
	}
	c.venues[v.Key()] = v
}

// replace swaps next in for prev unless prev was replaced meanwhile.
func (c *Cache) replace(prev, next amm.Amm) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.venues[prev.Key()]; !ok || cur != prev {
		return false
	}
	c.venues[prev.Key()] = next
	return true
}

func (c *Cache) Get(key solana.PublicKey) (amm.Amm, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.venues[key]
	return v, ok
}

// Venues returns the current instances in load order.
func (c *Cache) Venues() []amm.Amm {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]amm.Amm, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.venues[k])
	}
	return out
}

// AccountsToUpdate is the de-duplicated union of every venue's dependencies, plus the
// Clock sysvar.
func (c *Cache) AccountsToUpdate() []solana.PublicKey {
	seen := map[solana.PublicKey]struct{}{solana.SysVarClockPubkey: {}}
	out := []solana.PublicKey{solana.SysVarClockPubkey}
	for _, v := range c.Venues() {
		for _, k := range v.GetAccountsToUpdate() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// Update refreshes the clock when the provider carries it, then every venue. A venue
// whose refresh fails keeps its previous instance; its error is part of the result.
func (c *Cache) Update(ctx context.Context, accounts amm.AccountProvider) error {
	var merr error
	if _, ok := accounts.GetAccount(solana.SysVarClockPubkey); ok {
		if err := c.ammCtx.ClockRef.UpdateFromProvider(accounts); err != nil {
			c.lggr.Errorw("failed to update clock", "err", err)
			merr = multierr.Append(merr, err)
		} else {
			c.metrics.SetClockSlot(c.ammCtx.ClockRef.Slot())
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, v := range c.Venues() {
		v := v
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			next := v.Clone()
			err := next.Update(accounts)
			c.metrics.ObserveRefresh(v.Label(), err)
			if err != nil {
				c.lggr.Warnw("failed to refresh venue", "key", v.Key(), "label", v.Label(), "err", err)
				mu.Lock()
				merr = multierr.Append(merr, errors.Wrapf(err, "refresh %s", v.Key()))
				mu.Unlock()
				return nil
			}
			if !c.replace(v, next) {
				c.lggr.Debugw("venue replaced during refresh", "key", v.Key())
			}
			return nil
		})
	}
	return multierr.Append(merr, g.Wait())
}

// Result is the outcome of quoting one venue.
type Result struct {
	Venue amm.Amm
	Quote amm.Quote
	Err   error
}

// QuoteAll quotes every active venue trading the pair. Successful results come first,
// best first: highest output for ExactIn, lowest input for ExactOut.
func (c *Cache) QuoteAll(ctx context.Context, params amm.QuoteParams) ([]Result, error) {
	var candidates []amm.Amm
	for _, v := range c.Venues() {
		if v.IsActive() && trades(v, params.InputMint, params.OutputMint) {
			candidates = append(candidates, v)
		}
	}

	results := make([]Result, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, v := range candidates {
		i, v := i, v
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			q, err := amm.CheckedQuote(v, params)
			c.metrics.ObserveQuote(v.Label(), err)
			results[i] = Result{Venue: v, Quote: q, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		if a.Err != nil {
			return false
		}
		if params.SwapMode == amm.ExactOut {
			return a.Quote.InAmount < b.Quote.InAmount
		}
		return a.Quote.OutAmount > b.Quote.OutAmount
	})
	return results, nil
}

func trades(v amm.Amm, in, out solana.PublicKey) bool {
	var hasIn, hasOut bool
	for _, m := range v.GetReserveMints() {
		hasIn = hasIn || m.Equals(in)
		hasOut = hasOut || m.Equals(out)
	}
	return hasIn && hasOut
}
