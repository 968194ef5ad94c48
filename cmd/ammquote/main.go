// Command ammquote loads venues from an account snapshot and quotes a trade across them.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/treeout"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/venuekit/amm-interface/pkg/amm"
	"github.com/venuekit/amm-interface/pkg/config"
	"github.com/venuekit/amm-interface/pkg/logger"
	"github.com/venuekit/amm-interface/pkg/market"
	"github.com/venuekit/amm-interface/pkg/metrics"
	"github.com/venuekit/amm-interface/pkg/swap"
	"github.com/venuekit/amm-interface/pkg/venues/cpswap"
	"github.com/venuekit/amm-interface/pkg/venues/tokenswap"
)

type options struct {
	configPath string
	snapshot   string
	in, out    string
	amount     uint64
	mode       string
	user       string
	inspect    bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("ammquote", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "TOML config file")
	fs.StringVar(&o.snapshot, "snapshot", "", "JSON account snapshot, overrides SnapshotPath (default stdin)")
	fs.StringVar(&o.in, "in", "", "input mint")
	fs.StringVar(&o.out, "out", "", "output mint")
	fs.Uint64Var(&o.amount, "amount", 0, "amount in base units")
	fs.StringVar(&o.mode, "mode", amm.ExactIn.String(), "ExactIn or ExactOut")
	fs.StringVar(&o.user, "user", "", "wallet used to build swap accounts with -inspect")
	fs.BoolVar(&o.inspect, "inspect", false, "print the swap accounts of the best quote")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.in == "" || o.out == "" || o.amount == 0 {
		return options{}, errors.New("-in, -out and -amount are required")
	}
	return o, nil
}

func (o options) quoteParams() (amm.QuoteParams, error) {
	in, err := solana.PublicKeyFromBase58(o.in)
	if err != nil {
		return amm.QuoteParams{}, errors.Wrap(err, "invalid -in")
	}
	out, err := solana.PublicKeyFromBase58(o.out)
	if err != nil {
		return amm.QuoteParams{}, errors.Wrap(err, "invalid -out")
	}
	mode, err := amm.ParseSwapMode(o.mode)
	if err != nil {
		return amm.QuoteParams{}, err
	}
	return amm.QuoteParams{Amount: o.amount, InputMint: in, OutputMint: out, SwapMode: mode}, nil
}

func newRegistry() *amm.Registry {
	r := amm.NewRegistry()
	r.Register(tokenswap.ProgramID, tokenswap.New)
	r.Register(cpswap.ProgramID, cpswap.New)
	return r
}

// venueAccounts keeps the accounts owned by a registered program.
func venueAccounts(r *amm.Registry, accounts []amm.KeyedAccount) []amm.KeyedAccount {
	programs := map[solana.PublicKey]struct{}{}
	for _, p := range r.Programs() {
		programs[p] = struct{}{}
	}
	var out []amm.KeyedAccount
	for _, ka := range accounts {
		if _, ok := programs[ka.Account.Owner]; ok {
			out = append(out, ka)
		}
	}
	return out
}

func readSnapshot(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	params, err := opts.quoteParams()
	if err != nil {
		return err
	}

	var cfgValues config.Cfg
	if opts.configPath != "" {
		if cfgValues, err = config.ReadCfg(opts.configPath); err != nil {
			return err
		}
	}
	bootLggr, err := logger.New("info")
	if err != nil {
		return err
	}
	cfg := config.NewConfig(cfgValues, bootLggr.With("component", "config"))
	lggr, err := logger.New(cfg.LogLevel())
	if err != nil {
		return err
	}

	snapshotPath := cfg.SnapshotPath()
	if opts.snapshot != "" {
		snapshotPath = opts.snapshot
	}
	raw, err := readSnapshot(snapshotPath, stdin)
	if err != nil {
		return errors.Wrap(err, "failed to read snapshot")
	}
	accounts, err := amm.DecodeKeyedUiAccounts(raw)
	if err != nil {
		lggr.Warnw("skipped snapshot records", "count", len(multierr.Errors(err)), "err", err)
	}

	registry := newRegistry()
	cache := market.NewCache(
		registry,
		amm.AmmContext{ClockRef: &amm.ClockRef{}},
		lggr.With("component", "market"),
		metrics.New(cfg.MetricsNamespace(), prometheus.NewRegistry()),
		cfg.UpdateConcurrency(),
	)
	if err := cache.Load(ctx, venueAccounts(registry, accounts)); err != nil {
		lggr.Warnw("some venues failed to load", "err", err)
	}
	if err := cache.Update(ctx, amm.AccountMapFromKeyedAccounts(accounts)); err != nil {
		lggr.Warnw("some venues failed to refresh", "err", err)
	}

	results, err := cache.QuoteAll(ctx, params)
	if err != nil {
		return err
	}
	if err := printResults(stdout, results); err != nil {
		return err
	}
	if !opts.inspect || len(results) == 0 || results[0].Err != nil {
		return nil
	}

	var user solana.PublicKey
	if opts.user != "" {
		if user, err = solana.PublicKeyFromBase58(opts.user); err != nil {
			return errors.Wrap(err, "invalid -user")
		}
	}
	swapParams, err := userSwapParams(params, results[0].Quote, user, cfg)
	if err != nil {
		return err
	}
	return inspect(stdout, results[0].Venue, swapParams)
}

func printResults(w io.Writer, results []market.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VENUE\tKEY\tIN\tOUT\tFEE\tFEE PCT\tERROR")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\t\t\t\t\t%v\n", r.Venue.Label(), r.Venue.Key(), r.Err)
			continue
		}
		q := r.Quote
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t\n", r.Venue.Label(), r.Venue.Key(), q.InAmount, q.OutAmount, q.FeeAmount, q.FeePct.StringFixed(6))
	}
	return tw.Flush()
}

func userSwapParams(params amm.QuoteParams, q amm.Quote, user solana.PublicKey, cfg config.Config) (amm.SwapParams, error) {
	source, _, err := solana.FindAssociatedTokenAddress(user, params.InputMint)
	if err != nil {
		return amm.SwapParams{}, err
	}
	destination, _, err := solana.FindAssociatedTokenAddress(user, params.OutputMint)
	if err != nil {
		return amm.SwapParams{}, err
	}
	return amm.SwapParams{
		SwapMode:                        params.SwapMode,
		InAmount:                        q.InAmount,
		OutAmount:                       q.OutAmount,
		SourceMint:                      params.InputMint,
		DestinationMint:                 params.OutputMint,
		SourceTokenAccount:              source,
		DestinationTokenAccount:         destination,
		TokenTransferAuthority:          user,
		Payer:                           user,
		AggregatorProgramID:             cfg.AggregatorProgramID(),
		MissingDynamicAccountsAsDefault: cfg.MissingDynamicAccountsAsDefault(),
	}, nil
}

func inspect(w io.Writer, venue amm.Amm, params amm.SwapParams) error {
	sam, err := venue.GetSwapAndAccountMetas(params)
	if err != nil {
		return errors.Wrapf(err, "%s %s", venue.Label(), venue.Key())
	}
	data, err := swap.Encode(sam.Swap)
	if err != nil {
		return err
	}

	fixed, groups, err := swap.SplitAccounts(sam.Swap, sam.AccountMetas)
	if err != nil {
		return errors.Wrapf(err, "%s %s", venue.Label(), venue.Key())
	}

	tree := treeout.New(fmt.Sprintf("%s %s", venue.Label(), venue.Key()))
	tree.Child(fmt.Sprintf("Swap: %s %s", sam.Swap.Name(), hex.EncodeToString(data)))
	metas := tree.Child(fmt.Sprintf("Accounts[len=%d]", len(fixed)))
	for i, meta := range fixed {
		metas.Child(fmt.Sprintf("[%d] %s %s", i, flags(meta), meta.PublicKey))
	}
	if groups != nil {
		remaining := tree.Child(fmt.Sprintf("RemainingAccounts[len=%d]", len(sam.AccountMetas)-len(fixed)))
		for _, g := range groups {
			group := remaining.Child(fmt.Sprintf("%s[len=%d]", g.AccountsType, len(g.Accounts)))
			for i, meta := range g.Accounts {
				group.Child(fmt.Sprintf("[%d] %s %s", i, flags(meta), meta.PublicKey))
			}
		}
	}
	if _, err := fmt.Fprintln(w, tree.String()); err != nil {
		return err
	}
	spew.Fdump(w, sam.Swap)
	return nil
}

func flags(meta *solana.AccountMeta) string {
	out := []byte("--")
	if meta.IsWritable {
		out[0] = 'W'
	}
	if meta.IsSigner {
		out[1] = 'S'
	}
	return string(out)
}
