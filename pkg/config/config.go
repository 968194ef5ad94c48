// Package config resolves runtime settings from a TOML file over built-in defaults.
package config

import (
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"

	"github.com/venuekit/amm-interface/pkg/logger"
	"github.com/venuekit/amm-interface/pkg/market"
)

// Global defaults.
var defaultConfigSet = configSet{
	SnapshotPath:                    "",                        // read snapshots from stdin
	UpdateConcurrency:               market.DefaultConcurrency, // parallel venue refreshes
	MetricsNamespace:                "amm",
	LogLevel:                        "info",
	MissingDynamicAccountsAsDefault: false, // fail on unresolved dynamic accounts
	AggregatorProgramID:             solana.PublicKey{},
}

type Config interface {
	SnapshotPath() string
	UpdateConcurrency() int
	MetricsNamespace() string
	LogLevel() string
	MissingDynamicAccountsAsDefault() bool
	AggregatorProgramID() solana.PublicKey

	// Update sets new config values.
	Update(Cfg)
}

// Cfg holds the values set in a config file. Unset values fall back to defaults.
type Cfg struct {
	SnapshotPath                    null.String `toml:"SnapshotPath"`
	UpdateConcurrency               null.Int    `toml:"UpdateConcurrency"`
	MetricsNamespace                null.String `toml:"MetricsNamespace"`
	LogLevel                        null.String `toml:"LogLevel"`
	MissingDynamicAccountsAsDefault null.Bool   `toml:"MissingDynamicAccountsAsDefault"`
	AggregatorProgramID             null.String `toml:"AggregatorProgramID"`
}

// DecodeCfg parses TOML. Unknown keys are rejected.
func DecodeCfg(data string) (Cfg, error) {
	var cfg Cfg
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Cfg{}, errors.Wrap(err, "failed to decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Cfg{}, errors.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ReadCfg reads and decodes the file at path.
func ReadCfg(path string) (Cfg, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Cfg{}, errors.Wrapf(err, "failed to read config %s", path)
	}
	cfg, err := DecodeCfg(string(b))
	return cfg, errors.Wrap(err, path)
}

type configSet struct {
	SnapshotPath                    string
	UpdateConcurrency               int
	MetricsNamespace                string
	LogLevel                        string
	MissingDynamicAccountsAsDefault bool
	AggregatorProgramID             solana.PublicKey
}

var _ Config = (*config)(nil)

type config struct {
	defaults configSet
	cfg      Cfg
	cfgMu    sync.RWMutex
	lggr     logger.Logger
}

// NewConfig returns a Config with defaults overridden by cfg.
func NewConfig(cfg Cfg, lggr logger.Logger) *config {
	return &config{
		defaults: defaultConfigSet,
		cfg:      cfg,
		lggr:     lggr,
	}
}

func (c *config) Update(cfg Cfg) {
	c.cfgMu.Lock()
	c.cfg = cfg
	c.cfgMu.Unlock()
}

func (c *config) get() Cfg {
	c.cfgMu.RLock()
	defer c.cfgMu.RUnlock()
	return c.cfg
}

func (c *config) SnapshotPath() string {
	if ch := c.get().SnapshotPath; ch.Valid {
		return ch.String
	}
	return c.defaults.SnapshotPath
}

func (c *config) UpdateConcurrency() int {
	ch := c.get().UpdateConcurrency
	if !ch.Valid {
		return c.defaults.UpdateConcurrency
	}
	if ch.Int64 <= 0 || ch.Int64 > 1024 {
		c.lggr.Warnf(invalidFallbackMsg, "UpdateConcurrency", ch.Int64, c.defaults.UpdateConcurrency, "must be in [1, 1024]")
		return c.defaults.UpdateConcurrency
	}
	return int(ch.Int64)
}

func (c *config) MetricsNamespace() string {
	if ch := c.get().MetricsNamespace; ch.Valid {
		return ch.String
	}
	return c.defaults.MetricsNamespace
}

func (c *config) LogLevel() string {
	ch := c.get().LogLevel
	if !ch.Valid {
		return c.defaults.LogLevel
	}
	if _, err := zap.ParseAtomicLevel(ch.String); err != nil {
		c.lggr.Warnf(invalidFallbackMsg, "LogLevel", ch.String, c.defaults.LogLevel, err)
		return c.defaults.LogLevel
	}
	return ch.String
}

func (c *config) MissingDynamicAccountsAsDefault() bool {
	if ch := c.get().MissingDynamicAccountsAsDefault; ch.Valid {
		return ch.Bool
	}
	return c.defaults.MissingDynamicAccountsAsDefault
}

func (c *config) AggregatorProgramID() solana.PublicKey {
	ch := c.get().AggregatorProgramID
	if !ch.Valid {
		return c.defaults.AggregatorProgramID
	}
	pk, err := solana.PublicKeyFromBase58(ch.String)
	if err != nil {
		c.lggr.Warnf(invalidFallbackMsg, "AggregatorProgramID", ch.String, c.defaults.AggregatorProgramID, err)
		return c.defaults.AggregatorProgramID
	}
	return pk
}

const invalidFallbackMsg = `Invalid value provided for %s, "%v" - falling back to default "%v": %v`
