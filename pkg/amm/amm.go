package amm

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// DefaultAccountsLen is the account budget reported by venues that do not declare one.
// It is close to a full legacy transaction so undeclared venues are penalised.
const DefaultAccountsLen = 32

// AmmContext carries process-wide references handed to every venue on construction.
type AmmContext struct {
	ClockRef *ClockRef
}

// AmmUserSetup is a setup step a venue may require from the user before swapping.
type AmmUserSetup struct {
	SerumDexOpenOrders *SerumDexOpenOrdersSetup
}

type SerumDexOpenOrdersSetup struct {
	Market    solana.PublicKey
	ProgramID solana.PublicKey
}

// ProgramDependency names an on-chain program a venue needs, for test harnesses.
type ProgramDependency struct {
	ProgramID solana.PublicKey
	Name      string
}

// Amm is the capability set of a liquidity venue.
//
// Update takes exclusive access to the instance. Quote and GetSwapAndAccountMetas are
// read-only and may run concurrently with each other, but never with Update on the same
// instance; callers serialize that, usually by refreshing a Clone.
type Amm interface {
	// Label is a human readable name of the underlying DEX.
	Label() string
	ProgramID() solana.PublicKey
	// Key is the pool or market state address.
	Key() solana.PublicKey
	// GetReserveMints returns the tradable mints.
	GetReserveMints() []solana.PublicKey
	// GetAccountsToUpdate returns the accounts Update reads.
	GetAccountsToUpdate() []solana.PublicKey
	// Update decodes the accounts and caches pricing state. Heavy deserialization
	// and precomputation belong here.
	Update(accounts AccountProvider) error

	Quote(params QuoteParams) (Quote, error)
	// GetSwapAndAccountMetas returns the Swap variant and the exact ordered account
	// list the owning program expects.
	GetSwapAndAccountMetas(params SwapParams) (SwapAndAccountMetas, error)

	// Clone returns an independent copy; cached state is never shared.
	Clone() Amm

	// HasDynamicAccounts reports whether GetAccountsToUpdate may change over time.
	HasDynamicAccounts() bool
	// RequiresUpdateForReserveMints reports whether Update must run before GetReserveMints.
	RequiresUpdateForReserveMints() bool
	SupportsExactOut() bool
	GetUserSetup() *AmmUserSetup
	// Unidirectional venues only trade from the first reserve mint to the second.
	Unidirectional() bool
	ProgramDependencies() []ProgramDependency
	// GetAccountsLen is the account budget hint used to bound instruction size.
	GetAccountsLen() int
	// UnderlyingLiquidities identifies shared liquidity, e.g. an AMM and the order
	// book market it routes into return the same key. Nil means none.
	UnderlyingLiquidities() map[solana.PublicKey]struct{}
	IsActive() bool
}

// Defaults supplies the default optional capabilities. Embed it in a venue and
// override what differs.
type Defaults struct{}

func (Defaults) HasDynamicAccounts() bool                             { return false }
func (Defaults) RequiresUpdateForReserveMints() bool                  { return false }
func (Defaults) SupportsExactOut() bool                               { return false }
func (Defaults) GetUserSetup() *AmmUserSetup                          { return nil }
func (Defaults) Unidirectional() bool                                 { return false }
func (Defaults) ProgramDependencies() []ProgramDependency             { return nil }
func (Defaults) GetAccountsLen() int                                  { return DefaultAccountsLen }
func (Defaults) UnderlyingLiquidities() map[solana.PublicKey]struct{} { return nil }
func (Defaults) IsActive() bool                                       { return true }

// Factory constructs a venue from its state account. It fails with ErrNotVenueState for
// other accounts of the same program and with ErrMalformedState when the bytes are not
// a valid instance of the venue's state.
type Factory func(account KeyedAccount, ctx AmmContext) (Amm, error)

// CheckedQuote quotes a on behalf of a well-behaved caller: it refuses requests the venue
// declared it cannot serve and validates the result.
func CheckedQuote(a Amm, params QuoteParams) (Quote, error) {
	if params.SwapMode == ExactOut && !a.SupportsExactOut() {
		return Quote{}, errors.Wrapf(ErrExactOutUnsupported, "%s %s", a.Label(), a.Key())
	}
	mints := a.GetReserveMints()
	inIdx, outIdx := indexOf(mints, params.InputMint), indexOf(mints, params.OutputMint)
	if inIdx < 0 || outIdx < 0 || inIdx == outIdx {
		return Quote{}, errors.Wrapf(ErrUnsupportedMint, "%s %s cannot trade %s -> %s", a.Label(), a.Key(), params.InputMint, params.OutputMint)
	}
	if a.Unidirectional() && (inIdx != 0 || outIdx != 1) {
		return Quote{}, errors.Wrapf(ErrUnsupportedMint, "%s %s only trades %s -> %s", a.Label(), a.Key(), mints[0], mints[1])
	}

	q, err := a.Quote(params)
	if err != nil {
		return Quote{}, err
	}
	if err := q.Validate(params); err != nil {
		return Quote{}, errors.Wrapf(err, "%s %s", a.Label(), a.Key())
	}
	return q, nil
}

func indexOf(keys []solana.PublicKey, key solana.PublicKey) int {
	for i := range keys {
		if keys[i].Equals(key) {
			return i
		}
	}
	return -1
}
