package amm

import (
	"github.com/pkg/errors"
)

var (
	// ErrAccountNotFound is returned when a required account key is absent from the provider.
	ErrAccountNotFound = errors.New("account not found")
	// ErrMalformedState is returned when account bytes do not decode into the expected layout.
	ErrMalformedState = errors.New("malformed account state")
	// ErrExactOutUnsupported is returned when ExactOut is requested from a venue that only quotes ExactIn.
	ErrExactOutUnsupported = errors.New("exact out not supported")
	// ErrInsufficientLiquidity is returned when a quote cannot be produced from current reserves.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	// ErrParse is returned when a string does not match a recognized enumerated value.
	ErrParse = errors.New("parse error")

	// ErrNotVenueState is returned by a factory for accounts its program owns that are not
	// venue state, such as config or oracle accounts.
	ErrNotVenueState = errors.New("account is not venue state")

	ErrUnknownProgram        = errors.New("no venue registered for program")
	ErrMissingDynamicAccount = errors.New("missing dynamic account")
	ErrUnsupportedMint       = errors.New("mint not tradable on venue")
	ErrInvalidQuote          = errors.New("invalid quote")
)
