package swap

import "github.com/pkg/errors"

var (
	// ErrInvalidCandidate is returned when narrowing a variant outside the candidate subset.
	ErrInvalidCandidate = errors.New("invalid candidate swap")
	// ErrRemainingAccountsMismatch is returned when declared slices do not cover the trailing accounts exactly.
	ErrRemainingAccountsMismatch = errors.New("remaining accounts mismatch")
	ErrUnknownVariant            = errors.New("unknown swap variant")
)
