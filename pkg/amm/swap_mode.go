package amm

import (
	"github.com/pkg/errors"
)

type SwapMode uint8

const (
	ExactIn SwapMode = iota
	ExactOut
)

func (m SwapMode) String() string {
	switch m {
	case ExactIn:
		return "ExactIn"
	case ExactOut:
		return "ExactOut"
	}
	return "INVALID"
}

// ParseSwapMode accepts exactly "ExactIn" or "ExactOut".
func ParseSwapMode(s string) (SwapMode, error) {
	switch s {
	case "ExactIn":
		return ExactIn, nil
	case "ExactOut":
		return ExactOut, nil
	}
	return ExactIn, errors.Wrapf(ErrParse, "%q is not a valid SwapMode", s)
}

func (m SwapMode) MarshalText() ([]byte, error) {
	if m != ExactIn && m != ExactOut {
		return nil, errors.Wrapf(ErrParse, "invalid SwapMode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

func (m *SwapMode) UnmarshalText(text []byte) error {
	v, err := ParseSwapMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// FeeMode controls whether a venue charges its trade fee when quoting.
type FeeMode uint8

const (
	FeeModeNormal FeeMode = iota
	// FeeModeIgnore quotes as if the venue fee were zero.
	FeeModeIgnore
)

func (m FeeMode) String() string {
	switch m {
	case FeeModeNormal:
		return "Normal"
	case FeeModeIgnore:
		return "Ignore"
	}
	return "INVALID"
}

func ParseFeeMode(s string) (FeeMode, error) {
	switch s {
	case "Normal":
		return FeeModeNormal, nil
	case "Ignore":
		return FeeModeIgnore, nil
	}
	return FeeModeNormal, errors.Wrapf(ErrParse, "%q is not a valid FeeMode", s)
}

func (m FeeMode) MarshalText() ([]byte, error) {
	if m != FeeModeNormal && m != FeeModeIgnore {
		return nil, errors.Wrapf(ErrParse, "invalid FeeMode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

func (m *FeeMode) UnmarshalText(text []byte) error {
	v, err := ParseFeeMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
