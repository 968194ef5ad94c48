package amm

import (
	"bytes"
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// KeyedAccount pairs an account with its address and the optional venue-specific
// configuration. It is the sole input to venue construction.
type KeyedAccount struct {
	Key     solana.PublicKey
	Account Account
	// Params is opaque at this boundary; each venue parses it into its own type.
	Params json.RawMessage
}

// Market is the configuration and discovery projection of a KeyedAccount.
type Market struct {
	Pubkey solana.PublicKey `json:"pubkey"`
	Owner  solana.PublicKey `json:"owner"`
	Params json.RawMessage  `json:"params,omitempty"`
}

func MarketFromKeyedAccount(ka KeyedAccount) Market {
	return Market{
		Pubkey: ka.Key,
		Owner:  ka.Account.Owner,
		Params: ka.Params,
	}
}

// UiAccount is the JSON transport form of an Account with base64 data.
type UiAccount struct {
	Lamports   uint64      `json:"lamports"`
	Data       solana.Data `json:"data"`
	Owner      string      `json:"owner"`
	Executable bool        `json:"executable"`
	RentEpoch  uint64      `json:"rentEpoch"`
	Space      *uint64     `json:"space,omitempty"`
}

type KeyedUiAccount struct {
	Pubkey string `json:"pubkey"`
	UiAccount
	Params json.RawMessage `json:"params,omitempty"`
}

func (ka KeyedAccount) ToUi() KeyedUiAccount {
	space := uint64(len(ka.Account.Data))
	return KeyedUiAccount{
		Pubkey: ka.Key.String(),
		UiAccount: UiAccount{
			Lamports: ka.Account.Lamports,
			Data: solana.Data{
				Content:  ka.Account.Data,
				Encoding: solana.EncodingBase64,
			},
			Owner:      ka.Account.Owner.String(),
			Executable: ka.Account.Executable,
			RentEpoch:  ka.Account.RentEpoch,
			Space:      &space,
		},
		Params: ka.Params,
	}
}

// ToKeyedAccount decodes the transport form. A failure is fatal for this record only.
func (u KeyedUiAccount) ToKeyedAccount() (KeyedAccount, error) {
	key, err := solana.PublicKeyFromBase58(u.Pubkey)
	if err != nil {
		return KeyedAccount{}, errors.Wrapf(ErrParse, "invalid pubkey %q: %v", u.Pubkey, err)
	}
	owner, err := solana.PublicKeyFromBase58(u.Owner)
	if err != nil {
		return KeyedAccount{}, errors.Wrapf(ErrParse, "invalid owner %q for %s: %v", u.Owner, u.Pubkey, err)
	}
	switch u.Data.Encoding {
	case solana.EncodingBase64, solana.EncodingBase58, solana.EncodingBase64Zstd:
	default:
		return KeyedAccount{}, errors.Wrapf(ErrMalformedState, "failed to decode ui account for %s: unsupported encoding %q", u.Pubkey, u.Data.Encoding)
	}
	// empty accounts carry nil data
	data := u.Data.Content
	if len(data) == 0 {
		data = nil
	}
	return KeyedAccount{
		Key: key,
		Account: Account{
			Lamports:   u.Lamports,
			Data:       data,
			Owner:      owner,
			Executable: u.Executable,
			RentEpoch:  u.RentEpoch,
		},
		Params: normalizeParams(u.Params),
	}, nil
}

// DecodeKeyedUiAccounts decodes a JSON array of KeyedUiAccount records. Malformed
// records are skipped and reported in the combined error; the others are returned.
func DecodeKeyedUiAccounts(raw []byte) ([]KeyedAccount, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrap(err, "failed to decode keyed ui account list")
	}

	var combined error
	out := make([]KeyedAccount, 0, len(records))
	for i, rec := range records {
		var ui KeyedUiAccount
		if err := json.Unmarshal(rec, &ui); err != nil {
			combined = multierr.Append(combined, errors.Wrapf(ErrMalformedState, "record %d: %v", i, err))
			continue
		}
		ka, err := ui.ToKeyedAccount()
		if err != nil {
			combined = multierr.Append(combined, errors.Wrapf(err, "record %d", i))
			continue
		}
		out = append(out, ka)
	}
	return out, combined
}

var jsonNull = []byte("null")

func normalizeParams(p json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(p)) == 0 || bytes.Equal(bytes.TrimSpace(p), jsonNull) {
		return nil
	}
	return p
}
