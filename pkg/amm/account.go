package amm

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// Account is an immutable snapshot of an on-chain account as fetched.
type Account struct {
	Lamports   uint64
	Data       []byte
	Owner      solana.PublicKey
	Executable bool
	RentEpoch  uint64
}

// Clone returns a copy that does not share the data buffer.
func (a Account) Clone() Account {
	if a.Data != nil {
		a.Data = append([]byte(nil), a.Data...)
	}
	return a
}

// AccountProvider is a read-only keyed view of account state. Implementations are
// expected to be built per refresh batch and need no internal locking.
type AccountProvider interface {
	GetAccount(key solana.PublicKey) (*Account, bool)
}

// RequireAccount turns an absent lookup into ErrAccountNotFound naming the key.
func RequireAccount(p AccountProvider, key solana.PublicKey) (*Account, error) {
	acc, ok := p.GetAccount(key)
	if !ok || acc == nil {
		return nil, errors.Wrapf(ErrAccountNotFound, "could not find address: %s", key)
	}
	return acc, nil
}

func TryGetAccountData(p AccountProvider, key solana.PublicKey) ([]byte, error) {
	acc, err := RequireAccount(p, key)
	if err != nil {
		return nil, err
	}
	return acc.Data, nil
}

func TryGetAccountDataAndOwner(p AccountProvider, key solana.PublicKey) ([]byte, solana.PublicKey, error) {
	acc, err := RequireAccount(p, key)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	return acc.Data, acc.Owner, nil
}

// AccountMap is the in-memory AccountProvider.
type AccountMap map[solana.PublicKey]*Account

var _ AccountProvider = AccountMap(nil)

func (m AccountMap) GetAccount(key solana.PublicKey) (*Account, bool) {
	acc, ok := m[key]
	return acc, ok
}

// AccountMapFromKeyedAccounts indexes accounts by key; later duplicates win.
func AccountMapFromKeyedAccounts(accounts []KeyedAccount) AccountMap {
	m := make(AccountMap, len(accounts))
	for i := range accounts {
		acc := accounts[i].Account
		m[accounts[i].Key] = &acc
	}
	return m
}
