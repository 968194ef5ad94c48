package amm

import (
	"sort"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// Registry maps owning program ids to venue factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[solana.PublicKey]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[solana.PublicKey]Factory{}}
}

// Register binds programID to f, replacing any previous binding.
func (r *Registry) Register(programID solana.PublicKey, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[programID] = f
}

func (r *Registry) Programs() []solana.PublicKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]solana.PublicKey, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// FromKeyedAccount constructs the venue registered for the account's owner.
func (r *Registry) FromKeyedAccount(ka KeyedAccount, ctx AmmContext) (Amm, error) {
	r.mu.RLock()
	f, ok := r.factories[ka.Account.Owner]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownProgram, "%s owned by %s", ka.Key, ka.Account.Owner)
	}
	a, err := f(ka, ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to construct venue %s", ka.Key)
	}
	return a, nil
}
