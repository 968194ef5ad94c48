package swap

import (
	"math"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// RemainingAccountsSlice declares Length consecutive trailing accounts of one kind.
type RemainingAccountsSlice struct {
	AccountsType AccountsType
	Length       uint8
}

// RemainingAccountsInfo lays out the accounts appended after an instruction's fixed
// accounts. Slices are consumed in order.
type RemainingAccountsInfo struct {
	Slices []RemainingAccountsSlice
}

// RemainingAccountsGroup is a resolved slice.
type RemainingAccountsGroup struct {
	AccountsType AccountsType
	Accounts     []*solana.AccountMeta
}

// Len is the total number of accounts declared.
func (info RemainingAccountsInfo) Len() int {
	n := 0
	for _, s := range info.Slices {
		n += int(s.Length)
	}
	return n
}

// Split partitions trailing into the declared groups. The declared total must equal
// len(trailing). Empty slices yield empty groups.
func (info RemainingAccountsInfo) Split(trailing []*solana.AccountMeta) ([]RemainingAccountsGroup, error) {
	if want := info.Len(); want != len(trailing) {
		return nil, errors.Wrapf(ErrRemainingAccountsMismatch, "slices declare %d accounts, got %d", want, len(trailing))
	}
	groups := make([]RemainingAccountsGroup, 0, len(info.Slices))
	offset := 0
	for _, s := range info.Slices {
		end := offset + int(s.Length)
		groups = append(groups, RemainingAccountsGroup{
			AccountsType: s.AccountsType,
			Accounts:     trailing[offset:end:end],
		})
		offset = end
	}
	return groups, nil
}

// Build concatenates groups in order and returns the matching layout. Groups with no
// accounts are kept as zero-length slices.
func Build(groups []RemainingAccountsGroup) ([]*solana.AccountMeta, *RemainingAccountsInfo, error) {
	info := &RemainingAccountsInfo{Slices: make([]RemainingAccountsSlice, 0, len(groups))}
	var metas []*solana.AccountMeta
	for _, g := range groups {
		if len(g.Accounts) > math.MaxUint8 {
			return nil, nil, errors.Wrapf(ErrRemainingAccountsMismatch, "%s group has %d accounts, at most %d fit a slice", g.AccountsType, len(g.Accounts), math.MaxUint8)
		}
		info.Slices = append(info.Slices, RemainingAccountsSlice{AccountsType: g.AccountsType, Length: uint8(len(g.Accounts))})
		metas = append(metas, g.Accounts...)
	}
	return metas, info, nil
}

// RemainingAccountsOf returns the trailing layout carried by s, or nil for variants
// without one.
func RemainingAccountsOf(s Swap) *RemainingAccountsInfo {
	switch v := s.(type) {
	case WhirlpoolSwapV2:
		return v.RemainingAccountsInfo
	case MeteoraDlmmSwapV2:
		return &v.RemainingAccountsInfo
	}
	return nil
}

// SplitAccounts separates an instruction's account list into its fixed accounts and the
// trailing groups declared by s.
func SplitAccounts(s Swap, all []*solana.AccountMeta) ([]*solana.AccountMeta, []RemainingAccountsGroup, error) {
	info := RemainingAccountsOf(s)
	if info == nil {
		return all, nil, nil
	}
	n := info.Len()
	if n > len(all) {
		return nil, nil, errors.Wrapf(ErrRemainingAccountsMismatch, "%s declares %d trailing accounts, got %d in total", s.Name(), n, len(all))
	}
	fixed := all[: len(all)-n : len(all)-n]
	groups, err := info.Split(all[len(all)-n:])
	if err != nil {
		return nil, nil, err
	}
	return fixed, groups, nil
}
