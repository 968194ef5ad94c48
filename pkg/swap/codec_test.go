package swap

import (
	"reflect"
	"testing"

	fuzz "github.com/gagliardetto/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFuzzer() *fuzz.Fuzzer {
	return fuzz.New().NilChance(0).NumElements(1, 4).Funcs(
		func(s *Side, c fuzz.Continue) { *s = Side(c.Intn(2)) },
		func(t *HyloToken, c fuzz.Continue) { *t = HyloToken(c.Intn(4)) },
		func(t *AccountsType, c fuzz.Continue) { *t = AccountsType(c.Intn(2)) },
	)
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()
	f := newFuzzer()
	for i, v := range variants {
		v := v
		for n := 0; n < 10; n++ {
			ptr := reflect.New(reflect.TypeOf(v))
			f.Fuzz(ptr.Interface())
			s := ptr.Elem().Interface().(Swap)

			data, err := Encode(s)
			require.NoError(t, err, s.Name())
			assert.Equal(t, uint8(i), data[0])

			got, err := Decode(data)
			require.NoError(t, err, s.Name())
			assert.Equal(t, s, got)
		}
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("layout", func(t *testing.T) {
		t.Parallel()
		data, err := Encode(HumidiFi{SwapID: 0x0102, IsBaseToQuote: true})
		require.NoError(t, err)
		assert.Equal(t, []byte{61, 0x02, 0x01, 0, 0, 0, 0, 0, 0, 1}, data)

		data, err = Encode(WhirlpoolSwapV2{AToB: true})
		require.NoError(t, err)
		assert.Equal(t, []byte{27, 1, 0}, data)

		data, err = Encode(WhirlpoolSwapV2{RemainingAccountsInfo: &RemainingAccountsInfo{
			Slices: []RemainingAccountsSlice{{AccountsType: TransferHookB, Length: 3}},
		}})
		require.NoError(t, err)
		assert.Equal(t, []byte{27, 0, 1, 1, 0, 0, 0, 1, 3}, data)

		data, err = Encode(Saber{})
		require.NoError(t, err)
		assert.Equal(t, []byte{0}, data)
	})

	t.Run("optional absent", func(t *testing.T) {
		t.Parallel()
		s, err := Decode([]byte{27, 1, 0})
		require.NoError(t, err)
		assert.Equal(t, WhirlpoolSwapV2{AToB: true}, s)
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		_, err := Encode(nil)
		require.ErrorIs(t, err, ErrUnknownVariant)
	})
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()
	for name, data := range map[string][]byte{
		"empty":          {},
		"short u64":      {61, 1, 2},
		"bool":           {5, 2},
		"side":           {7, 2},
		"hylo token":     {64, 0, 4},
		"option tag":     {27, 0, 2},
		"accounts type":  {50, 1, 0, 0, 0, 2, 1},
		"slice overflow": {50, 255, 255, 255, 255},
		"trailing bytes": {0, 0},
	} {
		_, err := Decode(data)
		assert.Error(t, err, name)
	}

	_, err := Decode([]byte{65})
	require.ErrorIs(t, err, ErrUnknownVariant)
}

// go test -fuzz FuzzDecode ./pkg/swap
func FuzzDecode(f *testing.F) {
	for _, s := range []Swap{Saber{}, SanctumS{SrcLstIndex: 3}, HumidiFi{SwapID: 9}, MeteoraDlmmSwapV2{}} {
		data, err := Encode(s)
		require.NoError(f, err)
		f.Add(data)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		s, err := Decode(data)
		if err != nil {
			return
		}
		// anything accepted re-encodes to the same bytes
		out, err := Encode(s)
		require.NoError(t, err)
		require.Equal(t, data, out)
	})
}
