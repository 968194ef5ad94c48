package swap

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"
)

// Wire layout (borsh): u8 variant index in declaration order, then the variant fields in
// order. Bools are one byte 0 or 1, enums one byte, integers little endian, Option a u8
// tag followed by the value, Vec a u32 length followed by the items.

var variantIndex = func() map[string]uint8 {
	m := make(map[string]uint8, len(variants))
	for i, v := range variants {
		m[v.Name()] = uint8(i)
	}
	return m
}()

type fieldMarshaler interface {
	marshalFields(w *fieldWriter)
}

type fieldUnmarshaler interface {
	unmarshalFields(r *fieldReader) Swap
}

// Encode serializes s.
func Encode(s Swap) ([]byte, error) {
	if s == nil {
		return nil, errors.Wrap(ErrUnknownVariant, "nil swap")
	}
	idx, ok := variantIndex[s.Name()]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownVariant, "%s", s.Name())
	}
	buf := new(bytes.Buffer)
	w := &fieldWriter{enc: bin.NewBorshEncoder(buf)}
	w.u8(idx)
	if m, ok := s.(fieldMarshaler); ok {
		m.marshalFields(w)
	}
	if w.err != nil {
		return nil, errors.Wrapf(w.err, "failed to encode %s", s.Name())
	}
	return buf.Bytes(), nil
}

// Decode parses data produced by Encode. Trailing bytes are an error.
func Decode(data []byte) (Swap, error) {
	r := &fieldReader{dec: bin.NewBorshDecoder(data)}
	idx := r.u8()
	if r.err != nil {
		return nil, errors.Wrap(r.err, "failed to read swap variant")
	}
	if int(idx) >= len(variants) {
		return nil, errors.Wrapf(ErrUnknownVariant, "index %d", idx)
	}
	s := variants[idx]
	if u, ok := s.(fieldUnmarshaler); ok {
		s = u.unmarshalFields(r)
	}
	if r.err != nil {
		return nil, errors.Wrapf(r.err, "failed to decode %s", variants[idx].Name())
	}
	if rem := r.dec.Remaining(); rem > 0 {
		return nil, errors.Errorf("failed to decode %s: %d trailing bytes", s.Name(), rem)
	}
	return s, nil
}

type fieldWriter struct {
	enc *bin.Encoder
	err error
}

func (w *fieldWriter) u8(v uint8) {
	if w.err == nil {
		w.err = w.enc.WriteUint8(v)
	}
}

func (w *fieldWriter) u32(v uint32) {
	if w.err == nil {
		w.err = w.enc.WriteUint32(v, bin.LE)
	}
}

func (w *fieldWriter) u64(v uint64) {
	if w.err == nil {
		w.err = w.enc.WriteUint64(v, bin.LE)
	}
}

func (w *fieldWriter) boolean(v bool) {
	if w.err == nil {
		w.err = w.enc.WriteBool(v)
	}
}

func (w *fieldWriter) remainingAccountsInfo(info RemainingAccountsInfo) {
	w.u32(uint32(len(info.Slices)))
	for _, s := range info.Slices {
		w.u8(uint8(s.AccountsType))
		w.u8(s.Length)
	}
}

func (w *fieldWriter) optionalRemainingAccountsInfo(info *RemainingAccountsInfo) {
	if info == nil {
		w.u8(0)
		return
	}
	w.u8(1)
	w.remainingAccountsInfo(*info)
}

// fieldReader keeps the first error; reads after an error return zero values.
type fieldReader struct {
	dec *bin.Decoder
	err error
}

func (r *fieldReader) u8() (v uint8) {
	if r.err == nil {
		v, r.err = r.dec.ReadUint8()
	}
	return v
}

func (r *fieldReader) u32() (v uint32) {
	if r.err == nil {
		v, r.err = r.dec.ReadUint32(bin.LE)
	}
	return v
}

func (r *fieldReader) u64() (v uint64) {
	if r.err == nil {
		v, r.err = r.dec.ReadUint64(bin.LE)
	}
	return v
}

func (r *fieldReader) boolean() bool {
	switch b := r.u8(); b {
	case 0:
		return false
	case 1:
		return true
	default:
		r.fail("invalid bool %d", b)
		return false
	}
}

func (r *fieldReader) side() Side {
	s := Side(r.u8())
	if s > Ask {
		r.fail("invalid side %d", s)
	}
	return s
}

func (r *fieldReader) hyloToken() HyloToken {
	t := HyloToken(r.u8())
	if t > JITOSOL {
		r.fail("invalid hylo token %d", t)
	}
	return t
}

func (r *fieldReader) remainingAccountsInfo() RemainingAccountsInfo {
	n := r.u32()
	// each slice takes two bytes
	if r.err == nil && int(n) > r.dec.Remaining()/2 {
		r.fail("%d slices exceed remaining data", n)
	}
	if r.err != nil {
		return RemainingAccountsInfo{}
	}
	info := RemainingAccountsInfo{Slices: make([]RemainingAccountsSlice, 0, n)}
	for i := uint32(0); i < n && r.err == nil; i++ {
		t := AccountsType(r.u8())
		if t > TransferHookB {
			r.fail("invalid accounts type %d", t)
		}
		info.Slices = append(info.Slices, RemainingAccountsSlice{AccountsType: t, Length: r.u8()})
	}
	return info
}

func (r *fieldReader) optionalRemainingAccountsInfo() *RemainingAccountsInfo {
	switch tag := r.u8(); tag {
	case 0:
		return nil
	case 1:
		info := r.remainingAccountsInfo()
		return &info
	default:
		r.fail("invalid option tag %d", tag)
		return nil
	}
}

func (r *fieldReader) fail(format string, args ...interface{}) {
	if r.err == nil {
		r.err = errors.Errorf(format, args...)
	}
}

func (s Crema) marshalFields(w *fieldWriter)     { w.boolean(s.AToB) }
func (s Aldrin) marshalFields(w *fieldWriter)    { w.u8(uint8(s.Side)) }
func (s AldrinV2) marshalFields(w *fieldWriter)  { w.u8(uint8(s.Side)) }
func (s Whirlpool) marshalFields(w *fieldWriter) { w.boolean(s.AToB) }
func (s Invariant) marshalFields(w *fieldWriter) { w.boolean(s.XToY) }
func (s MarcoPolo) marshalFields(w *fieldWriter) { w.boolean(s.XToY) }
func (s Phoenix) marshalFields(w *fieldWriter)   { w.u8(uint8(s.Side)) }
func (s OpenBookV2) marshalFields(w *fieldWriter) {
	w.u8(uint8(s.Side))
}

func (s StakeDexPrefundWithdrawStakeAndDepositStake) marshalFields(w *fieldWriter) {
	w.u32(s.BridgeStakeSeed)
}

func (s SanctumS) marshalFields(w *fieldWriter) {
	w.u8(s.SrcLstValueCalcAccs)
	w.u8(s.DstLstValueCalcAccs)
	w.u32(s.SrcLstIndex)
	w.u32(s.DstLstIndex)
}

func (s SanctumSAddLiquidity) marshalFields(w *fieldWriter) {
	w.u8(s.LstValueCalcAccs)
	w.u32(s.LstIndex)
}

func (s SanctumSRemoveLiquidity) marshalFields(w *fieldWriter) {
	w.u8(s.LstValueCalcAccs)
	w.u32(s.LstIndex)
}

func (s WhirlpoolSwapV2) marshalFields(w *fieldWriter) {
	w.boolean(s.AToB)
	w.optionalRemainingAccountsInfo(s.RemainingAccountsInfo)
}

func (s Obric) marshalFields(w *fieldWriter) { w.boolean(s.XToY) }
func (s SolFi) marshalFields(w *fieldWriter) { w.boolean(s.IsQuoteToBase) }

func (s Perena) marshalFields(w *fieldWriter) {
	w.u8(s.InIndex)
	w.u8(s.OutIndex)
}

func (s MeteoraDlmmSwapV2) marshalFields(w *fieldWriter) {
	w.remainingAccountsInfo(s.RemainingAccountsInfo)
}

func (s RaydiumLaunchlabBuy) marshalFields(w *fieldWriter)  { w.u64(s.ShareFeeRate) }
func (s RaydiumLaunchlabSell) marshalFields(w *fieldWriter) { w.u64(s.ShareFeeRate) }
func (s Plasma) marshalFields(w *fieldWriter)               { w.u8(uint8(s.Side)) }

func (s GoonFi) marshalFields(w *fieldWriter) {
	w.boolean(s.IsBid)
	w.u8(s.BlacklistBump)
}

func (s HumidiFi) marshalFields(w *fieldWriter) {
	w.u64(s.SwapID)
	w.boolean(s.IsBaseToQuote)
}

func (s TesseraV) marshalFields(w *fieldWriter) { w.u8(uint8(s.Side)) }

func (s Hylo) marshalFields(w *fieldWriter) {
	w.u8(uint8(s.InToken))
	w.u8(uint8(s.OutToken))
}

func (Crema) unmarshalFields(r *fieldReader) Swap     { return Crema{AToB: r.boolean()} }
func (Aldrin) unmarshalFields(r *fieldReader) Swap    { return Aldrin{Side: r.side()} }
func (AldrinV2) unmarshalFields(r *fieldReader) Swap  { return AldrinV2{Side: r.side()} }
func (Whirlpool) unmarshalFields(r *fieldReader) Swap { return Whirlpool{AToB: r.boolean()} }
func (Invariant) unmarshalFields(r *fieldReader) Swap { return Invariant{XToY: r.boolean()} }
func (MarcoPolo) unmarshalFields(r *fieldReader) Swap { return MarcoPolo{XToY: r.boolean()} }
func (Phoenix) unmarshalFields(r *fieldReader) Swap   { return Phoenix{Side: r.side()} }
func (OpenBookV2) unmarshalFields(r *fieldReader) Swap {
	return OpenBookV2{Side: r.side()}
}

func (StakeDexPrefundWithdrawStakeAndDepositStake) unmarshalFields(r *fieldReader) Swap {
	return StakeDexPrefundWithdrawStakeAndDepositStake{BridgeStakeSeed: r.u32()}
}

func (SanctumS) unmarshalFields(r *fieldReader) Swap {
	var s SanctumS
	s.SrcLstValueCalcAccs = r.u8()
	s.DstLstValueCalcAccs = r.u8()
	s.SrcLstIndex = r.u32()
	s.DstLstIndex = r.u32()
	return s
}

func (SanctumSAddLiquidity) unmarshalFields(r *fieldReader) Swap {
	var s SanctumSAddLiquidity
	s.LstValueCalcAccs = r.u8()
	s.LstIndex = r.u32()
	return s
}

func (SanctumSRemoveLiquidity) unmarshalFields(r *fieldReader) Swap {
	var s SanctumSRemoveLiquidity
	s.LstValueCalcAccs = r.u8()
	s.LstIndex = r.u32()
	return s
}

func (WhirlpoolSwapV2) unmarshalFields(r *fieldReader) Swap {
	var s WhirlpoolSwapV2
	s.AToB = r.boolean()
	s.RemainingAccountsInfo = r.optionalRemainingAccountsInfo()
	return s
}

func (Obric) unmarshalFields(r *fieldReader) Swap { return Obric{XToY: r.boolean()} }
func (SolFi) unmarshalFields(r *fieldReader) Swap { return SolFi{IsQuoteToBase: r.boolean()} }

func (Perena) unmarshalFields(r *fieldReader) Swap {
	var s Perena
	s.InIndex = r.u8()
	s.OutIndex = r.u8()
	return s
}

func (MeteoraDlmmSwapV2) unmarshalFields(r *fieldReader) Swap {
	return MeteoraDlmmSwapV2{RemainingAccountsInfo: r.remainingAccountsInfo()}
}

func (RaydiumLaunchlabBuy) unmarshalFields(r *fieldReader) Swap {
	return RaydiumLaunchlabBuy{ShareFeeRate: r.u64()}
}

func (RaydiumLaunchlabSell) unmarshalFields(r *fieldReader) Swap {
	return RaydiumLaunchlabSell{ShareFeeRate: r.u64()}
}

func (Plasma) unmarshalFields(r *fieldReader) Swap { return Plasma{Side: r.side()} }

func (GoonFi) unmarshalFields(r *fieldReader) Swap {
	var s GoonFi
	s.IsBid = r.boolean()
	s.BlacklistBump = r.u8()
	return s
}

func (HumidiFi) unmarshalFields(r *fieldReader) Swap {
	var s HumidiFi
	s.SwapID = r.u64()
	s.IsBaseToQuote = r.boolean()
	return s
}

func (TesseraV) unmarshalFields(r *fieldReader) Swap { return TesseraV{Side: r.side()} }

func (Hylo) unmarshalFields(r *fieldReader) Swap {
	var s Hylo
	s.InToken = r.hyloToken()
	s.OutToken = r.hyloToken()
	return s
}
