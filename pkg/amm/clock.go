package amm

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Clock mirrors the Clock sysvar.
type Clock struct {
	Slot uint64
	// EpochStartTimestamp is the timestamp of the first slot in Epoch.
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

// ClockSysvarLen is the serialized size of the Clock sysvar.
const ClockSysvarLen = 8 + 8 + 8 + 8 + 8

func DecodeClock(data []byte) (Clock, error) {
	if len(data) < ClockSysvarLen {
		return Clock{}, errors.Wrapf(ErrMalformedState, "clock sysvar: expected %d bytes, got %d", ClockSysvarLen, len(data))
	}
	var c Clock
	if err := bin.NewBinDecoder(data[:ClockSysvarLen]).Decode(&c); err != nil {
		return Clock{}, errors.Wrapf(ErrMalformedState, "clock sysvar: %v", err)
	}
	return c, nil
}

// ClockRef is the process-wide clock snapshot shared by pointer across venues.
//
// Each field is an independent atomic cell. Update performs five separate stores with
// no ordering between them, so a reader racing an update may observe fields from two
// different readings.
// The zero value is ready to use and reads as all zeros.
type ClockRef struct {
	slot                atomic.Uint64
	epochStartTimestamp atomic.Int64
	epoch               atomic.Uint64
	leaderScheduleEpoch atomic.Uint64
	unixTimestamp       atomic.Int64
}

func NewClockRef(c Clock) *ClockRef {
	ref := &ClockRef{}
	ref.Update(c)
	return ref
}

// Update overwrites all five cells. There must be a single writer per ClockRef.
func (r *ClockRef) Update(c Clock) {
	r.epoch.Store(c.Epoch)
	r.slot.Store(c.Slot)
	r.unixTimestamp.Store(c.UnixTimestamp)
	r.epochStartTimestamp.Store(c.EpochStartTimestamp)
	r.leaderScheduleEpoch.Store(c.LeaderScheduleEpoch)
}

// UpdateFromProvider reads the Clock sysvar account from p and applies it.
func (r *ClockRef) UpdateFromProvider(p AccountProvider) error {
	data, err := TryGetAccountData(p, solana.SysVarClockPubkey)
	if err != nil {
		return err
	}
	c, err := DecodeClock(data)
	if err != nil {
		return err
	}
	r.Update(c)
	return nil
}

func (r *ClockRef) Slot() uint64                { return r.slot.Load() }
func (r *ClockRef) EpochStartTimestamp() int64  { return r.epochStartTimestamp.Load() }
func (r *ClockRef) Epoch() uint64               { return r.epoch.Load() }
func (r *ClockRef) LeaderScheduleEpoch() uint64 { return r.leaderScheduleEpoch.Load() }
func (r *ClockRef) UnixTimestamp() int64        { return r.unixTimestamp.Load() }

// Load reads each field independently; see the ClockRef doc on torn reads.
func (r *ClockRef) Load() Clock {
	return Clock{
		Slot:                r.Slot(),
		EpochStartTimestamp: r.EpochStartTimestamp(),
		Epoch:               r.Epoch(),
		LeaderScheduleEpoch: r.LeaderScheduleEpoch(),
		UnixTimestamp:       r.UnixTimestamp(),
	}
}
