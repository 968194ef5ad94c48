package swap

// Side of an order book a swap takes liquidity from.
type Side uint8

const (
	Bid Side = iota
	Ask
)

func (s Side) String() (out string) {
	out = "INVALID"
	switch s {
	case Bid:
		out = "Bid"
	case Ask:
		out = "Ask"
	}
	return out
}

// HyloToken names a token of the Hylo protocol.
type HyloToken uint8

const (
	HYUSD HyloToken = iota
	XSOL
	SHYUSD
	JITOSOL
)

func (t HyloToken) String() (out string) {
	out = "INVALID"
	switch t {
	case HYUSD:
		out = "HYUSD"
	case XSOL:
		out = "XSOL"
	case SHYUSD:
		out = "SHYUSD"
	case JITOSOL:
		out = "JITOSOL"
	}
	return out
}

// AccountsType tags a group of trailing accounts.
type AccountsType uint8

const (
	// accounts required by the transfer hook of mint A
	TransferHookA AccountsType = iota
	// accounts required by the transfer hook of mint B
	TransferHookB
)

func (t AccountsType) String() (out string) {
	out = "INVALID"
	switch t {
	case TransferHookA:
		out = "TransferHookA"
	case TransferHookB:
		out = "TransferHookB"
	}
	return out
}
