// Package swap describes the swap instructions venues emit.
//
// Swap is a closed union: one struct per on-chain swap kind, carrying only the data
// needed to tell apart instruction shapes of the same kind. The order of declaration
// below is the wire order used by Encode.
package swap

// Swap is implemented by every variant in this package and nothing else.
type Swap interface {
	// Name is the variant name, e.g. "Whirlpool".
	Name() string
	isSwap()
}

type Saber struct{}

type SaberAddDecimalsDeposit struct{}

type SaberAddDecimalsWithdraw struct{}

type TokenSwap struct{}

type Raydium struct{}

type Crema struct {
	AToB bool
}

type Mercurial struct{}

type Aldrin struct {
	Side Side
}

type AldrinV2 struct {
	Side Side
}

type Whirlpool struct {
	AToB bool
}

type Invariant struct {
	XToY bool
}

type Meteora struct{}

type MarcoPolo struct {
	XToY bool
}

type LifinityV2 struct{}

type RaydiumClmm struct{}

type Phoenix struct {
	Side Side
}

type TokenSwapV2 struct{}

type HeliumTreasuryManagementRedeemV0 struct{}

type StakeDexStakeWrappedSol struct{}

type MeteoraDlmm struct{}

type OpenBookV2 struct {
	Side Side
}

type RaydiumClmmV2 struct{}

// StakeDexPrefundWithdrawStakeAndDepositStake bridges two stake pools through a
// temporary stake account derived from BridgeStakeSeed.
type StakeDexPrefundWithdrawStakeAndDepositStake struct {
	BridgeStakeSeed uint32
}

// SanctumS swaps between two liquid staking tokens of an infinity pool. The *Accs fields
// count the value-calculator accounts of each side.
type SanctumS struct {
	SrcLstValueCalcAccs uint8
	DstLstValueCalcAccs uint8
	SrcLstIndex         uint32
	DstLstIndex         uint32
}

type SanctumSAddLiquidity struct {
	LstValueCalcAccs uint8
	LstIndex         uint32
}

type SanctumSRemoveLiquidity struct {
	LstValueCalcAccs uint8
	LstIndex         uint32
}

type RaydiumCP struct{}

// WhirlpoolSwapV2 carries an optional layout of transfer-hook accounts appended to the
// instruction.
type WhirlpoolSwapV2 struct {
	AToB                  bool
	RemainingAccountsInfo *RemainingAccountsInfo
}

type OneIntro struct{}

type PumpWrappedBuy struct{}

type PumpWrappedSell struct{}

type PerpsV2 struct{}

type PerpsV2AddLiquidity struct{}

type PerpsV2RemoveLiquidity struct{}

type MoonshotWrappedBuy struct{}

type MoonshotWrappedSell struct{}

type StabbleStableSwap struct{}

type StabbleWeightedSwap struct{}

type Obric struct {
	XToY bool
}

type SolFi struct {
	IsQuoteToBase bool
}

type SolayerDelegateNoInit struct{}

type SolayerUndelegateNoInit struct{}

type ZeroFi struct{}

type StakeDexWithdrawWrappedSol struct{}

type VirtualsBuy struct{}

type VirtualsSell struct{}

type Perena struct {
	InIndex  uint8
	OutIndex uint8
}

type PumpSwapBuy struct{}

type PumpSwapSell struct{}

type Gamma struct{}

// MeteoraDlmmSwapV2 always declares its trailing transfer-hook accounts.
type MeteoraDlmmSwapV2 struct {
	RemainingAccountsInfo RemainingAccountsInfo
}

type Woofi struct{}

type MeteoraDammV2 struct{}

type StabbleStableSwapV2 struct{}

type StabbleWeightedSwapV2 struct{}

type RaydiumLaunchlabBuy struct {
	ShareFeeRate uint64
}

type RaydiumLaunchlabSell struct {
	ShareFeeRate uint64
}

type BoopdotfunWrappedBuy struct{}

type BoopdotfunWrappedSell struct{}

type Plasma struct {
	Side Side
}

type GoonFi struct {
	IsBid         bool
	BlacklistBump uint8
}

type HumidiFi struct {
	// SwapID is a caller chosen nonce.
	SwapID        uint64
	IsBaseToQuote bool
}

type MeteoraDynamicBondingCurveSwapWithRemainingAccounts struct{}

type TesseraV struct {
	Side Side
}

type Hylo struct {
	InToken  HyloToken
	OutToken HyloToken
}

func (Saber) Name() string                                               { return "Saber" }
func (SaberAddDecimalsDeposit) Name() string                             { return "SaberAddDecimalsDeposit" }
func (SaberAddDecimalsWithdraw) Name() string                            { return "SaberAddDecimalsWithdraw" }
func (TokenSwap) Name() string                                           { return "TokenSwap" }
func (Raydium) Name() string                                             { return "Raydium" }
func (Crema) Name() string                                               { return "Crema" }
func (Mercurial) Name() string                                           { return "Mercurial" }
func (Aldrin) Name() string                                              { return "Aldrin" }
func (AldrinV2) Name() string                                            { return "AldrinV2" }
func (Whirlpool) Name() string                                           { return "Whirlpool" }
func (Invariant) Name() string                                           { return "Invariant" }
func (Meteora) Name() string                                             { return "Meteora" }
func (MarcoPolo) Name() string                                           { return "MarcoPolo" }
func (LifinityV2) Name() string                                          { return "LifinityV2" }
func (RaydiumClmm) Name() string                                         { return "RaydiumClmm" }
func (Phoenix) Name() string                                             { return "Phoenix" }
func (TokenSwapV2) Name() string                                         { return "TokenSwapV2" }
func (HeliumTreasuryManagementRedeemV0) Name() string                    { return "HeliumTreasuryManagementRedeemV0" }
func (StakeDexStakeWrappedSol) Name() string                             { return "StakeDexStakeWrappedSol" }
func (MeteoraDlmm) Name() string                                         { return "MeteoraDlmm" }
func (OpenBookV2) Name() string                                          { return "OpenBookV2" }
func (RaydiumClmmV2) Name() string                                       { return "RaydiumClmmV2" }
func (StakeDexPrefundWithdrawStakeAndDepositStake) Name() string         { return "StakeDexPrefundWithdrawStakeAndDepositStake" }
func (SanctumS) Name() string                                            { return "SanctumS" }
func (SanctumSAddLiquidity) Name() string                                { return "SanctumSAddLiquidity" }
func (SanctumSRemoveLiquidity) Name() string                             { return "SanctumSRemoveLiquidity" }
func (RaydiumCP) Name() string                                           { return "RaydiumCP" }
func (WhirlpoolSwapV2) Name() string                                     { return "WhirlpoolSwapV2" }
func (OneIntro) Name() string                                            { return "OneIntro" }
func (PumpWrappedBuy) Name() string                                      { return "PumpWrappedBuy" }
func (PumpWrappedSell) Name() string                                     { return "PumpWrappedSell" }
func (PerpsV2) Name() string                                             { return "PerpsV2" }
func (PerpsV2AddLiquidity) Name() string                                 { return "PerpsV2AddLiquidity" }
func (PerpsV2RemoveLiquidity) Name() string                              { return "PerpsV2RemoveLiquidity" }
func (MoonshotWrappedBuy) Name() string                                  { return "MoonshotWrappedBuy" }
func (MoonshotWrappedSell) Name() string                                 { return "MoonshotWrappedSell" }
func (StabbleStableSwap) Name() string                                   { return "StabbleStableSwap" }
func (StabbleWeightedSwap) Name() string                                 { return "StabbleWeightedSwap" }
func (Obric) Name() string                                               { return "Obric" }
func (SolFi) Name() string                                               { return "SolFi" }
func (SolayerDelegateNoInit) Name() string                               { return "SolayerDelegateNoInit" }
func (SolayerUndelegateNoInit) Name() string                             { return "SolayerUndelegateNoInit" }
func (ZeroFi) Name() string                                              { return "ZeroFi" }
func (StakeDexWithdrawWrappedSol) Name() string                          { return "StakeDexWithdrawWrappedSol" }
func (VirtualsBuy) Name() string                                         { return "VirtualsBuy" }
func (VirtualsSell) Name() string                                        { return "VirtualsSell" }
func (Perena) Name() string                                              { return "Perena" }
func (PumpSwapBuy) Name() string                                         { return "PumpSwapBuy" }
func (PumpSwapSell) Name() string                                        { return "PumpSwapSell" }
func (Gamma) Name() string                                               { return "Gamma" }
func (MeteoraDlmmSwapV2) Name() string                                   { return "MeteoraDlmmSwapV2" }
func (Woofi) Name() string                                               { return "Woofi" }
func (MeteoraDammV2) Name() string                                       { return "MeteoraDammV2" }
func (StabbleStableSwapV2) Name() string                                 { return "StabbleStableSwapV2" }
func (StabbleWeightedSwapV2) Name() string                               { return "StabbleWeightedSwapV2" }
func (RaydiumLaunchlabBuy) Name() string                                 { return "RaydiumLaunchlabBuy" }
func (RaydiumLaunchlabSell) Name() string                                { return "RaydiumLaunchlabSell" }
func (BoopdotfunWrappedBuy) Name() string                                { return "BoopdotfunWrappedBuy" }
func (BoopdotfunWrappedSell) Name() string                               { return "BoopdotfunWrappedSell" }
func (Plasma) Name() string                                              { return "Plasma" }
func (GoonFi) Name() string                                              { return "GoonFi" }
func (HumidiFi) Name() string                                            { return "HumidiFi" }
func (MeteoraDynamicBondingCurveSwapWithRemainingAccounts) Name() string { return "MeteoraDynamicBondingCurveSwapWithRemainingAccounts" }
func (TesseraV) Name() string                                            { return "TesseraV" }
func (Hylo) Name() string                                                { return "Hylo" }

func (Saber) isSwap()                                               {}
func (SaberAddDecimalsDeposit) isSwap()                             {}
func (SaberAddDecimalsWithdraw) isSwap()                            {}
func (TokenSwap) isSwap()                                           {}
func (Raydium) isSwap()                                             {}
func (Crema) isSwap()                                               {}
func (Mercurial) isSwap()                                           {}
func (Aldrin) isSwap()                                              {}
func (AldrinV2) isSwap()                                            {}
func (Whirlpool) isSwap()                                           {}
func (Invariant) isSwap()                                           {}
func (Meteora) isSwap()                                             {}
func (MarcoPolo) isSwap()                                           {}
func (LifinityV2) isSwap()                                          {}
func (RaydiumClmm) isSwap()                                         {}
func (Phoenix) isSwap()                                             {}
func (TokenSwapV2) isSwap()                                         {}
func (HeliumTreasuryManagementRedeemV0) isSwap()                    {}
func (StakeDexStakeWrappedSol) isSwap()                             {}
func (MeteoraDlmm) isSwap()                                         {}
func (OpenBookV2) isSwap()                                          {}
func (RaydiumClmmV2) isSwap()                                       {}
func (StakeDexPrefundWithdrawStakeAndDepositStake) isSwap()         {}
func (SanctumS) isSwap()                                            {}
func (SanctumSAddLiquidity) isSwap()                                {}
func (SanctumSRemoveLiquidity) isSwap()                             {}
func (RaydiumCP) isSwap()                                           {}
func (WhirlpoolSwapV2) isSwap()                                     {}
func (OneIntro) isSwap()                                            {}
func (PumpWrappedBuy) isSwap()                                      {}
func (PumpWrappedSell) isSwap()                                     {}
func (PerpsV2) isSwap()                                             {}
func (PerpsV2AddLiquidity) isSwap()                                 {}
func (PerpsV2RemoveLiquidity) isSwap()                              {}
func (MoonshotWrappedBuy) isSwap()                                  {}
func (MoonshotWrappedSell) isSwap()                                 {}
func (StabbleStableSwap) isSwap()                                   {}
func (StabbleWeightedSwap) isSwap()                                 {}
func (Obric) isSwap()                                               {}
func (SolFi) isSwap()                                               {}
func (SolayerDelegateNoInit) isSwap()                               {}
func (SolayerUndelegateNoInit) isSwap()                             {}
func (ZeroFi) isSwap()                                              {}
func (StakeDexWithdrawWrappedSol) isSwap()                          {}
func (VirtualsBuy) isSwap()                                         {}
func (VirtualsSell) isSwap()                                        {}
func (Perena) isSwap()                                              {}
func (PumpSwapBuy) isSwap()                                         {}
func (PumpSwapSell) isSwap()                                        {}
func (Gamma) isSwap()                                               {}
func (MeteoraDlmmSwapV2) isSwap()                                   {}
func (Woofi) isSwap()                                               {}
func (MeteoraDammV2) isSwap()                                       {}
func (StabbleStableSwapV2) isSwap()                                 {}
func (StabbleWeightedSwapV2) isSwap()                               {}
func (RaydiumLaunchlabBuy) isSwap()                                 {}
func (RaydiumLaunchlabSell) isSwap()                                {}
func (BoopdotfunWrappedBuy) isSwap()                                {}
func (BoopdotfunWrappedSell) isSwap()                               {}
func (Plasma) isSwap()                                              {}
func (GoonFi) isSwap()                                              {}
func (HumidiFi) isSwap()                                            {}
func (MeteoraDynamicBondingCurveSwapWithRemainingAccounts) isSwap() {}
func (TesseraV) isSwap()                                            {}
func (Hylo) isSwap()                                                {}

// variants holds one zero value per variant in wire order.
var variants = [...]Swap{
	Saber{},
	SaberAddDecimalsDeposit{},
	SaberAddDecimalsWithdraw{},
	TokenSwap{},
	Raydium{},
	Crema{},
	Mercurial{},
	Aldrin{},
	AldrinV2{},
	Whirlpool{},
	Invariant{},
	Meteora{},
	MarcoPolo{},
	LifinityV2{},
	RaydiumClmm{},
	Phoenix{},
	TokenSwapV2{},
	HeliumTreasuryManagementRedeemV0{},
	StakeDexStakeWrappedSol{},
	MeteoraDlmm{},
	OpenBookV2{},
	RaydiumClmmV2{},
	StakeDexPrefundWithdrawStakeAndDepositStake{},
	SanctumS{},
	SanctumSAddLiquidity{},
	SanctumSRemoveLiquidity{},
	RaydiumCP{},
	WhirlpoolSwapV2{},
	OneIntro{},
	PumpWrappedBuy{},
	PumpWrappedSell{},
	PerpsV2{},
	PerpsV2AddLiquidity{},
	PerpsV2RemoveLiquidity{},
	MoonshotWrappedBuy{},
	MoonshotWrappedSell{},
	StabbleStableSwap{},
	StabbleWeightedSwap{},
	Obric{},
	SolFi{},
	SolayerDelegateNoInit{},
	SolayerUndelegateNoInit{},
	ZeroFi{},
	StakeDexWithdrawWrappedSol{},
	VirtualsBuy{},
	VirtualsSell{},
	Perena{},
	PumpSwapBuy{},
	PumpSwapSell{},
	Gamma{},
	MeteoraDlmmSwapV2{},
	Woofi{},
	MeteoraDammV2{},
	StabbleStableSwapV2{},
	StabbleWeightedSwapV2{},
	RaydiumLaunchlabBuy{},
	RaydiumLaunchlabSell{},
	BoopdotfunWrappedBuy{},
	BoopdotfunWrappedSell{},
	Plasma{},
	GoonFi{},
	HumidiFi{},
	MeteoraDynamicBondingCurveSwapWithRemainingAccounts{},
	TesseraV{},
	Hylo{},
}
