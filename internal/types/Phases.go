/*

The market lifecycle is a pure function of the block height and four
boundaries. There is no stored phase: every caller recomputes it, so the phase
can never drift from the chain height.

*/

package types

// MarketPhase is one of the four lifecycle phases of a market.
type MarketPhase string

const (
	PhaseProvidingLiquidity   MarketPhase = "providing_liquidity"
	PhaseAutomatedMarketMaker MarketPhase = "automated_market_maker"
	PhaseSettlement           MarketPhase = "settlement"
	PhasePostSettlement       MarketPhase = "post_settlement"
)

func (p MarketPhase) String() string {
	return string(p)
}

// CanLpAcceptDeposits is true only while liquidity is being provided.
func (p MarketPhase) CanLpAcceptDeposits() bool {
	return p == PhaseProvidingLiquidity
}

// CanLpAcceptWithdrawals is true only after settlement.
func (p MarketPhase) CanLpAcceptWithdrawals() bool {
	return p == PhasePostSettlement
}

// CanAmmAcceptBorrowing is true only during the AMM phase.
func (p MarketPhase) CanAmmAcceptBorrowing() bool {
	return p == PhaseAutomatedMarketMaker
}

// MarketPhasesInfo holds the block heights at which each phase ends.
type MarketPhasesInfo struct {
	MarketStartedAt       uint64 `json:"market_started_at"`
	LpPhaseEndsAt         uint64 `json:"lp_phase_ends_at"`
	AmmPhaseEndsAt        uint64 `json:"amm_phase_ends_at"`
	SettlementPhaseEndsAt uint64 `json:"settlement_phase_ends_at"`
}

// NewMarketPhasesInfo builds validated boundaries.
func NewMarketPhasesInfo(startedAt, lpEndsAt, ammEndsAt, settlementEndsAt uint64) (MarketPhasesInfo, error) {
	info := MarketPhasesInfo{
		MarketStartedAt:       startedAt,
		LpPhaseEndsAt:         lpEndsAt,
		AmmPhaseEndsAt:        ammEndsAt,
		SettlementPhaseEndsAt: settlementEndsAt,
	}
	if err := info.Validate(); err != nil {
		return MarketPhasesInfo{}, err
	}
	return info, nil
}

// Validate enforces the strict order of the boundaries.
func (m MarketPhasesInfo) Validate() error {
	if m.MarketStartedAt >= m.LpPhaseEndsAt {
		return ErrInvalidPhases.Wrapf("`market_started_at` = %d must occur before `lp_phase_ends_at` = %d",
			m.MarketStartedAt, m.LpPhaseEndsAt)
	}
	if m.LpPhaseEndsAt >= m.AmmPhaseEndsAt {
		return ErrInvalidPhases.Wrapf("`lp_phase_ends_at` = %d must occur before `amm_phase_ends_at` = %d",
			m.LpPhaseEndsAt, m.AmmPhaseEndsAt)
	}
	if m.AmmPhaseEndsAt >= m.SettlementPhaseEndsAt {
		return ErrInvalidPhases.Wrapf("`amm_phase_ends_at` = %d must occur before `settlement_phase_ends_at` = %d",
			m.AmmPhaseEndsAt, m.SettlementPhaseEndsAt)
	}
	return nil
}

// PhaseAt classifies a block height. Each boundary belongs to the phase it ends.
func (m MarketPhasesInfo) PhaseAt(height uint64) MarketPhase {
	switch {
	case height <= m.LpPhaseEndsAt:
		return PhaseProvidingLiquidity
	case height <= m.AmmPhaseEndsAt:
		return PhaseAutomatedMarketMaker
	case height <= m.SettlementPhaseEndsAt:
		return PhaseSettlement
	default:
		return PhasePostSettlement
	}
}
