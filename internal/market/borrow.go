package market

import (
	"github.com/elys-network/zll/internal/borrowing"
	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/types"
)

// nativeDecimals is the precision assumed for native denoms, which carry no
// on-chain metadata.
const nativeDecimals uint8 = 6

// borrow checks a borrow request against the current terms. Collateral is
// not taken and nothing is lent out yet: a passing request is only recorded.
func (c *Contract) borrow(deps host.Deps, env host.Env, borrower string, msg types.BorrowMsg) (*host.Response, error) {
	if err := msg.ExpectedBorrow.Validate(deps.API); err != nil {
		return nil, err
	}
	terms, err := borrowingTerms(deps, msg.PledgedCollateral, env.Block.Height)
	if err != nil {
		return nil, err
	}
	if err := borrowing.AssertBorrowable(msg.ExpectedBorrow, terms); err != nil {
		c.log.Debug().
			Err(err).
			Str("borrower", borrower).
			Str("expected_borrow", msg.ExpectedBorrow.String()).
			Msg("Borrow rejected")
		return nil, err
	}

	c.log.Info().
		Str("borrower", borrower).
		Str("pledged_collateral", msg.PledgedCollateral.String()).
		Str("borrowable", terms.Borrow.String()).
		Msg("Borrow accepted")

	return host.NewResponse().
		AddAttribute("action", "borrow").
		AddAttribute("borrower", borrower).
		AddAttribute("expected_borrow", msg.ExpectedBorrow.String()).
		AddAttribute("pledged_collateral", msg.PledgedCollateral.String()).
		AddAttribute("borrowable", terms.Borrow.String()).
		AddAttribute("interest", terms.Interest.String()), nil
}

// borrowingTerms prices pledged against the pool's reserves at height.
func borrowingTerms(deps host.Deps, pledged types.Asset, height uint64) (types.BorrowingTerms, error) {
	if err := pledged.Validate(deps.API); err != nil {
		return types.BorrowingTerms{}, err
	}
	cfg, err := loadConfig(deps)
	if err != nil {
		return types.BorrowingTerms{}, err
	}
	if cfg.LiquidityPool == addrWhileInstantiation {
		return types.BorrowingTerms{}, host.ErrQuery.Wrap("liquidity pool is not instantiated yet")
	}

	var pool types.PoolResponse
	if err := deps.Querier.QueryWasmSmart(cfg.LiquidityPool, types.PoolQueryMsg{Pool: types.Empty}, &pool); err != nil {
		return types.BorrowingTerms{}, err
	}
	reserves, err := borrowing.SplitReserves(pool.Assets, pledged.Info)
	if err != nil {
		return types.BorrowingTerms{}, err
	}
	if reserves.Borrow.Amount.IsZero() || reserves.Collateral.Amount.IsZero() {
		return types.BorrowingTerms{}, host.ErrQuery.Wrap("liquidity pool holds no reserves yet")
	}
	decimals, err := collateralDecimals(deps, pledged.Info)
	if err != nil {
		return types.BorrowingTerms{}, err
	}

	params := borrowing.Params{
		AmmPhaseEndsAt: cfg.MarketPhasesInfo.AmmPhaseEndsAt,
		BlocksPerYear:  cfg.BlocksPerYear,
		Alpha:          cfg.Alpha,
	}
	return borrowing.Terms(params, reserves, pledged, decimals, height)
}

func collateralDecimals(deps host.Deps, info types.AssetInfo) (uint8, error) {
	if info.IsNativeToken() {
		return nativeDecimals, nil
	}
	var token types.Cw20TokenInfoResponse
	if err := deps.Querier.QueryWasmSmart(info.Token.ContractAddr, types.Cw20QueryMsg{TokenInfo: types.Empty}, &token); err != nil {
		return 0, err
	}
	return token.Decimals, nil
}
