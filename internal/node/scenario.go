package node

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/elys-network/zll/internal/chain"
	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/types"
	"github.com/elys-network/zll/internal/utils"
)

// Deposit is one provider's contribution, in display units of the pooled assets.
type Deposit struct {
	AmountA float64
	AmountB float64
}

// Scenario scripts one pass through every phase of the market.
type Scenario struct {
	Deposits []Deposit
	// Collateral is pledged in the first pooled asset, in display units.
	Collateral float64
	// BorrowFraction of the borrowable amount is requested, in (0, 1].
	BorrowFraction float64
}

var DefaultScenario = Scenario{
	Deposits: []Deposit{
		{AmountA: 2, AmountB: 500},
		{AmountA: 5, AmountB: 5_000},
	},
	Collateral:     111,
	BorrowFraction: 0.5,
}

// ScenarioStep is the outcome of one scripted call.
type ScenarioStep struct {
	Name       string            `json:"name"`
	Height     uint64            `json:"height"`
	Phase      types.MarketPhase `json:"phase"`
	Expected   bool              `json:"expected_success"`
	Success    bool              `json:"success"`
	Error      string            `json:"error,omitempty"`
	Attributes []sdk.Attribute   `json:"attributes,omitempty"`
}

type ScenarioReport struct {
	Providers []string             `json:"providers"`
	Steps     []ScenarioStep       `json:"steps"`
	Terms     types.BorrowingTerms `json:"terms"`
	FinalPool types.PoolResponse   `json:"final_pool"`
}

// Diverged lists the steps whose outcome differs from the expected one.
func (r *ScenarioReport) Diverged() []ScenarioStep {
	var out []ScenarioStep
	for _, step := range r.Steps {
		if step.Success != step.Expected {
			out = append(out, step)
		}
	}
	return out
}

type scenarioRun struct {
	n      *Node
	report *ScenarioReport
}

// RunScenario deposits in the liquidity phase, borrows in the AMM phase, tries
// to withdraw during settlement and withdraws after it. The chain is moved by
// jumping heights, so RunLoop must not run concurrently.
func (n *Node) RunScenario(s Scenario) (*ScenarioReport, error) {
	if len(s.Deposits) == 0 {
		return nil, fmt.Errorf("scenario needs at least one deposit")
	}
	if s.BorrowFraction <= 0 || s.BorrowFraction > 1 {
		return nil, fmt.Errorf("borrow fraction %v must be in (0, 1]", s.BorrowFraction)
	}

	run := &scenarioRun{n: n, report: &ScenarioReport{}}

	// Providing liquidity
	deposits := make([][2]types.Asset, len(s.Deposits))
	for i, d := range s.Deposits {
		assets, err := run.assets(d)
		if err != nil {
			return nil, err
		}
		deposits[i] = assets

		provider := n.chain.API().AddrMake(fmt.Sprintf("provider-%d", i))
		if err := run.fund(provider, assets); err != nil {
			return nil, fmt.Errorf("failed to fund provider %d: %w", i, err)
		}
		run.report.Providers = append(run.report.Providers, provider)
	}
	for i, provider := range run.report.Providers {
		msgs, funds, err := run.provideMsgs(provider, deposits[i])
		if err != nil {
			return nil, err
		}
		provide, err := host.WasmExecute(n.pool, types.PoolExecuteMsg{
			ProvideLiquidity: &types.ProvideLiquidityMsg{Assets: deposits[i]},
		}, funds)
		if err != nil {
			return nil, err
		}
		run.step(fmt.Sprintf("provide liquidity #%d", i), true, func() (*chain.AppResponse, error) {
			return n.chain.ExecuteMulti(provider, append(msgs, provide)...)
		})
	}

	// Automated market maker
	n.chain.SetHeight(n.phases.LpPhaseEndsAt + 1)
	collateral, err := run.displayAsset(n.infos[0], s.Collateral)
	if err != nil {
		return nil, err
	}
	borrower := n.chain.API().AddrMake("borrower")
	terms, err := n.BorrowingTerms(collateral)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrowing terms: %w", err)
	}
	run.report.Terms = terms

	expected := sdkmath.LegacyNewDecFromInt(terms.Borrow.Amount).
		Mul(sdkmath.LegacyMustNewDecFromStr(fmt.Sprintf("%.6f", s.BorrowFraction))).
		TruncateInt()
	run.step("borrow", true, func() (*chain.AppResponse, error) {
		return n.chain.Execute(borrower, n.market, borrowMsg(types.NewAsset(terms.Borrow.Info, expected), collateral), nil)
	})
	run.step("borrow above capacity", false, func() (*chain.AppResponse, error) {
		return n.chain.Execute(borrower, n.market, borrowMsg(types.NewAsset(terms.Borrow.Info, terms.Borrow.Amount.AddRaw(1)), collateral), nil)
	})

	// Settlement
	n.chain.SetHeight(n.phases.AmmPhaseEndsAt + 1)
	first := run.report.Providers[0]
	share, err := run.shareOf(first)
	if err != nil {
		return nil, err
	}
	run.step("withdraw during settlement", false, func() (*chain.AppResponse, error) {
		return run.withdraw(first, share)
	})

	// Post settlement
	n.chain.SetHeight(n.phases.SettlementPhaseEndsAt + 1)
	run.step("withdraw liquidity", true, func() (*chain.AppResponse, error) {
		return run.withdraw(first, share)
	})

	if run.report.FinalPool, err = n.PoolState(); err != nil {
		return nil, fmt.Errorf("failed to query final pool state: %w", err)
	}

	if diverged := run.report.Diverged(); len(diverged) > 0 {
		return run.report, fmt.Errorf("scenario step %q diverged: %s", diverged[0].Name, diverged[0].Error)
	}
	n.log.Info().
		Int("steps", len(run.report.Steps)).
		Str("totalShare", run.report.FinalPool.TotalShare.String()).
		Msg("Scenario completed")
	return run.report, nil
}

func borrowMsg(expected, pledged types.Asset) types.MarketExecuteMsg {
	return types.MarketExecuteMsg{Borrow: &types.BorrowMsg{ExpectedBorrow: expected, PledgedCollateral: pledged}}
}

func (r *scenarioRun) step(name string, expected bool, call func() (*chain.AppResponse, error)) {
	block := r.n.chain.Block()
	step := ScenarioStep{
		Name:     name,
		Height:   block.Height,
		Phase:    r.n.phases.PhaseAt(block.Height),
		Expected: expected,
	}

	resp, err := call()
	if err != nil {
		step.Error = err.Error()
	} else {
		step.Success = true
		step.Attributes = resp.Attributes()
	}
	r.report.Steps = append(r.report.Steps, step)

	event := r.n.log.Info()
	if step.Success != step.Expected {
		event = r.n.log.Warn()
	}
	event.
		Str("step", name).
		Uint64("height", step.Height).
		Str("phase", step.Phase.String()).
		Bool("success", step.Success).
		Str("error", step.Error).
		Msg("Scenario step")
}

func (r *scenarioRun) displayAsset(info types.AssetInfo, amount float64) (types.Asset, error) {
	decimals, err := r.n.Decimals(info)
	if err != nil {
		return types.Asset{}, err
	}
	base, err := utils.FromDisplay(amount, decimals)
	if err != nil {
		return types.Asset{}, fmt.Errorf("invalid amount %v of %s: %w", amount, info, err)
	}
	return types.NewAsset(info, base), nil
}

func (r *scenarioRun) assets(d Deposit) ([2]types.Asset, error) {
	var assets [2]types.Asset
	for i, amount := range []float64{d.AmountA, d.AmountB} {
		asset, err := r.displayAsset(r.n.infos[i], amount)
		if err != nil {
			return assets, err
		}
		assets[i] = asset
	}
	return assets, nil
}

// fund mints native assets to the provider and transfers token assets from the operator.
func (r *scenarioRun) fund(provider string, assets [2]types.Asset) error {
	for _, asset := range assets {
		if asset.Info.IsNativeToken() {
			if err := r.n.chain.InitBankBalance(provider, sdk.NewCoins(sdk.NewCoin(asset.Info.NativeToken.Denom, asset.Amount))); err != nil {
				return err
			}
			continue
		}
		_, err := r.n.chain.Execute(r.n.operator, asset.Info.Token.ContractAddr, types.Cw20ExecuteMsg{
			Transfer: &types.Cw20Transfer{Recipient: provider, Amount: asset.Amount},
		}, nil)
		if err != nil {
			return err
		}
	}
	return nil
}

// provideMsgs returns the allowances a deposit needs and the native funds it attaches.
func (r *scenarioRun) provideMsgs(provider string, assets [2]types.Asset) ([]host.CosmosMsg, sdk.Coins, error) {
	var (
		msgs  []host.CosmosMsg
		funds = sdk.NewCoins()
	)
	for _, asset := range assets {
		if asset.Info.IsNativeToken() {
			funds = funds.Add(sdk.NewCoin(asset.Info.NativeToken.Denom, asset.Amount))
			continue
		}
		msg, err := host.WasmExecute(asset.Info.Token.ContractAddr, types.Cw20ExecuteMsg{
			IncreaseAllowance: &types.Cw20IncreaseAllowance{Spender: r.n.pool, Amount: asset.Amount},
		}, nil)
		if err != nil {
			return nil, nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, funds, nil
}

func (r *scenarioRun) shareOf(provider string) (sdkmath.Int, error) {
	var resp types.Cw20BalanceResponse
	err := r.n.chain.QueryWasmSmart(r.n.lpToken, types.Cw20QueryMsg{Balance: &types.Cw20BalanceQuery{Address: provider}}, &resp)
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("failed to query share of %s: %w", provider, err)
	}
	return resp.Balance, nil
}

func (r *scenarioRun) withdraw(provider string, share sdkmath.Int) (*chain.AppResponse, error) {
	hook, err := host.Encode(types.PoolHookMsg{WithdrawLiquidity: types.Empty})
	if err != nil {
		return nil, err
	}
	return r.n.chain.Execute(provider, r.n.lpToken, types.Cw20ExecuteMsg{Send: &types.Cw20Send{
		Contract: r.n.pool,
		Amount:   share,
		Msg:      hook,
	}}, nil)
}
