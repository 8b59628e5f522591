package market

import (
	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/types"
)

// addrWhileInstantiation marks the pool as not yet created.
const addrWhileInstantiation = ""

// Config is the market's only stored record.
type Config struct {
	MarketOperator   string                 `json:"market_operator"`
	LiquidityPool    string                 `json:"liquidity_pool"`
	MarketPhasesInfo types.MarketPhasesInfo `json:"market_phases_info"`
	BlocksPerYear    uint64                 `json:"blocks_per_year"`
	Alpha            uint64                 `json:"alpha"`
}

var config = host.NewItem[Config]("config")

func loadConfig(deps host.Deps) (Config, error) {
	return config.Load(deps.Storage)
}

// setLiquidityPool records the pool and returns the saved config.
func setLiquidityPool(deps host.Deps, pool string) (Config, error) {
	return config.Update(deps.Storage, func(cfg Config) (Config, error) {
		cfg.LiquidityPool = pool
		return cfg, nil
	})
}

// currentPhase derives the phase of the market at height.
func currentPhase(deps host.Deps, height uint64) (types.MarketPhase, error) {
	cfg, err := loadConfig(deps)
	if err != nil {
		return "", err
	}
	return cfg.MarketPhasesInfo.PhaseAt(height), nil
}
