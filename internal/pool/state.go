package pool

import (
	"github.com/elys-network/zll/internal/host"
	"github.com/elys-network/zll/internal/types"
)

// addrWhileInstantiation marks the share token as not yet created.
const addrWhileInstantiation = ""

// Config is the pool's only stored record.
type Config struct {
	PairInfo     types.PairInfo      `json:"pair_info"`
	FactoryAddr  string              `json:"factory_addr"`
	BalanceCheck *types.BalanceCheck `json:"balance_check,omitempty"`
}

var config = host.NewItem[Config]("config")

func loadConfig(deps host.Deps) (Config, error) {
	return config.Load(deps.Storage)
}

// setLiquidityToken records the share token and returns the saved config.
func setLiquidityToken(deps host.Deps, token string) (Config, error) {
	return config.Update(deps.Storage, func(cfg Config) (Config, error) {
		cfg.PairInfo.LiquidityToken = token
		return cfg, nil
	})
}
