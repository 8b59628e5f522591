package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/elys-network/zll/internal/types"
)

// AppConfig holds all application configuration loaded from environment variables.
// These are populated at startup by the LoadConfig function.
var (
	// Bech32Prefix is the human-readable part of every address on the local chain.
	Bech32Prefix string
	// ChainID is the chain ID reported in every block.
	ChainID string

	// MarketOperator is the operator address, or a label an address is derived from.
	MarketOperator string

	// Market holds the deployed market's parameters, defaults filled in.
	Market types.MarketParameters
)

// LoadConfig loads configuration from environment variables and sets the global config vars.
// Every variable is optional; unset ones fall back to DefaultMarketParameters.
func LoadConfig() error {
	log.Info().Msg("Loading application configuration from environment variables...")

	var err error
	Market = DefaultMarketParameters

	Bech32Prefix = getEnvOrDefault("ZLL_BECH32_PREFIX", DefaultBech32Prefix)
	ChainID = getEnvOrDefault("ZLL_CHAIN_ID", DefaultChainID)
	MarketOperator = getEnvOrDefault("ZLL_MARKET_OPERATOR", DefaultMarketOperator)

	Market.AssetA = getEnvOrDefault("ZLL_ASSET_A", Market.AssetA)
	Market.AssetB = getEnvOrDefault("ZLL_ASSET_B", Market.AssetB)
	if Market.AssetA == Market.AssetB {
		return errors.New("ZLL_ASSET_A and ZLL_ASSET_B must differ, both are " + Market.AssetA)
	}

	if Market.BlocksPerYear, err = getEnvAsUint64OrDefault("ZLL_BLOCKS_PER_YEAR", Market.BlocksPerYear); err != nil {
		return err
	}
	if Market.Alpha, err = getEnvAsUint64OrDefault("ZLL_ALPHA", Market.Alpha); err != nil {
		return err
	}
	if Market.LpPhaseBlocks, err = getEnvAsUint64OrDefault("ZLL_LP_PHASE_BLOCKS", Market.LpPhaseBlocks); err != nil {
		return err
	}
	if Market.AmmPhaseBlocks, err = getEnvAsUint64OrDefault("ZLL_AMM_PHASE_BLOCKS", Market.AmmPhaseBlocks); err != nil {
		return err
	}
	if Market.SettlementPhaseBlocks, err = getEnvAsUint64OrDefault("ZLL_SETTLEMENT_PHASE_BLOCKS", Market.SettlementPhaseBlocks); err != nil {
		return err
	}
	if Market.BlockInterval, err = getEnvAsDurationOrDefault("ZLL_BLOCK_INTERVAL", Market.BlockInterval); err != nil {
		return err
	}
	Market.BasePrices = [2]string{
		getEnvOrDefault("ZLL_BASE_PRICE_A", Market.BasePrices[0]),
		getEnvOrDefault("ZLL_BASE_PRICE_B", Market.BasePrices[1]),
	}

	// Load endpoint configuration
	if err := loadEndpointConfig(); err != nil {
		return err
	}

	log.Debug().
		Str("ChainID", ChainID).
		Str("AssetA", Market.AssetA).
		Str("AssetB", Market.AssetB).
		Uint64("LpPhaseBlocks", Market.LpPhaseBlocks).
		Uint64("AmmPhaseBlocks", Market.AmmPhaseBlocks).
		Uint64("SettlementPhaseBlocks", Market.SettlementPhaseBlocks).
		Dur("BlockInterval", Market.BlockInterval).
		Msg("Configuration loaded successfully.")

	return nil
}

// getEnv retrieves a string environment variable. Returns error if not set.
func getEnv(key string) (string, error) {
	if value, exists := os.LookupEnv(key); exists {
		return value, nil
	}
	return "", errors.New("environment variable " + key + " is required but not set")
}

// getEnvOrDefault retrieves a string environment variable, or fallback if it is unset or empty.
func getEnvOrDefault(key, fallback string) string {
	if value, err := getEnv(key); err == nil && value != "" {
		return value
	}
	return fallback
}

// getEnvAsUint64OrDefault retrieves an environment variable as a uint64. Returns error if set but invalid.
func getEnvAsUint64OrDefault(key string, fallback uint64) (uint64, error) {
	valueStr := getEnvOrDefault(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return 0, errors.New("environment variable " + key + " must be a valid uint64, got: " + valueStr)
	}
	return value, nil
}

// getEnvAsIntOrDefault retrieves an environment variable as an int. Returns error if set but invalid.
func getEnvAsIntOrDefault(key string, fallback int) (int, error) {
	valueStr := getEnvOrDefault(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, errors.New("environment variable " + key + " must be a valid int, got: " + valueStr)
	}
	return value, nil
}

// getEnvAsDurationOrDefault retrieves an environment variable as a time.Duration ("5s", "1m").
func getEnvAsDurationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	valueStr := getEnvOrDefault(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		return 0, errors.New("environment variable " + key + " must be a positive duration, got: " + valueStr)
	}
	return value, nil
}
