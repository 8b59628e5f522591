package main

import (
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/elys-network/zll/internal/config"
	"github.com/elys-network/zll/internal/logger"
	"github.com/elys-network/zll/internal/node"
	"github.com/elys-network/zll/internal/state"
)

var (
	logLevel string
	logFile  string
)

// main is the entry point of the venue node.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "zll",
		Short:        "Phased AMM liquidity venue",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "also append JSON logs to this file")

	root.AddCommand(newServeCmd(), newSimulateCmd(), newResetDBCmd())
	return root
}

// initialize loads .env, sets up logging and reads the configuration.
func initialize() error {
	envErr := godotenv.Load()

	level := logLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	var extra []io.Writer
	if logFile != "" {
		w, err := logger.FileWriter(logFile)
		if err != nil {
			return err
		}
		extra = append(extra, w)
	}
	logger.Initialize(level, extra...)

	if envErr != nil {
		log.Warn().Msg("Warning: .env file not found. Relying on OS environment variables.")
	}

	if err := config.LoadConfig(); err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	return nil
}

// connectDB opens the receipt database when DB_HOST is set.
func connectDB() (bool, error) {
	if !config.DatabaseEnabled() {
		log.Info().Msg("DB_HOST not set, call receipts are kept in memory only")
		return false, nil
	}

	dbCfg := state.DBConfig{
		Host: config.DBHost, Port: config.DBPort,
		User: config.DBUser, Password: config.DBPassword,
		DBName: config.DBName, SSLMode: config.DBSSLMode,
	}
	if err := state.InitDB(dbCfg); err != nil {
		return false, err
	}
	if err := state.EnsureSchema(); err != nil {
		state.CloseDB()
		return false, err
	}
	return true, nil
}

// bootstrapNode deploys the configured market, recording receipts when a database is open.
func bootstrapNode(withDB bool) (*node.Node, error) {
	opts := node.Options{
		Params:       config.Market,
		Operator:     config.MarketOperator,
		Bech32Prefix: config.Bech32Prefix,
		ChainID:      config.ChainID,
		StartHeight:  config.DefaultStartHeight,
		StartTime:    time.Now().UTC(),
		DecimalsOf:   config.DecimalsOf,
	}
	if withDB {
		opts.Recorder = state.ReceiptStore{}
	}
	return node.Bootstrap(opts)
}
