package main

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/elys-network/zll/internal/config"
	"github.com/elys-network/zll/internal/state"
)

func newResetDBCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset-db",
		Short: "Drop and recreate the call receipt tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !config.DatabaseEnabled() {
				return errors.New("DB_HOST environment variable not set")
			}
			if !yes {
				return errors.New("refusing to drop call_receipts without --yes")
			}

			dbCfg := state.DBConfig{
				Host: config.DBHost, Port: config.DBPort,
				User: config.DBUser, Password: config.DBPassword,
				DBName: config.DBName, SSLMode: config.DBSSLMode,
			}
			if err := state.InitDB(dbCfg); err != nil {
				return err
			}
			defer state.CloseDB()

			if err := state.DropSchema(); err != nil {
				return err
			}
			if err := state.EnsureSchema(); err != nil {
				return err
			}
			log.Info().Msg("Database reset completed successfully")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm dropping all recorded receipts")
	return cmd
}
