package config

import (
	"github.com/rs/zerolog/log"
)

// Endpoint configuration loaded from environment variables.
// These are populated at startup by the LoadConfig function.
var (
	// WebPort is the port of the HTTP query API.
	WebPort string
	// GRPCPort is the port of the gRPC health service.
	GRPCPort string

	// DBHost enables the postgres receipt store when set.
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
)

// loadEndpointConfig loads endpoint configuration from environment variables.
// This function is called by LoadConfig() in General.go.
func loadEndpointConfig() error {
	log.Info().Msg("Loading endpoint configuration from environment variables...")

	var err error

	WebPort = getEnvOrDefault("WEB_PORT", DefaultWebPort)
	GRPCPort = getEnvOrDefault("GRPC_PORT", DefaultGRPCPort)

	DBHost = getEnvOrDefault("DB_HOST", "")
	DBPort, err = getEnvAsIntOrDefault("DB_PORT", 5432)
	if err != nil {
		return err
	}
	DBUser = getEnvOrDefault("DB_USER", "")
	DBPassword = getEnvOrDefault("DB_PASSWORD", "")
	DBName = getEnvOrDefault("DB_NAME", "")
	DBSSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

	log.Debug().
		Str("WebPort", WebPort).
		Str("GRPCPort", GRPCPort).
		Bool("ReceiptStore", DatabaseEnabled()).
		Msg("Endpoint configuration loaded successfully.")

	return nil
}

// DatabaseEnabled reports whether call receipts should be persisted to postgres.
func DatabaseEnabled() bool {
	return DBHost != ""
}
