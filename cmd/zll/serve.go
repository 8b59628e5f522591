package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/elys-network/zll/internal/config"
	"github.com/elys-network/zll/internal/state"
	"github.com/elys-network/zll/internal/web"
)

// venueService is the name the gRPC health service reports the venue under.
const venueService = "zll.venue.v1.Venue"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Deploy the market and produce blocks, serving the HTTP API and gRPC health",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	log.Info().Msg("ZLL venue starting...")

	withDB, err := connectDB()
	if err != nil {
		return err
	}
	if withDB {
		defer state.CloseDB()
	}

	n, err := bootstrapNode(withDB)
	if err != nil {
		return err
	}

	// --- gRPC health ---
	lis, err := net.Listen("tcp", ":"+config.GRPCPort)
	if err != nil {
		return err
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	healthServer.SetServingStatus(venueService, healthpb.HealthCheckResponse_SERVING)

	go func() {
		log.Info().Str("port", config.GRPCPort).Msg("Starting gRPC health service")
		if err := grpcServer.Serve(lis); err != nil {
			log.Error().Err(err).Msg("gRPC server stopped")
		}
	}()

	// --- HTTP API ---
	httpServer := web.NewWebServer(config.WebPort, n).Server()
	go func() {
		log.Info().Str("port", config.WebPort).Str("url", "http://localhost:"+config.WebPort).Msg("Starting venue HTTP API")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Web server failed to start")
		}
	}()

	// --- Block production ---
	n.RunLoop(ctx, config.Market.BlockInterval)

	log.Info().Msg("Shutting down...")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Web server shutdown failed")
	}
	grpcServer.GracefulStop()

	log.Info().Uint64("height", n.Status().Height).Msg("ZLL venue stopped")
	return nil
}
