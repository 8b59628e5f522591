package main

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/elys-network/zll/internal/node"
	"github.com/elys-network/zll/internal/state"
)

func newSimulateCmd() *cobra.Command {
	var (
		scenario   = node.DefaultScenario
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted lifecycle: deposits, an AMM borrow, settlement and a withdrawal",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			report, runErr := n.RunScenario(scenario)
			if report != nil {
				for _, step := range report.Steps {
					log.Info().
						Str("step", step.Name).
						Str("phase", step.Phase.String()).
						Bool("expected", step.Expected).
						Bool("success", step.Success).
						Msg("Outcome")
				}
				if jsonOutput {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					if err := enc.Encode(report); err != nil {
						return err
					}
				}
			}
			return runErr
		},
	}

	cmd.Flags().Float64Var(&scenario.Collateral, "collateral", scenario.Collateral, "collateral pledged in the first asset, display units")
	cmd.Flags().Float64Var(&scenario.BorrowFraction, "borrow-fraction", scenario.BorrowFraction, "fraction of the borrowable amount to borrow")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	return cmd
}
