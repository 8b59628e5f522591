package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// ReceiptSummary represents high-level call statistics of the venue.
type ReceiptSummary struct {
	TotalCalls      int       `json:"total_calls"`
	SuccessfulCalls int       `json:"successful_calls"`
	FailedCalls     int       `json:"failed_calls"`
	LastHeight      uint64    `json:"last_height"`
	LastUpdated     time.Time `json:"last_updated,omitempty"`
}

// ContractActivity aggregates calls per contract and entry point.
type ContractActivity struct {
	Contract string `json:"contract"`
	Kind     string `json:"kind"`
	Calls    int    `json:"calls"`
	Failures int    `json:"failures"`
}

// GetReceiptSummary retrieves call counts and the newest recorded block.
func GetReceiptSummary(ctx context.Context) (*ReceiptSummary, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	summary := &ReceiptSummary{}
	query := `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN success THEN 1 END),
			COALESCE(MAX(block_height), 0),
			MAX(block_time)
		FROM call_receipts
	`

	var (
		lastHeight  int64
		lastUpdated sql.NullTime
	)
	err := DB.QueryRowContext(ctx, query).Scan(&summary.TotalCalls, &summary.SuccessfulCalls, &lastHeight, &lastUpdated)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt summary: %w", err)
	}
	summary.FailedCalls = summary.TotalCalls - summary.SuccessfulCalls
	summary.LastHeight = uint64(lastHeight)
	if lastUpdated.Valid {
		summary.LastUpdated = lastUpdated.Time
	}

	log.Debug().Int("totalCalls", summary.TotalCalls).Uint64("lastHeight", summary.LastHeight).Msg("Retrieved receipt summary")
	return summary, nil
}

// GetContractActivity groups recorded calls by contract and kind, busiest first.
func GetContractActivity(ctx context.Context) ([]ContractActivity, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	query := `
		SELECT
			contract_addr,
			call_kind,
			COUNT(*) AS calls,
			COUNT(CASE WHEN NOT success THEN 1 END) AS failures
		FROM call_receipts
		GROUP BY contract_addr, call_kind
		ORDER BY calls DESC, contract_addr
	`
	rows, err := DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contract activity: %w", err)
	}
	defer rows.Close()

	var activity []ContractActivity
	for rows.Next() {
		var a ContractActivity
		if err := rows.Scan(&a.Contract, &a.Kind, &a.Calls, &a.Failures); err != nil {
			return nil, fmt.Errorf("failed to scan contract activity: %w", err)
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contract activity: %w", err)
	}
	return activity, nil
}
