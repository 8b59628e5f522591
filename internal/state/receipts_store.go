package state

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/lib/pq" // PostgreSQL driver for array support
	"github.com/rs/zerolog/log"

	"github.com/elys-network/zll/internal/types"
)

// ReceiptStore persists call receipts of the local chain into call_receipts.
type ReceiptStore struct{}

func (ReceiptStore) SaveCallReceipt(ctx context.Context, receipt types.CallReceipt) error {
	return SaveCallReceipt(ctx, receipt)
}

// SaveCallReceipt stores one receipt.
func SaveCallReceipt(ctx context.Context, receipt types.CallReceipt) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	attributesJSON, err := json.Marshal(receipt.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}

	query := `
		INSERT INTO call_receipts (
			call_id, call_kind, contract_addr, sender_addr, block_height, block_time,
			payload, funds, success, error_message, attributes, sub_messages
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = DB.ExecContext(ctx, query,
		receipt.CallID, string(receipt.Kind), receipt.Contract, receipt.Sender,
		int64(receipt.Height), receipt.Timestamp,
		payloadJSON(receipt.Payload), pq.Array(coinsToStrings(receipt.Funds)),
		receipt.Success, receipt.Error, attributesJSON, receipt.SubMessages,
	)
	if err != nil {
		return fmt.Errorf("failed to save call receipt: %w", err)
	}

	log.Debug().
		Str("call_id", receipt.CallID).
		Uint64("height", receipt.Height).
		Bool("success", receipt.Success).
		Msg("Call receipt saved to database")

	return nil
}

// GetRecentCallReceipts returns the newest receipts first.
func GetRecentCallReceipts(ctx context.Context, limit int) ([]types.CallReceipt, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	if limit <= 0 || limit > 100 {
		limit = 20 // Default limit
	}

	query := `
		SELECT call_id, call_kind, contract_addr, sender_addr, block_height, block_time,
			payload, funds, success, COALESCE(error_message, ''), attributes, sub_messages
		FROM call_receipts
		ORDER BY receipt_id DESC
		LIMIT $1;
	`
	rows, err := DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query call receipts: %w", err)
	}
	defer rows.Close()

	var receipts []types.CallReceipt
	for rows.Next() {
		var (
			receipt        types.CallReceipt
			kind           string
			height         int64
			payload        []byte
			funds          []string
			attributesJSON []byte
		)
		err := rows.Scan(
			&receipt.CallID, &kind, &receipt.Contract, &receipt.Sender, &height, &receipt.Timestamp,
			&payload, pq.Array(&funds), &receipt.Success, &receipt.Error, &attributesJSON, &receipt.SubMessages,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan call receipt: %w", err)
		}

		receipt.Kind = types.CallKind(kind)
		receipt.Height = uint64(height)
		receipt.Payload = payload
		if receipt.Funds, err = stringsToCoins(funds); err != nil {
			return nil, fmt.Errorf("failed to parse funds of %s: %w", receipt.CallID, err)
		}
		if len(attributesJSON) > 0 {
			if err := json.Unmarshal(attributesJSON, &receipt.Attributes); err != nil {
				return nil, fmt.Errorf("failed to unmarshal attributes of %s: %w", receipt.CallID, err)
			}
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating call receipts: %w", err)
	}

	return receipts, nil
}

// payloadJSON keeps valid JSON payloads queryable and stores null otherwise.
func payloadJSON(payload []byte) []byte {
	if len(payload) == 0 || !json.Valid(payload) {
		return nil
	}
	return payload
}

func coinsToStrings(coins sdk.Coins) []string {
	out := make([]string, 0, len(coins))
	for _, coin := range coins {
		out = append(out, coin.String())
	}
	return out
}

func stringsToCoins(values []string) (sdk.Coins, error) {
	coins := sdk.NewCoins()
	for _, value := range values {
		coin, err := sdk.ParseCoinNormalized(value)
		if err != nil {
			return nil, err
		}
		coins = coins.Add(coin)
	}
	return coins, nil
}
