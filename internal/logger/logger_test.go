package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestComponentLoggerWritesToExtraWriter(t *testing.T) {
	var buf bytes.Buffer
	Initialize("info", &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	GetForComponent("pool_contract").Info().Str("share", "31622776").Msg("Liquidity provided")
	GetForComponent("pool_contract").Debug().Msg("filtered")

	var event map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &event))
	assert.Equal(t, "pool_contract", event["component"])
	assert.Equal(t, "31622776", event["share"])
	assert.Equal(t, "Liquidity provided", event["message"])
}
