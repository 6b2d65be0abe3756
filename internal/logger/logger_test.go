package logger_test

import (
	"testing"

	"github.com/api-sage/account-management/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePayloadMasksAccountNumbers(t *testing.T) {
	payload := map[string]any{
		"accountNumber": "1234567890",
		"nickname":      "My Savings",
		"nested": map[string]any{
			"account_number": "9876543210",
			"currency":       "USD",
		},
	}

	sanitized, ok := logger.SanitizePayload(payload).(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "******", sanitized["accountNumber"])
	assert.Equal(t, "My Savings", sanitized["nickname"])

	nested, ok := sanitized["nested"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "******", nested["account_number"])
	assert.Equal(t, "USD", nested["currency"])
}

func TestSanitizePayloadHandlesSlices(t *testing.T) {
	payload := []any{
		map[string]any{"accountNumber": "1234567890"},
		map[string]any{"status": "ACTIVE"},
	}

	sanitized, ok := logger.SanitizePayload(payload).([]any)
	require.True(t, ok)
	require.Len(t, sanitized, 2)

	first, ok := sanitized[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "******", first["accountNumber"])
}

func TestSanitizePayloadUnserializable(t *testing.T) {
	assert.Equal(t, "<unavailable>", logger.SanitizePayload(make(chan int)))
}
