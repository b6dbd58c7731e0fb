package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"billscan/internal/engine"
)

func TestNewRateLimitError(t *testing.T) {
	base := errors.New("429 too many requests")

	t.Run("with retry after", func(t *testing.T) {
		err := engine.NewRateLimitError("gemini", base, 30)
		assert.Equal(t, 30*time.Second, err.RetryAfter)
		assert.Equal(t, "gemini", err.Provider)
		assert.ErrorIs(t, err, base)
		assert.Contains(t, err.Error(), "gemini rate limited")
	})

	t.Run("defaults to 60s", func(t *testing.T) {
		err := engine.NewRateLimitError("gemini", base, 0)
		assert.Equal(t, 60*time.Second, err.RetryAfter)
	})

	t.Run("negative defaults to 60s", func(t *testing.T) {
		err := engine.NewRateLimitError("gemini", base, -5)
		assert.Equal(t, 60*time.Second, err.RetryAfter)
	})
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, engine.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, engine.ParseRetryAfterHeader("not-a-number"))
	assert.Equal(t, 0, engine.ParseRetryAfterHeader("Wed, 21 Oct 2025 07:28:00 GMT"))
	assert.Equal(t, 120, engine.ParseRetryAfterHeader("120"))
}
