package local_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/webchunk"
	"github.com/fwojciec/webchunk/local"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows immediate first request", func(t *testing.T) {
		t.Parallel()

		limiter := local.NewDomainLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("rate limits requests to same domain", func(t *testing.T) {
		t.Parallel()

		limiter := local.NewDomainLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("different domains have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := local.NewDomainLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "b.example.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("returns canceled error when context ends", func(t *testing.T) {
		t.Parallel()

		limiter := local.NewDomainLimiter(0.1)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "example.com")

		require.Error(t, err)
		assert.Equal(t, webchunk.ECANCELED, webchunk.ErrorCode(err))
	})
}
