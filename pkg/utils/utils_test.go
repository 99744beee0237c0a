package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "hello", TruncateRunes("hello", 10))
	assert.Equal(t, "hel", TruncateRunes("hello", 3))
	assert.Equal(t, "", TruncateRunes("hello", 0))
	assert.Equal(t, "héll", TruncateRunes("héllo wörld", 4))
	assert.Equal(t, "日本", TruncateRunes("日本語", 2))
}

func TestSafeText(t *testing.T) {
	in := "  Shares \n\n rose\t3%\x00 today \xff "
	assert.Equal(t, "Shares rose 3% today", SafeText(in))
}

func TestRuneLen(t *testing.T) {
	assert.Equal(t, 3, RuneLen("日本語"))
	assert.Equal(t, 5, RuneLen("hello"))
}

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "b"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
	assert.False(t, ContainsString(nil, "a"))
}

func TestRealSleeper(t *testing.T) {
	t.Run("waits", func(t *testing.T) {
		start := time.Now()
		require.NoError(t, RealSleeper{}.Sleep(context.Background(), 10*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := RealSleeper{}.Sleep(ctx, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGoSafeRecovers(t *testing.T) {
	done := make(chan struct{})
	GoSafe(func() {
		defer close(done)
		panic("boom")
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}
