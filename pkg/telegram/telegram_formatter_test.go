package telegram

import (
	"strings"
	"testing"
	"time"

	"golang-stock-news-digest/internal/aggregator/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNewsDigestForTelegram_Empty(t *testing.T) {
	msgs := FormatNewsDigestForTelegram(time.Now(), "default", nil)
	assert.Equal(t, []string{"No ticker news for today."}, msgs)
}

func TestFormatNewsDigestForTelegram_SingleMessage(t *testing.T) {
	date := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	msgs := FormatNewsDigestForTelegram(date, "user_specified", []dto.DigestEntry{
		{Ticker: "AAPL", Title: "Apple beats estimates", Summary: "Revenue grew."},
		{Ticker: "MSFT", Error: "No qualifying article found"},
	})

	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "2026-10-18")
	assert.Contains(t, msgs[0], "AAPL")
	assert.Contains(t, msgs[0], "Apple beats estimates")
	assert.Contains(t, msgs[0], "Revenue grew.")
	assert.Contains(t, msgs[0], "No qualifying article found")
	assert.Contains(t, msgs[0], `user\_specified`)
}

func TestFormatNewsDigestForTelegram_SplitsParts(t *testing.T) {
	long := strings.Repeat("word ", 500)
	entries := []dto.DigestEntry{
		{Ticker: "AAPL", Title: "A", Summary: long},
		{Ticker: "MSFT", Title: "B", Summary: long},
		{Ticker: "GOOG", Title: "C", Summary: long},
	}

	msgs := FormatNewsDigestForTelegram(time.Now(), "default", entries)

	require.Greater(t, len(msgs), 1)
	for _, m := range msgs {
		assert.LessOrEqual(t, len(m), maxMessageLen)
	}
	assert.Contains(t, msgs[1], "Part 2")
}

func TestFormatNewsDigestForTelegram_OversizedEntryIsCut(t *testing.T) {
	huge := strings.Repeat("é", 5000)
	msgs := FormatNewsDigestForTelegram(time.Now(), "default", []dto.DigestEntry{
		{Ticker: "AAPL", Title: "A", Summary: huge},
	})
	for _, m := range msgs {
		assert.LessOrEqual(t, len(m), maxMessageLen)
		assert.True(t, strings.ToValidUTF8(m, "") == m)
	}
}

func TestTruncateBytes(t *testing.T) {
	assert.Equal(t, "ab", truncateBytes("abc", 2))
	assert.Equal(t, "abc", truncateBytes("abc", 5))
	assert.Equal(t, "", truncateBytes("abc", 0))
	// "é" is two bytes; cutting in the middle backs off to the boundary.
	assert.Equal(t, "a", truncateBytes("aé", 2))
}
