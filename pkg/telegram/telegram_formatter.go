package telegram

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang-stock-news-digest/internal/aggregator/dto"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLen keeps each part under Telegram's 4096 character limit.
const maxMessageLen = 4090

// FormatNewsDigestForTelegram formats digest entries into Markdown messages, splitting into
// parts so that no message exceeds maxMessageLen.
func FormatNewsDigestForTelegram(date time.Time, source string, entries []dto.DigestEntry) []string {
	if len(entries) == 0 {
		return []string{"No ticker news for today."}
	}

	var messages []string
	var currentMessage strings.Builder
	part := 1
	inPart := 0

	startNewPart := func() {
		currentMessage.Reset()
		var header string
		if part == 1 {
			header = fmt.Sprintf("📰 *Ticker News Digest %s* 📰\n_source: %s_\n\n", date.Format("2006-01-02"), escape(source))
		} else {
			header = fmt.Sprintf("---*Ticker News Digest Part %d*---\n\n", part)
		}
		currentMessage.WriteString(header)
		inPart = 0
	}

	startNewPart()

	for _, e := range entries {
		var entryBuilder strings.Builder
		entryBuilder.WriteString(fmt.Sprintf("📈 *- - - - - %s - - - - -*\n", escape(e.Ticker)))
		if e.Error != "" {
			entryBuilder.WriteString(fmt.Sprintf("⚠️ %s\n", escape(e.Error)))
		} else {
			entryBuilder.WriteString(fmt.Sprintf("🗞 *%s*\n", escape(e.Title)))
			entryBuilder.WriteString(fmt.Sprintf("💬 %s\n", escape(e.Summary)))
		}
		entryBuilder.WriteString("\n")

		entry := entryBuilder.String()
		if inPart > 0 && currentMessage.Len()+len(entry) > maxMessageLen {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}
		// A single oversized entry is cut so it still fits one part.
		if currentMessage.Len()+len(entry) > maxMessageLen {
			entry = truncateBytes(entry, maxMessageLen-currentMessage.Len())
		}
		currentMessage.WriteString(entry)
		inPart++
	}

	messages = append(messages, currentMessage.String())
	return messages
}

func FormatErrorAlertMessage(t time.Time, errType string, errMsg string) string {
	return fmt.Sprintf("🚨 *%s*\n🕒 %s\n```\n%s\n```", escape(errType), t.Format(time.RFC3339), errMsg)
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func truncateBytes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
