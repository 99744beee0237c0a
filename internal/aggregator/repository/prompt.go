package repository

import "fmt"

// BuildSummarizeArticlePrompt embeds the article text in the finance-analyst instruction.
func BuildSummarizeArticlePrompt(text string) string {
	return fmt.Sprintf("You are a finance expert. Please provide a summary of following news: %s generate summary give complete text only", text)
}
