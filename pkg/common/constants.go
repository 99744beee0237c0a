package common

const (
	SourceUserSpecified     = "user_specified"
	SourceTopTraded         = "top_traded"
	SourceDefault           = "default"
	SourceDefaultAfterError = "default_after_error"

	StatusSuccess = "success"
	StatusError   = "error"

	ProviderYahoo    = "yahoo"
	ProviderYahooRSS = "yahoo_rss"
	ProviderAlpaca   = "alpaca"

	RedisKeyTopTraded = "trades:top_traded"
)
