package dto

// TopTradedAsset is one entry of the top traded assets ranking.
type TopTradedAsset struct {
	AssetName string  `json:"asset_name"`
	Volume    float64 `json:"volume"`
}

// RecordTradeRequest is the body of POST /trades.
type RecordTradeRequest struct {
	AssetName string  `json:"asset_name"`
	Quantity  float64 `json:"quantity"`
}

// DigestEntry is one ticker line of the Telegram digest.
type DigestEntry struct {
	Ticker  string
	Title   string
	Summary string
	Error   string
}
