package dto

// YahooSearchResponse is the subset of the Yahoo Finance search payload we read.
type YahooSearchResponse struct {
	News []YahooNews `json:"news"`
}

type YahooNews struct {
	UUID                string `json:"uuid"`
	Title               string `json:"title"`
	Publisher           string `json:"publisher"`
	Link                string `json:"link"`
	ProviderPublishTime int64  `json:"providerPublishTime"`
	Type                string `json:"type"`
}
