package redis

const (
	// KeyPrefixSummary is the prefix for cached link summaries
	KeyPrefixSummary = "newsletter:summary:"
)

// SummaryKey returns the Redis key for the summary of a URL
func SummaryKey(url string) string {
	return KeyPrefixSummary + url
}
