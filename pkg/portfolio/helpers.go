package portfolio

import (
	"math"
	"strings"
	"time"
)

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// displayAssetType renders an asset type for humans: underscores become
// spaces and each word is title-cased ("mutual_fund" -> "Mutual Fund").
// The stored value is never changed.
func displayAssetType(assetType string) string {
	words := strings.Fields(strings.ReplaceAll(assetType, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
