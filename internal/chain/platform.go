package chain

import (
	"sort"
	"strings"

	"pairScope/internal/model"
)

// Mainnet is the default chain for address output.
const Mainnet = "mainnet"

// platforms maps chain short names to CoinGecko asset platform ids.
// It is never written after package init.
var platforms = map[string]string{
	"mainnet":   "ethereum",
	"arbitrum":  "arbitrum-one",
	"polygon":   "polygon-pos",
	"matic":     "polygon-pos",
	"optimism":  "optimistic-ethereum",
	"xdai":      "xdai",
	"fantom":    "fantom",
	"avalanche": "avalanche",
}

// Normalize lower-cases and trims a chain short name.
func Normalize(chain string) string {
	return strings.ToLower(strings.TrimSpace(chain))
}

// PlatformKey returns the provider platform id for a chain short name.
func PlatformKey(chain string) (string, error) {
	key, ok := platforms[Normalize(chain)]
	if !ok {
		return "", &model.ConfigurationError{
			Setting: "chain",
			Value:   chain,
			Reason:  "supported: " + strings.Join(Chains(), ", "),
		}
	}
	return key, nil
}

// Chains returns the supported chain short names, sorted.
func Chains() []string {
	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
