package model

import (
	"fmt"
	"strconv"
	"strings"
)

// AssetRef selects one asset of an aggregation either by symbol or by its
// position in the input list. Exactly one form is set.
type AssetRef struct {
	name  string
	index int
	byIdx bool
}

// ByName references an asset by symbol (case-insensitive).
func ByName(symbol string) AssetRef {
	return AssetRef{name: symbol}
}

// ByIndex references an asset by input position.
func ByIndex(i int) AssetRef {
	return AssetRef{index: i, byIdx: true}
}

// ParseAssetRef treats an all-digit input as an index and anything else as a
// symbol.
func ParseAssetRef(input string) (AssetRef, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return AssetRef{}, fmt.Errorf("empty asset reference")
	}
	if i, err := strconv.Atoi(input); err == nil {
		if i < 0 {
			return AssetRef{}, fmt.Errorf("negative asset index %d", i)
		}
		return ByIndex(i), nil
	}
	return ByName(input), nil
}

func (r AssetRef) String() string {
	if r.byIdx {
		return strconv.Itoa(r.index)
	}
	return r.name
}

// Resolve maps the reference onto an index into symbols.
func (r AssetRef) Resolve(symbols []string) (int, error) {
	if r.byIdx {
		if r.index < 0 || r.index >= len(symbols) {
			return 0, fmt.Errorf("asset index %d out of range [0,%d)", r.index, len(symbols))
		}
		return r.index, nil
	}

	found := -1
	for i, symbol := range symbols {
		if !strings.EqualFold(symbol, r.name) {
			continue
		}
		if found >= 0 {
			return 0, fmt.Errorf("asset symbol %q is ambiguous (indices %d and %d)", r.name, found, i)
		}
		found = i
	}
	if found < 0 {
		return 0, fmt.Errorf("asset symbol %q not found", r.name)
	}
	return found, nil
}

// PairCount returns C(n, 2).
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// PairIndex returns the position of pair (i, j), i < j, in the lexicographic
// ordering of all pairs over n assets.
func PairIndex(n, i, j int) (int, error) {
	if i < 0 || j >= n || i >= j {
		return 0, fmt.Errorf("invalid pair (%d,%d) for %d assets", i, j, n)
	}
	// pairs with first index < i, then offset within row i
	return i*n - i*(i+1)/2 + (j - i - 1), nil
}
