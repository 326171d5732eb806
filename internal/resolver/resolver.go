// Package resolver maps contract addresses and market identifiers between
// chains using the provider's coin metadata.
package resolver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"pairScope/internal/batch"
	"pairScope/internal/chain"
	"pairScope/internal/model"
)

// CoinLookup is the subset of the provider client the resolver needs.
type CoinLookup interface {
	CoinByContract(ctx context.Context, platform, address string) (*model.CoinInfo, error)
	Coin(ctx context.Context, marketID string) (*model.CoinInfo, error)
}

// Resolver resolves asset identities. Every batch method fans out one lookup
// per item and fails as a whole on the first error.
type Resolver struct {
	lookup CoinLookup
	logger *zap.Logger
}

func New(lookup CoinLookup, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{lookup: lookup, logger: logger}
}

// ResolveMarketIDs returns the market id of each address, in input order.
func (r *Resolver) ResolveMarketIDs(ctx context.Context, addresses []string, chainName string) ([]string, error) {
	assets, err := r.ResolveAssets(ctx, addresses, chainName)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(assets))
	for i, asset := range assets {
		ids[i] = asset.MarketID
	}
	return ids, nil
}

// ResolveAssets resolves each address to its full identity, in input order.
func (r *Resolver) ResolveAssets(ctx context.Context, addresses []string, chainName string) ([]model.AssetIdentity, error) {
	platform, err := chain.PlatformKey(chainName)
	if err != nil {
		return nil, err
	}
	chainName = chain.Normalize(chainName)

	r.logger.Debug("resolve assets", zap.String("chain", chainName), zap.Int("addresses", len(addresses)))

	return batch.Map(ctx, addresses, func(ctx context.Context, _ int, address string) (model.AssetIdentity, error) {
		address = normalizeAddress(address)
		info, err := r.lookup.CoinByContract(ctx, platform, address)
		if err != nil {
			return model.AssetIdentity{}, notFoundOr(err, "address", address, chainName)
		}
		return model.AssetIdentity{
			Chain:    chainName,
			Address:  address,
			MarketID: info.ID,
			Symbol:   info.Symbol,
		}, nil
	})
}

type chainInfo struct {
	address string
	symbol  string
}

// ResolveChainInfo returns, for each market id, its contract address on
// outputChain and its symbol. An empty outputChain means mainnet.
func (r *Resolver) ResolveChainInfo(ctx context.Context, marketIDs []string, chainName, outputChain string) ([]string, []string, error) {
	if _, err := chain.PlatformKey(chainName); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(outputChain) == "" {
		outputChain = chain.Mainnet
	}
	outPlatform, err := chain.PlatformKey(outputChain)
	if err != nil {
		return nil, nil, err
	}
	outputChain = chain.Normalize(outputChain)

	infos, err := batch.Map(ctx, marketIDs, func(ctx context.Context, _ int, id string) (chainInfo, error) {
		info, err := r.lookup.Coin(ctx, id)
		if err != nil {
			return chainInfo{}, notFoundOr(err, "market_id", id, "")
		}
		address, ok := platformAddress(info, outPlatform)
		if !ok {
			return chainInfo{}, &model.NotFoundError{Kind: "market_id", Key: id, Chain: outputChain}
		}
		return chainInfo{address: address, symbol: info.Symbol}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	addresses := make([]string, len(infos))
	symbols := make([]string, len(infos))
	for i, info := range infos {
		addresses[i] = info.address
		symbols[i] = info.symbol
	}
	return addresses, symbols, nil
}

// MapCrossChainAddress returns the address of the same asset on chainOut.
// A mainnet to mainnet mapping returns the input without a network call.
func (r *Resolver) MapCrossChainAddress(ctx context.Context, address, chainIn, chainOut string) (string, error) {
	inPlatform, outPlatform, err := crossChainPlatforms(chainIn, chainOut)
	if err != nil {
		return "", err
	}
	return r.mapAddress(ctx, address, inPlatform, outPlatform, chainIn, chainOut)
}

// MapCrossChainAddresses is the batch form of MapCrossChainAddress.
func (r *Resolver) MapCrossChainAddresses(ctx context.Context, addresses []string, chainIn, chainOut string) ([]string, error) {
	inPlatform, outPlatform, err := crossChainPlatforms(chainIn, chainOut)
	if err != nil {
		return nil, err
	}
	return batch.Map(ctx, addresses, func(ctx context.Context, _ int, address string) (string, error) {
		return r.mapAddress(ctx, address, inPlatform, outPlatform, chainIn, chainOut)
	})
}

func (r *Resolver) mapAddress(ctx context.Context, address, inPlatform, outPlatform, chainIn, chainOut string) (string, error) {
	if chain.Normalize(chainIn) == chain.Mainnet && chain.Normalize(chainOut) == chain.Mainnet {
		return address, nil
	}

	address = normalizeAddress(address)
	info, err := r.lookup.CoinByContract(ctx, inPlatform, address)
	if err != nil {
		return "", notFoundOr(err, "address", address, chain.Normalize(chainIn))
	}
	mapped, ok := platformAddress(info, outPlatform)
	if !ok {
		return "", &model.NotFoundError{Kind: "address", Key: address, Chain: chain.Normalize(chainOut)}
	}

	r.logger.Debug("mapped address",
		zap.String("address", address),
		zap.String("chain_in", chainIn),
		zap.String("chain_out", chainOut),
		zap.String("mapped", mapped),
	)
	return mapped, nil
}

func crossChainPlatforms(chainIn, chainOut string) (string, string, error) {
	inPlatform, err := chain.PlatformKey(chainIn)
	if err != nil {
		return "", "", err
	}
	outPlatform, err := chain.PlatformKey(chainOut)
	if err != nil {
		return "", "", err
	}
	return inPlatform, outPlatform, nil
}

func platformAddress(info *model.CoinInfo, platform string) (string, bool) {
	address := strings.TrimSpace(info.Platforms[platform])
	return address, address != ""
}

func normalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// notFoundOr turns a provider 404 into a NotFoundError for key and passes
// every other error through unchanged.
func notFoundOr(err error, kind, key, chainName string) error {
	var upstream *model.UpstreamError
	if errors.As(err, &upstream) && upstream.StatusCode == http.StatusNotFound {
		return &model.NotFoundError{Kind: kind, Key: key, Chain: chainName, Err: err}
	}
	return err
}
