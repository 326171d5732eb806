package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pairScope/internal/aggregate"
	"pairScope/internal/chain"
	"pairScope/internal/config"
	"pairScope/internal/model"
	"pairScope/internal/report"
	"pairScope/internal/resolver"
	"pairScope/internal/series"
	"pairScope/internal/storage"
)

func newAggregateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Build pairwise relative price and combined volume series",
		RunE:  runAggregate,
	}
	cmd.Flags().String("chain", "mainnet", chainUsage())
	cmd.Flags().StringSlice("address", nil, "contract addresses, at least two (comma-separated)")
	cmd.Flags().String("vs-currency", "usd", "quote currency of the provider series")
	cmd.Flags().Int("days", 7, "lookback in days; the grid covers days+1 days")
	cmd.Flags().String("out", "", "append one JSON line per pair to this path (default stdout)")
	cmd.Flags().Bool("table", false, "print a summary table instead of JSON lines on stdout")
	cmd.Flags().StringSlice("pair", nil, "print a single pair as base,quote (symbol or input index)")
	return cmd
}

func runAggregate(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadAggregate(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Provider.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	addresses, err := chain.ParseAddresses(cfg.Addresses)
	if err != nil {
		return err
	}

	var base, quote model.AssetRef
	selectPair := len(cfg.Pair) > 0
	if selectPair {
		if len(cfg.Pair) != 2 {
			return fmt.Errorf("pair must be base,quote")
		}
		if base, err = model.ParseAssetRef(cfg.Pair[0]); err != nil {
			return fmt.Errorf("pair base: %w", err)
		}
		if quote, err = model.ParseAssetRef(cfg.Pair[1]); err != nil {
			return fmt.Errorf("pair quote: %w", err)
		}
	}

	client, err := newClient(cfg.Provider, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	agg := aggregate.NewAggregator(
		resolver.New(client, logger),
		series.NewFetcher(client, logger),
		logger,
	)

	start := time.Now()
	result, err := agg.AggregatePairSeries(ctx, addresses, cfg.Chain, cfg.VsCurrency, cfg.Days)
	if err != nil {
		return err
	}
	logger.Info("aggregate done", zap.String("run_id", result.RunID), elapsed(start))

	out := cmd.OutOrStdout()
	if selectPair {
		pair, err := result.Pair(base, quote)
		if err != nil {
			return err
		}
		return report.Pair(out, pair)
	}

	records := storage.NewPairRecords(result.RunID, chain.Normalize(cfg.Chain), result.VsCurrency, result.Pairs)
	if cfg.Out != "" {
		if err := storage.NewJsonlStorage(cfg.Out).PutPairBatch(records); err != nil {
			return err
		}
		logger.Info("pairs written", zap.String("out", cfg.Out), zap.Int("pairs", len(records)))
	}

	if cfg.Table {
		return report.Summary(out, result.RunID, result.VsCurrency, result.Grid, result.Pairs)
	}
	if cfg.Out == "" {
		enc := json.NewEncoder(out)
		for _, record := range records {
			if err := enc.Encode(record); err != nil {
				return fmt.Errorf("encode pair: %w", err)
			}
		}
	}
	return nil
}
