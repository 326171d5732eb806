package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pairScope/internal/chain"
	"pairScope/internal/config"
	"pairScope/internal/resolver"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve contract addresses to CoinGecko market ids",
		RunE:  runResolve,
	}
	cmd.Flags().String("chain", "mainnet", chainUsage())
	cmd.Flags().StringSlice("address", nil, "contract addresses (comma-separated)")
	return cmd
}

func runResolve(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadResolve(cfgFile, cmd.Flags())
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
	if len(addresses) == 0 {
		return fmt.Errorf("address list is required")
	}

	client, err := newClient(cfg.Provider, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	start := time.Now()
	ids, err := resolver.New(client, logger).ResolveMarketIDs(ctx, addresses, cfg.Chain)
	if err != nil {
		return err
	}
	logger.Info("resolve complete", zap.Int("addresses", len(ids)), elapsed(start))

	out := cmd.OutOrStdout()
	for i, id := range ids {
		fmt.Fprintf(out, "%s\t%s\n", addresses[i], id)
	}
	return nil
}
