package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pairScope/internal/config"
	"pairScope/internal/resolver"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Look up contract address and symbol for CoinGecko market ids",
		RunE:  runInfo,
	}
	cmd.Flags().String("chain", "mainnet", chainUsage())
	cmd.Flags().String("out-chain", "mainnet", "chain whose contract address is reported")
	cmd.Flags().StringSlice("id", nil, "CoinGecko market ids (comma-separated)")
	return cmd
}

func runInfo(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadInfo(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Provider.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if len(cfg.IDs) == 0 {
		return fmt.Errorf("id list is required")
	}

	client, err := newClient(cfg.Provider, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	start := time.Now()
	addresses, symbols, err := resolver.New(client, logger).ResolveChainInfo(ctx, cfg.IDs, cfg.Chain, cfg.OutChain)
	if err != nil {
		return err
	}
	logger.Info("info complete", zap.Int("ids", len(cfg.IDs)), zap.String("out_chain", cfg.OutChain), elapsed(start))

	out := cmd.OutOrStdout()
	for i, id := range cfg.IDs {
		fmt.Fprintf(out, "%s\t%s\t%s\n", id, symbols[i], addresses[i])
	}
	return nil
}
