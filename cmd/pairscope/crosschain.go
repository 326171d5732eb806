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

func newCrossChainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crosschain",
		Short: "Map contract addresses from one chain to their counterparts on another",
		RunE:  runCrossChain,
	}
	cmd.Flags().String("chain-in", "mainnet", "source "+chainUsage())
	cmd.Flags().String("chain-out", "mainnet", "target "+chainUsage())
	cmd.Flags().StringSlice("address", nil, "contract addresses on the source chain (comma-separated)")
	return cmd
}

func runCrossChain(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadCrossChain(cfgFile, cmd.Flags())
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
	mapped, err := resolver.New(client, logger).MapCrossChainAddresses(ctx, addresses, cfg.ChainIn, cfg.ChainOut)
	if err != nil {
		return err
	}
	logger.Info("crosschain complete",
		zap.String("chain_in", cfg.ChainIn),
		zap.String("chain_out", cfg.ChainOut),
		zap.Int("addresses", len(mapped)),
		elapsed(start),
	)

	out := cmd.OutOrStdout()
	for i, addr := range mapped {
		fmt.Fprintf(out, "%s\t%s\n", addresses[i], addr)
	}
	return nil
}
