package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pairScope/internal/chain"
	"pairScope/internal/coingecko"
	"pairScope/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pairscope",
		Short:        "Pairwise price and volume series from CoinGecko market data",
		SilenceUsage: true,
	}

	defaults := coingecko.ClientConfigDefaults()
	flags := root.PersistentFlags()
	flags.String("config", "", "config file path")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("api-url", defaults.BaseURL, "CoinGecko API base URL")
	flags.String("api-key", "", "CoinGecko API key (demo or pro)")
	flags.Duration("timeout", defaults.Timeout, "per-request timeout")
	flags.Int("max-retries", defaults.MaxRetries, "maximum retry attempts for 429/5xx and transport errors")
	flags.Duration("retry-backoff", defaults.RetryBackoff, "initial retry backoff")
	flags.Int("rate-limit", defaults.RateLimitPerMin, "maximum requests per minute")

	root.AddCommand(newResolveCmd(), newInfoCmd(), newCrossChainCmd(), newAggregateCmd())
	return root
}

func chainUsage() string {
	return "chain name (" + strings.Join(chain.Chains(), ", ") + ")"
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func newClient(p config.ProviderConfig, logger *zap.Logger) (*coingecko.Client, error) {
	cc := p.ClientConfig()
	cc.Logger = logger
	client, err := coingecko.NewClient(cc)
	if err != nil {
		return nil, fmt.Errorf("provider client: %w", err)
	}
	return client, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func elapsed(start time.Time) zap.Field {
	return zap.Duration("elapsed", time.Since(start))
}
