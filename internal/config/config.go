package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pairScope/internal/coingecko"
)

const envPrefix = "PAIRSCOPE"

// ProviderConfig holds the CoinGecko client settings shared by every command.
type ProviderConfig struct {
	APIURL       string
	APIKey       string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	RateLimit    int
	LogLevel     string
}

// ClientConfig converts the provider settings to a client configuration.
func (p ProviderConfig) ClientConfig() coingecko.ClientConfig {
	return coingecko.ClientConfig{
		BaseURL:         p.APIURL,
		APIKey:          p.APIKey,
		Timeout:         p.Timeout,
		MaxRetries:      p.MaxRetries,
		RetryBackoff:    p.RetryBackoff,
		RateLimitPerMin: p.RateLimit,
	}
}

// newViper merges a .env file, config file, PAIRSCOPE_* environment variables
// and flags. Flags win over env, env over file, file over defaults.
func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := coingecko.ClientConfigDefaults()
	v.SetDefault("api-url", defaults.BaseURL)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("max-retries", defaults.MaxRetries)
	v.SetDefault("retry-backoff", defaults.RetryBackoff)
	v.SetDefault("rate-limit", defaults.RateLimitPerMin)
	v.SetDefault("log-level", "info")
	v.SetDefault("chain", "mainnet")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func providerConfig(v *viper.Viper) ProviderConfig {
	return ProviderConfig{
		APIURL:       v.GetString("api-url"),
		APIKey:       v.GetString("api-key"),
		Timeout:      v.GetDuration("timeout"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		RateLimit:    v.GetInt("rate-limit"),
		LogLevel:     v.GetString("log-level"),
	}
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return splitAndClean(strings.Join(typed, ","))
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return splitAndClean(strings.Join(items, ","))
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, item := range parts {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
