package config

import (
	"github.com/spf13/pflag"
)

// AggregateConfig holds configuration for the aggregate command.
type AggregateConfig struct {
	Provider   ProviderConfig
	Chain      string
	Addresses  []string
	VsCurrency string
	Days       int
	Out        string
	Table      bool
	Pair       []string
}

// LoadAggregate merges .env, config file, environment variables, and flags into AggregateConfig.
func LoadAggregate(cfgFile string, flags *pflag.FlagSet) (AggregateConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return AggregateConfig{}, err
	}
	v.SetDefault("vs-currency", "usd")
	v.SetDefault("days", 7)

	return AggregateConfig{
		Provider:   providerConfig(v),
		Chain:      v.GetString("chain"),
		Addresses:  getStringSlice(v, "address"),
		VsCurrency: v.GetString("vs-currency"),
		Days:       v.GetInt("days"),
		Out:        v.GetString("out"),
		Table:      v.GetBool("table"),
		Pair:       getStringSlice(v, "pair"),
	}, nil
}
