package config

import (
	"github.com/spf13/pflag"
)

// ResolveConfig holds configuration for the resolve command.
type ResolveConfig struct {
	Provider  ProviderConfig
	Chain     string
	Addresses []string
}

// LoadResolve merges .env, config file, environment variables, and flags into ResolveConfig.
func LoadResolve(cfgFile string, flags *pflag.FlagSet) (ResolveConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return ResolveConfig{}, err
	}
	return ResolveConfig{
		Provider:  providerConfig(v),
		Chain:     v.GetString("chain"),
		Addresses: getStringSlice(v, "address"),
	}, nil
}

// InfoConfig holds configuration for the info command.
type InfoConfig struct {
	Provider ProviderConfig
	Chain    string
	OutChain string
	IDs      []string
}

// LoadInfo merges .env, config file, environment variables, and flags into InfoConfig.
func LoadInfo(cfgFile string, flags *pflag.FlagSet) (InfoConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return InfoConfig{}, err
	}
	v.SetDefault("out-chain", "mainnet")

	return InfoConfig{
		Provider: providerConfig(v),
		Chain:    v.GetString("chain"),
		OutChain: v.GetString("out-chain"),
		IDs:      getStringSlice(v, "id"),
	}, nil
}

// CrossChainConfig holds configuration for the crosschain command.
type CrossChainConfig struct {
	Provider  ProviderConfig
	ChainIn   string
	ChainOut  string
	Addresses []string
}

// LoadCrossChain merges .env, config file, environment variables, and flags into CrossChainConfig.
func LoadCrossChain(cfgFile string, flags *pflag.FlagSet) (CrossChainConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return CrossChainConfig{}, err
	}
	v.SetDefault("chain-in", "mainnet")
	v.SetDefault("chain-out", "mainnet")

	return CrossChainConfig{
		Provider:  providerConfig(v),
		ChainIn:   v.GetString("chain-in"),
		ChainOut:  v.GetString("chain-out"),
		Addresses: getStringSlice(v, "address"),
	}, nil
}
