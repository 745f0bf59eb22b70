package config

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/BurntSushi/toml"

	"kresko/native/minter"
)

// AssetConfig declares an asset seeded into the registry at startup. Kind is
// either "collateral" or "synthetic". PriceUSDWad feeds the fixture oracle so
// a standalone daemon can value positions without an external feed.
type AssetConfig struct {
	Kind            string   `toml:"Kind"`
	Address         string   `toml:"Address"`
	Oracle          string   `toml:"Oracle"`
	Symbol          string   `toml:"Symbol"`
	Decimals        uint8    `toml:"Decimals"`
	FactorWad       *big.Int `toml:"FactorWad"`
	KFactorWad      *big.Int `toml:"KFactorWad"`
	Mintable        bool     `toml:"Mintable"`
	MarketCapUSDWad *big.Int `toml:"MarketCapUSDWad"`
	Rebasing        bool     `toml:"Rebasing"`
	PriceUSDWad     *big.Int `toml:"PriceUSDWad"`
}

// Config is the daemon's runtime configuration.
type Config struct {
	Service       string        `toml:"Service"`
	Environment   string        `toml:"Environment"`
	ListenAddress string        `toml:"ListenAddress"`
	DataDir       string        `toml:"DataDir"`
	Owner         string        `toml:"Owner"`
	ModuleAddress string        `toml:"ModuleAddress"`
	Minter        minter.Config `toml:"minter"`
	Assets        []AssetConfig `toml:"assets"`
}

// Load reads and validates a TOML configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.Minter.EnsureDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the structural fields; protocol parameter bounds are
// enforced by the minter module itself.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config: nil configuration")
	}
	if strings.TrimSpace(c.ListenAddress) == "" {
		return fmt.Errorf("config: ListenAddress required")
	}
	if strings.TrimSpace(c.Owner) == "" {
		return fmt.Errorf("config: Owner required")
	}
	if strings.TrimSpace(c.ModuleAddress) == "" {
		return fmt.Errorf("config: ModuleAddress required")
	}
	for i := range c.Assets {
		kind := strings.ToLower(strings.TrimSpace(c.Assets[i].Kind))
		if kind != "collateral" && kind != "synthetic" {
			return fmt.Errorf("config: asset %d: unknown kind %q", i, c.Assets[i].Kind)
		}
		if strings.TrimSpace(c.Assets[i].Address) == "" || strings.TrimSpace(c.Assets[i].Oracle) == "" {
			return fmt.Errorf("config: asset %d: address and oracle required", i)
		}
		if kind == "synthetic" && strings.TrimSpace(c.Assets[i].Symbol) == "" {
			return fmt.Errorf("config: asset %d: synthetic symbol required", i)
		}
	}
	return nil
}
