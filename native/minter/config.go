package minter

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Config captures the runtime configuration for the minter module. Wad fields
// carry 1e18 fixed-point integers.
type Config struct {
	MinCollateralRatioWad   *big.Int `toml:"MinCollateralRatioWad"`
	LiquidationIncentiveWad *big.Int `toml:"LiquidationIncentiveWad"`
	BurnFeeWad              *big.Int `toml:"BurnFeeWad"`
	MinDebtValueUSDWad      *big.Int `toml:"MinDebtValueUSDWad"`
	FeeRecipient            string   `toml:"FeeRecipient"`
}

// EnsureDefaults populates nil big.Int fields so decoding partial files is
// safe.
func (c *Config) EnsureDefaults() {
	if c == nil {
		return
	}
	if c.MinCollateralRatioWad == nil {
		c.MinCollateralRatioWad = big.NewInt(0)
	}
	if c.LiquidationIncentiveWad == nil {
		c.LiquidationIncentiveWad = big.NewInt(0)
	}
	if c.BurnFeeWad == nil {
		c.BurnFeeWad = big.NewInt(0)
	}
	if c.MinDebtValueUSDWad == nil {
		c.MinDebtValueUSDWad = big.NewInt(0)
	}
}

// Params converts the config into validated protocol parameters.
func (c *Config) Params() (*ProtocolParams, error) {
	if c == nil {
		return nil, ErrInvalidParameter
	}
	recipient := strings.TrimSpace(c.FeeRecipient)
	if !common.IsHexAddress(recipient) {
		return nil, ErrInvalidAddress
	}
	params := &ProtocolParams{
		MinCollateralRatio:   cloneBig(c.MinCollateralRatioWad),
		LiquidationIncentive: cloneBig(c.LiquidationIncentiveWad),
		BurnFee:              cloneBig(c.BurnFeeWad),
		MinDebtValue:         cloneBig(c.MinDebtValueUSDWad),
		FeeRecipient:         common.HexToAddress(recipient),
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}
