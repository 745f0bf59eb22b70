package minter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ProtocolParams groups the governance controlled limits for the minter
// module. All ratio fields are wad fixed-point values.
type ProtocolParams struct {
	// MinCollateralRatio is the floor collateralisation ratio applied when
	// sizing the minimum required collateral for a debt position.
	MinCollateralRatio *big.Int
	// LiquidationIncentive multiplies the repaid value when sizing the
	// collateral paid to a liquidator. Bounded to [1.0, 1.25] and strictly
	// below MinCollateralRatio so the max-liquidatable solve stays positive.
	LiquidationIncentive *big.Int
	// BurnFee is the protocol fee charged on burn value, bounded to [0, 0.1].
	BurnFee *big.Int
	// MinDebtValue is the USD floor below which a debt position must either
	// not exist or be fully closed.
	MinDebtValue *big.Int
	// FeeRecipient receives protocol fees and must not be the zero address.
	FeeRecipient common.Address
}

// Clone returns a deep copy of the parameters.
func (p *ProtocolParams) Clone() *ProtocolParams {
	if p == nil {
		return nil
	}
	clone := &ProtocolParams{FeeRecipient: p.FeeRecipient}
	if p.MinCollateralRatio != nil {
		clone.MinCollateralRatio = new(big.Int).Set(p.MinCollateralRatio)
	}
	if p.LiquidationIncentive != nil {
		clone.LiquidationIncentive = new(big.Int).Set(p.LiquidationIncentive)
	}
	if p.BurnFee != nil {
		clone.BurnFee = new(big.Int).Set(p.BurnFee)
	}
	if p.MinDebtValue != nil {
		clone.MinDebtValue = new(big.Int).Set(p.MinDebtValue)
	}
	return clone
}

// Validate checks every parameter against its governance bound.
func (p *ProtocolParams) Validate() error {
	if p == nil {
		return ErrInvalidParameter
	}
	if p.MinCollateralRatio == nil || p.MinCollateralRatio.Cmp(scale) < 0 {
		return ErrInvalidParameter
	}
	if p.LiquidationIncentive == nil ||
		p.LiquidationIncentive.Cmp(scale) < 0 ||
		p.LiquidationIncentive.Cmp(maxBonus) > 0 ||
		p.LiquidationIncentive.Cmp(p.MinCollateralRatio) >= 0 {
		return ErrInvalidParameter
	}
	if p.BurnFee == nil || p.BurnFee.Sign() < 0 || p.BurnFee.Cmp(maxWadFee) > 0 {
		return ErrInvalidParameter
	}
	if p.MinDebtValue == nil || p.MinDebtValue.Sign() < 0 {
		return ErrInvalidParameter
	}
	if p.FeeRecipient == (common.Address{}) {
		return ErrInvalidAddress
	}
	return nil
}
