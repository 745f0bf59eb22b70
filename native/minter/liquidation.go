package minter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	nativecommon "kresko/native/common"
)

// IsLiquidatable reports whether the account's collateral value has fallen
// below the minimum required for its outstanding debt.
func (e *Engine) IsLiquidatable(account common.Address) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	params, err := e.loadParams()
	if err != nil {
		return false, err
	}
	position, err := e.ensurePosition(account)
	if err != nil {
		return false, err
	}
	return e.positionLiquidatable(position, params)
}

func (e *Engine) positionLiquidatable(position *Position, params *ProtocolParams) (bool, error) {
	if len(position.Debt) == 0 {
		return false, nil
	}
	collateralValue, err := e.positionCollateralValue(position)
	if err != nil {
		return false, err
	}
	minValue, err := e.positionMinCollateralValue(position, params)
	if err != nil {
		return false, err
	}
	return collateralValue.Cmp(minValue) < 0, nil
}

// MaxLiquidatableValue returns the USD debt value that may be repaid in a
// single liquidation: the closed-form amount restoring the account to
// exactly the minimum collateralisation ratio, capped at the total debt
// value.
//
// Repaying u USD removes u from the debt value and u*incentive from the
// collateral value, so solving CV - u*inc = MCR*(DV - u) for u gives
// u = (MCR*DV - CV) / (MCR - inc). Parameter bounds keep inc strictly below
// MCR, so the denominator is positive.
func (e *Engine) MaxLiquidatableValue(account common.Address) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	params, err := e.loadParams()
	if err != nil {
		return nil, err
	}
	position, err := e.ensurePosition(account)
	if err != nil {
		return nil, err
	}
	return e.maxLiquidatableValue(position, params)
}

func (e *Engine) maxLiquidatableValue(position *Position, params *ProtocolParams) (*big.Int, error) {
	collateralValue, err := e.positionCollateralValue(position)
	if err != nil {
		return nil, err
	}
	debtValue, err := e.positionDebtValue(position)
	if err != nil {
		return nil, err
	}
	numerator := new(big.Int).Sub(wadMulUp(debtValue, params.MinCollateralRatio), collateralValue)
	if numerator.Sign() <= 0 {
		return big.NewInt(0), nil
	}
	denominator := new(big.Int).Sub(params.MinCollateralRatio, params.LiquidationIncentive)
	maxValue, err := wadDivUp(numerator, denominator)
	if err != nil {
		return nil, err
	}
	if maxValue.Cmp(debtValue) > 0 {
		maxValue = debtValue
	}
	return maxValue, nil
}

// Liquidate repays part of an undercollateralised account's debt and seizes
// collateral with the liquidation incentive. With keepDebt false the
// liquidator's own synthetic tokens are consumed and the protocol burn fee is
// taken out of the seizure; with keepDebt true the debt moves onto the
// liquidator's own position and the full seizure is paid fee-free. The
// repaid and seized amounts are returned.
func (e *Engine) Liquidate(liquidator, account, repayAsset common.Address, repayAmount *big.Int, seizeAsset common.Address, keepDebt bool) (*big.Int, *big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, nil, err
	}
	if err := nativecommon.Guard(e.pauses, actionLiquidate); err != nil {
		return nil, nil, err
	}
	if liquidator == account {
		return nil, nil, ErrSelfLiquidation
	}
	if repayAmount == nil || repayAmount.Sign() <= 0 {
		return nil, nil, ErrZeroRepay
	}
	params, err := e.loadParams()
	if err != nil {
		return nil, nil, err
	}
	repayRecord, err := e.loadSynthetic(repayAsset)
	if err != nil {
		return nil, nil, err
	}
	seizeRecord, err := e.loadCollateral(seizeAsset)
	if err != nil {
		return nil, nil, err
	}

	position, err := e.ensurePosition(account)
	if err != nil {
		return nil, nil, err
	}
	debt := position.debtAmount(repayAsset)
	if repayAmount.Cmp(debt) > 0 {
		return nil, nil, ErrRepayExceedsDebt
	}
	liquidatable, err := e.positionLiquidatable(position, params)
	if err != nil {
		return nil, nil, err
	}
	if !liquidatable {
		return nil, nil, ErrNotLiquidatable
	}

	repayValue, err := e.debtValue(repayRecord, repayAmount, false, true)
	if err != nil {
		return nil, nil, err
	}
	maxValue, err := e.maxLiquidatableValue(position, params)
	if err != nil {
		return nil, nil, err
	}
	if repayValue.Cmp(maxValue) > 0 {
		return nil, nil, ErrRepayExceedsMaxLiquidatable
	}

	seizePrice, err := e.price(seizeRecord.Oracle)
	if err != nil {
		return nil, nil, err
	}
	if seizePrice.Sign() == 0 {
		return nil, nil, ErrUnknownAsset
	}
	seizeValue := wadMul(repayValue, params.LiquidationIncentive)
	seizeWad, err := wadDiv(seizeValue, seizePrice)
	if err != nil {
		return nil, nil, err
	}
	seizeAmount := rescale(seizeWad, 18, seizeRecord.Decimals)
	if held := position.collateralAmount(seizeAsset); seizeAmount.Cmp(held) > 0 {
		seizeAmount = held
	}

	// Debit the liquidated account first, then pay the liquidator.
	updated := position.Clone()
	updated.debitDebt(repayAsset, repayAmount)
	seized := updated.debitCollateral(seizeAsset, seizeAmount)

	if keepDebt {
		liquidatorPos, err := e.ensurePosition(liquidator)
		if err != nil {
			return nil, nil, err
		}
		projected := liquidatorPos.Clone()
		projected.creditDebt(repayAsset, repayAmount)
		collateralValue, err := e.positionCollateralValue(projected)
		if err != nil {
			return nil, nil, err
		}
		minValue, err := e.positionMinCollateralValue(projected, params)
		if err != nil {
			return nil, nil, err
		}
		if collateralValue.Cmp(minValue) < 0 {
			return nil, nil, ErrInsufficientCollateral
		}
		if err := e.tokens.Transfer(seizeAsset, e.moduleAddress, liquidator, seized); err != nil {
			return nil, nil, err
		}
		if err := e.state.PutPosition(updated); err != nil {
			return nil, nil, err
		}
		if err := e.state.PutPosition(projected); err != nil {
			return nil, nil, err
		}
		e.emit(NewLiquidationEvent(account, liquidator, repayAsset, repayAmount, seizeAsset, seized, true))
		return new(big.Int).Set(repayAmount), seized, nil
	}

	if e.tokens.BalanceOf(repayAsset, liquidator).Cmp(repayAmount) < 0 {
		return nil, nil, ErrInsufficientBalance
	}

	// Burn fee on the raw repay value, taken out of the seized collateral.
	feeAmount := big.NewInt(0)
	feeValue := big.NewInt(0)
	if params.BurnFee.Sign() > 0 {
		rawRepayValue, err := e.debtValue(repayRecord, repayAmount, false, false)
		if err != nil {
			return nil, nil, err
		}
		feeValue = wadMul(rawRepayValue, params.BurnFee)
		feeWad, err := wadDivUp(feeValue, seizePrice)
		if err != nil {
			return nil, nil, err
		}
		feeAmount = rescale(feeWad, 18, seizeRecord.Decimals)
		if feeAmount.Cmp(seized) > 0 {
			feeAmount = new(big.Int).Set(seized)
		}
	}
	liquidatorShare := new(big.Int).Sub(seized, feeAmount)

	if err := e.tokens.Burn(repayAsset, liquidator, repayAmount); err != nil {
		return nil, nil, err
	}
	if feeAmount.Sign() > 0 {
		if err := e.tokens.Transfer(seizeAsset, e.moduleAddress, params.FeeRecipient, feeAmount); err != nil {
			return nil, nil, err
		}
	}
	if liquidatorShare.Sign() > 0 {
		if err := e.tokens.Transfer(seizeAsset, e.moduleAddress, liquidator, liquidatorShare); err != nil {
			return nil, nil, err
		}
	}
	if err := e.state.PutPosition(updated); err != nil {
		return nil, nil, err
	}
	if feeAmount.Sign() > 0 {
		e.emit(NewFeePaidEvent(account, seizeAsset, feeAmount, feeValue))
	}
	e.emit(NewLiquidationEvent(account, liquidator, repayAsset, repayAmount, seizeAsset, seized, false))
	return new(big.Int).Set(repayAmount), seized, nil
}
