package minter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	nativecommon "kresko/native/common"
)

// Mint creates amount of the synthetic asset against the account's
// collateral, crediting the account's debt book and minting tokens to it.
func (e *Engine) Mint(caller, account, asset common.Address, amount *big.Int) error {
	if err := e.ready(); err != nil {
		return err
	}
	if err := nativecommon.Guard(e.pauses, actionMint); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	if !e.authorised(caller, account) {
		return ErrUnauthorized
	}
	record, err := e.loadSynthetic(asset)
	if err != nil {
		return err
	}
	if !record.Mintable {
		return ErrNotMintable
	}
	params, err := e.loadParams()
	if err != nil {
		return err
	}

	position, err := e.ensurePosition(account)
	if err != nil {
		return err
	}

	// The resulting position must clear the minimum debt value so dust
	// positions cannot be opened.
	resultingDebt := new(big.Int).Add(position.debtAmount(asset), amount)
	resultingValue, err := e.debtValue(record, resultingDebt, false, false)
	if err != nil {
		return err
	}
	if resultingValue.Cmp(params.MinDebtValue) < 0 {
		return ErrBelowMinDebtValue
	}

	if record.MarketCapUSD != nil && record.MarketCapUSD.Sign() > 0 {
		supply := new(big.Int).Add(e.tokens.TotalSupply(asset), amount)
		supplyValue, err := e.debtValue(record, supply, false, false)
		if err != nil {
			return err
		}
		if supplyValue.Cmp(record.MarketCapUSD) > 0 {
			return ErrMarketCapExceeded
		}
	}

	projected := position.Clone()
	projected.creditDebt(asset, amount)
	collateralValue, err := e.positionCollateralValue(projected)
	if err != nil {
		return err
	}
	minValue, err := e.positionMinCollateralValue(projected, params)
	if err != nil {
		return err
	}
	if collateralValue.Cmp(minValue) < 0 {
		return ErrInsufficientCollateral
	}

	if err := e.tokens.Mint(asset, account, amount); err != nil {
		return err
	}
	if err := e.state.PutPosition(projected); err != nil {
		return err
	}
	e.emit(NewDebtMintedEvent(account, asset, amount))
	return nil
}

// Burn retires debt by destroying synthetic tokens held by the account. The
// request must not exceed the outstanding debt; a request that would leave a
// residual position below the minimum debt value closes the position
// entirely. The protocol burn fee is charged in collateral, spread across the
// account's deposits most-recently-added first. The amount actually burned is
// returned.
func (e *Engine) Burn(caller, account, asset common.Address, amount *big.Int) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if err := nativecommon.Guard(e.pauses, actionBurn); err != nil {
		return nil, err
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	if !e.authorised(caller, account) {
		return nil, ErrUnauthorized
	}
	record, err := e.loadSynthetic(asset)
	if err != nil {
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
	debt := position.debtAmount(asset)
	if amount.Cmp(debt) > 0 {
		return nil, ErrAmountExceedsDebt
	}

	burnAmount := new(big.Int).Set(amount)
	residual := new(big.Int).Sub(debt, amount)
	if residual.Sign() > 0 {
		residualValue, err := e.debtValue(record, residual, false, false)
		if err != nil {
			return nil, err
		}
		if residualValue.Cmp(params.MinDebtValue) < 0 {
			burnAmount = debt
		}
	}

	if e.tokens.BalanceOf(asset, account).Cmp(burnAmount) < 0 {
		return nil, ErrInsufficientBalance
	}

	updated := position.Clone()
	var charges []feeCharge
	if params.BurnFee.Sign() > 0 {
		burnValue, err := e.debtValue(record, burnAmount, false, false)
		if err != nil {
			return nil, err
		}
		feeValue := wadMul(burnValue, params.BurnFee)
		charges, err = e.collectFee(updated, feeValue)
		if err != nil {
			return nil, err
		}
	}

	if err := e.tokens.Burn(asset, account, burnAmount); err != nil {
		return nil, err
	}
	for _, charge := range charges {
		if err := e.tokens.Transfer(charge.Asset, e.moduleAddress, params.FeeRecipient, charge.Amount); err != nil {
			return nil, err
		}
	}
	updated.debitDebt(asset, burnAmount)
	if err := e.state.PutPosition(updated); err != nil {
		return nil, err
	}
	for _, charge := range charges {
		e.emit(NewFeePaidEvent(account, charge.Asset, charge.Amount, charge.Value))
	}
	e.emit(NewDebtBurnedEvent(account, asset, burnAmount))
	return burnAmount, nil
}
