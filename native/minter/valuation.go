package minter

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// USD valuation of token amounts. Collateral is valued rounding down and
// discounted by its factor; required collateral is valued rounding up and
// inflated by the debt k-factor so the protocol always errs conservatively.
// A zero oracle price values the asset at zero instead of failing; see the
// design notes on the fail-open trade-off.

func (e *Engine) price(feed common.Address) (*big.Int, error) {
	quote, err := e.oracle.LatestPrice(feed)
	if err != nil {
		return nil, fmt.Errorf("minter: oracle read: %w", err)
	}
	if quote.Value == nil {
		return big.NewInt(0), nil
	}
	return quote.Value, nil
}

// collateralValue prices amount of the collateral asset, applying the
// collateral factor. roundUp ceilings both multiplications.
func (e *Engine) collateralValue(record *CollateralAsset, amount *big.Int, roundUp bool) (*big.Int, error) {
	price, err := e.price(record.Oracle)
	if err != nil {
		return nil, err
	}
	amountWad := rescale(amount, record.Decimals, 18)
	if roundUp {
		return wadMulUp(wadMulUp(price, amountWad), record.Factor), nil
	}
	return wadMul(wadMul(price, amountWad), record.Factor), nil
}

// debtValue prices amount of the synthetic asset. applyK inflates the value
// by the asset's k-factor; raw price value is used for min-debt and fee
// calculations.
func (e *Engine) debtValue(record *SyntheticAsset, amount *big.Int, roundUp, applyK bool) (*big.Int, error) {
	price, err := e.price(record.Oracle)
	if err != nil {
		return nil, err
	}
	amountWad := rescale(amount, record.Decimals, 18)
	var value *big.Int
	if roundUp {
		value = wadMulUp(price, amountWad)
		if applyK {
			value = wadMulUp(value, record.KFactor)
		}
	} else {
		value = wadMul(price, amountWad)
		if applyK {
			value = wadMul(value, record.KFactor)
		}
	}
	return value, nil
}

func (e *Engine) positionCollateralValue(position *Position) (*big.Int, error) {
	total := big.NewInt(0)
	if position == nil {
		return total, nil
	}
	for i := range position.Collateral {
		record, err := e.state.GetCollateralAsset(position.Collateral[i].Asset)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, ErrUnknownAsset
		}
		value, err := e.collateralValue(record, position.Collateral[i].Amount, false)
		if err != nil {
			return nil, err
		}
		total.Add(total, value)
	}
	return total, nil
}

func (e *Engine) positionMinCollateralValue(position *Position, params *ProtocolParams) (*big.Int, error) {
	total := big.NewInt(0)
	if position == nil {
		return total, nil
	}
	for i := range position.Debt {
		record, err := e.state.GetSyntheticAsset(position.Debt[i].Asset)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, ErrUnknownAsset
		}
		value, err := e.debtValue(record, position.Debt[i].Amount, true, true)
		if err != nil {
			return nil, err
		}
		total.Add(total, wadMulUp(value, params.MinCollateralRatio))
	}
	return total, nil
}

func (e *Engine) positionDebtValue(position *Position) (*big.Int, error) {
	total := big.NewInt(0)
	if position == nil {
		return total, nil
	}
	for i := range position.Debt {
		record, err := e.state.GetSyntheticAsset(position.Debt[i].Asset)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, ErrUnknownAsset
		}
		value, err := e.debtValue(record, position.Debt[i].Amount, false, true)
		if err != nil {
			return nil, err
		}
		total.Add(total, value)
	}
	return total, nil
}

// AccountCollateralValue returns the USD value of the account's deposited
// collateral, factor-discounted and rounded down.
func (e *Engine) AccountCollateralValue(account common.Address) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	position, err := e.ensurePosition(account)
	if err != nil {
		return nil, err
	}
	return e.positionCollateralValue(position)
}

// AccountMinCollateralValue returns the USD collateral value the account must
// hold for its outstanding debt, rounded up.
func (e *Engine) AccountMinCollateralValue(account common.Address) (*big.Int, error) {
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
	return e.positionMinCollateralValue(position, params)
}

// AccountDebtValue returns the k-factor inflated USD value of the account's
// debt, rounded down. Liquidation sizing uses this figure rather than the
// ratio-inflated minimum.
func (e *Engine) AccountDebtValue(account common.Address) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	position, err := e.ensurePosition(account)
	if err != nil {
		return nil, err
	}
	return e.positionDebtValue(position)
}
