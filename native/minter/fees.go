package minter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// feeCharge records a collateral seizure made to cover a protocol fee.
// Amount is in the asset's native decimals, Value the USD covered.
type feeCharge struct {
	Asset  common.Address
	Amount *big.Int
	Value  *big.Int
}

// collectFee debits collateral worth feeValue USD from the position, walking
// the active list most-recently-added first and spanning assets when one is
// insufficient. Unpriced assets are skipped. The position is mutated in
// place; transferring the seized amounts to the fee recipient is the
// caller's job.
func (e *Engine) collectFee(position *Position, feeValue *big.Int) ([]feeCharge, error) {
	if feeValue == nil || feeValue.Sign() <= 0 {
		return nil, nil
	}
	remaining := new(big.Int).Set(feeValue)
	var charges []feeCharge
	for i := len(position.Collateral) - 1; i >= 0 && remaining.Sign() > 0; i-- {
		entry := position.Collateral[i]
		record, err := e.state.GetCollateralAsset(entry.Asset)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, ErrUnknownAsset
		}
		price, err := e.price(record.Oracle)
		if err != nil {
			return nil, err
		}
		if price.Sign() == 0 {
			continue
		}
		// Fee conversion uses the raw oracle price; the collateral factor
		// only discounts borrowing power, not what the asset is worth.
		entryValue := wadMul(price, rescale(entry.Amount, record.Decimals, 18))
		var seize, covered *big.Int
		if entryValue.Cmp(remaining) <= 0 {
			seize = new(big.Int).Set(entry.Amount)
			covered = entryValue
		} else {
			valueWad, err := wadDivUp(remaining, price)
			if err != nil {
				return nil, err
			}
			seize = rescale(valueWad, 18, record.Decimals)
			if seize.Cmp(entry.Amount) > 0 {
				seize = new(big.Int).Set(entry.Amount)
			}
			covered = new(big.Int).Set(remaining)
		}
		if seize.Sign() == 0 {
			continue
		}
		position.debitCollateral(entry.Asset, seize)
		charges = append(charges, feeCharge{Asset: entry.Asset, Amount: seize, Value: covered})
		remaining.Sub(remaining, covered)
	}
	return charges, nil
}
