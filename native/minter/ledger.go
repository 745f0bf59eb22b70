package minter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Active-list maintenance for account positions. An asset appears in the
// collateral or debt slice iff the account's amount is positive; removal uses
// swap-with-last-and-pop, located by direct search rather than a
// caller-supplied index.

func (p *Position) collateralAmount(asset common.Address) *big.Int {
	if p == nil {
		return big.NewInt(0)
	}
	for i := range p.Collateral {
		if p.Collateral[i].Asset == asset {
			return new(big.Int).Set(p.Collateral[i].Amount)
		}
	}
	return big.NewInt(0)
}

func (p *Position) debtAmount(asset common.Address) *big.Int {
	if p == nil {
		return big.NewInt(0)
	}
	for i := range p.Debt {
		if p.Debt[i].Asset == asset {
			return new(big.Int).Set(p.Debt[i].Amount)
		}
	}
	return big.NewInt(0)
}

func (p *Position) creditCollateral(asset common.Address, amount *big.Int) {
	if p == nil || amount == nil || amount.Sign() <= 0 {
		return
	}
	for i := range p.Collateral {
		if p.Collateral[i].Asset == asset {
			p.Collateral[i].Amount = new(big.Int).Add(p.Collateral[i].Amount, amount)
			return
		}
	}
	p.Collateral = append(p.Collateral, CollateralEntry{Asset: asset, Amount: new(big.Int).Set(amount)})
}

// debitCollateral removes up to amount from the asset's entry and reports the
// amount actually debited. The entry is dropped from the active list when the
// balance reaches exactly zero.
func (p *Position) debitCollateral(asset common.Address, amount *big.Int) *big.Int {
	if p == nil || amount == nil || amount.Sign() <= 0 {
		return big.NewInt(0)
	}
	for i := range p.Collateral {
		if p.Collateral[i].Asset != asset {
			continue
		}
		debited := new(big.Int).Set(amount)
		if debited.Cmp(p.Collateral[i].Amount) > 0 {
			debited = new(big.Int).Set(p.Collateral[i].Amount)
		}
		remaining := new(big.Int).Sub(p.Collateral[i].Amount, debited)
		if remaining.Sign() == 0 {
			last := len(p.Collateral) - 1
			p.Collateral[i] = p.Collateral[last]
			p.Collateral = p.Collateral[:last]
		} else {
			p.Collateral[i].Amount = remaining
		}
		return debited
	}
	return big.NewInt(0)
}

func (p *Position) creditDebt(asset common.Address, amount *big.Int) {
	if p == nil || amount == nil || amount.Sign() <= 0 {
		return
	}
	for i := range p.Debt {
		if p.Debt[i].Asset == asset {
			p.Debt[i].Amount = new(big.Int).Add(p.Debt[i].Amount, amount)
			return
		}
	}
	p.Debt = append(p.Debt, DebtEntry{Asset: asset, Amount: new(big.Int).Set(amount)})
}

func (p *Position) debitDebt(asset common.Address, amount *big.Int) *big.Int {
	if p == nil || amount == nil || amount.Sign() <= 0 {
		return big.NewInt(0)
	}
	for i := range p.Debt {
		if p.Debt[i].Asset != asset {
			continue
		}
		debited := new(big.Int).Set(amount)
		if debited.Cmp(p.Debt[i].Amount) > 0 {
			debited = new(big.Int).Set(p.Debt[i].Amount)
		}
		remaining := new(big.Int).Sub(p.Debt[i].Amount, debited)
		if remaining.Sign() == 0 {
			last := len(p.Debt) - 1
			p.Debt[i] = p.Debt[last]
			p.Debt = p.Debt[:last]
		} else {
			p.Debt[i].Amount = remaining
		}
		return debited
	}
	return big.NewInt(0)
}

func (p *Position) empty() bool {
	return p == nil || (len(p.Collateral) == 0 && len(p.Debt) == 0)
}
