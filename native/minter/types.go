package minter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CollateralAsset describes a whitelisted collateral token. Factor discounts
// the asset's market value when computing borrowing power and must not exceed
// 1e18. Assets are never deleted, only flagged via Exists.
type CollateralAsset struct {
	Address  common.Address
	Factor   *big.Int
	Oracle   common.Address
	Decimals uint8
	Rebasing bool
	Exists   bool
}

// SyntheticAsset describes a protocol-minted synthetic token. KFactor
// inflates the asset's debt value and must be at least 1e18. MarketCapUSD of
// zero means no supply ceiling.
type SyntheticAsset struct {
	Address      common.Address
	Symbol       string
	KFactor      *big.Int
	Oracle       common.Address
	Decimals     uint8
	Mintable     bool
	MarketCapUSD *big.Int
	Exists       bool
}

// CollateralEntry pairs an asset with the account's deposited amount. A
// position's collateral slice doubles as the active list: entries appear in
// first-deposit order and only while the amount is positive.
type CollateralEntry struct {
	Asset  common.Address
	Amount *big.Int
}

// DebtEntry pairs a synthetic asset with the account's minted debt, with the
// same active-list semantics as CollateralEntry.
type DebtEntry struct {
	Asset  common.Address
	Amount *big.Int
}

// Position maintains the collateral and debt books for a single account.
type Position struct {
	Account    common.Address
	Collateral []CollateralEntry
	Debt       []DebtEntry
}

// WrapState tracks the conversion pool for a rebasing collateral asset. The
// protocol holds UnderlyingHeld of the rebasing token against WrappedSupply
// internal accounting units.
type WrapState struct {
	Asset          common.Address
	WrappedSupply  *big.Int
	UnderlyingHeld *big.Int
}

// Clone returns a deep copy of the collateral asset record.
func (a *CollateralAsset) Clone() *CollateralAsset {
	if a == nil {
		return nil
	}
	clone := *a
	if a.Factor != nil {
		clone.Factor = new(big.Int).Set(a.Factor)
	}
	return &clone
}

// Clone returns a deep copy of the synthetic asset record.
func (a *SyntheticAsset) Clone() *SyntheticAsset {
	if a == nil {
		return nil
	}
	clone := *a
	if a.KFactor != nil {
		clone.KFactor = new(big.Int).Set(a.KFactor)
	}
	if a.MarketCapUSD != nil {
		clone.MarketCapUSD = new(big.Int).Set(a.MarketCapUSD)
	}
	return &clone
}

// Clone returns a deep copy of the position.
func (p *Position) Clone() *Position {
	if p == nil {
		return nil
	}
	clone := &Position{Account: p.Account}
	if len(p.Collateral) > 0 {
		clone.Collateral = make([]CollateralEntry, len(p.Collateral))
		for i, entry := range p.Collateral {
			clone.Collateral[i] = CollateralEntry{Asset: entry.Asset}
			if entry.Amount != nil {
				clone.Collateral[i].Amount = new(big.Int).Set(entry.Amount)
			}
		}
	}
	if len(p.Debt) > 0 {
		clone.Debt = make([]DebtEntry, len(p.Debt))
		for i, entry := range p.Debt {
			clone.Debt[i] = DebtEntry{Asset: entry.Asset}
			if entry.Amount != nil {
				clone.Debt[i].Amount = new(big.Int).Set(entry.Amount)
			}
		}
	}
	return clone
}

// Clone returns a deep copy of the wrap state.
func (w *WrapState) Clone() *WrapState {
	if w == nil {
		return nil
	}
	clone := &WrapState{Asset: w.Asset}
	if w.WrappedSupply != nil {
		clone.WrappedSupply = new(big.Int).Set(w.WrappedSupply)
	}
	if w.UnderlyingHeld != nil {
		clone.UnderlyingHeld = new(big.Int).Set(w.UnderlyingHeld)
	}
	return clone
}

// EnsureDefaults populates nil big.Int fields after decoding.
func (w *WrapState) EnsureDefaults() {
	if w == nil {
		return
	}
	if w.WrappedSupply == nil {
		w.WrappedSupply = big.NewInt(0)
	}
	if w.UnderlyingHeld == nil {
		w.UnderlyingHeld = big.NewInt(0)
	}
}
