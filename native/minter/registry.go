package minter

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Asset registry operations. All mutations are owner-gated and emit a change
// event. Assets are never deleted; the Exists flag is the only tombstone.

// RegisterCollateral whitelists a collateral asset.
func (e *Engine) RegisterCollateral(caller common.Address, asset CollateralAsset) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrUnauthorized
	}
	if asset.Address == (common.Address{}) || asset.Oracle == (common.Address{}) {
		return ErrInvalidAddress
	}
	if asset.Factor == nil || asset.Factor.Sign() < 0 || asset.Factor.Cmp(scale) > 0 {
		return ErrInvalidRiskFactor
	}
	existing, err := e.state.GetCollateralAsset(asset.Address)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyExists
	}
	asset.Exists = true
	if err := e.state.PutCollateralAsset(asset.Clone()); err != nil {
		return err
	}
	e.emit(NewCollateralRegisteredEvent(&asset))
	return nil
}

// RegisterSynthetic whitelists a protocol-minted synthetic asset. The token's
// mint/burn operator must already be the protocol module address.
func (e *Engine) RegisterSynthetic(caller common.Address, asset SyntheticAsset) error {
	if e == nil || e.state == nil || e.tokens == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrUnauthorized
	}
	if asset.Address == (common.Address{}) || asset.Oracle == (common.Address{}) {
		return ErrInvalidAddress
	}
	asset.Symbol = strings.TrimSpace(asset.Symbol)
	if asset.Symbol == "" {
		return ErrInvalidParameter
	}
	if asset.KFactor == nil || asset.KFactor.Cmp(scale) < 0 {
		return ErrInvalidRiskFactor
	}
	existing, err := e.state.GetSyntheticAsset(asset.Address)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyExists
	}
	if _, taken, err := e.state.SymbolOwner(asset.Symbol); err != nil {
		return err
	} else if taken {
		return ErrDuplicateSymbol
	}
	if e.tokens.Operator(asset.Address) != e.moduleAddress {
		return ErrOperatorMismatch
	}
	asset.Exists = true
	if asset.MarketCapUSD == nil {
		asset.MarketCapUSD = big.NewInt(0)
	}
	if err := e.state.PutSyntheticAsset(asset.Clone()); err != nil {
		return err
	}
	if err := e.state.PutSymbol(asset.Symbol, asset.Address); err != nil {
		return err
	}
	e.emit(NewSyntheticRegisteredEvent(&asset))
	return nil
}

func (e *Engine) loadCollateral(asset common.Address) (*CollateralAsset, error) {
	record, err := e.state.GetCollateralAsset(asset)
	if err != nil {
		return nil, err
	}
	if record == nil || !record.Exists {
		return nil, ErrUnknownAsset
	}
	return record, nil
}

func (e *Engine) loadSynthetic(asset common.Address) (*SyntheticAsset, error) {
	record, err := e.state.GetSyntheticAsset(asset)
	if err != nil {
		return nil, err
	}
	if record == nil || !record.Exists {
		return nil, ErrUnknownAsset
	}
	return record, nil
}

// UpdateCollateralFactor replaces a collateral asset's risk factor.
func (e *Engine) UpdateCollateralFactor(caller, asset common.Address, factor *big.Int) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrUnauthorized
	}
	if factor == nil || factor.Sign() < 0 || factor.Cmp(scale) > 0 {
		return ErrInvalidRiskFactor
	}
	record, err := e.loadCollateral(asset)
	if err != nil {
		return err
	}
	record.Factor = new(big.Int).Set(factor)
	if err := e.state.PutCollateralAsset(record); err != nil {
		return err
	}
	e.emit(NewRiskFactorUpdatedEvent(asset, factor))
	return nil
}

// UpdateKFactor replaces a synthetic asset's k-factor.
func (e *Engine) UpdateKFactor(caller, asset common.Address, kFactor *big.Int) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrUnauthorized
	}
	if kFactor == nil || kFactor.Cmp(scale) < 0 {
		return ErrInvalidRiskFactor
	}
	record, err := e.loadSynthetic(asset)
	if err != nil {
		return err
	}
	record.KFactor = new(big.Int).Set(kFactor)
	if err := e.state.PutSyntheticAsset(record); err != nil {
		return err
	}
	e.emit(NewRiskFactorUpdatedEvent(asset, kFactor))
	return nil
}

// UpdateCollateralOracle repoints a collateral asset's price feed.
func (e *Engine) UpdateCollateralOracle(caller, asset, oracle common.Address) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrUnauthorized
	}
	if oracle == (common.Address{}) {
		return ErrInvalidAddress
	}
	record, err := e.loadCollateral(asset)
	if err != nil {
		return err
	}
	record.Oracle = oracle
	if err := e.state.PutCollateralAsset(record); err != nil {
		return err
	}
	e.emit(NewOracleUpdatedEvent(asset, oracle))
	return nil
}

// UpdateSyntheticOracle repoints a synthetic asset's price feed.
func (e *Engine) UpdateSyntheticOracle(caller, asset, oracle common.Address) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrUnauthorized
	}
	if oracle == (common.Address{}) {
		return ErrInvalidAddress
	}
	record, err := e.loadSynthetic(asset)
	if err != nil {
		return err
	}
	record.Oracle = oracle
	if err := e.state.PutSyntheticAsset(record); err != nil {
		return err
	}
	e.emit(NewOracleUpdatedEvent(asset, oracle))
	return nil
}

// UpdateMintable toggles new minting for a synthetic asset.
func (e *Engine) UpdateMintable(caller, asset common.Address, mintable bool) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrUnauthorized
	}
	record, err := e.loadSynthetic(asset)
	if err != nil {
		return err
	}
	record.Mintable = mintable
	if err := e.state.PutSyntheticAsset(record); err != nil {
		return err
	}
	e.emit(NewMintableUpdatedEvent(asset, mintable))
	return nil
}

// UpdateMarketCap replaces a synthetic asset's USD supply ceiling. Zero
// removes the ceiling.
func (e *Engine) UpdateMarketCap(caller, asset common.Address, capUSD *big.Int) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrUnauthorized
	}
	if capUSD == nil || capUSD.Sign() < 0 {
		return ErrInvalidParameter
	}
	record, err := e.loadSynthetic(asset)
	if err != nil {
		return err
	}
	record.MarketCapUSD = new(big.Int).Set(capUSD)
	if err := e.state.PutSyntheticAsset(record); err != nil {
		return err
	}
	e.emit(NewMarketCapUpdatedEvent(asset, capUSD))
	return nil
}
