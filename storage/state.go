package storage

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"kresko/native/minter"
)

// MinterState persists the minter module's records in a key-value database.
// Records are stored as RLP with amounts rendered as decimal strings so the
// encoding stays stable across big.Int internals.
type MinterState struct {
	db Database
}

// NewMinterState wraps a database as minter state.
func NewMinterState(db Database) *MinterState {
	return &MinterState{db: db}
}

const (
	prefixCollateral = "minter/collateral/"
	prefixSynthetic  = "minter/synthetic/"
	prefixSymbol     = "minter/symbol/"
	prefixPosition   = "minter/position/"
	prefixWrap       = "minter/wrap/"
	keyParams        = "minter/params"
	keyCollateralIdx = "minter/collateral-index"
	keySyntheticIdx  = "minter/synthetic-index"
)

type storedCollateralAsset struct {
	Address  common.Address
	Factor   string
	Oracle   common.Address
	Decimals uint8
	Rebasing bool
	Exists   bool
}

type storedSyntheticAsset struct {
	Address      common.Address
	Symbol       string
	KFactor      string
	Oracle       common.Address
	Decimals     uint8
	Mintable     bool
	MarketCapUSD string
	Exists       bool
}

type storedEntry struct {
	Asset  common.Address
	Amount string
}

type storedPosition struct {
	Account    common.Address
	Collateral []storedEntry
	Debt       []storedEntry
}

type storedWrapState struct {
	Asset          common.Address
	WrappedSupply  string
	UnderlyingHeld string
}

type storedParams struct {
	MinCollateralRatio   string
	LiquidationIncentive string
	BurnFee              string
	MinDebtValue         string
	FeeRecipient         common.Address
}

func formatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("storage: invalid amount %q", s)
	}
	return v, nil
}

func (s *MinterState) get(key string, out interface{}) (bool, error) {
	raw, err := s.db.Get([]byte(key))
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := rlp.DecodeBytes(raw, out); err != nil {
		return false, fmt.Errorf("storage: decode %s: %w", key, err)
	}
	return true, nil
}

func (s *MinterState) put(key string, record interface{}) error {
	encoded, err := rlp.EncodeToBytes(record)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	return s.db.Put([]byte(key), encoded)
}

func (s *MinterState) appendIndex(key string, addr common.Address) error {
	var index []common.Address
	if _, err := s.get(key, &index); err != nil {
		return err
	}
	for _, existing := range index {
		if existing == addr {
			return nil
		}
	}
	index = append(index, addr)
	return s.put(key, index)
}

// GetCollateralAsset implements minter.State.
func (s *MinterState) GetCollateralAsset(asset common.Address) (*minter.CollateralAsset, error) {
	var stored storedCollateralAsset
	found, err := s.get(prefixCollateral+asset.Hex(), &stored)
	if err != nil || !found {
		return nil, err
	}
	factor, err := parseAmount(stored.Factor)
	if err != nil {
		return nil, err
	}
	return &minter.CollateralAsset{
		Address:  stored.Address,
		Factor:   factor,
		Oracle:   stored.Oracle,
		Decimals: stored.Decimals,
		Rebasing: stored.Rebasing,
		Exists:   stored.Exists,
	}, nil
}

// PutCollateralAsset implements minter.State.
func (s *MinterState) PutCollateralAsset(asset *minter.CollateralAsset) error {
	if asset == nil {
		return fmt.Errorf("storage: nil collateral asset")
	}
	record := storedCollateralAsset{
		Address:  asset.Address,
		Factor:   formatAmount(asset.Factor),
		Oracle:   asset.Oracle,
		Decimals: asset.Decimals,
		Rebasing: asset.Rebasing,
		Exists:   asset.Exists,
	}
	if err := s.put(prefixCollateral+asset.Address.Hex(), record); err != nil {
		return err
	}
	return s.appendIndex(keyCollateralIdx, asset.Address)
}

// CollateralAssets implements minter.State.
func (s *MinterState) CollateralAssets() ([]common.Address, error) {
	var index []common.Address
	if _, err := s.get(keyCollateralIdx, &index); err != nil {
		return nil, err
	}
	return index, nil
}

// GetSyntheticAsset implements minter.State.
func (s *MinterState) GetSyntheticAsset(asset common.Address) (*minter.SyntheticAsset, error) {
	var stored storedSyntheticAsset
	found, err := s.get(prefixSynthetic+asset.Hex(), &stored)
	if err != nil || !found {
		return nil, err
	}
	kFactor, err := parseAmount(stored.KFactor)
	if err != nil {
		return nil, err
	}
	marketCap, err := parseAmount(stored.MarketCapUSD)
	if err != nil {
		return nil, err
	}
	return &minter.SyntheticAsset{
		Address:      stored.Address,
		Symbol:       stored.Symbol,
		KFactor:      kFactor,
		Oracle:       stored.Oracle,
		Decimals:     stored.Decimals,
		Mintable:     stored.Mintable,
		MarketCapUSD: marketCap,
		Exists:       stored.Exists,
	}, nil
}

// PutSyntheticAsset implements minter.State.
func (s *MinterState) PutSyntheticAsset(asset *minter.SyntheticAsset) error {
	if asset == nil {
		return fmt.Errorf("storage: nil synthetic asset")
	}
	record := storedSyntheticAsset{
		Address:      asset.Address,
		Symbol:       asset.Symbol,
		KFactor:      formatAmount(asset.KFactor),
		Oracle:       asset.Oracle,
		Decimals:     asset.Decimals,
		Mintable:     asset.Mintable,
		MarketCapUSD: formatAmount(asset.MarketCapUSD),
		Exists:       asset.Exists,
	}
	if err := s.put(prefixSynthetic+asset.Address.Hex(), record); err != nil {
		return err
	}
	return s.appendIndex(keySyntheticIdx, asset.Address)
}

// SyntheticAssets implements minter.State.
func (s *MinterState) SyntheticAssets() ([]common.Address, error) {
	var index []common.Address
	if _, err := s.get(keySyntheticIdx, &index); err != nil {
		return nil, err
	}
	return index, nil
}

// SymbolOwner implements minter.State.
func (s *MinterState) SymbolOwner(symbol string) (common.Address, bool, error) {
	var owner common.Address
	found, err := s.get(prefixSymbol+symbol, &owner)
	if err != nil {
		return common.Address{}, false, err
	}
	return owner, found, nil
}

// PutSymbol implements minter.State.
func (s *MinterState) PutSymbol(symbol string, asset common.Address) error {
	return s.put(prefixSymbol+symbol, asset)
}

// GetPosition implements minter.State.
func (s *MinterState) GetPosition(account common.Address) (*minter.Position, error) {
	var stored storedPosition
	found, err := s.get(prefixPosition+account.Hex(), &stored)
	if err != nil || !found {
		return nil, err
	}
	position := &minter.Position{Account: stored.Account}
	for _, entry := range stored.Collateral {
		amount, err := parseAmount(entry.Amount)
		if err != nil {
			return nil, err
		}
		position.Collateral = append(position.Collateral, minter.CollateralEntry{Asset: entry.Asset, Amount: amount})
	}
	for _, entry := range stored.Debt {
		amount, err := parseAmount(entry.Amount)
		if err != nil {
			return nil, err
		}
		position.Debt = append(position.Debt, minter.DebtEntry{Asset: entry.Asset, Amount: amount})
	}
	return position, nil
}

// PutPosition implements minter.State.
func (s *MinterState) PutPosition(position *minter.Position) error {
	if position == nil {
		return fmt.Errorf("storage: nil position")
	}
	stored := storedPosition{Account: position.Account}
	for _, entry := range position.Collateral {
		stored.Collateral = append(stored.Collateral, storedEntry{Asset: entry.Asset, Amount: formatAmount(entry.Amount)})
	}
	for _, entry := range position.Debt {
		stored.Debt = append(stored.Debt, storedEntry{Asset: entry.Asset, Amount: formatAmount(entry.Amount)})
	}
	return s.put(prefixPosition+position.Account.Hex(), stored)
}

// GetWrapState implements minter.State.
func (s *MinterState) GetWrapState(asset common.Address) (*minter.WrapState, error) {
	var stored storedWrapState
	found, err := s.get(prefixWrap+asset.Hex(), &stored)
	if err != nil || !found {
		return nil, err
	}
	wrapped, err := parseAmount(stored.WrappedSupply)
	if err != nil {
		return nil, err
	}
	underlying, err := parseAmount(stored.UnderlyingHeld)
	if err != nil {
		return nil, err
	}
	return &minter.WrapState{Asset: stored.Asset, WrappedSupply: wrapped, UnderlyingHeld: underlying}, nil
}

// PutWrapState implements minter.State.
func (s *MinterState) PutWrapState(state *minter.WrapState) error {
	if state == nil {
		return fmt.Errorf("storage: nil wrap state")
	}
	record := storedWrapState{
		Asset:          state.Asset,
		WrappedSupply:  formatAmount(state.WrappedSupply),
		UnderlyingHeld: formatAmount(state.UnderlyingHeld),
	}
	return s.put(prefixWrap+state.Asset.Hex(), record)
}

// GetParams implements minter.State.
func (s *MinterState) GetParams() (*minter.ProtocolParams, error) {
	var stored storedParams
	found, err := s.get(keyParams, &stored)
	if err != nil || !found {
		return nil, err
	}
	ratio, err := parseAmount(stored.MinCollateralRatio)
	if err != nil {
		return nil, err
	}
	incentive, err := parseAmount(stored.LiquidationIncentive)
	if err != nil {
		return nil, err
	}
	fee, err := parseAmount(stored.BurnFee)
	if err != nil {
		return nil, err
	}
	minDebt, err := parseAmount(stored.MinDebtValue)
	if err != nil {
		return nil, err
	}
	return &minter.ProtocolParams{
		MinCollateralRatio:   ratio,
		LiquidationIncentive: incentive,
		BurnFee:              fee,
		MinDebtValue:         minDebt,
		FeeRecipient:         stored.FeeRecipient,
	}, nil
}

// PutParams implements minter.State.
func (s *MinterState) PutParams(params *minter.ProtocolParams) error {
	if params == nil {
		return fmt.Errorf("storage: nil params")
	}
	record := storedParams{
		MinCollateralRatio:   formatAmount(params.MinCollateralRatio),
		LiquidationIncentive: formatAmount(params.LiquidationIncentive),
		BurnFee:              formatAmount(params.BurnFee),
		MinDebtValue:         formatAmount(params.MinDebtValue),
		FeeRecipient:         params.FeeRecipient,
	}
	return s.put(keyParams, record)
}
