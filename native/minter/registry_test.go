package minter

import (
	"errors"
	"math/big"
	"testing"
)

func TestRegisterCollateralValidation(t *testing.T) {
	env := newTestEnv(t)
	asset := CollateralAsset{
		Address:  addr(0x31),
		Factor:   wad(1),
		Oracle:   addr(0x32),
		Decimals: 18,
	}

	if err := env.engine.RegisterCollateral(bob, asset); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-owner register: %v", err)
	}

	zeroAddr := asset
	zeroAddr.Address = addr(0)
	if err := env.engine.RegisterCollateral(testOwner, zeroAddr); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("zero address: %v", err)
	}

	badFactor := asset
	badFactor.Factor = mustBigInt("1000000000000000001")
	if err := env.engine.RegisterCollateral(testOwner, badFactor); !errors.Is(err, ErrInvalidRiskFactor) {
		t.Fatalf("factor above one: %v", err)
	}
	badFactor.Factor = big.NewInt(-1)
	if err := env.engine.RegisterCollateral(testOwner, badFactor); !errors.Is(err, ErrInvalidRiskFactor) {
		t.Fatalf("negative factor: %v", err)
	}

	if err := env.engine.RegisterCollateral(testOwner, asset); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := env.engine.RegisterCollateral(testOwner, asset); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate register: %v", err)
	}

	record, err := env.state.GetCollateralAsset(asset.Address)
	if err != nil {
		t.Fatalf("get collateral: %v", err)
	}
	if record == nil || !record.Exists {
		t.Fatalf("record not persisted: %+v", record)
	}
	if len(env.capture.ByType(EventTypeCollateralRegistered)) != 4 { // three fixture assets plus this one
		t.Fatalf("missing registration event")
	}
}

func TestRegisterSyntheticValidation(t *testing.T) {
	env := newTestEnv(t)
	token := addr(0x41)
	asset := SyntheticAsset{
		Address:  token,
		Symbol:   "krGLD",
		KFactor:  wad(1),
		Oracle:   addr(0x42),
		Decimals: 18,
		Mintable: true,
	}

	// Operator must already point at the module address.
	if err := env.engine.RegisterSynthetic(testOwner, asset); !errors.Is(err, ErrOperatorMismatch) {
		t.Fatalf("operator mismatch: %v", err)
	}
	env.tokens.SetOperator(token, testModule)

	noSymbol := asset
	noSymbol.Symbol = "   "
	if err := env.engine.RegisterSynthetic(testOwner, noSymbol); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("blank symbol: %v", err)
	}

	lowK := asset
	lowK.KFactor = mustBigInt("999999999999999999")
	if err := env.engine.RegisterSynthetic(testOwner, lowK); !errors.Is(err, ErrInvalidRiskFactor) {
		t.Fatalf("k-factor below one: %v", err)
	}

	taken := asset
	taken.Symbol = "krOIL"
	if err := env.engine.RegisterSynthetic(testOwner, taken); !errors.Is(err, ErrDuplicateSymbol) {
		t.Fatalf("duplicate symbol: %v", err)
	}

	if err := env.engine.RegisterSynthetic(testOwner, asset); err != nil {
		t.Fatalf("register: %v", err)
	}
	record, err := env.state.GetSyntheticAsset(token)
	if err != nil {
		t.Fatalf("get synthetic: %v", err)
	}
	if record == nil || !record.Exists || record.Symbol != "krGLD" {
		t.Fatalf("record not persisted: %+v", record)
	}
	// A nil cap normalises to zero, meaning uncapped.
	mustEqualBig(t, "market cap", record.MarketCapUSD, big.NewInt(0))

	owner, taken2, err := env.state.SymbolOwner("krGLD")
	if err != nil || !taken2 || owner != token {
		t.Fatalf("symbol not reserved: %s %v %v", owner.Hex(), taken2, err)
	}
}

func TestUpdateCollateralFactor(t *testing.T) {
	env := newTestEnv(t)

	if err := env.engine.UpdateCollateralFactor(bob, oreToken, wad(1)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-owner update: %v", err)
	}
	if err := env.engine.UpdateCollateralFactor(testOwner, addr(0x77), wad(1)); !errors.Is(err, ErrUnknownAsset) {
		t.Fatalf("unknown asset: %v", err)
	}
	if err := env.engine.UpdateCollateralFactor(testOwner, oreToken, mustBigInt("1000000000000000001")); !errors.Is(err, ErrInvalidRiskFactor) {
		t.Fatalf("factor above one: %v", err)
	}

	if err := env.engine.UpdateCollateralFactor(testOwner, oreToken, mustBigInt("500000000000000000")); err != nil {
		t.Fatalf("update: %v", err)
	}
	record, _ := env.state.GetCollateralAsset(oreToken)
	mustEqualBig(t, "factor", record.Factor, mustBigInt("500000000000000000"))
	if len(env.capture.ByType(EventTypeRiskFactorUpdated)) != 1 {
		t.Fatalf("missing risk factor event")
	}
}

func TestUpdateKFactorAndOracles(t *testing.T) {
	env := newTestEnv(t)

	if err := env.engine.UpdateKFactor(testOwner, krOilToken, mustBigInt("1300000000000000000")); err != nil {
		t.Fatalf("update k-factor: %v", err)
	}
	record, _ := env.state.GetSyntheticAsset(krOilToken)
	mustEqualBig(t, "k-factor", record.KFactor, mustBigInt("1300000000000000000"))

	newFeed := addr(0x55)
	if err := env.engine.UpdateSyntheticOracle(testOwner, krOilToken, newFeed); err != nil {
		t.Fatalf("update synthetic oracle: %v", err)
	}
	record, _ = env.state.GetSyntheticAsset(krOilToken)
	if record.Oracle != newFeed {
		t.Fatalf("oracle not updated: %s", record.Oracle.Hex())
	}

	if err := env.engine.UpdateCollateralOracle(testOwner, oreToken, addr(0)); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("zero oracle: %v", err)
	}
	if err := env.engine.UpdateCollateralOracle(testOwner, oreToken, newFeed); err != nil {
		t.Fatalf("update collateral oracle: %v", err)
	}
	collateral, _ := env.state.GetCollateralAsset(oreToken)
	if collateral.Oracle != newFeed {
		t.Fatalf("collateral oracle not updated: %s", collateral.Oracle.Hex())
	}
}

func TestUpdateMintableAndMarketCap(t *testing.T) {
	env := newTestEnv(t)

	if err := env.engine.UpdateMintable(testOwner, krOilToken, false); err != nil {
		t.Fatalf("update mintable: %v", err)
	}
	record, _ := env.state.GetSyntheticAsset(krOilToken)
	if record.Mintable {
		t.Fatalf("mintable flag not cleared")
	}

	if err := env.engine.UpdateMarketCap(testOwner, krOilToken, big.NewInt(-1)); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("negative cap: %v", err)
	}
	if err := env.engine.UpdateMarketCap(testOwner, krOilToken, wad(500)); err != nil {
		t.Fatalf("update cap: %v", err)
	}
	record, _ = env.state.GetSyntheticAsset(krOilToken)
	mustEqualBig(t, "market cap", record.MarketCapUSD, wad(500))
}
