package minter

import (
	"math/big"
	"testing"
)

func TestCollateralValueAppliesFactor(t *testing.T) {
	env := newTestEnv(t)
	// 100 ORE at $123.45 discounted by the 0.8 factor: $9876.
	env.oracle.SetPrice(oreFeed, mustBigInt("123450000000000000000"))
	env.deposit(alice, oreToken, wad(100))

	value, err := env.engine.AccountCollateralValue(alice)
	if err != nil {
		t.Fatalf("collateral value: %v", err)
	}
	mustEqualBig(t, "collateral value", value, wad(9876))
}

func TestCollateralValueRescalesDecimals(t *testing.T) {
	env := newTestEnv(t)
	// 2.5 GEM in 8-decimal units at $10, factor 1.0.
	env.deposit(alice, gemToken, big.NewInt(250_000_000))

	value, err := env.engine.AccountCollateralValue(alice)
	if err != nil {
		t.Fatalf("collateral value: %v", err)
	}
	mustEqualBig(t, "collateral value", value, wad(25))
}

func TestDebtValueAppliesKFactor(t *testing.T) {
	env := newTestEnv(t)
	env.deposit(alice, gemToken, big.NewInt(10_000_000_000)) // 100 GEM, $1000
	env.mint(alice, krGasToken, wad(10))                     // $50 raw, k-factor 1.2

	debtValue, err := env.engine.AccountDebtValue(alice)
	if err != nil {
		t.Fatalf("debt value: %v", err)
	}
	mustEqualBig(t, "debt value", debtValue, wad(60))

	minValue, err := env.engine.AccountMinCollateralValue(alice)
	if err != nil {
		t.Fatalf("min collateral value: %v", err)
	}
	mustEqualBig(t, "min collateral value", minValue, wad(90))
}

func TestUnpricedAssetValuesAtZero(t *testing.T) {
	env := newTestEnv(t)
	env.deposit(alice, oreToken, wad(10))
	env.oracle.SetPrice(oreFeed, big.NewInt(0))

	value, err := env.engine.AccountCollateralValue(alice)
	if err != nil {
		t.Fatalf("collateral value: %v", err)
	}
	mustEqualBig(t, "unpriced collateral", value, big.NewInt(0))
}

func TestEmptyAccountValues(t *testing.T) {
	env := newTestEnv(t)
	value, err := env.engine.AccountCollateralValue(alice)
	if err != nil {
		t.Fatalf("collateral value: %v", err)
	}
	mustEqualBig(t, "empty collateral", value, big.NewInt(0))

	debtValue, err := env.engine.AccountDebtValue(alice)
	if err != nil {
		t.Fatalf("debt value: %v", err)
	}
	mustEqualBig(t, "empty debt", debtValue, big.NewInt(0))
}
