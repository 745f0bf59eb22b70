package minter

import (
	"math/big"
	"testing"
)

func TestBurnFeeSingleAsset(t *testing.T) {
	env := newTestEnv(t)
	env.deposit(alice, oreToken, wad(100))
	env.mint(alice, krOilToken, wad(100))
	if err := env.engine.SetBurnFee(testOwner, mustBigInt("20000000000000000")); err != nil { // 2%
		t.Fatalf("set burn fee: %v", err)
	}

	// Burning 50 krOIL retires $250 of debt; the 2% fee is $5, which is
	// half an ORE at $10.
	burned, err := env.engine.Burn(alice, alice, krOilToken, wad(50))
	if err != nil {
		t.Fatalf("burn: %v", err)
	}
	mustEqualBig(t, "burned", burned, wad(50))
	mustEqualBig(t, "fee collateral", env.tokens.BalanceOf(oreToken, testFeeRecipient), mustBigInt("500000000000000000"))
	mustEqualBig(t, "remaining collateral", env.position(alice).collateralAmount(oreToken), mustBigInt("99500000000000000000"))

	fees := env.capture.ByType(EventTypeFeePaid)
	if len(fees) != 1 {
		t.Fatalf("unexpected fee events: %d", len(fees))
	}
	if fees[0].Attributes["valueUSD"] != wad(5).String() {
		t.Fatalf("unexpected fee value: %s", fees[0].Attributes["valueUSD"])
	}
}

func TestBurnFeeSpansAssetsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.deposit(alice, oreToken, wad(1000))
	env.deposit(alice, gemToken, big.NewInt(50_000_000)) // 0.5 GEM, $5
	env.mint(alice, krOilToken, wad(100))
	if err := env.engine.SetBurnFee(testOwner, mustBigInt("100000000000000000")); err != nil { // 10%
		t.Fatalf("set burn fee: %v", err)
	}

	// Burning the full $500 of debt charges a $50 fee. GEM was deposited
	// last so its $5 goes first, the remaining $45 comes out of ORE.
	if _, err := env.engine.Burn(alice, alice, krOilToken, wad(100)); err != nil {
		t.Fatalf("burn: %v", err)
	}

	mustEqualBig(t, "fee GEM", env.tokens.BalanceOf(gemToken, testFeeRecipient), big.NewInt(50_000_000))
	mustEqualBig(t, "fee ORE", env.tokens.BalanceOf(oreToken, testFeeRecipient), mustBigInt("4500000000000000000"))

	position := env.position(alice)
	mustEqualBig(t, "GEM exhausted", position.collateralAmount(gemToken), big.NewInt(0))
	mustEqualBig(t, "ORE remaining", position.collateralAmount(oreToken), mustBigInt("995500000000000000000"))

	fees := env.capture.ByType(EventTypeFeePaid)
	if len(fees) != 2 {
		t.Fatalf("unexpected fee events: %d", len(fees))
	}
	if fees[0].Attributes["asset"] != gemToken.Hex() || fees[1].Attributes["asset"] != oreToken.Hex() {
		t.Fatalf("fee events out of order: %s then %s",
			fees[0].Attributes["asset"], fees[1].Attributes["asset"])
	}

	// Every seized token either reached the recipient or stayed in custody.
	totalORE := new(big.Int).Add(
		env.tokens.BalanceOf(oreToken, testModule),
		env.tokens.BalanceOf(oreToken, testFeeRecipient))
	mustEqualBig(t, "ORE conservation", totalORE, wad(1000))
	totalGEM := new(big.Int).Add(
		env.tokens.BalanceOf(gemToken, testModule),
		env.tokens.BalanceOf(gemToken, testFeeRecipient))
	mustEqualBig(t, "GEM conservation", totalGEM, big.NewInt(50_000_000))
}

func TestBurnFeeSkipsUnpricedCollateral(t *testing.T) {
	env := newTestEnv(t)
	env.deposit(alice, oreToken, wad(100))
	env.deposit(alice, gemToken, big.NewInt(100_000_000))
	env.mint(alice, krOilToken, wad(50))
	if err := env.engine.SetBurnFee(testOwner, mustBigInt("100000000000000000")); err != nil {
		t.Fatalf("set burn fee: %v", err)
	}
	env.oracle.SetPrice(gemFeed, big.NewInt(0))

	// The $25 fee skips the unpriced GEM and lands entirely on ORE.
	if _, err := env.engine.Burn(alice, alice, krOilToken, wad(50)); err != nil {
		t.Fatalf("burn: %v", err)
	}
	position := env.position(alice)
	mustEqualBig(t, "GEM untouched", position.collateralAmount(gemToken), big.NewInt(100_000_000))
	mustEqualBig(t, "ORE charged", position.collateralAmount(oreToken), mustBigInt("97500000000000000000"))
	mustEqualBig(t, "fee ORE", env.tokens.BalanceOf(oreToken, testFeeRecipient), mustBigInt("2500000000000000000"))
}

func TestBurnWithoutFeeLeavesCollateral(t *testing.T) {
	env := newTestEnv(t)
	env.deposit(alice, oreToken, wad(100))
	env.mint(alice, krOilToken, wad(100))

	if _, err := env.engine.Burn(alice, alice, krOilToken, wad(100)); err != nil {
		t.Fatalf("burn: %v", err)
	}
	mustEqualBig(t, "collateral intact", env.position(alice).collateralAmount(oreToken), wad(100))
	if len(env.capture.ByType(EventTypeFeePaid)) != 0 {
		t.Fatalf("fee charged with zero fee rate")
	}
}
