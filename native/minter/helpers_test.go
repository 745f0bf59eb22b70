package minter

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"kresko/core/events"
	"kresko/native/bank"
)

// Shared fixture for the engine tests: an in-memory state, a token ledger, a
// static oracle and a registered set of assets priced in round numbers so the
// expected values stay readable.

var (
	testOwner        = addr(0x01)
	testModule       = addr(0x02)
	testFeeRecipient = addr(0x03)
	alice            = addr(0xA1)
	bob              = addr(0xB1)

	oreToken = addr(0x11)
	oreFeed  = addr(0x12)
	gemToken = addr(0x13)
	gemFeed  = addr(0x14)
	rbsToken = addr(0x15)
	rbsFeed  = addr(0x16)

	krOilToken = addr(0x21)
	krOilFeed  = addr(0x22)
	krGasToken = addr(0x23)
	krGasFeed  = addr(0x24)
)

func addr(b byte) common.Address {
	return common.BytesToAddress([]byte{b})
}

func wad(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), scale)
}

type mockState struct {
	collateral    map[common.Address]*CollateralAsset
	collateralIdx []common.Address
	synthetic     map[common.Address]*SyntheticAsset
	syntheticIdx  []common.Address
	symbols       map[string]common.Address
	positions     map[common.Address]*Position
	wraps         map[common.Address]*WrapState
	params        *ProtocolParams
}

func newMockState() *mockState {
	return &mockState{
		collateral: make(map[common.Address]*CollateralAsset),
		synthetic:  make(map[common.Address]*SyntheticAsset),
		symbols:    make(map[string]common.Address),
		positions:  make(map[common.Address]*Position),
		wraps:      make(map[common.Address]*WrapState),
	}
}

func (m *mockState) GetCollateralAsset(asset common.Address) (*CollateralAsset, error) {
	return m.collateral[asset].Clone(), nil
}

func (m *mockState) PutCollateralAsset(asset *CollateralAsset) error {
	if _, ok := m.collateral[asset.Address]; !ok {
		m.collateralIdx = append(m.collateralIdx, asset.Address)
	}
	m.collateral[asset.Address] = asset.Clone()
	return nil
}

func (m *mockState) CollateralAssets() ([]common.Address, error) {
	return append([]common.Address(nil), m.collateralIdx...), nil
}

func (m *mockState) GetSyntheticAsset(asset common.Address) (*SyntheticAsset, error) {
	return m.synthetic[asset].Clone(), nil
}

func (m *mockState) PutSyntheticAsset(asset *SyntheticAsset) error {
	if _, ok := m.synthetic[asset.Address]; !ok {
		m.syntheticIdx = append(m.syntheticIdx, asset.Address)
	}
	m.synthetic[asset.Address] = asset.Clone()
	return nil
}

func (m *mockState) SyntheticAssets() ([]common.Address, error) {
	return append([]common.Address(nil), m.syntheticIdx...), nil
}

func (m *mockState) SymbolOwner(symbol string) (common.Address, bool, error) {
	owner, ok := m.symbols[symbol]
	return owner, ok, nil
}

func (m *mockState) PutSymbol(symbol string, asset common.Address) error {
	m.symbols[symbol] = asset
	return nil
}

func (m *mockState) GetPosition(account common.Address) (*Position, error) {
	return m.positions[account].Clone(), nil
}

func (m *mockState) PutPosition(position *Position) error {
	m.positions[position.Account] = position.Clone()
	return nil
}

func (m *mockState) GetWrapState(asset common.Address) (*WrapState, error) {
	return m.wraps[asset].Clone(), nil
}

func (m *mockState) PutWrapState(state *WrapState) error {
	m.wraps[state.Asset] = state.Clone()
	return nil
}

func (m *mockState) GetParams() (*ProtocolParams, error) {
	return m.params.Clone(), nil
}

func (m *mockState) PutParams(params *ProtocolParams) error {
	m.params = params.Clone()
	return nil
}

type testEnv struct {
	t       *testing.T
	engine  *Engine
	state   *mockState
	tokens  *bank.Ledger
	oracle  *StaticOracle
	capture *events.Capture
}

// newTestEnv wires an engine against fresh fixtures and registers the test
// assets:
//
//	ORE   collateral, 18 decimals, factor 0.8, $10
//	GEM   collateral, 8 decimals, factor 1.0, $10
//	RBS   rebasing collateral, 18 decimals, factor 0.9, $2
//	krOIL synthetic, 18 decimals, k-factor 1.0, $5, no cap
//	krGAS synthetic, 18 decimals, k-factor 1.2, $5, $1000 cap
//
// Parameters: 150% minimum ratio, 1.1x incentive, no burn fee, $1 min debt.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		t:       t,
		state:   newMockState(),
		tokens:  bank.NewLedger(),
		oracle:  NewStaticOracle(),
		capture: &events.Capture{},
	}
	env.engine = NewEngine(testModule, testOwner)
	env.engine.SetState(env.state)
	env.engine.SetTokenLedger(env.tokens)
	env.engine.SetOracle(env.oracle)
	env.engine.SetEmitter(env.capture)

	env.oracle.SetPrice(oreFeed, wad(10))
	env.oracle.SetPrice(gemFeed, wad(10))
	env.oracle.SetPrice(rbsFeed, wad(2))
	env.oracle.SetPrice(krOilFeed, wad(5))
	env.oracle.SetPrice(krGasFeed, wad(5))

	if err := env.engine.RegisterCollateral(testOwner, CollateralAsset{
		Address:  oreToken,
		Factor:   mustBigInt("800000000000000000"),
		Oracle:   oreFeed,
		Decimals: 18,
	}); err != nil {
		t.Fatalf("register ORE: %v", err)
	}
	if err := env.engine.RegisterCollateral(testOwner, CollateralAsset{
		Address:  gemToken,
		Factor:   wad(1),
		Oracle:   gemFeed,
		Decimals: 8,
	}); err != nil {
		t.Fatalf("register GEM: %v", err)
	}
	if err := env.engine.RegisterCollateral(testOwner, CollateralAsset{
		Address:  rbsToken,
		Factor:   mustBigInt("900000000000000000"),
		Oracle:   rbsFeed,
		Decimals: 18,
		Rebasing: true,
	}); err != nil {
		t.Fatalf("register RBS: %v", err)
	}

	env.tokens.SetOperator(krOilToken, testModule)
	env.tokens.SetOperator(krGasToken, testModule)
	if err := env.engine.RegisterSynthetic(testOwner, SyntheticAsset{
		Address:  krOilToken,
		Symbol:   "krOIL",
		KFactor:  wad(1),
		Oracle:   krOilFeed,
		Decimals: 18,
		Mintable: true,
	}); err != nil {
		t.Fatalf("register krOIL: %v", err)
	}
	if err := env.engine.RegisterSynthetic(testOwner, SyntheticAsset{
		Address:      krGasToken,
		Symbol:       "krGAS",
		KFactor:      mustBigInt("1200000000000000000"),
		Oracle:       krGasFeed,
		Decimals:     18,
		Mintable:     true,
		MarketCapUSD: wad(1000),
	}); err != nil {
		t.Fatalf("register krGAS: %v", err)
	}

	if err := env.engine.InitParams(testOwner, &ProtocolParams{
		MinCollateralRatio:   mustBigInt("1500000000000000000"),
		LiquidationIncentive: mustBigInt("1100000000000000000"),
		BurnFee:              big.NewInt(0),
		MinDebtValue:         wad(1),
		FeeRecipient:         testFeeRecipient,
	}); err != nil {
		t.Fatalf("init params: %v", err)
	}
	return env
}

func (env *testEnv) fund(account, token common.Address, amount *big.Int) {
	env.t.Helper()
	env.tokens.Credit(token, account, amount)
}

func (env *testEnv) deposit(account, asset common.Address, amount *big.Int) {
	env.t.Helper()
	env.fund(account, asset, amount)
	if err := env.engine.Deposit(account, account, asset, amount); err != nil {
		env.t.Fatalf("deposit %s: %v", asset.Hex(), err)
	}
}

func (env *testEnv) mint(account, asset common.Address, amount *big.Int) {
	env.t.Helper()
	if err := env.engine.Mint(account, account, asset, amount); err != nil {
		env.t.Fatalf("mint %s: %v", asset.Hex(), err)
	}
}

func (env *testEnv) position(account common.Address) *Position {
	env.t.Helper()
	position, err := env.state.GetPosition(account)
	if err != nil {
		env.t.Fatalf("get position: %v", err)
	}
	if position == nil {
		position = &Position{Account: account}
	}
	return position
}

func mustEqualBig(t *testing.T, what string, got, want *big.Int) {
	t.Helper()
	if got == nil || got.Cmp(want) != 0 {
		t.Fatalf("unexpected %s: got %v want %s", what, got, want)
	}
}
