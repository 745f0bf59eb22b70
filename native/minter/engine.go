package minter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"kresko/core/events"
	nativecommon "kresko/native/common"
)

// Action names checked against the pause view before every state transition.
const (
	actionDeposit   = "deposit"
	actionWithdraw  = "withdraw"
	actionMint      = "mint"
	actionBurn      = "burn"
	actionLiquidate = "liquidate"
)

// Engine orchestrates the collateral and debt state transitions for the
// minter module. Every operation validates against loaded copies of the
// relevant records and persists only after all checks pass, so a failed
// operation leaves no partial state behind.
type Engine struct {
	state         State
	tokens        TokenLedger
	oracle        PriceOracle
	emitter       events.Emitter
	pauses        nativecommon.PauseView
	moduleAddress common.Address

	owner        common.Address
	pendingOwner common.Address
	trusted      map[common.Address]bool
}

// NewEngine constructs a minter engine. The module address is the custody
// account holding deposited collateral; owner holds the admin capability.
func NewEngine(moduleAddr, owner common.Address) *Engine {
	return &Engine{
		moduleAddress: moduleAddr,
		owner:         owner,
		trusted:       make(map[common.Address]bool),
	}
}

// SetState wires the engine to the external persistence layer.
func (e *Engine) SetState(state State) { e.state = state }

// SetTokenLedger wires the engine to the fungible token layer.
func (e *Engine) SetTokenLedger(tokens TokenLedger) {
	if e == nil {
		return
	}
	e.tokens = tokens
}

// SetOracle wires the engine to the price feed layer.
func (e *Engine) SetOracle(oracle PriceOracle) {
	if e == nil {
		return
	}
	e.oracle = oracle
}

// SetEmitter configures the event sink. A nil emitter discards events.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if e == nil {
		return
	}
	e.emitter = emitter
}

// SetPauses wires the per-action pause switches.
func (e *Engine) SetPauses(p nativecommon.PauseView) {
	if e == nil {
		return
	}
	e.pauses = p
}

// ModuleAddress returns the custody account for deposited collateral.
func (e *Engine) ModuleAddress() common.Address {
	if e == nil {
		return common.Address{}
	}
	return e.moduleAddress
}

func (e *Engine) emit(evt *events.Event) {
	if e == nil || e.emitter == nil || evt == nil {
		return
	}
	e.emitter.Emit(evt)
}

func (e *Engine) ready() error {
	if e == nil || e.state == nil || e.tokens == nil || e.oracle == nil {
		return ErrNilState
	}
	return nil
}

// authorised reports whether caller may act on the account's position.
func (e *Engine) authorised(caller, account common.Address) bool {
	if caller == account {
		return true
	}
	return e.trusted[caller]
}

// InitParams installs the protocol parameters exactly once. Re-initialisation
// fails so genesis configuration cannot silently overwrite live governance
// state.
func (e *Engine) InitParams(caller common.Address, params *ProtocolParams) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrUnauthorized
	}
	existing, err := e.state.GetParams()
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyInitialised
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if err := e.state.PutParams(params.Clone()); err != nil {
		return err
	}
	e.emit(NewParameterUpdatedEvent("init", "", params))
	return nil
}

func (e *Engine) loadParams() (*ProtocolParams, error) {
	params, err := e.state.GetParams()
	if err != nil {
		return nil, err
	}
	if params == nil {
		return nil, ErrNotInitialised
	}
	return params, nil
}

// updateParams applies mutate to a copy of the live parameters, validates the
// result and persists it. Shared by every admin setter.
func (e *Engine) updateParams(caller common.Address, name, value string, mutate func(*ProtocolParams)) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrUnauthorized
	}
	params, err := e.loadParams()
	if err != nil {
		return err
	}
	updated := params.Clone()
	mutate(updated)
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := e.state.PutParams(updated); err != nil {
		return err
	}
	e.emit(NewParameterUpdatedEvent(name, value, updated))
	return nil
}

// SetMinCollateralRatio updates the collateralisation floor.
func (e *Engine) SetMinCollateralRatio(caller common.Address, ratio *big.Int) error {
	return e.updateParams(caller, "minCollateralRatio", bigString(ratio), func(p *ProtocolParams) {
		p.MinCollateralRatio = cloneBig(ratio)
	})
}

// SetLiquidationIncentive updates the liquidator bonus multiplier.
func (e *Engine) SetLiquidationIncentive(caller common.Address, incentive *big.Int) error {
	return e.updateParams(caller, "liquidationIncentive", bigString(incentive), func(p *ProtocolParams) {
		p.LiquidationIncentive = cloneBig(incentive)
	})
}

// SetBurnFee updates the protocol fee charged on burn value.
func (e *Engine) SetBurnFee(caller common.Address, fee *big.Int) error {
	return e.updateParams(caller, "burnFee", bigString(fee), func(p *ProtocolParams) {
		p.BurnFee = cloneBig(fee)
	})
}

// SetMinDebtValue updates the USD floor for debt positions.
func (e *Engine) SetMinDebtValue(caller common.Address, value *big.Int) error {
	return e.updateParams(caller, "minDebtValue", bigString(value), func(p *ProtocolParams) {
		p.MinDebtValue = cloneBig(value)
	})
}

// SetFeeRecipient updates the protocol fee destination.
func (e *Engine) SetFeeRecipient(caller, recipient common.Address) error {
	return e.updateParams(caller, "feeRecipient", recipient.Hex(), func(p *ProtocolParams) {
		p.FeeRecipient = recipient
	})
}

func (e *Engine) ensurePosition(account common.Address) (*Position, error) {
	position, err := e.state.GetPosition(account)
	if err != nil {
		return nil, err
	}
	if position == nil {
		position = &Position{Account: account}
	}
	return position, nil
}

// Deposit pulls collateral from the caller and credits the account's
// position. A caller may credit another account only when trusted.
func (e *Engine) Deposit(caller, account, asset common.Address, amount *big.Int) error {
	if err := e.ready(); err != nil {
		return err
	}
	if err := nativecommon.Guard(e.pauses, actionDeposit); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	if !e.authorised(caller, account) {
		return ErrUnauthorized
	}
	record, err := e.state.GetCollateralAsset(asset)
	if err != nil {
		return err
	}
	if record == nil || !record.Exists {
		return ErrUnknownAsset
	}
	if record.Rebasing {
		return ErrRebasingCollateral
	}
	if e.tokens.BalanceOf(asset, caller).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}

	position, err := e.ensurePosition(account)
	if err != nil {
		return err
	}

	if err := e.tokens.Transfer(asset, caller, e.moduleAddress, amount); err != nil {
		return err
	}
	position.creditCollateral(asset, amount)
	if err := e.state.PutPosition(position); err != nil {
		return err
	}
	e.emit(NewCollateralDepositedEvent(account, asset, amount, nil))
	return nil
}

// Withdraw releases collateral back to the account owner. The requested
// amount is clamped to the deposited balance; accounts with outstanding debt
// must remain above the minimum collateral value afterwards. The amount
// actually withdrawn is returned.
func (e *Engine) Withdraw(caller, account, asset common.Address, amount *big.Int) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if err := nativecommon.Guard(e.pauses, actionWithdraw); err != nil {
		return nil, err
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	if !e.authorised(caller, account) {
		return nil, ErrUnauthorized
	}
	record, err := e.state.GetCollateralAsset(asset)
	if err != nil {
		return nil, err
	}
	if record == nil || !record.Exists {
		return nil, ErrUnknownAsset
	}
	if record.Rebasing {
		return nil, ErrRebasingCollateral
	}

	position, err := e.ensurePosition(account)
	if err != nil {
		return nil, err
	}
	held := position.collateralAmount(asset)
	if held.Sign() == 0 {
		return big.NewInt(0), nil
	}
	withdrawn := new(big.Int).Set(amount)
	if withdrawn.Cmp(held) > 0 {
		withdrawn = held
	}

	remaining := position.Clone()
	remaining.debitCollateral(asset, withdrawn)
	if err := e.requireHealthyAfterWithdrawal(remaining); err != nil {
		return nil, err
	}

	if err := e.tokens.Transfer(asset, e.moduleAddress, account, withdrawn); err != nil {
		return nil, err
	}
	if err := e.state.PutPosition(remaining); err != nil {
		return nil, err
	}
	e.emit(NewCollateralWithdrawnEvent(account, asset, withdrawn, nil))
	return withdrawn, nil
}

// requireHealthyAfterWithdrawal enforces the collateralisation floor on the
// hypothetical post-withdrawal position. Debt-free accounts may withdraw
// freely to zero.
func (e *Engine) requireHealthyAfterWithdrawal(position *Position) error {
	if len(position.Debt) == 0 {
		return nil
	}
	params, err := e.loadParams()
	if err != nil {
		return err
	}
	collateralValue, err := e.positionCollateralValue(position)
	if err != nil {
		return err
	}
	minValue, err := e.positionMinCollateralValue(position, params)
	if err != nil {
		return err
	}
	if collateralValue.Cmp(minValue) < 0 {
		return ErrCollateralTooLow
	}
	return nil
}

func cloneBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func bigString(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}
