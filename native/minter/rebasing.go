package minter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	nativecommon "kresko/native/common"
)

// Rebasing collateral is wrapped into a non-rebasing internal accounting unit
// on deposit and unwrapped on withdrawal. The wrap rate is the ratio of
// wrapped supply to the underlying tokens the protocol actually holds, so a
// rebase event shifts the rate without any protocol action; the rate is 1:1
// while the pool is empty. WrapState.UnderlyingHeld mirrors principal flows
// for audit but the live module balance drives the conversion.

func wrapAmount(underlying, underlyingHeld *big.Int, pool *WrapState) *big.Int {
	if pool.WrappedSupply.Sign() == 0 || underlyingHeld.Sign() == 0 {
		return new(big.Int).Set(underlying)
	}
	wrapped := new(big.Int).Mul(underlying, pool.WrappedSupply)
	return wrapped.Quo(wrapped, underlyingHeld)
}

func unwrapAmount(wrapped, underlyingHeld *big.Int, pool *WrapState) *big.Int {
	if pool.WrappedSupply.Sign() == 0 {
		return big.NewInt(0)
	}
	underlying := new(big.Int).Mul(wrapped, underlyingHeld)
	return underlying.Quo(underlying, pool.WrappedSupply)
}

func (e *Engine) ensureWrapState(asset common.Address) (*WrapState, error) {
	pool, err := e.state.GetWrapState(asset)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		pool = &WrapState{Asset: asset}
	}
	pool.EnsureDefaults()
	return pool, nil
}

// DepositRebasing pulls the rebasing underlying token from the caller, wraps
// it into the internal unit and credits the account's position with the
// wrapped amount, which is returned.
func (e *Engine) DepositRebasing(caller, account, asset common.Address, underlying *big.Int) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if err := nativecommon.Guard(e.pauses, actionDeposit); err != nil {
		return nil, err
	}
	if underlying == nil || underlying.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	if !e.authorised(caller, account) {
		return nil, ErrUnauthorized
	}
	record, err := e.loadCollateral(asset)
	if err != nil {
		return nil, err
	}
	if !record.Rebasing {
		return nil, ErrNotRebasingCollateral
	}
	if e.tokens.BalanceOf(asset, caller).Cmp(underlying) < 0 {
		return nil, ErrInsufficientBalance
	}

	pool, err := e.ensureWrapState(asset)
	if err != nil {
		return nil, err
	}
	wrapped := wrapAmount(underlying, e.tokens.BalanceOf(asset, e.moduleAddress), pool)
	if wrapped.Sign() == 0 {
		return nil, ErrZeroAmount
	}

	position, err := e.ensurePosition(account)
	if err != nil {
		return nil, err
	}

	if err := e.tokens.Transfer(asset, caller, e.moduleAddress, underlying); err != nil {
		return nil, err
	}
	pool.UnderlyingHeld = new(big.Int).Add(pool.UnderlyingHeld, underlying)
	pool.WrappedSupply = new(big.Int).Add(pool.WrappedSupply, wrapped)
	position.creditCollateral(asset, wrapped)
	if err := e.state.PutWrapState(pool); err != nil {
		return nil, err
	}
	if err := e.state.PutPosition(position); err != nil {
		return nil, err
	}
	e.emit(NewCollateralDepositedEvent(account, asset, wrapped, underlying))
	return wrapped, nil
}

// WithdrawRebasing unwraps up to the requested wrapped amount from the
// account's position and sends the corresponding underlying tokens back to
// the account owner. Returns the underlying amount released.
func (e *Engine) WithdrawRebasing(caller, account, asset common.Address, wrapped *big.Int) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if err := nativecommon.Guard(e.pauses, actionWithdraw); err != nil {
		return nil, err
	}
	if wrapped == nil || wrapped.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	if !e.authorised(caller, account) {
		return nil, ErrUnauthorized
	}
	record, err := e.loadCollateral(asset)
	if err != nil {
		return nil, err
	}
	if !record.Rebasing {
		return nil, ErrNotRebasingCollateral
	}

	position, err := e.ensurePosition(account)
	if err != nil {
		return nil, err
	}
	held := position.collateralAmount(asset)
	if held.Sign() == 0 {
		return big.NewInt(0), nil
	}
	withdrawn := new(big.Int).Set(wrapped)
	if withdrawn.Cmp(held) > 0 {
		withdrawn = held
	}

	remaining := position.Clone()
	remaining.debitCollateral(asset, withdrawn)
	if err := e.requireHealthyAfterWithdrawal(remaining); err != nil {
		return nil, err
	}

	pool, err := e.ensureWrapState(asset)
	if err != nil {
		return nil, err
	}
	poolBalance := e.tokens.BalanceOf(asset, e.moduleAddress)
	underlying := unwrapAmount(withdrawn, poolBalance, pool)
	if underlying.Cmp(poolBalance) > 0 {
		underlying = new(big.Int).Set(poolBalance)
	}

	if err := e.tokens.Transfer(asset, e.moduleAddress, account, underlying); err != nil {
		return nil, err
	}
	pool.UnderlyingHeld = new(big.Int).Sub(pool.UnderlyingHeld, underlying)
	if pool.UnderlyingHeld.Sign() < 0 {
		pool.UnderlyingHeld = big.NewInt(0)
	}
	pool.WrappedSupply = new(big.Int).Sub(pool.WrappedSupply, withdrawn)
	if err := e.state.PutWrapState(pool); err != nil {
		return nil, err
	}
	if err := e.state.PutPosition(remaining); err != nil {
		return nil, err
	}
	e.emit(NewCollateralWithdrawnEvent(account, asset, withdrawn, underlying))
	return underlying, nil
}
