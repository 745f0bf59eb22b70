package minter

import "errors"

var (
	ErrNilState           = errors.New("minter: state not configured")
	ErrNotInitialised     = errors.New("minter: protocol parameters not initialised")
	ErrAlreadyInitialised = errors.New("minter: protocol parameters already initialised")

	ErrUnauthorized      = errors.New("minter: caller not authorised")
	ErrInvalidAddress    = errors.New("minter: address must not be zero")
	ErrInvalidRiskFactor = errors.New("minter: risk factor out of range")
	ErrInvalidParameter  = errors.New("minter: parameter out of range")
	ErrAlreadyExists     = errors.New("minter: asset already registered")
	ErrDuplicateSymbol   = errors.New("minter: synthetic symbol already registered")
	ErrOperatorMismatch  = errors.New("minter: synthetic token operator is not the protocol")
	ErrUnknownAsset      = errors.New("minter: asset not registered")

	ErrZeroAmount            = errors.New("minter: amount must be positive")
	ErrInsufficientBalance   = errors.New("minter: insufficient token balance")
	ErrNotRebasingCollateral = errors.New("minter: asset not configured for rebasing deposits")
	ErrRebasingCollateral    = errors.New("minter: rebasing asset requires the rebasing deposit path")
	ErrCollateralTooLow      = errors.New("minter: collateral below minimum required value")

	ErrNotMintable            = errors.New("minter: asset minting disabled")
	ErrBelowMinDebtValue      = errors.New("minter: debt position below minimum value")
	ErrInsufficientCollateral = errors.New("minter: insufficient collateral for mint")
	ErrMarketCapExceeded      = errors.New("minter: synthetic market cap exceeded")
	ErrAmountExceedsDebt      = errors.New("minter: burn amount exceeds outstanding debt")

	ErrSelfLiquidation             = errors.New("minter: cannot liquidate own account")
	ErrNotLiquidatable             = errors.New("minter: account not eligible for liquidation")
	ErrZeroRepay                   = errors.New("minter: repay amount must be positive")
	ErrRepayExceedsDebt            = errors.New("minter: repay amount exceeds outstanding debt")
	ErrRepayExceedsMaxLiquidatable = errors.New("minter: repay value exceeds maximum liquidatable value")

	ErrDivisionByZero = errors.New("minter: division by zero")
)
