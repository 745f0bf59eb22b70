package minter

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"kresko/core/events"
)

const (
	EventTypeCollateralRegistered = "minter.collateral.registered"
	EventTypeSyntheticRegistered  = "minter.synthetic.registered"
	EventTypeRiskFactorUpdated    = "minter.asset.risk_factor_updated"
	EventTypeOracleUpdated        = "minter.asset.oracle_updated"
	EventTypeMintableUpdated      = "minter.asset.mintable_updated"
	EventTypeMarketCapUpdated     = "minter.asset.market_cap_updated"
	EventTypeCollateralDeposited  = "minter.collateral.deposited"
	EventTypeCollateralWithdrawn  = "minter.collateral.withdrawn"
	EventTypeDebtMinted           = "minter.debt.minted"
	EventTypeDebtBurned           = "minter.debt.burned"
	EventTypeFeePaid              = "minter.fee.paid"
	EventTypeLiquidation          = "minter.liquidation.occurred"
	EventTypeParameterUpdated     = "minter.params.updated"
	EventTypeOwnershipProposed    = "minter.ownership.proposed"
	EventTypeOwnershipClaimed     = "minter.ownership.claimed"
	EventTypeTrustedCaller        = "minter.trusted_caller.updated"
)

func newEvent(eventType string, attrs map[string]string) *events.Event {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &events.Event{Type: eventType, Attributes: attrs}
}

func putAmount(attrs map[string]string, key string, amount *big.Int) {
	if amount != nil {
		attrs[key] = amount.String()
	}
}

// NewCollateralRegisteredEvent returns the canonical payload for a collateral
// listing.
func NewCollateralRegisteredEvent(asset *CollateralAsset) *events.Event {
	attrs := make(map[string]string)
	if asset != nil {
		attrs["asset"] = asset.Address.Hex()
		attrs["oracle"] = asset.Oracle.Hex()
		attrs["decimals"] = strconv.FormatUint(uint64(asset.Decimals), 10)
		attrs["rebasing"] = strconv.FormatBool(asset.Rebasing)
		putAmount(attrs, "factor", asset.Factor)
	}
	return newEvent(EventTypeCollateralRegistered, attrs)
}

// NewSyntheticRegisteredEvent returns the canonical payload for a synthetic
// listing.
func NewSyntheticRegisteredEvent(asset *SyntheticAsset) *events.Event {
	attrs := make(map[string]string)
	if asset != nil {
		attrs["asset"] = asset.Address.Hex()
		attrs["symbol"] = asset.Symbol
		attrs["oracle"] = asset.Oracle.Hex()
		attrs["decimals"] = strconv.FormatUint(uint64(asset.Decimals), 10)
		attrs["mintable"] = strconv.FormatBool(asset.Mintable)
		putAmount(attrs, "kFactor", asset.KFactor)
		putAmount(attrs, "marketCapUSD", asset.MarketCapUSD)
	}
	return newEvent(EventTypeSyntheticRegistered, attrs)
}

func NewRiskFactorUpdatedEvent(asset common.Address, factor *big.Int) *events.Event {
	attrs := map[string]string{"asset": asset.Hex()}
	putAmount(attrs, "factor", factor)
	return newEvent(EventTypeRiskFactorUpdated, attrs)
}

func NewOracleUpdatedEvent(asset, oracle common.Address) *events.Event {
	return newEvent(EventTypeOracleUpdated, map[string]string{
		"asset":  asset.Hex(),
		"oracle": oracle.Hex(),
	})
}

func NewMintableUpdatedEvent(asset common.Address, mintable bool) *events.Event {
	return newEvent(EventTypeMintableUpdated, map[string]string{
		"asset":    asset.Hex(),
		"mintable": strconv.FormatBool(mintable),
	})
}

func NewMarketCapUpdatedEvent(asset common.Address, capUSD *big.Int) *events.Event {
	attrs := map[string]string{"asset": asset.Hex()}
	putAmount(attrs, "marketCapUSD", capUSD)
	return newEvent(EventTypeMarketCapUpdated, attrs)
}

// NewCollateralDepositedEvent reports a deposit. underlying is non-nil only
// on the rebasing path, where amount carries the wrapped units credited.
func NewCollateralDepositedEvent(account, asset common.Address, amount, underlying *big.Int) *events.Event {
	attrs := map[string]string{
		"account": account.Hex(),
		"asset":   asset.Hex(),
	}
	putAmount(attrs, "amount", amount)
	putAmount(attrs, "underlying", underlying)
	return newEvent(EventTypeCollateralDeposited, attrs)
}

// NewCollateralWithdrawnEvent reports a withdrawal, mirroring the deposit
// payload.
func NewCollateralWithdrawnEvent(account, asset common.Address, amount, underlying *big.Int) *events.Event {
	attrs := map[string]string{
		"account": account.Hex(),
		"asset":   asset.Hex(),
	}
	putAmount(attrs, "amount", amount)
	putAmount(attrs, "underlying", underlying)
	return newEvent(EventTypeCollateralWithdrawn, attrs)
}

func NewDebtMintedEvent(account, asset common.Address, amount *big.Int) *events.Event {
	attrs := map[string]string{
		"account": account.Hex(),
		"asset":   asset.Hex(),
	}
	putAmount(attrs, "amount", amount)
	return newEvent(EventTypeDebtMinted, attrs)
}

func NewDebtBurnedEvent(account, asset common.Address, amount *big.Int) *events.Event {
	attrs := map[string]string{
		"account": account.Hex(),
		"asset":   asset.Hex(),
	}
	putAmount(attrs, "amount", amount)
	return newEvent(EventTypeDebtBurned, attrs)
}

// NewFeePaidEvent reports a single collateral seizure made to cover a
// protocol fee. One event is emitted per collateral asset touched.
func NewFeePaidEvent(account, asset common.Address, amount, valueUSD *big.Int) *events.Event {
	attrs := map[string]string{
		"account": account.Hex(),
		"asset":   asset.Hex(),
	}
	putAmount(attrs, "amount", amount)
	putAmount(attrs, "valueUSD", valueUSD)
	return newEvent(EventTypeFeePaid, attrs)
}

func NewLiquidationEvent(account, liquidator, repayAsset common.Address, repayAmount *big.Int, seizeAsset common.Address, seizedAmount *big.Int, keptDebt bool) *events.Event {
	attrs := map[string]string{
		"account":    account.Hex(),
		"liquidator": liquidator.Hex(),
		"repayAsset": repayAsset.Hex(),
		"seizeAsset": seizeAsset.Hex(),
		"keptDebt":   strconv.FormatBool(keptDebt),
	}
	putAmount(attrs, "repayAmount", repayAmount)
	putAmount(attrs, "seizedAmount", seizedAmount)
	return newEvent(EventTypeLiquidation, attrs)
}

// NewParameterUpdatedEvent reports a parameter change together with the full
// resulting parameter set so observers never need to reconstruct state.
func NewParameterUpdatedEvent(name, value string, params *ProtocolParams) *events.Event {
	attrs := map[string]string{"param": name}
	if value != "" {
		attrs["value"] = value
	}
	if params != nil {
		putAmount(attrs, "minCollateralRatio", params.MinCollateralRatio)
		putAmount(attrs, "liquidationIncentive", params.LiquidationIncentive)
		putAmount(attrs, "burnFee", params.BurnFee)
		putAmount(attrs, "minDebtValue", params.MinDebtValue)
		attrs["feeRecipient"] = params.FeeRecipient.Hex()
	}
	return newEvent(EventTypeParameterUpdated, attrs)
}

func NewOwnershipProposedEvent(owner, pending common.Address) *events.Event {
	return newEvent(EventTypeOwnershipProposed, map[string]string{
		"owner":   owner.Hex(),
		"pending": pending.Hex(),
	})
}

func NewOwnershipClaimedEvent(previous, owner common.Address) *events.Event {
	return newEvent(EventTypeOwnershipClaimed, map[string]string{
		"previous": previous.Hex(),
		"owner":    owner.Hex(),
	})
}

func NewTrustedCallerEvent(addr common.Address, trusted bool) *events.Event {
	return newEvent(EventTypeTrustedCaller, map[string]string{
		"address": addr.Hex(),
		"trusted": strconv.FormatBool(trusted),
	})
}
