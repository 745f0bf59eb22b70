package minter

import "github.com/ethereum/go-ethereum/common"

// State is the persistence boundary for the minter module. Implementations
// must return deep copies from every getter so an aborted operation cannot
// leave partially mutated records behind; the engine only persists through
// the Put methods once an operation has fully validated.
//
// Getters return (nil, nil) for records that do not exist.
type State interface {
	GetCollateralAsset(asset common.Address) (*CollateralAsset, error)
	PutCollateralAsset(asset *CollateralAsset) error
	CollateralAssets() ([]common.Address, error)

	GetSyntheticAsset(asset common.Address) (*SyntheticAsset, error)
	PutSyntheticAsset(asset *SyntheticAsset) error
	SyntheticAssets() ([]common.Address, error)

	// SymbolOwner resolves a synthetic symbol to the asset that registered
	// it, reporting false when the symbol is unused.
	SymbolOwner(symbol string) (common.Address, bool, error)
	PutSymbol(symbol string, asset common.Address) error

	GetPosition(account common.Address) (*Position, error)
	PutPosition(position *Position) error

	GetWrapState(asset common.Address) (*WrapState, error)
	PutWrapState(state *WrapState) error

	GetParams() (*ProtocolParams, error)
	PutParams(params *ProtocolParams) error
}
