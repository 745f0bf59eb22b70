package minter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TokenLedger abstracts the fungible token layer the protocol moves value
// through. Collateral deposits and fee payments use Transfer; synthetic
// assets are created and destroyed through Mint and Burn, over which the
// protocol holds unilateral authority.
type TokenLedger interface {
	Transfer(token, from, to common.Address, amount *big.Int) error
	BalanceOf(token, account common.Address) *big.Int
	TotalSupply(token common.Address) *big.Int
	Mint(token, to common.Address, amount *big.Int) error
	Burn(token, from common.Address, amount *big.Int) error
	// Operator reports the address holding mint/burn authority over the
	// token. Synthetic registration cross-checks it against the protocol's
	// module address.
	Operator(token common.Address) common.Address
}
