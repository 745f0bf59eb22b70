package bank

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger is an in-memory fungible token book. Each token tracks per-account
// balances, a total supply, and a single operator address holding mint/burn
// authority. It backs the protocol engine in tests and in the daemon's
// fixture mode.
type Ledger struct {
	mu        sync.RWMutex
	balances  map[common.Address]map[common.Address]*big.Int
	supplies  map[common.Address]*big.Int
	operators map[common.Address]common.Address
}

// NewLedger constructs an empty token ledger.
func NewLedger() *Ledger {
	return &Ledger{
		balances:  make(map[common.Address]map[common.Address]*big.Int),
		supplies:  make(map[common.Address]*big.Int),
		operators: make(map[common.Address]common.Address),
	}
}

// SetOperator assigns mint/burn authority for a token.
func (l *Ledger) SetOperator(token, operator common.Address) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.operators[token] = operator
}

// Operator returns the address holding mint/burn authority for the token.
func (l *Ledger) Operator(token common.Address) common.Address {
	if l == nil {
		return common.Address{}
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.operators[token]
}

// Credit adds balance out of thin air without touching supply accounting.
// Test fixtures use it to seed external token holdings.
func (l *Ledger) Credit(token, account common.Address, amount *big.Int) {
	if l == nil || amount == nil || amount.Sign() <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(token, account, amount)
	l.addSupply(token, amount)
}

func (l *Ledger) credit(token, account common.Address, amount *big.Int) {
	book, ok := l.balances[token]
	if !ok {
		book = make(map[common.Address]*big.Int)
		l.balances[token] = book
	}
	current, ok := book[account]
	if !ok {
		current = big.NewInt(0)
	}
	book[account] = new(big.Int).Add(current, amount)
}

func (l *Ledger) debit(token, account common.Address, amount *big.Int) error {
	book := l.balances[token]
	current := big.NewInt(0)
	if book != nil && book[account] != nil {
		current = book[account]
	}
	if current.Cmp(amount) < 0 {
		return fmt.Errorf("bank: insufficient balance for %s", account.Hex())
	}
	book[account] = new(big.Int).Sub(current, amount)
	return nil
}

func (l *Ledger) addSupply(token common.Address, amount *big.Int) {
	supply, ok := l.supplies[token]
	if !ok {
		supply = big.NewInt(0)
	}
	l.supplies[token] = new(big.Int).Add(supply, amount)
}

// Transfer moves amount between accounts, failing when the source balance is
// insufficient.
func (l *Ledger) Transfer(token, from, to common.Address, amount *big.Int) error {
	if l == nil {
		return fmt.Errorf("bank: ledger not initialised")
	}
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("bank: amount must not be negative")
	}
	if amount.Sign() == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.debit(token, from, amount); err != nil {
		return err
	}
	l.credit(token, to, amount)
	return nil
}

// BalanceOf returns the account's balance, zero for unknown accounts.
func (l *Ledger) BalanceOf(token, account common.Address) *big.Int {
	if l == nil {
		return big.NewInt(0)
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	book := l.balances[token]
	if book == nil || book[account] == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(book[account])
}

// TotalSupply returns the token's outstanding supply.
func (l *Ledger) TotalSupply(token common.Address) *big.Int {
	if l == nil {
		return big.NewInt(0)
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	supply := l.supplies[token]
	if supply == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(supply)
}

// Mint creates new supply for the account.
func (l *Ledger) Mint(token, to common.Address, amount *big.Int) error {
	if l == nil {
		return fmt.Errorf("bank: ledger not initialised")
	}
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("bank: mint amount must be positive")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(token, to, amount)
	l.addSupply(token, amount)
	return nil
}

// Burn destroys supply held by the account.
func (l *Ledger) Burn(token, from common.Address, amount *big.Int) error {
	if l == nil {
		return fmt.Errorf("bank: ledger not initialised")
	}
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("bank: burn amount must be positive")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.debit(token, from, amount); err != nil {
		return err
	}
	supply := l.supplies[token]
	if supply == nil || supply.Cmp(amount) < 0 {
		return fmt.Errorf("bank: burn exceeds supply for %s", token.Hex())
	}
	l.supplies[token] = new(big.Int).Sub(supply, amount)
	return nil
}
