package minter

import (
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// PriceQuote is a USD price observation in wad precision together with the
// timestamp reported by the upstream feed.
type PriceQuote struct {
	Value     *big.Int
	UpdatedAt time.Time
}

// Clone returns a deep copy of the quote to prevent accidental mutations.
func (q PriceQuote) Clone() PriceQuote {
	clone := PriceQuote{UpdatedAt: q.UpdatedAt}
	if q.Value != nil {
		clone.Value = new(big.Int).Set(q.Value)
	}
	return clone
}

// PriceOracle resolves the latest USD quote for a registered price feed. A
// zero-valued quote means the feed is unpriced; the valuation engine treats
// such assets as worthless rather than failing the enclosing operation.
type PriceOracle interface {
	LatestPrice(feed common.Address) (PriceQuote, error)
}

// StaticOracle is an in-memory price table used by tests and by the daemon's
// fixture mode. Unknown feeds resolve to a zero quote.
type StaticOracle struct {
	mu     sync.RWMutex
	quotes map[common.Address]PriceQuote
}

// NewStaticOracle constructs an empty oracle table.
func NewStaticOracle() *StaticOracle {
	return &StaticOracle{quotes: make(map[common.Address]PriceQuote)}
}

// SetPrice records the latest quote for a feed.
func (o *StaticOracle) SetPrice(feed common.Address, value *big.Int) {
	if o == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	quote := PriceQuote{UpdatedAt: time.Now()}
	if value != nil {
		quote.Value = new(big.Int).Set(value)
	}
	o.quotes[feed] = quote
}

// LatestPrice implements PriceOracle.
func (o *StaticOracle) LatestPrice(feed common.Address) (PriceQuote, error) {
	if o == nil {
		return PriceQuote{}, nil
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.quotes[feed].Clone(), nil
}
