package minter

import "github.com/ethereum/go-ethereum/common"

// Ownership follows a two-step propose/claim handover: TransferOwnership
// records a pending owner, and only that address can finalise the transfer.
// Trusted callers form an explicit allow-list permitted to act on any
// account's position.

// Owner returns the current admin address.
func (e *Engine) Owner() common.Address {
	if e == nil {
		return common.Address{}
	}
	return e.owner
}

// PendingOwner returns the proposed admin address, zero when no transfer is
// in flight.
func (e *Engine) PendingOwner() common.Address {
	if e == nil {
		return common.Address{}
	}
	return e.pendingOwner
}

// TransferOwnership proposes a new admin. The handover only takes effect
// once the proposed owner claims it.
func (e *Engine) TransferOwnership(caller, newOwner common.Address) error {
	if e == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrUnauthorized
	}
	if newOwner == (common.Address{}) {
		return ErrInvalidAddress
	}
	e.pendingOwner = newOwner
	e.emit(NewOwnershipProposedEvent(e.owner, newOwner))
	return nil
}

// ClaimOwnership finalises a proposed handover. The pending slot resets on
// claim.
func (e *Engine) ClaimOwnership(caller common.Address) error {
	if e == nil {
		return ErrNilState
	}
	if e.pendingOwner == (common.Address{}) || caller != e.pendingOwner {
		return ErrUnauthorized
	}
	previous := e.owner
	e.owner = e.pendingOwner
	e.pendingOwner = common.Address{}
	e.emit(NewOwnershipClaimedEvent(previous, e.owner))
	return nil
}

// SetTrustedCaller toggles an address on the trusted allow-list.
func (e *Engine) SetTrustedCaller(caller, addr common.Address, trusted bool) error {
	if e == nil {
		return ErrNilState
	}
	if caller != e.owner {
		return ErrUnauthorized
	}
	if addr == (common.Address{}) {
		return ErrInvalidAddress
	}
	if trusted {
		e.trusted[addr] = true
	} else {
		delete(e.trusted, addr)
	}
	e.emit(NewTrustedCallerEvent(addr, trusted))
	return nil
}

// IsTrusted reports whether the address may act on behalf of any account.
func (e *Engine) IsTrusted(addr common.Address) bool {
	if e == nil {
		return false
	}
	return e.trusted[addr]
}
