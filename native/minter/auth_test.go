package minter

import (
	"errors"
	"testing"
)

func TestOwnershipHandover(t *testing.T) {
	env := newTestEnv(t)

	if err := env.engine.TransferOwnership(bob, alice); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-owner proposal: %v", err)
	}
	if err := env.engine.TransferOwnership(testOwner, addr(0)); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("zero proposal: %v", err)
	}

	if err := env.engine.TransferOwnership(testOwner, bob); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if env.engine.PendingOwner() != bob {
		t.Fatalf("pending owner not recorded")
	}
	// The proposal alone changes nothing.
	if env.engine.Owner() != testOwner {
		t.Fatalf("ownership moved before claim")
	}

	if err := env.engine.ClaimOwnership(alice); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("claim by stranger: %v", err)
	}
	if err := env.engine.ClaimOwnership(bob); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if env.engine.Owner() != bob || env.engine.PendingOwner() != (addr(0)) {
		t.Fatalf("handover incomplete: owner=%s pending=%s",
			env.engine.Owner().Hex(), env.engine.PendingOwner().Hex())
	}

	// The old owner loses the admin capability, the new one gains it.
	if err := env.engine.SetMinDebtValue(testOwner, wad(2)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("old owner still admin: %v", err)
	}
	if err := env.engine.SetMinDebtValue(bob, wad(2)); err != nil {
		t.Fatalf("new owner rejected: %v", err)
	}

	if len(env.capture.ByType(EventTypeOwnershipProposed)) != 1 ||
		len(env.capture.ByType(EventTypeOwnershipClaimed)) != 1 {
		t.Fatalf("missing ownership events")
	}
}

func TestClaimWithoutProposal(t *testing.T) {
	env := newTestEnv(t)
	if err := env.engine.ClaimOwnership(bob); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("claim without proposal: %v", err)
	}
}

func TestTrustedCallerToggle(t *testing.T) {
	env := newTestEnv(t)

	if err := env.engine.SetTrustedCaller(bob, bob, true); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-owner toggle: %v", err)
	}
	if err := env.engine.SetTrustedCaller(testOwner, addr(0), true); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("zero address toggle: %v", err)
	}

	if err := env.engine.SetTrustedCaller(testOwner, bob, true); err != nil {
		t.Fatalf("trust: %v", err)
	}
	if !env.engine.IsTrusted(bob) {
		t.Fatalf("caller not trusted after toggle")
	}

	if err := env.engine.SetTrustedCaller(testOwner, bob, false); err != nil {
		t.Fatalf("untrust: %v", err)
	}
	if env.engine.IsTrusted(bob) {
		t.Fatalf("caller still trusted after revoke")
	}
	// A revoked caller loses access immediately.
	env.fund(bob, oreToken, wad(1))
	if err := env.engine.Deposit(bob, alice, oreToken, wad(1)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("revoked caller deposit: %v", err)
	}

	if len(env.capture.ByType(EventTypeTrustedCaller)) != 2 {
		t.Fatalf("missing trusted caller events")
	}
}
