package common

import (
	"errors"
	"testing"
)

func TestGuardNilViewNeverBlocks(t *testing.T) {
	if err := Guard(nil, "mint"); err != nil {
		t.Fatalf("nil view: %v", err)
	}
	if err := Guard(Pauses{Mint: true}, ""); err != nil {
		t.Fatalf("empty action: %v", err)
	}
}

func TestGuardBlocksPausedAction(t *testing.T) {
	pauses := Pauses{Mint: true, Liquidate: true}
	if err := Guard(pauses, "mint"); !errors.Is(err, ErrActionPaused) {
		t.Fatalf("paused mint: %v", err)
	}
	if err := Guard(pauses, "liquidate"); !errors.Is(err, ErrActionPaused) {
		t.Fatalf("paused liquidate: %v", err)
	}
	if err := Guard(pauses, "deposit"); err != nil {
		t.Fatalf("unpaused deposit: %v", err)
	}
}

func TestPausesSwitches(t *testing.T) {
	cases := map[string]Pauses{
		"deposit":   {Deposit: true},
		"withdraw":  {Withdraw: true},
		"mint":      {Mint: true},
		"burn":      {Burn: true},
		"liquidate": {Liquidate: true},
	}
	for action, pauses := range cases {
		if !pauses.IsPaused(action) {
			t.Fatalf("%s switch not honoured", action)
		}
		if (Pauses{}).IsPaused(action) {
			t.Fatalf("%s paused on zero value", action)
		}
	}
	if (Pauses{Deposit: true}).IsPaused("unknown") {
		t.Fatalf("unknown action reported paused")
	}
}
