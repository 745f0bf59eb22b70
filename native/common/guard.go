package common

import "errors"

// ErrActionPaused is returned when a guarded protocol action is currently
// disabled by governance.
var ErrActionPaused = errors.New("action paused")

// PauseView reports whether a named protocol action is paused.
type PauseView interface {
	IsPaused(action string) bool
}

// Guard checks the pause switch for the supplied action. A nil view or empty
// action never blocks.
func Guard(p PauseView, action string) error {
	if p == nil || action == "" {
		return nil
	}
	if p.IsPaused(action) {
		return ErrActionPaused
	}
	return nil
}

// Pauses is a static PauseView backed by per-action switches.
type Pauses struct {
	Deposit   bool
	Withdraw  bool
	Mint      bool
	Burn      bool
	Liquidate bool
}

// IsPaused implements PauseView.
func (p Pauses) IsPaused(action string) bool {
	switch action {
	case "deposit":
		return p.Deposit
	case "withdraw":
		return p.Withdraw
	case "mint":
		return p.Mint
	case "burn":
		return p.Burn
	case "liquidate":
		return p.Liquidate
	default:
		return false
	}
}
