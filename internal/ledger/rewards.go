package ledger

import (
	"context"
	"errors"
)

// RewardKind names a minigame payout.
type RewardKind string

const (
	RewardCredits  RewardKind = "credits"
	RewardDiscount RewardKind = "discount"
)

// MinigameCreditReward is the payout of a won credits reward.
const MinigameCreditReward int64 = 1000

var ErrUnknownReward = errors.New("unknown reward kind")

// Reward describes what a grant produced.
type Reward struct {
	Kind    RewardKind `json:"kind"`
	Credits int64      `json:"credits,omitempty"`
}

// GrantCreditsReward pays out credits won in a minigame.
func (l *Ledger) GrantCreditsReward(ctx context.Context, amount int64) error {
	return l.AddCredits(ctx, amount)
}

// GrantDiscountReward arms the one-time discount.
func (l *Ledger) GrantDiscountReward() {
	l.ActivateOneTimeDiscount()
}

// GrantReward dispatches a minigame win to the matching hook.
func (l *Ledger) GrantReward(ctx context.Context, kind RewardKind) (Reward, error) {
	switch kind {
	case RewardCredits:
		if err := l.GrantCreditsReward(ctx, MinigameCreditReward); err != nil {
			return Reward{}, err
		}
		return Reward{Kind: kind, Credits: MinigameCreditReward}, nil
	case RewardDiscount:
		l.GrantDiscountReward()
		return Reward{Kind: kind}, nil
	default:
		return Reward{}, ErrUnknownReward
	}
}

// ActivateOneTimeDiscount sets the 50% override for the next checkout.
func (l *Ledger) ActivateOneTimeDiscount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acct.OneTimeDiscountActive = true
	l.log.Debug().Msg("one-time discount armed")
}

func (l *Ledger) ClearOneTimeDiscount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acct.OneTimeDiscountActive = false
}
