package models

import (
	"fmt"
	"time"
)

// Reward is a point-cost catalog entry users can redeem earned XP for.
type Reward struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CostXP      int       `json:"costXp"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r *Reward) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("reward title cannot be empty")
	}
	if r.CostXP < 1 {
		return fmt.Errorf("reward cost must be at least 1 XP")
	}
	return nil
}

// Redemption logs a reward redemption. CostXP is copied from the reward
// at redemption time so later reward edits do not rewrite history.
type Redemption struct {
	ID        string    `json:"id"`
	RewardID  string    `json:"rewardId"`
	CostXP    int       `json:"costXp"`
	CreatedAt time.Time `json:"createdAt"`
}
