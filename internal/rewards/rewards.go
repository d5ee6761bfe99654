package rewards

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"cripes/internal/constants"
	"cripes/internal/models"
	"cripes/internal/storage"
)

// Ledger derives the XP balance from the completion history and the
// redemption log. Nothing is cached: both collections are small and the
// balance must always reflect the store.
type Ledger struct {
	db  *storage.DB
	now func() time.Time
}

func New(db *storage.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

func NewWithClock(db *storage.DB, now func() time.Time) *Ledger {
	return &Ledger{db: db, now: now}
}

// Earned sums XP over all completions: primary completions earn more
// than backup ones.
func (l *Ledger) Earned() int {
	earned := 0
	for _, c := range l.db.Completions() {
		switch c.Kind {
		case models.CompletionBackup:
			earned += constants.XPBackup
		default:
			earned += constants.XPPrimary
		}
	}
	return earned
}

// Spent sums the cost copied into each redemption record. Using the
// copied cost means later reward edits never rewrite history.
func (l *Ledger) Spent() int {
	spent := 0
	for _, r := range l.db.Redemptions() {
		spent += r.CostXP
	}
	return spent
}

// Balance is the spendable XP.
func (l *Ledger) Balance() int {
	return l.Earned() - l.Spent()
}

// Level is derived from lifetime earned XP, not the spendable balance,
// so redeeming rewards never demotes the user.
func (l *Ledger) Level() int {
	return 1 + l.Earned()/constants.XPPerLevel
}

// NextLevelXP is the lifetime-earned threshold for the next level.
func (l *Ledger) NextLevelXP() int {
	return l.Level() * constants.XPPerLevel
}

// Redeem spends balance on a reward and appends a redemption carrying a
// copy of the reward's current cost.
func (l *Ledger) Redeem(rewardID string) (models.Redemption, error) {
	reward, err := l.db.GetReward(rewardID)
	if err != nil {
		return models.Redemption{}, err
	}
	if !reward.Active {
		return models.Redemption{}, fmt.Errorf("reward %q is not active", reward.Title)
	}
	if balance := l.Balance(); balance < reward.CostXP {
		return models.Redemption{}, fmt.Errorf("not enough XP: need %d, have %d", reward.CostXP, balance)
	}

	redemption := models.Redemption{
		ID:        uuid.New().String(),
		RewardID:  reward.ID,
		CostXP:    reward.CostXP,
		CreatedAt: l.now(),
	}
	if err := l.db.AddRedemption(redemption); err != nil {
		return models.Redemption{}, err
	}
	return redemption, nil
}
