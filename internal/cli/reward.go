package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"cripes/internal/models"
)

type RewardCmd struct {
	Add     RewardAddCmd     `cmd:"" help:"Add a reward to the catalog."`
	List    RewardListCmd    `cmd:"" help:"List rewards."`
	Redeem  RewardRedeemCmd  `cmd:"" help:"Redeem a reward for XP."`
	History RewardHistoryCmd `cmd:"" help:"Show the redemption log."`
	Balance RewardBalanceCmd `cmd:"" help:"Show XP balance and level."`
	Delete  RewardDeleteCmd  `cmd:"" help:"Delete a reward."`
}

func findRewardByTitle(ctx *Context, title string) (models.Reward, error) {
	for _, r := range ctx.DB.Rewards() {
		if r.Title == title {
			return r, nil
		}
	}
	return models.Reward{}, fmt.Errorf("reward %q not found", title)
}

type RewardAddCmd struct {
	Title       string `arg:"" help:"Reward title."`
	Cost        int    `arg:"" help:"Cost in XP."`
	Description string `help:"Optional description." default:""`
}

func (c *RewardAddCmd) Run(ctx *Context) error {
	if _, err := findRewardByTitle(ctx, c.Title); err == nil {
		return fmt.Errorf("reward with title %q already exists", c.Title)
	}

	reward := models.Reward{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Description: c.Description,
		CostXP:      c.Cost,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := reward.Validate(); err != nil {
		return err
	}

	if err := ctx.DB.SaveReward(reward); err != nil {
		return err
	}

	fmt.Printf("Added reward: %s (%d XP)\n", c.Title, c.Cost)
	return nil
}

type RewardListCmd struct{}

func (c *RewardListCmd) Run(ctx *Context) error {
	rewards := ctx.DB.Rewards()
	if len(rewards) == 0 {
		fmt.Println("No rewards found.")
		return nil
	}

	balance := ctx.Ledger.Balance()
	fmt.Printf("Balance: %d XP\n\n", balance)
	for _, r := range rewards {
		status := ""
		if !r.Active {
			status = " [INACTIVE]"
		} else if r.CostXP > balance {
			status = " (locked)"
		}
		fmt.Printf("%-30s %4d XP%s\n", r.Title, r.CostXP, status)
	}
	return nil
}

type RewardRedeemCmd struct {
	Title string `arg:"" help:"Reward title to redeem."`
}

func (c *RewardRedeemCmd) Run(ctx *Context) error {
	reward, err := findRewardByTitle(ctx, c.Title)
	if err != nil {
		return err
	}

	redemption, err := ctx.Ledger.Redeem(reward.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Redeemed %q for %d XP. Remaining balance: %d XP\n", reward.Title, redemption.CostXP, ctx.Ledger.Balance())
	return nil
}

type RewardHistoryCmd struct{}

func (c *RewardHistoryCmd) Run(ctx *Context) error {
	redemptions := ctx.DB.Redemptions()
	if len(redemptions) == 0 {
		fmt.Println("No redemptions yet.")
		return nil
	}

	titles := make(map[string]string)
	for _, r := range ctx.DB.Rewards() {
		titles[r.ID] = r.Title
	}

	for _, r := range redemptions {
		title := titles[r.RewardID]
		if title == "" {
			title = "deleted reward"
		}
		fmt.Printf("%s  %-30s %4d XP\n", r.CreatedAt.Format("2006-01-02 15:04"), title, r.CostXP)
	}
	fmt.Printf("\nTotal spent: %d XP\n", ctx.Ledger.Spent())
	return nil
}

type RewardBalanceCmd struct{}

func (c *RewardBalanceCmd) Run(ctx *Context) error {
	fmt.Printf("Level %d\n", ctx.Ledger.Level())
	fmt.Printf("Earned:  %d XP (next level at %d XP)\n", ctx.Ledger.Earned(), ctx.Ledger.NextLevelXP())
	fmt.Printf("Spent:   %d XP\n", ctx.Ledger.Spent())
	fmt.Printf("Balance: %d XP\n", ctx.Ledger.Balance())
	return nil
}

type RewardDeleteCmd struct {
	Title string `arg:"" help:"Reward title to delete."`
}

func (c *RewardDeleteCmd) Run(ctx *Context) error {
	reward, err := findRewardByTitle(ctx, c.Title)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticSnapshot()

	if err := ctx.DB.DeleteReward(reward.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted reward: %s\n", reward.Title)
	fmt.Println("(Past redemptions keep their recorded cost)")
	return nil
}
