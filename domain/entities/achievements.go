package entities

import "fmt"

// Achievement names awarded by the game engine.
const (
	AchievementFirstBlood = "First Blood"
	AchievementBlackjack  = "Blackjack!"
	AchievementHighRoller = "High Roller (1k+)"
)

// HighRollerThreshold is the winning wager that earns High Roller.
const HighRollerThreshold = 1000

// WinMilestones are the win counts that earn milestone achievements.
var WinMilestones = []int64{5, 10, 25, 50, 100}

// MilestoneName formats the achievement name for a win milestone.
func MilestoneName(milestone int64) string {
	return fmt.Sprintf("Win Milestone %d", milestone)
}
