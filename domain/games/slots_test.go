package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreTriples(t *testing.T) {
	tests := []struct {
		name  string
		reels []string
		mult  int64
		label string
	}{
		{"triple sevens", []string{"7️⃣", "7️⃣", "7️⃣"}, 20, "Jackpot"},
		{"triple clovers", []string{"🍀", "🍀", "🍀"}, 10, "Win"},
		{"triple stars", []string{"⭐", "⭐", "⭐"}, 6, "Win"},
		{"triple bells", []string{"🔔", "🔔", "🔔"}, 5, "Win"},
		{"triple lemons", []string{"🍋", "🍋", "🍋"}, 4, "Win"},
		{"triple cherries", []string{"🍒", "🍒", "🍒"}, 3, "Win"},
		{"triple wilds", []string{Wild, Wild, Wild}, 25, "Jackpot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := score(tt.reels)
			assert.Equal(t, tt.mult, result.Multiplier)
			assert.Equal(t, tt.label, result.Label)
		})
	}
}

func TestScoreWildCompletesBestTriple(t *testing.T) {
	// The wild pays as the higher symbol when it could complete either.
	result := score([]string{"7️⃣", "7️⃣", Wild})
	assert.Equal(t, int64(20), result.Multiplier)

	result = score([]string{"🍒", Wild, "🍒"})
	assert.Equal(t, int64(3), result.Multiplier)
}

func TestScorePairAndMiss(t *testing.T) {
	result := score([]string{"🍒", "🍒", "🍋"})
	assert.Equal(t, int64(2), result.Multiplier)
	assert.Equal(t, "Two of a kind", result.Label)

	result = score([]string{"🍒", "🍋", "⭐"})
	assert.Equal(t, int64(0), result.Multiplier)
	assert.False(t, result.Win())
}

func TestNudgeUpgradesPairToTriple(t *testing.T) {
	reels := []string{"🔔", "🔔", "🍒"}
	nudge(reels)
	assert.Equal(t, []string{"🔔", "🔔", "🔔"}, reels)

	// With two candidate pairs the better-paying one is completed.
	reels = []string{"🍀", Wild, "🍒"}
	nudge(reels)
	result := score(reels)
	assert.Equal(t, int64(10), result.Multiplier)
}

func TestSpinTerminatesAndIsConsistent(t *testing.T) {
	rng := NewSeededRand(99)
	for i := 0; i < 500; i++ {
		result := Spin(rng)
		require.Len(t, result.Reels, 3)
		rescored := score(result.Reels)
		assert.Equal(t, rescored.Multiplier, result.Multiplier)
		if result.Nudged {
			assert.Greater(t, result.Multiplier, int64(pairMultiplier), "a nudge upgrades the pair payout")
		}
	}
}
