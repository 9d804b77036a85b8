package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollDuelBounds(t *testing.T) {
	rng := NewSeededRand(3)
	for i := 0; i < 200; i++ {
		result := RollDuel(rng)
		require.NotEmpty(t, result.Rounds)
		require.LessOrEqual(t, len(result.Rounds), maxRerolls+1)

		for _, round := range result.Rounds {
			for _, die := range append(round.ChallengerDice[:], round.OpponentDice[:]...) {
				assert.GreaterOrEqual(t, die, 1)
				assert.LessOrEqual(t, die, 6)
			}
		}
	}
}

func TestRollDuelOnlyLastRoundDecides(t *testing.T) {
	rng := NewSeededRand(3)
	for i := 0; i < 200; i++ {
		result := RollDuel(rng)

		// Every round before the last was a tie.
		for _, round := range result.Rounds[:len(result.Rounds)-1] {
			assert.Equal(t, round.ChallengerSum(), round.OpponentSum())
		}

		last := result.Rounds[len(result.Rounds)-1]
		switch {
		case last.ChallengerSum() > last.OpponentSum():
			assert.True(t, result.ChallengerWins())
			assert.False(t, result.OpponentWins())
			assert.False(t, result.Push())
		case last.OpponentSum() > last.ChallengerSum():
			assert.True(t, result.OpponentWins())
			assert.False(t, result.ChallengerWins())
			assert.False(t, result.Push())
		default:
			assert.True(t, result.Push())
			assert.Equal(t, maxRerolls+1, len(result.Rounds), "a push only stands after all rerolls")
		}
	}
}

func TestDuelResultPushOnFullTie(t *testing.T) {
	result := DuelResult{Rounds: []DuelRound{
		{ChallengerDice: [2]int{3, 4}, OpponentDice: [2]int{2, 5}},
	}}
	assert.True(t, result.Push())

	result.Rounds = append(result.Rounds, DuelRound{
		ChallengerDice: [2]int{6, 6}, OpponentDice: [2]int{1, 1},
	})
	assert.True(t, result.ChallengerWins())
}
