package blackjack

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barkeep/domain/games"
)

func TestApplyInputRejectsOutOfTurn(t *testing.T) {
	game := games.NewBlackjack(games.NewSeededRand(1), 1, 100)
	state := newSoloTable(game, "alice", "chan")

	_, err := state.applyInput(999, games.InputHit)
	assert.Error(t, err)
	assert.Equal(t, games.StatePlayerTurn, game.State())
	assert.Len(t, game.Player, 2, "a rejected input must not draw a card")
}

func TestFinishByTimeoutStandsRemainingTurns(t *testing.T) {
	game := games.NewPvPBlackjack(games.NewSeededRand(2), 1, 2, 100)
	state := newChallengeTable(game, "alice", "bob", "chan")
	state.accept()
	require.True(t, state.accepted())

	require.True(t, state.finishByTimeout())
	assert.Equal(t, games.StateResolved, game.State())
	require.NotNil(t, game.Result())
}

func TestTimeoutRacingInputResolvesCleanly(t *testing.T) {
	// A button press and the expiry timer may hit the same table from
	// different goroutines; serialized through the table lock, the hand must
	// always end resolved with a consistent result.
	for seed := int64(0); seed < 50; seed++ {
		game := games.NewBlackjack(games.NewSeededRand(seed), 1, 100)
		state := newSoloTable(game, "alice", "chan")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for {
				resolved, err := state.applyInput(1, games.InputHit)
				if resolved || err != nil {
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			state.finishByTimeout()
		}()
		wg.Wait()

		assert.Equal(t, games.StateResolved, game.State())
		require.NotNil(t, game.Result())
		assert.LessOrEqual(t, games.HandValue(game.Dealer), 26, "dealer draws once past 16 at most")
	}
}
