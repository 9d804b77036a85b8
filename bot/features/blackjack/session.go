package blackjack

import (
	"sync"

	"barkeep/domain/entities"
	"barkeep/domain/games"
)

// tableState is the per-session payload tracked in the registry: the game
// itself plus everything needed to render and settle it later. The mutex
// serializes game mutation between button handlers and the expiry timer,
// which run on different goroutines.
type tableState struct {
	mu   sync.Mutex
	Game *games.Blackjack

	Wager        int64
	PlayerName   string
	OpponentName string

	// Accepted flips when a PvP challenge is taken; solo tables start accepted.
	Accepted bool

	ChannelID string
	MessageID string
}

// applyInput feeds one player action into the hand. The turn is re-checked
// under the lock so a late press cannot mutate out of turn.
func (t *tableState) applyInput(userID int64, input games.BlackjackInput) (resolved bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if userID != t.Game.CurrentTurnID() {
		return false, entities.NewValidationError("it's not your turn")
	}
	if err := t.Game.Apply(input); err != nil {
		return false, err
	}
	return t.Game.State() == games.StateResolved, nil
}

// finishByTimeout stands out any remaining turns. Returns true when the hand
// ended up resolved and can be settled.
func (t *tableState) finishByTimeout() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for t.Game.State() == games.StatePlayerTurn || t.Game.State() == games.StateOpponentTurn {
		if t.Game.Apply(games.InputTimeout) != nil {
			return false
		}
	}
	return t.Game.State() == games.StateResolved
}

func (t *tableState) accept() {
	t.mu.Lock()
	t.Accepted = true
	t.mu.Unlock()
}

func (t *tableState) accepted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Accepted
}

func newSoloTable(game *games.Blackjack, playerName, channelID string) *tableState {
	return &tableState{
		Game:       game,
		Wager:      game.Wager,
		PlayerName: playerName,
		Accepted:   true,
		ChannelID:  channelID,
	}
}

func newChallengeTable(game *games.Blackjack, playerName, opponentName, channelID string) *tableState {
	return &tableState{
		Game:         game,
		Wager:        game.Wager,
		PlayerName:   playerName,
		OpponentName: opponentName,
		ChannelID:    channelID,
	}
}
