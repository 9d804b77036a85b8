package games

import "barkeep/domain/entities"

// Guess is the player's call in a high/low round.
type Guess int

const (
	GuessHigher Guess = iota
	GuessLower
)

// HighLow is a single high/low round: one card up, guess the next.
type HighLow struct {
	PlayerID int64
	Wager    int64
	First    Card

	deck   *Deck
	Second *Card
}

// NewHighLow deals the face-up card for a round.
func NewHighLow(rng Rand, playerID, wager int64) *HighLow {
	deck := NewDeck(rng)
	first := deck.Draw()
	return &HighLow{
		PlayerID: playerID,
		Wager:    wager,
		First:    first,
		deck:     deck,
	}
}

// Resolve draws the second card and scores the guess. Equal ranks push.
func (g *HighLow) Resolve(guess Guess) entities.GameOutcome {
	second := g.deck.Draw()
	g.Second = &second

	fv := RankValue(g.First)
	sv := RankValue(second)
	if fv == sv {
		return entities.OutcomePush
	}

	higher := sv > fv
	if (higher && guess == GuessHigher) || (!higher && guess == GuessLower) {
		return entities.OutcomeWin
	}
	return entities.OutcomeLoss
}
