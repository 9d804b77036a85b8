package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barkeep/domain/entities"
)

// riggedHighLow deals a fixed first card and a prepared second card.
func riggedHighLow(first, second string) *HighLow {
	return &HighLow{
		PlayerID: 1,
		Wager:    50,
		First:    card(first),
		deck:     &Deck{cards: []Card{card(second)}},
	}
}

func TestHighLowResolve(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
		guess  Guess
		want   entities.GameOutcome
	}{
		{"higher guessed right", "5", "J", GuessHigher, entities.OutcomeWin},
		{"higher guessed wrong", "J", "5", GuessHigher, entities.OutcomeLoss},
		{"lower guessed right", "J", "5", GuessLower, entities.OutcomeWin},
		{"lower guessed wrong", "5", "J", GuessLower, entities.OutcomeLoss},
		{"ace beats king", "K", "A", GuessHigher, entities.OutcomeWin},
		{"equal rank pushes on higher", "8", "8", GuessHigher, entities.OutcomePush},
		{"equal rank pushes on lower", "8", "8", GuessLower, entities.OutcomePush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := riggedHighLow(tt.first, tt.second)
			outcome := g.Resolve(tt.guess)
			assert.Equal(t, tt.want, outcome)
			require.NotNil(t, g.Second)
			assert.Equal(t, tt.second, g.Second.Rank)
		})
	}
}

func TestHighLowDealsOneCardUp(t *testing.T) {
	g := NewHighLow(NewSeededRand(11), 1, 50)
	assert.NotEmpty(t, g.First.Rank)
	assert.Nil(t, g.Second)
}
