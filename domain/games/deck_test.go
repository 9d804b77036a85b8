package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	deck := NewDeck(NewSeededRand(1))
	assert.Equal(t, 52, deck.Remaining())

	seen := make(map[Card]bool)
	for deck.Remaining() > 0 {
		c := deck.Draw()
		assert.False(t, seen[c], "card %s drawn twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name string
		hand []Card
		want int
	}{
		{"number cards", []Card{{Rank: "2", Suit: "♠"}, {Rank: "9", Suit: "♥"}}, 11},
		{"face cards count ten", []Card{{Rank: "K", Suit: "♠"}, {Rank: "Q", Suit: "♥"}}, 20},
		{"ace counts eleven", []Card{{Rank: "A", Suit: "♠"}, {Rank: "6", Suit: "♥"}}, 17},
		{"natural", []Card{{Rank: "A", Suit: "♠"}, {Rank: "K", Suit: "♥"}}, 21},
		{"ace demotes to avoid bust", []Card{{Rank: "A", Suit: "♠"}, {Rank: "9", Suit: "♥"}, {Rank: "5", Suit: "♦"}}, 15},
		{"both aces demote", []Card{{Rank: "A", Suit: "♠"}, {Rank: "A", Suit: "♥"}, {Rank: "K", Suit: "♦"}, {Rank: "9", Suit: "♣"}}, 21},
		{"bust stays bust", []Card{{Rank: "K", Suit: "♠"}, {Rank: "Q", Suit: "♥"}, {Rank: "5", Suit: "♦"}}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandValue(tt.hand))
		})
	}
}

func TestIsNatural(t *testing.T) {
	assert.True(t, IsNatural([]Card{{Rank: "A", Suit: "♠"}, {Rank: "J", Suit: "♥"}}))
	assert.False(t, IsNatural([]Card{{Rank: "A", Suit: "♠"}, {Rank: "9", Suit: "♥"}}))
	// A drawn-to 21 is not a natural.
	assert.False(t, IsNatural([]Card{{Rank: "7", Suit: "♠"}, {Rank: "7", Suit: "♥"}, {Rank: "7", Suit: "♦"}}))
}

func TestRankValueAceHigh(t *testing.T) {
	ace := Card{Rank: "A", Suit: "♠"}
	king := Card{Rank: "K", Suit: "♥"}
	two := Card{Rank: "2", Suit: "♦"}

	assert.Greater(t, RankValue(ace), RankValue(king))
	assert.Greater(t, RankValue(king), RankValue(two))
}

func TestFormatHand(t *testing.T) {
	hand := []Card{{Rank: "A", Suit: "♠"}, {Rank: "10", Suit: "♥"}}
	assert.Equal(t, "A♠ 10♥", FormatHand(hand))
}
