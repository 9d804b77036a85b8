package games

import "strings"

// Card is a playing card from a standard 52-card deck.
type Card struct {
	Rank string
	Suit string
}

func (c Card) String() string {
	return c.Rank + c.Suit
}

var (
	suits = []string{"♠", "♥", "♦", "♣"}
	ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

	// rankOrder gives the high/low comparison order, ace high.
	rankOrder = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

// Deck is a shuffled pile of cards drawn from the top.
type Deck struct {
	cards []Card
}

// NewDeck builds a full 52-card deck shuffled with the given source.
func NewDeck(rng Rand) *Deck {
	cards := make([]Card, 0, 52)
	for _, s := range suits {
		for _, r := range ranks {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// Draw removes and returns the top card. Panics on an empty deck; a 52-card
// deck cannot be exhausted by any supported game.
func (d *Deck) Draw() Card {
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card
}

// Remaining returns the number of undrawn cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// HandValue computes the blackjack value of a hand. Aces count 11 and demote
// to 1 one at a time while the total is over 21, so a hand totalling 22 or
// more after demotion is always a bust.
func HandValue(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		switch c.Rank {
		case "A":
			total += 11
			aces++
		case "K", "Q", "J", "10":
			total += 10
		default:
			// Ranks 2-9 are single digits.
			total += int(c.Rank[0] - '0')
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsNatural reports a two-card 21.
func IsNatural(hand []Card) bool {
	return len(hand) == 2 && HandValue(hand) == 21
}

// IsBust reports a hand value over 21.
func IsBust(hand []Card) bool {
	return HandValue(hand) > 21
}

// RankValue returns the high/low comparison rank of a card, ace high.
func RankValue(c Card) int {
	for i, r := range rankOrder {
		if r == c.Rank {
			return i
		}
	}
	return -1
}

// FormatHand renders a hand like "A♠ 10♥ (=21)".
func FormatHand(hand []Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
