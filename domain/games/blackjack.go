package games

import (
	"fmt"

	"barkeep/domain/entities"
)

// BlackjackState is the lifecycle phase of a blackjack session.
type BlackjackState int

const (
	StateDealing BlackjackState = iota
	StatePlayerTurn
	StateOpponentTurn
	StateResolved
	StateClosed
)

func (s BlackjackState) String() string {
	switch s {
	case StateDealing:
		return "dealing"
	case StatePlayerTurn:
		return "player_turn"
	case StateOpponentTurn:
		return "opponent_turn"
	case StateResolved:
		return "resolved"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// BlackjackInput is a player action fed into the state machine.
type BlackjackInput int

const (
	InputHit BlackjackInput = iota
	InputStand
	// InputTimeout stands the current hand; an unresponsive player forfeits
	// the rest of their turn, not their wager.
	InputTimeout
)

// dealerStandsOn is the fixed solo-mode dealer policy.
const dealerStandsOn = 17

// BlackjackResult is the settled outcome per participant.
type BlackjackResult struct {
	PlayerOutcome   entities.GameOutcome
	OpponentOutcome entities.GameOutcome // PvP only
	Summary         string
}

// Blackjack is a single blackjack session, either versus the house dealer or
// player-versus-player. Transitions: Dealing -> PlayerTurn -> (OpponentTurn)
// -> Resolved -> Closed.
type Blackjack struct {
	PlayerID   int64
	OpponentID int64 // zero in solo mode
	Wager      int64

	Player   []Card
	Opponent []Card
	Dealer   []Card

	deck   *Deck
	state  BlackjackState
	result *BlackjackResult
}

// NewBlackjack deals a solo game against the dealer.
func NewBlackjack(rng Rand, playerID, wager int64) *Blackjack {
	g := &Blackjack{
		PlayerID: playerID,
		Wager:    wager,
		deck:     NewDeck(rng),
		state:    StateDealing,
	}
	g.Player = []Card{g.deck.Draw(), g.deck.Draw()}
	g.Dealer = []Card{g.deck.Draw(), g.deck.Draw()}
	g.state = StatePlayerTurn
	return g
}

// NewPvPBlackjack deals a two-player game; the challenger acts first.
func NewPvPBlackjack(rng Rand, playerID, opponentID, wager int64) *Blackjack {
	g := &Blackjack{
		PlayerID:   playerID,
		OpponentID: opponentID,
		Wager:      wager,
		deck:       NewDeck(rng),
		state:      StateDealing,
	}
	g.Player = []Card{g.deck.Draw(), g.deck.Draw()}
	g.Opponent = []Card{g.deck.Draw(), g.deck.Draw()}
	g.state = StatePlayerTurn
	return g
}

// PvP reports whether this is a player-versus-player session.
func (g *Blackjack) PvP() bool {
	return g.OpponentID != 0
}

// State returns the current lifecycle phase.
func (g *Blackjack) State() BlackjackState {
	return g.state
}

// CurrentTurnID returns whose input is awaited, or zero when none.
func (g *Blackjack) CurrentTurnID() int64 {
	switch g.state {
	case StatePlayerTurn:
		return g.PlayerID
	case StateOpponentTurn:
		return g.OpponentID
	default:
		return 0
	}
}

// Apply feeds one input into the state machine.
func (g *Blackjack) Apply(input BlackjackInput) error {
	switch g.state {
	case StatePlayerTurn:
		if input == InputHit {
			g.Player = append(g.Player, g.deck.Draw())
			if HandValue(g.Player) < 21 {
				return nil
			}
			// 21 or bust ends the turn automatically.
		}
		g.advanceFromPlayerTurn()
		return nil

	case StateOpponentTurn:
		if input == InputHit {
			g.Opponent = append(g.Opponent, g.deck.Draw())
			if HandValue(g.Opponent) < 21 {
				return nil
			}
		}
		g.resolve()
		return nil

	default:
		return fmt.Errorf("no input accepted in state %s: %w", g.state, entities.ErrExpired)
	}
}

func (g *Blackjack) advanceFromPlayerTurn() {
	if g.PvP() {
		g.state = StateOpponentTurn
		return
	}
	g.resolve()
}

// resolve plays out the dealer in solo mode and computes the outcome.
func (g *Blackjack) resolve() {
	if g.PvP() {
		g.result = g.resolvePvP()
	} else {
		for HandValue(g.Dealer) < dealerStandsOn {
			g.Dealer = append(g.Dealer, g.deck.Draw())
		}
		g.result = g.resolveSolo()
	}
	g.state = StateResolved
}

func (g *Blackjack) resolveSolo() *BlackjackResult {
	pv := HandValue(g.Player)
	dv := HandValue(g.Dealer)

	switch {
	case pv > 21:
		return &BlackjackResult{PlayerOutcome: entities.OutcomeLoss, Summary: "You busted. Dealer wins."}
	case dv > 21 || pv > dv:
		return &BlackjackResult{PlayerOutcome: entities.OutcomeWin, Summary: "You win!"}
	case dv > pv:
		return &BlackjackResult{PlayerOutcome: entities.OutcomeLoss, Summary: "Dealer wins."}
	default:
		return &BlackjackResult{PlayerOutcome: entities.OutcomePush, Summary: "Push."}
	}
}

func (g *Blackjack) resolvePvP() *BlackjackResult {
	pv := HandValue(g.Player)
	ov := HandValue(g.Opponent)

	switch {
	case pv > 21 && ov > 21:
		return &BlackjackResult{
			PlayerOutcome:   entities.OutcomePush,
			OpponentOutcome: entities.OutcomePush,
			Summary:         "Both busted. Push.",
		}
	case pv > 21, ov <= 21 && ov > pv:
		return &BlackjackResult{
			PlayerOutcome:   entities.OutcomeLoss,
			OpponentOutcome: entities.OutcomeWin,
			Summary:         "Challenged player wins!",
		}
	case ov > 21, pv > ov:
		return &BlackjackResult{
			PlayerOutcome:   entities.OutcomeWin,
			OpponentOutcome: entities.OutcomeLoss,
			Summary:         "Challenger wins!",
		}
	default:
		return &BlackjackResult{
			PlayerOutcome:   entities.OutcomePush,
			OpponentOutcome: entities.OutcomePush,
			Summary:         "Tie. Push.",
		}
	}
}

// Result returns the settled outcome, or nil before resolution.
func (g *Blackjack) Result() *BlackjackResult {
	return g.result
}

// Close moves the session to its terminal state.
func (g *Blackjack) Close() {
	g.state = StateClosed
}
