package games

// maxRerolls bounds tie-breaking in a dice duel; a tie on the final roll
// stands as a push.
const maxRerolls = 3

// DuelRound is one 2d6-versus-2d6 roll.
type DuelRound struct {
	ChallengerDice [2]int
	OpponentDice   [2]int
}

// ChallengerSum returns the challenger's pip total for the round.
func (r DuelRound) ChallengerSum() int {
	return r.ChallengerDice[0] + r.ChallengerDice[1]
}

// OpponentSum returns the opponent's pip total for the round.
func (r DuelRound) OpponentSum() int {
	return r.OpponentDice[0] + r.OpponentDice[1]
}

// DuelResult holds every rolled round; the last round decides the duel.
type DuelResult struct {
	Rounds []DuelRound
}

// ChallengerWins reports whether the challenger took the final round.
func (d DuelResult) ChallengerWins() bool {
	last := d.Rounds[len(d.Rounds)-1]
	return last.ChallengerSum() > last.OpponentSum()
}

// OpponentWins reports whether the opponent took the final round.
func (d DuelResult) OpponentWins() bool {
	last := d.Rounds[len(d.Rounds)-1]
	return last.OpponentSum() > last.ChallengerSum()
}

// Push reports a duel that stayed tied through every reroll.
func (d DuelResult) Push() bool {
	return !d.ChallengerWins() && !d.OpponentWins()
}

// RollDuel plays a dice duel: both sides roll 2d6, rerolling ties up to
// maxRerolls times.
func RollDuel(rng Rand) DuelResult {
	roll := func() [2]int {
		return [2]int{rng.Intn(6) + 1, rng.Intn(6) + 1}
	}

	var result DuelResult
	for i := 0; i <= maxRerolls; i++ {
		round := DuelRound{ChallengerDice: roll(), OpponentDice: roll()}
		result.Rounds = append(result.Rounds, round)
		if round.ChallengerSum() != round.OpponentSum() {
			break
		}
	}
	return result
}
