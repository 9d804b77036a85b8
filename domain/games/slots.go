package games

// Slot machine symbols. The wild joker substitutes for any base symbol.
const Wild = "🃏"

var slotSymbols = []string{"🍒", "🍋", "🔔", "⭐", "🍀", "7️⃣", Wild}

// basePayoutOrder lists base symbols from highest to lowest triple payout,
// used to pick which symbol a wild-assisted triple pays out as.
var basePayoutOrder = []string{"7️⃣", "🍀", "⭐", "🔔", "🍋", "🍒"}

var tripleMultipliers = map[string]int64{
	"7️⃣": 20,
	"🍀":  10,
	"⭐":  6,
	"🔔":  5,
	"🍋":  4,
	"🍒":  3,
	Wild: 25,
}

// pair payout and the chance a near-miss pair gets nudged into a triple.
const (
	pairMultiplier = 2
	nudgeChance    = 0.10
)

// SpinResult is the settled outcome of one spin.
type SpinResult struct {
	Reels      []string
	Multiplier int64 // 0 on a loss; winnings are wager * multiplier
	Label      string
	Nudged     bool
}

// Win reports whether the spin paid out.
func (r SpinResult) Win() bool {
	return r.Multiplier > 0
}

// Spin rolls three reels and scores them, applying the lucky-nudge upgrade
// to near-miss pairs.
func Spin(rng Rand) SpinResult {
	reels := make([]string, 3)
	for i := range reels {
		reels[i] = slotSymbols[rng.Intn(len(slotSymbols))]
	}

	result := score(reels)
	if result.Multiplier == pairMultiplier && rng.Float64() < nudgeChance {
		nudge(reels)
		result = score(reels)
		result.Nudged = true
	}
	return result
}

func score(reels []string) SpinResult {
	if reels[0] == Wild && reels[1] == Wild && reels[2] == Wild {
		return SpinResult{Reels: reels, Multiplier: tripleMultipliers[Wild], Label: "Jackpot"}
	}
	for _, sym := range basePayoutOrder {
		if countMatching(reels, sym) == 3 {
			mult := tripleMultipliers[sym]
			label := "Win"
			if mult >= 20 {
				label = "Jackpot"
			}
			return SpinResult{Reels: reels, Multiplier: mult, Label: label}
		}
	}
	if hasPair(reels) {
		return SpinResult{Reels: reels, Multiplier: pairMultiplier, Label: "Two of a kind"}
	}
	return SpinResult{Reels: reels, Label: "No match"}
}

// countMatching counts reels showing sym or a wild.
func countMatching(reels []string, sym string) int {
	n := 0
	for _, r := range reels {
		if r == sym || r == Wild {
			n++
		}
	}
	return n
}

func hasPair(reels []string) bool {
	for i := 0; i < len(reels); i++ {
		for j := i + 1; j < len(reels); j++ {
			if reels[i] == reels[j] || reels[i] == Wild || reels[j] == Wild {
				return true
			}
		}
	}
	return false
}

// nudge upgrades the best two-of-a-kind into a triple in place.
func nudge(reels []string) {
	target := basePayoutOrder[0]
	for _, sym := range basePayoutOrder {
		if countMatching(reels, sym) >= 2 {
			target = sym
			break
		}
	}
	for i, r := range reels {
		if r != target && r != Wild {
			reels[i] = target
			return
		}
	}
}
