package slots

import (
	"barkeep/domain/games"
	"barkeep/domain/interfaces"
)

// Feature handles the /slots command. Spins resolve immediately; there is no
// session to track.
type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
	rng        games.Rand
}

// New creates the slots feature.
func New(uowFactory interfaces.UnitOfWorkFactory, rng games.Rand) *Feature {
	return &Feature{uowFactory: uowFactory, rng: rng}
}
