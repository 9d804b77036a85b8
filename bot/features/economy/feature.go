package economy

import (
	"barkeep/domain/games"
	"barkeep/domain/interfaces"
)

// Feature handles the /daily, /work and /pay commands.
type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
	rng        games.Rand
}

// New creates the economy feature.
func New(uowFactory interfaces.UnitOfWorkFactory, rng games.Rand) *Feature {
	return &Feature{uowFactory: uowFactory, rng: rng}
}
