package stats

import (
	"barkeep/domain/interfaces"
)

// Feature handles the /stats, /leaderboard and /achievements commands.
type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewFeature creates the stats feature.
func NewFeature(uowFactory interfaces.UnitOfWorkFactory) *Feature {
	return &Feature{uowFactory: uowFactory}
}
