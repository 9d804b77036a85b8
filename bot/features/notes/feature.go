package notes

import (
	"barkeep/domain/interfaces"
)

// Feature handles the /note command group: small per-user text notes.
type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// New creates the notes feature.
func New(uowFactory interfaces.UnitOfWorkFactory) *Feature {
	return &Feature{uowFactory: uowFactory}
}
