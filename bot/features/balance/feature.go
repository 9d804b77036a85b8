package balance

import (
	"barkeep/domain/interfaces"
)

// Feature handles the /balance command.
type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// New creates the balance feature.
func New(uowFactory interfaces.UnitOfWorkFactory) *Feature {
	return &Feature{uowFactory: uowFactory}
}
