package reminders

import (
	"barkeep/domain/interfaces"
)

// Feature handles the /remind command group. Delivery happens in the
// reminder sweep worker; the feature only manages the schedule.
type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// New creates the reminders feature.
func New(uowFactory interfaces.UnitOfWorkFactory) *Feature {
	return &Feature{uowFactory: uowFactory}
}
