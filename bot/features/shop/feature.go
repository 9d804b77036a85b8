package shop

import (
	"barkeep/domain/interfaces"
	"barkeep/infrastructure"
)

// Feature handles the /shop command group: catalog, trades, inventory and
// price lookups.
type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
	prices     *infrastructure.PriceClient
}

// NewFeature creates the shop feature.
func NewFeature(uowFactory interfaces.UnitOfWorkFactory, prices *infrastructure.PriceClient) *Feature {
	return &Feature{uowFactory: uowFactory, prices: prices}
}
