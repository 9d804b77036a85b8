package store

import (
	"context"
	"strings"

	"barkeep/domain/entities"
)

// shopRepository serves the static catalog. Per-user inventories live on the
// user accounts, so nothing here touches the document.
type shopRepository struct{}

func (r *shopRepository) Catalog(ctx context.Context) ([]entities.ShopItem, error) {
	return entities.DefaultCatalog(), nil
}

func (r *shopRepository) GetItem(ctx context.Context, name string) (*entities.ShopItem, error) {
	for _, item := range entities.DefaultCatalog() {
		if strings.EqualFold(item.Name, name) {
			it := item
			return &it, nil
		}
	}
	return nil, entities.ErrNotFound
}
