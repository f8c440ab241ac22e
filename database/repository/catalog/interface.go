package catalogRepo

import (
	"context"

	"tripnest/models"
)

// CatalogRepository is the read-only boundary onto the package catalog.
// Lookups return nil (no error) when the document is absent.
type CatalogRepository interface {
	GetPackage(ctx context.Context, id string) (*models.Package, error)
	GetRoomType(ctx context.Context, id string) (*models.RoomType, error)
	GetExtraService(ctx context.Context, id string) (*models.ExtraService, error)
}
