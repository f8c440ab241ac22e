package catalogRepo

import (
	"context"
	"fmt"

	"tripnest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	packageColl *mongo.Collection
	roomColl    *mongo.Collection
	extraColl   *mongo.Collection
}

// NewMongoCatalogRepo creates a new CatalogRepository on the given database handle.
func NewMongoCatalogRepo(db *mongo.Database) *MongoCatalogRepo {
	return &MongoCatalogRepo{
		packageColl: db.Collection("packages"),
		roomColl:    db.Collection("room_types"),
		extraColl:   db.Collection("extra_services"),
	}
}

// GetPackage retrieves a package by id, skipping tombstones.
func (r *MongoCatalogRepo) GetPackage(ctx context.Context, id string) (*models.Package, error) {
	var p models.Package
	filter := bson.M{"id": id, "deletedAt": bson.M{"$exists": false}}
	if err := r.packageColl.FindOne(ctx, filter).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch package %s: %w", id, err)
	}
	return &p, nil
}

// GetRoomType retrieves a room type by id, skipping tombstones.
func (r *MongoCatalogRepo) GetRoomType(ctx context.Context, id string) (*models.RoomType, error) {
	var rt models.RoomType
	filter := bson.M{"id": id, "deletedAt": bson.M{"$exists": false}}
	if err := r.roomColl.FindOne(ctx, filter).Decode(&rt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch room type %s: %w", id, err)
	}
	return &rt, nil
}

// GetExtraService retrieves an extra service by id, skipping tombstones.
func (r *MongoCatalogRepo) GetExtraService(ctx context.Context, id string) (*models.ExtraService, error) {
	var es models.ExtraService
	filter := bson.M{"id": id, "deletedAt": bson.M{"$exists": false}}
	if err := r.extraColl.FindOne(ctx, filter).Decode(&es); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch extra service %s: %w", id, err)
	}
	return &es, nil
}
