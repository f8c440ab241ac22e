package userRepo

import (
	"context"
	"fmt"

	"tripnest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	userColl   *mongo.Collection
	vendorColl *mongo.Collection
}

// NewMongoUserRepo creates a new UserRepository on the given database handle.
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{
		userColl:   db.Collection("users"),
		vendorColl: db.Collection("vendors"),
	}
}

// GetUserByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.userColl.FindOne(ctx, bson.M{"id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &u, nil
}

// GetVendorByID retrieves a vendor by its unique ID.
func (r *MongoUserRepo) GetVendorByID(ctx context.Context, id string) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.vendorColl.FindOne(ctx, bson.M{"id": id}).Decode(&v); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch vendor with id %s: %w", id, err)
	}
	return &v, nil
}
