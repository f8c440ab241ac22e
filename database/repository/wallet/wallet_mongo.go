package walletRepo

import (
	"context"
	"fmt"
	"time"

	"tripnest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWalletRepo implements WalletRepository using MongoDB.
type MongoWalletRepo struct {
	coll *mongo.Collection
}

// NewMongoWalletRepo creates a new WalletRepository on the given database handle.
func NewMongoWalletRepo(db *mongo.Database) *MongoWalletRepo {
	repo := &MongoWalletRepo{coll: db.Collection("vendor_wallets")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create wallet indexes: %v\n", err)
	}
	return repo
}

func (r *MongoWalletRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "vendorId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoWalletRepo) increment(ctx context.Context, vendorID string, fields bson.M) error {
	filter := bson.M{"vendorId": vendorID}
	update := bson.M{
		"$inc":         fields,
		"$set":         bson.M{"updatedAt": time.Now()},
		"$setOnInsert": bson.M{"vendorId": vendorID},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to update wallet for vendor %s: %w", vendorID, err)
	}
	return nil
}

// Credit adds amount to balance and totalEarnings in one increment.
func (r *MongoWalletRepo) Credit(ctx context.Context, vendorID string, amount float64) error {
	return r.increment(ctx, vendorID, bson.M{"balance": amount, "totalEarnings": amount})
}

// ApplyRefund removes amount from balance and tracks it under totalRefunds.
func (r *MongoWalletRepo) ApplyRefund(ctx context.Context, vendorID string, amount float64) error {
	return r.increment(ctx, vendorID, bson.M{"balance": -amount, "totalRefunds": amount})
}

// ApplyWithdrawal removes amount from balance and tracks it under totalWithdrawals.
func (r *MongoWalletRepo) ApplyWithdrawal(ctx context.Context, vendorID string, amount float64) error {
	return r.increment(ctx, vendorID, bson.M{"balance": -amount, "totalWithdrawals": amount})
}

// Get retrieves a vendor's wallet; a vendor with no movements yet gets a
// zero-valued wallet.
func (r *MongoWalletRepo) Get(ctx context.Context, vendorID string) (*models.VendorWallet, error) {
	var w models.VendorWallet
	if err := r.coll.FindOne(ctx, bson.M{"vendorId": vendorID}).Decode(&w); err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.VendorWallet{VendorID: vendorID}, nil
		}
		return nil, fmt.Errorf("failed to fetch wallet for vendor %s: %w", vendorID, err)
	}
	return &w, nil
}
