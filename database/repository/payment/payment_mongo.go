package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"tripnest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll       *mongo.Collection
	refundColl *mongo.Collection
}

// NewMongoPaymentRepo creates a new PaymentRepository on the given database handle.
func NewMongoPaymentRepo(db *mongo.Database) *MongoPaymentRepo {
	repo := &MongoPaymentRepo{
		coll:       db.Collection("payment_transactions"),
		refundColl: db.Collection("refund_transactions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create payment indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	ledgerIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}, {Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, ledgerIndexes); err != nil {
		return fmt.Errorf("failed to create ledger indexes: %w", err)
	}

	refundIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}},
	}
	if _, err := r.refundColl.Indexes().CreateMany(ctx, refundIndexes); err != nil {
		return fmt.Errorf("failed to create refund indexes: %w", err)
	}
	return nil
}

// Insert appends a new ledger row. The unique reference index rejects a
// second row for the same reference.
func (r *MongoPaymentRepo) Insert(ctx context.Context, tx *models.PaymentTransaction) error {
	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, tx); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("ledger row %s already exists: %w", tx.Reference, err)
		}
		return fmt.Errorf("failed to insert ledger row %s: %w", tx.Reference, err)
	}
	return nil
}

// GetByReference retrieves a ledger row; nil when absent.
func (r *MongoPaymentRepo) GetByReference(ctx context.Context, reference string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	if err := r.coll.FindOne(ctx, bson.M{"reference": reference}).Decode(&tx); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch ledger row %s: %w", reference, err)
	}
	return &tx, nil
}

// GetByBookingAndType retrieves the newest ledger row of a type for a booking.
func (r *MongoPaymentRepo) GetByBookingAndType(ctx context.Context, bookingID, txType string) (*models.PaymentTransaction, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	filter := bson.M{"bookingId": bookingID, "type": txType}

	var tx models.PaymentTransaction
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&tx); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch %s ledger row for booking %s: %w", txType, bookingID, err)
	}
	return &tx, nil
}

// TransitionStatus performs a compare-and-set on the row status.
func (r *MongoPaymentRepo) TransitionStatus(ctx context.Context, reference, from, to string) (bool, error) {
	filter := bson.M{"reference": reference, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to transition ledger row %s to %s: %w", reference, to, err)
	}
	return result.MatchedCount == 1, nil
}

// SetFlowState records the gateway orchestration progress on the row.
func (r *MongoPaymentRepo) SetFlowState(ctx context.Context, reference, state string) error {
	update := bson.M{"$set": bson.M{"flowState": state, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"reference": reference}, update)
	if err != nil {
		return fmt.Errorf("failed to set flow state on %s: %w", reference, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("ledger row %s not found", reference)
	}
	return nil
}

// ListPendingByType returns pending rows of a type, oldest first, for
// the reconciliation sweep and admin review.
func (r *MongoPaymentRepo) ListPendingByType(ctx context.Context, txType string) ([]models.PaymentTransaction, error) {
	filter := bson.M{"type": txType, "status": models.TransactionStatusPending}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending %s rows: %w", txType, err)
	}
	defer cursor.Close(ctx)

	var rows []models.PaymentTransaction
	for cursor.Next(ctx) {
		var tx models.PaymentTransaction
		if err := cursor.Decode(&tx); err != nil {
			return nil, fmt.Errorf("failed to decode ledger row: %w", err)
		}
		rows = append(rows, tx)
	}
	return rows, nil
}

// InsertRefundDetail stores the 1:1 refund detail document.
func (r *MongoPaymentRepo) InsertRefundDetail(ctx context.Context, d *models.RefundTransaction) error {
	if _, err := r.refundColl.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("failed to insert refund detail %s: %w", d.Reference, err)
	}
	return nil
}

// GetRefundDetail retrieves the refund detail by ledger reference.
func (r *MongoPaymentRepo) GetRefundDetail(ctx context.Context, reference string) (*models.RefundTransaction, error) {
	var d models.RefundTransaction
	if err := r.refundColl.FindOne(ctx, bson.M{"reference": reference}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch refund detail %s: %w", reference, err)
	}
	return &d, nil
}

// MarkRefundProcessing stamps the review/processing leg of the timeline.
func (r *MongoPaymentRepo) MarkRefundProcessing(ctx context.Context, reference string) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{"reviewedAt": now, "processingAt": now}}
	result, err := r.refundColl.UpdateOne(ctx, bson.M{"reference": reference}, update)
	if err != nil {
		return fmt.Errorf("failed to mark refund %s processing: %w", reference, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("refund detail %s not found", reference)
	}
	return nil
}

// MarkRefundCompleted stamps completion and the gateway refund id.
func (r *MongoPaymentRepo) MarkRefundCompleted(ctx context.Context, reference, gatewayRefundID string) error {
	update := bson.M{"$set": bson.M{
		"completedAt":     time.Now(),
		"gatewayRefundId": gatewayRefundID,
	}}
	result, err := r.refundColl.UpdateOne(ctx, bson.M{"reference": reference}, update)
	if err != nil {
		return fmt.Errorf("failed to mark refund %s completed: %w", reference, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("refund detail %s not found", reference)
	}
	return nil
}
