package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"tripnest/models"
	"tripnest/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	client      *mongo.Client
	coll        *mongo.Collection
	counterColl *mongo.Collection
}

// NewMongoBookingRepo creates a new BookingRepository on the given database handle.
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	repo := &MongoBookingRepo{
		client:      db.Client(),
		coll:        db.Collection("bookings"),
		counterColl: db.Collection("invoice_counters"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "invoiceNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "vendorId", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	// One counter document per calendar day. Without this index two
	// transactions upserting the same day's first counter both commit,
	// and the duplicated counters hand out colliding sequences for the
	// rest of the day. With it, the losing transaction aborts with a
	// transient write conflict and is retried.
	counterIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "day", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.counterColl.Indexes().CreateMany(ctx, counterIndexes); err != nil {
		return fmt.Errorf("failed to create invoice counter indexes: %w", err)
	}
	return nil
}

// nextInvoiceSeq atomically claims the next sequence number for the
// given calendar day. The counter document is upserted on first use, so
// uniqueness is enforced by the storage layer rather than a
// count-then-insert read.
func (r *MongoBookingRepo) nextInvoiceSeq(ctx context.Context, day string) (int, error) {
	filter := bson.M{"day": day}
	update := bson.M{"$inc": bson.M{"seq": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Day string `bson:"day"`
		Seq int    `bson:"seq"`
	}
	if err := r.counterColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("failed to increment invoice counter for %s: %w", day, err)
	}
	return counter.Seq, nil
}

// CreateGraph runs the whole booking unit inside one mongo transaction.
func (r *MongoBookingRepo) CreateGraph(ctx context.Context, b *models.Booking, finalize func(seq int) (string, float64)) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnOpts := options.Transaction().SetMaxCommitTime(maxCommitTime())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		day := b.CreatedAt.Format("20060102")
		seq, err := r.nextInvoiceSeq(sc, day)
		if err != nil {
			return nil, err
		}

		invoiceNumber, finalTotal := finalize(seq)
		b.InvoiceNumber = invoiceNumber

		if _, err := r.coll.InsertOne(sc, b); err != nil {
			return nil, fmt.Errorf("insert booking failed: %w", err)
		}

		update := bson.M{"$set": bson.M{
			"totalAmount": finalTotal,
			"updatedAt":   time.Now(),
		}}
		if _, err := r.coll.UpdateOne(sc, bson.M{"id": b.ID}, update); err != nil {
			return nil, fmt.Errorf("finalize booking total failed: %w", err)
		}
		b.TotalAmount = finalTotal
		return nil, nil
	}, txnOpts)

	if err != nil {
		return err
	}
	return nil
}

func maxCommitTime() *time.Duration {
	d := utils.BookingTxnCommitTimeout
	return &d
}

// GetByID retrieves a booking by its unique ID, skipping tombstones.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	filter := bson.M{"id": id, "deletedAt": bson.M{"$exists": false}}
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

// ListByUser retrieves all bookings owned by a user, newest first.
func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	filter := bson.M{"userId": userID, "deletedAt": bson.M{"$exists": false}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// UpdateStatus sets the booking status.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s status: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// SetPaymentReference stores the gateway intent id on the booking.
func (r *MongoBookingRepo) SetPaymentReference(ctx context.Context, id, reference string) error {
	update := bson.M{"$set": bson.M{"paymentReference": reference, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set payment reference on booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// MarkPaid records the captured amount and gateway reference.
func (r *MongoBookingRepo) MarkPaid(ctx context.Context, id string, amount float64, currency, reference string) error {
	update := bson.M{"$set": bson.M{
		"paymentStatus":    models.PaymentStatusPaid,
		"paidAmount":       amount,
		"paidCurrency":     currency,
		"paymentReference": reference,
		"updatedAt":        time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark booking %s paid: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// SoftDelete tombstones an unpaid booking. A paid booking is never
// deleted; the filter refuses the update.
func (r *MongoBookingRepo) SoftDelete(ctx context.Context, id string) error {
	filter := bson.M{"id": id, "paymentStatus": bson.M{"$ne": models.PaymentStatusPaid}}
	update := bson.M{"$set": bson.M{"deletedAt": time.Now(), "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found or already paid", id)
	}
	return nil
}
