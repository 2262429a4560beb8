package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mimyohi/shop-admin-sub001/internal/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

const queryTimeout = 5 * time.Second

// Orders gives the services narrow access to the orders collection.
type Orders struct {
	db *mongo.Database
}

func NewOrders(db *mongo.Database) *Orders {
	return &Orders{db: db}
}

// FindByNumber looks up an order by its human-facing order number.
func (s *Orders) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var order models.Order
	err := s.db.Collection("orders").
		FindOne(ctx, bson.M{"orderNumber": orderNumber}).
		Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkCancelled sets both status fields to cancelled. The write is
// intentionally idempotent: re-cancelling an already-cancelled order rewrites
// the same values.
func (s *Orders) MarkCancelled(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.Collection("orders").UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":             models.OrderStatusCancelled,
			"consultationStatus": models.OrderStatusCancelled,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// createdBetweenFilter builds the createdAt window filter. Both bounds are
// inclusive; a nil bound leaves that side open.
func createdBetweenFilter(start, end *time.Time) bson.M {
	window := bson.M{}
	if start != nil {
		window["$gte"] = *start
	}
	if end != nil {
		window["$lte"] = *end
	}
	if len(window) == 0 {
		return bson.M{}
	}
	return bson.M{"createdAt": window}
}

// ListCreatedBetween returns every order created within the window, oldest
// first. The sales aggregation consumes the full result set.
func (s *Orders) ListCreatedBetween(ctx context.Context, start, end *time.Time) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := s.db.Collection("orders").Find(ctx, createdBetweenFilter(start, end), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderListFilter narrows the admin order listing.
type OrderListFilter struct {
	Status string
	Start  *time.Time
	End    *time.Time
	Page   int64
	Limit  int64
}

// List returns one page of orders, newest first, plus the total match count.
func (s *Orders) List(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := createdBetweenFilter(f.Start, f.End)
	if f.Status != "" {
		filter["status"] = f.Status
	}

	collection := s.db.Collection("orders")

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip((f.Page - 1) * f.Limit).
		SetLimit(f.Limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
