package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mimyohi/shop-admin-sub001/internal/models"
)

// Points gives the recovery engine narrow access to the userPoints balance
// documents and the append-only pointHistories ledger.
type Points struct {
	db *mongo.Database
}

func NewPoints(db *mongo.Database) *Points {
	return &Points{db: db}
}

// Balance returns the user's current balance document.
func (s *Points) Balance(ctx context.Context, userID primitive.ObjectID) (*models.UserPoints, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var balance models.UserPoints
	err := s.db.Collection("userPoints").
		FindOne(ctx, bson.M{"userId": userID}).
		Decode(&balance)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// SaveBalance writes the new balance values. Upserts so a refund still lands
// when the balance document was never created for the user.
func (s *Points) SaveBalance(ctx context.Context, userID primitive.ObjectID, points, totalUsed int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.Collection("userPoints").UpdateOne(
		ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"points":    points,
			"totalUsed": totalUsed,
			"updatedAt": time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// AppendHistory inserts a new ledger entry. History documents are never
// updated afterwards.
func (s *Points) AppendHistory(ctx context.Context, entry models.PointHistory) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := s.db.Collection("pointHistories").InsertOne(ctx, entry)
	return err
}
