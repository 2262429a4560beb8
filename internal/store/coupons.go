package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Coupons gives the recovery engine narrow access to the userCoupons
// collection.
type Coupons struct {
	db *mongo.Database
}

func NewCoupons(db *mongo.Database) *Coupons {
	return &Coupons{db: db}
}

// Release reverses a coupon consumption: isUsed goes back to false and the
// usedAt/orderId markers are cleared, all in one update. Releasing an
// already-unused coupon rewrites the same values and is safe.
func (s *Coupons) Release(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.Collection("userCoupons").UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":   bson.M{"isUsed": false},
			"$unset": bson.M{"usedAt": "", "orderId": ""},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
