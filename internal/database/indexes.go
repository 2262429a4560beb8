package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	orderNumberIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "orderNumber", Value: 1}},
		Options: options.Index().
			SetName("orderNumber_unique").
			SetUnique(true),
	}

	createdAtIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_index"),
	}

	log.Println("EnsureOrderIndexes: creating orderNumber_unique and createdAt_index")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{orderNumberIndex, createdAtIndex})
	if err != nil {
		log.Println("EnsureOrderIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureCouponIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("userCoupons").Indexes()

	orderIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().
			SetName("orderId_index").
			SetPartialFilterExpression(bson.M{
				"orderId": bson.M{
					"$exists": true,
				},
			}),
	}

	log.Println("EnsureCouponIndexes: creating orderId_index")
	_, err := indexes.CreateOne(ctx, orderIDIndex)
	if err != nil {
		log.Println("EnsureCouponIndexes: orderId index error:", err)
		return err
	}
	return nil
}

func EnsurePointIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	balanceIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().
			SetName("userId_unique").
			SetUnique(true),
	}
	if _, err := db.Collection("userPoints").Indexes().CreateOne(ctx, balanceIndex); err != nil {
		log.Println("EnsurePointIndexes: userPoints index error:", err)
		return err
	}

	historyIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("userId_createdAt_index"),
	}
	if _, err := db.Collection("pointHistories").Indexes().CreateOne(ctx, historyIndex); err != nil {
		log.Println("EnsurePointIndexes: pointHistories index error:", err)
		return err
	}

	log.Println("EnsurePointIndexes: indexes created")
	return nil
}
