package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCoupon links a user to an issued coupon instance. When a coupon is
// consumed by an order, isUsed, usedAt and orderId are set together; releasing
// it resets all three in a single update.
type UserCoupon struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	CouponID  primitive.ObjectID `bson:"couponId" json:"couponId"`
	IsUsed    bool               `bson:"isUsed" json:"isUsed"`
	UsedAt    *time.Time         `bson:"usedAt,omitempty" json:"usedAt,omitempty"`
	OrderID   *string            `bson:"orderId,omitempty" json:"orderId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
