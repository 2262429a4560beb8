package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Point history entry types. Entries are append-only; corrections are new
// entries, never edits.
const (
	PointTypeEarn = "earn"
	PointTypeUse  = "use"
)

// UserPoints is the single balance document per user. Points and totalUsed
// never go negative.
type UserPoints struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Points    int                `bson:"points" json:"points"`
	TotalUsed int                `bson:"totalUsed" json:"totalUsed"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PointHistory is an append-only ledger entry. Points holds the magnitude,
// always positive; Type says which direction it moved.
type PointHistory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Points    int                `bson:"points" json:"points"`
	Type      string             `bson:"type" json:"type"`
	Reason    string             `bson:"reason" json:"reason"`
	OrderID   string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
