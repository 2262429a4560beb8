package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Payment webhooks move orders from pending to paid; the
// cancellation flow is the only writer of cancelled.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// AddonSelection is one add-on the customer attached to an order item.
type AddonSelection struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Price    int    `bson:"price" json:"price"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// UnmarshalBSON tolerates legacy documents that omit price or quantity:
// price defaults to 0, quantity to 1. An explicit quantity of 0 is kept.
func (a *AddonSelection) UnmarshalBSON(data []byte) error {
	var raw struct {
		ID       string `bson:"id"`
		Name     string `bson:"name"`
		Price    *int   `bson:"price"`
		Quantity *int   `bson:"quantity"`
	}
	if err := bson.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.ID = raw.ID
	a.Name = raw.Name

	a.Price = 0
	if raw.Price != nil {
		a.Price = *raw.Price
	}

	a.Quantity = 1
	if raw.Quantity != nil {
		a.Quantity = *raw.Quantity
	}
	return nil
}

// OptionSettingSelection is a free-form configuration choice made by the
// customer (e.g. engraving style). Carried through untouched.
type OptionSettingSelection struct {
	SettingID   string `bson:"settingId" json:"settingId"`
	SettingName string `bson:"settingName" json:"settingName"`
	TypeID      string `bson:"typeId" json:"typeId"`
	TypeName    string `bson:"typeName" json:"typeName"`
}

// OrderItem is a single product entry within an order. Revenue contribution:
// (productPrice + optionPrice) * quantity + sum(addon.price * addon.quantity) * quantity.
type OrderItem struct {
	ProductID              primitive.ObjectID       `bson:"productId" json:"productId"`
	ProductName            string                   `bson:"productName" json:"productName"`
	ProductPrice           int                      `bson:"productPrice" json:"productPrice"`
	Quantity               int                      `bson:"quantity" json:"quantity"`
	OptionID               *string                  `bson:"optionId,omitempty" json:"optionId,omitempty"`
	OptionName             string                   `bson:"optionName,omitempty" json:"optionName,omitempty"`
	OptionPrice            int                      `bson:"optionPrice" json:"optionPrice"`
	SelectedAddons         []AddonSelection         `bson:"selectedAddons,omitempty" json:"selectedAddons,omitempty"`
	SelectedOptionSettings []OptionSettingSelection `bson:"selectedOptionSettings,omitempty" json:"selectedOptionSettings,omitempty"`
}

// Order is the persisted order document. OrderNumber is the human-facing
// identifier used in customer messages and point history entries; _id stays
// internal. Amounts are whole currency units.
type Order struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OrderNumber        string              `bson:"orderNumber" json:"orderNumber"`
	UserID             *primitive.ObjectID `bson:"userId" json:"userId"`
	UserCouponID       *primitive.ObjectID `bson:"userCouponId,omitempty" json:"userCouponId,omitempty"`
	UsedPoints         int                 `bson:"usedPoints" json:"usedPoints"`
	Items              []OrderItem         `bson:"items" json:"items"`
	TotalAmount        int                 `bson:"totalAmount" json:"totalAmount"`
	UserName           string              `bson:"userName" json:"userName"`
	UserPhone          string              `bson:"userPhone,omitempty" json:"userPhone,omitempty"`
	PaymentID          string              `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Status             string              `bson:"status" json:"status"`
	ConsultationStatus string              `bson:"consultationStatus" json:"consultationStatus"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
}
