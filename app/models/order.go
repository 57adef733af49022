package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. The wire strings are part of the storefront contract,
// including the capitalised "Shipped".
const (
	OrderPending = "pending"
	OrderPaid    = "paid"
	OrderShipped = "Shipped"
)

// Order is a buyer's manufacturing order for one product. Status only ever
// advances pending → paid → Shipped.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"           json:"_id,omitempty"`
	Email         string             `bson:"email"                   json:"email"`
	ProductID     string             `bson:"productId,omitempty"     json:"productId,omitempty"`
	ProductName   string             `bson:"productName,omitempty"   json:"productName,omitempty"`
	Quantity      int                `bson:"quantity,omitempty"      json:"quantity,omitempty"`
	TotalPrice    float64            `bson:"totalPrice"              json:"totalPrice"`
	Status        string             `bson:"status"                  json:"status"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt,omitempty"     json:"createdAt,omitempty"`
}

// Payment records one successful capture. Append-only; the unique
// payments.orderId index keeps it one-per-order.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"       json:"_id,omitempty"`
	OrderID       string             `bson:"orderId"             json:"orderId"`
	Email         string             `bson:"email,omitempty"     json:"email,omitempty"`
	TransactionID string             `bson:"transactionId"       json:"transactionId"`
	Amount        float64            `bson:"amount,omitempty"    json:"amount,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
