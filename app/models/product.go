package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a catalogue item. moQuantity is the minimum order quantity for
// manufacturing orders; field names match the storefront's wire format.
type Product struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"      json:"_id,omitempty"`
	ProductName       string             `bson:"productName"        json:"productName"`
	ShortDescription  string             `bson:"shortDescription"   json:"shortDescription"`
	MOQuantity        int                `bson:"moQuantity"         json:"moQuantity"`
	AvailableQuantity int                `bson:"availableQuantity"  json:"availableQuantity"`
	Price             float64            `bson:"price"              json:"price"`
	Picture           string             `bson:"picture,omitempty"  json:"picture,omitempty"`
}
