package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a buyer's product review, filtered by email on read.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"       json:"_id,omitempty"`
	Email     string             `bson:"email"               json:"email"`
	Name      string             `bson:"name,omitempty"      json:"name,omitempty"`
	Rating    int                `bson:"rating,omitempty"    json:"rating,omitempty"`
	Content   string             `bson:"content"             json:"content"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
