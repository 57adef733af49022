package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactMessage is an append-only "contact us" submission.
type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"       json:"_id,omitempty"`
	Name      string             `bson:"name,omitempty"      json:"name,omitempty"`
	Email     string             `bson:"email"               json:"email"`
	Subject   string             `bson:"subject,omitempty"   json:"subject,omitempty"`
	Message   string             `bson:"message"             json:"message"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
