package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Profile holds per-account profile info, upserted by email.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"       json:"_id,omitempty"`
	Email     string             `bson:"email"               json:"email"`
	Name      string             `bson:"name,omitempty"      json:"name,omitempty"`
	Education string             `bson:"education,omitempty" json:"education,omitempty"`
	Location  string             `bson:"location,omitempty"  json:"location,omitempty"`
	Phone     string             `bson:"phone,omitempty"     json:"phone,omitempty"`
	LinkedIn  string             `bson:"linkedin,omitempty"  json:"linkedin,omitempty"`
}
