package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role values stored on a user document. Accounts created by the login
// upsert carry no role; admins are promoted explicitly.
const RoleAdmin = "admin"

// User is an account document, keyed by email.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email string             `bson:"email"          json:"email"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Role  string             `bson:"role,omitempty" json:"role,omitempty"`
}

// IsAdmin reports whether the stored role grants admin access.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
