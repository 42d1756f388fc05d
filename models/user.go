// models/user.go
package models

import "time"

// UserRole is the acting role of a session. It is derived from the
// credential email, never read back from stored data as ground truth.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleClient UserRole = "client"
)

// User is the materialized session identity handed to handlers.
type User struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Role          UserRole `json:"role"`
	Phone         string   `json:"phone,omitempty"`
	Avatar        string   `json:"avatar,omitempty"`
	EmailVerified bool     `json:"email_verified"`
}

// UserProfile is the denormalized profile document stored in the "users"
// collection. Its Role field is display-only and never authoritative.
type UserProfile struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar    string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Role      UserRole  `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
