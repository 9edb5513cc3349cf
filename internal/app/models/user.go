package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User defines a platform account stored in the 'users' collection
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email" example:"user@example.com"`
	Password       string             `bson:"password,omitempty" json:"-"` // bcrypt hash, never serialized
	FirstName      string             `bson:"firstName" json:"firstName" example:"John"`
	LastName       string             `bson:"lastName" json:"lastName" example:"Doe"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role           Role               `bson:"role" json:"role" example:"STUDENT"`
	Status         UserStatus         `bson:"status" json:"status" example:"ACTIVE"`
	InviteToken    string             `bson:"inviteToken,omitempty" json:"-"`
	InviteTokenExp *time.Time         `bson:"inviteTokenExp,omitempty" json:"-"`
	LastLoginAt    *time.Time         `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// RefreshToken defines a persisted opaque refresh token in the 'refresh_tokens' collection
type RefreshToken struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token      string             `bson:"token" json:"-"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	ExpiryDate time.Time          `bson:"expiryDate" json:"expiryDate"`
	IsRevoked  bool               `bson:"isRevoked" json:"isRevoked"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// PasswordResetToken defines a single-use password reset token
type PasswordResetToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token     string             `bson:"token" json:"-"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	Used      bool               `bson:"used" json:"used"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
