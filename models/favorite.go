package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is one row of the per-user favorite set. Membership is
// authoritative server-side; clients only cache it.
type Favorite struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"userId"`
	PropertyID string             `bson:"propertyId" json:"propertyId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// ToggleFavoriteRequest is the body of POST /favorites.
type ToggleFavoriteRequest struct {
	UserID     string `json:"userId" validate:"required"`
	PropertyID string `json:"propertyId" validate:"required"`
}

// ToggleFavoriteResponse carries the server-confirmed membership after a
// toggle. IsFavorite is the new state, not an echo of the client's guess.
type ToggleFavoriteResponse struct {
	Success    bool `json:"success"`
	IsFavorite bool `json:"isFavorite"`
}
