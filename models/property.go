package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property statuses as stored in the listings collection.
const (
	StatusActive  = "active"
	StatusPending = "pending"
	StatusSold    = "sold"
	StatusRented  = "rented"
)

// Agent is the listing contact attached to a property.
type Agent struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

// Property is a single listing. ID is immutable and unique within any
// collection handed to the engine. Numeric fields left at zero mean the
// source omitted them.
type Property struct {
	ID        string              `bson:"_id" json:"id"`
	Title     string              `bson:"title" json:"title"`
	Price     int64               `bson:"price" json:"price"`
	Type      string              `bson:"type" json:"type"`
	City      string              `bson:"city" json:"city"`
	State     string              `bson:"state" json:"state"`
	Bedrooms  int                 `bson:"bedrooms" json:"bedrooms"`
	Bathrooms int                 `bson:"bathrooms" json:"bathrooms"`
	Sqft      float64             `bson:"sqft" json:"sqft"`
	SqftUnit  string              `bson:"sqftUnit,omitempty" json:"sqftUnit,omitempty"`
	Images    []string            `bson:"images" json:"images"`
	Status    string              `bson:"status" json:"status"`
	Agent     Agent               `bson:"agent" json:"agent"`
	CreatedBy *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// PropertyListResponse is the envelope for list-shaped endpoints.
type PropertyListResponse struct {
	Success bool       `json:"success"`
	Data    []Property `json:"data"`
}

// PropertyResponse is the envelope for the detail endpoint.
type PropertyResponse struct {
	Success bool     `json:"success"`
	Data    Property `json:"data"`
}
