package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a catalog training course
type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Duration    string             `bson:"duration,omitempty" json:"duration,omitempty" example:"12 weeks"`
	Fee         float64            `bson:"fee" json:"fee"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Internship is a catalog internship offering
type Internship struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Domain      string             `bson:"domain,omitempty" json:"domain,omitempty"`
	Duration    string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Stipend     float64            `bson:"stipend,omitempty" json:"stipend,omitempty"`
	Fee         float64            `bson:"fee" json:"fee"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Project is a catalog project offering that runs the full payment workflow
type Project struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	Technologies  []string           `bson:"technologies,omitempty" json:"technologies,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	AdvancePct    int                `bson:"advancePct" json:"advancePct" example:"40"`
	DemoVideoURL  string             `bson:"demoVideoUrl,omitempty" json:"demoVideoUrl,omitempty"`
	ThumbnailKey  string             `bson:"thumbnailKey,omitempty" json:"thumbnailKey,omitempty"`
	Active        bool               `bson:"active" json:"active"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
