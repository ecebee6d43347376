package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job is a job board posting
type Job struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	CompanyName string             `bson:"company_name" json:"company_name"`
	Description string             `bson:"description" json:"description"`
	Location    string             `bson:"location" json:"location"`
	Deadline    time.Time          `bson:"deadline" json:"deadline"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// JobForm carries job create/update payloads. Zero fields are left
// untouched on update.
type JobForm struct {
	Title       string     `json:"title"`
	CompanyName string     `json:"company_name"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Deadline    *time.Time `json:"deadline"`
}
