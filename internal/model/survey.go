package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Survey is an alumni survey listing pointing at an external form
type Survey struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SurveyTitle string             `bson:"survey_title" json:"survey_title"`
	Description string             `bson:"description" json:"description"`
	SurveyLink  string             `bson:"survey_link" json:"survey_link"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SurveyForm carries the multipart create/update form
type SurveyForm struct {
	SurveyTitle string `form:"survey_title"`
	Description string `form:"description"`
	SurveyLink  string `form:"survey_link"`
}
