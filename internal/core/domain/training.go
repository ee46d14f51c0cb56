package domain

import "time"

// Training is the canonical record of a training session. Role-facing views
// of trainings (such as a CRP's conducted-trainings list) are projections
// rebuilt from this collection on read; nothing duplicates its fields.
type Training struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Subject   string    `json:"subject" bson:"subject"`
	Attendees int       `json:"attendees" bson:"attendees"`
	CRPID     string    `json:"crp_id,omitempty" bson:"crp_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Problem tracks an issue reported for a farmer, referenced by farmer id.
type Problem struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Issue       string    `json:"issue" bson:"issue"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Solved      bool      `json:"solved" bson:"solved"`
	FarmerID    string    `json:"farmer_id" bson:"farmer_id"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Video       string    `json:"video,omitempty" bson:"video,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
