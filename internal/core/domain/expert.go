package domain

import "time"

// Expert is an advisory actor linked to at most one CRP and a set of farmers.
// LinkedCRPID is empty when no CRP is linked; SupervisorID is empty when the
// expert is unassigned.
type Expert struct {
	ExpertID       string `json:"expert_id" bson:"expert_id"`
	ExpertName     string `json:"expert_name" bson:"expert_name"`
	Phone          string `json:"phone" bson:"phone"`
	Specialization string `json:"specialization" bson:"specialization"`
	Qualification  string `json:"qualification" bson:"qualification"`
	Experience     int    `json:"experience" bson:"experience"`

	LinkedCRPID  string   `json:"linked_crp_id,omitempty" bson:"linked_crp_id,omitempty"`
	FarmerIDs    []string `json:"farmer_ids" bson:"farmer_ids"`
	SupervisorID string   `json:"supervisor_id,omitempty" bson:"supervisor_id,omitempty"`

	Review Recommendations `json:"review" bson:"review"`

	Account `bson:",inline"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Recommendations is the expert's advisory output, replaced wholesale on each
// update.
type Recommendations struct {
	DateOfReview            time.Time `json:"date_of_review" bson:"date_of_review"`
	SuggestedBestPractices  []string  `json:"suggested_best_practices" bson:"suggested_best_practices"`
	SeasonalRecommendations string    `json:"seasonal_recommendations,omitempty" bson:"seasonal_recommendations,omitempty"`
	ResourceNeeds           []string  `json:"resource_needs" bson:"resource_needs"`
	FollowUpRequired        bool      `json:"follow_up_required" bson:"follow_up_required"`
}

// HasFarmer reports whether the farmer id is in the expert's assignment list.
func (e *Expert) HasFarmer(farmerID string) bool {
	for _, id := range e.FarmerIDs {
		if id == farmerID {
			return true
		}
	}
	return false
}
