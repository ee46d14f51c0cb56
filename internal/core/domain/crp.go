package domain

import "time"

// CRP is a Community Resource Person: a field-level actor managing a set of
// farmers by reference. FarmerIDs holds farmer identifiers, never embedded
// documents.
type CRP struct {
	CRPID    string `json:"crp_id" bson:"crp_id"`
	CRPName  string `json:"crp_name" bson:"crp_name"`
	Phone    string `json:"phone" bson:"phone"`
	District string `json:"district" bson:"district"`
	State    string `json:"state" bson:"state"`

	FarmerIDs []string    `json:"farmer_ids" bson:"farmer_ids"`
	Visit     VisitReport `json:"visit_report" bson:"visit_report"`

	Account `bson:",inline"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// VisitReport is the CRP's current field visit report. It is replaced
// wholesale on each update, not versioned.
type VisitReport struct {
	DateOfVisit           time.Time `json:"date_of_visit" bson:"date_of_visit"`
	SummaryOfFarmerIssues string    `json:"summary_of_farmer_issues" bson:"summary_of_farmer_issues"`
	InterventionsGiven    []string  `json:"interventions_given" bson:"interventions_given"`
	NotesForExpert        string    `json:"notes_for_expert,omitempty" bson:"notes_for_expert,omitempty"`
}

// HasFarmer reports whether the farmer id is in the CRP's assignment list.
func (c *CRP) HasFarmer(farmerID string) bool {
	for _, id := range c.FarmerIDs {
		if id == farmerID {
			return true
		}
	}
	return false
}
