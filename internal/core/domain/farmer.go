package domain

import "time"

// Land units accepted on farmer records.
const (
	LandUnitAcres    = "acres"
	LandUnitHectares = "hectares"
)

// Farmer is a field-level producer record. The embedded Account carries the
// credential and lockout state; everything else is profile data.
type Farmer struct {
	FarmerID             string   `json:"farmer_id" bson:"farmer_id"`
	FullName             string   `json:"full_name" bson:"full_name"`
	Age                  int      `json:"age" bson:"age"`
	Gender               string   `json:"gender" bson:"gender"`
	ContactNumber        string   `json:"contact_number" bson:"contact_number"`
	Village              string   `json:"village" bson:"village"`
	District             string   `json:"district" bson:"district"`
	State                string   `json:"state" bson:"state"`
	LandSize             float64  `json:"land_size" bson:"land_size"`
	LandUnit             string   `json:"land_unit" bson:"land_unit"`
	CropGrown            string   `json:"crop_grown" bson:"crop_grown"`
	TypeOfIrrigation     string   `json:"type_of_irrigation" bson:"type_of_irrigation"`
	LivelihoodActivities []string `json:"livelihood_activities" bson:"livelihood_activities"`
	WorkshopsOrTraining  []string `json:"workshops_or_training" bson:"workshops_or_training"`
	IssuesFaced          []string `json:"issues_faced" bson:"issues_faced"`
	OtherIssues          string   `json:"other_issues,omitempty" bson:"other_issues,omitempty"`

	Account `bson:",inline"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// FarmerSlice is the abbreviated profile surfaced on dashboards.
type FarmerSlice struct {
	FarmerID  string `json:"farmer_id" bson:"farmer_id"`
	FullName  string `json:"full_name" bson:"full_name"`
	Village   string `json:"village" bson:"village"`
	District  string `json:"district" bson:"district"`
	CropGrown string `json:"crop_grown" bson:"crop_grown"`
}

// Slice projects the dashboard view of a farmer.
func (f *Farmer) Slice() FarmerSlice {
	return FarmerSlice{
		FarmerID:  f.FarmerID,
		FullName:  f.FullName,
		Village:   f.Village,
		District:  f.District,
		CropGrown: f.CropGrown,
	}
}
