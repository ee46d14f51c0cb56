package handler

import (
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

type farmerSignupRequest struct {
	FarmerID         string  `json:"farmer_id" validate:"required"`
	FullName         string  `json:"full_name" validate:"required"`
	Email            string  `json:"email" validate:"required,email"`
	Password         string  `json:"password" validate:"required,min=6"`
	Age              int     `json:"age" validate:"omitempty,gt=0"`
	Gender           string  `json:"gender" validate:"omitempty,oneof=male female other"`
	ContactNumber    string  `json:"contact_number" validate:"required"`
	Village          string  `json:"village" validate:"required"`
	District         string  `json:"district" validate:"required"`
	State            string  `json:"state" validate:"required"`
	LandSize         float64 `json:"land_size" validate:"omitempty,gt=0"`
	LandUnit         string  `json:"land_unit" validate:"omitempty,oneof=acres hectares"`
	CropGrown        string  `json:"crop_grown"`
	TypeOfIrrigation string  `json:"type_of_irrigation"`
}

func (r farmerSignupRequest) toInput() ports.FarmerSignupInput {
	return ports.FarmerSignupInput{
		FarmerID:         r.FarmerID,
		FullName:         r.FullName,
		Email:            r.Email,
		Password:         r.Password,
		Age:              r.Age,
		Gender:           r.Gender,
		ContactNumber:    r.ContactNumber,
		Village:          r.Village,
		District:         r.District,
		State:            r.State,
		LandSize:         r.LandSize,
		LandUnit:         r.LandUnit,
		CropGrown:        r.CropGrown,
		TypeOfIrrigation: r.TypeOfIrrigation,
	}
}

type farmerUpdateRequest struct {
	FullName             string   `json:"full_name"`
	ContactNumber        string   `json:"contact_number"`
	Village              string   `json:"village"`
	District             string   `json:"district"`
	State                string   `json:"state"`
	LandSize             float64  `json:"land_size" validate:"omitempty,gt=0"`
	LandUnit             string   `json:"land_unit" validate:"omitempty,oneof=acres hectares"`
	CropGrown            string   `json:"crop_grown"`
	TypeOfIrrigation     string   `json:"type_of_irrigation"`
	LivelihoodActivities []string `json:"livelihood_activities"`
	WorkshopsOrTraining  []string `json:"workshops_or_training"`
	IssuesFaced          []string `json:"issues_faced"`
	OtherIssues          string   `json:"other_issues"`
}

func (r farmerUpdateRequest) toInput() ports.FarmerUpdateInput {
	return ports.FarmerUpdateInput{
		FullName:             r.FullName,
		ContactNumber:        r.ContactNumber,
		Village:              r.Village,
		District:             r.District,
		State:                r.State,
		LandSize:             r.LandSize,
		LandUnit:             r.LandUnit,
		CropGrown:            r.CropGrown,
		TypeOfIrrigation:     r.TypeOfIrrigation,
		LivelihoodActivities: r.LivelihoodActivities,
		WorkshopsOrTraining:  r.WorkshopsOrTraining,
		IssuesFaced:          r.IssuesFaced,
		OtherIssues:          r.OtherIssues,
	}
}
