package handler

import (
	"time"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

type crpSignupRequest struct {
	CRPID    string `json:"crp_id" validate:"required"`
	CRPName  string `json:"crp_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required"`
	District string `json:"district" validate:"required"`
	State    string `json:"state" validate:"required"`
}

func (r crpSignupRequest) toInput() ports.CRPSignupInput {
	return ports.CRPSignupInput{
		CRPID:    r.CRPID,
		CRPName:  r.CRPName,
		Email:    r.Email,
		Password: r.Password,
		Phone:    r.Phone,
		District: r.District,
		State:    r.State,
	}
}

type crpUpdateRequest struct {
	CRPName  string `json:"crp_name"`
	Phone    string `json:"phone"`
	District string `json:"district"`
	State    string `json:"state"`
}

func (r crpUpdateRequest) toInput() ports.CRPUpdateInput {
	return ports.CRPUpdateInput{
		CRPName:  r.CRPName,
		Phone:    r.Phone,
		District: r.District,
		State:    r.State,
	}
}

type farmerRefRequest struct {
	FarmerID string `json:"farmer_id" validate:"required"`
}

type visitReportRequest struct {
	DateOfVisit           time.Time `json:"date_of_visit"`
	SummaryOfFarmerIssues string    `json:"summary_of_farmer_issues" validate:"required"`
	InterventionsGiven    []string  `json:"interventions_given"`
	NotesForExpert        string    `json:"notes_for_expert"`
}

func (r visitReportRequest) toReport() domain.VisitReport {
	return domain.VisitReport{
		DateOfVisit:           r.DateOfVisit,
		SummaryOfFarmerIssues: r.SummaryOfFarmerIssues,
		InterventionsGiven:    r.InterventionsGiven,
		NotesForExpert:        r.NotesForExpert,
	}
}
