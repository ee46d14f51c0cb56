package handler

import (
	"time"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

type expertSignupRequest struct {
	ExpertID       string `json:"expert_id" validate:"required"`
	ExpertName     string `json:"expert_name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Phone          string `json:"phone" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
	Qualification  string `json:"qualification"`
	Experience     int    `json:"experience" validate:"omitempty,gte=0"`
}

func (r expertSignupRequest) toInput() ports.ExpertSignupInput {
	return ports.ExpertSignupInput{
		ExpertID:       r.ExpertID,
		ExpertName:     r.ExpertName,
		Email:          r.Email,
		Password:       r.Password,
		Phone:          r.Phone,
		Specialization: r.Specialization,
		Qualification:  r.Qualification,
		Experience:     r.Experience,
	}
}

type expertUpdateRequest struct {
	ExpertName     string `json:"expert_name"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Qualification  string `json:"qualification"`
	Experience     int    `json:"experience" validate:"omitempty,gte=0"`
}

func (r expertUpdateRequest) toInput() ports.ExpertUpdateInput {
	return ports.ExpertUpdateInput{
		ExpertName:     r.ExpertName,
		Phone:          r.Phone,
		Specialization: r.Specialization,
		Qualification:  r.Qualification,
		Experience:     r.Experience,
	}
}

type crpRefRequest struct {
	CRPID string `json:"crp_id" validate:"required"`
}

type recommendationsRequest struct {
	DateOfReview            time.Time `json:"date_of_review"`
	SuggestedBestPractices  []string  `json:"suggested_best_practices"`
	SeasonalRecommendations string    `json:"seasonal_recommendations"`
	ResourceNeeds           []string  `json:"resource_needs"`
	FollowUpRequired        bool      `json:"follow_up_required"`
}

func (r recommendationsRequest) toRecommendations() domain.Recommendations {
	return domain.Recommendations{
		DateOfReview:            r.DateOfReview,
		SuggestedBestPractices:  r.SuggestedBestPractices,
		SeasonalRecommendations: r.SeasonalRecommendations,
		ResourceNeeds:           r.ResourceNeeds,
		FollowUpRequired:        r.FollowUpRequired,
	}
}
