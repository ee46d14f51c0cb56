package ports

import (
	"context"
	"time"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
)

// --- Signup / update inputs ---

type FarmerSignupInput struct {
	FarmerID         string
	FullName         string
	Email            string
	Password         string
	Age              int
	Gender           string
	ContactNumber    string
	Village          string
	District         string
	State            string
	LandSize         float64
	LandUnit         string
	CropGrown        string
	TypeOfIrrigation string
}

type FarmerUpdateInput struct {
	FullName             string
	ContactNumber        string
	Village              string
	District             string
	State                string
	LandSize             float64
	LandUnit             string
	CropGrown            string
	TypeOfIrrigation     string
	LivelihoodActivities []string
	WorkshopsOrTraining  []string
	IssuesFaced          []string
	OtherIssues          string
}

type CRPSignupInput struct {
	CRPID    string
	CRPName  string
	Email    string
	Password string
	Phone    string
	District string
	State    string
}

type CRPUpdateInput struct {
	CRPName  string
	Phone    string
	District string
	State    string
}

type ExpertSignupInput struct {
	ExpertID       string
	ExpertName     string
	Email          string
	Password       string
	Phone          string
	Specialization string
	Qualification  string
	Experience     int
}

type ExpertUpdateInput struct {
	ExpertName     string
	Phone          string
	Specialization string
	Qualification  string
	Experience     int
}

type SupervisorSignupInput struct {
	SupervisorID   string
	SupervisorName string
	Email          string
	Password       string
	Phone          string
	Department     string
	Region         string
	AccessLevel    string
}

type SupervisorUpdateInput struct {
	SupervisorName string
	Phone          string
	Department     string
	Region         string
	PriorityAreas  []string
}

// --- Dashboard / aggregation outputs ---

type CRPDashboard struct {
	CRPID        string               `json:"crp_id"`
	CRPName      string               `json:"crp_name"`
	District     string               `json:"district"`
	State        string               `json:"state"`
	Statistics   CRPStatistics        `json:"statistics"`
	RecentFarmer []domain.FarmerSlice `json:"recent_farmers"`
}

type CRPStatistics struct {
	TotalFarmers       int       `json:"total_farmers"`
	TotalInterventions int       `json:"total_interventions"`
	TotalIssues        int       `json:"total_issues"`
	DateOfVisit        time.Time `json:"date_of_visit"`
}

type ExpertDashboard struct {
	ExpertID       string               `json:"expert_id"`
	ExpertName     string               `json:"expert_name"`
	Specialization string               `json:"specialization"`
	Statistics     ExpertStatistics     `json:"statistics"`
	RecentFarmer   []domain.FarmerSlice `json:"recent_farmers"`
}

type ExpertStatistics struct {
	TotalCRPs            int  `json:"total_crps"`
	TotalFarmers         int  `json:"total_farmers"`
	TotalRecommendations int  `json:"total_recommendations"`
	TotalResourceNeeds   int  `json:"total_resource_needs"`
	FollowUpRequired     bool `json:"follow_up_required"`
}

type SupervisorDashboard struct {
	SupervisorID   string               `json:"supervisor_id"`
	SupervisorName string               `json:"supervisor_name"`
	Statistics     SupervisorStatistics `json:"statistics"`
	RecentExperts  []ExpertSummary      `json:"recent_experts"`
}

type SupervisorStatistics struct {
	TotalExperts int64 `json:"total_experts"`
	TotalCRPs    int64 `json:"total_crps"`
	TotalFarmers int64 `json:"total_farmers"`
}

type ExpertSummary struct {
	ExpertID       string     `json:"expert_id"`
	ExpertName     string     `json:"expert_name"`
	Specialization string     `json:"specialization"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

type OverviewStats struct {
	TotalFarmers int64     `json:"total_farmers"`
	TotalCRPs    int64     `json:"total_crps"`
	TotalExperts int64     `json:"total_experts"`
	LastUpdated  time.Time `json:"last_updated"`
}

type AggregatedFarmerData struct {
	TotalFarmers      int                   `json:"total_farmers"`
	FarmersByDistrict domain.FrequencyTable `json:"farmers_by_district"`
	FarmersByCrop     domain.FrequencyTable `json:"farmers_by_crop"`
	FarmersByIssue    domain.FrequencyTable `json:"farmers_by_issue"`
}

type CRPReportStatus struct {
	CRPID       string    `json:"crp_id"`
	CRPName     string    `json:"crp_name"`
	DateOfVisit time.Time `json:"date_of_visit"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"last_updated"`
}

type RecommendationSummary struct {
	ExpertID            string    `json:"expert_id"`
	ExpertName          string    `json:"expert_name"`
	RecommendationCount int       `json:"recommendation_count"`
	FollowUpRequired    bool      `json:"follow_up_required"`
	DateOfReview        time.Time `json:"date_of_review"`
}

type ExportResult struct {
	ExportType string `json:"export_type"`
	Count      int    `json:"count"`
	Data       any    `json:"data"`
}

// --- Services ---

type FarmerService interface {
	Signup(ctx context.Context, in FarmerSignupInput) (string, *domain.Farmer, error)
	Create(ctx context.Context, in FarmerSignupInput) (*domain.Farmer, error)
	Get(ctx context.Context, farmerID string) (*domain.Farmer, error)
	List(ctx context.Context) ([]domain.Farmer, error)
	Update(ctx context.Context, farmerID string, in FarmerUpdateInput) (*domain.Farmer, error)
	Deactivate(ctx context.Context, farmerID string) error
}

type CRPService interface {
	Signup(ctx context.Context, in CRPSignupInput) (string, *domain.CRP, error)
	Get(ctx context.Context, crpID string) (*domain.CRP, error)
	List(ctx context.Context) ([]domain.CRP, error)
	Update(ctx context.Context, crpID string, in CRPUpdateInput) (*domain.CRP, error)
	Deactivate(ctx context.Context, crpID string) error

	Dashboard(ctx context.Context, crpID string) (*CRPDashboard, error)
	Farmers(ctx context.Context, crpID string, filter FarmerFilter) ([]domain.Farmer, error)
	FarmerDetail(ctx context.Context, crpID, farmerID string) (*domain.Farmer, error)
	AddFarmer(ctx context.Context, crpID, farmerID string) (*domain.CRP, error)
	RemoveFarmer(ctx context.Context, crpID, farmerID string) (*domain.CRP, error)
	UpdateVisitReport(ctx context.Context, crpID string, report domain.VisitReport) (*domain.CRP, error)
	Trainings(ctx context.Context, crpID string) ([]domain.Training, error)
}

type ExpertService interface {
	Signup(ctx context.Context, in ExpertSignupInput) (string, *domain.Expert, error)
	Get(ctx context.Context, expertID string) (*domain.Expert, error)
	List(ctx context.Context) ([]domain.Expert, error)
	Update(ctx context.Context, expertID string, in ExpertUpdateInput) (*domain.Expert, error)
	Deactivate(ctx context.Context, expertID string) error

	Dashboard(ctx context.Context, expertID string) (*ExpertDashboard, error)
	CRPs(ctx context.Context, expertID string) ([]domain.CRP, error)
	Farmers(ctx context.Context, expertID string) ([]domain.Farmer, error)
	LinkCRP(ctx context.Context, expertID, crpID string) (*domain.Expert, error)
	UnlinkCRP(ctx context.Context, expertID string) (*domain.Expert, error)
	AddFarmer(ctx context.Context, expertID, farmerID string) (*domain.Expert, error)
	RemoveFarmer(ctx context.Context, expertID, farmerID string) (*domain.Expert, error)
	UpdateRecommendations(ctx context.Context, expertID string, rec domain.Recommendations) (*domain.Expert, error)
}

type SupervisorService interface {
	Signup(ctx context.Context, in SupervisorSignupInput) (string, *domain.Supervisor, error)
	Get(ctx context.Context, supervisorID string) (*domain.Supervisor, error)
	Update(ctx context.Context, supervisorID string, in SupervisorUpdateInput) (*domain.Supervisor, error)

	Overview(ctx context.Context) (*OverviewStats, error)
	AggregatedFarmerData(ctx context.Context) (*AggregatedFarmerData, error)
	CRPReports(ctx context.Context) ([]CRPReportStatus, error)
	ExpertRecommendations(ctx context.Context) ([]RecommendationSummary, error)
	CreateFollowUpTask(ctx context.Context, supervisorID string, task domain.FollowUpTask) (*domain.FollowUpTask, error)
	UpdateFollowUpTask(ctx context.Context, supervisorID, taskID, status string) error
	Export(ctx context.Context, supervisorID, exportType string) (*ExportResult, error)

	Experts(ctx context.Context, supervisorID string) ([]domain.Expert, error)
	CRPs(ctx context.Context, supervisorID string) ([]domain.CRP, error)
	Farmers(ctx context.Context, supervisorID string) ([]domain.Farmer, error)
	Dashboard(ctx context.Context, supervisorID string) (*SupervisorDashboard, error)
	AssignExpert(ctx context.Context, supervisorID, expertID string) (*domain.Expert, error)
	RemoveExpert(ctx context.Context, supervisorID, expertID string) (*domain.Expert, error)
}

type TrainingService interface {
	Create(ctx context.Context, t *domain.Training) (*domain.Training, error)
	Get(ctx context.Context, id string) (*domain.Training, error)
	List(ctx context.Context) ([]domain.Training, error)
	Update(ctx context.Context, id string, t *domain.Training) (*domain.Training, error)
	Delete(ctx context.Context, id string) error
}

type ProblemService interface {
	Create(ctx context.Context, p *domain.Problem) (*domain.Problem, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]domain.Problem, error)
	Update(ctx context.Context, id string, p *domain.Problem) (*domain.Problem, error)
	Delete(ctx context.Context, id string) error
}
