package ports

import (
	"context"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
)

// FarmerFilter narrows farmer lookups; zero values mean no constraint.
type FarmerFilter struct {
	District string
	Crop     string
}

// FarmerRepository persists farmer records.
type FarmerRepository interface {
	AccountStore

	Insert(ctx context.Context, f *domain.Farmer) error
	FindByFarmerID(ctx context.Context, farmerID string) (*domain.Farmer, error)
	FindActiveByFarmerID(ctx context.Context, farmerID string) (*domain.Farmer, error)
	FindAll(ctx context.Context) ([]domain.Farmer, error)
	// FindActiveByIDs returns active farmers whose id is in ids, optionally
	// narrowed by filter.
	FindActiveByIDs(ctx context.Context, ids []string, filter FarmerFilter) ([]domain.Farmer, error)
	CountActiveByIDs(ctx context.Context, ids []string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, farmerID string, f *domain.Farmer) error
	Deactivate(ctx context.Context, farmerID string) error
}

// CRPRepository persists CRP records and their farmer assignment lists.
type CRPRepository interface {
	AccountStore

	Insert(ctx context.Context, c *domain.CRP) error
	FindByCRPID(ctx context.Context, crpID string) (*domain.CRP, error)
	FindActiveByCRPID(ctx context.Context, crpID string) (*domain.CRP, error)
	FindAll(ctx context.Context) ([]domain.CRP, error)
	FindActiveByIDs(ctx context.Context, ids []string) ([]domain.CRP, error)
	CountActiveByIDs(ctx context.Context, ids []string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, crpID string, c *domain.CRP) error
	UpdateVisitReport(ctx context.Context, crpID string, report domain.VisitReport) error
	// AddFarmer appends farmerID as one conditional update: it matches only
	// when the id is absent, so a concurrent duplicate add cannot produce two
	// entries. Returns domain.ErrAlreadyAssigned when nothing matched.
	AddFarmer(ctx context.Context, crpID, farmerID string) error
	// RemoveFarmer is the converse: matches only when the id is present and
	// returns domain.ErrNotAssigned otherwise.
	RemoveFarmer(ctx context.Context, crpID, farmerID string) error
	Deactivate(ctx context.Context, crpID string) error
}

// ExpertRepository persists expert records, their farmer lists, the
// one-to-one CRP link, and the supervisor assignment.
type ExpertRepository interface {
	AccountStore

	Insert(ctx context.Context, e *domain.Expert) error
	FindByExpertID(ctx context.Context, expertID string) (*domain.Expert, error)
	FindActiveByExpertID(ctx context.Context, expertID string) (*domain.Expert, error)
	FindAll(ctx context.Context) ([]domain.Expert, error)
	FindActiveBySupervisor(ctx context.Context, supervisorID string) ([]domain.Expert, error)
	// FindActiveByLinkedCRP returns the active expert currently holding the
	// CRP link, or domain.ErrExpertNotFound when no one does.
	FindActiveByLinkedCRP(ctx context.Context, crpID string) (*domain.Expert, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, expertID string, e *domain.Expert) error
	UpdateRecommendations(ctx context.Context, expertID string, rec domain.Recommendations) error
	// LinkCRP sets the CRP link only when none is present
	// (domain.ErrExpertLinked otherwise); UnlinkCRP clears it only when one
	// is (domain.ErrNoLinkedCRP otherwise).
	LinkCRP(ctx context.Context, expertID, crpID string) error
	UnlinkCRP(ctx context.Context, expertID string) error
	AddFarmer(ctx context.Context, expertID, farmerID string) error
	RemoveFarmer(ctx context.Context, expertID, farmerID string) error
	// SetSupervisor assigns the expert unless a different supervisor already
	// holds it (domain.ErrExpertClaimed). UnsetSupervisor matches only the
	// given holder (domain.ErrExpertNotUnder otherwise).
	SetSupervisor(ctx context.Context, expertID, supervisorID string) error
	UnsetSupervisor(ctx context.Context, expertID, supervisorID string) error
	Deactivate(ctx context.Context, expertID string) error
}

// SupervisorRepository persists supervisor records.
type SupervisorRepository interface {
	AccountStore

	Insert(ctx context.Context, s *domain.Supervisor) error
	FindBySupervisorID(ctx context.Context, supervisorID string) (*domain.Supervisor, error)
	FindActiveBySupervisorID(ctx context.Context, supervisorID string) (*domain.Supervisor, error)
	Update(ctx context.Context, supervisorID string, s *domain.Supervisor) error
	AddFollowUpTask(ctx context.Context, supervisorID string, task domain.FollowUpTask) error
	UpdateFollowUpTaskStatus(ctx context.Context, supervisorID, taskID, status string) error
	AppendExportEntry(ctx context.Context, supervisorID string, entry domain.ExportEntry) error
}

// TrainingRepository persists canonical training records.
type TrainingRepository interface {
	Insert(ctx context.Context, t *domain.Training) (*domain.Training, error)
	FindByID(ctx context.Context, id string) (*domain.Training, error)
	FindAll(ctx context.Context) ([]domain.Training, error)
	FindByCRP(ctx context.Context, crpID string) ([]domain.Training, error)
	Update(ctx context.Context, id string, t *domain.Training) error
	Delete(ctx context.Context, id string) error
}

// ProblemRepository persists farmer problem reports.
type ProblemRepository interface {
	Insert(ctx context.Context, p *domain.Problem) (*domain.Problem, error)
	FindByID(ctx context.Context, id string) (*domain.Problem, error)
	FindByFarmer(ctx context.Context, farmerID string) ([]domain.Problem, error)
	Update(ctx context.Context, id string, p *domain.Problem) error
	Delete(ctx context.Context, id string) error
}
