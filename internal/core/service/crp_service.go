package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

const dashboardRecentLimit = 5

// CRPService implements CRP signup, CRUD, farmer assignment, visit reports
// and the CRP dashboard rollup.
type CRPService struct {
	repo      ports.CRPRepository
	farmers   ports.FarmerRepository
	trainings ports.TrainingRepository
	tokens    ports.TokenService
	log       zerolog.Logger
}

func NewCRPService(repo ports.CRPRepository, farmers ports.FarmerRepository, trainings ports.TrainingRepository, tokens ports.TokenService, log zerolog.Logger) *CRPService {
	return &CRPService{repo: repo, farmers: farmers, trainings: trainings, tokens: tokens, log: log}
}

func (s *CRPService) Signup(ctx context.Context, in ports.CRPSignupInput) (string, *domain.CRP, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	crp := &domain.CRP{
		CRPID:     in.CRPID,
		CRPName:   in.CRPName,
		Phone:     in.Phone,
		District:  in.District,
		State:     in.State,
		FarmerIDs: []string{},
		Visit: domain.VisitReport{
			DateOfVisit:           now,
			SummaryOfFarmerIssues: "Initial registration",
			InterventionsGiven:    []string{},
		},
		Account: domain.Account{
			Email:        normalizeEmail(in.Email),
			PasswordHash: hash,
			Active:       true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, crp); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(domain.RoleCRP, crp.CRPID)
	if err != nil {
		return "", nil, err
	}
	s.log.Info().Str("crp_id", crp.CRPID).Msg("crp registered")
	return token, crp, nil
}

func (s *CRPService) Get(ctx context.Context, crpID string) (*domain.CRP, error) {
	return s.repo.FindByCRPID(ctx, crpID)
}

func (s *CRPService) List(ctx context.Context) ([]domain.CRP, error) {
	return s.repo.FindAll(ctx)
}

func (s *CRPService) Update(ctx context.Context, crpID string, in ports.CRPUpdateInput) (*domain.CRP, error) {
	crp, err := s.repo.FindByCRPID(ctx, crpID)
	if err != nil {
		return nil, err
	}

	crp.CRPName = in.CRPName
	crp.Phone = in.Phone
	crp.District = in.District
	crp.State = in.State
	crp.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, crpID, crp); err != nil {
		return nil, err
	}
	return crp, nil
}

func (s *CRPService) Deactivate(ctx context.Context, crpID string) error {
	return s.repo.Deactivate(ctx, crpID)
}

// Dashboard computes the on-demand CRP rollup: assignment counts plus profile
// slices for the first five assigned farmers.
func (s *CRPService) Dashboard(ctx context.Context, crpID string) (*ports.CRPDashboard, error) {
	crp, err := s.repo.FindActiveByCRPID(ctx, crpID)
	if err != nil {
		return nil, err
	}

	issues := 0
	if crp.Visit.SummaryOfFarmerIssues != "" {
		issues = 1
	}

	head := crp.FarmerIDs
	if len(head) > dashboardRecentLimit {
		head = head[:dashboardRecentLimit]
	}
	recent, err := s.farmers.FindActiveByIDs(ctx, head, ports.FarmerFilter{})
	if err != nil {
		return nil, err
	}
	slices := make([]domain.FarmerSlice, 0, len(recent))
	for i := range recent {
		slices = append(slices, recent[i].Slice())
	}

	return &ports.CRPDashboard{
		CRPID:    crp.CRPID,
		CRPName:  crp.CRPName,
		District: crp.District,
		State:    crp.State,
		Statistics: ports.CRPStatistics{
			TotalFarmers:       len(crp.FarmerIDs),
			TotalInterventions: len(crp.Visit.InterventionsGiven),
			TotalIssues:        issues,
			DateOfVisit:        crp.Visit.DateOfVisit,
		},
		RecentFarmer: slices,
	}, nil
}

// Farmers returns the active farmers assigned to the CRP, optionally
// narrowed by district or crop.
func (s *CRPService) Farmers(ctx context.Context, crpID string, filter ports.FarmerFilter) ([]domain.Farmer, error) {
	crp, err := s.repo.FindActiveByCRPID(ctx, crpID)
	if err != nil {
		return nil, err
	}
	return s.farmers.FindActiveByIDs(ctx, crp.FarmerIDs, filter)
}

// FarmerDetail returns one assigned farmer. Requesting a farmer outside the
// CRP's assignment list is an authorization failure, not a lookup miss.
func (s *CRPService) FarmerDetail(ctx context.Context, crpID, farmerID string) (*domain.Farmer, error) {
	crp, err := s.repo.FindActiveByCRPID(ctx, crpID)
	if err != nil {
		return nil, err
	}
	if !crp.HasFarmer(farmerID) {
		return nil, domain.ErrForbidden
	}
	return s.farmers.FindActiveByFarmerID(ctx, farmerID)
}

// AddFarmer assigns a farmer to the CRP. Both records must be active, and
// the append is a single conditional update so concurrent duplicate adds
// cannot both succeed.
func (s *CRPService) AddFarmer(ctx context.Context, crpID, farmerID string) (*domain.CRP, error) {
	if _, err := s.repo.FindActiveByCRPID(ctx, crpID); err != nil {
		return nil, err
	}
	if _, err := s.farmers.FindActiveByFarmerID(ctx, farmerID); err != nil {
		return nil, err
	}
	if err := s.repo.AddFarmer(ctx, crpID, farmerID); err != nil {
		return nil, err
	}
	return s.repo.FindByCRPID(ctx, crpID)
}

// RemoveFarmer unassigns a farmer; removing a non-member is rejected without
// touching the store.
func (s *CRPService) RemoveFarmer(ctx context.Context, crpID, farmerID string) (*domain.CRP, error) {
	if _, err := s.repo.FindActiveByCRPID(ctx, crpID); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveFarmer(ctx, crpID, farmerID); err != nil {
		return nil, err
	}
	return s.repo.FindByCRPID(ctx, crpID)
}

// UpdateVisitReport replaces the visit report wholesale.
func (s *CRPService) UpdateVisitReport(ctx context.Context, crpID string, report domain.VisitReport) (*domain.CRP, error) {
	if _, err := s.repo.FindActiveByCRPID(ctx, crpID); err != nil {
		return nil, err
	}
	if report.DateOfVisit.IsZero() {
		report.DateOfVisit = time.Now().UTC()
	}
	if err := s.repo.UpdateVisitReport(ctx, crpID, report); err != nil {
		return nil, err
	}
	return s.repo.FindByCRPID(ctx, crpID)
}

// Trainings returns the trainings conducted by the CRP, rebuilt from the
// canonical training collection on every read. Nothing is duplicated onto
// the CRP document, so the view cannot drift.
func (s *CRPService) Trainings(ctx context.Context, crpID string) ([]domain.Training, error) {
	if _, err := s.repo.FindActiveByCRPID(ctx, crpID); err != nil {
		return nil, err
	}
	return s.trainings.FindByCRP(ctx, crpID)
}
