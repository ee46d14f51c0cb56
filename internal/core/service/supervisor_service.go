package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

// SupervisorService implements the supervisor's cross-cutting rollups over
// the Supervisor → Expert → CRP → Farmer hierarchy, plus follow-up tasks and
// exports.
type SupervisorService struct {
	repo    ports.SupervisorRepository
	experts ports.ExpertRepository
	crps    ports.CRPRepository
	farmers ports.FarmerRepository
	tokens  ports.TokenService
	log     zerolog.Logger
	now     func() time.Time
}

func NewSupervisorService(
	repo ports.SupervisorRepository,
	experts ports.ExpertRepository,
	crps ports.CRPRepository,
	farmers ports.FarmerRepository,
	tokens ports.TokenService,
	log zerolog.Logger,
) *SupervisorService {
	return &SupervisorService{
		repo:    repo,
		experts: experts,
		crps:    crps,
		farmers: farmers,
		tokens:  tokens,
		log:     log,
		now:     time.Now,
	}
}

func (s *SupervisorService) Signup(ctx context.Context, in ports.SupervisorSignupInput) (string, *domain.Supervisor, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}

	now := s.now().UTC()
	sup := &domain.Supervisor{
		SupervisorID:   in.SupervisorID,
		SupervisorName: in.SupervisorName,
		Phone:          in.Phone,
		Department:     in.Department,
		Region:         in.Region,
		AccessLevel:    in.AccessLevel,
		PriorityAreas:  []string{},
		FollowUpTasks:  []domain.FollowUpTask{},
		ExportHistory:  []domain.ExportEntry{},
		Account: domain.Account{
			Email:        normalizeEmail(in.Email),
			PasswordHash: hash,
			Active:       true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, sup); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(domain.RoleSupervisor, sup.SupervisorID)
	if err != nil {
		return "", nil, err
	}
	s.log.Info().Str("supervisor_id", sup.SupervisorID).Msg("supervisor registered")
	return token, sup, nil
}

func (s *SupervisorService) Get(ctx context.Context, supervisorID string) (*domain.Supervisor, error) {
	return s.repo.FindBySupervisorID(ctx, supervisorID)
}

func (s *SupervisorService) Update(ctx context.Context, supervisorID string, in ports.SupervisorUpdateInput) (*domain.Supervisor, error) {
	sup, err := s.repo.FindBySupervisorID(ctx, supervisorID)
	if err != nil {
		return nil, err
	}

	sup.SupervisorName = in.SupervisorName
	sup.Phone = in.Phone
	sup.Department = in.Department
	sup.Region = in.Region
	if in.PriorityAreas != nil {
		sup.PriorityAreas = in.PriorityAreas
	}
	sup.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, supervisorID, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

// Overview returns system-wide record counts.
func (s *SupervisorService) Overview(ctx context.Context) (*ports.OverviewStats, error) {
	farmers, err := s.farmers.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	crps, err := s.crps.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	experts, err := s.experts.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.OverviewStats{
		TotalFarmers: farmers,
		TotalCRPs:    crps,
		TotalExperts: experts,
		LastUpdated:  s.now().UTC(),
	}, nil
}

// AggregatedFarmerData builds frequency tables keyed by district, crop and
// issue in a single pass over all farmer records. A farmer contributes to
// every issue bucket it lists.
func (s *SupervisorService) AggregatedFarmerData(ctx context.Context) (*ports.AggregatedFarmerData, error) {
	farmers, err := s.farmers.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byDistrict := domain.FrequencyTable{}
	byCrop := domain.FrequencyTable{}
	byIssue := domain.FrequencyTable{}
	for i := range farmers {
		f := &farmers[i]
		byDistrict[f.District]++
		byCrop[f.CropGrown]++
		for _, issue := range f.IssuesFaced {
			byIssue[issue]++
		}
	}

	return &ports.AggregatedFarmerData{
		TotalFarmers:      len(farmers),
		FarmersByDistrict: byDistrict,
		FarmersByCrop:     byCrop,
		FarmersByIssue:    byIssue,
	}, nil
}

// CRPReports lists every CRP's latest visit report status, most recent first.
func (s *SupervisorService) CRPReports(ctx context.Context) ([]ports.CRPReportStatus, error) {
	crps, err := s.crps.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]ports.CRPReportStatus, 0, len(crps))
	for i := range crps {
		c := &crps[i]
		reports = append(reports, ports.CRPReportStatus{
			CRPID:       c.CRPID,
			CRPName:     c.CRPName,
			DateOfVisit: c.Visit.DateOfVisit,
			Status:      domain.TaskCompleted,
			LastUpdated: c.UpdatedAt,
		})
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].DateOfVisit.After(reports[j].DateOfVisit)
	})
	return reports, nil
}

// ExpertRecommendations summarizes every expert's advisory output, most
// recent review first.
func (s *SupervisorService) ExpertRecommendations(ctx context.Context) ([]ports.RecommendationSummary, error) {
	experts, err := s.experts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.RecommendationSummary, 0, len(experts))
	for i := range experts {
		e := &experts[i]
		summaries = append(summaries, ports.RecommendationSummary{
			ExpertID:            e.ExpertID,
			ExpertName:          e.ExpertName,
			RecommendationCount: len(e.Review.SuggestedBestPractices),
			FollowUpRequired:    e.Review.FollowUpRequired,
			DateOfReview:        e.Review.DateOfReview,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].DateOfReview.After(summaries[j].DateOfReview)
	})
	return summaries, nil
}

func (s *SupervisorService) CreateFollowUpTask(ctx context.Context, supervisorID string, task domain.FollowUpTask) (*domain.FollowUpTask, error) {
	if _, err := s.repo.FindActiveBySupervisorID(ctx, supervisorID); err != nil {
		return nil, err
	}

	task.TaskID = fmt.Sprintf("task-%d", s.now().UnixNano())
	task.Status = domain.TaskPending
	if err := s.repo.AddFollowUpTask(ctx, supervisorID, task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *SupervisorService) UpdateFollowUpTask(ctx context.Context, supervisorID, taskID, status string) error {
	if _, err := s.repo.FindActiveBySupervisorID(ctx, supervisorID); err != nil {
		return err
	}
	return s.repo.UpdateFollowUpTaskStatus(ctx, supervisorID, taskID, status)
}

// Export returns a full dump of one collection and records the export on the
// supervisor document.
func (s *SupervisorService) Export(ctx context.Context, supervisorID, exportType string) (*ports.ExportResult, error) {
	if _, err := s.repo.FindActiveBySupervisorID(ctx, supervisorID); err != nil {
		return nil, err
	}

	var (
		data  any
		count int
	)
	switch exportType {
	case "farmers":
		rows, err := s.farmers.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		data, count = rows, len(rows)
	case "crp":
		rows, err := s.crps.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		data, count = rows, len(rows)
	case "expert":
		rows, err := s.experts.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		data, count = rows, len(rows)
	default:
		return nil, fmt.Errorf("%w: unknown export type %q", domain.ErrValidation, exportType)
	}

	entry := domain.ExportEntry{
		ExportType: exportType,
		ExportDate: s.now().UTC(),
		FileName:   fmt.Sprintf("%s-%s.json", exportType, s.now().UTC().Format("20060102-150405")),
	}
	if err := s.repo.AppendExportEntry(ctx, supervisorID, entry); err != nil {
		s.log.Warn().Err(err).Str("supervisor_id", supervisorID).Msg("failed to record export history")
	}

	return &ports.ExportResult{ExportType: exportType, Count: count, Data: data}, nil
}

// Experts lists the active experts assigned to the supervisor.
func (s *SupervisorService) Experts(ctx context.Context, supervisorID string) ([]domain.Expert, error) {
	if _, err := s.repo.FindActiveBySupervisorID(ctx, supervisorID); err != nil {
		return nil, err
	}
	return s.experts.FindActiveBySupervisor(ctx, supervisorID)
}

// CRPs resolves the deduplicated union of linked CRP ids across the
// supervisor's active experts.
func (s *SupervisorService) CRPs(ctx context.Context, supervisorID string) ([]domain.CRP, error) {
	if _, err := s.repo.FindActiveBySupervisorID(ctx, supervisorID); err != nil {
		return nil, err
	}
	experts, err := s.experts.FindActiveBySupervisor(ctx, supervisorID)
	if err != nil {
		return nil, err
	}
	return s.crps.FindActiveByIDs(ctx, linkedCRPIDs(experts))
}

// Farmers resolves the deduplicated union of farmer ids across the
// supervisor's active experts.
func (s *SupervisorService) Farmers(ctx context.Context, supervisorID string) ([]domain.Farmer, error) {
	if _, err := s.repo.FindActiveBySupervisorID(ctx, supervisorID); err != nil {
		return nil, err
	}
	experts, err := s.experts.FindActiveBySupervisor(ctx, supervisorID)
	if err != nil {
		return nil, err
	}
	return s.farmers.FindActiveByIDs(ctx, unionFarmerIDs(experts), ports.FarmerFilter{})
}

// Dashboard walks the full hierarchy: active experts under the supervisor,
// the deduplicated unions of their CRP and farmer ids, and counts resolved
// against the active records only. Farmers shared between experts are
// counted once.
func (s *SupervisorService) Dashboard(ctx context.Context, supervisorID string) (*ports.SupervisorDashboard, error) {
	sup, err := s.repo.FindActiveBySupervisorID(ctx, supervisorID)
	if err != nil {
		return nil, err
	}

	experts, err := s.experts.FindActiveBySupervisor(ctx, supervisorID)
	if err != nil {
		return nil, err
	}

	crpCount, err := s.crps.CountActiveByIDs(ctx, linkedCRPIDs(experts))
	if err != nil {
		return nil, err
	}
	farmerCount, err := s.farmers.CountActiveByIDs(ctx, unionFarmerIDs(experts))
	if err != nil {
		return nil, err
	}

	recent := make([]ports.ExpertSummary, 0, len(experts))
	for i := range experts {
		e := &experts[i]
		recent = append(recent, ports.ExpertSummary{
			ExpertID:       e.ExpertID,
			ExpertName:     e.ExpertName,
			Specialization: e.Specialization,
			LastLogin:      e.LastLogin,
		})
	}
	sort.Slice(recent, func(i, j int) bool {
		li, lj := recent[i].LastLogin, recent[j].LastLogin
		switch {
		case li == nil:
			return false
		case lj == nil:
			return true
		default:
			return li.After(*lj)
		}
	})
	if len(recent) > dashboardRecentLimit {
		recent = recent[:dashboardRecentLimit]
	}

	return &ports.SupervisorDashboard{
		SupervisorID:   sup.SupervisorID,
		SupervisorName: sup.SupervisorName,
		Statistics: ports.SupervisorStatistics{
			TotalExperts: int64(len(experts)),
			TotalCRPs:    crpCount,
			TotalFarmers: farmerCount,
		},
		RecentExperts: recent,
	}, nil
}

// AssignExpert places an expert under the supervisor. An expert already held
// by a different supervisor rejects the transition.
func (s *SupervisorService) AssignExpert(ctx context.Context, supervisorID, expertID string) (*domain.Expert, error) {
	if _, err := s.repo.FindActiveBySupervisorID(ctx, supervisorID); err != nil {
		return nil, err
	}
	if _, err := s.experts.FindActiveByExpertID(ctx, expertID); err != nil {
		return nil, err
	}
	if err := s.experts.SetSupervisor(ctx, expertID, supervisorID); err != nil {
		return nil, err
	}
	return s.experts.FindByExpertID(ctx, expertID)
}

func (s *SupervisorService) RemoveExpert(ctx context.Context, supervisorID, expertID string) (*domain.Expert, error) {
	if _, err := s.repo.FindActiveBySupervisorID(ctx, supervisorID); err != nil {
		return nil, err
	}
	if err := s.experts.UnsetSupervisor(ctx, expertID, supervisorID); err != nil {
		return nil, err
	}
	return s.experts.FindByExpertID(ctx, expertID)
}

// linkedCRPIDs collects the deduplicated linked CRP ids across experts.
func linkedCRPIDs(experts []domain.Expert) []string {
	seen := make(map[string]struct{}, len(experts))
	ids := make([]string, 0, len(experts))
	for i := range experts {
		id := experts[i].LinkedCRPID
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// unionFarmerIDs collects the deduplicated union of farmer ids across
// experts so shared farmers are never double-counted.
func unionFarmerIDs(experts []domain.Expert) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for i := range experts {
		for _, id := range experts[i].FarmerIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
