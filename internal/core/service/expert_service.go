package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

// ExpertService implements expert signup, CRUD, the one-to-one CRP link,
// farmer assignment and the expert dashboard rollup.
type ExpertService struct {
	repo    ports.ExpertRepository
	crps    ports.CRPRepository
	farmers ports.FarmerRepository
	tokens  ports.TokenService
	log     zerolog.Logger
}

func NewExpertService(repo ports.ExpertRepository, crps ports.CRPRepository, farmers ports.FarmerRepository, tokens ports.TokenService, log zerolog.Logger) *ExpertService {
	return &ExpertService{repo: repo, crps: crps, farmers: farmers, tokens: tokens, log: log}
}

func (s *ExpertService) Signup(ctx context.Context, in ports.ExpertSignupInput) (string, *domain.Expert, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	expert := &domain.Expert{
		ExpertID:       in.ExpertID,
		ExpertName:     in.ExpertName,
		Phone:          in.Phone,
		Specialization: in.Specialization,
		Qualification:  in.Qualification,
		Experience:     in.Experience,
		FarmerIDs:      []string{},
		Review: domain.Recommendations{
			DateOfReview:           now,
			SuggestedBestPractices: []string{},
			ResourceNeeds:          []string{},
		},
		Account: domain.Account{
			Email:        normalizeEmail(in.Email),
			PasswordHash: hash,
			Active:       true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, expert); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(domain.RoleExpert, expert.ExpertID)
	if err != nil {
		return "", nil, err
	}
	s.log.Info().Str("expert_id", expert.ExpertID).Msg("expert registered")
	return token, expert, nil
}

func (s *ExpertService) Get(ctx context.Context, expertID string) (*domain.Expert, error) {
	return s.repo.FindByExpertID(ctx, expertID)
}

func (s *ExpertService) List(ctx context.Context) ([]domain.Expert, error) {
	return s.repo.FindAll(ctx)
}

func (s *ExpertService) Update(ctx context.Context, expertID string, in ports.ExpertUpdateInput) (*domain.Expert, error) {
	expert, err := s.repo.FindByExpertID(ctx, expertID)
	if err != nil {
		return nil, err
	}

	expert.ExpertName = in.ExpertName
	expert.Phone = in.Phone
	expert.Specialization = in.Specialization
	expert.Qualification = in.Qualification
	expert.Experience = in.Experience
	expert.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, expertID, expert); err != nil {
		return nil, err
	}
	return expert, nil
}

func (s *ExpertService) Deactivate(ctx context.Context, expertID string) error {
	return s.repo.Deactivate(ctx, expertID)
}

// Dashboard computes the expert rollup: the zero-or-one linked CRP, farmer
// count, recommendation counts and the first five assigned farmers.
func (s *ExpertService) Dashboard(ctx context.Context, expertID string) (*ports.ExpertDashboard, error) {
	expert, err := s.repo.FindActiveByExpertID(ctx, expertID)
	if err != nil {
		return nil, err
	}

	crpCount := 0
	if expert.LinkedCRPID != "" {
		crpCount = 1
	}

	head := expert.FarmerIDs
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

	return &ports.ExpertDashboard{
		ExpertID:       expert.ExpertID,
		ExpertName:     expert.ExpertName,
		Specialization: expert.Specialization,
		Statistics: ports.ExpertStatistics{
			TotalCRPs:            crpCount,
			TotalFarmers:         len(expert.FarmerIDs),
			TotalRecommendations: len(expert.Review.SuggestedBestPractices),
			TotalResourceNeeds:   len(expert.Review.ResourceNeeds),
			FollowUpRequired:     expert.Review.FollowUpRequired,
		},
		RecentFarmer: slices,
	}, nil
}

// CRPs returns the linked CRP as a zero-or-one element list.
func (s *ExpertService) CRPs(ctx context.Context, expertID string) ([]domain.CRP, error) {
	expert, err := s.repo.FindActiveByExpertID(ctx, expertID)
	if err != nil {
		return nil, err
	}
	if expert.LinkedCRPID == "" {
		return []domain.CRP{}, nil
	}
	return s.crps.FindActiveByIDs(ctx, []string{expert.LinkedCRPID})
}

func (s *ExpertService) Farmers(ctx context.Context, expertID string) ([]domain.Farmer, error) {
	expert, err := s.repo.FindActiveByExpertID(ctx, expertID)
	if err != nil {
		return nil, err
	}
	return s.farmers.FindActiveByIDs(ctx, expert.FarmerIDs, ports.FarmerFilter{})
}

// LinkCRP links a CRP to the expert. The link is one-to-one on both sides:
// an expert holding a link and a CRP held by a different active expert both
// reject the transition before anything is written.
func (s *ExpertService) LinkCRP(ctx context.Context, expertID, crpID string) (*domain.Expert, error) {
	if _, err := s.repo.FindActiveByExpertID(ctx, expertID); err != nil {
		return nil, err
	}
	if _, err := s.crps.FindActiveByCRPID(ctx, crpID); err != nil {
		return nil, err
	}

	// The store cannot enforce the CRP side of the one-to-one link, so scan
	// for a conflicting holder explicitly.
	holder, err := s.repo.FindActiveByLinkedCRP(ctx, crpID)
	if err != nil && !errors.Is(err, domain.ErrExpertNotFound) {
		return nil, err
	}
	if holder != nil && holder.ExpertID != expertID {
		return nil, domain.ErrCRPAlreadyLinked
	}

	if err := s.repo.LinkCRP(ctx, expertID, crpID); err != nil {
		return nil, err
	}
	return s.repo.FindByExpertID(ctx, expertID)
}

func (s *ExpertService) UnlinkCRP(ctx context.Context, expertID string) (*domain.Expert, error) {
	if _, err := s.repo.FindActiveByExpertID(ctx, expertID); err != nil {
		return nil, err
	}
	if err := s.repo.UnlinkCRP(ctx, expertID); err != nil {
		return nil, err
	}
	return s.repo.FindByExpertID(ctx, expertID)
}

func (s *ExpertService) AddFarmer(ctx context.Context, expertID, farmerID string) (*domain.Expert, error) {
	if _, err := s.repo.FindActiveByExpertID(ctx, expertID); err != nil {
		return nil, err
	}
	if _, err := s.farmers.FindActiveByFarmerID(ctx, farmerID); err != nil {
		return nil, err
	}
	if err := s.repo.AddFarmer(ctx, expertID, farmerID); err != nil {
		return nil, err
	}
	return s.repo.FindByExpertID(ctx, expertID)
}

func (s *ExpertService) RemoveFarmer(ctx context.Context, expertID, farmerID string) (*domain.Expert, error) {
	if _, err := s.repo.FindActiveByExpertID(ctx, expertID); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveFarmer(ctx, expertID, farmerID); err != nil {
		return nil, err
	}
	return s.repo.FindByExpertID(ctx, expertID)
}

// UpdateRecommendations replaces the advisory output wholesale and stamps
// the review date.
func (s *ExpertService) UpdateRecommendations(ctx context.Context, expertID string, rec domain.Recommendations) (*domain.Expert, error) {
	if _, err := s.repo.FindActiveByExpertID(ctx, expertID); err != nil {
		return nil, err
	}
	if rec.DateOfReview.IsZero() {
		rec.DateOfReview = time.Now().UTC()
	}
	if err := s.repo.UpdateRecommendations(ctx, expertID, rec); err != nil {
		return nil, err
	}
	return s.repo.FindByExpertID(ctx, expertID)
}
