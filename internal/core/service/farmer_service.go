package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

// FarmerService implements signup and CRUD over farmer records.
type FarmerService struct {
	repo   ports.FarmerRepository
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewFarmerService(repo ports.FarmerRepository, tokens ports.TokenService, log zerolog.Logger) *FarmerService {
	return &FarmerService{repo: repo, tokens: tokens, log: log}
}

// Signup registers a farmer account and returns a signed token for it.
func (s *FarmerService) Signup(ctx context.Context, in ports.FarmerSignupInput) (string, *domain.Farmer, error) {
	farmer, err := s.Create(ctx, in)
	if err != nil {
		return "", nil, err
	}
	token, err := s.tokens.Issue(domain.RoleFarmer, farmer.FarmerID)
	if err != nil {
		return "", nil, err
	}
	return token, farmer, nil
}

// Create inserts a farmer record without issuing a token. Uniqueness of
// email and farmer id is enforced by the store's unique indexes.
func (s *FarmerService) Create(ctx context.Context, in ports.FarmerSignupInput) (*domain.Farmer, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	farmer := &domain.Farmer{
		FarmerID:             in.FarmerID,
		FullName:             in.FullName,
		Age:                  in.Age,
		Gender:               in.Gender,
		ContactNumber:        in.ContactNumber,
		Village:              in.Village,
		District:             in.District,
		State:                in.State,
		LandSize:             in.LandSize,
		LandUnit:             in.LandUnit,
		CropGrown:            in.CropGrown,
		TypeOfIrrigation:     in.TypeOfIrrigation,
		LivelihoodActivities: []string{},
		WorkshopsOrTraining:  []string{},
		IssuesFaced:          []string{},
		Account: domain.Account{
			Email:        normalizeEmail(in.Email),
			PasswordHash: hash,
			Active:       true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, farmer); err != nil {
		return nil, err
	}
	s.log.Info().Str("farmer_id", farmer.FarmerID).Msg("farmer registered")
	return farmer, nil
}

func (s *FarmerService) Get(ctx context.Context, farmerID string) (*domain.Farmer, error) {
	return s.repo.FindByFarmerID(ctx, farmerID)
}

func (s *FarmerService) List(ctx context.Context) ([]domain.Farmer, error) {
	return s.repo.FindAll(ctx)
}

func (s *FarmerService) Update(ctx context.Context, farmerID string, in ports.FarmerUpdateInput) (*domain.Farmer, error) {
	farmer, err := s.repo.FindByFarmerID(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	farmer.FullName = in.FullName
	farmer.ContactNumber = in.ContactNumber
	farmer.Village = in.Village
	farmer.District = in.District
	farmer.State = in.State
	farmer.LandSize = in.LandSize
	farmer.LandUnit = in.LandUnit
	farmer.CropGrown = in.CropGrown
	farmer.TypeOfIrrigation = in.TypeOfIrrigation
	farmer.LivelihoodActivities = in.LivelihoodActivities
	farmer.WorkshopsOrTraining = in.WorkshopsOrTraining
	farmer.IssuesFaced = in.IssuesFaced
	farmer.OtherIssues = in.OtherIssues
	farmer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, farmerID, farmer); err != nil {
		return nil, err
	}
	return farmer, nil
}

// Deactivate soft-disables the account; auth flows never hard-delete.
func (s *FarmerService) Deactivate(ctx context.Context, farmerID string) error {
	return s.repo.Deactivate(ctx, farmerID)
}
