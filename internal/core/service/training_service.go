package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

// TrainingService owns the canonical training records. Role-facing views are
// projections over this collection, so edits here are the only write path.
type TrainingService struct {
	repo ports.TrainingRepository
	log  zerolog.Logger
}

func NewTrainingService(repo ports.TrainingRepository, log zerolog.Logger) *TrainingService {
	return &TrainingService{repo: repo, log: log}
}

func (s *TrainingService) Create(ctx context.Context, t *domain.Training) (*domain.Training, error) {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.repo.Insert(ctx, t)
}

func (s *TrainingService) Get(ctx context.Context, id string) (*domain.Training, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TrainingService) List(ctx context.Context) ([]domain.Training, error) {
	return s.repo.FindAll(ctx)
}

func (s *TrainingService) Update(ctx context.Context, id string, t *domain.Training) (*domain.Training, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Subject = t.Subject
	existing.Attendees = t.Attendees
	if t.CRPID != "" {
		existing.CRPID = t.CRPID
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *TrainingService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ProblemService tracks issues reported against farmers.
type ProblemService struct {
	repo    ports.ProblemRepository
	farmers ports.FarmerRepository
	log     zerolog.Logger
}

func NewProblemService(repo ports.ProblemRepository, farmers ports.FarmerRepository, log zerolog.Logger) *ProblemService {
	return &ProblemService{repo: repo, farmers: farmers, log: log}
}

func (s *ProblemService) Create(ctx context.Context, p *domain.Problem) (*domain.Problem, error) {
	if _, err := s.farmers.FindActiveByFarmerID(ctx, p.FarmerID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.repo.Insert(ctx, p)
}

func (s *ProblemService) ListByFarmer(ctx context.Context, farmerID string) ([]domain.Problem, error) {
	return s.repo.FindByFarmer(ctx, farmerID)
}

func (s *ProblemService) Update(ctx context.Context, id string, p *domain.Problem) (*domain.Problem, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Issue = p.Issue
	existing.Description = p.Description
	existing.Solved = p.Solved
	existing.Image = p.Image
	existing.Video = p.Video
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ProblemService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
