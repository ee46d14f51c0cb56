package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

// In-memory repository stubs shared by the service tests. They mirror the
// conditional-update contracts of the real repositories: assignment
// mutations check their precondition and report the typed conflict instead
// of writing.

// --- farmers ---

type stubFarmerRepo struct {
	farmers map[string]*domain.Farmer
}

func newStubFarmerRepo() *stubFarmerRepo {
	return &stubFarmerRepo{farmers: make(map[string]*domain.Farmer)}
}

func (r *stubFarmerRepo) add(f domain.Farmer) {
	r.farmers[f.FarmerID] = &f
}

func (r *stubFarmerRepo) Insert(_ context.Context, f *domain.Farmer) error {
	if _, exists := r.farmers[f.FarmerID]; exists {
		return domain.ErrAccountExists
	}
	clone := *f
	r.farmers[f.FarmerID] = &clone
	return nil
}

func (r *stubFarmerRepo) FindByFarmerID(_ context.Context, id string) (*domain.Farmer, error) {
	f, ok := r.farmers[id]
	if !ok {
		return nil, domain.ErrFarmerNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *stubFarmerRepo) FindActiveByFarmerID(ctx context.Context, id string) (*domain.Farmer, error) {
	f, err := r.FindByFarmerID(ctx, id)
	if err != nil || !f.Active {
		return nil, domain.ErrFarmerNotFound
	}
	return f, nil
}

func (r *stubFarmerRepo) FindAll(_ context.Context) ([]domain.Farmer, error) {
	out := []domain.Farmer{}
	for _, f := range r.farmers {
		out = append(out, *f)
	}
	return out, nil
}

func matchesFilter(f *domain.Farmer, filter ports.FarmerFilter) bool {
	if filter.District != "" && f.District != filter.District {
		return false
	}
	if filter.Crop != "" && f.CropGrown != filter.Crop {
		return false
	}
	return true
}

func (r *stubFarmerRepo) FindActiveByIDs(_ context.Context, ids []string, filter ports.FarmerFilter) ([]domain.Farmer, error) {
	out := []domain.Farmer{}
	for _, id := range ids {
		f, ok := r.farmers[id]
		if !ok || !f.Active || !matchesFilter(f, filter) {
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubFarmerRepo) CountActiveByIDs(ctx context.Context, ids []string) (int64, error) {
	found, err := r.FindActiveByIDs(ctx, ids, ports.FarmerFilter{})
	return int64(len(found)), err
}

func (r *stubFarmerRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.farmers)), nil
}

func (r *stubFarmerRepo) Update(_ context.Context, id string, f *domain.Farmer) error {
	if _, ok := r.farmers[id]; !ok {
		return domain.ErrFarmerNotFound
	}
	clone := *f
	r.farmers[id] = &clone
	return nil
}

func (r *stubFarmerRepo) Deactivate(_ context.Context, id string) error {
	f, ok := r.farmers[id]
	if !ok {
		return domain.ErrFarmerNotFound
	}
	f.Active = false
	return nil
}

func (r *stubFarmerRepo) FindByEmail(_ context.Context, email string) (*ports.AccountView, error) {
	for _, f := range r.farmers {
		if f.Email == email {
			return &ports.AccountView{ID: f.FarmerID, Name: f.FullName, Account: f.Account}, nil
		}
	}
	return nil, domain.ErrFarmerNotFound
}

func (r *stubFarmerRepo) FindActiveByID(ctx context.Context, id string) (*ports.AccountView, error) {
	f, err := r.FindActiveByFarmerID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.AccountView{ID: f.FarmerID, Name: f.FullName, Account: f.Account}, nil
}

func (r *stubFarmerRepo) UpdateLoginState(_ context.Context, id string, attempts int, lockUntil, lastLogin *time.Time) error {
	f, ok := r.farmers[id]
	if !ok {
		return domain.ErrFarmerNotFound
	}
	f.LoginAttempts = attempts
	f.LockUntil = lockUntil
	if lastLogin != nil {
		f.LastLogin = lastLogin
	}
	return nil
}

// --- crps ---

type stubCRPRepo struct {
	crps map[string]*domain.CRP
}

func newStubCRPRepo() *stubCRPRepo {
	return &stubCRPRepo{crps: make(map[string]*domain.CRP)}
}

func (r *stubCRPRepo) add(c domain.CRP) {
	r.crps[c.CRPID] = &c
}

func (r *stubCRPRepo) Insert(_ context.Context, c *domain.CRP) error {
	if _, exists := r.crps[c.CRPID]; exists {
		return domain.ErrAccountExists
	}
	clone := *c
	r.crps[c.CRPID] = &clone
	return nil
}

func (r *stubCRPRepo) FindByCRPID(_ context.Context, id string) (*domain.CRP, error) {
	c, ok := r.crps[id]
	if !ok {
		return nil, domain.ErrCRPNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCRPRepo) FindActiveByCRPID(ctx context.Context, id string) (*domain.CRP, error) {
	c, err := r.FindByCRPID(ctx, id)
	if err != nil || !c.Active {
		return nil, domain.ErrCRPNotFound
	}
	return c, nil
}

func (r *stubCRPRepo) FindAll(_ context.Context) ([]domain.CRP, error) {
	out := []domain.CRP{}
	for _, c := range r.crps {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCRPRepo) FindActiveByIDs(_ context.Context, ids []string) ([]domain.CRP, error) {
	out := []domain.CRP{}
	for _, id := range ids {
		if c, ok := r.crps[id]; ok && c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCRPRepo) CountActiveByIDs(ctx context.Context, ids []string) (int64, error) {
	found, err := r.FindActiveByIDs(ctx, ids)
	return int64(len(found)), err
}

func (r *stubCRPRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.crps)), nil
}

func (r *stubCRPRepo) Update(_ context.Context, id string, c *domain.CRP) error {
	if _, ok := r.crps[id]; !ok {
		return domain.ErrCRPNotFound
	}
	clone := *c
	r.crps[id] = &clone
	return nil
}

func (r *stubCRPRepo) UpdateVisitReport(_ context.Context, id string, report domain.VisitReport) error {
	c, ok := r.crps[id]
	if !ok {
		return domain.ErrCRPNotFound
	}
	c.Visit = report
	return nil
}

func (r *stubCRPRepo) AddFarmer(_ context.Context, crpID, farmerID string) error {
	c, ok := r.crps[crpID]
	if !ok || !c.Active || c.HasFarmer(farmerID) {
		return domain.ErrAlreadyAssigned
	}
	c.FarmerIDs = append(c.FarmerIDs, farmerID)
	return nil
}

func (r *stubCRPRepo) RemoveFarmer(_ context.Context, crpID, farmerID string) error {
	c, ok := r.crps[crpID]
	if !ok || !c.Active || !c.HasFarmer(farmerID) {
		return domain.ErrNotAssigned
	}
	kept := c.FarmerIDs[:0]
	for _, id := range c.FarmerIDs {
		if id != farmerID {
			kept = append(kept, id)
		}
	}
	c.FarmerIDs = kept
	return nil
}

func (r *stubCRPRepo) Deactivate(_ context.Context, id string) error {
	c, ok := r.crps[id]
	if !ok {
		return domain.ErrCRPNotFound
	}
	c.Active = false
	return nil
}

func (r *stubCRPRepo) FindByEmail(_ context.Context, email string) (*ports.AccountView, error) {
	for _, c := range r.crps {
		if c.Email == email {
			return &ports.AccountView{ID: c.CRPID, Name: c.CRPName, Account: c.Account}, nil
		}
	}
	return nil, domain.ErrCRPNotFound
}

func (r *stubCRPRepo) FindActiveByID(ctx context.Context, id string) (*ports.AccountView, error) {
	c, err := r.FindActiveByCRPID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.AccountView{ID: c.CRPID, Name: c.CRPName, Account: c.Account}, nil
}

func (r *stubCRPRepo) UpdateLoginState(_ context.Context, id string, attempts int, lockUntil, lastLogin *time.Time) error {
	c, ok := r.crps[id]
	if !ok {
		return domain.ErrCRPNotFound
	}
	c.LoginAttempts = attempts
	c.LockUntil = lockUntil
	if lastLogin != nil {
		c.LastLogin = lastLogin
	}
	return nil
}

// --- experts ---

type stubExpertRepo struct {
	experts map[string]*domain.Expert
}

func newStubExpertRepo() *stubExpertRepo {
	return &stubExpertRepo{experts: make(map[string]*domain.Expert)}
}

func (r *stubExpertRepo) add(e domain.Expert) {
	r.experts[e.ExpertID] = &e
}

func (r *stubExpertRepo) Insert(_ context.Context, e *domain.Expert) error {
	if _, exists := r.experts[e.ExpertID]; exists {
		return domain.ErrAccountExists
	}
	clone := *e
	r.experts[e.ExpertID] = &clone
	return nil
}

func (r *stubExpertRepo) FindByExpertID(_ context.Context, id string) (*domain.Expert, error) {
	e, ok := r.experts[id]
	if !ok {
		return nil, domain.ErrExpertNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubExpertRepo) FindActiveByExpertID(ctx context.Context, id string) (*domain.Expert, error) {
	e, err := r.FindByExpertID(ctx, id)
	if err != nil || !e.Active {
		return nil, domain.ErrExpertNotFound
	}
	return e, nil
}

func (r *stubExpertRepo) FindAll(_ context.Context) ([]domain.Expert, error) {
	out := []domain.Expert{}
	for _, e := range r.experts {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubExpertRepo) FindActiveBySupervisor(_ context.Context, supervisorID string) ([]domain.Expert, error) {
	out := []domain.Expert{}
	for _, e := range r.experts {
		if e.Active && e.SupervisorID == supervisorID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExpertRepo) FindActiveByLinkedCRP(_ context.Context, crpID string) (*domain.Expert, error) {
	for _, e := range r.experts {
		if e.Active && e.LinkedCRPID == crpID {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrExpertNotFound
}

func (r *stubExpertRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.experts)), nil
}

func (r *stubExpertRepo) Update(_ context.Context, id string, e *domain.Expert) error {
	if _, ok := r.experts[id]; !ok {
		return domain.ErrExpertNotFound
	}
	clone := *e
	r.experts[id] = &clone
	return nil
}

func (r *stubExpertRepo) UpdateRecommendations(_ context.Context, id string, rec domain.Recommendations) error {
	e, ok := r.experts[id]
	if !ok {
		return domain.ErrExpertNotFound
	}
	e.Review = rec
	return nil
}

func (r *stubExpertRepo) LinkCRP(_ context.Context, expertID, crpID string) error {
	e, ok := r.experts[expertID]
	if !ok || !e.Active || e.LinkedCRPID != "" {
		return domain.ErrExpertLinked
	}
	e.LinkedCRPID = crpID
	return nil
}

func (r *stubExpertRepo) UnlinkCRP(_ context.Context, expertID string) error {
	e, ok := r.experts[expertID]
	if !ok || !e.Active || e.LinkedCRPID == "" {
		return domain.ErrNoLinkedCRP
	}
	e.LinkedCRPID = ""
	return nil
}

func (r *stubExpertRepo) AddFarmer(_ context.Context, expertID, farmerID string) error {
	e, ok := r.experts[expertID]
	if !ok || !e.Active || e.HasFarmer(farmerID) {
		return domain.ErrAlreadyAssigned
	}
	e.FarmerIDs = append(e.FarmerIDs, farmerID)
	return nil
}

func (r *stubExpertRepo) RemoveFarmer(_ context.Context, expertID, farmerID string) error {
	e, ok := r.experts[expertID]
	if !ok || !e.Active || !e.HasFarmer(farmerID) {
		return domain.ErrNotAssigned
	}
	kept := e.FarmerIDs[:0]
	for _, id := range e.FarmerIDs {
		if id != farmerID {
			kept = append(kept, id)
		}
	}
	e.FarmerIDs = kept
	return nil
}

func (r *stubExpertRepo) SetSupervisor(_ context.Context, expertID, supervisorID string) error {
	e, ok := r.experts[expertID]
	if !ok || !e.Active || (e.SupervisorID != "" && e.SupervisorID != supervisorID) {
		return domain.ErrExpertClaimed
	}
	e.SupervisorID = supervisorID
	return nil
}

func (r *stubExpertRepo) UnsetSupervisor(_ context.Context, expertID, supervisorID string) error {
	e, ok := r.experts[expertID]
	if !ok || !e.Active || e.SupervisorID != supervisorID {
		return domain.ErrExpertNotUnder
	}
	e.SupervisorID = ""
	return nil
}

func (r *stubExpertRepo) Deactivate(_ context.Context, id string) error {
	e, ok := r.experts[id]
	if !ok {
		return domain.ErrExpertNotFound
	}
	e.Active = false
	return nil
}

func (r *stubExpertRepo) FindByEmail(_ context.Context, email string) (*ports.AccountView, error) {
	for _, e := range r.experts {
		if e.Email == email {
			return &ports.AccountView{ID: e.ExpertID, Name: e.ExpertName, Account: e.Account}, nil
		}
	}
	return nil, domain.ErrExpertNotFound
}

func (r *stubExpertRepo) FindActiveByID(ctx context.Context, id string) (*ports.AccountView, error) {
	e, err := r.FindActiveByExpertID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.AccountView{ID: e.ExpertID, Name: e.ExpertName, Account: e.Account}, nil
}

func (r *stubExpertRepo) UpdateLoginState(_ context.Context, id string, attempts int, lockUntil, lastLogin *time.Time) error {
	e, ok := r.experts[id]
	if !ok {
		return domain.ErrExpertNotFound
	}
	e.LoginAttempts = attempts
	e.LockUntil = lockUntil
	if lastLogin != nil {
		e.LastLogin = lastLogin
	}
	return nil
}

// --- supervisors ---

type stubSupervisorRepo struct {
	supervisors map[string]*domain.Supervisor
}

func newStubSupervisorRepo() *stubSupervisorRepo {
	return &stubSupervisorRepo{supervisors: make(map[string]*domain.Supervisor)}
}

func (r *stubSupervisorRepo) add(s domain.Supervisor) {
	r.supervisors[s.SupervisorID] = &s
}

func (r *stubSupervisorRepo) Insert(_ context.Context, s *domain.Supervisor) error {
	if _, exists := r.supervisors[s.SupervisorID]; exists {
		return domain.ErrAccountExists
	}
	clone := *s
	r.supervisors[s.SupervisorID] = &clone
	return nil
}

func (r *stubSupervisorRepo) FindBySupervisorID(_ context.Context, id string) (*domain.Supervisor, error) {
	s, ok := r.supervisors[id]
	if !ok {
		return nil, domain.ErrSupervisorNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSupervisorRepo) FindActiveBySupervisorID(ctx context.Context, id string) (*domain.Supervisor, error) {
	s, err := r.FindBySupervisorID(ctx, id)
	if err != nil || !s.Active {
		return nil, domain.ErrSupervisorNotFound
	}
	return s, nil
}

func (r *stubSupervisorRepo) Update(_ context.Context, id string, s *domain.Supervisor) error {
	if _, ok := r.supervisors[id]; !ok {
		return domain.ErrSupervisorNotFound
	}
	clone := *s
	r.supervisors[id] = &clone
	return nil
}

func (r *stubSupervisorRepo) AddFollowUpTask(_ context.Context, id string, task domain.FollowUpTask) error {
	s, ok := r.supervisors[id]
	if !ok {
		return domain.ErrSupervisorNotFound
	}
	s.FollowUpTasks = append(s.FollowUpTasks, task)
	return nil
}

func (r *stubSupervisorRepo) UpdateFollowUpTaskStatus(_ context.Context, id, taskID, status string) error {
	s, ok := r.supervisors[id]
	if !ok {
		return domain.ErrSupervisorNotFound
	}
	for i := range s.FollowUpTasks {
		if s.FollowUpTasks[i].TaskID == taskID {
			s.FollowUpTasks[i].Status = status
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *stubSupervisorRepo) AppendExportEntry(_ context.Context, id string, entry domain.ExportEntry) error {
	s, ok := r.supervisors[id]
	if !ok {
		return domain.ErrSupervisorNotFound
	}
	s.ExportHistory = append(s.ExportHistory, entry)
	return nil
}

func (r *stubSupervisorRepo) FindByEmail(_ context.Context, email string) (*ports.AccountView, error) {
	for _, s := range r.supervisors {
		if s.Email == email {
			return &ports.AccountView{ID: s.SupervisorID, Name: s.SupervisorName, Account: s.Account}, nil
		}
	}
	return nil, domain.ErrSupervisorNotFound
}

func (r *stubSupervisorRepo) FindActiveByID(ctx context.Context, id string) (*ports.AccountView, error) {
	s, err := r.FindActiveBySupervisorID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.AccountView{ID: s.SupervisorID, Name: s.SupervisorName, Account: s.Account}, nil
}

func (r *stubSupervisorRepo) UpdateLoginState(_ context.Context, id string, attempts int, lockUntil, lastLogin *time.Time) error {
	s, ok := r.supervisors[id]
	if !ok {
		return domain.ErrSupervisorNotFound
	}
	s.LoginAttempts = attempts
	s.LockUntil = lockUntil
	if lastLogin != nil {
		s.LastLogin = lastLogin
	}
	return nil
}

// --- trainings ---

type stubTrainingRepo struct {
	trainings map[string]*domain.Training
	seq       int
}

func newStubTrainingRepo() *stubTrainingRepo {
	return &stubTrainingRepo{trainings: make(map[string]*domain.Training)}
}

func (r *stubTrainingRepo) Insert(_ context.Context, t *domain.Training) (*domain.Training, error) {
	r.seq++
	clone := *t
	clone.ID = fmt.Sprintf("training-%d", r.seq)
	r.trainings[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTrainingRepo) FindByID(_ context.Context, id string) (*domain.Training, error) {
	t, ok := r.trainings[id]
	if !ok {
		return nil, domain.ErrTrainingNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTrainingRepo) FindAll(_ context.Context) ([]domain.Training, error) {
	out := []domain.Training{}
	for _, t := range r.trainings {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTrainingRepo) FindByCRP(_ context.Context, crpID string) ([]domain.Training, error) {
	out := []domain.Training{}
	for _, t := range r.trainings {
		if t.CRPID == crpID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTrainingRepo) Update(_ context.Context, id string, t *domain.Training) error {
	if _, ok := r.trainings[id]; !ok {
		return domain.ErrTrainingNotFound
	}
	clone := *t
	r.trainings[id] = &clone
	return nil
}

func (r *stubTrainingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.trainings[id]; !ok {
		return domain.ErrTrainingNotFound
	}
	delete(r.trainings, id)
	return nil
}

// --- problems ---

type stubProblemRepo struct {
	problems map[string]*domain.Problem
	seq      int
}

func newStubProblemRepo() *stubProblemRepo {
	return &stubProblemRepo{problems: make(map[string]*domain.Problem)}
}

func (r *stubProblemRepo) Insert(_ context.Context, p *domain.Problem) (*domain.Problem, error) {
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("problem-%d", r.seq)
	r.problems[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProblemRepo) FindByID(_ context.Context, id string) (*domain.Problem, error) {
	p, ok := r.problems[id]
	if !ok {
		return nil, domain.ErrProblemNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProblemRepo) FindByFarmer(_ context.Context, farmerID string) ([]domain.Problem, error) {
	out := []domain.Problem{}
	for _, p := range r.problems {
		if p.FarmerID == farmerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProblemRepo) Update(_ context.Context, id string, p *domain.Problem) error {
	if _, ok := r.problems[id]; !ok {
		return domain.ErrProblemNotFound
	}
	clone := *p
	r.problems[id] = &clone
	return nil
}

func (r *stubProblemRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.problems[id]; !ok {
		return domain.ErrProblemNotFound
	}
	delete(r.problems, id)
	return nil
}
