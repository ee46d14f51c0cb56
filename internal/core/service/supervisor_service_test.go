package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
)

func activeSupervisor(id string) domain.Supervisor {
	return domain.Supervisor{
		SupervisorID:   id,
		SupervisorName: "Supervisor " + id,
		AccessLevel:    domain.AccessSupervisor,
		Account:        domain.Account{Email: id + "@example.com", Active: true},
	}
}

type supervisorFixture struct {
	svc         *SupervisorService
	supervisors *stubSupervisorRepo
	experts     *stubExpertRepo
	crps        *stubCRPRepo
	farmers     *stubFarmerRepo
}

func newSupervisorFixture() *supervisorFixture {
	f := &supervisorFixture{
		supervisors: newStubSupervisorRepo(),
		experts:     newStubExpertRepo(),
		crps:        newStubCRPRepo(),
		farmers:     newStubFarmerRepo(),
	}
	f.svc = NewSupervisorService(f.supervisors, f.experts, f.crps, f.farmers,
		NewTokenService("test-secret", time.Hour), zerolog.Nop())
	return f
}

func TestSupervisorService_Dashboard_SharedFarmerCountedOnce(t *testing.T) {
	f := newSupervisorFixture()
	f.supervisors.add(activeSupervisor("sup-1"))

	e1 := activeExpert("expert-1")
	e1.SupervisorID = "sup-1"
	e1.LinkedCRPID = "crp-1"
	e1.FarmerIDs = []string{"farmer-1", "farmer-2"}
	f.experts.add(e1)

	e2 := activeExpert("expert-2")
	e2.SupervisorID = "sup-1"
	e2.LinkedCRPID = "crp-2"
	e2.FarmerIDs = []string{"farmer-1", "farmer-3"}
	f.experts.add(e2)

	// An expert under a different supervisor never contributes.
	e3 := activeExpert("expert-3")
	e3.SupervisorID = "sup-2"
	e3.FarmerIDs = []string{"farmer-4"}
	f.experts.add(e3)

	f.crps.add(activeCRP("crp-1"))
	f.crps.add(activeCRP("crp-2"))
	for _, id := range []string{"farmer-1", "farmer-2", "farmer-3", "farmer-4"} {
		f.farmers.add(activeFarmer(id, "Nashik", "grapes"))
	}

	dash, err := f.svc.Dashboard(context.Background(), "sup-1")
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.Statistics.TotalExperts != 2 {
		t.Errorf("TotalExperts = %d, want 2", dash.Statistics.TotalExperts)
	}
	if dash.Statistics.TotalCRPs != 2 {
		t.Errorf("TotalCRPs = %d, want 2", dash.Statistics.TotalCRPs)
	}
	if dash.Statistics.TotalFarmers != 3 {
		t.Errorf("TotalFarmers = %d, want 3 (shared farmer counted once)", dash.Statistics.TotalFarmers)
	}
}

func TestSupervisorService_CRPs_DeduplicatesLinks(t *testing.T) {
	f := newSupervisorFixture()
	f.supervisors.add(activeSupervisor("sup-1"))

	// Only one expert can hold a CRP at a time, but a stale link on a second
	// expert must still not produce a duplicate row.
	for _, expertID := range []string{"expert-1", "expert-2"} {
		e := activeExpert(expertID)
		e.SupervisorID = "sup-1"
		e.LinkedCRPID = "crp-1"
		f.experts.add(e)
	}
	f.crps.add(activeCRP("crp-1"))

	crps, err := f.svc.CRPs(context.Background(), "sup-1")
	if err != nil {
		t.Fatalf("CRPs: %v", err)
	}
	if len(crps) != 1 {
		t.Fatalf("got %d CRPs, want 1", len(crps))
	}
}

func TestSupervisorService_AggregatedFarmerData(t *testing.T) {
	f := newSupervisorFixture()

	a := activeFarmer("farmer-1", "Nashik", "grapes")
	a.IssuesFaced = []string{"pests", "water"}
	b := activeFarmer("farmer-2", "Nashik", "onion")
	b.IssuesFaced = []string{"pests"}
	c := activeFarmer("farmer-3", "Pune", "grapes")
	f.farmers.add(a)
	f.farmers.add(b)
	f.farmers.add(c)

	agg, err := f.svc.AggregatedFarmerData(context.Background())
	if err != nil {
		t.Fatalf("AggregatedFarmerData: %v", err)
	}
	if agg.TotalFarmers != 3 {
		t.Errorf("TotalFarmers = %d, want 3", agg.TotalFarmers)
	}
	if agg.FarmersByDistrict["Nashik"] != 2 || agg.FarmersByDistrict["Pune"] != 1 {
		t.Errorf("FarmersByDistrict = %v", agg.FarmersByDistrict)
	}
	if agg.FarmersByCrop["grapes"] != 2 || agg.FarmersByCrop["onion"] != 1 {
		t.Errorf("FarmersByCrop = %v", agg.FarmersByCrop)
	}
	if agg.FarmersByIssue["pests"] != 2 || agg.FarmersByIssue["water"] != 1 {
		t.Errorf("FarmersByIssue = %v", agg.FarmersByIssue)
	}
}

func TestSupervisorService_CRPReports_MostRecentFirst(t *testing.T) {
	f := newSupervisorFixture()

	older := activeCRP("crp-1")
	older.Visit.DateOfVisit = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := activeCRP("crp-2")
	newer.Visit.DateOfVisit = time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	f.crps.add(older)
	f.crps.add(newer)

	reports, err := f.svc.CRPReports(context.Background())
	if err != nil {
		t.Fatalf("CRPReports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].CRPID != "crp-2" || reports[1].CRPID != "crp-1" {
		t.Fatalf("wrong order: %q then %q", reports[0].CRPID, reports[1].CRPID)
	}
}

func TestSupervisorService_FollowUpTasks(t *testing.T) {
	f := newSupervisorFixture()
	f.supervisors.add(activeSupervisor("sup-1"))

	task, err := f.svc.CreateFollowUpTask(context.Background(), "sup-1", domain.FollowUpTask{
		Description: "verify visit report for crp-1",
		AssignedTo:  "expert-1",
		DueDate:     time.Now().Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateFollowUpTask: %v", err)
	}
	if task.TaskID == "" {
		t.Fatal("task id not assigned")
	}
	if task.Status != domain.TaskPending {
		t.Fatalf("Status = %q, want %q", task.Status, domain.TaskPending)
	}

	if err := f.svc.UpdateFollowUpTask(context.Background(), "sup-1", task.TaskID, domain.TaskCompleted); err != nil {
		t.Fatalf("UpdateFollowUpTask: %v", err)
	}
	sup, err := f.svc.Get(context.Background(), "sup-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(sup.FollowUpTasks) != 1 || sup.FollowUpTasks[0].Status != domain.TaskCompleted {
		t.Fatalf("tasks = %+v", sup.FollowUpTasks)
	}

	if err := f.svc.UpdateFollowUpTask(context.Background(), "sup-1", "task-missing", domain.TaskCompleted); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("unknown task: got %v, want ErrTaskNotFound", err)
	}
}

func TestSupervisorService_Export(t *testing.T) {
	f := newSupervisorFixture()
	f.supervisors.add(activeSupervisor("sup-1"))
	f.farmers.add(activeFarmer("farmer-1", "Nashik", "grapes"))
	f.farmers.add(activeFarmer("farmer-2", "Pune", "onion"))

	res, err := f.svc.Export(context.Background(), "sup-1", "farmers")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Count != 2 {
		t.Errorf("Count = %d, want 2", res.Count)
	}

	sup, err := f.svc.Get(context.Background(), "sup-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(sup.ExportHistory) != 1 || sup.ExportHistory[0].ExportType != "farmers" {
		t.Fatalf("export history = %+v", sup.ExportHistory)
	}
}

func TestSupervisorService_Export_UnknownType(t *testing.T) {
	f := newSupervisorFixture()
	f.supervisors.add(activeSupervisor("sup-1"))

	if _, err := f.svc.Export(context.Background(), "sup-1", "problems"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestSupervisorService_AssignExpert(t *testing.T) {
	f := newSupervisorFixture()
	f.supervisors.add(activeSupervisor("sup-1"))
	f.supervisors.add(activeSupervisor("sup-2"))
	f.experts.add(activeExpert("expert-1"))

	expert, err := f.svc.AssignExpert(context.Background(), "sup-1", "expert-1")
	if err != nil {
		t.Fatalf("AssignExpert: %v", err)
	}
	if expert.SupervisorID != "sup-1" {
		t.Fatalf("SupervisorID = %q, want sup-1", expert.SupervisorID)
	}

	// Re-assigning by the holder is a no-op, not a conflict.
	if _, err := f.svc.AssignExpert(context.Background(), "sup-1", "expert-1"); err != nil {
		t.Fatalf("idempotent assign: %v", err)
	}

	if _, err := f.svc.AssignExpert(context.Background(), "sup-2", "expert-1"); !errors.Is(err, domain.ErrExpertClaimed) {
		t.Fatalf("claimed expert: got %v, want ErrExpertClaimed", err)
	}
}

func TestSupervisorService_RemoveExpert_NotUnder(t *testing.T) {
	f := newSupervisorFixture()
	f.supervisors.add(activeSupervisor("sup-1"))
	f.supervisors.add(activeSupervisor("sup-2"))
	e := activeExpert("expert-1")
	e.SupervisorID = "sup-2"
	f.experts.add(e)

	if _, err := f.svc.RemoveExpert(context.Background(), "sup-1", "expert-1"); !errors.Is(err, domain.ErrExpertNotUnder) {
		t.Fatalf("got %v, want ErrExpertNotUnder", err)
	}

	expert, err := f.svc.RemoveExpert(context.Background(), "sup-2", "expert-1")
	if err != nil {
		t.Fatalf("RemoveExpert: %v", err)
	}
	if expert.SupervisorID != "" {
		t.Fatalf("SupervisorID = %q after removal, want empty", expert.SupervisorID)
	}
}

func TestSupervisorService_Overview(t *testing.T) {
	f := newSupervisorFixture()
	f.farmers.add(activeFarmer("farmer-1", "Nashik", "grapes"))
	f.crps.add(activeCRP("crp-1"))
	f.experts.add(activeExpert("expert-1"))
	f.experts.add(activeExpert("expert-2"))

	stats, err := f.svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if stats.TotalFarmers != 1 || stats.TotalCRPs != 1 || stats.TotalExperts != 2 {
		t.Fatalf("counts = %d/%d/%d, want 1/1/2", stats.TotalFarmers, stats.TotalCRPs, stats.TotalExperts)
	}
}
