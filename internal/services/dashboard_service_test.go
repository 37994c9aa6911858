package services

import (
	"context"
	"testing"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
)

func TestRecruiterDashboard(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeAppRepo(jobs)
	appSvc := NewApplicationService(apps, jobs, users, nil, nil)
	dash := NewDashboardService(jobs, apps)
	ctx := context.Background()

	recruiter := seedUser(t, users, models.RoleRecruiter)
	open := seedJob(t, jobs, recruiter.ID, models.JobStatusOpen)
	seedJob(t, jobs, recruiter.ID, models.JobStatusClosed)

	c1 := seedUser(t, users, models.RoleCandidate)
	c2 := seedUser(t, users, models.RoleCandidate)
	a1, err := appSvc.Apply(ctx, c1.ID, open.JobID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := appSvc.Apply(ctx, c2.ID, open.JobID); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := appSvc.AdvanceStatus(ctx, a1.ApplicationID, recruiter.ID, models.ApplicationInReview); err != nil {
		t.Fatalf("AdvanceStatus: %v", err)
	}

	d, err := dash.ForRecruiter(ctx, recruiter.ID)
	if err != nil {
		t.Fatalf("ForRecruiter: %v", err)
	}
	if d.OpenPositions != 1 {
		t.Errorf("open positions = %d, want 1", d.OpenPositions)
	}
	if d.NewApplications != 1 {
		t.Errorf("new applications = %d, want 1", d.NewApplications)
	}
	if len(d.RecentApplications) != 2 {
		t.Errorf("recent = %d, want 2", len(d.RecentApplications))
	}
}

func TestCandidateDashboard(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeAppRepo(jobs)
	appSvc := NewApplicationService(apps, jobs, users, nil, nil)
	dash := NewDashboardService(jobs, apps)
	ctx := context.Background()

	recruiter := seedUser(t, users, models.RoleRecruiter)
	candidate := seedUser(t, users, models.RoleCandidate)
	j1 := seedJob(t, jobs, recruiter.ID, models.JobStatusOpen)
	j2 := seedJob(t, jobs, recruiter.ID, models.JobStatusOpen)

	a1, err := appSvc.Apply(ctx, candidate.ID, j1.JobID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := appSvc.Apply(ctx, candidate.ID, j2.JobID); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := appSvc.AdvanceStatus(ctx, a1.ApplicationID, recruiter.ID, models.ApplicationDeclined); err != nil {
		t.Fatalf("AdvanceStatus: %v", err)
	}

	d, err := dash.ForCandidate(ctx, candidate.ID)
	if err != nil {
		t.Fatalf("ForCandidate: %v", err)
	}
	if d.TotalApplications != 2 {
		t.Errorf("total = %d, want 2", d.TotalApplications)
	}
	if d.ActiveApplications != 1 {
		t.Errorf("active = %d, want 1", d.ActiveApplications)
	}
}
