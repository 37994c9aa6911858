package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/utils"
)

func jobInput() JobInput {
	return JobInput{
		Title:           "Backend Engineer",
		Company:         "Acme",
		Location:        "Remote",
		Description:     "Build and run Go services",
		Skills:          []string{"go", "postgres"},
		ExperienceLevel: "Mid",
	}
}

func TestCreateJobDefaults(t *testing.T) {
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, nil)
	ctx := context.Background()

	in := jobInput()
	job, err := svc.Create(ctx, "rec-1", in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if job.Status != models.JobStatusOpen {
		t.Errorf("status = %q, want %q", job.Status, models.JobStatusOpen)
	}
	if job.Applications != 0 {
		t.Errorf("applications = %d, want 0", job.Applications)
	}
	if job.JobID == "" {
		t.Error("job_id not assigned")
	}

	got, err := svc.Get(ctx, job.JobID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != in.Title || got.Company != in.Company || got.Location != in.Location {
		t.Errorf("fields = %q/%q/%q", got.Title, got.Company, got.Location)
	}
	if !reflect.DeepEqual(got.Skills, in.Skills) {
		t.Errorf("skills = %v, want %v", got.Skills, in.Skills)
	}
}

func TestCreateJobValidation(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), nil)
	ctx := context.Background()

	cases := map[string]func(*JobInput){
		"empty title":       func(in *JobInput) { in.Title = "  " },
		"empty company":     func(in *JobInput) { in.Company = "" },
		"empty description": func(in *JobInput) { in.Description = "" },
		"no skills":         func(in *JobInput) { in.Skills = nil },
		"empty level":       func(in *JobInput) { in.ExperienceLevel = "" },
	}
	for name, mutate := range cases {
		in := jobInput()
		mutate(&in)
		if _, err := svc.Create(ctx, "rec-1", in); !utils.IsCode(err, utils.CodeInvalidArgument) {
			t.Errorf("%s: err = %v, want INVALID_ARGUMENT", name, err)
		}
	}

	if _, err := svc.Create(ctx, "", jobInput()); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("missing recruiter: err not INVALID_ARGUMENT")
	}
}

func TestUpdateJobOwnership(t *testing.T) {
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, nil)
	ctx := context.Background()

	job, err := svc.Create(ctx, "rec-1", jobInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, job.JobID, "rec-2", jobInput()); !utils.IsCode(err, utils.CodeForbidden) {
		t.Errorf("update err = %v, want FORBIDDEN", err)
	}
	if err := svc.SetStatus(ctx, job.JobID, "rec-2", models.JobStatusClosed); !utils.IsCode(err, utils.CodeForbidden) {
		t.Errorf("set status err = %v, want FORBIDDEN", err)
	}
	if err := svc.Delete(ctx, job.JobID, "rec-2"); !utils.IsCode(err, utils.CodeForbidden) {
		t.Errorf("delete err = %v, want FORBIDDEN", err)
	}

	in := jobInput()
	in.Title = "Senior Backend Engineer"
	updated, err := svc.Update(ctx, job.JobID, "rec-1", in)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != in.Title {
		t.Errorf("title = %q, want %q", updated.Title, in.Title)
	}
}

func TestUpdateJobKeepsCounter(t *testing.T) {
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, nil)
	ctx := context.Background()

	job, _ := svc.Create(ctx, "rec-1", jobInput())
	if err := jobs.SetApplications(ctx, job.JobID, 7); err != nil {
		t.Fatalf("SetApplications: %v", err)
	}

	if _, err := svc.Update(ctx, job.JobID, "rec-1", jobInput()); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := jobs.GetByJobID(ctx, job.JobID)
	if got.Applications != 7 {
		t.Errorf("applications = %d, want 7", got.Applications)
	}
}

func TestSetJobStatus(t *testing.T) {
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, nil)
	ctx := context.Background()

	job, _ := svc.Create(ctx, "rec-1", jobInput())

	if err := svc.SetStatus(ctx, job.JobID, "rec-1", "Archived"); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("bad status err = %v, want INVALID_ARGUMENT", err)
	}
	if err := svc.SetStatus(ctx, job.JobID, "rec-1", models.JobStatusPaused); err != nil {
		t.Fatalf("pause: %v", err)
	}
	// paused jobs may reopen
	if err := svc.SetStatus(ctx, job.JobID, "rec-1", models.JobStatusOpen); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}

func TestListOpenExcludesPausedAndClosed(t *testing.T) {
	jobs := newFakeJobRepo()
	svc := NewJobService(jobs, nil)
	ctx := context.Background()

	open, _ := svc.Create(ctx, "rec-1", jobInput())
	paused, _ := svc.Create(ctx, "rec-1", jobInput())
	closed, _ := svc.Create(ctx, "rec-1", jobInput())
	_ = svc.SetStatus(ctx, paused.JobID, "rec-1", models.JobStatusPaused)
	_ = svc.SetStatus(ctx, closed.JobID, "rec-1", models.JobStatusClosed)

	list, err := svc.ListOpen(ctx)
	if err != nil {
		t.Fatalf("ListOpen: %v", err)
	}
	if len(list) != 1 || list[0].JobID != open.JobID {
		t.Errorf("open jobs = %v", list)
	}
}

func TestGetMissingJobIsNotFound(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), nil)

	if _, err := svc.Get(context.Background(), uuid.NewString()); !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}
