package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/utils"
)

func driveInput(slots int64) DriveInput {
	return DriveInput{
		Title:   "Hiring Drive",
		Company: "Acme",
		Date:    time.Now().UTC().Add(72 * time.Hour),
		Slots:   slots,
		Roles:   []string{"Backend Engineer"},
		Mode:    models.DriveModeOffline,
	}
}

func newWalkInServiceForTest(t *testing.T) (WalkInService, *fakeUserRepo, *fakeWalkInRepo) {
	t.Helper()
	users := newFakeUserRepo()
	drives := newFakeWalkInRepo()
	svc := NewWalkInService(drives, users, &fakeRecountQueue{})
	return svc, users, drives
}

func TestCreateDriveDefaults(t *testing.T) {
	svc, users, _ := newWalkInServiceForTest(t)
	recruiter := seedUser(t, users, models.RoleRecruiter)

	d, err := svc.CreateDrive(context.Background(), recruiter.ID, driveInput(10))
	if err != nil {
		t.Fatalf("CreateDrive: %v", err)
	}
	if d.Status != models.DriveStatusOpen {
		t.Errorf("status = %q, want %q", d.Status, models.DriveStatusOpen)
	}
	if d.Attendees != 0 {
		t.Errorf("attendees = %d, want 0", d.Attendees)
	}
	if d.DriveID == "" {
		t.Error("drive_id not assigned")
	}
}

func TestCreateDriveValidation(t *testing.T) {
	svc, users, _ := newWalkInServiceForTest(t)
	recruiter := seedUser(t, users, models.RoleRecruiter)
	ctx := context.Background()

	cases := map[string]func(*DriveInput){
		"empty title":   func(in *DriveInput) { in.Title = " " },
		"empty company": func(in *DriveInput) { in.Company = "" },
		"zero date":     func(in *DriveInput) { in.Date = time.Time{} },
		"zero slots":    func(in *DriveInput) { in.Slots = 0 },
		"no roles":      func(in *DriveInput) { in.Roles = nil },
		"bad mode":      func(in *DriveInput) { in.Mode = "Hybrid" },
	}
	for name, mutate := range cases {
		in := driveInput(5)
		mutate(&in)
		if _, err := svc.CreateDrive(ctx, recruiter.ID, in); !utils.IsCode(err, utils.CodeInvalidArgument) {
			t.Errorf("%s: err = %v, want INVALID_ARGUMENT", name, err)
		}
	}
}

func TestJoinDrive(t *testing.T) {
	svc, users, drives := newWalkInServiceForTest(t)
	ctx := context.Background()

	recruiter := seedUser(t, users, models.RoleRecruiter)
	candidate := seedUser(t, users, models.RoleCandidate)
	d, err := svc.CreateDrive(ctx, recruiter.ID, driveInput(5))
	if err != nil {
		t.Fatalf("CreateDrive: %v", err)
	}

	a, err := svc.JoinDrive(ctx, candidate.ID, d.DriveID)
	if err != nil {
		t.Fatalf("JoinDrive: %v", err)
	}
	if a.DriveTitle != d.Title {
		t.Errorf("drive title snapshot = %q, want %q", a.DriveTitle, d.Title)
	}
	if a.CandidateEmail != candidate.Email {
		t.Errorf("candidate snapshot = %q", a.CandidateEmail)
	}

	got, _ := drives.GetByDriveID(ctx, d.DriveID)
	if got.Attendees != 1 {
		t.Errorf("attendees = %d, want 1", got.Attendees)
	}

	// same candidate again
	if _, err := svc.JoinDrive(ctx, candidate.ID, d.DriveID); !utils.IsCode(err, utils.CodeConflict) {
		t.Errorf("second join err = %v, want CONFLICT", err)
	}
	got, _ = drives.GetByDriveID(ctx, d.DriveID)
	if got.Attendees != 1 {
		t.Errorf("attendees after duplicate = %d, want 1", got.Attendees)
	}
}

func TestConcurrentJoinsRespectCapacity(t *testing.T) {
	svc, users, drives := newWalkInServiceForTest(t)
	ctx := context.Background()

	recruiter := seedUser(t, users, models.RoleRecruiter)
	d, err := svc.CreateDrive(ctx, recruiter.ID, driveInput(1))
	if err != nil {
		t.Fatalf("CreateDrive: %v", err)
	}

	const n = 10
	candidates := make([]*models.User, n)
	for i := range candidates {
		candidates[i] = seedUser(t, users, models.RoleCandidate)
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.JoinDrive(ctx, candidates[i].ID, d.DriveID)
		}(i)
	}
	wg.Wait()

	success := 0
	for _, err := range errs {
		switch {
		case err == nil:
			success++
		case utils.IsCode(err, utils.CodeConflict):
		default:
			t.Errorf("unexpected err: %v", err)
		}
	}
	if success != 1 {
		t.Fatalf("successes = %d, want exactly 1", success)
	}

	got, _ := drives.GetByDriveID(ctx, d.DriveID)
	if got.Attendees != 1 {
		t.Errorf("attendees = %d, want 1", got.Attendees)
	}
	count, _ := drives.CountAttendees(ctx, d.DriveID)
	if count != 1 {
		t.Errorf("attendee records = %d, want 1", count)
	}
}

func TestJoinClosedDriveIsConflict(t *testing.T) {
	svc, users, _ := newWalkInServiceForTest(t)
	ctx := context.Background()

	recruiter := seedUser(t, users, models.RoleRecruiter)
	candidate := seedUser(t, users, models.RoleCandidate)
	d, _ := svc.CreateDrive(ctx, recruiter.ID, driveInput(5))
	if err := svc.SetDriveStatus(ctx, d.DriveID, recruiter.ID, models.DriveStatusClosed); err != nil {
		t.Fatalf("SetDriveStatus: %v", err)
	}

	if _, err := svc.JoinDrive(ctx, candidate.ID, d.DriveID); !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("err = %v, want CONFLICT", err)
	}
}

func TestJoinMissingDriveIsNotFound(t *testing.T) {
	svc, users, _ := newWalkInServiceForTest(t)
	candidate := seedUser(t, users, models.RoleCandidate)

	if _, err := svc.JoinDrive(context.Background(), candidate.ID, uuid.NewString()); !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestUpdateDriveCannotShrinkBelowAttendees(t *testing.T) {
	svc, users, _ := newWalkInServiceForTest(t)
	ctx := context.Background()

	recruiter := seedUser(t, users, models.RoleRecruiter)
	d, _ := svc.CreateDrive(ctx, recruiter.ID, driveInput(3))
	for i := 0; i < 2; i++ {
		c := seedUser(t, users, models.RoleCandidate)
		if _, err := svc.JoinDrive(ctx, c.ID, d.DriveID); err != nil {
			t.Fatalf("JoinDrive: %v", err)
		}
	}

	if _, err := svc.UpdateDrive(ctx, d.DriveID, recruiter.ID, driveInput(1)); !utils.IsCode(err, utils.CodeConflict) {
		t.Errorf("shrink err = %v, want CONFLICT", err)
	}
	if _, err := svc.UpdateDrive(ctx, d.DriveID, recruiter.ID, driveInput(2)); err != nil {
		t.Errorf("slots == attendees: %v", err)
	}
	if _, err := svc.UpdateDrive(ctx, d.DriveID, recruiter.ID, driveInput(10)); err != nil {
		t.Errorf("grow: %v", err)
	}
}

func TestDriveOwnership(t *testing.T) {
	svc, users, _ := newWalkInServiceForTest(t)
	ctx := context.Background()

	owner := seedUser(t, users, models.RoleRecruiter)
	other := seedUser(t, users, models.RoleRecruiter)
	d, _ := svc.CreateDrive(ctx, owner.ID, driveInput(5))

	if _, err := svc.UpdateDrive(ctx, d.DriveID, other.ID, driveInput(5)); !utils.IsCode(err, utils.CodeForbidden) {
		t.Errorf("update err = %v, want FORBIDDEN", err)
	}
	if err := svc.SetDriveStatus(ctx, d.DriveID, other.ID, models.DriveStatusClosed); !utils.IsCode(err, utils.CodeForbidden) {
		t.Errorf("set status err = %v, want FORBIDDEN", err)
	}
	if err := svc.DeleteDrive(ctx, d.DriveID, other.ID); !utils.IsCode(err, utils.CodeForbidden) {
		t.Errorf("delete err = %v, want FORBIDDEN", err)
	}
	if _, err := svc.ListAttendees(ctx, d.DriveID, other.ID); !utils.IsCode(err, utils.CodeForbidden) {
		t.Errorf("list attendees err = %v, want FORBIDDEN", err)
	}
}

func TestListOpenDrivesExcludesClosed(t *testing.T) {
	svc, users, _ := newWalkInServiceForTest(t)
	ctx := context.Background()

	recruiter := seedUser(t, users, models.RoleRecruiter)
	open, _ := svc.CreateDrive(ctx, recruiter.ID, driveInput(5))
	closed, _ := svc.CreateDrive(ctx, recruiter.ID, driveInput(5))
	if err := svc.SetDriveStatus(ctx, closed.DriveID, recruiter.ID, models.DriveStatusClosed); err != nil {
		t.Fatalf("SetDriveStatus: %v", err)
	}

	list, err := svc.ListOpenDrives(ctx)
	if err != nil {
		t.Fatalf("ListOpenDrives: %v", err)
	}
	if len(list) != 1 || list[0].DriveID != open.DriveID {
		t.Errorf("open drives = %v", list)
	}
}
