package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
	mongorepo "github.com/DISAMCHARLAPRABHAS/hire-flow/internal/repositories/mongo"
	pgrepo "github.com/DISAMCHARLAPRABHAS/hire-flow/internal/repositories/postgres"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/utils"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return pgrepo.ErrDuplicateEmail
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*models.Job{}}
}

func (r *fakeJobRepo) Create(ctx context.Context, j *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *j
	r.jobs[j.JobID] = &cp
	return nil
}

func (r *fakeJobRepo) GetByJobID(ctx context.Context, jobID string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *fakeJobRepo) UpdateFields(ctx context.Context, jobID string, set bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return utils.ErrNotFound
	}
	for k, v := range set {
		switch k {
		case "title":
			j.Title = v.(string)
		case "company":
			j.Company = v.(string)
		case "location":
			j.Location = v.(string)
		case "description":
			j.Description = v.(string)
		case "skills":
			j.Skills = v.([]string)
		case "experience_level":
			j.ExperienceLevel = v.(string)
		case "external_apply_link":
			j.ExternalApplyLink = v.(string)
		case "status":
			j.Status = v.(models.JobStatus)
		}
	}
	return nil
}

func (r *fakeJobRepo) SetStatus(ctx context.Context, jobID string, status models.JobStatus) error {
	return r.UpdateFields(ctx, jobID, bson.M{"status": status})
}

func (r *fakeJobRepo) Delete(ctx context.Context, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[jobID]; !ok {
		return utils.ErrNotFound
	}
	delete(r.jobs, jobID)
	return nil
}

func (r *fakeJobRepo) ListOpen(ctx context.Context) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Job{}
	for _, j := range r.jobs {
		if j.Status == models.JobStatusOpen {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Job{}
	for _, j := range r.jobs {
		if j.RecruiterID == recruiterID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) CountOpenByRecruiter(ctx context.Context, recruiterID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, j := range r.jobs {
		if j.RecruiterID == recruiterID && j.Status == models.JobStatusOpen {
			n++
		}
	}
	return n, nil
}

func (r *fakeJobRepo) SetApplications(ctx context.Context, jobID string, n int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[jobID]; ok {
		j.Applications = n
	}
	return nil
}

// fakeAppRepo mirrors the transactional semantics of the real repository:
// the job status check, counter increment, and duplicate guard happen under
// one lock, like the mongo transaction plus unique index.
type fakeAppRepo struct {
	jobs *fakeJobRepo

	mu     sync.Mutex
	apps   map[string]*models.Application // by application_id
	byPair map[string]struct{}            // candidate_id + "|" + job_id
}

func newFakeAppRepo(jobs *fakeJobRepo) *fakeAppRepo {
	return &fakeAppRepo{
		jobs:   jobs,
		apps:   map[string]*models.Application{},
		byPair: map[string]struct{}{},
	}
}

func (r *fakeAppRepo) Apply(ctx context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs.mu.Lock()
	defer r.jobs.mu.Unlock()

	j, ok := r.jobs.jobs[app.JobID]
	if !ok {
		return utils.ErrNotFound
	}
	if j.Status != models.JobStatusOpen {
		return mongorepo.ErrNotOpen
	}
	pair := app.CandidateID + "|" + app.JobID
	if _, dup := r.byPair[pair]; dup {
		return mongorepo.ErrDuplicate
	}

	j.Applications++
	r.byPair[pair] = struct{}{}
	cp := *app
	r.apps[app.ApplicationID] = &cp
	return nil
}

func (r *fakeAppRepo) GetByApplicationID(ctx context.Context, applicationID string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[applicationID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAppRepo) SetStatus(ctx context.Context, applicationID string, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[applicationID]
	if !ok {
		return utils.ErrNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeAppRepo) ListByCandidate(ctx context.Context, candidateID string, limit int64) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Application{}
	for _, a := range r.apps {
		if a.CandidateID == candidateID {
			out = append(out, *a)
		}
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAppRepo) ListByRecruiter(ctx context.Context, recruiterID string, limit int64) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Application{}
	for _, a := range r.apps {
		if a.RecruiterID == recruiterID {
			out = append(out, *a)
		}
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAppRepo) HasApplied(ctx context.Context, candidateID, jobID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byPair[candidateID+"|"+jobID]
	return ok, nil
}

func (r *fakeAppRepo) CountByJob(ctx context.Context, jobID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.apps {
		if a.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func (r *fakeAppRepo) CountByRecruiterAndStatus(ctx context.Context, recruiterID string, status models.ApplicationStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.apps {
		if a.RecruiterID == recruiterID && a.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeWalkInRepo struct {
	mu        sync.Mutex
	drives    map[string]*models.WalkInDrive
	attendees map[string]*models.WalkInAttendee // by attendee_id
	byPair    map[string]struct{}               // candidate_id + "|" + drive_id
}

func newFakeWalkInRepo() *fakeWalkInRepo {
	return &fakeWalkInRepo{
		drives:    map[string]*models.WalkInDrive{},
		attendees: map[string]*models.WalkInAttendee{},
		byPair:    map[string]struct{}{},
	}
}

func (r *fakeWalkInRepo) CreateDrive(ctx context.Context, d *models.WalkInDrive) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.drives[d.DriveID] = &cp
	return nil
}

func (r *fakeWalkInRepo) GetByDriveID(ctx context.Context, driveID string) (*models.WalkInDrive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drives[driveID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeWalkInRepo) UpdateFields(ctx context.Context, driveID string, set bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drives[driveID]
	if !ok {
		return utils.ErrNotFound
	}
	for k, v := range set {
		switch k {
		case "title":
			d.Title = v.(string)
		case "company":
			d.Company = v.(string)
		case "date":
			d.Date = v.(time.Time)
		case "slots":
			d.Slots = v.(int64)
		case "roles":
			d.Roles = v.([]string)
		case "mode":
			d.Mode = v.(models.DriveMode)
		case "status":
			d.Status = v.(models.DriveStatus)
		}
	}
	return nil
}

func (r *fakeWalkInRepo) SetStatus(ctx context.Context, driveID string, status models.DriveStatus) error {
	return r.UpdateFields(ctx, driveID, bson.M{"status": status})
}

func (r *fakeWalkInRepo) DeleteDrive(ctx context.Context, driveID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drives[driveID]; !ok {
		return utils.ErrNotFound
	}
	delete(r.drives, driveID)
	return nil
}

func (r *fakeWalkInRepo) ListOpen(ctx context.Context) ([]models.WalkInDrive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.WalkInDrive{}
	for _, d := range r.drives {
		if d.Status == models.DriveStatusOpen {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeWalkInRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]models.WalkInDrive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.WalkInDrive{}
	for _, d := range r.drives {
		if d.RecruiterID == recruiterID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeWalkInRepo) Join(ctx context.Context, a *models.WalkInAttendee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drives[a.DriveID]
	if !ok {
		return utils.ErrNotFound
	}
	if d.Status != models.DriveStatusOpen {
		return mongorepo.ErrNotOpen
	}
	if d.Attendees >= d.Slots {
		return mongorepo.ErrCapacityFull
	}
	pair := a.CandidateID + "|" + a.DriveID
	if _, dup := r.byPair[pair]; dup {
		return mongorepo.ErrDuplicate
	}

	d.Attendees++
	r.byPair[pair] = struct{}{}
	cp := *a
	r.attendees[a.AttendeeID] = &cp
	return nil
}

func (r *fakeWalkInRepo) ListAttendeesByDrive(ctx context.Context, driveID string) ([]models.WalkInAttendee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.WalkInAttendee{}
	for _, a := range r.attendees {
		if a.DriveID == driveID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeWalkInRepo) ListAttendanceByCandidate(ctx context.Context, candidateID string) ([]models.WalkInAttendee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.WalkInAttendee{}
	for _, a := range r.attendees {
		if a.CandidateID == candidateID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeWalkInRepo) HasJoined(ctx context.Context, candidateID, driveID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byPair[candidateID+"|"+driveID]
	return ok, nil
}

func (r *fakeWalkInRepo) CountAttendees(ctx context.Context, driveID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.attendees {
		if a.DriveID == driveID {
			n++
		}
	}
	return n, nil
}

func (r *fakeWalkInRepo) SetAttendees(ctx context.Context, driveID string, n int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.drives[driveID]; ok {
		d.Attendees = n
	}
	return nil
}

type fakeRecountQueue struct {
	mu     sync.Mutex
	events []string // kind + ":" + id
}

func (q *fakeRecountQueue) Enqueue(ctx context.Context, kind, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, kind+":"+id)
	return nil
}
