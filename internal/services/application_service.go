package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/cache"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
	mongorepo "github.com/DISAMCHARLAPRABHAS/hire-flow/internal/repositories/mongo"
	pgrepo "github.com/DISAMCHARLAPRABHAS/hire-flow/internal/repositories/postgres"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/utils"
)

type ApplicationService interface {
	Apply(ctx context.Context, candidateID, jobID string) (*models.Application, error)
	// ApplyExternally records the application and returns the job's external
	// apply link for the client to navigate to.
	ApplyExternally(ctx context.Context, candidateID, jobID string) (*models.Application, string, error)
	AdvanceStatus(ctx context.Context, applicationID, recruiterID string, status models.ApplicationStatus) (*models.Application, error)
	ListForCandidate(ctx context.Context, candidateID string) ([]models.Application, error)
	ListForRecruiter(ctx context.Context, recruiterID string) ([]models.Application, error)
}

type applicationService struct {
	apps    mongorepo.ApplicationRepository
	jobs    mongorepo.JobRepository
	users   pgrepo.UserRepository
	recount RecountQueue
	cache   cache.Cache // optional
}

func NewApplicationService(
	apps mongorepo.ApplicationRepository,
	jobs mongorepo.JobRepository,
	users pgrepo.UserRepository,
	recount RecountQueue,
	c cache.Cache,
) ApplicationService {
	return &applicationService{apps: apps, jobs: jobs, users: users, recount: recount, cache: c}
}

func (s *applicationService) apply(ctx context.Context, op, candidateID, jobID string, external bool) (*models.Application, string, error) {
	if candidateID == "" || jobID == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "candidate_id and job_id are required", nil)
	}

	candidate, err := s.users.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, "", utils.E(utils.CodeNotFound, op, "candidate not found", err)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to get candidate", err)
	}

	job, err := s.jobs.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, "", utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	if external && job.ExternalApplyLink == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "job has no external apply link", nil)
	}

	app := &models.Application{
		ApplicationID:  uuid.NewString(),
		JobID:          job.JobID,
		JobTitle:       job.Title,
		Company:        job.Company,
		RecruiterID:    job.RecruiterID,
		CandidateID:    candidate.ID,
		CandidateName:  candidate.FullName,
		CandidateEmail: candidate.Email,
		Status:         models.ApplicationApplied,
		AppliedAt:      time.Now().UTC(),
	}

	// The repository is the race guard: transaction + unique index. The job
	// snapshot read above is advisory only.
	if err := s.apps.Apply(ctx, app); err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			return nil, "", utils.E(utils.CodeNotFound, op, "job not found", err)
		case errors.Is(err, mongorepo.ErrNotOpen):
			return nil, "", utils.E(utils.CodeConflict, op, "job is not open", err)
		case errors.Is(err, mongorepo.ErrDuplicate):
			return nil, "", utils.E(utils.CodeConflict, op, "already applied to this job", err)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to apply", err)
	}

	if s.recount != nil {
		_ = s.recount.Enqueue(ctx, RecountJob, job.JobID)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, openJobsCacheKey)
	}
	return app, job.ExternalApplyLink, nil
}

func (s *applicationService) Apply(ctx context.Context, candidateID, jobID string) (*models.Application, error) {
	app, _, err := s.apply(ctx, "ApplicationService.Apply", candidateID, jobID, false)
	return app, err
}

func (s *applicationService) ApplyExternally(ctx context.Context, candidateID, jobID string) (*models.Application, string, error) {
	return s.apply(ctx, "ApplicationService.ApplyExternally", candidateID, jobID, true)
}

func (s *applicationService) AdvanceStatus(ctx context.Context, applicationID, recruiterID string, status models.ApplicationStatus) (*models.Application, error) {
	const op = "ApplicationService.AdvanceStatus"

	if applicationID == "" || recruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application_id and recruiter_id are required", nil)
	}
	if !status.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown status", nil)
	}

	app, err := s.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}
	if app.RecruiterID != recruiterID {
		return nil, utils.E(utils.CodeForbidden, op, "application belongs to another recruiter", nil)
	}
	if !app.Status.CanTransitionTo(status) {
		return nil, utils.E(utils.CodeConflict, op,
			"cannot move application from "+string(app.Status)+" to "+string(status), nil)
	}

	if err := s.apps.SetStatus(ctx, applicationID, status); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to set status", err)
	}
	app.Status = status
	return app, nil
}

func (s *applicationService) ListForCandidate(ctx context.Context, candidateID string) ([]models.Application, error) {
	const op = "ApplicationService.ListForCandidate"

	if candidateID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_id is required", nil)
	}
	out, err := s.apps.ListByCandidate(ctx, candidateID, 0)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return out, nil
}

func (s *applicationService) ListForRecruiter(ctx context.Context, recruiterID string) ([]models.Application, error) {
	const op = "ApplicationService.ListForRecruiter"

	if recruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recruiter_id is required", nil)
	}
	out, err := s.apps.ListByRecruiter(ctx, recruiterID, 0)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return out, nil
}
