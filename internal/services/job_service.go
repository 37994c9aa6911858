package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/cache"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
	mongorepo "github.com/DISAMCHARLAPRABHAS/hire-flow/internal/repositories/mongo"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/utils"
)

const (
	openJobsCacheKey = "jobs:open"
	openJobsCacheTTL = 15 * time.Second
)

type JobInput struct {
	Title             string   `json:"title"`
	Company           string   `json:"company"`
	Location          string   `json:"location"`
	Description       string   `json:"description"`
	Skills            []string `json:"skills"`
	ExperienceLevel   string   `json:"experience_level"`
	ExternalApplyLink string   `json:"external_apply_link"`
}

type JobService interface {
	Create(ctx context.Context, recruiterID string, in JobInput) (*models.Job, error)
	Update(ctx context.Context, jobID, recruiterID string, in JobInput) (*models.Job, error)
	SetStatus(ctx context.Context, jobID, recruiterID string, status models.JobStatus) error
	Delete(ctx context.Context, jobID, recruiterID string) error
	Get(ctx context.Context, jobID string) (*models.Job, error)
	ListOpen(ctx context.Context) ([]models.Job, error)
	ListForRecruiter(ctx context.Context, recruiterID string) ([]models.Job, error)
}

type jobService struct {
	jobs  mongorepo.JobRepository
	cache cache.Cache // optional
}

func NewJobService(jobs mongorepo.JobRepository, c cache.Cache) JobService {
	return &jobService{jobs: jobs, cache: c}
}

func validateJobInput(op string, in JobInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	case strings.TrimSpace(in.Company) == "":
		return utils.E(utils.CodeInvalidArgument, op, "company is required", nil)
	case strings.TrimSpace(in.Description) == "":
		return utils.E(utils.CodeInvalidArgument, op, "description is required", nil)
	case len(in.Skills) == 0:
		return utils.E(utils.CodeInvalidArgument, op, "at least one skill is required", nil)
	case strings.TrimSpace(in.ExperienceLevel) == "":
		return utils.E(utils.CodeInvalidArgument, op, "experience_level is required", nil)
	}
	return nil
}

func (s *jobService) Create(ctx context.Context, recruiterID string, in JobInput) (*models.Job, error) {
	const op = "JobService.Create"

	if recruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recruiter_id is required", nil)
	}
	if err := validateJobInput(op, in); err != nil {
		return nil, err
	}

	job := &models.Job{
		JobID:             uuid.NewString(),
		Title:             strings.TrimSpace(in.Title),
		Company:           strings.TrimSpace(in.Company),
		Location:          strings.TrimSpace(in.Location),
		Description:       in.Description,
		Skills:            in.Skills,
		ExperienceLevel:   in.ExperienceLevel,
		ExternalApplyLink: strings.TrimSpace(in.ExternalApplyLink),
		RecruiterID:       recruiterID,
		Status:            models.JobStatusOpen,
		Applications:      0,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	s.invalidateOpenJobs(ctx)
	return job, nil
}

// ownedJob loads the job and enforces recruiter ownership in one place.
func (s *jobService) ownedJob(ctx context.Context, op, jobID, recruiterID string) (*models.Job, error) {
	if jobID == "" || recruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job_id and recruiter_id are required", nil)
	}
	job, err := s.jobs.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	if job.RecruiterID != recruiterID {
		return nil, utils.E(utils.CodeForbidden, op, "job belongs to another recruiter", nil)
	}
	return job, nil
}

func (s *jobService) Update(ctx context.Context, jobID, recruiterID string, in JobInput) (*models.Job, error) {
	const op = "JobService.Update"

	job, err := s.ownedJob(ctx, op, jobID, recruiterID)
	if err != nil {
		return nil, err
	}
	if err := validateJobInput(op, in); err != nil {
		return nil, err
	}

	// editable fields only; counter and created_at stay untouched
	set := bson.M{
		"title":               strings.TrimSpace(in.Title),
		"company":             strings.TrimSpace(in.Company),
		"location":            strings.TrimSpace(in.Location),
		"description":         in.Description,
		"skills":              in.Skills,
		"experience_level":    in.ExperienceLevel,
		"external_apply_link": strings.TrimSpace(in.ExternalApplyLink),
	}
	if err := s.jobs.UpdateFields(ctx, jobID, set); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}
	s.invalidateOpenJobs(ctx)

	job.Title = strings.TrimSpace(in.Title)
	job.Company = strings.TrimSpace(in.Company)
	job.Location = strings.TrimSpace(in.Location)
	job.Description = in.Description
	job.Skills = in.Skills
	job.ExperienceLevel = in.ExperienceLevel
	job.ExternalApplyLink = strings.TrimSpace(in.ExternalApplyLink)
	return job, nil
}

func (s *jobService) SetStatus(ctx context.Context, jobID, recruiterID string, status models.JobStatus) error {
	const op = "JobService.SetStatus"

	if !status.Valid() {
		return utils.E(utils.CodeInvalidArgument, op, "status must be Open, Paused, or Closed", nil)
	}
	if _, err := s.ownedJob(ctx, op, jobID, recruiterID); err != nil {
		return err
	}
	if err := s.jobs.SetStatus(ctx, jobID, status); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to set status", err)
	}
	s.invalidateOpenJobs(ctx)
	return nil
}

// Delete removes the job permanently. Applications referencing it are kept:
// they carry their own job_title/company snapshot.
func (s *jobService) Delete(ctx context.Context, jobID, recruiterID string) error {
	const op = "JobService.Delete"

	if _, err := s.ownedJob(ctx, op, jobID, recruiterID); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}
	s.invalidateOpenJobs(ctx)
	return nil
}

func (s *jobService) Get(ctx context.Context, jobID string) (*models.Job, error) {
	const op = "JobService.Get"

	if jobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job_id is required", nil)
	}
	job, err := s.jobs.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}
	return job, nil
}

func (s *jobService) ListOpen(ctx context.Context) ([]models.Job, error) {
	const op = "JobService.ListOpen"

	if s.cache != nil {
		var cached []models.Job
		if hit, err := s.cache.GetJSON(ctx, openJobsCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	out, err := s.jobs.ListOpen(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list open jobs", err)
	}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, openJobsCacheKey, out, openJobsCacheTTL)
	}
	return out, nil
}

func (s *jobService) ListForRecruiter(ctx context.Context, recruiterID string) ([]models.Job, error) {
	const op = "JobService.ListForRecruiter"

	if recruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recruiter_id is required", nil)
	}
	out, err := s.jobs.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return out, nil
}

func (s *jobService) invalidateOpenJobs(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, openJobsCacheKey)
	}
}
