package services

import (
	"context"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
	mongorepo "github.com/DISAMCHARLAPRABHAS/hire-flow/internal/repositories/mongo"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/utils"
)

const recentApplicationsLimit = 4

type RecruiterDashboard struct {
	OpenPositions      int64                `json:"open_positions"`
	NewApplications    int64                `json:"new_applications"`
	RecentApplications []models.Application `json:"recent_applications"`
}

type CandidateDashboard struct {
	TotalApplications  int                  `json:"total_applications"`
	ActiveApplications int                  `json:"active_applications"`
	RecentApplications []models.Application `json:"recent_applications"`
}

type DashboardService interface {
	ForRecruiter(ctx context.Context, recruiterID string) (*RecruiterDashboard, error)
	ForCandidate(ctx context.Context, candidateID string) (*CandidateDashboard, error)
}

type dashboardService struct {
	jobs mongorepo.JobRepository
	apps mongorepo.ApplicationRepository
}

func NewDashboardService(jobs mongorepo.JobRepository, apps mongorepo.ApplicationRepository) DashboardService {
	return &dashboardService{jobs: jobs, apps: apps}
}

func (s *dashboardService) ForRecruiter(ctx context.Context, recruiterID string) (*RecruiterDashboard, error) {
	const op = "DashboardService.ForRecruiter"

	if recruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recruiter_id is required", nil)
	}

	open, err := s.jobs.CountOpenByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count open jobs", err)
	}
	applied, err := s.apps.CountByRecruiterAndStatus(ctx, recruiterID, models.ApplicationApplied)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count applications", err)
	}
	recent, err := s.apps.ListByRecruiter(ctx, recruiterID, recentApplicationsLimit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list recent applications", err)
	}

	return &RecruiterDashboard{
		OpenPositions:      open,
		NewApplications:    applied,
		RecentApplications: recent,
	}, nil
}

func (s *dashboardService) ForCandidate(ctx context.Context, candidateID string) (*CandidateDashboard, error) {
	const op = "DashboardService.ForCandidate"

	if candidateID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_id is required", nil)
	}

	apps, err := s.apps.ListByCandidate(ctx, candidateID, 0)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}

	active := 0
	for _, a := range apps {
		if a.Active() {
			active++
		}
	}

	recent := apps
	if len(recent) > recentApplicationsLimit {
		recent = recent[:recentApplicationsLimit]
	}

	return &CandidateDashboard{
		TotalApplications:  len(apps),
		ActiveApplications: active,
		RecentApplications: recent,
	}, nil
}
