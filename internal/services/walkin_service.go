package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
	mongorepo "github.com/DISAMCHARLAPRABHAS/hire-flow/internal/repositories/mongo"
	pgrepo "github.com/DISAMCHARLAPRABHAS/hire-flow/internal/repositories/postgres"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/utils"
)

type DriveInput struct {
	Title   string           `json:"title"`
	Company string           `json:"company"`
	Date    time.Time        `json:"date"`
	Slots   int64            `json:"slots"`
	Roles   []string         `json:"roles"`
	Mode    models.DriveMode `json:"mode"`
}

type WalkInService interface {
	CreateDrive(ctx context.Context, recruiterID string, in DriveInput) (*models.WalkInDrive, error)
	UpdateDrive(ctx context.Context, driveID, recruiterID string, in DriveInput) (*models.WalkInDrive, error)
	SetDriveStatus(ctx context.Context, driveID, recruiterID string, status models.DriveStatus) error
	DeleteDrive(ctx context.Context, driveID, recruiterID string) error
	ListOpenDrives(ctx context.Context) ([]models.WalkInDrive, error)
	ListDrivesForRecruiter(ctx context.Context, recruiterID string) ([]models.WalkInDrive, error)

	JoinDrive(ctx context.Context, candidateID, driveID string) (*models.WalkInAttendee, error)
	ListAttendees(ctx context.Context, driveID, recruiterID string) ([]models.WalkInAttendee, error)
	ListAttendanceForCandidate(ctx context.Context, candidateID string) ([]models.WalkInAttendee, error)
}

type walkInService struct {
	drives  mongorepo.WalkInRepository
	users   pgrepo.UserRepository
	recount RecountQueue
}

func NewWalkInService(drives mongorepo.WalkInRepository, users pgrepo.UserRepository, recount RecountQueue) WalkInService {
	return &walkInService{drives: drives, users: users, recount: recount}
}

func validateDriveInput(op string, in DriveInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	case strings.TrimSpace(in.Company) == "":
		return utils.E(utils.CodeInvalidArgument, op, "company is required", nil)
	case in.Date.IsZero():
		return utils.E(utils.CodeInvalidArgument, op, "date is required", nil)
	case in.Slots < 1:
		return utils.E(utils.CodeInvalidArgument, op, "slots must be a positive integer", nil)
	case len(in.Roles) == 0:
		return utils.E(utils.CodeInvalidArgument, op, "at least one role is required", nil)
	case !in.Mode.Valid():
		return utils.E(utils.CodeInvalidArgument, op, "mode must be Online or Offline", nil)
	}
	return nil
}

func (s *walkInService) CreateDrive(ctx context.Context, recruiterID string, in DriveInput) (*models.WalkInDrive, error) {
	const op = "WalkInService.CreateDrive"

	if recruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recruiter_id is required", nil)
	}
	if err := validateDriveInput(op, in); err != nil {
		return nil, err
	}

	d := &models.WalkInDrive{
		DriveID:     uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Date:        in.Date.UTC(),
		Slots:       in.Slots,
		Roles:       in.Roles,
		Mode:        in.Mode,
		Status:      models.DriveStatusOpen,
		Attendees:   0,
		RecruiterID: recruiterID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.drives.CreateDrive(ctx, d); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create drive", err)
	}
	return d, nil
}

func (s *walkInService) ownedDrive(ctx context.Context, op, driveID, recruiterID string) (*models.WalkInDrive, error) {
	if driveID == "" || recruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "drive_id and recruiter_id are required", nil)
	}
	d, err := s.drives.GetByDriveID(ctx, driveID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "drive not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get drive", err)
	}
	if d.RecruiterID != recruiterID {
		return nil, utils.E(utils.CodeForbidden, op, "drive belongs to another recruiter", nil)
	}
	return d, nil
}

func (s *walkInService) UpdateDrive(ctx context.Context, driveID, recruiterID string, in DriveInput) (*models.WalkInDrive, error) {
	const op = "WalkInService.UpdateDrive"

	d, err := s.ownedDrive(ctx, op, driveID, recruiterID)
	if err != nil {
		return nil, err
	}
	if err := validateDriveInput(op, in); err != nil {
		return nil, err
	}
	// slots may grow but never shrink below current attendance
	if in.Slots < d.Attendees {
		return nil, utils.E(utils.CodeConflict, op, "slots cannot be reduced below current attendees", nil)
	}

	set := bson.M{
		"title":   strings.TrimSpace(in.Title),
		"company": strings.TrimSpace(in.Company),
		"date":    in.Date.UTC(),
		"slots":   in.Slots,
		"roles":   in.Roles,
		"mode":    in.Mode,
	}
	if err := s.drives.UpdateFields(ctx, driveID, set); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update drive", err)
	}

	d.Title = strings.TrimSpace(in.Title)
	d.Company = strings.TrimSpace(in.Company)
	d.Date = in.Date.UTC()
	d.Slots = in.Slots
	d.Roles = in.Roles
	d.Mode = in.Mode
	return d, nil
}

func (s *walkInService) SetDriveStatus(ctx context.Context, driveID, recruiterID string, status models.DriveStatus) error {
	const op = "WalkInService.SetDriveStatus"

	if !status.Valid() {
		return utils.E(utils.CodeInvalidArgument, op, "status must be Open or Closed", nil)
	}
	if _, err := s.ownedDrive(ctx, op, driveID, recruiterID); err != nil {
		return err
	}
	if err := s.drives.SetStatus(ctx, driveID, status); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to set status", err)
	}
	return nil
}

func (s *walkInService) DeleteDrive(ctx context.Context, driveID, recruiterID string) error {
	const op = "WalkInService.DeleteDrive"

	if _, err := s.ownedDrive(ctx, op, driveID, recruiterID); err != nil {
		return err
	}
	if err := s.drives.DeleteDrive(ctx, driveID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete drive", err)
	}
	return nil
}

func (s *walkInService) ListOpenDrives(ctx context.Context) ([]models.WalkInDrive, error) {
	const op = "WalkInService.ListOpenDrives"

	out, err := s.drives.ListOpen(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list open drives", err)
	}
	return out, nil
}

func (s *walkInService) ListDrivesForRecruiter(ctx context.Context, recruiterID string) ([]models.WalkInDrive, error) {
	const op = "WalkInService.ListDrivesForRecruiter"

	if recruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recruiter_id is required", nil)
	}
	out, err := s.drives.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list drives", err)
	}
	return out, nil
}

func (s *walkInService) JoinDrive(ctx context.Context, candidateID, driveID string) (*models.WalkInAttendee, error) {
	const op = "WalkInService.JoinDrive"

	if candidateID == "" || driveID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_id and drive_id are required", nil)
	}

	candidate, err := s.users.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "candidate not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get candidate", err)
	}

	d, err := s.drives.GetByDriveID(ctx, driveID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "drive not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get drive", err)
	}

	a := &models.WalkInAttendee{
		AttendeeID:     uuid.NewString(),
		DriveID:        d.DriveID,
		DriveTitle:     d.Title,
		RecruiterID:    d.RecruiterID,
		CandidateID:    candidate.ID,
		CandidateName:  candidate.FullName,
		CandidateEmail: candidate.Email,
		JoinedAt:       time.Now().UTC(),
	}

	if err := s.drives.Join(ctx, a); err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			return nil, utils.E(utils.CodeNotFound, op, "drive not found", err)
		case errors.Is(err, mongorepo.ErrNotOpen):
			return nil, utils.E(utils.CodeConflict, op, "drive is not open", err)
		case errors.Is(err, mongorepo.ErrCapacityFull):
			return nil, utils.E(utils.CodeConflict, op, "drive is full", err)
		case errors.Is(err, mongorepo.ErrDuplicate):
			return nil, utils.E(utils.CodeConflict, op, "already joined this drive", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to join drive", err)
	}

	if s.recount != nil {
		_ = s.recount.Enqueue(ctx, RecountDrive, d.DriveID)
	}
	return a, nil
}

func (s *walkInService) ListAttendees(ctx context.Context, driveID, recruiterID string) ([]models.WalkInAttendee, error) {
	const op = "WalkInService.ListAttendees"

	if _, err := s.ownedDrive(ctx, op, driveID, recruiterID); err != nil {
		return nil, err
	}
	out, err := s.drives.ListAttendeesByDrive(ctx, driveID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list attendees", err)
	}
	return out, nil
}

func (s *walkInService) ListAttendanceForCandidate(ctx context.Context, candidateID string) ([]models.WalkInAttendee, error) {
	const op = "WalkInService.ListAttendanceForCandidate"

	if candidateID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_id is required", nil)
	}
	out, err := s.drives.ListAttendanceByCandidate(ctx, candidateID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list attendance", err)
	}
	return out, nil
}
