package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/utils"
)

type WalkInRepository interface {
	CreateDrive(ctx context.Context, d *models.WalkInDrive) error
	GetByDriveID(ctx context.Context, driveID string) (*models.WalkInDrive, error)
	UpdateFields(ctx context.Context, driveID string, set bson.M) error
	SetStatus(ctx context.Context, driveID string, status models.DriveStatus) error
	DeleteDrive(ctx context.Context, driveID string) error
	ListOpen(ctx context.Context) ([]models.WalkInDrive, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]models.WalkInDrive, error)

	// Join inserts the attendee and increments the drive's counter in one
	// transaction; rejects at capacity. Returns ErrNotOpen / ErrCapacityFull /
	// ErrDuplicate / utils.ErrNotFound.
	Join(ctx context.Context, a *models.WalkInAttendee) error
	ListAttendeesByDrive(ctx context.Context, driveID string) ([]models.WalkInAttendee, error)
	ListAttendanceByCandidate(ctx context.Context, candidateID string) ([]models.WalkInAttendee, error)
	HasJoined(ctx context.Context, candidateID, driveID string) (bool, error)
	CountAttendees(ctx context.Context, driveID string) (int64, error)
	SetAttendees(ctx context.Context, driveID string, n int64) error
}

type walkInRepo struct {
	client    *mongo.Client
	drives    *mongo.Collection
	attendees *mongo.Collection
}

func NewWalkInRepo(client *mongo.Client, db *mongo.Database) WalkInRepository {
	return &walkInRepo{
		client:    client,
		drives:    db.Collection("walk-ins"),
		attendees: db.Collection("walk-in-attendees"),
	}
}

func (r *walkInRepo) CreateDrive(ctx context.Context, d *models.WalkInDrive) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	_, err := r.drives.InsertOne(ctx, d)
	return err
}

func (r *walkInRepo) GetByDriveID(ctx context.Context, driveID string) (*models.WalkInDrive, error) {
	var d models.WalkInDrive
	err := r.drives.FindOne(ctx, bson.M{"drive_id": driveID}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *walkInRepo) UpdateFields(ctx context.Context, driveID string, set bson.M) error {
	res, err := r.drives.UpdateOne(ctx, bson.M{"drive_id": driveID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *walkInRepo) SetStatus(ctx context.Context, driveID string, status models.DriveStatus) error {
	return r.UpdateFields(ctx, driveID, bson.M{"status": status})
}

func (r *walkInRepo) DeleteDrive(ctx context.Context, driveID string) error {
	res, err := r.drives.DeleteOne(ctx, bson.M{"drive_id": driveID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *walkInRepo) ListOpen(ctx context.Context) ([]models.WalkInDrive, error) {
	return r.listDrives(ctx, bson.M{"status": models.DriveStatusOpen})
}

func (r *walkInRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]models.WalkInDrive, error) {
	return r.listDrives(ctx, bson.M{"recruiter_id": recruiterID})
}

func (r *walkInRepo) listDrives(ctx context.Context, filter bson.M) ([]models.WalkInDrive, error) {
	cur, err := r.drives.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.WalkInDrive{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *walkInRepo) Join(ctx context.Context, a *models.WalkInAttendee) error {
	if a.JoinedAt.IsZero() {
		a.JoinedAt = time.Now().UTC()
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		// The $expr filter makes capacity a commit-time guard: concurrent
		// joiners past the last slot match nothing and abort.
		res, err := r.drives.UpdateOne(sc,
			bson.M{
				"drive_id": a.DriveID,
				"status":   models.DriveStatusOpen,
				"$expr":    bson.M{"$lt": bson.A{"$attendees", "$slots"}},
			},
			bson.M{"$inc": bson.M{"attendees": 1}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			var d models.WalkInDrive
			ferr := r.drives.FindOne(sc, bson.M{"drive_id": a.DriveID}).Decode(&d)
			if errors.Is(ferr, mongo.ErrNoDocuments) {
				return nil, utils.ErrNotFound
			}
			if ferr != nil {
				return nil, ferr
			}
			if d.Status != models.DriveStatusOpen {
				return nil, ErrNotOpen
			}
			return nil, ErrCapacityFull
		}

		if _, err := r.attendees.InsertOne(sc, a); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrDuplicate
			}
			return nil, err
		}
		return nil, nil
	})
	return err
}

func (r *walkInRepo) ListAttendeesByDrive(ctx context.Context, driveID string) ([]models.WalkInAttendee, error) {
	return r.listAttendees(ctx, bson.M{"drive_id": driveID})
}

func (r *walkInRepo) ListAttendanceByCandidate(ctx context.Context, candidateID string) ([]models.WalkInAttendee, error) {
	return r.listAttendees(ctx, bson.M{"candidate_id": candidateID})
}

func (r *walkInRepo) listAttendees(ctx context.Context, filter bson.M) ([]models.WalkInAttendee, error) {
	cur, err := r.attendees.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "joined_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.WalkInAttendee{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *walkInRepo) HasJoined(ctx context.Context, candidateID, driveID string) (bool, error) {
	n, err := r.attendees.CountDocuments(ctx, bson.M{"candidate_id": candidateID, "drive_id": driveID})
	return n > 0, err
}

func (r *walkInRepo) CountAttendees(ctx context.Context, driveID string) (int64, error) {
	return r.attendees.CountDocuments(ctx, bson.M{"drive_id": driveID})
}

// SetAttendees overwrites the denormalized counter; reconciliation worker only.
func (r *walkInRepo) SetAttendees(ctx context.Context, driveID string, n int64) error {
	_, err := r.drives.UpdateOne(ctx,
		bson.M{"drive_id": driveID},
		bson.M{"$set": bson.M{"attendees": n}},
	)
	return err
}
