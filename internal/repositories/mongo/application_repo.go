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

type ApplicationRepository interface {
	// Apply inserts the application and increments the job's counter in one
	// transaction. Returns ErrNotOpen / ErrDuplicate / utils.ErrNotFound.
	Apply(ctx context.Context, app *models.Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*models.Application, error)
	SetStatus(ctx context.Context, applicationID string, status models.ApplicationStatus) error
	ListByCandidate(ctx context.Context, candidateID string, limit int64) ([]models.Application, error)
	ListByRecruiter(ctx context.Context, recruiterID string, limit int64) ([]models.Application, error)
	HasApplied(ctx context.Context, candidateID, jobID string) (bool, error)
	CountByJob(ctx context.Context, jobID string) (int64, error)
	CountByRecruiterAndStatus(ctx context.Context, recruiterID string, status models.ApplicationStatus) (int64, error)
}

type applicationRepo struct {
	client *mongo.Client
	col    *mongo.Collection
	jobs   *mongo.Collection
}

func NewApplicationRepo(client *mongo.Client, db *mongo.Database) ApplicationRepository {
	return &applicationRepo{
		client: client,
		col:    db.Collection("applications"),
		jobs:   db.Collection("jobs"),
	}
}

func (r *applicationRepo) Apply(ctx context.Context, app *models.Application) error {
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	// Counter increment and record insert commit or abort together, so
	// jobs.applications always equals the true application count. The
	// uniq_candidate_job index is the duplicate guard.
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		res, err := r.jobs.UpdateOne(sc,
			bson.M{"job_id": app.JobID, "status": models.JobStatusOpen},
			bson.M{"$inc": bson.M{"applications": 1}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			// missing vs not-open
			n, err := r.jobs.CountDocuments(sc, bson.M{"job_id": app.JobID})
			if err != nil {
				return nil, err
			}
			if n == 0 {
				return nil, utils.ErrNotFound
			}
			return nil, ErrNotOpen
		}

		if _, err := r.col.InsertOne(sc, app); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrDuplicate
			}
			return nil, err
		}
		return nil, nil
	})
	return err
}

func (r *applicationRepo) GetByApplicationID(ctx context.Context, applicationID string) (*models.Application, error) {
	var a models.Application
	err := r.col.FindOne(ctx, bson.M{"application_id": applicationID}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) SetStatus(ctx context.Context, applicationID string, status models.ApplicationStatus) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"application_id": applicationID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) ListByCandidate(ctx context.Context, candidateID string, limit int64) ([]models.Application, error) {
	return r.list(ctx, bson.M{"candidate_id": candidateID}, limit)
}

func (r *applicationRepo) ListByRecruiter(ctx context.Context, recruiterID string, limit int64) ([]models.Application, error) {
	return r.list(ctx, bson.M{"recruiter_id": recruiterID}, limit)
}

func (r *applicationRepo) list(ctx context.Context, filter bson.M, limit int64) ([]models.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "applied_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Application{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *applicationRepo) HasApplied(ctx context.Context, candidateID, jobID string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"candidate_id": candidateID, "job_id": jobID})
	return n > 0, err
}

func (r *applicationRepo) CountByJob(ctx context.Context, jobID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"job_id": jobID})
}

func (r *applicationRepo) CountByRecruiterAndStatus(ctx context.Context, recruiterID string, status models.ApplicationStatus) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"recruiter_id": recruiterID, "status": status})
}
