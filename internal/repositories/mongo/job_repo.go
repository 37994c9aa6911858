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

type JobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	GetByJobID(ctx context.Context, jobID string) (*models.Job, error)
	UpdateFields(ctx context.Context, jobID string, set bson.M) error
	SetStatus(ctx context.Context, jobID string, status models.JobStatus) error
	Delete(ctx context.Context, jobID string) error
	ListOpen(ctx context.Context) ([]models.Job, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]models.Job, error)
	CountOpenByRecruiter(ctx context.Context, recruiterID string) (int64, error)
	SetApplications(ctx context.Context, jobID string, n int64) error
}

type jobRepo struct {
	col *mongo.Collection
}

func NewJobRepo(db *mongo.Database) JobRepository {
	return &jobRepo{col: db.Collection("jobs")}
}

func (r *jobRepo) Create(ctx context.Context, j *models.Job) error {
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, j)
	return err
}

func (r *jobRepo) GetByJobID(ctx context.Context, jobID string) (*models.Job, error) {
	var j models.Job
	err := r.col.FindOne(ctx, bson.M{"job_id": jobID}).Decode(&j)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// UpdateFields overwrites editable fields only; the counter and created_at
// are never part of set.
func (r *jobRepo) UpdateFields(ctx context.Context, jobID string, set bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"job_id": jobID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *jobRepo) SetStatus(ctx context.Context, jobID string, status models.JobStatus) error {
	return r.UpdateFields(ctx, jobID, bson.M{"status": status})
}

func (r *jobRepo) Delete(ctx context.Context, jobID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"job_id": jobID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *jobRepo) ListOpen(ctx context.Context) ([]models.Job, error) {
	return r.list(ctx, bson.M{"status": models.JobStatusOpen})
}

func (r *jobRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]models.Job, error) {
	return r.list(ctx, bson.M{"recruiter_id": recruiterID})
}

func (r *jobRepo) list(ctx context.Context, filter bson.M) ([]models.Job, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Job{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *jobRepo) CountOpenByRecruiter(ctx context.Context, recruiterID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{
		"recruiter_id": recruiterID,
		"status":       models.JobStatusOpen,
	})
}

// SetApplications overwrites the denormalized counter; used by the
// reconciliation worker only.
func (r *jobRepo) SetApplications(ctx context.Context, jobID string, n int64) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"job_id": jobID},
		bson.M{"$set": bson.M{"applications": n}},
	)
	return err
}
