package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureMongoIndexes creates the indexes the repositories rely on. The
// unique compound indexes are the authoritative apply-once / join-once
// guards; client-side existence checks are advisory only.
func EnsureMongoIndexes() error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}

	db := MongoDatabase()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobs := db.Collection("jobs")
	_, err := jobs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "job_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_job_id").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_status_created"),
		},
		{
			Keys:    bson.D{{Key: "recruiter_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_recruiter_created"),
		},
	})
	if err != nil {
		return err
	}

	applications := db.Collection("applications")
	_, err = applications.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// apply-once: one application per (candidate, job)
		{
			Keys: bson.D{{Key: "candidate_id", Value: 1}, {Key: "job_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_candidate_job").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "application_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_application_id").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "candidate_id", Value: 1}, {Key: "applied_at", Value: -1}},
			Options: options.Index().SetName("by_candidate_applied"),
		},
		{
			Keys:    bson.D{{Key: "recruiter_id", Value: 1}, {Key: "applied_at", Value: -1}},
			Options: options.Index().SetName("by_recruiter_applied"),
		},
	})
	if err != nil {
		return err
	}

	drives := db.Collection("walk-ins")
	_, err = drives.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "drive_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_drive_id").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_status_created"),
		},
		{
			Keys:    bson.D{{Key: "recruiter_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_recruiter_created"),
		},
	})
	if err != nil {
		return err
	}

	attendees := db.Collection("walk-in-attendees")
	_, err = attendees.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// join-once: one attendance per (candidate, drive)
		{
			Keys: bson.D{{Key: "candidate_id", Value: 1}, {Key: "drive_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_candidate_drive").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "drive_id", Value: 1}, {Key: "joined_at", Value: -1}},
			Options: options.Index().SetName("by_drive_joined"),
		},
		{
			Keys:    bson.D{{Key: "candidate_id", Value: 1}, {Key: "joined_at", Value: -1}},
			Options: options.Index().SetName("by_candidate_joined"),
		},
	})
	return err
}
