package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Connect establishes the MongoDB connection and verifies it with a ping
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, client.Database(database), nil
}

// EnsureIndexes creates the unique and TTL indexes the application relies on.
// Index creation is idempotent, so this runs on every startup.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	type indexSpec struct {
		collection string
		models     []mongo.IndexModel
	}

	specs := []indexSpec{
		{
			collection: "users",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys:    bson.D{{Key: "inviteToken", Value: 1}},
					Options: options.Index().SetSparse(true),
				},
			},
		},
		{
			collection: "student_assignments",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "itemType", Value: 1}, {Key: "itemId", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{Keys: bson.D{{Key: "status", Value: 1}}},
			},
		},
		{
			collection: "notifications",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "key", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{Keys: bson.D{{Key: "status", Value: 1}, {Key: "nextAttempt", Value: 1}}},
			},
		},
		{
			collection: "payslips",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "month", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			collection: "salary_structures",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "employeeId", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			collection: "employee_profiles",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "userId", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			collection: "refresh_tokens",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "token", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys:    bson.D{{Key: "expiryDate", Value: 1}},
					Options: options.Index().SetExpireAfterSeconds(0),
				},
			},
		},
		{
			collection: "password_reset_tokens",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "token", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys:    bson.D{{Key: "expiresAt", Value: 1}},
					Options: options.Index().SetExpireAfterSeconds(0),
				},
			},
		},
		{
			collection: "courses",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "name", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			collection: "internships",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "name", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			collection: "projects",
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "name", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			collection: "submissions",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "studentId", Value: 1}}},
				{Keys: bson.D{{Key: "status", Value: 1}}},
			},
		},
	}

	for _, spec := range specs {
		if _, err := database.Collection(spec.collection).Indexes().CreateMany(ctx, spec.models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", spec.collection, err)
		}
	}
	return nil
}
