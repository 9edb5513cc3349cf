package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edupro/talentdesk/internal/app/models"
)

// IOutboxRepository defines persistence for the notification outbox
type IOutboxRepository interface {
	Enqueue(ctx context.Context, n *models.Notification) error
	FetchDue(ctx context.Context, limit int64) ([]models.Notification, error)
	MarkSent(ctx context.Context, id primitive.ObjectID, at time.Time) error
	MarkFailed(ctx context.Context, id primitive.ObjectID, attempts int, lastError string, nextAttempt time.Time, terminal bool) error
}

// OutboxRepository stores pending e-mail notifications in the
// 'notifications' collection so sends survive process restarts.
type OutboxRepository struct {
	coll *mongo.Collection
}

// NewOutboxRepository creates a new OutboxRepository
func NewOutboxRepository(db *mongo.Database) *OutboxRepository {
	return &OutboxRepository{coll: db.Collection("notifications")}
}

// Enqueue inserts an outbox record. A duplicate dedupe key is a no-op
// so the same event enqueued twice sends one e-mail.
func (r *OutboxRepository) Enqueue(ctx context.Context, n *models.Notification) error {
	n.Status = models.NotificationPending
	n.CreatedAt = time.Now().UTC()
	if n.NextAttempt.IsZero() {
		n.NextAttempt = n.CreatedAt
	}
	_, err := r.coll.InsertOne(ctx, n)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// FetchDue returns pending notifications whose next attempt time has passed
func (r *OutboxRepository) FetchDue(ctx context.Context, limit int64) ([]models.Notification, error) {
	filter := bson.M{
		"status":      models.NotificationPending,
		"nextAttempt": bson.M{"$lte": time.Now().UTC()},
	}
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "nextAttempt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	due := []models.Notification{}
	if err := cursor.All(ctx, &due); err != nil {
		return nil, err
	}
	return due, nil
}

// MarkSent finalizes a delivered notification
func (r *OutboxRepository) MarkSent(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": models.NotificationSent, "sentAt": at},
	})
	return err
}

// MarkFailed records a delivery failure. Terminal failures stop retrying.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id primitive.ObjectID, attempts int, lastError string, nextAttempt time.Time, terminal bool) error {
	status := models.NotificationPending
	if terminal {
		status = models.NotificationFailed
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":      status,
			"attempts":    attempts,
			"lastError":   lastError,
			"nextAttempt": nextAttempt,
		},
	})
	return err
}
