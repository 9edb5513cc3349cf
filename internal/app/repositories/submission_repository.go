package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

// ISubmissionRepository defines persistence for project submissions
type ISubmissionRepository interface {
	Create(ctx context.Context, s *models.Submission) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error)
	UpdateReview(ctx context.Context, id primitive.ObjectID, status models.SubmissionStatus, note string, at time.Time) error
	ListByStudent(ctx context.Context, studentID primitive.ObjectID, skip, limit int64) ([]models.Submission, int64, error)
	ListByStatus(ctx context.Context, status models.SubmissionStatus, skip, limit int64) ([]models.Submission, int64, error)
	Count(ctx context.Context, from, to *time.Time) (int64, error)
}

// SubmissionRepository persists student project submissions
type SubmissionRepository struct {
	coll *mongo.Collection
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{coll: db.Collection("submissions")}
}

// Create inserts a new submission
func (r *SubmissionRepository) Create(ctx context.Context, s *models.Submission) (primitive.ObjectID, error) {
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	s.ID = id
	return id, nil
}

// GetByID fetches a submission by id
func (r *SubmissionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var s models.Submission
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateReview records the reviewer's verdict
func (r *SubmissionRepository) UpdateReview(ctx context.Context, id primitive.ObjectID, status models.SubmissionStatus, note string, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":     status,
			"reviewNote": note,
			"reviewedAt": at,
			"updatedAt":  time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrSubmissionNotFound
	}
	return nil
}

// ListByStudent pages one student's submissions
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID primitive.ObjectID, skip, limit int64) ([]models.Submission, int64, error) {
	return r.list(ctx, bson.M{"studentId": studentID}, skip, limit)
}

// ListByStatus pages submissions in a given review state
func (r *SubmissionRepository) ListByStatus(ctx context.Context, status models.SubmissionStatus, skip, limit int64) ([]models.Submission, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter, skip, limit)
}

func (r *SubmissionRepository) list(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Submission, int64, error) {
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	subs := []models.Submission{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// Count totals submissions, optionally created inside [from, to)
func (r *SubmissionRepository) Count(ctx context.Context, from, to *time.Time) (int64, error) {
	filter := bson.M{}
	if from != nil && to != nil {
		filter["createdAt"] = bson.M{"$gte": *from, "$lt": *to}
	}
	return r.coll.CountDocuments(ctx, filter)
}
