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

// IAssignmentRepository defines persistence for student assignments
type IAssignmentRepository interface {
	Create(ctx context.Context, a *models.StudentAssignment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.StudentAssignment, error)
	ExistsForStudentItem(ctx context.Context, studentID, itemID primitive.ObjectID, itemType models.ItemType) (bool, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AssignmentStatus, completedAt *time.Time) error
	UpdatePayment(ctx context.Context, id primitive.ObjectID, payment models.Payment) error
	UpdateProgress(ctx context.Context, id primitive.ObjectID, progress int) error
	SetRequirementSubmission(ctx context.Context, id primitive.ObjectID, sub models.RequirementSubmission) error
	AddDeliveryFile(ctx context.Context, id primitive.ObjectID, file models.DeliveryFile) error
	ListByStudent(ctx context.Context, studentID primitive.ObjectID, skip, limit int64) ([]models.StudentAssignment, int64, error)
	List(ctx context.Context, filter AssignmentFilter, skip, limit int64) ([]models.StudentAssignment, int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context, from, to *time.Time) (int64, error)
	SumPayments(ctx context.Context, from, to *time.Time) (float64, error)
}

// AssignmentFilter narrows assignment listings
type AssignmentFilter struct {
	StudentID *primitive.ObjectID
	ItemType  models.ItemType
	Status    models.AssignmentStatus
}

// AssignmentRepository persists the student assignment lifecycle
type AssignmentRepository struct {
	coll *mongo.Collection
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{coll: db.Collection("student_assignments")}
}

// Create inserts a new assignment record
func (r *AssignmentRepository) Create(ctx context.Context, a *models.StudentAssignment) (primitive.ObjectID, error) {
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, apperrors.ErrAlreadyAssigned
		}
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	a.ID = id
	return id, nil
}

// GetByID fetches an assignment by id
func (r *AssignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.StudentAssignment, error) {
	var a models.StudentAssignment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ExistsForStudentItem reports whether the student already holds the item
func (r *AssignmentRepository) ExistsForStudentItem(ctx context.Context, studentID, itemID primitive.ObjectID, itemType models.ItemType) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"studentId": studentID,
		"itemId":    itemID,
		"itemType":  itemType,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus moves an assignment to a new lifecycle status
func (r *AssignmentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AssignmentStatus, completedAt *time.Time) error {
	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	if completedAt != nil {
		set["completedAt"] = *completedAt
		set["progress"] = 100
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// UpdatePayment replaces the embedded payment state
func (r *AssignmentRepository) UpdatePayment(ctx context.Context, id primitive.ObjectID, payment models.Payment) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"payment": payment, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// UpdateProgress sets the percent complete
func (r *AssignmentRepository) UpdateProgress(ctx context.Context, id primitive.ObjectID, progress int) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"progress": progress, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// SetRequirementSubmission attaches the student's requirement document
func (r *AssignmentRepository) SetRequirementSubmission(ctx context.Context, id primitive.ObjectID, sub models.RequirementSubmission) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"requirementSubmission": sub, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// AddDeliveryFile appends a deliverable to the assignment
func (r *AssignmentRepository) AddDeliveryFile(ctx context.Context, id primitive.ObjectID, file models.DeliveryFile) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"deliveryFiles": file},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// ListByStudent returns a page of a single student's assignments
func (r *AssignmentRepository) ListByStudent(ctx context.Context, studentID primitive.ObjectID, skip, limit int64) ([]models.StudentAssignment, int64, error) {
	return r.List(ctx, AssignmentFilter{StudentID: &studentID}, skip, limit)
}

// List returns a page of assignments matching the filter
func (r *AssignmentRepository) List(ctx context.Context, filter AssignmentFilter, skip, limit int64) ([]models.StudentAssignment, int64, error) {
	query := bson.M{}
	if filter.StudentID != nil {
		query["studentId"] = *filter.StudentID
	}
	if filter.ItemType != "" {
		query["itemType"] = filter.ItemType
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	assignments := []models.StudentAssignment{}
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, 0, err
	}
	return assignments, total, nil
}

// Delete removes an assignment
func (r *AssignmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// Count totals assignments, optionally created inside [from, to)
func (r *AssignmentRepository) Count(ctx context.Context, from, to *time.Time) (int64, error) {
	filter := bson.M{}
	if from != nil && to != nil {
		filter["createdAt"] = bson.M{"$gte": *from, "$lt": *to}
	}
	return r.coll.CountDocuments(ctx, filter)
}

// SumPayments aggregates recorded payment amounts for the dashboard
func (r *AssignmentRepository) SumPayments(ctx context.Context, from, to *time.Time) (float64, error) {
	match := bson.M{"payment.status": bson.M{"$ne": models.PaymentPending}}
	if from != nil && to != nil {
		match["updatedAt"] = bson.M{"$gte": *from, "$lt": *to}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"total": bson.M{"$sum": bson.M{
				"$add": bson.A{"$payment.advanceAmount", "$payment.finalAmount"},
			}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
