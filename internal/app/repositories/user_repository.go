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

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByInviteToken(ctx context.Context, token string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, role models.Role, skip, limit int64) ([]models.User, int64, error)
	CountByRole(ctx context.Context, role models.Role, from, to *time.Time) (int64, error)
}

// UserRepository handles persistence of user accounts
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection("users")}
}

// Create inserts a new user account
func (r *UserRepository) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, apperrors.ErrEmailAlreadyExists
		}
		return primitive.NilObjectID, err
	}
	id := res.InsertedID.(primitive.ObjectID)
	user.ID = id
	return id, nil
}

// GetByID retrieves a user by its object id
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByInviteToken retrieves an invited user by its invite token
func (r *UserRepository) GetByInviteToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"inviteToken": token}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrInviteTokenInvalid
		}
		return nil, err
	}
	return &user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update replaces mutable fields of a user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin stamps the most recent successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"lastLoginAt": at, "updatedAt": time.Now().UTC()},
	})
	return err
}

// Delete removes a user account
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// List returns a page of users, optionally filtered by role
func (r *UserRepository) List(ctx context.Context, role models.Role, skip, limit int64) ([]models.User, int64, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
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

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// CountByRole counts users of a role, optionally created inside [from, to)
func (r *UserRepository) CountByRole(ctx context.Context, role models.Role, from, to *time.Time) (int64, error) {
	filter := bson.M{"role": role}
	if from != nil && to != nil {
		filter["createdAt"] = bson.M{"$gte": *from, "$lt": *to}
	}
	return r.coll.CountDocuments(ctx, filter)
}
