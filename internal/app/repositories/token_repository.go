package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

// ITokenRepository defines refresh and password reset token persistence
type ITokenRepository interface {
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID primitive.ObjectID) error
	SavePasswordResetToken(ctx context.Context, token *models.PasswordResetToken) error
	GetPasswordResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	MarkPasswordResetTokenUsed(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}

// TokenRepository stores refresh and password reset tokens
type TokenRepository struct {
	refresh *mongo.Collection
	reset   *mongo.Collection
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{
		refresh: db.Collection("refresh_tokens"),
		reset:   db.Collection("password_reset_tokens"),
	}
}

// SaveRefreshToken persists a newly issued refresh token
func (r *TokenRepository) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	token.CreatedAt = time.Now().UTC()
	_, err := r.refresh.InsertOne(ctx, token)
	return err
}

// GetRefreshToken looks up a refresh token by its opaque value
func (r *TokenRepository) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.refresh.FindOne(ctx, bson.M{"token": token}).Decode(&rt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, err
	}
	return &rt, nil
}

// RevokeRefreshToken marks a single refresh token as revoked
func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	res, err := r.refresh.UpdateOne(ctx, bson.M{"token": token}, bson.M{
		"$set": bson.M{"isRevoked": true},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// RevokeAllUserTokens revokes every refresh token a user holds
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.refresh.UpdateMany(ctx, bson.M{"userId": userID, "isRevoked": false}, bson.M{
		"$set": bson.M{"isRevoked": true},
	})
	return err
}

// SavePasswordResetToken persists a password reset token
func (r *TokenRepository) SavePasswordResetToken(ctx context.Context, token *models.PasswordResetToken) error {
	token.CreatedAt = time.Now().UTC()
	_, err := r.reset.InsertOne(ctx, token)
	return err
}

// GetPasswordResetToken looks up a reset token by value
func (r *TokenRepository) GetPasswordResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var prt models.PasswordResetToken
	err := r.reset.FindOne(ctx, bson.M{"token": token}).Decode(&prt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, err
	}
	return &prt, nil
}

// MarkPasswordResetTokenUsed consumes a reset token
func (r *TokenRepository) MarkPasswordResetTokenUsed(ctx context.Context, token string) error {
	res, err := r.reset.UpdateOne(ctx, bson.M{"token": token}, bson.M{
		"$set": bson.M{"used": true},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// DeleteExpired clears tokens past their expiry
func (r *TokenRepository) DeleteExpired(ctx context.Context) error {
	now := time.Now().UTC()
	if _, err := r.refresh.DeleteMany(ctx, bson.M{"expiryDate": bson.M{"$lt": now}}); err != nil {
		return err
	}
	_, err := r.reset.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": now}})
	return err
}
