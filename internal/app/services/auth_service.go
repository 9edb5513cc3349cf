package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
	"github.com/edupro/talentdesk/internal/pkg/auth"
	"github.com/edupro/talentdesk/internal/pkg/kvstore"
)

const (
	otpTTL             = 60 * time.Second
	otpLength          = 6
	lockoutWindow      = 15 * time.Minute
	lockoutMaxAttempts = 5
	inviteTokenTTL     = 7 * 24 * time.Hour
	resetTokenTTL      = time.Hour
)

// AuthService handles authentication, registration and account lifecycle
type AuthService struct {
	userRepo    repositories.IUserRepository
	tokenRepo   repositories.ITokenRepository
	outboxRepo  repositories.IOutboxRepository
	jwtService  *auth.JWTService
	store       kvstore.Store
	frontendURL string
	logger      zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	outboxRepo repositories.IOutboxRepository,
	jwtService *auth.JWTService,
	store kvstore.Store,
	frontendURL string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		outboxRepo:  outboxRepo,
		jwtService:  jwtService,
		store:       store,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func lockoutKey(email string) string {
	return "login-fail:" + email
}

// Login verifies credentials and issues a token pair. Five failed
// attempts inside a 15 minute window lock the account out until the
// window expires; a successful login clears the counter.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	key := lockoutKey(req.Email)
	attempts, err := s.store.Increment(ctx, key, lockoutWindow)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to count login attempt")
	}
	if attempts > lockoutMaxAttempts {
		return nil, apperrors.ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status == models.UserStatusDisabled {
		return nil, apperrors.ErrAccountDisabled
	}
	if user.Status == models.UserStatusInvited {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		if attempts >= lockoutMaxAttempts {
			s.logger.Warn().Str("email", req.Email).Int64("attempts", attempts).Msg("Login attempts exhausted")
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to clear login failure counter")
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("userId", user.ID.Hex()).Msg("Failed to stamp last login")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	refresh := &models.RefreshToken{
		Token:      refreshToken,
		UserID:     user.ID,
		ExpiryDate: s.jwtService.GetRefreshTokenExpiry(),
	}
	if err := s.tokenRepo.SaveRefreshToken(ctx, refresh); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             expiresIn,
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: refreshExpiresIn,
		},
		User: dto.FromUser(user),
	}, nil
}

// RequestOTP generates a short-lived registration code and queues the
// e-mail carrying it. Requesting again before expiry replaces the code.
func (s *AuthService) RequestOTP(ctx context.Context, req dto.RequestOTPRequest) error {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}

	code, err := auth.GenerateOTP(otpLength)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	if err := s.store.Set(ctx, "otp:"+req.Email, code, otpTTL); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	// The outbox key includes the code so a replaced code sends a fresh mail
	notification := &models.Notification{
		Key:       fmt.Sprintf("otp:%s:%s", req.Email, code),
		Template:  models.TemplateOTP,
		Recipient: req.Email,
		Subject:   "Your TalentDesk verification code",
		Payload:   map[string]string{"code": code},
	}
	if err := s.outboxRepo.Enqueue(ctx, notification); err != nil {
		return fmt.Errorf("failed to queue OTP mail: %w", err)
	}

	s.logger.Info().Str("email", req.Email).Msg("Registration OTP issued")
	return nil
}

// VerifyOTP completes student self-registration. The code is single
// use and expires 60 seconds after issue.
func (s *AuthService) VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (*dto.AuthResponse, error) {
	key := "otp:" + req.Email
	stored, found, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrOTPExpired
	}
	if stored != req.OTP {
		return nil, apperrors.ErrOTPInvalid
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to consume OTP")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      models.RoleStudent,
		Status:    models.UserStatusActive,
	}
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", req.Email).Msg("Student registered")
	return s.issueTokens(ctx, user)
}

// InviteUser creates an employee account in invited state and queues
// the activation e-mail. Admin only.
func (s *AuthService) InviteUser(ctx context.Context, req dto.InviteUserRequest) (*dto.UserResponse, error) {
	role := models.Role(req.Role)
	if role != models.RoleEmployee && role != models.RoleAdmin {
		return nil, apperrors.NewBadRequestError("role must be EMPLOYEE or ADMIN")
	}

	token, err := auth.GenerateInviteToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}
	exp := time.Now().UTC().Add(inviteTokenTTL)

	user := &models.User{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           role,
		Status:         models.UserStatusInvited,
		InviteToken:    token,
		InviteTokenExp: &exp,
	}
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		Key:           "invite:" + user.ID.Hex(),
		Template:      models.TemplateInvite,
		Recipient:     user.Email,
		RecipientName: user.FullName(),
		Subject:       "You're invited to TalentDesk",
		Payload: map[string]string{
			"name":          user.FullName(),
			"activationUrl": s.frontendURL + "/activate?token=" + token,
		},
	}
	if err := s.outboxRepo.Enqueue(ctx, notification); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to queue invite mail")
	}

	resp := dto.FromUser(user)
	return &resp, nil
}

// ActivateAccount finishes an invited user's setup by setting a password
func (s *AuthService) ActivateAccount(ctx context.Context, req dto.ActivateAccountRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByInviteToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if user.Status != models.UserStatusInvited {
		return nil, apperrors.ErrInviteTokenUsed
	}
	if user.InviteTokenExp == nil || time.Now().UTC().After(*user.InviteTokenExp) {
		return nil, apperrors.ErrInviteTokenInvalid
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = hash
	user.Status = models.UserStatusActive
	user.InviteToken = ""
	user.InviteTokenExp = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Msg("Account activated")
	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token and issues a fresh pair
func (s *AuthService) RefreshToken(ctx context.Context, token string) (*dto.AuthResponse, error) {
	stored, err := s.tokenRepo.GetRefreshToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if stored.IsRevoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().UTC().After(stored.ExpiryDate) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if user.Status != models.UserStatusActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeRefreshToken(ctx, token); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, token string) error {
	err := s.tokenRepo.RevokeRefreshToken(ctx, token)
	if errors.Is(err, apperrors.ErrTokenNotFound) {
		return nil
	}
	return err
}

// ForgotPassword queues a reset link. Unknown addresses are treated as
// success so the endpoint does not leak which e-mails exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := auth.GenerateInviteToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	reset := &models.PasswordResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	}
	if err := s.tokenRepo.SavePasswordResetToken(ctx, reset); err != nil {
		return err
	}

	notification := &models.Notification{
		Key:           "password-reset:" + token,
		Template:      models.TemplatePasswordReset,
		Recipient:     user.Email,
		RecipientName: user.FullName(),
		Subject:       "Reset your TalentDesk password",
		Payload: map[string]string{
			"name":     user.FullName(),
			"resetUrl": s.frontendURL + "/reset-password?token=" + token,
		},
	}
	if err := s.outboxRepo.Enqueue(ctx, notification); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to queue reset mail")
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	stored, err := s.tokenRepo.GetPasswordResetToken(ctx, token)
	if err != nil {
		return err
	}
	if stored.Used {
		return apperrors.ErrTokenRevoked
	}
	if time.Now().UTC().After(stored.ExpiresAt) {
		return apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	if err := s.tokenRepo.MarkPasswordResetTokenUsed(ctx, token); err != nil {
		return err
	}
	// Stolen sessions die with the old password
	return s.tokenRepo.RevokeAllUserTokens(ctx, user.ID)
}

// GetProfile returns the caller's own account
func (s *AuthService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}
