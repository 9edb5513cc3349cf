package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
	"github.com/edupro/talentdesk/internal/pkg/auth"
	"github.com/edupro/talentdesk/internal/pkg/kvstore"
)

type authFixture struct {
	service *AuthService
	users   *fakeUserRepo
	tokens  *fakeTokenRepo
	outbox  *fakeOutboxRepo
	store   kvstore.Store
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	outbox := newFakeOutboxRepo()
	store := kvstore.NewMemoryStore()
	jwt := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "unit-test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "talentdesk.test",
	})
	service := NewAuthService(users, tokens, outbox, jwt, store, "http://localhost:3000", zerolog.Nop())
	return &authFixture{service: service, users: users, tokens: tokens, outbox: outbox, store: store}
}

func (f *authFixture) addActiveUser(t *testing.T, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return f.users.add(&models.User{
		Email:     email,
		Password:  hash,
		FirstName: "Priya",
		LastName:  "Sharma",
		Role:      role,
		Status:    models.UserStatusActive,
	})
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture()
	user := f.addActiveUser(t, "priya@example.com", "s3cret-pass", models.RoleStudent)

	resp, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, user.ID.Hex(), resp.User.ID)
	assert.NotNil(t, user.LastLoginAt)

	// the refresh token must be persisted for later rotation
	_, err = f.tokens.GetRefreshToken(context.Background(), resp.Token.RefreshToken)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.addActiveUser(t, "priya@example.com", "s3cret-pass", models.RoleStudent)

	_, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailMasked(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginLockoutAfterFiveFailures(t *testing.T) {
	f := newAuthFixture()
	f.addActiveUser(t, "priya@example.com", "s3cret-pass", models.RoleStudent)

	req := dto.LoginRequest{Email: "priya@example.com", Password: "wrong"}
	for i := 0; i < 5; i++ {
		_, err := f.service.Login(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	// the sixth attempt is refused before the password is even checked
	_, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrTooManyAttempts)
}

func TestLoginSuccessClearsFailureCounter(t *testing.T) {
	f := newAuthFixture()
	f.addActiveUser(t, "priya@example.com", "s3cret-pass", models.RoleStudent)

	for i := 0; i < 3; i++ {
		_, err := f.service.Login(context.Background(), dto.LoginRequest{
			Email:    "priya@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	_, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, found, err := f.store.Get(context.Background(), lockoutKey("priya@example.com"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoginDisabledAccount(t *testing.T) {
	f := newAuthFixture()
	user := f.addActiveUser(t, "priya@example.com", "s3cret-pass", models.RoleStudent)
	user.Status = models.UserStatusDisabled

	_, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRequestOTPStoresCodeAndQueuesMail(t *testing.T) {
	f := newAuthFixture()

	err := f.service.RequestOTP(context.Background(), dto.RequestOTPRequest{Email: "new@example.com"})
	require.NoError(t, err)

	code, found, err := f.store.Get(context.Background(), "otp:new@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, code, 6)

	queued := f.outbox.byTemplate(models.TemplateOTP)
	require.Len(t, queued, 1)
	assert.Equal(t, "new@example.com", queued[0].Recipient)
	assert.Equal(t, code, queued[0].Payload["code"])
}

func TestRequestOTPRejectsExistingEmail(t *testing.T) {
	f := newAuthFixture()
	f.addActiveUser(t, "taken@example.com", "s3cret-pass", models.RoleStudent)

	err := f.service.RequestOTP(context.Background(), dto.RequestOTPRequest{Email: "taken@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestVerifyOTPRegistersStudent(t *testing.T) {
	f := newAuthFixture()
	require.NoError(t, f.store.Set(context.Background(), "otp:new@example.com", "123456", time.Minute))

	resp, err := f.service.VerifyOTP(context.Background(), dto.VerifyOTPRequest{
		Email:     "new@example.com",
		OTP:       "123456",
		Password:  "hunter22pass",
		FirstName: "Arjun",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)

	user, err := f.users.GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.True(t, auth.CheckPassword(user.Password, "hunter22pass"))

	// the code is single use
	_, found, err := f.store.Get(context.Background(), "otp:new@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestVerifyOTPExpired(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.VerifyOTP(context.Background(), dto.VerifyOTPRequest{
		Email:    "new@example.com",
		OTP:      "123456",
		Password: "hunter22pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrOTPExpired)
}

func TestVerifyOTPMismatch(t *testing.T) {
	f := newAuthFixture()
	require.NoError(t, f.store.Set(context.Background(), "otp:new@example.com", "123456", time.Minute))

	_, err := f.service.VerifyOTP(context.Background(), dto.VerifyOTPRequest{
		Email:    "new@example.com",
		OTP:      "654321",
		Password: "hunter22pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrOTPInvalid)
}

func TestInviteUserQueuesActivationMail(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.service.InviteUser(context.Background(), dto.InviteUserRequest{
		Email:     "emp@example.com",
		FirstName: "Kiran",
		Role:      models.RoleEmployee,
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleEmployee), resp.Role)

	user, err := f.users.GetByEmail(context.Background(), "emp@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusInvited, user.Status)
	assert.NotEmpty(t, user.InviteToken)

	queued := f.outbox.byTemplate(models.TemplateInvite)
	require.Len(t, queued, 1)
	assert.Contains(t, queued[0].Payload["activationUrl"], user.InviteToken)
}

func TestInviteUserRejectsStudentRole(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.InviteUser(context.Background(), dto.InviteUserRequest{
		Email: "x@example.com",
		Role:  models.RoleStudent,
	})
	assert.Error(t, err)
}

func TestActivateAccount(t *testing.T) {
	f := newAuthFixture()
	exp := time.Now().UTC().Add(time.Hour)
	user := f.users.add(&models.User{
		Email:          "emp@example.com",
		Role:           models.RoleEmployee,
		Status:         models.UserStatusInvited,
		InviteToken:    "activation-token",
		InviteTokenExp: &exp,
	})

	resp, err := f.service.ActivateAccount(context.Background(), dto.ActivateAccountRequest{
		Token:    "activation-token",
		Password: "fresh-password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.Empty(t, user.InviteToken)
	assert.True(t, auth.CheckPassword(user.Password, "fresh-password"))
}

func TestActivateAccountExpiredToken(t *testing.T) {
	f := newAuthFixture()
	exp := time.Now().UTC().Add(-time.Hour)
	f.users.add(&models.User{
		Email:          "emp@example.com",
		Role:           models.RoleEmployee,
		Status:         models.UserStatusInvited,
		InviteToken:    "stale-token",
		InviteTokenExp: &exp,
	})

	_, err := f.service.ActivateAccount(context.Background(), dto.ActivateAccountRequest{
		Token:    "stale-token",
		Password: "fresh-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInviteTokenInvalid)
}

func TestActivateAccountAlreadyActive(t *testing.T) {
	f := newAuthFixture()
	exp := time.Now().UTC().Add(time.Hour)
	f.users.add(&models.User{
		Email:          "emp@example.com",
		Role:           models.RoleEmployee,
		Status:         models.UserStatusActive,
		InviteToken:    "used-token",
		InviteTokenExp: &exp,
	})

	_, err := f.service.ActivateAccount(context.Background(), dto.ActivateAccountRequest{
		Token:    "used-token",
		Password: "fresh-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInviteTokenUsed)
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newAuthFixture()
	f.addActiveUser(t, "priya@example.com", "s3cret-pass", models.RoleStudent)

	first, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	second, err := f.service.RefreshToken(context.Background(), first.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token.RefreshToken, second.Token.RefreshToken)

	// the old token was revoked and cannot be replayed
	_, err = f.service.RefreshToken(context.Background(), first.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestLogoutUnknownTokenIsQuiet(t *testing.T) {
	f := newAuthFixture()
	assert.NoError(t, f.service.Logout(context.Background(), "never-issued"))
}

func TestForgotPasswordUnknownEmailSilent(t *testing.T) {
	f := newAuthFixture()

	err := f.service.ForgotPassword(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, f.outbox.byTemplate(models.TemplatePasswordReset))
}

func TestForgotAndResetPassword(t *testing.T) {
	f := newAuthFixture()
	user := f.addActiveUser(t, "priya@example.com", "old-password", models.RoleStudent)

	login, err := f.service.Login(context.Background(), dto.LoginRequest{
		Email:    "priya@example.com",
		Password: "old-password",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.ForgotPassword(context.Background(), "priya@example.com"))
	queued := f.outbox.byTemplate(models.TemplatePasswordReset)
	require.Len(t, queued, 1)

	var resetToken string
	for token := range f.tokens.reset {
		resetToken = token
	}
	require.NotEmpty(t, resetToken)

	require.NoError(t, f.service.ResetPassword(context.Background(), resetToken, "new-password"))
	assert.True(t, auth.CheckPassword(user.Password, "new-password"))

	// existing sessions were revoked along with the old password
	_, err = f.service.RefreshToken(context.Background(), login.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// the reset token is single use
	err = f.service.ResetPassword(context.Background(), resetToken, "another-password")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture()
	user := f.addActiveUser(t, "priya@example.com", "old-password", models.RoleStudent)
	require.NoError(t, f.tokens.SavePasswordResetToken(context.Background(), &models.PasswordResetToken{
		Token:     "stale",
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}))

	err := f.service.ResetPassword(context.Background(), "stale", "new-password")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}
