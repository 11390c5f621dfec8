// Package auth owns account lifecycle: sign-up, sign-in, sign-out,
// current-user lookup and auth state change notifications. Tokens are
// JWTs backed by revocable session rows.
package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dev-singh-05/gymers/internal/models"
	"github.com/dev-singh-05/gymers/internal/store"
	"github.com/dev-singh-05/gymers/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBadCredentials = errors.New("auth: invalid email or password")
	ErrEmailTaken     = errors.New("auth: email already registered")
	ErrInvalidEmail   = errors.New("auth: invalid email address")
	ErrWeakPassword   = errors.New("auth: password must be 8-32 chars with upper, lower and digit")
	ErrAccountLocked  = errors.New("auth: account temporarily locked")
)

const (
	maxFailedLogins    = 5
	lockoutDuration    = 10 * time.Minute
	profileCreateTries = 3
)

// Service implements the session/auth operations.
type Service struct {
	DB       *gorm.DB
	Profiles *store.ProfileStore
	Secret   string
	TokenTTL time.Duration
	Events   *Notifier
}

func NewService(db *gorm.DB, profiles *store.ProfileStore, secret string, ttlHours int) *Service {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &Service{
		DB:       db,
		Profiles: profiles,
		Secret:   secret,
		TokenTTL: time.Duration(ttlHours) * time.Hour,
		Events:   NewNotifier(),
	}
}

// SignUp creates the account and signs it in. Profile creation after
// the account is best-effort with a bounded retry: terminal failure is
// logged and the account stands without a profile row.
func (s *Service) SignUp(email, password, name string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := util.ValidateEmail(email); err != nil {
		return nil, "", ErrInvalidEmail
	}
	if !util.IsStrongPassword(password) {
		return nil, "", ErrWeakPassword
	}

	var count int64
	if err := s.DB.Model(&models.User{}).
		Where("LOWER(email) = ?", email).
		Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, "", ErrEmailTaken
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		// another sign-up slipped past the count check
		if isUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	s.createProfileBestEffort(&user, name)

	token, err := s.openSession(&user)
	if err != nil {
		return nil, "", err
	}

	s.Events.notify(&user)
	return &user, token, nil
}

// SignIn verifies credentials and returns a fresh session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) SignIn(email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	if err := s.DB.Where("LOWER(email) = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrBadCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	now := time.Now()
	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		return nil, "", ErrAccountLocked
	}

	if !util.CheckPassword(password, user.PasswordHash) {
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= maxFailedLogins {
			lockUntil := now.Add(lockoutDuration)
			user.LockedUntil = &lockUntil
			user.FailedLoginAttempts = 0
		}
		_ = s.DB.Save(&user).Error
		return nil, "", ErrBadCredentials
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now
	_ = s.DB.Save(&user).Error

	token, err := s.openSession(&user)
	if err != nil {
		return nil, "", err
	}

	s.Events.notify(&user)
	return &user, token, nil
}

// SignOut revokes the session the token was issued under. Only a
// storage failure is an error; an already-revoked or unknown session
// signs out cleanly.
func (s *Service) SignOut(token string) error {
	claims, err := util.ParseToken(s.Secret, token)
	if err != nil {
		s.Events.notify(nil)
		return nil
	}

	if err := s.DB.Model(&models.Session{}).
		Where("id = ?", claims.SessionID).
		Update("revoked", true).Error; err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	s.Events.notify(nil)
	return nil
}

// CurrentUser resolves a token to its user. An absent, malformed,
// expired or revoked token returns (nil, nil): unauthenticated is not
// an error.
func (s *Service) CurrentUser(token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	claims, err := util.ParseToken(s.Secret, token)
	if err != nil {
		return nil, nil
	}

	var sess models.Session
	if err := s.DB.First(&sess, "id = ?", claims.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if sess.Revoked || time.Now().After(sess.ExpiresAt) {
		return nil, nil
	}

	var user models.User
	if err := s.DB.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// OnAuthStateChange registers a listener fired on every sign-in,
// sign-up and sign-out. Returns the unsubscribe func.
func (s *Service) OnAuthStateChange(fn func(*models.User)) func() {
	return s.Events.Subscribe(fn)
}

func (s *Service) openSession(user *models.User) (string, error) {
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.TokenTTL),
	}
	if err := s.DB.Create(&sess).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	token, err := util.GenerateToken(s.Secret, user.ID, sess.ID, s.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// isUniqueViolation matches a unique-index insert failure from the
// sqlite driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *Service) createProfileBestEffort(user *models.User, name string) {
	var lastErr error
	for i := 0; i < profileCreateTries; i++ {
		_, err := s.Profiles.Create(user.ID, user.Email, name)
		if err == nil || errors.Is(err, store.ErrConflict) {
			return
		}
		lastErr = err
	}
	log.Printf("auth: profile creation for user %d failed after %d attempts: %v",
		user.ID, profileCreateTries, lastErr)
}
