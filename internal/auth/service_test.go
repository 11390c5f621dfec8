package auth

import (
	"errors"
	"testing"

	"github.com/dev-singh-05/gymers/internal/database"
	"github.com/dev-singh-05/gymers/internal/models"
	"github.com/dev-singh-05/gymers/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testAuth(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return NewService(db, store.NewProfileStore(db), "test-secret", 1)
}

func TestSignUpCreatesProfileWithDefaultName(t *testing.T) {
	svc := testAuth(t)

	user, token, err := svc.SignUp("a@x.com", "Secret123", "")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if token == "" {
		t.Error("expected a session token")
	}

	profile, err := svc.Profiles.Get(user.ID)
	if err != nil {
		t.Fatalf("profile after signup: %v", err)
	}
	if profile.Name != "a" {
		t.Errorf("profile Name = %q, want email local-part %q", profile.Name, "a")
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	svc := testAuth(t)

	if _, _, err := svc.SignUp("a@x.com", "Secret123", ""); err != nil {
		t.Fatalf("first sign up: %v", err)
	}
	if _, _, err := svc.SignUp("A@X.com", "Secret123", ""); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email error = %v, want ErrEmailTaken", err)
	}
}

func TestSignUpRejectsInvalidEmail(t *testing.T) {
	svc := testAuth(t)

	if _, _, err := svc.SignUp("not-an-email", "Secret123", ""); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("invalid email error = %v, want ErrInvalidEmail", err)
	}
}

func TestUniqueViolationMapsToEmailTaken(t *testing.T) {
	svc := testAuth(t)

	if err := svc.DB.Create(&models.User{Email: "a@x.com", PasswordHash: "x"}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	// the raw duplicate insert is what a sign-up losing the race sees
	err := svc.DB.Create(&models.User{Email: "a@x.com", PasswordHash: "x"}).Error
	if err == nil {
		t.Fatal("duplicate insert should fail")
	}
	if !isUniqueViolation(err) {
		t.Errorf("isUniqueViolation(%v) = false, want true", err)
	}
}

func TestSignUpRejectsWeakPassword(t *testing.T) {
	svc := testAuth(t)

	if _, _, err := svc.SignUp("a@x.com", "weak", ""); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("weak password error = %v, want ErrWeakPassword", err)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc := testAuth(t)

	if _, _, err := svc.SignUp("a@x.com", "Secret123", ""); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, _, err := svc.SignIn("a@x.com", "Wrong1234"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong password error = %v, want ErrBadCredentials", err)
	}
	// unknown email reads the same to the caller
	if _, _, err := svc.SignIn("ghost@x.com", "Secret123"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("unknown email error = %v, want ErrBadCredentials", err)
	}
}

func TestSignInLockoutAfterRepeatedFailures(t *testing.T) {
	svc := testAuth(t)

	if _, _, err := svc.SignUp("a@x.com", "Secret123", ""); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	for i := 0; i < maxFailedLogins; i++ {
		if _, _, err := svc.SignIn("a@x.com", "Wrong1234"); !errors.Is(err, ErrBadCredentials) {
			t.Fatalf("attempt %d error = %v", i, err)
		}
	}
	// correct password is refused while locked
	if _, _, err := svc.SignIn("a@x.com", "Secret123"); !errors.Is(err, ErrAccountLocked) {
		t.Errorf("locked account error = %v, want ErrAccountLocked", err)
	}
}

func TestCurrentUserLifecycle(t *testing.T) {
	svc := testAuth(t)

	user, token, err := svc.SignUp("a@x.com", "Secret123", "")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	got, err := svc.CurrentUser(token)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("CurrentUser = %+v, want user %d", got, user.ID)
	}

	// unauthenticated cases are nil, nil - never an error
	for _, bad := range []string{"", "garbage"} {
		got, err := svc.CurrentUser(bad)
		if err != nil {
			t.Errorf("CurrentUser(%q) error = %v, want nil", bad, err)
		}
		if got != nil {
			t.Errorf("CurrentUser(%q) = %+v, want nil", bad, got)
		}
	}

	// sign-out revokes the session behind the token
	if err := svc.SignOut(token); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	got, err = svc.CurrentUser(token)
	if err != nil {
		t.Fatalf("current user after sign out: %v", err)
	}
	if got != nil {
		t.Error("revoked session should resolve to no identity")
	}
}

func TestOnAuthStateChange(t *testing.T) {
	svc := testAuth(t)

	var events []*models.User
	unsubscribe := svc.OnAuthStateChange(func(u *models.User) {
		events = append(events, u)
	})

	_, token, err := svc.SignUp("a@x.com", "Secret123", "")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if err := svc.SignOut(token); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0] == nil || events[0].Email != "a@x.com" {
		t.Errorf("sign-up event = %+v, want the user", events[0])
	}
	if events[1] != nil {
		t.Errorf("sign-out event = %+v, want nil", events[1])
	}

	unsubscribe()
	if _, _, err := svc.SignIn("a@x.com", "Secret123"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events after unsubscribe, want still 2", len(events))
	}
}
