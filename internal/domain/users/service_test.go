package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"kasmoni-app-go/internal/config"
)

type fakeUserRepo struct {
	users  []User
	nextID int64
}

func (f *fakeUserRepo) Create(ctx context.Context, user *User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID int64) (*User, error) {
	for _, user := range f.users {
		if user.ID == userID {
			copied := user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}
}

func TestFirstUserBecomesAdministrator(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, testAuthConfig())

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "First@Example.com",
		Password: "long-enough",
		Role:     RoleViewer,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != RoleAdministrator {
		t.Fatalf("expected first user to be administrator, got %q", user.Role)
	}
	if user.Email != "first@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
}

func TestSecondUserKeepsRequestedRole(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, testAuthConfig())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "admin@example.com", Password: "long-enough"}); err != nil {
		t.Fatalf("register admin: %v", err)
	}

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "viewer@example.com",
		Password: "long-enough",
		Role:     RoleViewer,
	})
	if err != nil {
		t.Fatalf("register viewer: %v", err)
	}
	if user.Role != RoleViewer {
		t.Fatalf("expected viewer role, got %q", user.Role)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, testAuthConfig())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "short"}); err == nil {
		t.Fatal("expected error for short password")
	}
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, testAuthConfig())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "long-enough"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(context.Background(), RegisterInput{Email: "A@Example.com", Password: "long-enough"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, testAuthConfig())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "admin@example.com", Password: "long-enough"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "admin@example.com", "long-enough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != user.Role {
		t.Fatalf("claims mismatch: %+v vs %+v", claims, user)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, testAuthConfig())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "admin@example.com", Password: "long-enough"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "admin@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, testAuthConfig())

	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
