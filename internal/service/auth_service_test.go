package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"timesketch/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() AuthConfig {
	return AuthConfig{SigningKey: "test-signing-key", TokenTTL: time.Hour}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func TestAuthService_SignIn_Success(t *testing.T) {
	repo := newMockUserRepo(&models.User{
		ID: 7, Username: "alice", PasswordHash: mustHash(t, "s3cr3t"), Active: true,
	})
	svc := NewAuthService(repo, testAuthConfig())

	token, err := svc.SignIn(context.Background(), "alice", "s3cr3t")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	// The issued token round-trips through ParseToken.
	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if id != 7 {
		t.Fatalf("user id = %d, want 7", id)
	}
}

func TestAuthService_SignIn_Errors(t *testing.T) {
	repo := newMockUserRepo(
		&models.User{ID: 1, Username: "alice", PasswordHash: mustHash(t, "s3cr3t"), Active: true},
		&models.User{ID: 2, Username: "mallory", PasswordHash: mustHash(t, "pw"), Active: false},
	)
	svc := NewAuthService(repo, testAuthConfig())

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "unknown user", username: "ghost", password: "pw", wantErr: ErrUserNotFound},
		{name: "wrong password", username: "alice", password: "nope", wantErr: ErrInvalidPassword},
		{name: "disabled account", username: "mallory", password: "pw", wantErr: ErrUserDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignIn(context.Background(), tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SignIn error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_ParseToken_WrongKey(t *testing.T) {
	repo := newMockUserRepo(&models.User{
		ID: 1, Username: "alice", PasswordHash: mustHash(t, "pw"), Active: true,
	})
	issuer := NewAuthService(repo, AuthConfig{SigningKey: "key-one", TokenTTL: time.Hour})
	verifier := NewAuthService(repo, AuthConfig{SigningKey: "key-two", TokenTTL: time.Hour})

	token, err := issuer.SignIn(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("expected error parsing token signed with a different key")
	}
}
