package service

import (
	"context"
	"errors"
	"testing"

	"timesketch/internal/models"
)

func TestUserService_CreateOrUpdate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, newMockSketchRepo())

	created, err := svc.CreateOrUpdate(context.Background(), "alice", "s3cr3t")
	if err != nil {
		t.Fatalf("CreateOrUpdate returned error: %v", err)
	}
	if !created {
		t.Fatal("expected created=true for new user")
	}
	if len(repo.createCalls) != 1 || repo.createCalls[0] != "alice" {
		t.Fatalf("unexpected create calls: %v", repo.createCalls)
	}
	// Stored hash must verify against the raw password and not equal it.
	stored := repo.users["alice"].PasswordHash
	if stored == "s3cr3t" {
		t.Fatal("password stored in plaintext")
	}
	if err := verifyPassword(stored, "s3cr3t"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	// Second call updates the password instead of creating a new account.
	created, err = svc.CreateOrUpdate(context.Background(), "alice", "changed")
	if err != nil {
		t.Fatalf("CreateOrUpdate (update) returned error: %v", err)
	}
	if created {
		t.Fatal("expected created=false for existing user")
	}
	if len(repo.passwordCalls) != 1 {
		t.Fatalf("expected 1 UpdatePassword call, got %d", len(repo.passwordCalls))
	}
	if err := verifyPassword(repo.users["alice"].PasswordHash, "changed"); err != nil {
		t.Fatalf("updated hash does not verify: %v", err)
	}
}

func TestUserService_CreateOrUpdate_EmptyPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, newMockSketchRepo())

	if _, err := svc.CreateOrUpdate(context.Background(), "bob", "   "); err == nil {
		t.Fatal("expected error for empty password")
	}
	if len(repo.createCalls) != 0 {
		t.Fatalf("expected no create calls, got %v", repo.createCalls)
	}
}

func TestUserService_SetAdmin(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: 3, Username: "alice", Active: true})
	svc := NewUserService(repo, newMockSketchRepo())

	if err := svc.SetAdmin(context.Background(), "alice", true); err != nil {
		t.Fatalf("SetAdmin returned error: %v", err)
	}
	if admin, ok := repo.adminCalls[3]; !ok || !admin {
		t.Fatalf("unexpected admin calls: %v", repo.adminCalls)
	}

	err := svc.SetAdmin(context.Background(), "ghost", true)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("error = %v, want ErrUserNotFound", err)
	}
}

func TestUserService_GrantSketchAccess(t *testing.T) {
	users := newMockUserRepo(&models.User{ID: 2, Username: "alice", Active: true})
	sketches := newMockSketchRepo(&models.Sketch{ID: 1, Name: "incident", Status: models.StatusReady})
	svc := NewUserService(users, sketches)

	if err := svc.GrantSketchAccess(context.Background(), "alice", 1); err != nil {
		t.Fatalf("GrantSketchAccess returned error: %v", err)
	}
	want := []string{"1:2:read", "1:2:write"}
	if len(sketches.grantCalls) != 2 || sketches.grantCalls[0] != want[0] || sketches.grantCalls[1] != want[1] {
		t.Fatalf("grant calls = %v, want %v", sketches.grantCalls, want)
	}

	if err := svc.GrantSketchAccess(context.Background(), "alice", 99); !errors.Is(err, ErrSketchNotFound) {
		t.Fatalf("error = %v, want ErrSketchNotFound", err)
	}
	if err := svc.GrantSketchAccess(context.Background(), "ghost", 1); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("error = %v, want ErrUserNotFound", err)
	}
}
