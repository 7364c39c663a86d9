package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.Issue(42, "a@x.com", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if claims.UserID != 42 || claims.Email != "a@x.com" || claims.FirstName != "Ada" || claims.LastName != "Lovelace" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	token, err := svc.Issue(1, "a@x.com", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Verify(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerifyForeignSignature(t *testing.T) {
	token, err := NewService("other-secret", time.Hour).Issue(1, "a@x.com", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewService("test-secret", time.Hour).Verify(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestVerifyGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	if _, err := svc.Verify("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
