package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "0123456789abcdefghijklmnopqrstuvwxyzABCDEF"

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)
	userID := uuid.New()

	token, err := svc.Generate(userID, "alice@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, expected %s", claims.UserID, userID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %s, expected alice@example.com", claims.Email)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTService(testSecret, time.Hour).Generate(uuid.New(), "a@b.co")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewJWTService("a-completely-different-secret-value", time.Hour).Verify(token); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}

func TestJWTExpired(t *testing.T) {
	svc := NewJWTService(testSecret, -time.Minute)

	token, err := svc.Generate(uuid.New(), "a@b.co")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Verify(token); err == nil {
		t.Error("expired token must not verify")
	}
}

func TestJWTGarbageInput(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.Verify(input); err == nil {
			t.Errorf("Verify(%q) should fail", input)
		}
	}
}
