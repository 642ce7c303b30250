package authtoken

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	raw, err := iss.Issue(42, "owner@pitstopservix.com", "GARAGE_OWNER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := iss.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	id, _ := claims.UserID()
	if id != 42 || claims.Email != "owner@pitstopservix.com" || claims.Role != "GARAGE_OWNER" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, err := iss.Issue(1, "a@b.com", "CUSTOMER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	iss.now = time.Now
	if _, err := iss.Parse(raw); err != ErrInvalid {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	raw, _ := NewIssuer("one", 0).Issue(1, "a@b.com", "CUSTOMER")

	if _, err := NewIssuer("two", 0).Parse(raw); err != ErrInvalid {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
