package api

import (
	"testing"
	"time"
)

func TestIssueAndParseToken(t *testing.T) {
	tok, err := IssueToken("s", "ops@example.com", RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub, role, err := parseToken("s", tok)
	if err != nil || sub != "ops@example.com" || role != RoleAdmin {
		t.Fatalf("unexpected claims %q %q %v", sub, role, err)
	}
	if _, _, err := parseToken("other", tok); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestExpiredToken(t *testing.T) {
	tok, err := IssueToken("s", "ops", RoleAdmin, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := parseToken("s", tok); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestIssueTokenWithoutSecret(t *testing.T) {
	if _, err := IssueToken("", "ops", RoleAdmin, time.Hour); err == nil {
		t.Fatal("expected error without secret")
	}
}
