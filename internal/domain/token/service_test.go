package token

import (
	"context"
	"strings"
	"testing"

	"studio-server/internal/utils/platformerrors"
)

func TestGenerate_AlwaysSatisfiesFormat(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		tok, err := svc.Generate(ctx, "conversation")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if !ValidateFormat(tok.Value) {
			t.Fatalf("generated token %q fails its own format check", tok.Value)
		}
		if seen[tok.Value] {
			t.Fatalf("duplicate token generated: %q", tok.Value)
		}
		seen[tok.Value] = true

		if tok.SubmissionID == "" {
			t.Fatal("submission id must not be empty")
		}
	}
}

func TestGenerate_RequiresPurpose(t *testing.T) {
	svc := NewService()

	_, err := svc.Generate(context.Background(), "")
	if err == nil {
		t.Fatal("expected validation error for empty purpose")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"valid mixed alphabet", "Ab0-_cDefGhiJkLmNoPqRs", true},
		{"too short", strings.Repeat("a", TokenLength-1), false},
		{"too long", strings.Repeat("a", TokenLength+1), false},
		{"empty", "", false},
		{"illegal character", "Ab0-_cDefGhiJkLmNoPqR!", false},
		{"space", "Ab0- cDefGhiJkLmNoPqRs", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateFormat(tt.token); got != tt.want {
				t.Errorf("ValidateFormat(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestSubmissionID_TimeOrdered(t *testing.T) {
	first, err := submissionID()
	if err != nil {
		t.Fatalf("submissionID failed: %v", err)
	}
	second, err := submissionID()
	if err != nil {
		t.Fatalf("submissionID failed: %v", err)
	}

	// Ids within the same process never shrink: the base36 seconds prefix is
	// non-decreasing.
	if first[:len(first)-submissionRandomLength] > second[:len(second)-submissionRandomLength] {
		t.Errorf("submission id prefixes went backwards: %q then %q", first, second)
	}
}
