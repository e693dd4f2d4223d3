package identity

import (
	"context"
	"testing"

	"studio-server/internal/utils/platformerrors"
)

// mockIdentityRepository is an in-memory IdentityRepository for testing
type mockIdentityRepository struct {
	identities []*Identity
}

func (m *mockIdentityRepository) Create(ctx context.Context, ident *Identity) error {
	ident.ID = uint(len(m.identities) + 1)
	m.identities = append(m.identities, ident)
	return nil
}

func (m *mockIdentityRepository) FindAll(ctx context.Context) ([]*Identity, error) {
	return m.identities, nil
}

func (m *mockIdentityRepository) FindByFilter(ctx context.Context, filter IdentityFilter) ([]*Identity, error) {
	return m.identities, nil
}

func (m *mockIdentityRepository) FindByID(ctx context.Context, id uint) (*Identity, error) {
	for _, ident := range m.identities {
		if ident.ID == id {
			return ident, nil
		}
	}
	return nil, nil
}

func (m *mockIdentityRepository) FindByPublicID(ctx context.Context, publicID string) (*Identity, error) {
	for _, ident := range m.identities {
		if ident.PublicID == publicID {
			return ident, nil
		}
	}
	return nil, nil
}

func (m *mockIdentityRepository) Update(ctx context.Context, ident *Identity) error { return nil }

func strPtr(s string) *string { return &s }

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A.Smith@Gmail.com", "asmith@gmail.com"},
		{"a.smith+promo@gmail.com", "asmith@gmail.com"},
		{"  alice@example.com  ", "alice@example.com"},
		{"a.l.i.c.e+x+y@example.com", "alice@example.com"},
		{"not-an-email", "not-an-email"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice Smith", "alice smith"},
		{"  Alice   Smith!  ", "alice smith"},
		{"O'Brien, Pat", "obrien pat"},
		{"123", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_ExactEmailShortCircuits(t *testing.T) {
	repo := &mockIdentityRepository{identities: []*Identity{
		{ID: 1, Name: "Alice Smith", Email: strPtr("A.Smith@gmail.com")},
		{ID: 2, Name: "Alice Smythe", Email: strPtr("asmithe@gmail.com")},
	}}
	resolver := NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), ResolveInput{
		Email: "a.smith@gmail.com",
		Name:  "completely different name",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if res.ExactMatch == nil || res.ExactMatch.ID != 1 {
		t.Fatalf("expected exact match on identity 1, got %+v", res.ExactMatch)
	}
	if res.ShouldCreateNew {
		t.Error("exact match must not request a new identity")
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Confidence != 100 {
		t.Errorf("exact match should carry a single confidence-100 candidate, got %+v", res.Candidates)
	}
	if res.Best() == nil || res.Best().ID != 1 {
		t.Errorf("Best() should return the exact match")
	}
}

func TestResolve_RequiresEmailOrName(t *testing.T) {
	resolver := NewResolver(&mockIdentityRepository{})

	_, err := resolver.Resolve(context.Background(), ResolveInput{Phone: "555-0100"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestResolve_FuzzyAliasAccepted(t *testing.T) {
	// Stored record uses the raw form without dots; the submission uses a
	// dotted alias of the same mailbox, which only normalization catches.
	repo := &mockIdentityRepository{identities: []*Identity{
		{ID: 1, Name: "Alice Smith", Email: strPtr("asmith@gmail.com")},
	}}
	resolver := NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), ResolveInput{
		Email: "a.smith@gmail.com",
		Name:  "Alice Smith",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if res.ExactMatch != nil {
		t.Fatal("dotted alias must not count as a raw exact match")
	}
	if len(res.Candidates) != 1 {
		t.Fatalf("expected one candidate, got %d", len(res.Candidates))
	}
	if got := res.Candidates[0].Confidence; got != 90 {
		t.Errorf("confidence = %d, want 90 (email 60 + name 30)", got)
	}
	if res.ShouldCreateNew {
		t.Error("a candidate at the accept threshold must not request a new identity")
	}
	if res.Best() == nil || res.Best().ID != 1 {
		t.Error("Best() should accept the top candidate")
	}
}

func TestResolve_WeakMatchCreatesNew(t *testing.T) {
	// Same mailbox but a different first name: email contributes its full 60,
	// the shared first token of the name only 18, landing below the accept
	// threshold.
	repo := &mockIdentityRepository{identities: []*Identity{
		{ID: 1, Name: "Alice Smith", Email: strPtr("asmith@gmail.com")},
	}}
	resolver := NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), ResolveInput{
		Email: "a.smith@gmail.com",
		Name:  "Alice Johnson",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(res.Candidates) != 1 {
		t.Fatalf("expected one candidate, got %d", len(res.Candidates))
	}
	if got := res.Candidates[0].Confidence; got != 78 {
		t.Errorf("confidence = %d, want 78", got)
	}
	if !res.ShouldCreateNew {
		t.Error("a sub-threshold candidate must request a new identity")
	}
	if res.Best() != nil {
		t.Error("Best() must not accept a sub-threshold candidate")
	}
}

func TestResolve_NoSignalCreatesNew(t *testing.T) {
	repo := &mockIdentityRepository{identities: []*Identity{
		{ID: 1, Name: "Bob Jones", Email: strPtr("bob@acme.com")},
	}}
	resolver := NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), ResolveInput{
		Email: "carol@elsewhere.org",
		Name:  "Carol King",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(res.Candidates) != 0 {
		t.Errorf("expected no candidates, got %+v", res.Candidates)
	}
	if !res.ShouldCreateNew {
		t.Error("no candidates must request a new identity")
	}
}

func TestResolve_TopThreeSortedDescending(t *testing.T) {
	// Every stored identity shares the mailbox; names vary the score.
	repo := &mockIdentityRepository{identities: []*Identity{
		{ID: 1, Name: "Alice Smith", Email: strPtr("asmith@gmail.com")},
		{ID: 2, Name: "Alice Smit", Email: strPtr("asmith@gmail.com")},
		{ID: 3, Name: "Alice Johnson", Email: strPtr("asmith@gmail.com")},
		{ID: 4, Name: "Alice Smithson", Email: strPtr("asmith@gmail.com")},
	}}
	resolver := NewResolver(repo)

	res, err := resolver.Resolve(context.Background(), ResolveInput{
		Email: "a.smith@gmail.com",
		Name:  "Alice Smith",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(res.Candidates) != 3 {
		t.Fatalf("expected candidates capped at 3, got %d", len(res.Candidates))
	}
	for i := 1; i < len(res.Candidates); i++ {
		if res.Candidates[i-1].Confidence < res.Candidates[i].Confidence {
			t.Errorf("candidates not sorted descending: %+v", res.Candidates)
		}
	}
	if res.Candidates[0].IdentityID != 1 {
		t.Errorf("expected the identical name first, got identity %d", res.Candidates[0].IdentityID)
	}
}

func TestCalculateConfidence_MonotonicInSignals(t *testing.T) {
	ident := &Identity{
		ID:    1,
		Name:  "Alice Smith",
		Email: strPtr("asmith@gmail.com"),
		Phone: strPtr("(555) 010-0199"),
	}

	emailOnly, _ := calculateConfidence(ResolveInput{Email: "a.smith@gmail.com"}, ident)
	withName, _ := calculateConfidence(ResolveInput{Email: "a.smith@gmail.com", Name: "Alice Smith"}, ident)
	withPhone, _ := calculateConfidence(ResolveInput{Email: "a.smith@gmail.com", Name: "Alice Smith", Phone: "5550100199"}, ident)

	if emailOnly > withName || withName > withPhone {
		t.Errorf("confidence must not decrease as signals are added: %d, %d, %d", emailOnly, withName, withPhone)
	}
	if withPhone != 100 {
		t.Errorf("all signals matching should cap at 100, got %d", withPhone)
	}
}

func TestCalculateConfidence_PhoneBonusUncapped(t *testing.T) {
	// Same domain only (50 * 0.6 = 30) plus the flat phone bonus lands at 70,
	// past what the email field cap alone would allow.
	ident := &Identity{
		ID:    1,
		Name:  "Front Desk",
		Email: strPtr("desk@acme.com"),
		Phone: strPtr("555-0100"),
	}

	got, reasons := calculateConfidence(ResolveInput{Email: "other@acme.com", Phone: "(555) 0100"}, ident)
	if got != 70 {
		t.Errorf("confidence = %d, want 70 (email 30 + phone 40), reasons %v", got, reasons)
	}
}

func TestEmailSimilarityTiers(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"asmith@gmail.com", "asmith@gmail.com", 100},
		{"asmith@gmail.com", "smith@gmail.com", 85},
		{"asmith@gmail.com", "bob@gmail.com", 50},
		{"asmith@gmail.com", "asmith@yahoo.com", 0},
		{"", "asmith@gmail.com", 0},
	}
	for _, tt := range tests {
		if got := emailSimilarity(tt.a, tt.b); got != tt.want {
			t.Errorf("emailSimilarity(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
