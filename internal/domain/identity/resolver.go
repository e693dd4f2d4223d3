package identity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"studio-server/internal/utils/platformerrors"
)

// Attribution weights and thresholds. Email is the strongest signal but is
// intentionally fuzzed (provider dot/plus rules) to catch the same human
// using slightly different addresses; phone is a strong independent
// corroborator; name alone is weak and capped.
const (
	emailWeight = 0.6
	nameWeight  = 0.3
	phoneBonus  = 40.0

	candidateThreshold = 60
	acceptThreshold    = 80
	maxCandidates      = 3
)

// ResolveInput is a raw email/name pair from a webhook or widget submission.
type ResolveInput struct {
	Email string
	Name  string
	Phone string
}

// Candidate is a fuzzy-matched identity with a confidence score of 0-100.
type Candidate struct {
	IdentityID uint      `json:"identity_id"`
	Identity   *Identity `json:"-"`
	Confidence int       `json:"confidence"`
	Reasons    []string  `json:"reasons"`
}

// Resolution is the outcome of an attribution pass. A resolution with no
// match is a normal result, not an error.
type Resolution struct {
	ExactMatch      *Identity
	Candidates      []Candidate
	ShouldCreateNew bool
}

// Best returns the identity an accepted resolution points at: the exact
// match when present, otherwise the top candidate at or above the accept
// threshold, otherwise nil.
func (r *Resolution) Best() *Identity {
	if r.ExactMatch != nil {
		return r.ExactMatch
	}
	if len(r.Candidates) > 0 && r.Candidates[0].Confidence >= acceptThreshold {
		return r.Candidates[0].Identity
	}
	return nil
}

// Resolver fuzzy-matches inbound submissions against known identities.
type Resolver struct {
	repo IdentityRepository
}

// NewResolver creates an identity resolver.
func NewResolver(repo IdentityRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve attributes the input to a known identity with confidence scoring.
// An exact raw-email match short-circuits all fuzzy scoring at confidence
// 100. ShouldCreateNew is true iff there is no exact match and no candidate
// reaches the accept threshold.
func (r *Resolver) Resolve(ctx context.Context, input ResolveInput) (*Resolution, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	if email == "" && name == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"email or name is required to resolve an identity", nil, "41c6d9f2-8b3e-4a07-95d1-6e2f8a4b0c73")
	}

	known, err := r.repo.FindAll(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load identities")
	}

	// Exact-match pass on stored raw emails
	if email != "" {
		for _, ident := range known {
			if ident.Email == nil {
				continue
			}
			if strings.ToLower(strings.TrimSpace(*ident.Email)) == email {
				return &Resolution{
					ExactMatch: ident,
					Candidates: []Candidate{{
						IdentityID: ident.ID,
						Identity:   ident,
						Confidence: 100,
						Reasons:    []string{"exact email match"},
					}},
				}, nil
			}
		}
	}

	scoring := ResolveInput{Email: email, Name: name, Phone: input.Phone}
	candidates := make([]Candidate, 0, maxCandidates)
	for _, ident := range known {
		confidence, reasons := calculateConfidence(scoring, ident)
		if confidence > candidateThreshold {
			candidates = append(candidates, Candidate{
				IdentityID: ident.ID,
				Identity:   ident,
				Confidence: confidence,
				Reasons:    reasons,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	return &Resolution{
		Candidates:      candidates,
		ShouldCreateNew: len(candidates) == 0 || candidates[0].Confidence < acceptThreshold,
	}, nil
}

// calculateConfidence computes the weighted confidence of input against one
// identity: email similarity contributes up to 60 points, name similarity up
// to 30, and an exact phone match adds a flat 40 on top. The sum is capped
// at 100.
func calculateConfidence(input ResolveInput, ident *Identity) (int, []string) {
	score := 0.0
	var reasons []string

	if input.Email != "" && ident.Email != nil {
		similarity := emailSimilarity(NormalizeEmail(input.Email), NormalizeEmail(*ident.Email))
		if similarity > 0 {
			score += float64(similarity) * emailWeight
			reasons = append(reasons, fmt.Sprintf("email similarity %d", similarity))
		}
	}

	if input.Name != "" && ident.Name != "" {
		similarity := nameSimilarity(NormalizeName(input.Name), NormalizeName(ident.Name))
		if similarity > 0 {
			score += float64(similarity) * nameWeight
			reasons = append(reasons, fmt.Sprintf("name similarity %d", similarity))
		}
	}

	if input.Phone != "" && ident.Phone != nil {
		if digits(input.Phone) != "" && digits(input.Phone) == digits(*ident.Phone) {
			// Unscaled bonus, allowed to push past the per-field caps.
			score += phoneBonus
			reasons = append(reasons, "exact phone match")
		}
	}

	confidence := int(math.Round(score))
	if confidence > 100 {
		confidence = 100
	}
	return confidence, reasons
}

// NormalizeEmail lowercases, trims, strips dots in the local part and drops
// any +tag suffix, so provider aliases of one mailbox compare equal.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	local, domain := email[:at], email[at+1:]
	if plus := strings.Index(local, "+"); plus >= 0 {
		local = local[:plus]
	}
	local = strings.ReplaceAll(local, ".", "")
	return local + "@" + domain
}

// NormalizeName lowercases, strips non-letters and collapses whitespace.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// emailSimilarity compares two normalized emails: 100 equal, 85 same domain
// with one local part containing the other, 50 same domain, 0 otherwise.
func emailSimilarity(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	localA, domainA, okA := splitEmail(a)
	localB, domainB, okB := splitEmail(b)
	if !okA || !okB || domainA != domainB {
		return 0
	}
	if strings.Contains(localA, localB) || strings.Contains(localB, localA) {
		return 85
	}
	return 50
}

// nameSimilarity compares two normalized names: 100 equal, 80 containment,
// 60 matching first tokens longer than two characters, else a
// character-overlap ratio.
func nameSimilarity(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 80
	}
	tokensA, tokensB := strings.Fields(a), strings.Fields(b)
	if len(tokensA) > 0 && len(tokensB) > 0 &&
		tokensA[0] == tokensB[0] && len(tokensA[0]) > 2 {
		return 60
	}
	return charOverlapRatio(a, b)
}

// charOverlapRatio is the multiset character intersection of the two names
// over the longer length, as a percentage.
func charOverlapRatio(a, b string) int {
	counts := make(map[rune]int)
	for _, r := range a {
		counts[r]++
	}
	overlap := 0
	for _, r := range b {
		if counts[r] > 0 {
			counts[r]--
			overlap++
		}
	}
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	return int(math.Round(float64(overlap) / float64(longest) * 100))
}

func splitEmail(email string) (local, domain string, ok bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", "", false
	}
	return email[:at], email[at+1:], true
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
