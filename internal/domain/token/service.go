// Package token issues the opaque access tokens that act as the sole
// client-side credential for a conversation.
package token

import (
	"context"
	"crypto/rand"
	"strconv"
	"time"

	"studio-server/internal/utils/platformerrors"
)

const (
	// TokenLength is the fixed length of an access token. 22 characters of
	// the base64url alphabet carry 132 bits of entropy.
	TokenLength = 22

	submissionRandomLength = 4

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
)

// Token is an opaque conversation credential. Whoever holds it can read and
// write that conversation's messages; revocation is archiving the conversation.
type Token struct {
	Value string
	// SubmissionID is a short, time-ordered suffix used only for
	// human-readable conversation titles. It is not a security boundary.
	SubmissionID string
}

// Service generates and validates access tokens.
type Service struct{}

// NewService creates a token service.
func NewService() *Service {
	return &Service{}
}

// Generate produces a new access token for the given purpose together with a
// submission id. It never returns a partially formed token.
func (s *Service) Generate(ctx context.Context, purpose string) (*Token, error) {
	if purpose == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"token purpose is required", nil, "ce5b9a40-6c1f-4a92-b2e4-55f4c0a1d970")
	}

	value, err := randomString(TokenLength)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate token", err, "8f2d1c7e-0b3a-4f61-9d58-2e7a6b4c8d10")
	}

	submission, err := submissionID()
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate submission id", err, "b4e8a2d6-7c0f-4513-8a9e-1d3f5b7c9e21")
	}

	return &Token{Value: value, SubmissionID: submission}, nil
}

// ValidateFormat checks length and alphabet only. A passing token is not
// necessarily live.
func ValidateFormat(token string) bool {
	if len(token) != TokenLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		if !isTokenChar(token[i]) {
			return false
		}
	}
	return true
}

func isTokenChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

func randomString(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	encoded := make([]byte, length)
	for i := 0; i < length; i++ {
		encoded[i] = alphabet[int(bytes[i])%len(alphabet)]
	}
	return string(encoded), nil
}

// submissionID builds a time-ordered short id: unix seconds in base36
// followed by a short random tail to keep same-second submissions distinct.
func submissionID() (string, error) {
	tail := make([]byte, submissionRandomLength)
	if _, err := rand.Read(tail); err != nil {
		return "", err
	}
	const charset = "0123456789abcdefghijklmnopqrstuvwxyz"
	encoded := make([]byte, submissionRandomLength)
	for i := 0; i < submissionRandomLength; i++ {
		encoded[i] = charset[int(tail[i])%36]
	}
	return strconv.FormatInt(time.Now().Unix(), 36) + string(encoded), nil
}
