package tokenhandler

import (
	"context"
	"crypto/subtle"
	"strings"

	"studio-server/internal/config"
	"studio-server/internal/domain/conversation"
	"studio-server/internal/domain/identity"
	"studio-server/internal/infrastructure/metrics"
	"studio-server/internal/interfaces/httpserver/requests/tokenreq"
	"studio-server/internal/interfaces/httpserver/responses/tokenres"
	"studio-server/internal/utils/platformerrors"
)

// TokenHandler runs the four entry flows behind POST /api/token.
type TokenHandler struct {
	router *conversation.Router
	cfg    *config.Config
}

func NewTokenHandler(router *conversation.Router, cfg *config.Config) *TokenHandler {
	return &TokenHandler{
		router: router,
		cfg:    cfg,
	}
}

// Entry dispatches on the request type.
func (h *TokenHandler) Entry(ctx context.Context, req tokenreq.TokenRequest) (*tokenres.TokenResponse, error) {
	switch req.Type {
	case tokenreq.EntryTypeAdmin:
		return h.adminEntry(ctx, req)
	case tokenreq.EntryTypeMember:
		return h.memberEntry(ctx, req)
	case tokenreq.EntryTypeProject:
		return h.projectEntry(ctx, req)
	case tokenreq.EntryTypeValidate:
		return h.validateEntry(ctx, req)
	default:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"unknown entry type", nil, "8b0d2f4a-6c8e-4173-9a5b-1d3f5c7e9b24")
	}
}

// adminEntry checks the supplied value against the static admin token.
func (h *TokenHandler) adminEntry(ctx context.Context, req tokenreq.TokenRequest) (*tokenres.TokenResponse, error) {
	if strings.TrimSpace(req.Token) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeUnauthorized,
			"admin token is required", nil, "2e4a6c8b-0d1f-4395-8b7d-9f1a3c5e7d06")
	}
	if subtle.ConstantTimeCompare([]byte(req.Token), []byte(h.cfg.AdminToken)) != 1 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeUnauthorized,
			"invalid admin token", nil, "7a9c1e3d-5b2f-4486-9d0e-4f6a8c0b2d17")
	}
	return &tokenres.TokenResponse{Type: "admin", Valid: true}, nil
}

// memberEntry resolves the caller's identity and reuses the latest active
// conversation, minting one only when none exists.
func (h *TokenHandler) memberEntry(ctx context.Context, req tokenreq.TokenRequest) (*tokenres.TokenResponse, error) {
	routed, err := h.router.Resume(ctx, identity.ResolveInput{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
	}, identity.SourceWidget, "Chat")
	if err != nil {
		return nil, err
	}

	metrics.RecordRouting(routed.IdentityCreated, !routed.Existing)
	if !routed.Existing {
		metrics.TokensIssuedTotal.WithLabelValues("member").Inc()
	}
	return &tokenres.TokenResponse{
		Type:      "member",
		Valid:     true,
		Token:     routed.Conversation.AccessToken,
		ProjectID: routed.Conversation.PublicID,
		Title:     routed.Conversation.Title,
		Existing:  routed.Existing,
	}, nil
}

// projectEntry looks a conversation up by its public id.
func (h *TokenHandler) projectEntry(ctx context.Context, req tokenreq.TokenRequest) (*tokenres.TokenResponse, error) {
	if strings.TrimSpace(req.ProjectID) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"projectId is required", nil, "4c6e8a0b-2d9f-4517-8e3a-6b8d0f2c4a29")
	}
	conv, err := h.router.FindByPublicID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	return &tokenres.TokenResponse{
		Type:      "project",
		Valid:     true,
		Token:     conv.AccessToken,
		ProjectID: conv.PublicID,
		Title:     conv.Title,
	}, nil
}

// validateEntry reports whether a token resolves to a live conversation.
// An unknown or revoked token is a negative answer, not an error.
func (h *TokenHandler) validateEntry(ctx context.Context, req tokenreq.TokenRequest) (*tokenres.TokenResponse, error) {
	conv, err := h.router.ResolveByToken(ctx, req.Token)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) ||
			platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
			return &tokenres.TokenResponse{Type: "validate", Valid: false}, nil
		}
		return nil, err
	}
	if conv.Status != conversation.ConversationStatusActive {
		return &tokenres.TokenResponse{Type: "validate", Valid: false}, nil
	}
	return &tokenres.TokenResponse{
		Type:      "validate",
		Valid:     true,
		Token:     conv.AccessToken,
		ProjectID: conv.PublicID,
		Title:     conv.Title,
	}, nil
}
