package conversation

import (
	"context"
	"strings"
	"sync"

	"studio-server/internal/domain/identity"
	"studio-server/internal/domain/token"
	"studio-server/internal/utils/idgen"
	"studio-server/internal/utils/platformerrors"
)

// Router maps an inbound interaction to exactly one conversation token.
//
// Two deliberately distinct policies apply. Public-form and webhook
// interactions are always given a brand-new conversation so one submission
// cannot read another's history through a shared token. Member interactions
// (widget re-entry) reuse the most recently created active conversation for
// the identity.
type Router struct {
	conversations ConversationRepository
	identities    identity.IdentityRepository
	resolver      *identity.Resolver
	tokens        *token.Service

	// Per-identity locks close the resume check-then-create race. The
	// always-new policy rules out a uniqueness constraint on active
	// conversations, so this is the only guard.
	mu            sync.Mutex
	identityLocks map[uint]*sync.Mutex
}

// Routed is the outcome of conversation resolution. Existing is true when an
// already-issued token was reused; IdentityCreated is true when attribution
// found no confident match and a new identity record was made.
type Routed struct {
	Conversation    *Conversation
	Identity        *identity.Identity
	Existing        bool
	IdentityCreated bool
}

// NewRouter creates a conversation router.
func NewRouter(
	conversations ConversationRepository,
	identities identity.IdentityRepository,
	resolver *identity.Resolver,
	tokens *token.Service,
) *Router {
	return &Router{
		conversations: conversations,
		identities:    identities,
		resolver:      resolver,
		tokens:        tokens,
		identityLocks: make(map[uint]*sync.Mutex),
	}
}

// ResolveByToken resolves an explicit token directly; no identity resolution
// occurs on this path.
func (r *Router) ResolveByToken(ctx context.Context, accessToken string) (*Conversation, error) {
	if !token.ValidateFormat(accessToken) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"malformed access token", nil, "f7a3b1c9-2d5e-4680-9b4f-8c1d3e5a7b92")
	}
	conv, err := r.conversations.FindByAccessToken(ctx, accessToken)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up conversation")
	}
	if conv == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"no conversation for token", nil, "0d9e7f5a-3b1c-4264-8e6d-9f2a4c6b8d03")
	}
	return conv, nil
}

// StartNew applies the always-new policy: resolve or create the identity,
// then mint a fresh conversation for it regardless of any it already owns.
func (r *Router) StartNew(ctx context.Context, input identity.ResolveInput, source identity.Source, titleHint string) (*Routed, error) {
	ident, created, err := r.resolveOrCreateIdentity(ctx, input, source)
	if err != nil {
		return nil, err
	}

	conv, err := r.mintConversation(ctx, ident, titleHint)
	if err != nil {
		return nil, err
	}
	return &Routed{Conversation: conv, Identity: ident, IdentityCreated: created}, nil
}

// Resume applies the session-resuming policy: reuse the identity's most
// recently created active conversation, creating one only when none exists.
func (r *Router) Resume(ctx context.Context, input identity.ResolveInput, source identity.Source, titleHint string) (*Routed, error) {
	ident, created, err := r.resolveOrCreateIdentity(ctx, input, source)
	if err != nil {
		return nil, err
	}

	lock := r.lockFor(ident.ID)
	lock.Lock()
	defer lock.Unlock()

	latest, err := r.conversations.FindLatestActive(ctx, ident.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up active conversation")
	}
	if latest != nil {
		return &Routed{Conversation: latest, Identity: ident, Existing: true, IdentityCreated: created}, nil
	}

	conv, err := r.mintConversation(ctx, ident, titleHint)
	if err != nil {
		return nil, err
	}
	return &Routed{Conversation: conv, Identity: ident, IdentityCreated: created}, nil
}

// Archive marks the conversation archived, which revokes its token.
func (r *Router) Archive(ctx context.Context, conv *Conversation) error {
	conv.Status = ConversationStatusArchived
	if err := r.conversations.Update(ctx, conv); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to archive conversation")
	}
	return nil
}

// FindByPublicID looks a conversation up by its public id.
func (r *Router) FindByPublicID(ctx context.Context, publicID string) (*Conversation, error) {
	conv, err := r.conversations.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up conversation")
	}
	if conv == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"conversation not found", nil, "6b4d2f8a-9c1e-4375-8d0b-5e7f9a1c3b64")
	}
	return conv, nil
}

// ListByFilter lists conversations for the admin dashboard.
func (r *Router) ListByFilter(ctx context.Context, filter ConversationFilter) ([]*Conversation, error) {
	convs, err := r.conversations.FindByFilter(ctx, filter)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}
	return convs, nil
}

func (r *Router) resolveOrCreateIdentity(ctx context.Context, input identity.ResolveInput, source identity.Source) (*identity.Identity, bool, error) {
	resolution, err := r.resolver.Resolve(ctx, input)
	if err != nil {
		return nil, false, err
	}

	if best := resolution.Best(); best != nil {
		return best, false, nil
	}
	// No match confident enough to accept; a low-confidence candidate is a
	// new record, not a guess.
	ident, err := r.createIdentity(ctx, input, source)
	if err != nil {
		return nil, false, err
	}
	return ident, true, nil
}

func (r *Router) createIdentity(ctx context.Context, input identity.ResolveInput, source identity.Source) (*identity.Identity, error) {
	publicID, err := idgen.GenerateSecureID("comp", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate identity id")
	}

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" {
		if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		} else {
			name = "Unknown"
		}
	}

	ident := &identity.Identity{
		PublicID: publicID,
		Name:     name,
		Source:   source,
	}
	if email != "" {
		ident.Email = &email
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		ident.Phone = &phone
	}

	if err := r.identities.Create(ctx, ident); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create identity")
	}
	return ident, nil
}

func (r *Router) mintConversation(ctx context.Context, ident *identity.Identity, titleHint string) (*Conversation, error) {
	tok, err := r.tokens.Generate(ctx, "conversation")
	if err != nil {
		return nil, err
	}

	publicID, err := idgen.GenerateSecureID("proj", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate conversation id")
	}

	title := strings.TrimSpace(titleHint)
	if title == "" {
		title = "Inquiry"
	}

	conv := &Conversation{
		PublicID:    publicID,
		CompanyID:   ident.ID,
		AccessToken: tok.Value,
		Title:       title + " " + strings.ToUpper(tok.SubmissionID),
		Status:      ConversationStatusActive,
	}
	if err := r.conversations.Create(ctx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}
	return conv, nil
}

func (r *Router) lockFor(identityID uint) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.identityLocks[identityID]
	if !ok {
		lock = &sync.Mutex{}
		r.identityLocks[identityID] = lock
	}
	return lock
}
