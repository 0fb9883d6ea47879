package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/scoutbase/scoutbase/models"
	"github.com/scoutbase/scoutbase/repository"
	"github.com/scoutbase/scoutbase/utils"
)

// Identity is the resolved principal behind a session token. It is
// what request handlers see; the raw session row stays below the gate.
type Identity struct {
	UserID    uint      `json:"user_id"`
	UserUUID  string    `json:"user_uuid"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	SessionID uint      `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionGate owns the opaque-token session lifecycle. It is an
// explicit dependency of everything that authenticates; there is no
// ambient session global. The sessions table is authoritative and the
// cache only short-circuits token resolution.
type SessionGate interface {
	Establish(ctx context.Context, user *models.User, metadata *ClientMetadata) (string, *models.Session, error)
	Resolve(ctx context.Context, token string) (*Identity, error)
	Invalidate(ctx context.Context, token string) error
	InvalidateAllForUser(ctx context.Context, userID uint) error
	RequireRole(identity *Identity, roles ...string) error
}

type SessionGateImpl struct {
	sessionRepo repository.SessionRepository
	cache       *redis.Client // nil disables caching
	ttl         time.Duration
}

func NewSessionGate(sessionRepo repository.SessionRepository, cache *redis.Client, ttl time.Duration) SessionGate {
	if ttl <= 0 {
		ttl = utils.SessionTimeout
	}
	return &SessionGateImpl{
		sessionRepo: sessionRepo,
		cache:       cache,
		ttl:         ttl,
	}
}

func sessionCacheKey(token string) string {
	return "session:" + token
}

func userSessionsKey(userID uint) string {
	return fmt.Sprintf("user_sessions:%d", userID)
}

// Establish mints a fresh opaque token and persists the session row.
// The token is returned once; only its row survives server-side.
func (g *SessionGateImpl) Establish(ctx context.Context, user *models.User, metadata *ClientMetadata) (string, *models.Session, error) {
	token, err := utils.GenerateSecureToken(utils.SessionTokenBytes)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	now := utils.UTCNow()
	session := &models.Session{
		CorrelationID:  uuid.New(),
		UserID:         user.ID,
		SessionToken:   token,
		IsActive:       utils.ToPtr(true),
		CreatedAt:      now,
		LastAccessedAt: now,
		ExpiresAt:      now.Add(g.ttl),
	}
	if metadata != nil {
		if metadata.IPAddress != "" {
			session.IPAddress = &metadata.IPAddress
		}
		if metadata.UserAgent != "" {
			session.UserAgent = &metadata.UserAgent
		}
	}

	if err := g.sessionRepo.Save(ctx, session); err != nil {
		return "", nil, fmt.Errorf("persist session: %w", err)
	}

	g.cacheIdentity(ctx, token, &Identity{
		UserID:    user.ID,
		UserUUID:  user.UUID.String(),
		Username:  user.Username,
		Role:      user.Role,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	})

	return token, session, nil
}

// Resolve maps a bearer token to its identity. Unknown and inactive
// tokens resolve to ErrUnauthenticated; a known but expired session is
// reported as ErrSessionExpired so clients can distinguish.
func (g *SessionGateImpl) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	if identity := g.cachedIdentity(ctx, token); identity != nil {
		if utils.UTCNow().After(identity.ExpiresAt) {
			g.dropCached(ctx, token)
			return nil, ErrSessionExpired
		}
		return identity, nil
	}

	session, err := g.sessionRepo.BySessionToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil || !utils.IsTrue(session.IsActive) {
		return nil, ErrUnauthenticated
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	if !utils.IsTrue(session.User.IsActive) {
		return nil, ErrAccountDisabled
	}

	if err := g.sessionRepo.TouchLastAccessed(ctx, session.ID); err != nil {
		log.Println("Touch session failed", err)
	}

	identity := &Identity{
		UserID:    session.UserID,
		UserUUID:  session.User.UUID.String(),
		Username:  session.User.Username,
		Role:      session.User.Role,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	}
	g.cacheIdentity(ctx, token, identity)
	return identity, nil
}

// Invalidate ends one session. Idempotent.
func (g *SessionGateImpl) Invalidate(ctx context.Context, token string) error {
	if err := g.sessionRepo.Invalidate(ctx, token); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	g.dropCached(ctx, token)
	return nil
}

// InvalidateAllForUser ends every active session of the user, cache
// entries included.
func (g *SessionGateImpl) InvalidateAllForUser(ctx context.Context, userID uint) error {
	if err := g.sessionRepo.InvalidateAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("invalidate sessions: %w", err)
	}
	if g.cache != nil {
		key := userSessionsKey(userID)
		tokens, err := g.cache.SMembers(ctx, key).Result()
		if err == nil {
			for _, t := range tokens {
				g.cache.Del(ctx, sessionCacheKey(t))
			}
			g.cache.Del(ctx, key)
		}
	}
	return nil
}

// RequireRole checks the identity against an allow-list of roles.
func (g *SessionGateImpl) RequireRole(identity *Identity, roles ...string) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	for _, role := range roles {
		if identity.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

func (g *SessionGateImpl) cacheIdentity(ctx context.Context, token string, identity *Identity) {
	if g.cache == nil {
		return
	}
	payload, err := json.Marshal(identity)
	if err != nil {
		return
	}
	ttl := time.Until(identity.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if err := g.cache.Set(ctx, sessionCacheKey(token), payload, ttl).Err(); err != nil {
		log.Println("Session cache set failed", err)
		return
	}
	g.cache.SAdd(ctx, userSessionsKey(identity.UserID), token)
	g.cache.Expire(ctx, userSessionsKey(identity.UserID), ttl)
}

func (g *SessionGateImpl) cachedIdentity(ctx context.Context, token string) *Identity {
	if g.cache == nil {
		return nil
	}
	payload, err := g.cache.Get(ctx, sessionCacheKey(token)).Bytes()
	if err != nil {
		return nil
	}
	var identity Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil
	}
	return &identity
}

func (g *SessionGateImpl) dropCached(ctx context.Context, token string) {
	if g.cache == nil {
		return
	}
	g.cache.Del(ctx, sessionCacheKey(token))
}
