package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"newsroom/internal/model"
)

const (
	sessionKeyPrefix = "session:"
	flashKeyPrefix   = "flash:"
)

// Identity is the server-side session payload. The client only ever holds
// the opaque token that keys it.
type Identity struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// Flash carries one-time status messages surfaced on the next rendered page.
type Flash struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// KV is the slice of the cache client the session store needs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetDel(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	Create(ctx context.Context, identity Identity) (string, error)
	Resolve(ctx context.Context, token string) (*Identity, error)
	Destroy(ctx context.Context, token string) error
	SetFlash(ctx context.Context, token string, flash Flash) error
	PopFlash(ctx context.Context, token string) (*Flash, error)
}

// SessionStore keeps session records in Redis under an absolute TTL.
type SessionStore struct {
	kv  KV
	ttl time.Duration
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a session store with the given record lifetime.
func NewSessionStore(kv KV, ttl time.Duration) *SessionStore {
	return &SessionStore{kv: kv, ttl: ttl}
}

// Create stores the identity under a fresh opaque token and returns the token.
func (s *SessionStore) Create(ctx context.Context, identity Identity) (string, error) {
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	token := uuid.New().String()
	if err := s.kv.Set(ctx, sessionKeyPrefix+token, payload, s.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve returns the identity for a token, or nil when the token is
// unknown or the record has expired.
func (s *SessionStore) Resolve(ctx context.Context, token string) (*Identity, error) {
	data, err := s.kv.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &identity, nil
}

// Destroy removes a session record and any pending flash. Destroying a
// missing session is not an error.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	if err := s.kv.Delete(ctx, sessionKeyPrefix+token); err != nil {
		return err
	}
	return s.kv.Delete(ctx, flashKeyPrefix+token)
}

// SetFlash stages a one-time status message for the session's next page.
// A second SetFlash before consumption replaces the first.
func (s *SessionStore) SetFlash(ctx context.Context, token string, flash Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	return s.kv.Set(ctx, flashKeyPrefix+token, payload, s.ttl)
}

// PopFlash reads and clears the pending flash in one atomic operation,
// returning nil when none is staged.
func (s *SessionStore) PopFlash(ctx context.Context, token string) (*Flash, error) {
	data, err := s.kv.GetDel(ctx, flashKeyPrefix+token)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var flash Flash
	if err := json.Unmarshal(data, &flash); err != nil {
		return nil, fmt.Errorf("unmarshal flash: %w", err)
	}
	return &flash, nil
}
