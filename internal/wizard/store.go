package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"seatly/internal/shared/constants"
	"seatly/internal/shared/utils/apperr"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a session id is unknown or has
// expired out of the store.
var ErrSessionNotFound = errors.New("wizard session not found")

// Store persists wizard sessions and guards commits. A session may
// have at most one in-flight commit; AcquireCommit hands out a fence
// token that ReleaseCommit must present back, so a commit that
// finishes after its fence expired is detected and its result dropped.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, sessionID string) error

	AcquireCommit(ctx context.Context, sessionID, token string, ttl time.Duration) (bool, error)
	ReleaseCommit(ctx context.Context, sessionID, token string) (bool, error)
}

// releaseScript deletes the fence only if it still holds our token
const releaseScript = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.client.Get(ctx, constants.BuildWizardSessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, apperr.Transient("failed to load wizard session", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, apperr.Transient("corrupt wizard session", err)
	}
	return &session, nil
}

func (s *redisStore) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return apperr.Transient("failed to encode wizard session", err)
	}

	key := constants.BuildWizardSessionKey(session.ID.String())
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return apperr.Transient("failed to store wizard session", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, constants.BuildWizardSessionKey(sessionID)).Err()
}

func (s *redisStore) AcquireCommit(ctx context.Context, sessionID, token string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, constants.BuildWizardCommitKey(sessionID), token, ttl).Result()
	if err != nil {
		return false, apperr.Transient("failed to acquire commit fence", err)
	}
	return ok, nil
}

func (s *redisStore) ReleaseCommit(ctx context.Context, sessionID, token string) (bool, error) {
	result, err := s.client.Eval(ctx, releaseScript, []string{constants.BuildWizardCommitKey(sessionID)}, token).Result()
	if err != nil {
		return false, apperr.Transient("failed to release commit fence", err)
	}
	deleted, ok := result.(int64)
	return ok && deleted == 1, nil
}
