package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"clinic-admin/internal/domain"
)

var (
	// ErrNotFound indica que no hay registro persistido para la clave.
	ErrNotFound = errors.New("session not found")
	// ErrMalformed indica que el registro persistido no se puede interpretar.
	ErrMalformed = errors.New("session record malformed")
)

// Store persiste a lo sumo un registro de sesión por clave.
type Store interface {
	Load(ctx context.Context, key string) (domain.Session, error)
	Save(ctx context.Context, key string, sess domain.Session) error
	Delete(ctx context.Context, key string) error
}

func encode(sess domain.Session) ([]byte, error) {
	return json.Marshal(sess)
}

func decode(raw []byte) (domain.Session, error) {
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !sess.Valid() {
		return domain.Session{}, fmt.Errorf("%w: missing token or role", ErrMalformed)
	}
	return sess, nil
}

type memoryStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

// NewMemoryStore guarda las sesiones en memoria del proceso.
func NewMemoryStore() Store {
	return &memoryStore{items: make(map[string][]byte)}
}

func (s *memoryStore) Load(_ context.Context, key string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.items[key]
	if !ok {
		return domain.Session{}, ErrNotFound
	}
	return decode(raw)
}

func (s *memoryStore) Save(_ context.Context, key string, sess domain.Session) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("session key is required")
	}
	raw, err := encode(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = raw
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisStore struct {
	client  redisKV
	prefix  string
	timeout time.Duration
}

// NewRedisStore guarda cada sesión como JSON bajo console:session:<key>, sin TTL.
func NewRedisStore(client *redis.Client) Store {
	if client == nil {
		return nil
	}
	return &redisStore{
		client:  client,
		prefix:  "console:session:",
		timeout: 500 * time.Millisecond,
	}
}

func (s *redisStore) Load(ctx context.Context, key string) (domain.Session, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Session{}, ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}
	return decode(raw)
}

func (s *redisStore) Save(ctx context.Context, key string, sess domain.Session) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("session key is required")
	}
	raw, err := encode(sess)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, raw, 0).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Del(ctx, s.prefix+key).Err()
}
