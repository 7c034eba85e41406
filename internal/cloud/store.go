// Package cloud mirrors cloud variables to Redis so that several running
// projects can share them
package cloud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kode4food/flagstaff/internal/engine"
	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/log"
)

type (
	// Poster receives remote updates. An *engine.Engine satisfies it
	Poster interface {
		Post(engine.Message)
	}

	// Store implements engine.CloudStore on a Redis hash. Writes are
	// queued and flushed by Run; remote changes are polled and posted to
	// the engine as CloudUpdateMessages
	Store struct {
		client   *redis.Client
		key      string
		interval time.Duration
		wake     chan struct{}

		mu      sync.Mutex
		pending map[string]api.Value
		known   map[string]string
	}
)

const hashSuffix = ":cloud"

var (
	ErrNoClient = errors.New("redis client is required")
	ErrFlush    = errors.New("failed to flush cloud variables")
	ErrPoll     = errors.New("failed to poll cloud variables")
)

var _ engine.CloudStore = (*Store)(nil)

// NewStore creates a Store writing to the hash named by the prefix
func NewStore(
	client *redis.Client, prefix string, interval time.Duration,
) (*Store, error) {
	if client == nil {
		return nil, ErrNoClient
	}
	return &Store{
		client:   client,
		key:      prefix + hashSuffix,
		interval: interval,
		wake:     make(chan struct{}, 1),
		pending:  map[string]api.Value{},
		known:    map[string]string{},
	}, nil
}

// Set queues a write. Only the latest value per variable is kept until the
// next flush
func (s *Store) Set(name string, v api.Value) {
	s.mu.Lock()
	s.pending[name] = v
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued writes
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush writes every queued value in one round trip
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.pending
	s.pending = map[string]api.Value{}
	s.mu.Unlock()
	if len(batch) == 0 {
		return nil
	}

	fields := make(map[string]any, len(batch))
	written := make(map[string]string, len(batch))
	for name, v := range batch {
		enc := encode(v)
		fields[name] = enc
		written[name] = enc
	}
	if err := s.client.HSet(ctx, s.key, fields).Err(); err != nil {
		s.requeue(batch)
		return fmt.Errorf("%w: %w", ErrFlush, err)
	}

	s.mu.Lock()
	maps.Copy(s.known, written)
	s.mu.Unlock()
	return nil
}

// Poll reads the hash and posts every value that changed since the last
// poll or local write
func (s *Store) Poll(ctx context.Context, p Poster) error {
	remote, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPoll, err)
	}

	s.mu.Lock()
	var changed []string
	for name, enc := range remote {
		if _, ok := s.pending[name]; ok {
			continue
		}
		if prev, ok := s.known[name]; ok && prev == enc {
			continue
		}
		s.known[name] = enc
		changed = append(changed, name)
	}
	s.mu.Unlock()

	for _, name := range changed {
		p.Post(engine.CloudUpdateMessage{
			Name:  name,
			Value: decode(remote[name]),
		})
	}
	return nil
}

// Run flushes writes as they arrive and polls for remote changes until the
// context is done, then makes a final flush
func (s *Store) Run(ctx context.Context, p Poster) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("Cloud sync started",
		slog.String("key", s.key),
		slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(
				context.Background(), s.interval,
			)
			if err := s.Flush(flushCtx); err != nil {
				slog.Warn("Final cloud flush failed", log.Error(err))
			}
			cancel()
			return nil

		case <-s.wake:
			if err := s.Flush(ctx); err != nil {
				slog.Warn("Cloud flush failed", log.Error(err))
			}

		case <-ticker.C:
			if err := s.Poll(ctx, p); err != nil {
				slog.Warn("Cloud poll failed", log.Error(err))
			}
		}
	}
}

func (s *Store) requeue(batch map[string]api.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, v := range batch {
		if _, ok := s.pending[name]; !ok {
			s.pending[name] = v
		}
	}
}

func encode(v api.Value) string {
	return v.AsString()
}

func decode(s string) api.Value {
	if f, ok := api.ParseNumber(s); ok {
		return api.Num(f)
	}
	return api.Str(s)
}
