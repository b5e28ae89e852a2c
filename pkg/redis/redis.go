package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/emapp/emapp/pkg/health"
	"github.com/emapp/emapp/pkg/logger"
)

var (
	ErrNoURL          = errors.New("redis: connection url is empty")
	ErrInvalidURL     = errors.New("redis: invalid connection url")
	ErrUnreachable    = errors.New("redis: server unreachable")
	ErrNotInitialized = errors.New("redis: client not initialized")
)

// Option tunes Open.
type Option func(*settings)

type settings struct {
	logger   *slog.Logger
	pool     int
	attempts int
	backoff  time.Duration
	maxDelay time.Duration
	timeout  time.Duration
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:   logger.NewNope(),
		pool:     10,
		attempts: 3,
		backoff:  500 * time.Millisecond,
		maxDelay: 5 * time.Second,
		timeout:  3 * time.Second,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithPoolSize caps the connection pool. Defaults to 10.
func WithPoolSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.pool = n
		}
	}
}

// WithRetry sets how many times Open pings before giving up and the first
// delay between attempts. The delay doubles after each failure up to five
// seconds.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(s *settings) {
		s.attempts = max(attempts, 1)
		if backoff >= 0 {
			s.backoff = backoff
		}
	}
}

// WithTimeout bounds dialing, reads and writes. Defaults to 3s.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger reports failed attempts at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open parses a redis:// or rediss:// url and returns a client whose
// server answered PING.
func Open(ctx context.Context, rawURL string, opts ...Option) (redis.UniversalClient, error) {
	if rawURL == "" {
		return nil, ErrNoURL
	}
	if u, err := url.Parse(rawURL); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
		return nil, ErrInvalidURL
	}
	ro, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}

	s := newSettings(opts)
	ro.PoolSize = s.pool
	ro.DialTimeout = s.timeout
	ro.ReadTimeout = s.timeout
	ro.WriteTimeout = s.timeout
	return dial(ctx, ro, s)
}

func dial(ctx context.Context, ro *redis.Options, s settings) (redis.UniversalClient, error) {
	delay := s.backoff
	var lastErr error
	for attempt := 1; ; attempt++ {
		client := redis.NewClient(ro)
		lastErr = client.Ping(ctx).Err()
		if lastErr == nil {
			return client, nil
		}
		_ = client.Close()
		s.logger.WarnContext(ctx, "redis ping failed",
			slog.String("addr", ro.Addr),
			slog.Int("attempt", attempt),
			logger.Error(lastErr),
		)
		if attempt >= s.attempts {
			break
		}
		if err := sleep(ctx, delay); err != nil {
			return nil, errors.Join(ErrUnreachable, err)
		}
		delay = min(delay*2, s.maxDelay)
	}
	return nil, errors.Join(ErrUnreachable, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Healthcheck is a readiness check pinging the server.
func Healthcheck(client redis.UniversalClient) health.CheckFunc {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrNotInitialized
		}
		return client.Ping(ctx).Err()
	}
}

// Shutdown is a shutdown hook closing the client.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		if client == nil {
			return nil
		}
		return client.Close()
	}
}
