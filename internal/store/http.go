package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"glossgraph/internal/codec"
	"glossgraph/internal/domain"
	"glossgraph/internal/logger"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// DefaultEndpoint is where the glossary graph is served by default
const DefaultEndpoint = "http://localhost:5001/api/graph"

// HTTPOptions tunes an HTTPSource
type HTTPOptions struct {
	Timeout time.Duration // per attempt, default 10s
	Retries int           // extra attempts after the first
	Backoff time.Duration // first retry delay, doubled each attempt, default 500ms
	Client  *http.Client
}

// HTTPSource fetches the graph payload from a glossary endpoint. Attempts go
// through a circuit breaker so a dead endpoint fails fast on repeated reloads.
type HTTPSource struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	retries  int
	backoff  time.Duration
	logger   *zap.Logger
}

// NewHTTPSource creates a source for endpoint
func NewHTTPSource(endpoint string, opts HTTPOptions, log *zap.Logger) *HTTPSource {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 500 * time.Millisecond
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	log = logger.OrNop(log)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "glossary-source",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A malformed document means the endpoint is up; only transport
		// failures count against it.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrDecode)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &HTTPSource{
		endpoint: endpoint,
		client:   client,
		breaker:  breaker,
		retries:  opts.Retries,
		backoff:  opts.Backoff,
		logger:   log,
	}
}

// Describe names the source for logs
func (s *HTTPSource) Describe() string {
	return s.endpoint
}

// Fetch retrieves and parses the payload, retrying transport failures
func (s *HTTPSource) Fetch(ctx context.Context) (*domain.GraphPayload, error) {
	delay := s.backoff
	var lastErr error

	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			s.logger.Debug("Retrying glossary fetch",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrFetch, ctx.Err())
			}
			delay *= 2
		}

		result, err := s.breaker.Execute(func() (interface{}, error) {
			return s.fetchOnce(ctx)
		})
		if err == nil {
			return result.(*domain.GraphPayload), nil
		}

		lastErr = err
		if errors.Is(err, ErrDecode) {
			return nil, err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}
	}

	return nil, lastErr
}

func (s *HTTPSource) fetchOnce(ctx context.Context) (*domain.GraphPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetch, s.endpoint, resp.Status)
	}

	payload, err := codec.NewJSONCodec().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return payload, nil
}
