package fetch

import (
	"context"
	"time"

	"github.com/jmgilman/go/errors"
)

// Func performs one remote lookup for key. Implementations return an error
// coded errors.CodeNotFound for a confirmed no-match.
type Func[V any] func(ctx context.Context, key string) (V, error)

// Fetcher issues rate-limited remote lookups.
type Fetcher[V any] struct {
	call    Func[V]
	limiter *Limiter
}

// New returns a fetcher that waits at least interval between call starts.
func New[V any](call Func[V], interval time.Duration, opts ...Option) *Fetcher[V] {
	return &Fetcher[V]{
		call:    call,
		limiter: NewLimiter(interval, opts...),
	}
}

// Interval returns the minimum delay between call starts.
func (f *Fetcher[V]) Interval() time.Duration {
	return f.limiter.Interval()
}

// Fetch waits for the rate window and performs exactly one remote call.
func (f *Fetcher[V]) Fetch(ctx context.Context, key string) Outcome[V] {
	if err := f.limiter.Wait(ctx); err != nil {
		return Failed[V](errors.Wrap(err, errors.CodeTimeout, "rate limit wait interrupted"))
	}
	value, err := f.call(ctx, key)
	if err != nil {
		return Failed[V](err)
	}
	return Found(value)
}
