package fetch_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"

	"reel/internal/fetch"
)

type fakeClock struct {
	current time.Time
	slept   []time.Duration
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.slept = append(c.slept, d)
	c.current = c.current.Add(d)
	return nil
}

func TestFetchSpacesCallStarts(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	var starts []time.Time
	fetcher := fetch.New(func(_ context.Context, key string) (string, error) {
		starts = append(starts, clock.now())
		clock.current = clock.current.Add(200 * time.Millisecond)
		return key, nil
	}, time.Second, fetch.WithClock(clock.now, clock.sleep))

	for _, key := range []string{"a", "b", "c"} {
		if outcome := fetcher.Fetch(context.Background(), key); !outcome.OK() {
			t.Fatalf("fetch %q failed: %v", key, outcome.Err)
		}
	}

	if len(starts) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(starts))
	}
	for i := 1; i < len(starts); i++ {
		if gap := starts[i].Sub(starts[i-1]); gap < time.Second {
			t.Fatalf("call %d started %s after previous, want >= 1s", i, gap)
		}
	}
	if len(clock.slept) != 2 || clock.slept[0] != 800*time.Millisecond {
		t.Fatalf("expected two 800ms waits, got %v", clock.slept)
	}
}

func TestFetchSpacingWithRealClock(t *testing.T) {
	const interval = 40 * time.Millisecond
	var starts []time.Time
	fetcher := fetch.New(func(context.Context, string) (int, error) {
		starts = append(starts, time.Now())
		return 1, nil
	}, interval)

	fetcher.Fetch(context.Background(), "first")
	fetcher.Fetch(context.Background(), "second")

	if gap := starts[1].Sub(starts[0]); gap < interval {
		t.Fatalf("back-to-back fetches %s apart, want >= %s", gap, interval)
	}
}

func TestFetchFirstCallDoesNotWait(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	fetcher := fetch.New(func(context.Context, string) (int, error) {
		return 1, nil
	}, time.Hour, fetch.WithClock(clock.now, clock.sleep))

	fetcher.Fetch(context.Background(), "only")
	if len(clock.slept) != 0 {
		t.Fatalf("expected no wait before first call, got %v", clock.slept)
	}
}

func TestFetchClassifiesErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want fetch.Kind
	}{
		{"not found", errors.New(errors.CodeNotFound, "movie not found"), fetch.NotFound},
		{"wrapped not found", errors.Wrap(errors.New(errors.CodeNotFound, "no hits"), errors.CodeNotFound, "lookup"), fetch.NotFound},
		{"network", errors.Wrap(stderrors.New("connection refused"), errors.CodeNetwork, "request failed"), fetch.TransientFailure},
		{"rate limit", errors.New(errors.CodeRateLimit, "request limit reached"), fetch.TransientFailure},
		{"malformed", errors.New(errors.CodeInvalidInput, "decode body"), fetch.TransientFailure},
		{"plain", stderrors.New("boom"), fetch.TransientFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := fetch.New(func(context.Context, string) (string, error) {
				return "", tc.err
			}, 0)
			outcome := fetcher.Fetch(context.Background(), "key")
			if outcome.Kind != tc.want {
				t.Fatalf("got %s, want %s", outcome.Kind, tc.want)
			}
			if outcome.OK() {
				t.Fatal("failure outcome reported OK")
			}
			if !stderrors.Is(outcome.Err, tc.err) {
				t.Fatalf("expected outcome to keep the original error, got %v", outcome.Err)
			}
		})
	}
}

func TestFetchCancelledDuringWaitIsTransient(t *testing.T) {
	calls := 0
	fetcher := fetch.New(func(context.Context, string) (int, error) {
		calls++
		return calls, nil
	}, time.Hour)

	if outcome := fetcher.Fetch(context.Background(), "first"); !outcome.OK() {
		t.Fatalf("first fetch failed: %v", outcome.Err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcome := fetcher.Fetch(ctx, "second")
	if outcome.Kind != fetch.TransientFailure {
		t.Fatalf("expected transient failure, got %s", outcome.Kind)
	}
	if calls != 1 {
		t.Fatalf("expected no remote call after cancellation, got %d calls", calls)
	}
	if !stderrors.Is(outcome.Err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", outcome.Err)
	}
}

func TestKindString(t *testing.T) {
	if fetch.NotFound.String() != "not_found" {
		t.Fatalf("unexpected string: %s", fetch.NotFound)
	}
}

func TestFetchCancelledWaitReturnsItsSlot(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	fetcher := fetch.New(func(_ context.Context, key string) (string, error) {
		return key, nil
	}, time.Second, fetch.WithClock(clock.now, clock.sleep))

	if outcome := fetcher.Fetch(context.Background(), "first"); !outcome.OK() {
		t.Fatalf("first fetch failed: %v", outcome.Err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if outcome := fetcher.Fetch(ctx, "cancelled"); outcome.Kind != fetch.TransientFailure {
		t.Fatalf("expected transient failure, got %s", outcome.Kind)
	}

	clock.current = clock.current.Add(250 * time.Millisecond)
	if outcome := fetcher.Fetch(context.Background(), "third"); !outcome.OK() {
		t.Fatalf("third fetch failed: %v", outcome.Err)
	}
	if len(clock.slept) != 1 || clock.slept[0] != 750*time.Millisecond {
		t.Fatalf("expected a single 750ms wait measured from the first call, got %v", clock.slept)
	}
}

func TestFetcherReportsInterval(t *testing.T) {
	fetcher := fetch.New(func(context.Context, string) (int, error) { return 0, nil }, 1500*time.Millisecond)
	if fetcher.Interval() != 1500*time.Millisecond {
		t.Fatalf("unexpected interval: %s", fetcher.Interval())
	}
	unlimited := fetch.New(func(context.Context, string) (int, error) { return 0, nil }, 0)
	for i := 0; i < 3; i++ {
		if outcome := unlimited.Fetch(context.Background(), "k"); !outcome.OK() {
			t.Fatalf("fetch %d failed: %v", i, outcome.Err)
		}
	}
}
