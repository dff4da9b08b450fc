package enrich

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"reel/internal/logging"
)

// Resolver resolves a single key.
type Resolver[V any] interface {
	Resolve(ctx context.Context, key string) (V, bool)
}

// Result describes one enrichment batch. Resolved[i] is the key that
// produced Values[i].
type Result[V any] struct {
	BatchID   string
	Requested int
	Values    []V
	Resolved  []string
	Missing   []string
}

// Enricher resolves key batches.
type Enricher[V any] struct {
	resolver Resolver[V]
	logger   *slog.Logger
}

// New returns an enricher backed by resolver.
func New[V any](resolver Resolver[V], logger *slog.Logger) *Enricher[V] {
	return &Enricher[V]{
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "enrich"),
	}
}

// ResolveAll returns the values of every key that resolved, in input order.
func (e *Enricher[V]) ResolveAll(ctx context.Context, keys []string) []V {
	return e.Enrich(ctx, keys).Values
}

// Enrich is ResolveAll with batch bookkeeping: a correlation id and the keys
// that did not resolve.
func (e *Enricher[V]) Enrich(ctx context.Context, keys []string) Result[V] {
	result := Result[V]{
		BatchID:   uuid.NewString(),
		Requested: len(keys),
		Values:    make([]V, 0, len(keys)),
		Resolved:  make([]string, 0, len(keys)),
	}
	logger := e.logger.With(logging.String(logging.FieldBatchID, result.BatchID))

	if len(keys) == 0 {
		logging.WarnWithContext(logger, "enrichment batch is empty", "enrich_empty_batch",
			logging.String(logging.FieldErrorHint, "provide at least one key"),
			logging.String(logging.FieldImpact, "no records returned"))
		return result
	}

	start := time.Now()
	for _, key := range keys {
		value, ok := e.resolver.Resolve(ctx, key)
		if !ok {
			result.Missing = append(result.Missing, key)
			continue
		}
		result.Values = append(result.Values, value)
		result.Resolved = append(result.Resolved, key)
	}

	logger.Info("enrichment batch complete",
		logging.String(logging.FieldEventType, "enrich_batch_complete"),
		logging.Int("requested", result.Requested),
		logging.Int("resolved", len(result.Values)),
		logging.Int("missing", len(result.Missing)),
		logging.Duration("elapsed", time.Since(start)))
	if len(result.Missing) > 0 {
		logger.Debug("enrichment batch missing keys", logging.Any("keys", result.Missing))
	}
	return result
}
