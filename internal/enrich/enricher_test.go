package enrich_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reel/internal/enrich"
	"reel/internal/fetch"
	"reel/internal/kvcache"
	"reel/internal/lookup"
)

type resolverMock struct {
	mock.Mock
}

func (m *resolverMock) Resolve(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func TestResolveAllKeepsOrderAndDropsFailures(t *testing.T) {
	resolver := new(resolverMock)
	resolver.On("Resolve", mock.Anything, "A").Return("record-A", true).Once()
	resolver.On("Resolve", mock.Anything, "B").Return("", false).Once()
	resolver.On("Resolve", mock.Anything, "C").Return("record-C", true).Once()

	enricher := enrich.New[string](resolver, nil)
	values := enricher.ResolveAll(context.Background(), []string{"A", "B", "C"})

	assert.Equal(t, []string{"record-A", "record-C"}, values)
	resolver.AssertExpectations(t)
}

func TestEnrichReportsMissingKeysAndBatchID(t *testing.T) {
	resolver := new(resolverMock)
	resolver.On("Resolve", mock.Anything, "A").Return("", false)
	resolver.On("Resolve", mock.Anything, "B").Return("record-B", true)

	enricher := enrich.New[string](resolver, nil)
	first := enricher.Enrich(context.Background(), []string{"A", "B"})
	second := enricher.Enrich(context.Background(), []string{"B"})

	assert.Equal(t, 2, first.Requested)
	assert.Equal(t, []string{"record-B"}, first.Values)
	assert.Equal(t, []string{"B"}, first.Resolved)
	assert.Equal(t, []string{"A"}, first.Missing)
	assert.NotEmpty(t, first.BatchID)
	assert.NotEqual(t, first.BatchID, second.BatchID)
}

func TestResolveAllEmptyInput(t *testing.T) {
	resolver := new(resolverMock)
	enricher := enrich.New[string](resolver, nil)

	values := enricher.ResolveAll(context.Background(), nil)

	require.NotNil(t, values)
	assert.Empty(t, values)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestResolveAllDuplicateKeysHitCache(t *testing.T) {
	calls := map[string]int{}
	fetcher := fetch.New(func(_ context.Context, key string) (string, error) {
		calls[key]++
		if key == "B" {
			return "", errors.New(errors.CodeNotFound, "no match")
		}
		return "value-" + key, nil
	}, 0)
	store := kvcache.New[string](kvcache.NewJSONFile(filepath.Join(t.TempDir(), "cache.json")), nil)
	service := lookup.New[string]("test", store, fetcher, nil)
	enricher := enrich.New[string](service, nil)

	values := enricher.ResolveAll(context.Background(), []string{"A", "B", "A", "C"})

	assert.Equal(t, []string{"value-A", "value-A", "value-C"}, values)
	assert.Equal(t, 1, calls["A"], "duplicate key should be served from cache")
	assert.Equal(t, 1, calls["B"])
}
