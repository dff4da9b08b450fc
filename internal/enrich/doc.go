// Package enrich resolves batches of keys through a lookup service.
//
// Keys are resolved one by one in input order. Keys with no answer are
// dropped from the result, so a batch never fails as a whole. Duplicates are
// passed through; the second occurrence is served from the cache.
package enrich
