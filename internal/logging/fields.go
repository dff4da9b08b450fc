package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType identifies the kind of event so log consumers can filter on it.
	FieldEventType = "event_type"
	// FieldErrorHint carries the suggested next step for a warning or error.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldLookupKey is the key submitted to a remote lookup (movie title, place name).
	FieldLookupKey = "lookup_key"
	// FieldService names the lookup service (movies, geo).
	FieldService = "service"
	// FieldBatchID correlates every line emitted by one batch enrichment.
	FieldBatchID = "batch_id"
	// FieldOutcome records how a remote fetch ended.
	FieldOutcome = "outcome"
	// FieldCachePath is the backing file of a persistent cache.
	FieldCachePath = "cache_path"
)
