package metrics

// Metric names
const (
	namespace = "arsenal"

	MetricNameOperationsTotal   = "operations_total"
	MetricNameOperationDuration = "operation_duration_seconds"
	MetricNamePreviewCache      = "preview_cache_total"
	MetricNameEventsPublished   = "events_total"
	MetricNameTransforms        = "transforms_total"
	MetricNameLevelsGained      = "levels_gained_total"
	MetricNamePackItems         = "pack_items"
	MetricNameHTTPRequests      = "http_requests_total"
	MetricNameHTTPDuration      = "http_request_duration_seconds"
)

// Label names
const (
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
	LabelResult    = "result"
	LabelType      = "type"
	LabelTier      = "tier"
	LabelPack      = "pack"
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
)

// Outcome and cache result values
const (
	OutcomeOK = "ok"
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Operation names
const (
	OpGetItem        = "get_item"
	OpPreviewStats   = "preview_stats"
	OpAcquireItem    = "acquire_item"
	OpGetInstance    = "get_instance"
	OpListInventory  = "list_inventory"
	OpLevelUp        = "level_up"
	OpAddPower       = "add_power"
	OpTransform      = "transform"
	OpPaintInstance  = "paint_instance"
	OpDeleteInstance = "delete_instance"
	OpAuditInventory = "audit_inventory"

	OpSummarizeLoadout = "summarize_loadout"
)

// LatencyBuckets are tuned for in-memory engine work plus one redis round trip
var LatencyBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}
