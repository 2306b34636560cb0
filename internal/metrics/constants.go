package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	// RouteUnmatched is the path label for requests no route matched
	RouteUnmatched = "unmatched"
)

// Feed metric names
const (
	MetricNameFeedFetchesTotal  = "farmbot_feed_fetches_total"
	MetricNameFeedFetchDuration = "farmbot_feed_fetch_duration_seconds"
	MetricNameModListCacheHits  = "farmbot_modlist_cache_hits_total"
)

// Status metric names
const (
	MetricNameServerChecksTotal = "farmbot_server_checks_total"
	MetricNamePlayersOnline     = "farmbot_players_online"
	MetricNameComposeOverflow   = "farmbot_compose_overflow_total"
	MetricNameRotationAdvances  = "farmbot_rotation_advances_total"
	MetricNameStatusPublishes   = "farmbot_status_publishes_total"
)

// Demand metric names
const (
	MetricNameDemandNewEvents  = "farmbot_demand_new_events_total"
	MetricNameDemandBroadcasts = "farmbot_demand_broadcasts_total"
	MetricNameDemandDMs        = "farmbot_demand_dms_total"
)

// Job metric names
const (
	MetricNameJobsSkipped = "farmbot_jobs_skipped_total"
	MetricNameJobPanics   = "farmbot_job_panics_total"
	MetricNameCommands    = "farmbot_commands_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Feed metric help text
const (
	HelpTextFeedFetchesTotal  = "Total number of feed fetch attempts by feed kind and result"
	HelpTextFeedFetchDuration = "Feed fetch latency in seconds"
	HelpTextModListCacheHits  = "Total number of mod list fetches served from cache"
)

// Status metric help text
const (
	HelpTextServerChecksTotal = "Total number of server status checks by result"
	HelpTextPlayersOnline     = "Players currently online per monitored server"
	HelpTextComposeOverflow   = "Total number of renders that exceeded the field limit without rotation"
	HelpTextRotationAdvances  = "Total number of rotation cursor advances"
	HelpTextStatusPublishes   = "Total number of status embed publishes by result"
)

// Demand metric help text
const (
	HelpTextDemandNewEvents  = "Total number of newly observed great demand events"
	HelpTextDemandBroadcasts = "Total number of great demand channel broadcasts by result"
	HelpTextDemandDMs        = "Total number of great demand direct messages by result"
)

// Job metric help text
const (
	HelpTextJobsSkipped = "Total number of jobs skipped because the previous run was still in flight"
	HelpTextJobPanics   = "Total number of recovered job panics"
	HelpTextCommands    = "Total number of slash command invocations"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelKind    = "kind"
	LabelResult  = "result"
	LabelGuild   = "guild"
	LabelServer  = "server"
	LabelJob     = "job"
	LabelCommand = "command"
)

// Result label values
const (
	ResultSuccess    = "success"
	ResultError      = "error"
	ResultOnline     = "online"
	ResultOffline    = "offline"
	ResultSent       = "sent"
	ResultSuppressed = "suppressed"
	ResultCreated    = "created"
	ResultEdited     = "edited"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// FeedLatencyBuckets covers LAN-fast responses up to the fetch timeout
var FeedLatencyBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10}
