package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Feed Metrics
var (
	FeedFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFeedFetchesTotal,
			Help: HelpTextFeedFetchesTotal,
		},
		[]string{LabelKind, LabelResult},
	)

	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameFeedFetchDuration,
			Help:    HelpTextFeedFetchDuration,
			Buckets: FeedLatencyBuckets,
		},
		[]string{LabelKind},
	)

	ModListCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameModListCacheHits,
			Help: HelpTextModListCacheHits,
		},
	)
)

// Status Metrics
var (
	ServerChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameServerChecksTotal,
			Help: HelpTextServerChecksTotal,
		},
		[]string{LabelResult},
	)

	PlayersOnline = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNamePlayersOnline,
			Help: HelpTextPlayersOnline,
		},
		[]string{LabelServer},
	)

	ComposeOverflow = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameComposeOverflow,
			Help: HelpTextComposeOverflow,
		},
	)

	RotationAdvances = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRotationAdvances,
			Help: HelpTextRotationAdvances,
		},
	)

	StatusPublishes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStatusPublishes,
			Help: HelpTextStatusPublishes,
		},
		[]string{LabelResult},
	)
)

// Demand Metrics
var (
	DemandNewEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDemandNewEvents,
			Help: HelpTextDemandNewEvents,
		},
	)

	DemandBroadcasts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDemandBroadcasts,
			Help: HelpTextDemandBroadcasts,
		},
		[]string{LabelResult},
	)

	DemandDMs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDemandDMs,
			Help: HelpTextDemandDMs,
		},
		[]string{LabelResult},
	)
)

// Job Metrics
var (
	JobsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobsSkipped,
			Help: HelpTextJobsSkipped,
		},
		[]string{LabelJob},
	)

	JobPanics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobPanics,
			Help: HelpTextJobPanics,
		},
		[]string{LabelJob},
	)

	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommands,
			Help: HelpTextCommands,
		},
		[]string{LabelCommand},
	)
)
