package config

import "time"

// Lookup Constants
const (
	// DefaultParagraphLimit is the number of introductory paragraphs returned per lookup
	DefaultParagraphLimit = 3

	// DefaultUpstreamTimeout bounds every outbound call to the wiki APIs
	DefaultUpstreamTimeout = 10 * time.Second

	// DefaultExtractor selects the pattern-based paragraph extractor
	DefaultExtractor = "regex"
)

// Upstream Constants
const (
	// DefaultWikiLang is the language edition queried when no URL override is set
	DefaultWikiLang = "fr"

	// DefaultUserAgent identifies the proxy to the wiki APIs
	DefaultUserAgent = "wikibrief/1.0 (+https://github.com/wikibrief)"
)

// Server Constants
const (
	// DefaultPort is the HTTP listen port
	DefaultPort = "8080"

	// DefaultShutdownTimeout is how long in-flight requests get on shutdown
	DefaultShutdownTimeout = 10 * time.Second
)

// Event Constants
const (
	// DefaultEventSinks lists the sinks lookup events are written to
	DefaultEventSinks = "log"

	// DefaultEventQueueSize caps the number of events waiting for a worker
	DefaultEventQueueSize = 256

	// DefaultEventWorkers is the number of goroutines draining the event queue
	DefaultEventWorkers = 2

	// DefaultRedisStream is the Redis stream lookup events are appended to
	DefaultRedisStream = "wikibrief:lookups"

	// DefaultKafkaTopic is the Kafka topic lookup events are produced to
	DefaultKafkaTopic = "wikibrief-lookups"
)

// User-facing messages served by the search endpoint
const (
	MessageMissingQuery    = "Le paramètre \"query\" est requis"
	MessageNoMatch         = "Aucun résultat trouvé"
	MessageInternalFailure = "Une erreur est survenue lors de la recherche"
)
