package kafka_config

import "time"

const (
	// Empty disables event publishing
	DefaultKafkaBrokers = ""
	DefaultKafkaTopic   = "dopo.events"
	DefaultKafkaDLQ     = ""

	// Producer defaults
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // Require all replicas
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false

	// Middleware defaults
	DefaultEnableMiddleware = true
)
