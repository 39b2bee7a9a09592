package errors

// ErrorCode represents a specific infrastructure error code in the system.
// Business rejections are never errors; they travel as rejection events.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"

	// ConfigLoadError represents a failure to load or parse configuration.
	ConfigLoadError ErrorCode = "config_load_error"
	// SecurityConfigError represents an unusable instrument descriptor.
	SecurityConfigError ErrorCode = "security_config_error"

	// InstrumentMismatchError represents a command routed to the wrong book.
	InstrumentMismatchError ErrorCode = "instrument_mismatch_error"
	// UnknownActionError represents a command type the dispatcher cannot route.
	UnknownActionError ErrorCode = "unknown_action_error"
	// StatusTransitionError represents a market status change out of cycle.
	StatusTransitionError ErrorCode = "status_transition_error"

	// KafkaReadError represents a failure to read a command message.
	KafkaReadError ErrorCode = "kafka_read_error"
	// KafkaOffsetError represents a failure to position the command reader.
	KafkaOffsetError ErrorCode = "kafka_offset_error"
	// KafkaWriteError represents a failure to publish an event batch.
	KafkaWriteError ErrorCode = "kafka_write_error"

	// CommandDecodeError represents a command envelope that cannot be decoded.
	CommandDecodeError ErrorCode = "command_decode_error"
	// EventEncodeError represents an event that cannot be encoded.
	EventEncodeError ErrorCode = "event_encode_error"

	// SnapshotMarshalError represents a failure to serialize a snapshot.
	SnapshotMarshalError ErrorCode = "snapshot_marshal_error"
	// SnapshotUnmarshalError represents a stored snapshot that cannot be decoded.
	SnapshotUnmarshalError ErrorCode = "snapshot_unmarshal_error"
	// SnapshotRestoreError represents a decoded snapshot the book refused.
	SnapshotRestoreError ErrorCode = "snapshot_restore_error"

	// MarketDataPublishError represents a failure to broadcast book depth.
	MarketDataPublishError ErrorCode = "market_data_publish_error"

	// SchedulerConfigError represents an invalid session schedule.
	SchedulerConfigError ErrorCode = "scheduler_config_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
)
