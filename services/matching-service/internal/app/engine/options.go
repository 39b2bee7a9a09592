package engine

import "time"

// Options represents configuration options for the Engine.
type Options struct {
	SnapshotInterval    time.Duration
	SnapshotOffsetDelta int64
	// CommandBuffer is the capacity of the queue between intake and the processor.
	CommandBuffer int
	// ReadBackoff is the pause after a failed read from the order topic.
	ReadBackoff time.Duration
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		SnapshotInterval:    30 * time.Second,
		SnapshotOffsetDelta: 1000,
		CommandBuffer:       1024,
		ReadBackoff:         100 * time.Millisecond,
	}
}
