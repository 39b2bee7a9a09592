package util

import (
	"context"
)

type key string

const (
	requestIDKey = key("x-request-id")
	symbolKey    = key("symbol")
	offsetKey    = key("command-offset")
	sourceKey    = key("command-source")
)

// Fields returns a map of the key-value pairs that this library has set into `context`.
func Fields(ctx context.Context) map[string]any {
	fields := map[string]any{"request_id": GetRequestID(ctx)}
	if symbol := GetSymbol(ctx); symbol != "" {
		fields["symbol"] = symbol
	}
	if offset, ok := GetCommandOffset(ctx); ok {
		fields["command_offset"] = offset
	}
	if source := GetCommandSource(ctx); source != "" {
		fields["command_source"] = source
	}
	return fields
}

// WithSymbol returns a context carrying the instrument symbol.
func WithSymbol(ctx context.Context, symbol string) context.Context {
	return context.WithValue(ctx, symbolKey, symbol)
}

// GetSymbol returns the instrument symbol from context, or empty.
func GetSymbol(ctx context.Context) string {
	symbol, _ := ctx.Value(symbolKey).(string)
	return symbol
}

// WithCommandOffset returns a context carrying the Kafka offset of the command
// being processed.
func WithCommandOffset(ctx context.Context, offset int64) context.Context {
	return context.WithValue(ctx, offsetKey, offset)
}

// GetCommandOffset returns the command offset from context.
func GetCommandOffset(ctx context.Context) (int64, bool) {
	offset, ok := ctx.Value(offsetKey).(int64)
	return offset, ok
}

// WithCommandSource returns a context naming where a command came from,
// e.g. "kafka" or "scheduler".
func WithCommandSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// GetCommandSource returns the command source from context, or empty.
func GetCommandSource(ctx context.Context) string {
	source, _ := ctx.Value(sourceKey).(string)
	return source
}
