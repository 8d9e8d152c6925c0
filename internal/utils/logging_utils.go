package utils

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func GenerateTraceId() string {
	return uuid.New().String()
}

func LogEntry(entry *log.Entry, level, message string) {
	switch level {
	case "debug":
		entry.Debug(message)
	case "info":
		entry.Info(message)
	case "warn":
		entry.Warn(message)
	case "error":
		entry.Error(message)
	case "fatal":
		entry.Fatal(message)
	default:
		entry.Info(message)
	}
}

func LogMessage(level, message string) {
	entry := log.WithFields(log.Fields{
		"service": "cycle-nutrition",
	})

	LogEntry(entry, level, message)
}

// LogMessageWithFields attaches the request trace id when one is present in
// the context.
func LogMessageWithFields(ctx context.Context, level, message string) {
	fields := log.Fields{
		"service": "cycle-nutrition",
	}
	if traceId, ok := ctx.Value(TraceIdKey.String()).(string); ok {
		fields["traceId"] = traceId
	}

	LogEntry(log.WithFields(fields), level, message)
}

func LogMessageWithFieldsAndError(ctx context.Context, level, message string, err error) {
	LogMessageWithFields(ctx, level, message+": "+err.Error())
}
