package utils

import (
	"context"
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const serviceName = "fitness-tracker"

func GenerateTraceId() string {
	return uuid.New().String()
}

// ExtractServiceName returns the service label attached to every log line.
func ExtractServiceName() string {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" || environment == "production" {
		return serviceName
	}
	return serviceName + "-" + environment
}

// LogEntry writes the message on the given level.
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
	case "panic":
		entry.Panic(message)
	default:
		entry.Info(message)
	}
}

func LogMessage(level, message string) {
	entry := log.WithFields(log.Fields{
		"service": ExtractServiceName(),
	})

	LogEntry(entry, level, message)
}

// traceId reads the trace id injected by the trace middleware. gin stores it under the string key.
func traceId(ctx context.Context) string {
	if traceId, ok := ctx.Value(TraceIdKey.String()).(string); ok {
		return traceId
	}
	return ""
}

func LogMessageWithFields(ctx context.Context, level, message string) {
	entry := log.WithFields(log.Fields{
		"traceId": traceId(ctx),
		"service": ExtractServiceName(),
	})

	LogEntry(entry, level, message)
}

func LogMessageWithFieldsAndError(ctx context.Context, level, message string, err error) {
	entry := log.WithFields(log.Fields{
		"traceId": traceId(ctx),
		"service": ExtractServiceName(),
	}).WithError(err)

	LogEntry(entry, level, message)
}
