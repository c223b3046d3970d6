package cottontail

import (
	"io"
	"log/slog"
)

// Logger wraps slog.Logger with Cottontail-shaped contextual helpers,
// following the teacher's root logger.go: a thin embedding rather than a
// bespoke logging interface, so callers can still reach for the full
// slog API when a helper doesn't cover what they need.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps an existing slog.Logger.
func NewLogger(l *slog.Logger) *Logger { return &Logger{Logger: l} }

// NewTextLogger returns a Logger writing human-readable text to w at the
// given level.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

// NewJSONLogger returns a Logger writing structured JSON to w at the given
// level.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))}
}

// NewNoopLogger returns a Logger that discards everything, the default for
// a Database opened without an explicit WithLogger option.
func NewNoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithQuery returns a Logger annotated with a query id, used so every log
// line emitted while planning/executing one query can be correlated.
func (l *Logger) WithQuery(queryID string) *Logger {
	return &Logger{Logger: l.Logger.With("query_id", queryID)}
}

// WithEntity returns a Logger annotated with a schema.entity reference.
func (l *Logger) WithEntity(entity string) *Logger {
	return &Logger{Logger: l.Logger.With("entity", entity)}
}

// WithStage returns a Logger annotated with an execution stage index.
func (l *Logger) WithStage(stage int) *Logger {
	return &Logger{Logger: l.Logger.With("stage", stage)}
}

// LogPlan logs a bound logical plan's shape right after binding.
func (l *Logger) LogPlan(queryID, entity string, nodeCount int) {
	l.Info("query bound", "query_id", queryID, "entity", entity, "nodes", nodeCount)
}

// LogStageStart logs the start of an execution stage.
func (l *Logger) LogStageStart(queryID string, stage int, tasks int) {
	l.Debug("stage started", "query_id", queryID, "stage", stage, "tasks", tasks)
}

// LogStageDone logs the completion of an execution stage along with the
// number of rows it produced.
func (l *Logger) LogStageDone(queryID string, stage int, rows int) {
	l.Debug("stage finished", "query_id", queryID, "stage", stage, "rows", rows)
}

// LogError logs a KindedError with its kind surfaced as a field.
func (l *Logger) LogError(queryID string, err error) {
	kind := UnknownErrorKind
	if ke, ok := err.(KindedError); ok {
		kind = ke.Kind()
	}
	l.Error("query failed", "query_id", queryID, "kind", kind.String(), "error", err)
}
