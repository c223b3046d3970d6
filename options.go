package cottontail

import (
	"log/slog"
	"os"
)

type options struct {
	pageSize     int
	bufferPages  int
	knnWorkers   int
	logger       *Logger
	diskReadRate float64 // pages/sec, 0 disables throttling
}

func defaultOptions() *options {
	return &options{
		pageSize:     4096,
		bufferPages:  1024,
		knnWorkers:   4,
		logger:       NewNoopLogger(),
		diskReadRate: 0,
	}
}

// Option configures a Database at Open time, following the teacher's
// functional-options pattern (options.go: Option func(*options)).
type Option func(*options)

// WithPageSize overrides the default 4096-byte page size.
func WithPageSize(size int) Option {
	return func(o *options) { o.pageSize = size }
}

// WithBufferPages records a buffer-pool size in the options. Column stores
// do not read it: each opens its buffer pool with a fixed capacity of 256
// pages.
func WithBufferPages(n int) Option {
	return func(o *options) { o.bufferPages = n }
}

// WithKnnWorkers sets the degree of parallelism for ranged kNN sub-scans.
func WithKnnWorkers(n int) Option {
	return func(o *options) { o.knnWorkers = n }
}

// WithLogger installs a Logger; by default Open uses NewNoopLogger.
func WithLogger(l *Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTextLogging is a convenience over WithLogger(NewTextLogger(os.Stderr, level)).
func WithTextLogging(level slog.Level) Option {
	return func(o *options) { o.logger = NewTextLogger(os.Stderr, level) }
}

// WithDiskReadRate records a page-read rate in the options. The value is
// not passed on: buffer pools build their admission controller without a
// rate limit, so page reads are not throttled whatever is set here.
func WithDiskReadRate(pagesPerSecond float64) Option {
	return func(o *options) { o.diskReadRate = pagesPerSecond }
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}
