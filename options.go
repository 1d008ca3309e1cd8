package vectordb

import (
	"log/slog"
	"time"

	"github.com/pagelens/vectordb/blobstore"
	"github.com/pagelens/vectordb/codec"
	"github.com/pagelens/vectordb/embedding"
	"github.com/pagelens/vectordb/similarity"
)

// DefaultMaxVectors is the per-namespace capacity used when none is
// configured.
const DefaultMaxVectors = 10000

// DefaultStoragePath is the snapshot directory used when persistence
// is enabled without an explicit path.
const DefaultStoragePath = "./.vectordb"

type options struct {
	maxVectors    int
	metric        similarity.Metric
	persistToDisk bool
	storagePath   string
	blobs         blobstore.Store
	codec         codec.Codec
	compression   Compression
	flushInterval time.Duration
	embedder      embedding.Embedder
	logger        *Logger
	metrics       MetricsCollector
}

// Option configures store construction.
type Option func(*options)

// WithMaxVectors sets the per-namespace capacity. When a namespace
// exceeds it, the oldest inserted entry is evicted.
func WithMaxVectors(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxVectors = n
		}
	}
}

// WithMetric sets the similarity metric used for search scoring.
// Defaults to cosine.
func WithMetric(m similarity.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithPersistence enables snapshot persistence to the local file
// system under the given directory. An empty path uses
// DefaultStoragePath.
func WithPersistence(path string) Option {
	return func(o *options) {
		o.persistToDisk = true
		if path != "" {
			o.storagePath = path
		}
	}
}

// WithBlobStore enables persistence against a custom blob store
// (e.g. S3, MinIO or a mirror) instead of the local file system.
func WithBlobStore(s blobstore.Store) Option {
	return func(o *options) {
		if s != nil {
			o.persistToDisk = true
			o.blobs = s
		}
	}
}

// WithCodec configures the codec used for snapshot encoding.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression enables snapshot compression. Loads detect the
// compression of an existing snapshot automatically, so changing this
// setting does not invalidate prior snapshots.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithFlushInterval batches the automatic snapshot writes that follow
// each mutation: at most one snapshot is written per interval, with a
// trailing background flush for mutations that arrive in between.
//
// By default every mutation rewrites the snapshot synchronously, which
// is an O(store size) write; batching trades durability of the very
// latest mutations for much cheaper sustained write throughput.
func WithFlushInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.flushInterval = d
		}
	}
}

// WithEmbedder supplies the text-to-vector capability used when a
// document arrives without an embedding and by SearchByText.
func WithEmbedder(e embedding.Embedder) Option {
	return func(o *options) {
		o.embedder = e
	}
}

// WithLogger configures structured logging for operations.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger with the specified level and sets
// it. Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metrics = mc
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxVectors:  DefaultMaxVectors,
		metric:      similarity.MetricCosine,
		storagePath: DefaultStoragePath,
		codec:       codec.Default,
		logger:      NoopLogger(),
		metrics:     NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
