// FILE: louis-log/builder.go
package louislog

import (
	"io"
)

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg  *Config
	deps dependencies
	err  error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	return newLogger(b.cfg, b.deps)
}

// MainProcess sets the main process tag stamped on every record.
func (b *Builder) MainProcess(name string) *Builder {
	b.cfg.MainProcess = name
	return b
}

// SubProcess sets the sub process tag stamped on every record.
func (b *Builder) SubProcess(name string) *Builder {
	b.cfg.SubProcess = name
	return b
}

// Console enables or disables the stdout sink.
func (b *Builder) Console(enable bool) *Builder {
	b.cfg.Show.Console = enable
	return b
}

// DateFormat sets the human-readable date layout.
func (b *Builder) DateFormat(pattern string) *Builder {
	b.cfg.Show.DateFormat = pattern
	return b
}

// ConsoleIgnoreLevels mutes the named levels on the console.
func (b *Builder) ConsoleIgnoreLevels(levels ...string) *Builder {
	b.cfg.Show.IgnoreLevels = levels
	return b
}

// StoragePath sets the base directory for bucketed log files.
func (b *Builder) StoragePath(path string) *Builder {
	b.cfg.Storage.Path = path
	return b
}

// StorageFormats selects which file formats are written.
func (b *Builder) StorageFormats(text, json bool) *Builder {
	b.cfg.Storage.Text = text
	b.cfg.Storage.JSON = json
	return b
}

// SplitBy sets the date granularity for file bucketing.
func (b *Builder) SplitBy(granularity string) *Builder {
	b.cfg.Storage.SplitBy = granularity
	return b
}

// Strategy selects between per-record and batched file writes.
func (b *Builder) Strategy(strategy string) *Builder {
	b.cfg.Storage.Strategy = strategy
	return b
}

// BatchSize sets the number of records buffered per batched flush.
func (b *Builder) BatchSize(size int64) *Builder {
	b.cfg.Storage.BatchSize = size
	return b
}

// StorageIgnoreLevels excludes the named levels from file storage.
func (b *Builder) StorageIgnoreLevels(levels ...string) *Builder {
	b.cfg.Storage.IgnoreLevels = levels
	return b
}

// Webhook enables webhook delivery to the given URL and provider.
func (b *Builder) Webhook(url, provider string) *Builder {
	b.cfg.Webhook.Enabled = true
	b.cfg.Webhook.URL = url
	b.cfg.Webhook.Provider = provider
	return b
}

// WebhookPostsPerMinute sets the delivery self-limit, 0 disables limiting.
func (b *Builder) WebhookPostsPerMinute(posts int64) *Builder {
	b.cfg.Webhook.PostsPerMinute = posts
	return b
}

// Heartbeat enables the periodic pipeline statistics record.
func (b *Builder) Heartbeat(intervalS int64) *Builder {
	b.cfg.Heartbeat.Enabled = true
	b.cfg.Heartbeat.IntervalS = intervalS
	return b
}

// Overrides applies string key=value overrides on top of the current
// configuration, e.g. "storage.batch_size=6".
func (b *Builder) Overrides(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	cfg, err := applyStringOverrides(b.cfg, overrides)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg = cfg
	return b
}

// DateFormatter replaces the timestamp rendering implementation.
func (b *Builder) DateFormatter(dates DateFormatter) *Builder {
	b.deps.dates = dates
	return b
}

// Decorator replaces the console color decoration implementation.
func (b *Builder) Decorator(decorator Decorator) *Builder {
	b.deps.decorator = decorator
	return b
}

// Appender replaces the file-append primitive.
func (b *Builder) Appender(appender Appender) *Builder {
	b.deps.appender = appender
	return b
}

// Transport replaces the webhook HTTP transport.
func (b *Builder) Transport(transport Transport) *Builder {
	b.deps.transport = transport
	return b
}

// ConsoleWriter redirects console output, primarily for tests.
func (b *Builder) ConsoleWriter(w io.Writer) *Builder {
	b.deps.console = w
	return b
}

// Example usage:
//
//	logger, err := louislog.NewBuilder().
//		MainProcess("billing").
//		SubProcess("invoices").
//		StoragePath("/var/log/billing").
//		SplitBy("day").
//		Strategy("batch").
//		BatchSize(32).
//		Webhook("https://discord.com/api/webhooks/...", "discord").
//		Build()
//	if err == nil {
//		defer logger.Shutdown("normal exit")
//		logger.Info("logger initialized")
//	}
