package engine

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/thoreinstein/ruleranger/internal/asset"
	"github.com/thoreinstein/ruleranger/internal/config"
	"github.com/thoreinstein/ruleranger/internal/errors"
	"github.com/thoreinstein/ruleranger/internal/host"
	"github.com/thoreinstein/ruleranger/internal/inspect"
	"github.com/thoreinstein/ruleranger/internal/metrics"
	"github.com/thoreinstein/ruleranger/internal/paths"
	"github.com/thoreinstein/ruleranger/internal/remediate"
	"github.com/thoreinstein/ruleranger/internal/rule"
	"github.com/thoreinstein/ruleranger/internal/session"
	"github.com/thoreinstein/ruleranger/internal/sink"
	"github.com/thoreinstein/ruleranger/internal/validator"
)

// Engine is the process-scoped ruleranger instance.
type Engine struct {
	Config    *config.Config
	Registry  *rule.Registry
	Host      asset.Host
	Inspector *inspect.Inspector
	Executor  *remediate.Executor
	Session   *session.Session
	Metrics   *metrics.Metrics
	Verdicts  *sink.VerdictTable
	Publisher *sink.Publisher
	Provider  *sink.Provider

	// Content is the file-backed host when the engine was opened on a
	// content directory, nil otherwise.
	Content *host.Filesystem

	metricsFile string
	logger      *slog.Logger
}

type options struct {
	logger      *slog.Logger
	messages    io.Writer
	metricsFile string
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger handed to every component.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMessageLog renders published results to w as grouped message log
// entries. Without it results are only recorded in the verdict table.
func WithMessageLog(w io.Writer) Option {
	return func(o *options) { o.messages = w }
}

// WithMetricsFile overrides the metrics textfile path from config.
func WithMetricsFile(path string) Option {
	return func(o *options) { o.metricsFile = path }
}

// Open loads the content directory named by cfg and builds an engine on it.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Engine, error) {
	o := collect(opts)

	root, err := paths.ResolveContentRoot(cfg.Content.Root, cfg.File)
	if err != nil {
		return nil, errors.Mark(err, errors.ErrInvalidConfig)
	}
	fs, err := host.OpenFilesystem(ctx, root, cfg.Content.Mount, o.logger)
	if err != nil {
		return nil, errors.WithDetail(err, "check content.root in the configuration")
	}

	e, err := build(cfg, fs, o)
	if err != nil {
		return nil, err
	}
	e.Content = fs
	return e, nil
}

// New builds an engine on an existing host.
func New(cfg *config.Config, h asset.Host, opts ...Option) (*Engine, error) {
	return build(cfg, h, collect(opts))
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

func build(cfg *config.Config, h asset.Host, o options) (*Engine, error) {
	registry, err := BuildRegistry(cfg)
	if err != nil {
		return nil, err
	}
	defaults, err := SessionOptions(cfg, session.ModeCheckOnly, 0)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		Config:      cfg,
		Registry:    registry,
		Host:        h,
		Metrics:     metrics.New(),
		Verdicts:    sink.NewVerdictTable(),
		metricsFile: cfg.Metrics.File,
		logger:      o.logger,
	}
	if o.metricsFile != "" {
		e.metricsFile = o.metricsFile
	}

	e.Inspector = inspect.New(h, o.logger)
	e.Executor = remediate.NewExecutor(h, registry, o.logger)
	e.Session = session.New(registry, e.Inspector, e.Executor, o.logger).WithObserver(e.Metrics)

	var log sink.MessageLog
	if o.messages != nil {
		log = sink.NewConsoleLog(o.messages, paths.AppName)
	}
	e.Publisher = sink.NewPublisher(log, e.Verdicts, o.logger)
	e.Provider = sink.NewProvider(e.Session, defaults, e.Publisher)

	o.logger.Debug("engine ready", "rules", registry.Len())
	return e, nil
}

// Run validates handles, or every asset when none are given, publishes the
// result and exports metrics.
func (e *Engine) Run(ctx context.Context, mode session.Mode, trigger rule.Trigger, handles ...asset.Handle) (*validator.ValidationResult, error) {
	opts, err := SessionOptions(e.Config, mode, trigger)
	if err != nil {
		return nil, err
	}

	var result *validator.ValidationResult
	if len(handles) == 0 {
		result, err = e.Session.RunAll(ctx, opts)
	} else {
		result, err = e.Session.Run(ctx, handles, opts)
	}
	if err != nil {
		return nil, err
	}

	if _, err := e.Publisher.Publish(result); err != nil {
		e.logger.Warn("publishing result", "error", err)
	}
	if err := e.ExportMetrics(); err != nil {
		e.logger.Warn("exporting metrics", "error", err)
	}
	return result, nil
}

// Validate answers a single-asset data-validation request.
func (e *Engine) Validate(ctx context.Context, assetPath string) (sink.Verdict, *validator.ValidationResult, error) {
	h, err := e.Handle(ctx, assetPath)
	if err != nil {
		return sink.NotValidated, nil, err
	}
	verdict, result, err := e.Provider.Validate(ctx, h)
	if err == nil {
		if mErr := e.ExportMetrics(); mErr != nil {
			e.logger.Warn("exporting metrics", "error", mErr)
		}
	}
	return verdict, result, err
}

// Handle resolves an asset path, or a descriptor file when the engine owns
// a content directory, to a handle.
func (e *Engine) Handle(ctx context.Context, ref string) (asset.Handle, error) {
	if e.Content != nil {
		if _, ok := host.FormatOf(ref); ok {
			if p, err := e.Content.AssetPath(ref); err == nil {
				ref = p
			}
		}
	}

	a, err := e.Host.Load(ctx, asset.Handle{Path: ref})
	if err != nil {
		return asset.Handle{}, err
	}
	return a.Handle(), nil
}

// Handles lists the assets of the given kinds, all kinds when none are
// given.
func (e *Engine) Handles(ctx context.Context, kinds ...asset.Kind) ([]asset.Handle, error) {
	return e.Host.ListAssets(ctx, kinds...)
}

// ExportMetrics writes the metrics textfile when one is configured.
func (e *Engine) ExportMetrics() error {
	if e.metricsFile == "" {
		return nil
	}
	if err := paths.EnsureDir(filepath.Dir(e.metricsFile), 0); err != nil {
		return err
	}
	return e.Metrics.WriteTextfile(e.metricsFile)
}

// Close stops the executor. Runs fail after Close.
func (e *Engine) Close() error {
	e.Executor.Close()
	e.logger.Debug("engine closed")
	return nil
}
