// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package bootenv

import (
	"context"
	"log/slog"
	"os"

	"github.com/z5labs/bootenv/env"
	"github.com/z5labs/bootenv/internal/logging"
	"github.com/z5labs/bootenv/internal/try"
	"github.com/z5labs/bootenv/lifecycle"
	"github.com/z5labs/bootenv/merge"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/z5labs/bootenv"

// Runner is called with the fully initialized main environment.
type Runner interface {
	Run(context.Context, *env.Environment) error
}

// RunnerFunc is a func variant of the [Runner] interface.
type RunnerFunc func(context.Context, *env.Environment) error

// Run implements the [Runner] interface.
func (f RunnerFunc) Run(ctx context.Context, e *env.Environment) error {
	return f(ctx, e)
}

// Option are used to configure an App.
type Option func(*App)

// Name configures the name of the application.
func Name(name string) Option {
	return func(a *App) {
		a.name = name
	}
}

// WithBootstrapSources registers sources for the bootstrap environment,
// highest priority first.
func WithBootstrapSources(srcs ...env.Source) Option {
	return func(a *App) {
		a.bootstrapSrcs = append(a.bootstrapSrcs, srcs...)
	}
}

// WithSources registers sources for the main environment, highest
// priority first.
func WithSources(srcs ...env.Source) Option {
	return func(a *App) {
		a.srcs = append(a.srcs, srcs...)
	}
}

// WithPostProcessors registers post processors. Each one is called once
// per phase, in registration order.
func WithPostProcessors(ps ...lifecycle.PostProcessor) Option {
	return func(a *App) {
		a.postProcessors = append(a.postProcessors, ps...)
	}
}

// WithRunners registers runners. They are called sequentially, in
// registration order, and the first failure stops the rest.
func WithRunners(rs ...Runner) Option {
	return func(a *App) {
		a.runners = append(a.runners, rs...)
	}
}

// WithMergePolicy sets how the bootstrap environment is merged into
// the main environment. Defaults to [merge.CarryAll].
func WithMergePolicy(p merge.Policy) Option {
	return func(a *App) {
		a.policy = p
	}
}

// WithLogger sets the logger used by the App.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) {
		a.log = log
	}
}

// WithTracerProvider sets the provider used to trace initialization.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *App) {
		a.tp = tp
	}
}

// App drives the two phase initialization of an environment.
type App struct {
	name           string
	bootstrapSrcs  []env.Source
	srcs           []env.Source
	postProcessors []lifecycle.PostProcessor
	runners        []Runner
	policy         merge.Policy
	log            *slog.Logger
	tp             trace.TracerProvider
}

// New returns a fully initialized App.
func New(opts ...Option) *App {
	var name string
	if len(os.Args) > 0 {
		name = os.Args[0]
	}
	app := &App{
		name:   name,
		policy: merge.CarryAll(),
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.tp == nil {
		app.tp = otel.GetTracerProvider()
	}
	return app
}

// Run initializes the main environment and then calls every [Runner]
// with it. Panics are recovered and returned as errors.
func (app *App) Run(ctx context.Context) (err error) {
	defer try.Recover(&err)

	ctx, span := app.tp.Tracer(instrumentationName).Start(ctx, "App.Run", trace.WithAttributes(
		attribute.String("app.name", app.name),
	))
	defer span.End()
	defer recordError(span, &err)

	e, err := app.Initialize(ctx)
	if err != nil {
		return err
	}

	for i, r := range app.runners {
		err := r.Run(ctx, e)
		if err != nil {
			app.log.ErrorContext(ctx, "runner failed", slog.Int("runner", i), slog.Any("error", err))
			return RunnerError{Index: i, Cause: err}
		}
	}
	return nil
}

// Initialize performs everything [App.Run] does except calling the
// runners, and returns the resulting main environment.
func (app *App) Initialize(ctx context.Context) (_ *env.Environment, err error) {
	defer try.Recover(&err)

	tracer := app.tp.Tracer(instrumentationName)
	ctx, span := tracer.Start(ctx, "App.Initialize")
	defer span.End()
	defer recordError(span, &err)

	var lc lifecycle.Context
	ctx = lifecycle.NewContext(ctx, &lc)

	bootstrap := env.NewEnvironment(app.bootstrapSrcs...)
	err = app.postProcess(ctx, lifecycle.Bootstrap, bootstrap)
	if err != nil {
		return nil, err
	}

	main := env.NewEnvironment(app.srcs...)
	err = app.policy.Carry(ctx, bootstrap, main)
	if err != nil {
		return nil, MergeError{Step: "carry", Cause: err}
	}

	err = app.postProcess(ctx, lifecycle.Main, main)
	if err != nil {
		return nil, err
	}

	err = app.policy.Settle(ctx, main)
	if err != nil {
		return nil, MergeError{Step: "settle", Cause: err}
	}

	err = lc.Ready().Run(ctx)
	if err != nil {
		return nil, ReadyHookError{Cause: err}
	}

	app.log.InfoContext(ctx, "environment initialized", slog.Any("sources", main.Names()))
	return main, nil
}

func (app *App) postProcess(ctx context.Context, phase lifecycle.Phase, e *env.Environment) (err error) {
	ctx = lifecycle.WithPhase(ctx, phase)

	ctx, span := app.tp.Tracer(instrumentationName).Start(ctx, "App.postProcess", trace.WithAttributes(
		attribute.String("bootenv.phase", phase.String()),
		attribute.Int("bootenv.post_processors", len(app.postProcessors)),
	))
	defer span.End()
	defer recordError(span, &err)

	app.log.DebugContext(ctx, "post processing environment", slog.String("phase", phase.String()))

	err = lifecycle.MultiPostProcessor(app.postProcessors...).PostProcess(ctx, e)
	if err != nil {
		return PostProcessError{Phase: phase, Cause: err}
	}
	span.SetAttributes(attribute.StringSlice("bootenv.sources", e.Names()))
	return nil
}

func recordError(span trace.Span, err *error) {
	if *err == nil {
		return
	}
	span.RecordError(*err)
	span.SetStatus(codes.Error, (*err).Error())
}
