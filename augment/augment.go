// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package augment contributes a fixed, low priority property source to an
// environment during each initialization phase.
//
// [PropertyOne] is always contributed. [PropertyTwo] is only contributed
// when it does not already resolve, which makes the outcome depend on what
// the host carried over from the bootstrap phase into the main phase.
package augment

import (
	"context"
	"log/slog"

	"github.com/z5labs/bootenv/env"
	"github.com/z5labs/bootenv/internal/logging"
	"github.com/z5labs/bootenv/lifecycle"
)

const (
	PropertyOne = "example.app.test.property.one"
	PropertyTwo = "example.app.test.property.two"

	ValueOne = "test.value.one"
	ValueTwo = "test.value.two"

	// SourceName is the name of every source appended by [Augment].
	SourceName = "example.app.test.property.source"
)

// Augment appends a new source named [SourceName] at the lowest priority
// of e. The source holds [PropertyOne] and, if [PropertyTwo] does not
// resolve through e at call time, [PropertyTwo]. A nil e is ignored.
//
// Calling Augment again appends another source under the same name;
// the earlier one keeps precedence.
func Augment(e *env.Environment) {
	if e == nil {
		return
	}

	props := map[string]string{
		PropertyOne: ValueOne,
	}
	if !e.ContainsProperty(PropertyTwo) {
		props[PropertyTwo] = ValueTwo
	}

	e.AddLast(env.NewMapSource(SourceName, props))
}

// Augmenter runs [Augment] as a [lifecycle.PostProcessor].
type Augmenter struct {
	log *slog.Logger
}

// Option configures an [Augmenter].
type Option func(*Augmenter)

// Logger sets the logger used to report each augmentation.
func Logger(log *slog.Logger) Option {
	return func(a *Augmenter) {
		a.log = log
	}
}

// New returns an [Augmenter].
func New(opts ...Option) *Augmenter {
	a := &Augmenter{
		log: logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// PostProcess implements the [lifecycle.PostProcessor] interface.
func (a *Augmenter) PostProcess(ctx context.Context, e *env.Environment) error {
	if e == nil {
		a.log.DebugContext(ctx, "no environment to augment")
		return nil
	}

	phase, _ := lifecycle.PhaseFromContext(ctx)
	preset := e.ContainsProperty(PropertyTwo)

	Augment(e)

	a.log.InfoContext(
		ctx,
		"augmented environment",
		slog.String("phase", phase.String()),
		slog.String("source", SourceName),
		slog.Bool("property_two_preset", preset),
		slog.Int("sources", e.Len()),
	)
	return nil
}
