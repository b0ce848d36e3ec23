// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package lifecycle provides the hooks a [bootenv.App] calls while it
// initializes its environment.
package lifecycle

import (
	"context"
	"errors"

	"github.com/z5labs/bootenv/env"
)

// Phase identifies one of the initialization stages.
type Phase string

const (
	// Bootstrap is the early phase, run against a throwaway environment.
	Bootstrap Phase = "bootstrap"

	// Main is the phase run against the environment the application keeps.
	Main Phase = "main"
)

// String implements the [fmt.Stringer] interface.
func (p Phase) String() string {
	return string(p)
}

type phaseKey struct{}

// WithPhase returns a copy of parent which carries p.
func WithPhase(parent context.Context, p Phase) context.Context {
	return context.WithValue(parent, phaseKey{}, p)
}

// PhaseFromContext extracts the current [Phase] if one is present.
func PhaseFromContext(ctx context.Context) (Phase, bool) {
	p, ok := ctx.Value(phaseKey{}).(Phase)
	return p, ok
}

// PostProcessor is given a mutable environment once per [Phase].
type PostProcessor interface {
	PostProcess(context.Context, *env.Environment) error
}

// PostProcessorFunc is a func variant of the [PostProcessor] interface.
type PostProcessorFunc func(context.Context, *env.Environment) error

// PostProcess implements the [PostProcessor] interface.
func (f PostProcessorFunc) PostProcess(ctx context.Context, e *env.Environment) error {
	return f(ctx, e)
}

type multiPostProcessor []PostProcessor

func (mp multiPostProcessor) PostProcess(ctx context.Context, e *env.Environment) error {
	errs := make([]error, 0, len(mp))
	for _, p := range mp {
		err := p.PostProcess(ctx, e)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// MultiPostProcessor returns a [PostProcessor] that's the logical
// concatenation of the provided [PostProcessor]s. They're applied
// sequentially and every one runs even if an earlier one fails.
func MultiPostProcessor(ps ...PostProcessor) PostProcessor {
	return multiPostProcessor(ps)
}

// Hook represents functionality that needs to be performed
// once the environment is fully initialized.
type Hook interface {
	Run(context.Context) error
}

// HookFunc is a func variant of the [Hook] interface.
type HookFunc func(context.Context) error

// Run implements the [Hook] interface.
func (f HookFunc) Run(ctx context.Context) error {
	return f(ctx)
}

type multiHook []Hook

func (mh multiHook) Run(ctx context.Context) error {
	errs := make([]error, 0, len(mh))
	for _, h := range mh {
		err := h.Run(ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Context allows post processors to register actions which should run
// once initialization has completed, before any runner starts.
type Context struct {
	ready multiHook
}

// Ready returns the composed [Hook] registered through [Context.OnReady].
func (c *Context) Ready() Hook {
	return c.ready
}

// OnReady registers hook to run after the main phase completes.
func (c *Context) OnReady(hook Hook) {
	c.ready = append(c.ready, hook)
}

type contextKey struct{}

// NewContext returns a new [context.Context] containing the lifecycle [Context].
func NewContext(parent context.Context, c *Context) context.Context {
	return context.WithValue(parent, contextKey{}, c)
}

// FromContext tries to extract a lifecycle [Context] from the given [context.Context].
func FromContext(ctx context.Context) (*Context, bool) {
	lc, ok := ctx.Value(contextKey{}).(*Context)
	return lc, ok
}
