// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package smoketest verifies, once initialization has completed, that the
// properties contributed by package augment resolve to their expected values.
package smoketest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/z5labs/bootenv/augment"
	"github.com/z5labs/bootenv/env"
	"github.com/z5labs/bootenv/internal/logging"
)

// ErrSmokeTestFailed is returned by a strict [Runner] when a check fails.
var ErrSmokeTestFailed = errors.New("smoke test failed")

// Expectation pairs a property key with its expected value.
type Expectation struct {
	Key   string
	Value string
}

// Expectations are the properties checked by [Check].
var Expectations = []Expectation{
	{Key: augment.PropertyOne, Value: augment.ValueOne},
	{Key: augment.PropertyTwo, Value: augment.ValueTwo},
}

// Mismatch describes a property which did not resolve as expected.
type Mismatch struct {
	Key      string
	Expected string
	Actual   string
	Found    bool
}

// String implements the [fmt.Stringer] interface.
func (m Mismatch) String() string {
	if !m.Found {
		return fmt.Sprintf("expected %s to be %q but it was not set", m.Key, m.Expected)
	}
	return fmt.Sprintf("expected %s to be %q but was %q", m.Key, m.Expected, m.Actual)
}

// Result is the outcome of [Check].
type Result struct {
	Mismatches []Mismatch
}

// Passed reports whether every expectation held.
func (r Result) Passed() bool {
	return len(r.Mismatches) == 0
}

// Check reads every entry of [Expectations] back through e.
func Check(e *env.Environment) Result {
	var r Result
	for _, exp := range Expectations {
		v, ok := e.Property(exp.Key)
		if ok && v == exp.Value {
			continue
		}
		r.Mismatches = append(r.Mismatches, Mismatch{
			Key:      exp.Key,
			Expected: exp.Value,
			Actual:   v,
			Found:    ok,
		})
	}
	return r
}

// Runner reports the outcome of [Check] on its writer.
type Runner struct {
	out    io.Writer
	log    *slog.Logger
	strict bool
}

// RunnerOption configures a [Runner].
type RunnerOption func(*Runner)

// Output sets where the report is written. Defaults to [os.Stderr].
func Output(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = w
	}
}

// Logger sets the logger used by the [Runner].
func Logger(log *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = log
	}
}

// Strict makes the [Runner] return [ErrSmokeTestFailed] when a check fails.
// Otherwise a failure is only reported.
func Strict(strict bool) RunnerOption {
	return func(r *Runner) {
		r.strict = strict
	}
}

// NewRunner returns a [Runner].
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		out: os.Stderr,
		log: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run checks e and writes "SUCCESS!" or one "FAIL!" line per mismatch.
func (r *Runner) Run(ctx context.Context, e *env.Environment) error {
	res := Check(e)
	if res.Passed() {
		r.log.InfoContext(ctx, "smoke test passed")
		_, err := fmt.Fprintln(r.out, "SUCCESS!")
		return err
	}

	for _, m := range res.Mismatches {
		r.log.WarnContext(
			ctx,
			"smoke test mismatch",
			slog.String("key", m.Key),
			slog.String("expected", m.Expected),
			slog.String("actual", m.Actual),
			slog.Bool("found", m.Found),
		)
		_, err := fmt.Fprintf(r.out, "FAIL! %s\n", m)
		if err != nil {
			return err
		}
	}
	if r.strict {
		return ErrSmokeTestFailed
	}
	return nil
}
