// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package bootenv

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/z5labs/bootenv/augment"
	"github.com/z5labs/bootenv/env"
	"github.com/z5labs/bootenv/lifecycle"
	"github.com/z5labs/bootenv/merge"
	"github.com/z5labs/bootenv/merge/mergemock"
	"github.com/z5labs/bootenv/smoketest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
)

func TestApp_Run(t *testing.T) {
	t.Run("will pass the smoke test", func(t *testing.T) {
		testCases := []struct {
			name   string
			policy merge.Policy
		}{
			{name: "carry all", policy: merge.CarryAll()},
			{name: "discard all", policy: merge.DiscardAll()},
		}

		for _, tc := range testCases {
			t.Run("if the merge policy is "+tc.name, func(t *testing.T) {
				var out bytes.Buffer
				app := New(
					WithMergePolicy(tc.policy),
					WithPostProcessors(augment.New()),
					WithRunners(smoketest.NewRunner(smoketest.Output(&out), smoketest.Strict(true))),
				)

				err := app.Run(context.Background())
				require.NoError(t, err)
				assert.Equal(t, "SUCCESS!\n", out.String())
			})
		}
	})

	t.Run("will report a missing property two", func(t *testing.T) {
		t.Run("if the merge policy is partial", func(t *testing.T) {
			var out bytes.Buffer
			app := New(
				WithMergePolicy(merge.Partial()),
				WithPostProcessors(augment.New()),
				WithRunners(smoketest.NewRunner(smoketest.Output(&out))),
			)

			err := app.Run(context.Background())
			require.NoError(t, err)
			assert.Contains(t, out.String(), "FAIL! expected "+augment.PropertyTwo)
			assert.NotContains(t, out.String(), augment.PropertyOne)
		})
	})

	t.Run("will call runners in order", func(t *testing.T) {
		var order []int
		app := New(
			WithSources(env.NewMapSource("application", map[string]string{"a": "b"})),
			WithRunners(
				RunnerFunc(func(ctx context.Context, e *env.Environment) error {
					order = append(order, 1)
					assert.Equal(t, "b", e.PropertyOr("a", ""))
					return nil
				}),
				RunnerFunc(func(ctx context.Context, e *env.Environment) error {
					order = append(order, 2)
					return nil
				}),
			),
		)

		err := app.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("will return a RunnerError", func(t *testing.T) {
		t.Run("if a runner fails", func(t *testing.T) {
			runErr := errors.New("failed to run")
			called := false
			app := New(WithRunners(
				RunnerFunc(func(context.Context, *env.Environment) error {
					return runErr
				}),
				RunnerFunc(func(context.Context, *env.Environment) error {
					called = true
					return nil
				}),
			))

			err := app.Run(context.Background())

			var rerr RunnerError
			if !assert.ErrorAs(t, err, &rerr) {
				return
			}
			assert.Equal(t, 0, rerr.Index)
			assert.ErrorIs(t, err, runErr)
			assert.False(t, called)
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if a runner panics", func(t *testing.T) {
			app := New(WithRunners(RunnerFunc(func(context.Context, *env.Environment) error {
				panic("boom")
			})))

			err := app.Run(context.Background())
			assert.ErrorContains(t, err, "boom")
		})
	})
}

func TestApp_Initialize(t *testing.T) {
	t.Run("will call post processors once per phase", func(t *testing.T) {
		var phases []lifecycle.Phase
		var names [][]string
		app := New(
			WithBootstrapSources(env.NewMapSource("bootstrapSource", nil)),
			WithSources(env.NewMapSource("mainSource", nil)),
			WithMergePolicy(merge.DiscardAll()),
			WithPostProcessors(lifecycle.PostProcessorFunc(func(ctx context.Context, e *env.Environment) error {
				p, ok := lifecycle.PhaseFromContext(ctx)
				require.True(t, ok)
				phases = append(phases, p)
				names = append(names, e.Names())
				return nil
			})),
		)

		e, err := app.Initialize(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []lifecycle.Phase{lifecycle.Bootstrap, lifecycle.Main}, phases)
		assert.Equal(t, [][]string{{"bootstrapSource"}, {"mainSource"}}, names)
		assert.Equal(t, []string{"mainSource"}, e.Names())
	})

	t.Run("will consult the merge policy around the main phase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		policy := mergemock.NewMockPolicy(ctrl)

		var mainPhaseSaw string
		gomock.InOrder(
			policy.EXPECT().Carry(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, bootstrap, main *env.Environment) error {
					assert.Equal(t, augment.ValueTwo, bootstrap.PropertyOr(augment.PropertyTwo, ""))
					main.AddLast(env.NewMapSource("carried", map[string]string{"k": "v"}))
					return nil
				},
			),
			policy.EXPECT().Settle(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, main *env.Environment) error {
					_, ok := main.Remove("carried")
					assert.True(t, ok)
					return nil
				},
			),
		)

		app := New(
			WithMergePolicy(policy),
			WithPostProcessors(
				augment.New(),
				lifecycle.PostProcessorFunc(func(ctx context.Context, e *env.Environment) error {
					if p, _ := lifecycle.PhaseFromContext(ctx); p == lifecycle.Main {
						mainPhaseSaw = e.PropertyOr("k", "")
					}
					return nil
				}),
			),
		)

		e, err := app.Initialize(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "v", mainPhaseSaw)
		assert.Equal(t, []string{augment.SourceName}, e.Names())
	})

	t.Run("will run ready hooks after the main phase", func(t *testing.T) {
		var seen []string
		app := New(
			WithPostProcessors(
				augment.New(),
				lifecycle.PostProcessorFunc(func(ctx context.Context, e *env.Environment) error {
					if p, _ := lifecycle.PhaseFromContext(ctx); p != lifecycle.Main {
						return nil
					}
					lc, ok := lifecycle.FromContext(ctx)
					require.True(t, ok)
					lc.OnReady(lifecycle.HookFunc(func(context.Context) error {
						seen = e.Names()
						return nil
					}))
					return nil
				}),
			),
		)

		_, err := app.Initialize(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{augment.SourceName, augment.SourceName}, seen)
	})

	t.Run("will return a PostProcessError", func(t *testing.T) {
		t.Run("if the bootstrap phase fails", func(t *testing.T) {
			ppErr := errors.New("failed to post process")
			app := New(WithPostProcessors(lifecycle.PostProcessorFunc(func(context.Context, *env.Environment) error {
				return ppErr
			})))

			_, err := app.Initialize(context.Background())

			var perr PostProcessError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
			assert.Equal(t, lifecycle.Bootstrap, perr.Phase)
			assert.ErrorIs(t, err, ppErr)
		})

		t.Run("if the main phase fails", func(t *testing.T) {
			ppErr := errors.New("failed to post process")
			app := New(WithPostProcessors(lifecycle.PostProcessorFunc(func(ctx context.Context, _ *env.Environment) error {
				if p, _ := lifecycle.PhaseFromContext(ctx); p == lifecycle.Main {
					return ppErr
				}
				return nil
			})))

			_, err := app.Initialize(context.Background())

			var perr PostProcessError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
			assert.Equal(t, lifecycle.Main, perr.Phase)
		})
	})

	t.Run("will return a MergeError", func(t *testing.T) {
		t.Run("if the policy fails to carry", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			policy := mergemock.NewMockPolicy(ctrl)

			carryErr := errors.New("failed to carry")
			policy.EXPECT().Carry(gomock.Any(), gomock.Any(), gomock.Any()).Return(carryErr)

			_, err := New(WithMergePolicy(policy)).Initialize(context.Background())

			var merr MergeError
			if !assert.ErrorAs(t, err, &merr) {
				return
			}
			assert.Equal(t, "carry", merr.Step)
			assert.ErrorIs(t, err, carryErr)
		})

		t.Run("if the policy fails to settle", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			policy := mergemock.NewMockPolicy(ctrl)

			settleErr := errors.New("failed to settle")
			policy.EXPECT().Carry(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			policy.EXPECT().Settle(gomock.Any(), gomock.Any()).Return(settleErr)

			_, err := New(WithMergePolicy(policy)).Initialize(context.Background())

			var merr MergeError
			if !assert.ErrorAs(t, err, &merr) {
				return
			}
			assert.Equal(t, "settle", merr.Step)
		})
	})

	t.Run("will return a ReadyHookError", func(t *testing.T) {
		t.Run("if a ready hook fails", func(t *testing.T) {
			hookErr := errors.New("failed hook")
			app := New(WithPostProcessors(lifecycle.PostProcessorFunc(func(ctx context.Context, _ *env.Environment) error {
				lc, _ := lifecycle.FromContext(ctx)
				lc.OnReady(lifecycle.HookFunc(func(context.Context) error { return hookErr }))
				return nil
			})))

			_, err := app.Initialize(context.Background())
			assert.ErrorAs(t, err, new(ReadyHookError))
			assert.ErrorIs(t, err, hookErr)
		})
	})

	t.Run("will trace each phase", func(t *testing.T) {
		exp := tracetest.NewInMemoryExporter()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))

		app := New(
			WithTracerProvider(tp),
			WithPostProcessors(augment.New()),
		)
		_, err := app.Initialize(context.Background())
		require.NoError(t, err)

		var names []string
		for _, s := range exp.GetSpans() {
			names = append(names, s.Name)
		}
		assert.Equal(t, []string{"App.postProcess", "App.postProcess", "App.Initialize"}, names)
	})
}
