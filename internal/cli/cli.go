// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package cli implements the bootenv command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/z5labs/bootenv"
	"github.com/z5labs/bootenv/augment"
	"github.com/z5labs/bootenv/env"
	"github.com/z5labs/bootenv/internal/logging"
	"github.com/z5labs/bootenv/internal/tracing"
	"github.com/z5labs/bootenv/lifecycle"
	"github.com/z5labs/bootenv/merge"
	"github.com/z5labs/bootenv/smoketest"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const serviceName = "bootenv"

// Source names registered by the command.
const (
	SystemEnvironmentSource = "systemEnvironment"
	ApplicationConfigSource = "applicationConfig"
)

// Run executes the command and reports any error to stderr, including
// errors raised before flags are parsed. It returns the process exit code.
func Run(ctx context.Context, system *env.MapSource, args []string, stderr io.Writer) int {
	err := Execute(ctx, system, args)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// Execute runs the bootenv command with args. system holds the process
// environment variables.
func Execute(ctx context.Context, system *env.MapSource, args []string) error {
	cmd, err := NewCommand(system)
	if err != nil {
		return err
	}
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// NewCommand builds the root command. Settings defaults are read from
// system before flags are parsed, and system is registered as the
// highest priority source of both phases.
func NewCommand(system *env.MapSource) (*cobra.Command, error) {
	s, err := LoadSettings(properties(system))
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "bootenv",
		Short: "Initialize an environment in two phases and verify the augmented properties",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, &s, system, func(ctx context.Context, app *bootenv.App) error {
				return app.Run(ctx)
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&s.ConfigFile, "config", s.ConfigFile, "properties file loaded as the "+ApplicationConfigSource+" source")
	flags.StringVar(&s.MergePolicy, "merge-policy", s.MergePolicy, "how bootstrap sources reach the main phase: "+strings.Join(merge.Names, ", "))
	flags.StringVar(&s.LogLevel, "log-level", s.LogLevel, "minimum log level")
	flags.StringVar(&s.Trace, "trace", s.Trace, "span exporter: "+strings.Join(tracing.Exporters, ", "))
	flags.StringVar(&s.OTLPEndpoint, "otlp-endpoint", s.OTLPEndpoint, "collector address for the otlp exporter")
	root.Flags().BoolVar(&s.Strict, "strict", s.Strict, "exit with an error if the smoke test fails")

	root.AddCommand(
		resolveCommand(&s, system),
		sourcesCommand(&s, system),
		dumpCommand(&s, system),
	)
	return root, nil
}

func resolveCommand(s *Settings, system *env.MapSource) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve KEY...",
		Short: "Print the value each key resolves to after initialization",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, s, system, func(ctx context.Context, app *bootenv.App) error {
				e, err := app.Initialize(ctx)
				if err != nil {
					return err
				}
				for _, k := range args {
					fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, e.PropertyOr(k, "<unset>"))
				}
				return nil
			})
		},
	}
}

func sourcesCommand(s *Settings, system *env.MapSource) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List source names in priority order after initialization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, s, system, func(ctx context.Context, app *bootenv.App) error {
				e, err := app.Initialize(ctx)
				if err != nil {
					return err
				}
				for _, name := range e.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}

func dumpCommand(s *Settings, system *env.MapSource) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the resolved properties as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, s, system, func(ctx context.Context, app *bootenv.App) error {
				e, err := app.Initialize(ctx)
				if err != nil {
					return err
				}

				if prefix != "" {
					e, err = filterPrefix(e, prefix)
					if err != nil {
						return err
					}
				}

				m, err := e.Map()
				if err != nil {
					return err
				}

				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				err = enc.Encode(m)
				if err != nil {
					return err
				}
				return enc.Close()
			})
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "only dump keys starting with this prefix")
	return cmd
}

func filterPrefix(e *env.Environment, prefix string) (*env.Environment, error) {
	flat, err := e.Flatten()
	if err != nil {
		return nil, err
	}
	props := make(map[string]string)
	for k, v := range flat {
		if strings.HasPrefix(k, prefix) {
			props[k] = v
		}
	}
	return env.NewEnvironment(env.NewMapSource("filtered", props)), nil
}

func withApp(cmd *cobra.Command, s *Settings, system *env.MapSource, f func(context.Context, *bootenv.App) error) (err error) {
	ctx := cmd.Context()

	lvl, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return err
	}
	log := logging.New(cmd.ErrOrStderr(), lvl)

	policy, err := merge.Parse(s.MergePolicy)
	if err != nil {
		return err
	}

	tp, shutdown, err := tracing.New(ctx, tracing.Config{
		ServiceName: serviceName,
		Exporter:    s.Trace,
		Writer:      cmd.ErrOrStderr(),
		Endpoint:    s.OTLPEndpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, shutdown(context.WithoutCancel(ctx)))
	}()

	srcs := []env.Source{system}
	if s.ConfigFile != "" {
		appCfg, err := loadConfigFile(s.ConfigFile)
		if err != nil {
			return err
		}
		srcs = append(srcs, appCfg)
	}

	app := bootenv.New(
		bootenv.Name(serviceName),
		bootenv.WithLogger(log),
		bootenv.WithTracerProvider(tp),
		bootenv.WithMergePolicy(policy),
		bootenv.WithBootstrapSources(system),
		bootenv.WithSources(srcs...),
		bootenv.WithPostProcessors(
			augment.New(augment.Logger(log)),
			reportSources(log),
		),
		bootenv.WithRunners(smoketest.NewRunner(
			smoketest.Output(cmd.ErrOrStderr()),
			smoketest.Logger(log),
			smoketest.Strict(s.Strict),
		)),
	)
	return f(ctx, app)
}

// ConfigFileError occurs when the --config file can not be loaded.
type ConfigFileError struct {
	Path  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConfigFileError) Error() string {
	return fmt.Sprintf("failed to load config file %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConfigFileError) Unwrap() error {
	return e.Cause
}

// loadConfigFile reads YAML and JSON files with the env adapters and
// leaves every other format viper understands to viper.
func loadConfigFile(p string) (*env.MapSource, error) {
	if env.Supported(p) {
		src, err := env.FromFile(ApplicationConfigSource, os.DirFS(filepath.Dir(p)), filepath.Base(p))
		if err != nil {
			return nil, ConfigFileError{Path: p, Cause: err}
		}
		return src, nil
	}

	v := viper.New()
	v.SetConfigFile(p)
	err := v.ReadInConfig()
	if err != nil {
		return nil, ConfigFileError{Path: p, Cause: err}
	}
	return env.FromViper(ApplicationConfigSource, v)
}

func properties(src *env.MapSource) map[string]string {
	m := make(map[string]string, src.Len())
	for _, k := range src.Keys() {
		v, _ := src.Property(k)
		m[k] = v
	}
	return m
}

// reportSources logs the final source order once the main phase is done.
func reportSources(log *slog.Logger) lifecycle.PostProcessor {
	return lifecycle.PostProcessorFunc(func(ctx context.Context, e *env.Environment) error {
		phase, _ := lifecycle.PhaseFromContext(ctx)
		lc, ok := lifecycle.FromContext(ctx)
		if phase != lifecycle.Main || !ok {
			return nil
		}
		lc.OnReady(lifecycle.HookFunc(func(ctx context.Context) error {
			log.DebugContext(ctx, "final source order", slog.Any("sources", e.Names()))
			return nil
		}))
		return nil
	})
}
