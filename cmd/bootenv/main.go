// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/z5labs/bootenv/env"
	"github.com/z5labs/bootenv/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	code := cli.Run(ctx, env.FromEnviron(cli.SystemEnvironmentSource), os.Args[1:], os.Stderr)
	if code != 0 {
		cancel()
		os.Exit(code)
	}
}
