// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package bootenv initializes an application environment in two phases
// and then hands it to the application's runners.
//
// An [App] builds two environments. The bootstrap environment is post
// processed first and then, depending on the configured [merge.Policy],
// some or all of it is carried into the main environment. The main
// environment is post processed next, the policy settles it, ready hooks
// run and, finally, every [Runner] is called with the main environment.
//
// # Basic Usage
//
//	app := bootenv.New(
//	    bootenv.WithBootstrapSources(env.FromEnviron("systemEnvironment")),
//	    bootenv.WithSources(env.FromEnviron("systemEnvironment")),
//	    bootenv.WithPostProcessors(augment.New()),
//	    bootenv.WithRunners(smoketest.NewRunner()),
//	)
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Post processors are called once per phase, so anything they decide based
// on what already resolves is sensitive to the merge policy in use.
package bootenv
