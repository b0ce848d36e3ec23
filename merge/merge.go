// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package merge decides what the main phase environment inherits from the
// bootstrap phase environment.
package merge

//go:generate mockgen -source=merge.go -destination=mergemock/policy.go -package=mergemock

import (
	"context"
	"fmt"
	"strings"

	"github.com/z5labs/bootenv/env"
)

// BootstrapSourceName is the name under which [Partial] exposes the
// bootstrap sources to the main phase.
const BootstrapSourceName = "bootstrapProperties"

// Policy carries state from the bootstrap environment into the main
// environment. Carry is called after the bootstrap phase and before the
// main phase. Settle is called after the main phase.
type Policy interface {
	Carry(ctx context.Context, bootstrap, main *env.Environment) error
	Settle(ctx context.Context, main *env.Environment) error
}

type carryAll struct{}

// CarryAll returns a [Policy] which appends every bootstrap source that
// is not already registered in the main environment, in bootstrap order.
func CarryAll() Policy {
	return carryAll{}
}

func (carryAll) Carry(_ context.Context, bootstrap, main *env.Environment) error {
	for _, src := range bootstrap.Sources() {
		if main.Contains(src.Name()) {
			continue
		}
		main.AddLast(src)
	}
	return nil
}

func (carryAll) Settle(context.Context, *env.Environment) error {
	return nil
}

type discardAll struct{}

// DiscardAll returns a [Policy] which carries nothing into the main
// environment.
func DiscardAll() Policy {
	return discardAll{}
}

func (discardAll) Carry(context.Context, *env.Environment, *env.Environment) error {
	return nil
}

func (discardAll) Settle(context.Context, *env.Environment) error {
	return nil
}

type partial struct{}

// Partial returns a [Policy] under which the bootstrap sources are visible
// during the main phase, as a single source named [BootstrapSourceName] at
// the lowest priority, and are then removed as a unit by Settle.
//
// Anything a main phase post processor skipped because it already resolved
// through the bootstrap sources is therefore missing afterwards.
func Partial() Policy {
	return partial{}
}

// bootstrapSource marks the composite added by [Partial] so Settle never
// removes a caller's source that happens to share its name.
type bootstrapSource struct {
	*env.CompositeSource
}

func (partial) Carry(_ context.Context, bootstrap, main *env.Environment) error {
	if bootstrap.Len() == 0 {
		return nil
	}
	main.AddLast(bootstrapSource{env.NewCompositeSource(BootstrapSourceName, bootstrap.Sources()...)})
	return nil
}

func (partial) Settle(_ context.Context, main *env.Environment) error {
	main.RemoveFunc(func(src env.Source) bool {
		_, ok := src.(bootstrapSource)
		return ok
	})
	return nil
}

// Names lists the policy names accepted by [Parse].
var Names = []string{"carry", "discard", "partial"}

// UnknownPolicyError is returned by [Parse] for an unrecognized name.
type UnknownPolicyError struct {
	Name string
}

// Error implements the [builtin.error] interface.
func (e UnknownPolicyError) Error() string {
	return fmt.Sprintf("unknown merge policy %q: expected one of %s", e.Name, strings.Join(Names, ", "))
}

// Parse returns the [Policy] registered under name.
func Parse(name string) (Policy, error) {
	switch strings.ToLower(name) {
	case "carry":
		return CarryAll(), nil
	case "discard":
		return DiscardAll(), nil
	case "partial":
		return Partial(), nil
	default:
		return nil, UnknownPolicyError{Name: name}
	}
}
