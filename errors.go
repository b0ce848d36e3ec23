// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package bootenv

import (
	"fmt"

	"github.com/z5labs/bootenv/lifecycle"
)

// PostProcessError
type PostProcessError struct {
	Phase lifecycle.Phase
	Cause error
}

// Error implements the [builtin.error] interface.
func (e PostProcessError) Error() string {
	return fmt.Sprintf("failed to post process %s environment: %s", e.Phase, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e PostProcessError) Unwrap() error {
	return e.Cause
}

// MergeError occurs when the merge policy fails to carry or settle
// the main environment.
type MergeError struct {
	Step  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e MergeError) Error() string {
	return fmt.Sprintf("failed to %s environment: %s", e.Step, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e MergeError) Unwrap() error {
	return e.Cause
}

// ReadyHookError
type ReadyHookError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ReadyHookError) Error() string {
	return fmt.Sprintf("failed to run ready hooks: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ReadyHookError) Unwrap() error {
	return e.Cause
}

// RunnerError
type RunnerError struct {
	Index int
	Cause error
}

// Error implements the [builtin.error] interface.
func (e RunnerError) Error() string {
	return fmt.Sprintf("runner %d failed: %s", e.Index, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e RunnerError) Unwrap() error {
	return e.Cause
}
