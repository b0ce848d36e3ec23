// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package try

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

func TestRecover(t *testing.T) {
	t.Run("will set a PanicError", func(t *testing.T) {
		t.Run("if the panic value is not an error", func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err)
				panic("boom")
			}

			err := f()

			var perr PanicError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
			assert.Equal(t, "boom", perr.Value)
			assert.Nil(t, perr.Unwrap())
		})

		t.Run("if the panic value is an error", func(t *testing.T) {
			cause := errors.New("cause")
			f := func() (err error) {
				defer Recover(&err)
				panic(cause)
			}

			err := f()
			assert.ErrorIs(t, err, cause)
		})
	})

	t.Run("will join with an existing error", func(t *testing.T) {
		existing := errors.New("existing")
		f := func() (err error) {
			defer Recover(&err)
			err = existing
			panic("boom")
		}

		err := f()
		assert.ErrorIs(t, err, existing)
		assert.ErrorAs(t, err, new(PanicError))
	})

	t.Run("will not set an error", func(t *testing.T) {
		t.Run("if there was no panic", func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err)
				return nil
			}

			assert.Nil(t, f())
		})
	})
}

func TestClose(t *testing.T) {
	t.Run("will return a CloseError", func(t *testing.T) {
		t.Run("if the closer fails", func(t *testing.T) {
			closeErr := errors.New("failed to close")

			var err error
			Close(&err, closerFunc(func() error { return closeErr }))

			assert.ErrorIs(t, err, closeErr)
			assert.ErrorAs(t, err, new(CloseError))
		})
	})

	t.Run("will not touch the error", func(t *testing.T) {
		t.Run("if the value is not a closer", func(t *testing.T) {
			var err error
			Close(&err, "not a closer")
			assert.Nil(t, err)
		})
	})
}
