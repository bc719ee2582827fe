package middlewares_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kiln/middlewares"
)

func TestPanicError(t *testing.T) {
	t.Parallel()

	t.Run("formats panic value", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "panic: something went wrong", (&middlewares.PanicError{Value: "something went wrong"}).Error())
		require.Equal(t, "panic: 42", (&middlewares.PanicError{Value: 42}).Error())
		require.Equal(t, "panic: <nil>", (&middlewares.PanicError{}).Error())
	})

	t.Run("unwraps error values only", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("cause")
		require.ErrorIs(t, &middlewares.PanicError{Value: cause}, cause)
		require.NoError(t, (&middlewares.PanicError{Value: "text"}).Unwrap())
	})

	t.Run("helpers see through wrapping", func(t *testing.T) {
		t.Parallel()

		pe := &middlewares.PanicError{Value: "x"}
		wrapped := fmt.Errorf("outer: %w", pe)

		require.True(t, middlewares.IsPanicError(wrapped))
		got, ok := middlewares.AsPanicError(wrapped)
		require.True(t, ok)
		require.Same(t, pe, got)

		require.False(t, middlewares.IsPanicError(errors.New("plain")))
		_, ok = middlewares.AsPanicError(errors.New("plain"))
		require.False(t, ok)
	})
}
