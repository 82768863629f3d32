package safeaction_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/safeaction"
)

type signup struct {
	Name    string `json:"name"`
	Display string `json:"display"`
	Age     int    `json:"age"`
}

func TestTyped(t *testing.T) {
	t.Parallel()

	t.Run("merged object decoded into struct", func(t *testing.T) {
		t.Parallel()

		b := safeaction.New().
			Schema(constant(map[string]any{"name": "ann", "age": 30})).
			Schema(constant(map[string]any{"display": "ANN"})).
			Use(safeaction.Provide(safeaction.Patch{"greeting": "hi"}))

		act := safeaction.Action(b, safeaction.Typed(func(_ context.Context, in signup, actx safeaction.Ctx) (string, error) {
			greeting, _ := safeaction.Get[string](actx, "greeting")
			return greeting + " " + in.Display + " " + in.Name, nil
		}))

		out, err := act(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "hi ANN ann", out)
	})

	t.Run("matching type is used directly", func(t *testing.T) {
		t.Parallel()

		in := &signup{Name: "ann"}
		act := safeaction.Action(safeaction.New(), safeaction.Typed(func(_ context.Context, got *signup, _ safeaction.Ctx) (*signup, error) {
			return got, nil
		}))

		out, err := act(context.Background(), in)
		require.NoError(t, err)
		assert.Same(t, in, out)
	})

	t.Run("decode failure is a handler error", func(t *testing.T) {
		t.Parallel()

		var ec safeaction.ErrorContext
		b := safeaction.New(
			safeaction.WithoutLogging(),
			safeaction.WithOnError(func(_ context.Context, c safeaction.ErrorContext) error {
				ec = c
				return nil
			}),
		).Schema(constant(map[string]any{"age": "not a number"}))

		act := safeaction.Action(b, safeaction.Typed(func(context.Context, signup, safeaction.Ctx) (any, error) {
			return nil, nil
		}))

		_, err := act(context.Background(), nil)
		require.ErrorIs(t, err, safeaction.ErrDecodeInput)
		assert.Equal(t, safeaction.PhaseHandler, ec.Phase)
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	got, err := safeaction.Decode[signup](map[string]any{"name": "ann"})
	require.NoError(t, err)
	assert.Equal(t, signup{Name: "ann"}, got)

	n, err := safeaction.Decode[int](nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = safeaction.Decode[int](func() {})
	assert.ErrorIs(t, err, safeaction.ErrDecodeInput)
}
