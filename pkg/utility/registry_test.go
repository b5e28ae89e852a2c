package utility_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/utility"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("register and call", func(t *testing.T) {
		t.Parallel()
		r := utility.NewRegistry(nil)
		require.NoError(t, r.Register("upper", func(args ...any) (any, error) {
			s, err := utility.Arg[string](args, 0)
			if err != nil {
				return nil, err
			}
			return s + "!", nil
		}))

		v, err := r.String("upper", "hi")
		require.NoError(t, err)
		require.Equal(t, "hi!", v)
		require.Equal(t, []string{"upper"}, r.Names())
	})

	t.Run("overwrite wins", func(t *testing.T) {
		t.Parallel()
		r := utility.NewRegistry(nil)
		require.NoError(t, r.Register("title", func(...any) (any, error) { return "a", nil }))
		require.NoError(t, r.Register("title", func(...any) (any, error) { return "b", nil }))

		v, err := r.Call("title")
		require.NoError(t, err)
		require.Equal(t, "b", v)
		require.Len(t, r.Names(), 1)
	})

	t.Run("invalid registrations", func(t *testing.T) {
		t.Parallel()
		r := utility.NewRegistry(nil)
		require.ErrorIs(t, r.Register("", func(...any) (any, error) { return nil, nil }), apperr.ErrAppPlugin)
		require.ErrorIs(t, r.Register("x", nil), apperr.ErrAppPlugin)
		require.Empty(t, r.Names())
	})

	t.Run("unknown utility", func(t *testing.T) {
		t.Parallel()
		r := utility.NewRegistry(nil)
		_, err := r.Call("missing")
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("non string result", func(t *testing.T) {
		t.Parallel()
		r := utility.NewRegistry(nil)
		require.NoError(t, r.Register("n", func(...any) (any, error) { return 1, nil }))
		_, err := r.String("n")
		require.ErrorIs(t, err, apperr.ErrUnexpected)
	})
}

func TestArgs(t *testing.T) {
	t.Parallel()

	args := []any{"a", float64(3), "7", 2.5}

	s, err := utility.Arg[string](args, 0)
	require.NoError(t, err)
	require.Equal(t, "a", s)

	_, err = utility.Arg[int](args, 0)
	require.ErrorIs(t, err, apperr.ErrParameter)

	_, err = utility.Arg[string](args, 9)
	require.ErrorIs(t, err, apperr.ErrParameter)

	n, err := utility.IntArg(args, 1)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	n, err = utility.IntArg(args, 2)
	require.NoError(t, err)
	require.Equal(t, 7, n)

	_, err = utility.IntArg(args, 3)
	require.ErrorIs(t, err, apperr.ErrParameter)
}
