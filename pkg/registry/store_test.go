package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emapp/emapp/pkg/registry"
)

func TestStorePut(t *testing.T) {
	t.Parallel()

	t.Run("new key", func(t *testing.T) {
		t.Parallel()
		s := registry.New[int]()
		require.False(t, s.Put("a", 1))
		v, ok := s.Get("a")
		require.True(t, ok)
		require.Equal(t, 1, v)
		require.Equal(t, 1, s.Len())
	})

	t.Run("overwrite keeps first position", func(t *testing.T) {
		t.Parallel()
		s := registry.New[int]()
		s.Put("a", 1)
		s.Put("b", 2)
		require.True(t, s.Put("a", 3))

		require.Equal(t, []string{"a", "b"}, s.Keys())
		require.Equal(t, []int{3, 2}, s.Values())
		require.Equal(t, 2, s.Len())
	})

	t.Run("keys are case sensitive", func(t *testing.T) {
		t.Parallel()
		s := registry.New[int]()
		s.Put("Name", 1)
		require.False(t, s.Has("name"))
		require.True(t, s.Has("Name"))
	})

	t.Run("zero value store", func(t *testing.T) {
		t.Parallel()
		var s registry.Store[string]
		require.False(t, s.Put("x", "y"))
		require.Equal(t, []string{"x"}, s.Keys())
	})
}

func TestStoreKeysIsCopy(t *testing.T) {
	t.Parallel()

	s := registry.New[int]()
	s.Put("a", 1)
	keys := s.Keys()
	keys[0] = "mutated"
	require.Equal(t, []string{"a"}, s.Keys())
}

func TestStoreEach(t *testing.T) {
	t.Parallel()

	s := registry.New[int]()
	s.Put("a", 1)
	s.Put("b", 2)
	s.Put("c", 3)

	var seen []string
	s.Each(func(k string, _ int) bool {
		seen = append(seen, k)
		return k != "b"
	})
	require.Equal(t, []string{"a", "b"}, seen)

	_, ok := s.Get("missing")
	require.False(t, ok)
}
