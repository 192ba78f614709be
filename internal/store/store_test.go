package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetMissOnEmptyStore(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.Get("startpos", 5)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutThenGet(t *testing.T) {
	s := openTestStore(t)

	const fen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	require.NoError(t, s.Put(fen, 4, 197281, 250*time.Millisecond))

	result, found, err := s.Get(fen, 4)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(197281), result.Nodes)
	assert.Equal(t, 4, result.Depth)
	assert.Equal(t, fen, result.FEN)
	assert.Equal(t, 250*time.Millisecond, result.Elapsed)
}

func TestGetIsScopedByDepth(t *testing.T) {
	s := openTestStore(t)

	const fen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	require.NoError(t, s.Put(fen, 4, 197281, time.Second))

	_, found, err := s.Get(fen, 5)
	require.NoError(t, err)
	assert.False(t, found, "a result at a different depth must not be returned")
}

func TestPutOverwritesPreviousResult(t *testing.T) {
	s := openTestStore(t)

	const fen = "8/8/8/8/8/8/8/K6k w - - 0 1"
	require.NoError(t, s.Put(fen, 1, 3, time.Millisecond))
	require.NoError(t, s.Put(fen, 1, 5, 2*time.Millisecond))

	result, found, err := s.Get(fen, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(5), result.Nodes)
}
