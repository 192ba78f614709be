// Package perft implements the recursive perft counter and its root-level
// parallel fan-out, backed by the transposition cache in internal/cache.
package perft

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/codingjerk/marcusgo/internal/board"
	"github.com/codingjerk/marcusgo/internal/cache"
)

// DefaultCacheBits sizes the transposition table at 2^19 slots, matching
// this module's production default.
const DefaultCacheBits = 19

// recurse is the single-threaded depth-first counter: depth 0 is a leaf;
// otherwise look up the cache, generate pseudo-legal moves into a window of
// buf bounded by a saved cursor, make/recurse/unmake each, restore the
// cursor, cache the result, and return it.
func recurse(b *board.Board, gen *board.MoveGenerator, buf *board.MoveBuffer, tt *cache.Table, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	if nodes, hit := tt.Get(b.Hash(), depth); hit {
		return nodes
	}

	start := buf.Len()
	gen.Generate(b, buf)
	end := buf.Len()

	var sum uint64
	for i := start; i < end; i++ {
		m := buf.Get(i)
		legal := gen.Make(b, m)
		if legal {
			sum += recurse(b, gen, buf, tt, depth-1)
		}
		gen.Unmake(b, m)
	}
	buf.RestoreCursor(start)

	tt.Put(b.Hash(), depth, sum)
	return sum
}

// Perft parses fen and counts the perft nodes at depth using a single
// goroutine, a fresh move buffer, and a fresh transposition cache sized at
// DefaultCacheBits.
func Perft(fen string, depth int) (uint64, error) {
	return PerftWithCacheBits(fen, depth, DefaultCacheBits)
}

// PerftWithCacheBits is Perft with an explicit transposition table size.
func PerftWithCacheBits(fen string, depth int, cacheBits int) (uint64, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return 0, err
	}
	return CountBoard(b, depth, cacheBits), nil
}

// CountBoard runs the single-threaded counter directly on an already
// parsed board, constructing its own generator, move buffer and
// transposition cache.
func CountBoard(b *board.Board, depth int, cacheBits int) uint64 {
	gen := board.NewMoveGenerator()
	buf := board.NewMoveBuffer()
	tt := cache.New(cacheBits)
	return recurse(b, gen, buf, tt, depth)
}

// Options configures the parallel root fan-out.
type Options struct {
	// Workers bounds the number of concurrently running root-move
	// subtrees. Zero or negative means runtime.NumCPU().
	Workers int
	// CacheBits sizes each worker's own transposition table. Zero means
	// DefaultCacheBits.
	CacheBits int
}

// Parallel fans the root moves of fen out across goroutines: moves are
// generated sequentially at the root, and for each legal move a worker
// receives a deep copy of the post-move board plus its own move buffer and
// transposition table, and recurses independently. No worker shares any
// mutable state with another worker or with the root — the only
// cross-goroutine operation is errgroup's join.
func Parallel(ctx context.Context, fen string, depth int, opts Options) (uint64, error) {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.CacheBits <= 0 {
		opts.CacheBits = DefaultCacheBits
	}

	root, err := board.ParseFEN(fen)
	if err != nil {
		return 0, err
	}
	if depth == 0 {
		return 1, nil
	}

	gen := board.NewMoveGenerator()
	buf := board.NewMoveBuffer()

	start := buf.Len()
	gen.Generate(root, buf)
	end := buf.Len()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Workers)

	results := make([]uint64, end-start)
	for i := start; i < end; i++ {
		m := buf.Get(i)
		legal := gen.Make(root, m)
		if legal {
			child := root.Copy()
			slot := i - start
			cacheBits := opts.CacheBits
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				childGen := board.NewMoveGenerator()
				childBuf := board.NewMoveBuffer()
				childTT := cache.New(cacheBits)
				results[slot] = recurse(child, childGen, childBuf, childTT, depth-1)
				return nil
			})
		}
		gen.Unmake(root, m)
	}
	buf.RestoreCursor(start)

	if err := group.Wait(); err != nil {
		return 0, err
	}

	var total uint64
	for _, r := range results {
		total += r
	}
	return total, nil
}
