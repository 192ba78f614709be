package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFENStartingPosition(t *testing.T) {
	b, err := ParseFEN(StartFEN)
	require.NoError(t, err)

	assert.Equal(t, White, b.SideToMove())
	assert.Equal(t, AllCastling, b.CastlingRights())
	assert.Equal(t, NoFile, b.EnPassantFile())
	assert.Equal(t, 0, b.HalfmoveClock())
	assert.Equal(t, NewPiece(White, Rook), b.PieceAt(A1))
	assert.Equal(t, NewPiece(Black, King), b.PieceAt(E8))
	assert.Equal(t, NoPiece, b.PieceAt(E4))
}

func TestFENRoundTrip(t *testing.T) {
	cases := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 1",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1",
	}

	for _, fen := range cases {
		b, err := ParseFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, b.FEN(), "round trip of %q", fen)
	}
}

func TestFENDiscardsFullmoveCounter(t *testing.T) {
	b, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 57")
	require.NoError(t, err)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", b.FEN())
}

func TestFENElidesLeadingZerosOnHalfmoveClock(t *testing.T) {
	b, err := ParseFEN("8/8/8/8/8/8/8/K6k w - - 07 1")
	require.NoError(t, err)
	assert.Contains(t, b.FEN(), " 7 1")
}

func TestParseFENRejectsWrongFieldCount(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	assert.Error(t, err)
}

func TestParseFENRejectsBadPlacement(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1")
	assert.Error(t, err)
}

func TestParseFENRejectsInconsistentEnPassantRank(t *testing.T) {
	// White to move but en-passant target on rank 3 (should be rank 6).
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq a3 0 1")
	assert.Error(t, err)
}

func TestParseFENRejectsOutOfBoundsHalfmoveClock(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 1000 1")
	assert.Error(t, err)
}

func TestParseFENRejectsLengthOutOfBounds(t *testing.T) {
	_, err := ParseFEN("w")
	assert.Error(t, err)
}

func TestMustParseFENPanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		MustParseFEN("garbage")
	})
}
