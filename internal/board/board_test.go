package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyBoardIsEmpty(t *testing.T) {
	b := NewEmptyBoard()
	for sq := Square(0); sq < 64; sq++ {
		assert.True(t, b.PieceAt(sq).IsEmpty())
	}
	assert.Equal(t, White, b.SideToMove())
	assert.Equal(t, uint64(0), b.Hash())
}

func TestSetPiecePanicsOnOccupiedSquare(t *testing.T) {
	b := NewEmptyBoard()
	b.SetPiece(E4, NewPiece(White, Queen))
	assert.Panics(t, func() {
		b.SetPiece(E4, NewPiece(Black, Pawn))
	})
}

func TestRemovePiecePanicsOnEmptySquare(t *testing.T) {
	b := NewEmptyBoard()
	assert.Panics(t, func() {
		b.RemovePiece(E4)
	})
}

func TestSetPieceUpdatesHashAndInverse(t *testing.T) {
	b := NewEmptyBoard()
	before := b.Hash()
	b.SetPieceUnchecked(D5, NewPiece(Black, Knight))
	assert.NotEqual(t, before, b.Hash())
	b.RemovePiece(D5)
	assert.Equal(t, before, b.Hash())
}

func TestPushPopUndoRestoresScopedState(t *testing.T) {
	b := NewEmptyBoard()
	b.castlingStack[0] = AllCastling
	b.SetEnPassantFile(FileC)
	b.halfmoveStack[0] = 3

	b.PushUndo()
	assert.Equal(t, AllCastling, b.CastlingRights(), "castling carries forward")
	assert.Equal(t, NoFile, b.EnPassantFile(), "en passant does not carry forward")
	assert.Equal(t, 3, b.HalfmoveClock(), "halfmove clock carries forward")

	b.DisallowCastling(WhiteKingSide)
	b.SetEnPassantFile(FileE)
	b.IncrementHalfmoveClock()

	b.PopUndo()
	assert.Equal(t, AllCastling, b.CastlingRights())
	assert.Equal(t, FileC, b.EnPassantFile())
	assert.Equal(t, 3, b.HalfmoveClock())
}

func TestHashDiffersBySideToMove(t *testing.T) {
	white := MustParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	black := MustParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	assert.NotEqual(t, white.Hash(), black.Hash())
}

func TestHashDiffersByEnPassantFile(t *testing.T) {
	a := MustParseFEN("rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq - 0 1")
	b := MustParseFEN("rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1")
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestHashDiffersByCastlingRights(t *testing.T) {
	a := MustParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	b := MustParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestValidateRejectsMissingKing(t *testing.T) {
	b := NewEmptyBoard()
	b.SetPiece(E1, NewPiece(White, King))
	require.Error(t, b.Validate())
}

func TestValidateRejectsPawnOnBackRank(t *testing.T) {
	b := NewEmptyBoard()
	b.SetPiece(E1, NewPiece(White, King))
	b.SetPiece(E8, NewPiece(Black, King))
	b.SetPiece(A1, NewPiece(White, Pawn))
	require.Error(t, b.Validate())
}

func TestValidateAcceptsStartingPosition(t *testing.T) {
	b := MustParseFEN(StartFEN)
	assert.NoError(t, b.Validate())
}

func TestCopyIsIndependent(t *testing.T) {
	b := MustParseFEN(StartFEN)
	cp := b.Copy()
	cp.SetEnPassantFile(FileD)
	cp.DisallowCastling(WhiteKingSide)
	assert.NotEqual(t, b.EnPassantFile(), cp.EnPassantFile())
	assert.NotEqual(t, b.CastlingRights(), cp.CastlingRights())
}

func TestEqual(t *testing.T) {
	a := MustParseFEN(StartFEN)
	b := MustParseFEN(StartFEN)
	assert.True(t, a.Equal(b))

	b.SetEnPassantFile(FileA)
	assert.False(t, a.Equal(b))
}
