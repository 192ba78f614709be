package board

import "fmt"

// Move packs a chess move into 19 bits, laid out high to low as: 1 bit
// en-passant special | 3 bits promoted dignity | 3 bits captured dignity |
// 6 bits to-square | 6 bits from-square.
type Move uint32

const (
	moveFromShift      = 0
	moveToShift        = 6
	moveCapturedShift  = 12
	movePromotedShift  = 15
	moveSpecialShift   = 18
	moveSquareMask     = 0x3F
	moveDignityMask    = 0x7
	moveSpecialEnPassant Move = 1 << moveSpecialShift
)

// NoMove is the null/invalid move.
const NoMove Move = 0

// NewMove builds a quiet, non-capturing, non-promoting move.
func NewMove(from, to Square) Move {
	return Move(from)<<moveFromShift | Move(to)<<moveToShift
}

// NewCapture builds a move that captures a piece of the given dignity.
// captured must not be NoDignity.
func NewCapture(from, to Square, captured Dignity) Move {
	if debugAssertions && captured == NoDignity {
		panic("board: NewCapture requires a non-empty captured dignity")
	}
	return NewMove(from, to) | Move(captured)<<moveCapturedShift
}

// NewPromotion builds a non-capturing promotion. promoted must not be
// NoDignity, and from/to must sit on the {2→1} or {7→8} rank pair.
func NewPromotion(from, to Square, promoted Dignity) Move {
	if debugAssertions {
		assertPromotionRanks(from, to)
		if promoted == NoDignity {
			panic("board: NewPromotion requires a non-empty promoted dignity")
		}
	}
	return NewMove(from, to) | Move(promoted)<<movePromotedShift
}

// NewPromotionCapture builds a capturing promotion.
func NewPromotionCapture(from, to Square, captured, promoted Dignity) Move {
	if debugAssertions {
		assertPromotionRanks(from, to)
		if captured == NoDignity || promoted == NoDignity {
			panic("board: NewPromotionCapture requires non-empty dignities")
		}
	}
	return NewMove(from, to) | Move(captured)<<moveCapturedShift | Move(promoted)<<movePromotedShift
}

// NewEnPassant builds an en-passant capture. The captured piece is always a
// pawn; only en-passant sets the special bit.
func NewEnPassant(from, to Square) Move {
	return NewMove(from, to) | Move(Pawn)<<moveCapturedShift | moveSpecialEnPassant
}

func assertPromotionRanks(from, to Square) {
	blackOK := from.Rank() == Rank2 && to.Rank() == Rank1
	whiteOK := from.Rank() == Rank7 && to.Rank() == Rank8
	if !blackOK && !whiteOK {
		panic("board: promotion move must run rank 2->1 or rank 7->8")
	}
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m>>moveFromShift) & moveSquareMask
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m>>moveToShift) & moveSquareMask
}

// CapturedDignity returns the captured piece's dignity, or NoDignity if the
// move is not a capture.
func (m Move) CapturedDignity() Dignity {
	return Dignity(m>>moveCapturedShift) & moveDignityMask
}

// PromotedDignity returns the promoted-to dignity, or NoDignity if the move
// is not a promotion.
func (m Move) PromotedDignity() Dignity {
	return Dignity(m>>movePromotedShift) & moveDignityMask
}

// IsEnPassant reports whether this is an en-passant capture.
func (m Move) IsEnPassant() bool {
	return m&moveSpecialEnPassant != 0
}

// IsCapture reports whether this move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m.CapturedDignity() != NoDignity
}

// IsPromotion reports whether this move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.PromotedDignity() != NoDignity
}

// IsKingSideCastling reports whether this move is a king-side castle, given
// the dignity of the piece making the move (only a king move from the
// e-file to the g-file counts).
func (m Move) IsKingSideCastling(moverDignity Dignity) bool {
	return moverDignity == King && m.From().File() == FileE && m.To().File() == FileG
}

// IsQueenSideCastling reports whether this move is a queen-side castle.
func (m Move) IsQueenSideCastling(moverDignity Dignity) bool {
	return moverDignity == King && m.From().File() == FileE && m.To().File() == FileC
}

// String returns the UCI-style form of the move, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.PromotedDignity().Char())
	}
	return s
}

// GoString supports %#v / debugger inspection with a bit-transparent view.
func (m Move) GoString() string {
	return fmt.Sprintf("Move(%s captured=%s promoted=%s ep=%v)",
		m.String(), m.CapturedDignity(), m.PromotedDignity(), m.IsEnPassant())
}

// MoveBufferCapacity bounds MoveBuffer, matching the reference engine's
// per-ply upper bound on legal-move count with headroom.
const MoveBufferCapacity = 500

// MoveBuffer is a fixed-capacity stack of moves shared across recursion
// depths: each depth appends its pseudo-legal moves, then restores the
// cursor to the position it found on entry, so no allocation happens during
// search.
type MoveBuffer struct {
	moves  [MoveBufferCapacity]Move
	cursor int
}

// NewMoveBuffer returns an empty move buffer.
func NewMoveBuffer() *MoveBuffer {
	return &MoveBuffer{}
}

// Len returns the current cursor position (the number of live moves).
func (b *MoveBuffer) Len() int {
	return b.cursor
}

// Add appends a move, growing the cursor.
func (b *MoveBuffer) Add(m Move) {
	if debugAssertions && b.cursor >= MoveBufferCapacity {
		panic("board: move buffer capacity exceeded")
	}
	b.moves[b.cursor] = m
	b.cursor++
}

// Get returns the move at index i.
func (b *MoveBuffer) Get(i int) Move {
	return b.moves[i]
}

// RestoreCursor resets the cursor to a previously observed value, discarding
// everything appended since.
func (b *MoveBuffer) RestoreCursor(cursor int) {
	b.cursor = cursor
}
