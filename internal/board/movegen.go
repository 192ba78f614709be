package board

// MoveGenerator produces pseudo-legal moves and applies/reverses them on a
// Board with a post-make legality check. It carries no state of its own —
// every method takes the Board and, where relevant, a MoveBuffer — so a
// single MoveGenerator value can be shared across goroutines so long as
// each goroutine brings its own Board and MoveBuffer.
type MoveGenerator struct{}

// NewMoveGenerator returns a stateless move generator.
func NewMoveGenerator() *MoveGenerator {
	return &MoveGenerator{}
}

var promotionDignities = [4]Dignity{Knight, Bishop, Rook, Queen}

var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var bishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirections = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Generate appends every pseudo-legal move of the side to move to buf.
func (g *MoveGenerator) Generate(b *Board, buf *MoveBuffer) {
	us := b.SideToMove()
	for sq := Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p.IsEmpty() || p.Color() != us {
			continue
		}
		switch p.Dignity() {
		case Pawn:
			g.generatePawn(b, sq, us, buf)
		case Knight:
			g.generateOffsets(b, sq, us, knightOffsets[:], buf)
		case Bishop:
			g.generateSliding(b, sq, us, bishopDirections[:], buf)
		case Rook:
			g.generateSliding(b, sq, us, rookDirections[:], buf)
		case Queen:
			g.generateSliding(b, sq, us, bishopDirections[:], buf)
			g.generateSliding(b, sq, us, rookDirections[:], buf)
		case King:
			g.generateOffsets(b, sq, us, kingOffsets[:], buf)
			g.generateCastling(b, sq, us, buf)
		}
	}
}

func (g *MoveGenerator) generatePawn(b *Board, sq Square, us Color, buf *MoveBuffer) {
	dy := us.PawnDirection()
	promoRank := us.PromotionRank()

	if one := sq.by(0, dy); one.IsValid() && b.PieceAt(one).IsEmpty() {
		if one.Rank() == promoRank {
			for _, d := range promotionDignities {
				buf.Add(NewPromotion(sq, one, d))
			}
		} else {
			buf.Add(NewMove(sq, one))
			if sq.Rank() == us.PawnStartRank() {
				if two := sq.by(0, 2*dy); two.IsValid() && b.PieceAt(two).IsEmpty() {
					buf.Add(NewMove(sq, two))
				}
			}
		}
	}

	them := us.Other()
	epRank := Rank3
	if us == White {
		epRank = Rank6
	}
	for _, dx := range [2]int{-1, 1} {
		target := sq.by(dx, dy)
		if !target.IsValid() {
			continue
		}
		victim := b.PieceAt(target)
		if !victim.IsEmpty() {
			if victim.Color() != them {
				continue
			}
			if target.Rank() == promoRank {
				for _, d := range promotionDignities {
					buf.Add(NewPromotionCapture(sq, target, victim.Dignity(), d))
				}
			} else {
				buf.Add(NewCapture(sq, target, victim.Dignity()))
			}
		} else if target.File() == b.EnPassantFile() && target.Rank() == epRank {
			buf.Add(NewEnPassant(sq, target))
		}
	}
}

func (g *MoveGenerator) generateOffsets(b *Board, sq Square, us Color, offsets [][2]int, buf *MoveBuffer) {
	for _, o := range offsets {
		target := sq.by(o[0], o[1])
		if !target.IsValid() {
			continue
		}
		victim := b.PieceAt(target)
		if victim.IsEmpty() {
			buf.Add(NewMove(sq, target))
		} else if victim.Color() != us {
			buf.Add(NewCapture(sq, target, victim.Dignity()))
		}
	}
}

func (g *MoveGenerator) generateSliding(b *Board, sq Square, us Color, dirs [][2]int, buf *MoveBuffer) {
	for _, d := range dirs {
		target := sq
		for {
			target = target.by(d[0], d[1])
			if !target.IsValid() {
				break
			}
			victim := b.PieceAt(target)
			if victim.IsEmpty() {
				buf.Add(NewMove(sq, target))
				continue
			}
			if victim.Color() != us {
				buf.Add(NewCapture(sq, target, victim.Dignity()))
			}
			break
		}
	}
}

// generateCastling emits the castling move(s) available from the king's
// initial square. It does not check whether the king's start, crossed, or
// destination squares are attacked — that is Make's post-condition legality
// check, not the generator's job.
func (g *MoveGenerator) generateCastling(b *Board, sq Square, us Color, buf *MoveBuffer) {
	if sq != NewSquare(FileE, us.StartRank()) {
		return
	}
	rights := b.CastlingRights()
	rank := us.StartRank()

	if rights.Has(us.KingSide()) {
		kingDest := NewSquare(FileG, rank)
		rookDest := NewSquare(FileF, rank)
		rookSq := NewSquare(FileH, rank)
		if b.PieceAt(kingDest).IsEmpty() && b.PieceAt(rookDest).IsEmpty() &&
			b.PieceAt(rookSq) == NewPiece(us, Rook) {
			buf.Add(NewMove(sq, kingDest))
		}
	}

	if rights.Has(us.QueenSide()) {
		kingDest := NewSquare(FileC, rank)
		rookDest := NewSquare(FileD, rank)
		passSquare := NewSquare(FileB, rank)
		rookSq := NewSquare(FileA, rank)
		if b.PieceAt(kingDest).IsEmpty() && b.PieceAt(rookDest).IsEmpty() &&
			b.PieceAt(passSquare).IsEmpty() && b.PieceAt(rookSq) == NewPiece(us, Rook) {
			buf.Add(NewMove(sq, kingDest))
		}
	}
}

// Make applies m to b: determines the moving piece, resolves en-passant or
// ordinary capture removal, places the moved (or promoted) piece, relocates
// the rook on castling, pushes the undo frame, updates castling rights,
// en-passant file and halfmove clock, swaps the side to move, and reports
// whether the resulting position is legal. An illegal Make still leaves b in
// a well-formed state; the caller must still call Unmake to restore it.
func (g *MoveGenerator) Make(b *Board, m Move) bool {
	from, to := m.From(), m.To()
	mover := b.PieceAt(from)
	moverDignity := mover.Dignity()
	us := mover.Color()
	them := us.Other()

	placedDignity := moverDignity
	if m.IsPromotion() {
		placedDignity = m.PromotedDignity()
	}

	if m.IsEnPassant() {
		victimSq := NewSquare(to.File(), from.Rank())
		b.RemovePiece(victimSq)
	} else if m.IsCapture() {
		if debugAssertions {
			destPiece := b.PieceAt(to)
			if destPiece.Dignity() != m.CapturedDignity() || destPiece.Color() != them {
				panic("board: captured-dignity claim does not match destination piece")
			}
		}
		b.RemovePiece(to)
	}

	b.RemovePiece(from)
	b.SetPieceUnchecked(to, NewPiece(us, placedDignity))

	if m.IsKingSideCastling(moverDignity) {
		rank := us.StartRank()
		rook := b.RemovePiece(NewSquare(FileH, rank))
		b.SetPieceUnchecked(NewSquare(FileF, rank), rook)
	} else if m.IsQueenSideCastling(moverDignity) {
		rank := us.StartRank()
		rook := b.RemovePiece(NewSquare(FileA, rank))
		b.SetPieceUnchecked(NewSquare(FileD, rank), rook)
	}

	b.PushUndo()

	if moverDignity == King {
		b.DisallowCastling(us.KingSide() | us.QueenSide())
	}
	if from == NewSquare(FileA, us.StartRank()) {
		b.DisallowCastling(us.QueenSide())
	} else if from == NewSquare(FileH, us.StartRank()) {
		b.DisallowCastling(us.KingSide())
	}
	// A rook captured on its own starting corner loses the matching right.
	// This fires correctly against a rook that never moved; for one that
	// moved away and back, the right was already cleared above, so the
	// check is harmlessly redundant rather than "tightened" away.
	if to.Rank() == them.StartRank() {
		if to.File() == FileA {
			b.DisallowCastling(them.QueenSide())
		} else if to.File() == FileH {
			b.DisallowCastling(them.KingSide())
		}
	}

	if moverDignity == Pawn && (int(to)-int(from) == 16 || int(from)-int(to) == 16) {
		b.SetEnPassantFile(from.File())
	} else {
		b.UnsetEnPassantFile()
	}

	if m.IsCapture() || moverDignity == Pawn {
		b.ResetHalfmoveClock()
	} else {
		b.IncrementHalfmoveClock()
	}

	b.SwapSideToMove()

	return g.wasLegal(b, m, moverDignity, us)
}

// Unmake reverses m on b. It assumes the immediately preceding call was
// Make(b, m) with no intervening mutation of b.
func (g *MoveGenerator) Unmake(b *Board, m Move) {
	b.SwapSideToMove()
	mover := b.SideToMove()
	opp := mover.Other()

	b.PopUndo()

	from, to := m.From(), m.To()

	placedAtTo := b.PieceAt(to)
	moverDignity := placedAtTo.Dignity()
	if m.IsPromotion() {
		moverDignity = Pawn
	}

	if m.IsPromotion() {
		b.SetPieceUnchecked(from, NewPiece(mover, Pawn))
	} else {
		b.SetPieceUnchecked(from, placedAtTo)
	}

	b.RemovePiece(to)

	if m.IsEnPassant() {
		victimSq := NewSquare(to.File(), from.Rank())
		b.SetPieceUnchecked(victimSq, NewPiece(opp, Pawn))
	} else if m.IsCapture() {
		b.SetPieceUnchecked(to, NewPiece(opp, m.CapturedDignity()))
	}

	if m.IsKingSideCastling(moverDignity) {
		rank := mover.StartRank()
		rook := b.RemovePiece(NewSquare(FileF, rank))
		b.SetPieceUnchecked(NewSquare(FileH, rank), rook)
	} else if m.IsQueenSideCastling(moverDignity) {
		rank := mover.StartRank()
		rook := b.RemovePiece(NewSquare(FileD, rank))
		b.SetPieceUnchecked(NewSquare(FileA, rank), rook)
	}
}

// wasLegal checks the post-make legality condition: the king of the side
// that just moved must not be attackable by the new side to move, and for
// castling the king's start and crossed squares must not be attackable
// either.
func (g *MoveGenerator) wasLegal(b *Board, m Move, moverDignity Dignity, moved Color) bool {
	opp := moved.Other()
	kingSq := b.FindKing(moved)
	if g.CanBeAttacked(b, kingSq, opp) {
		return false
	}

	rank := moved.StartRank()
	if m.IsKingSideCastling(moverDignity) {
		if g.CanBeAttacked(b, m.From(), opp) || g.CanBeAttacked(b, NewSquare(FileF, rank), opp) {
			return false
		}
	} else if m.IsQueenSideCastling(moverDignity) {
		if g.CanBeAttacked(b, m.From(), opp) || g.CanBeAttacked(b, NewSquare(FileD, rank), opp) {
			return false
		}
	}
	return true
}

// CanBeAttacked reports whether attacker has a pseudo-legal move landing on
// target: pawn diagonal attacks projected backwards from target, the eight
// knight offsets, the bishop/queen diagonal rays, the rook/queen
// straight rays, and the eight king offsets — each ray stopping at the
// first non-empty square.
func (g *MoveGenerator) CanBeAttacked(b *Board, target Square, attacker Color) bool {
	back := -attacker.PawnDirection()
	for _, dx := range [2]int{-1, 1} {
		if sq := target.by(dx, back); sq.IsValid() && b.PieceAt(sq) == NewPiece(attacker, Pawn) {
			return true
		}
	}

	for _, o := range knightOffsets {
		if sq := target.by(o[0], o[1]); sq.IsValid() && b.PieceAt(sq) == NewPiece(attacker, Knight) {
			return true
		}
	}

	for _, d := range bishopDirections {
		if g.rayHits(b, target, d, attacker, Bishop, Queen) {
			return true
		}
	}

	for _, d := range rookDirections {
		if g.rayHits(b, target, d, attacker, Rook, Queen) {
			return true
		}
	}

	for _, o := range kingOffsets {
		if sq := target.by(o[0], o[1]); sq.IsValid() && b.PieceAt(sq) == NewPiece(attacker, King) {
			return true
		}
	}

	return false
}

func (g *MoveGenerator) rayHits(b *Board, from Square, dir [2]int, attacker Color, accept ...Dignity) bool {
	sq := from
	for {
		sq = sq.by(dir[0], dir[1])
		if !sq.IsValid() {
			return false
		}
		p := b.PieceAt(sq)
		if p.IsEmpty() {
			continue
		}
		if p.Color() != attacker {
			return false
		}
		for _, d := range accept {
			if p.Dignity() == d {
				return true
			}
		}
		return false
	}
}

// InCheck reports whether the side to move's king is currently attacked.
func (g *MoveGenerator) InCheck(b *Board) bool {
	us := b.SideToMove()
	return g.CanBeAttacked(b, b.FindKing(us), us.Other())
}

// GenerateLegal returns only the legal moves from the current position by
// making and immediately unmaking every pseudo-legal move. It is a
// convenience for callers outside the hot perft path (tests, the
// conformance suite); the perft driver itself interleaves generation with
// make/unmake directly to avoid the double traversal.
func (g *MoveGenerator) GenerateLegal(b *Board, buf *MoveBuffer) []Move {
	start := buf.Len()
	g.Generate(b, buf)
	end := buf.Len()

	legal := make([]Move, 0, end-start)
	for i := start; i < end; i++ {
		m := buf.Get(i)
		if g.Make(b, m) {
			legal = append(legal, m)
		}
		g.Unmake(b, m)
	}
	buf.RestoreCursor(start)
	return legal
}
