package board

// pieceSquareHash holds one 64-bit constant per (Piece, Square) pair, indexed
// directly by the packed Piece value (0..15) and the square (0..63). Only
// rows 1..6 (black pieces) and 9..14 (white pieces) are ever looked up by
// PieceAt/SetPiece — rows 0, 7, 8 and 15 can never be produced by NewPiece,
// so their columns are repurposed as fixed tables for the position features
// that Board.Hash derives on read rather than carries incrementally: row 0
// for the en-passant file, row 7 for the castling-rights mask, row 8 for the
// side to move. This follows the same "spare rows of the piece/square table"
// trick the reference engine's transposition table uses.
var pieceSquareHash [16][64]uint64

// zobristSeed is fixed so that hashes are reproducible across runs and
// across the round-trip tests in this package.
const zobristSeed uint64 = 0x98F107A2BEEF1234

// zobristPRNG is xorshift64* — fast, adequate statistical quality for table
// generation, never used for anything security-sensitive.
type zobristPRNG struct {
	state uint64
}

func (r *zobristPRNG) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 0x2545F4914F6CDD1D
}

func init() {
	rng := zobristPRNG{state: zobristSeed}
	for piece := 0; piece < 16; piece++ {
		for sq := 0; sq < 64; sq++ {
			pieceSquareHash[piece][sq] = rng.next()
		}
	}
}

// pieceHash returns the placement contribution of p sitting on sq.
func pieceHash(p Piece, sq Square) uint64 {
	return pieceSquareHash[p][sq]
}

// sideToMoveContribution returns the hash contribution for c being the side
// to move. It is present only for Black, so that White to move contributes
// nothing for this feature — required for the empty-board/White-to-move/
// no-rights/no-en-passant baseline to hash to zero.
func sideToMoveContribution(c Color) uint64 {
	if c == Black {
		return pieceSquareHash[8][0]
	}
	return 0
}

// enPassantFileContribution returns the hash contribution for the given
// en-passant file, or 0 if there is none.
func enPassantFileContribution(f File) uint64 {
	if f == NoFile {
		return 0
	}
	return pieceSquareHash[0][f]
}

// castlingRightsContribution returns the hash contribution for the given
// castling rights mask, or 0 if no rights remain.
func castlingRightsContribution(cr CastlingRights) uint64 {
	if cr == NoCastling {
		return 0
	}
	return pieceSquareHash[7][cr]
}
