package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the canonical starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// minFENLength and maxFENLength bound the accepted input buffer.
const (
	minFENLength = 24
	maxFENLength = 90
)

// ParseFEN parses a FEN-like position record into a Board. It rejects
// malformed input with an error rather than the core engine's usual
// contract-violation/panic convention, since text coming from outside the
// process (a CLI flag, a conformance-suite file) is exactly the boundary
// where Go idiom calls for an error return instead of a precondition.
// Once a *Board exists, every other operation in this package trusts it.
func ParseFEN(s string) (*Board, error) {
	if len(s) < minFENLength || len(s) > maxFENLength {
		return nil, fmt.Errorf("board: FEN length %d out of bounds [%d,%d]", len(s), minFENLength, maxFENLength)
	}

	fields := strings.Fields(s)
	if len(fields) != 6 {
		return nil, fmt.Errorf("board: FEN has %d fields, want 6", len(fields))
	}

	b := NewEmptyBoard()

	if err := parsePlacement(b, fields[0]); err != nil {
		return nil, err
	}

	side, err := parseActiveColor(fields[1])
	if err != nil {
		return nil, err
	}
	b.sideToMove = side

	rights, err := parseCastlingRights(fields[2])
	if err != nil {
		return nil, err
	}
	b.castlingStack[0] = rights

	epFile, err := parseEnPassant(fields[3], side)
	if err != nil {
		return nil, err
	}
	b.epFileStack[0] = epFile

	halfmove, err := parseHalfmoveClock(fields[4])
	if err != nil {
		return nil, err
	}
	b.halfmoveStack[0] = halfmove

	if _, err := parseFullmoveCounter(fields[5]); err != nil {
		return nil, err
	}

	return b, nil
}

// MustParseFEN parses s and panics on error. Intended for call sites that
// already know the input is well-formed: the conformance-suite table, the
// CLI's built-in starting position.
func MustParseFEN(s string) *Board {
	b, err := ParseFEN(s)
	if err != nil {
		panic(err)
	}
	return b
}

func parsePlacement(b *Board, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("board: placement has %d ranks, want 8", len(ranks))
	}

	for i, rankField := range ranks {
		rank := Rank((7 - i) << 3)
		file := 0
		for j := 0; j < len(rankField); j++ {
			c := rankField[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := pieceFromChar(c)
			if piece == NoPiece {
				return fmt.Errorf("board: invalid placement character %q", c)
			}
			if file > 7 {
				return fmt.Errorf("board: rank %q overflows 8 files", rankField)
			}
			b.SetPieceUnchecked(NewSquare(File(file), rank), piece)
			file++
		}
		if file != 8 {
			return fmt.Errorf("board: rank %q does not sum to 8 files", rankField)
		}
	}
	return nil
}

func parseActiveColor(field string) (Color, error) {
	switch field {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	default:
		return NoColor, fmt.Errorf("board: invalid active color %q", field)
	}
}

func parseCastlingRights(field string) (CastlingRights, error) {
	if field == "-" {
		return NoCastling, nil
	}
	var rights CastlingRights
	for i := 0; i < len(field); i++ {
		right := castlingRightFromChar(field[i])
		if right == NoCastling {
			return NoCastling, fmt.Errorf("board: invalid castling rights character %q", field[i])
		}
		rights |= right
	}
	return rights, nil
}

func parseEnPassant(field string, sideToMove Color) (File, error) {
	if field == "-" {
		return NoFile, nil
	}
	sq, err := ParseSquare(field)
	if err != nil {
		return NoFile, fmt.Errorf("board: invalid en-passant target %q", field)
	}
	wantRank := Rank3
	if sideToMove == White {
		wantRank = Rank6
	}
	if sq.Rank() != wantRank {
		return NoFile, fmt.Errorf("board: en-passant target %q inconsistent with side to move", field)
	}
	return sq.File(), nil
}

func parseHalfmoveClock(field string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil || v < 0 || v > 999 {
		return 0, fmt.Errorf("board: invalid halfmove clock %q", field)
	}
	return v, nil
}

func parseFullmoveCounter(field string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("board: invalid fullmove counter %q", field)
	}
	return v, nil
}

// FEN formats b in canonical form: halfmove clock without leading zeros,
// fullmove counter always emitted as 1 (it is parsed-and-discarded on
// input, so there is nothing else to round-trip it from).
func (b *Board) FEN() string {
	var sb strings.Builder

	for i := 0; i < 8; i++ {
		if i > 0 {
			sb.WriteByte('/')
		}
		rank := Rank((7 - i) << 3)
		empties := 0
		for file := 0; file < 8; file++ {
			p := b.squares[NewSquare(File(file), rank)]
			if p.IsEmpty() {
				empties++
				continue
			}
			if empties > 0 {
				sb.WriteByte('0' + byte(empties))
				empties = 0
			}
			sb.WriteByte(p.Char())
		}
		if empties > 0 {
			sb.WriteByte('0' + byte(empties))
		}
	}

	sb.WriteByte(' ')
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.CastlingRights().String())

	sb.WriteByte(' ')
	epFile := b.EnPassantFile()
	if epFile == NoFile {
		sb.WriteByte('-')
	} else {
		rank := Rank3
		if b.sideToMove == White {
			rank = Rank6
		}
		sb.WriteString(NewSquare(epFile, rank).String())
	}

	fmt.Fprintf(&sb, " %d 1", b.HalfmoveClock())

	return sb.String()
}
