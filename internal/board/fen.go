package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is wrapped by every error ParseFEN returns.
var ErrInvalidFEN = errors.New("invalid FEN")

// ParseFEN parses a FEN string into a new Board.
func ParseFEN(fen string) (*Board, error) {
	b := NewBoard()
	if err := b.parse(fen); err != nil {
		return nil, err
	}
	return b, nil
}

// Parse resets the board and loads the FEN string into it.
// It returns false on a syntax error; the board is then left partially filled.
func (b *Board) Parse(fen string) bool {
	return b.parse(fen) == nil
}

// fenReader walks a FEN string byte by byte. peek returns 0 at the end.
type fenReader struct {
	s   string
	pos int
}

func (r *fenReader) peek() byte {
	if r.pos >= len(r.s) {
		return 0
	}
	return r.s[r.pos]
}

func (r *fenReader) next() byte {
	c := r.peek()
	if c != 0 {
		r.pos++
	}
	return c
}

func (r *fenReader) expectSpace(after string) error {
	if c := r.next(); c != ' ' {
		return fmt.Errorf("%w: expected space after %s, got %q", ErrInvalidFEN, after, c)
	}
	return nil
}

func (b *Board) parse(fen string) error {
	b.Reset()
	r := &fenReader{s: fen}

	if err := b.parsePlacement(r); err != nil {
		return err
	}
	if err := r.expectSpace("piece placement"); err != nil {
		return err
	}

	// Side to move
	switch c := r.next(); c {
	case 'w':
		b.SideToMove = White
	case 'b':
		b.SideToMove = Black
	default:
		return fmt.Errorf("%w: invalid side to move %q", ErrInvalidFEN, c)
	}
	if err := r.expectSpace("side to move"); err != nil {
		return err
	}

	if err := b.parseCastling(r); err != nil {
		return err
	}
	if err := r.expectSpace("castling rights"); err != nil {
		return err
	}

	// En passant
	if r.peek() == '-' {
		r.next()
		b.EnPassant = NoSquare
	} else {
		f, rk := r.next(), r.next()
		sq, err := squareFromBytes(f, rk)
		if err != nil {
			return fmt.Errorf("%w: en passant: %v", ErrInvalidFEN, err)
		}
		b.EnPassant = sq
	}
	if err := r.expectSpace("en passant square"); err != nil {
		return err
	}

	hmc, rest, err := leadingInt(r.s[r.pos:])
	if err != nil {
		return fmt.Errorf("%w: half-move clock: %v", ErrInvalidFEN, err)
	}
	fmn, _, err := leadingInt(rest)
	if err != nil {
		return fmt.Errorf("%w: full-move number: %v", ErrInvalidFEN, err)
	}
	b.HalfMoveClock = hmc
	b.FullMoveNumber = fmn

	return nil
}

// parsePlacement reads the piece placement field up to, not including, the first space.
// Digit runs add up without clamping; a piece that would land outside the 8x8 area
// is rejected.
func (b *Board) parsePlacement(r *fenReader) error {
	row, file := 0, 0
	for {
		c := r.peek()
		switch {
		case c == 0:
			return fmt.Errorf("%w: piece placement not terminated", ErrInvalidFEN)
		case c == ' ':
			return nil
		case c == '/':
			row++
			file = 0
		case c >= '0' && c <= '9':
			file += int(c - '0')
		default:
			if row > 7 || file > 7 {
				return fmt.Errorf("%w: piece %q outside the board (file %d, rank %d)", ErrInvalidFEN, c, file+1, row+1)
			}
			b.addPiece(file, row, PieceFromLetter(c))
			file++
		}
		r.next()
	}
}

// parseCastling reads '-' or any run of KQkq. Other bytes in the run are ignored.
func (b *Board) parseCastling(r *fenReader) error {
	b.Castling = NoCastling
	if r.peek() == '-' {
		r.next()
		return nil
	}
	for r.peek() != ' ' {
		c := r.next()
		if c == 0 {
			return fmt.Errorf("%w: castling rights not terminated", ErrInvalidFEN)
		}
		for _, cl := range castlingLetters {
			if c == cl.letter {
				b.Castling = b.Castling.Set(cl.right)
			}
		}
	}
	return nil
}

// leadingInt parses a base-10 integer at the start of s, skipping leading
// whitespace and an optional '+'. It returns the value and the unread remainder.
func leadingInt(s string) (int, string, error) {
	s = strings.TrimLeft(s, " \t")
	i := 0
	if i < len(s) && s[i] == '+' {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, s, errors.New("no digits")
	}
	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, s, err
	}
	return n, s[i:], nil
}

// ToFEN returns the FEN representation of the board.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	// Piece placement
	for row := 0; row < 8; row++ {
		empty := 0
		for _, piece := range b.Rank(row) {
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if b.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.Castling.String())

	sb.WriteByte(' ')
	sb.WriteString(b.EnPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FullMoveNumber))

	return sb.String()
}

// Render returns the board as eight lines of piece glyphs, first FEN rank on top.
func (b *Board) Render() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for _, piece := range b.Rank(row) {
			sb.WriteString(piece.Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
