// Package board implements a padded-grid chess board and its FEN codec.
package board

import "fmt"

// Square is an address into the padded 10x12 grid.
// A playable square at zero-based file x and one-based row y lives at 11 + 10*y + x,
// so a8=21, h8=28, a1=91, h1=98. Rows follow FEN order: row 1 is rank 8.
type Square uint8

const (
	gridSize = 120
	gridCols = 10

	// NoSquare marks the absence of an en passant target.
	NoSquare Square = 255
)

// NewSquare creates a square from a zero-based file and a one-based row.
func NewSquare(file, row int) Square {
	return Square(11 + gridCols*row + file)
}

// File returns the zero-based file of the square (0=a, 7=h).
func (sq Square) File() int {
	return int(sq)%gridCols - 1
}

// Row returns the one-based grid row of the square (1 is the first FEN rank).
func (sq Square) Row() int {
	return int(sq)/gridCols - 1
}

// Rank returns the chess rank of the square (1-8).
func (sq Square) Rank() int {
	return 9 - sq.Row()
}

// IsValid returns true if the square is one of the 64 playable cells.
func (sq Square) IsValid() bool {
	return sq >= 21 && sq <= 98 && sq%gridCols >= 1 && sq%gridCols <= 8
}

// String returns the algebraic notation for the square (e.g., "e3").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '0'+sq.Rank())
}

// ParseSquare parses algebraic notation (e.g., "e3") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	return squareFromBytes(s[0], s[1])
}

func squareFromBytes(f, r byte) (Square, error) {
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("invalid square: %q", string([]byte{f, r}))
	}
	return NewSquare(int(f-'a'), 9-int(r-'0')), nil
}
