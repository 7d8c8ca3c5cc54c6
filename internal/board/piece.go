package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// PieceType represents the kind of a chess piece.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	InvalidPieceType // unrecognized FEN letter or off-board cell
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case NoPieceType:
		return "None"
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "Invalid"
	}
}

// Piece combines a PieceType and a Color.
// NoPiece and ErrorPiece always carry White so that equal pieces compare equal.
type Piece struct {
	Type  PieceType
	Color Color
}

var (
	NoPiece    = Piece{Type: NoPieceType}
	ErrorPiece = Piece{Type: InvalidPieceType}

	WhitePawn   = Piece{Pawn, White}
	WhiteKnight = Piece{Knight, White}
	WhiteBishop = Piece{Bishop, White}
	WhiteRook   = Piece{Rook, White}
	WhiteQueen  = Piece{Queen, White}
	WhiteKing   = Piece{King, White}
	BlackPawn   = Piece{Pawn, Black}
	BlackKnight = Piece{Knight, Black}
	BlackBishop = Piece{Bishop, Black}
	BlackRook   = Piece{Rook, Black}
	BlackQueen  = Piece{Queen, Black}
	BlackKing   = Piece{King, Black}
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	if pt >= InvalidPieceType || c > Black {
		return ErrorPiece
	}
	return Piece{Type: pt, Color: c}
}

// IsEmpty reports whether the piece is NoPiece.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// IsError reports whether the piece is the error sentinel.
func (p Piece) IsError() bool {
	return p.Type == InvalidPieceType
}

// letters maps FEN letters to pieces. Bytes not listed decode to ErrorPiece.
var letters = map[byte]Piece{
	'P': WhitePawn,
	'N': WhiteKnight,
	'B': WhiteBishop,
	'R': WhiteRook,
	'Q': WhiteQueen,
	'K': WhiteKing,
	'p': BlackPawn,
	'n': BlackKnight,
	'b': BlackBishop,
	'r': BlackRook,
	'q': BlackQueen,
	'k': BlackKing,
	'e': ErrorPiece,
	'0': NoPiece,
}

// glyphs maps pieces to the symbols used by Render.
var glyphs = map[Piece]string{
	WhitePawn:   "♟︎",
	WhiteKnight: "♞",
	WhiteBishop: "♝",
	WhiteRook:   "♜",
	WhiteQueen:  "♛",
	WhiteKing:   "♚",
	BlackPawn:   "♙",
	BlackKnight: "♘",
	BlackBishop: "♗",
	BlackRook:   "♖",
	BlackQueen:  "♕",
	BlackKing:   "♔",
	ErrorPiece:  "e",
	NoPiece:     "　",
}

// PieceFromLetter converts a FEN letter to a Piece.
// Unrecognized letters yield ErrorPiece.
func PieceFromLetter(c byte) Piece {
	if p, ok := letters[c]; ok {
		return p
	}
	return ErrorPiece
}

// Letter returns the FEN letter for the piece.
// Uppercase for white, lowercase for black, 'e' for ErrorPiece and '0' for NoPiece.
func (p Piece) Letter() byte {
	switch p {
	case NoPiece:
		return '0'
	case ErrorPiece:
		return 'e'
	}
	if p.Type < Pawn || p.Type > King {
		return 'E'
	}
	c := "pnbrqk"[p.Type-Pawn]
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

// String returns the FEN letter for the piece.
func (p Piece) String() string {
	return string(p.Letter())
}

// Glyph returns the display symbol for the piece.
func (p Piece) Glyph() string {
	if g, ok := glyphs[p]; ok {
		return g
	}
	return "E"
}
