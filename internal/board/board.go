package board

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// castlingLetters lists the flags in FEN order.
var castlingLetters = [4]struct {
	right  CastlingRights
	letter byte
}{
	{WhiteKingSideCastle, 'K'},
	{WhiteQueenSideCastle, 'Q'},
	{BlackKingSideCastle, 'k'},
	{BlackQueenSideCastle, 'q'},
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := make([]byte, 0, 4)
	for _, cl := range castlingLetters {
		if cr&cl.right != 0 {
			s = append(s, cl.letter)
		}
	}
	return string(s)
}

// Has returns true if every flag in r is set.
func (cr CastlingRights) Has(r CastlingRights) bool {
	return cr&r == r
}

// Set returns the rights with r added.
func (cr CastlingRights) Set(r CastlingRights) CastlingRights {
	return cr | r
}

// Clear returns the rights with r removed.
func (cr CastlingRights) Clear(r CastlingRights) CastlingRights {
	return cr &^ r
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr.Has(WhiteKingSideCastle)
		}
		return cr.Has(WhiteQueenSideCastle)
	}
	if kingSide {
		return cr.Has(BlackKingSideCastle)
	}
	return cr.Has(BlackQueenSideCastle)
}

// Board represents a chess position on a padded 10x12 grid.
// The one-cell border around the 8x8 area always holds ErrorPiece.
type Board struct {
	grid [gridSize]Piece

	// Squares holding each exact piece value, in the order Parse met them.
	// The grid is authoritative: Parse rebuilds this index from scratch and
	// Set/Put do not touch it.
	pieces map[Piece][]Square

	// Game state
	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Moves since last pawn move or capture
	FullMoveNumber int    // Full move counter, starts at 1
}

// NewBoard creates an empty board in the default state.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset returns the board to the default state: empty 8x8 area, all castling
// rights, white to move, no en passant target, counters 0 and 1.
func (b *Board) Reset() {
	for i := range b.grid {
		b.grid[i] = ErrorPiece
	}
	for row := 0; row < 8; row++ {
		r := b.Rank(row)
		for file := range r {
			r[file] = NoPiece
		}
	}
	b.pieces = make(map[Piece][]Square)
	b.SideToMove = White
	b.Castling = AllCastling
	b.EnPassant = NoSquare
	b.HalfMoveClock = 0
	b.FullMoveNumber = 1
}

// Rank returns the eight playable cells of a zero-based row (0 is the first FEN rank).
// The slice aliases the grid, so writes through it change the board.
func (b *Board) Rank(row int) []Piece {
	start := int(NewSquare(0, row+1))
	return b.grid[start : start+8 : start+8]
}

// At returns the piece at a zero-based file and row.
func (b *Board) At(file, row int) Piece {
	return b.grid[NewSquare(file, row+1)]
}

// Set places a piece at a zero-based file and row. The piece index is not updated.
func (b *Board) Set(file, row int, p Piece) {
	b.grid[NewSquare(file, row+1)] = p
}

// Get returns the grid cell at a padded address, border cells included.
func (b *Board) Get(sq Square) Piece {
	return b.grid[sq]
}

// Put writes the grid cell at a padded address. The piece index is not updated.
func (b *Board) Put(sq Square, p Piece) {
	b.grid[sq] = p
}

// Squares returns the indexed squares holding p.
func (b *Board) Squares(p Piece) []Square {
	return append([]Square(nil), b.pieces[p]...)
}

// PieceIndex returns a copy of the piece index.
func (b *Board) PieceIndex() map[Piece][]Square {
	idx := make(map[Piece][]Square, len(b.pieces))
	for p, sqs := range b.pieces {
		idx[p] = append([]Square(nil), sqs...)
	}
	return idx
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	nb.pieces = b.PieceIndex()
	return &nb
}

// Equal reports whether two boards hold the same grid, state and piece index.
func (b *Board) Equal(o *Board) bool {
	if b.grid != o.grid ||
		b.SideToMove != o.SideToMove ||
		b.Castling != o.Castling ||
		b.EnPassant != o.EnPassant ||
		b.HalfMoveClock != o.HalfMoveClock ||
		b.FullMoveNumber != o.FullMoveNumber ||
		len(b.pieces) != len(o.pieces) {
		return false
	}
	for p, sqs := range b.pieces {
		other, ok := o.pieces[p]
		if !ok || len(other) != len(sqs) {
			return false
		}
		for i := range sqs {
			if sqs[i] != other[i] {
				return false
			}
		}
	}
	return true
}

// addPiece writes p to the grid and records it in the piece index.
func (b *Board) addPiece(file, row int, p Piece) {
	sq := NewSquare(file, row+1)
	b.grid[sq] = p
	b.pieces[p] = append(b.pieces[p], sq)
}
