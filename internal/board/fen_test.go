package board

import (
	"errors"
	"strings"
	"testing"

	"github.com/corentings/chess/v2"
)

var roundTripFENs = []string{
	StartFEN,
	"8/8/8/8/8/8/8/8 w - - 0 1",
	"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
	"rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 12 40",
	"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 3",
}

func TestParseStartPosition(t *testing.T) {
	b := NewBoard()
	if !b.Parse(StartFEN) {
		t.Fatal("Failed to parse start position")
	}
	t.Log("\n" + b.Render())

	if got := b.ToFEN(); got != StartFEN {
		t.Errorf("ToFEN mismatch:\n got  %s\n want %s", got, StartFEN)
	}
	if b.SideToMove != White {
		t.Errorf("Expected white to move, got %s", b.SideToMove)
	}
	if b.Castling != AllCastling {
		t.Errorf("Expected all castling rights, got %s", b.Castling)
	}
	if b.EnPassant != NoSquare {
		t.Errorf("Expected no en passant square, got %s", b.EnPassant)
	}
	if b.HalfMoveClock != 0 || b.FullMoveNumber != 1 {
		t.Errorf("Expected counters 0 1, got %d %d", b.HalfMoveClock, b.FullMoveNumber)
	}

	if p := b.At(4, 0); p != BlackKing {
		t.Errorf("Expected black king on e8, got %s", p)
	}
	if p := b.At(3, 7); p != WhiteQueen {
		t.Errorf("Expected white queen on d1, got %s", p)
	}
	if p := b.At(4, 4); p != NoPiece {
		t.Errorf("Expected empty e4, got %s", p)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, fen := range roundTripFENs {
		t.Run(fen, func(t *testing.T) {
			b := NewBoard()
			if !b.Parse(fen) {
				t.Fatalf("Failed to parse %q", fen)
			}
			if got := b.ToFEN(); got != fen {
				t.Errorf("ToFEN mismatch:\n got  %s\n want %s", got, fen)
			}
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	for _, fen := range roundTripFENs {
		first, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		second := NewBoard()
		if !second.Parse(first.ToFEN()) {
			t.Fatalf("Failed to re-parse %q", first.ToFEN())
		}
		if !first.Equal(second) {
			t.Errorf("Boards differ after re-parse of %q", fen)
		}
	}
}

func TestNonCanonicalDigits(t *testing.T) {
	b := NewBoard()
	if !b.Parse("44/8/8/8/8/8/8/17 w - - 0 1") {
		t.Fatal("Failed to parse split digit runs")
	}
	want := "8/8/8/8/8/8/8/8 w - - 0 1"
	if got := b.ToFEN(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestEmptyBoard(t *testing.T) {
	b := NewBoard()
	placement := strings.Fields(b.ToFEN())[0]
	if placement != "8/8/8/8/8/8/8/8" {
		t.Errorf("Expected empty placement, got %q", placement)
	}
	if got := b.ToFEN(); got != "8/8/8/8/8/8/8/8 w KQkq - 0 1" {
		t.Errorf("Unexpected default FEN %q", got)
	}
}

func TestEnPassant(t *testing.T) {
	b := NewBoard()
	if !b.Parse("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1") {
		t.Fatal("Failed to parse")
	}
	if b.EnPassant == NoSquare {
		t.Fatal("Expected an en passant square")
	}
	if !b.EnPassant.IsValid() {
		t.Errorf("En passant square %d is not playable", b.EnPassant)
	}
	if got := b.EnPassant.String(); got != "e3" {
		t.Errorf("Expected e3, got %s", got)
	}
	if f := strings.Fields(b.ToFEN())[3]; f != "e3" {
		t.Errorf("Expected en passant field e3, got %s", f)
	}
}

func TestCastlingRights(t *testing.T) {
	tests := []struct {
		field string
		want  CastlingRights
		out   string
	}{
		{"KQkq", AllCastling, "KQkq"},
		{"-", NoCastling, "-"},
		{"q", BlackQueenSideCastle, "q"},
		{"kK", WhiteKingSideCastle | BlackKingSideCastle, "Kk"},
		{"QQq", WhiteQueenSideCastle | BlackQueenSideCastle, "Qq"},
		{"KxQ", WhiteKingSideCastle | WhiteQueenSideCastle, "KQ"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			b := NewBoard()
			if !b.Parse("4k3/8/8/8/8/8/8/4K3 w " + tt.field + " - 0 1") {
				t.Fatalf("Failed to parse castling field %q", tt.field)
			}
			if b.Castling != tt.want {
				t.Errorf("Expected rights %04b, got %04b", tt.want, b.Castling)
			}
			if f := strings.Fields(b.ToFEN())[2]; f != tt.out {
				t.Errorf("Expected castling field %q, got %q", tt.out, f)
			}
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"Empty", ""},
		{"BadSide", "8/8/8/8/8/8/8/8 x KQkq - 0 1"},
		{"MissingSlash", "rnbqkbnrpppppppp8888PPPPPPPPRNBQKBNR w KQkq - 0 1"},
		{"PlacementOnly", "8/8/8/8/8/8/8/8"},
		{"NoSpaceAfterSide", "8/8/8/8/8/8/8/8 wKQkq - 0 1"},
		{"CastlingUnterminated", "8/8/8/8/8/8/8/8 w KQkq"},
		{"DoubleSpace", "8/8/8/8/8/8/8/8  w - - 0 1"},
		{"BadEnPassantFile", "8/8/8/8/8/8/8/8 w - z3 0 1"},
		{"TruncatedEnPassant", "8/8/8/8/8/8/8/8 w - e"},
		{"MissingHalfMove", "8/8/8/8/8/8/8/8 w - - x 1"},
		{"MissingFullMove", "8/8/8/8/8/8/8/8 w - - 0"},
		{"NegativeCounter", "8/8/8/8/8/8/8/8 w - - -1 1"},
		{"PieceOffRank", "8p/8/8/8/8/8/8/8 w - - 0 1"},
		{"PieceBelowBoard", "8/8/8/8/8/8/8/8/p w - - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			if b.Parse(tt.fen) {
				t.Errorf("Expected Parse(%q) to fail", tt.fen)
			}
			if _, err := ParseFEN(tt.fen); !errors.Is(err, ErrInvalidFEN) {
				t.Errorf("Expected ErrInvalidFEN, got %v", err)
			}
		})
	}
}

func TestUnknownLetterBecomesErrorPiece(t *testing.T) {
	b := NewBoard()
	if !b.Parse("4k3/8/8/3x4/8/8/8/4K3 w - - 0 1") {
		t.Fatal("Unknown placement letters should not fail the parse")
	}
	if p := b.At(3, 3); p != ErrorPiece {
		t.Errorf("Expected error piece on d5, got %s", p)
	}
	if got := b.ToFEN(); got != "4k3/8/8/3e4/8/8/8/4K3 w - - 0 1" {
		t.Errorf("Unexpected FEN %q", got)
	}
	if sqs := b.Squares(ErrorPiece); len(sqs) != 1 || sqs[0].String() != "d5" {
		t.Errorf("Expected error piece indexed on d5, got %v", sqs)
	}
}

func TestDigitOverrunWithoutPiece(t *testing.T) {
	// Digit runs may run past the eighth file as long as no piece lands off the board.
	b := NewBoard()
	if !b.Parse("9/8/8/8/8/8/8/8 w - - 0 1") {
		t.Fatal("Expected digit overrun to parse")
	}
	if got := strings.Fields(b.ToFEN())[0]; got != "8/8/8/8/8/8/8/8" {
		t.Errorf("Unexpected placement %q", got)
	}
}

func TestCountersLikeStrtol(t *testing.T) {
	b := NewBoard()
	if !b.Parse("8/8/8/8/8/8/8/8 b - - 7   +42 trailing") {
		t.Fatal("Failed to parse counters")
	}
	if b.HalfMoveClock != 7 || b.FullMoveNumber != 42 {
		t.Errorf("Expected counters 7 42, got %d %d", b.HalfMoveClock, b.FullMoveNumber)
	}
}

func TestParseResetsBoard(t *testing.T) {
	b := NewBoard()
	if !b.Parse(StartFEN) {
		t.Fatal("Failed to parse start position")
	}
	if !b.Parse("4k3/8/8/8/8/8/8/4K3 b - - 5 9") {
		t.Fatal("Failed to parse second position")
	}
	if got := b.Squares(WhitePawn); len(got) != 0 {
		t.Errorf("Expected stale pawns to be cleared from the index, got %v", got)
	}
	if p := b.At(0, 6); p != NoPiece {
		t.Errorf("Expected a2 empty after re-parse, got %s", p)
	}
}

func TestPieceIndex(t *testing.T) {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	pawns := b.Squares(WhitePawn)
	if len(pawns) != 8 {
		t.Fatalf("Expected 8 white pawns, got %d", len(pawns))
	}
	for i, sq := range pawns {
		if sq.Rank() != 2 || sq.File() != i {
			t.Errorf("White pawn %d indexed on %s", i, sq)
		}
	}

	kings := b.Squares(BlackKing)
	if len(kings) != 1 || kings[0] != NewSquare(4, 1) {
		t.Errorf("Expected black king indexed on e8 (%d), got %v", NewSquare(4, 1), kings)
	}

	// The index is a cache: direct grid writes leave it untouched.
	b.Set(4, 4, WhiteQueen)
	if got := len(b.Squares(WhiteQueen)); got != 1 {
		t.Errorf("Expected index to keep 1 white queen after Set, got %d", got)
	}
	if !strings.HasPrefix(b.ToFEN(), "rnbqkbnr/pppppppp/8/8/4Q3/") {
		t.Errorf("Expected grid write to show in FEN, got %s", b.ToFEN())
	}
}

func TestRender(t *testing.T) {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	out := b.Render()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("Expected 8 lines, got %d", len(lines))
	}
	if lines[0] != "♖♘♗♕♔♗♘♖" {
		t.Errorf("Unexpected first rank %q", lines[0])
	}
	if lines[4] != strings.Repeat("　", 8) {
		t.Errorf("Unexpected empty rank %q", lines[4])
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Expected trailing newline")
	}

	// Render never fails, even after a failed parse.
	if b.Parse("4k3/8/8/3x4/8 w") {
		t.Fatal("Expected parse to fail")
	}
	if !strings.Contains(b.Render(), "e") {
		t.Error("Expected error glyph after partial parse")
	}
}

func TestCrossCheckWithChessLibrary(t *testing.T) {
	for _, fen := range []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	} {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		opt, err := chess.FEN(b.ToFEN())
		if err != nil {
			t.Fatalf("chess library rejected %q: %v", b.ToFEN(), err)
		}
		game := chess.NewGame(opt)
		want := strings.Fields(game.FEN())[0]
		if got := strings.Fields(b.ToFEN())[0]; got != want {
			t.Errorf("Placement mismatch:\n got  %s\n want %s", got, want)
		}
	}
}
