package server

import (
	"time"

	"github.com/hailam/fenboard/internal/board"
	"github.com/hailam/fenboard/internal/storage"
)

// FENRequest asks the server to parse one FEN record.
type FENRequest struct {
	FEN string `json:"fen"`
}

// SaveRequest stores a named position.
type SaveRequest struct {
	Name string `json:"name"`
	FEN  string `json:"fen"`
}

// BoardResponse describes a parsed board.
type BoardResponse struct {
	OK     bool                `json:"ok"`
	Error  string              `json:"error,omitempty"`
	FEN    string              `json:"fen,omitempty"`
	Grid   string              `json:"grid,omitempty"`
	Pieces map[string][]string `json:"pieces,omitempty"` // FEN letter -> squares
}

// PositionResponse is a stored record, plus its grid when a single record is requested.
type PositionResponse struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	FEN     string    `json:"fen"`
	SavedAt time.Time `json:"saved_at"`
	Grid    string    `json:"grid,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func boardToDTO(b *board.Board) BoardResponse {
	pieces := make(map[string][]string)
	for p, sqs := range b.PieceIndex() {
		names := make([]string, len(sqs))
		for i, sq := range sqs {
			names[i] = sq.String()
		}
		pieces[p.String()] = names
	}
	return BoardResponse{
		OK:     true,
		FEN:    b.ToFEN(),
		Grid:   b.Render(),
		Pieces: pieces,
	}
}

func recordToDTO(rec *storage.Record) PositionResponse {
	return PositionResponse{
		ID:      rec.ID,
		Name:    rec.Name,
		FEN:     rec.FEN,
		SavedAt: rec.SavedAt,
	}
}

func recordsToDTO(recs []storage.Record) []PositionResponse {
	out := make([]PositionResponse, 0, len(recs))
	for i := range recs {
		out = append(out, recordToDTO(&recs[i]))
	}
	return out
}
