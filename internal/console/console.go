// Package console runs the line-oriented FEN session: every input line is a FEN
// record to load, or one of a few library commands.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/hailam/fenboard/internal/board"
	"github.com/hailam/fenboard/internal/diagram"
	"github.com/hailam/fenboard/internal/storage"
)

// ErrNoStore is reported by library commands when the session has no store.
var ErrNoStore = errors.New("no position store configured")

// Console reads FEN lines and prints the parsed board.
type Console struct {
	in    io.Reader
	out   io.Writer
	board *board.Board
	store *storage.Storage // nil disables save/load/list

	// Square size for png output
	diagramSize int
}

// New creates a console session. store may be nil.
func New(in io.Reader, out io.Writer, store *storage.Storage) *Console {
	return &Console{
		in:          in,
		out:         out,
		board:       board.NewBoard(),
		store:       store,
		diagramSize: diagram.DefaultSquareSize,
	}
}

// Board returns the session's current board.
func (c *Console) Board() *board.Board {
	return c.board
}

// Run processes lines until an empty line or end of input.
func (c *Console) Run() error {
	scanner := bufio.NewScanner(c.in)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			return nil
		}

		parts := strings.Fields(line)
		var err error
		switch {
		case len(parts) == 0:
			err = c.handleFEN(line)
		case parts[0] == "save":
			err = c.handleSave(strings.Join(parts[1:], " "))
		case parts[0] == "load" && len(parts) > 1:
			err = c.handleLoad(strings.Join(parts[1:], " "))
		case parts[0] == "list" && len(parts) == 1:
			err = c.handleList()
		case parts[0] == "png" && len(parts) == 2:
			err = c.handlePNG(parts[1])
		case parts[0] == "d" && len(parts) == 1:
			c.printBoard()
		default:
			err = c.handleFEN(line)
		}
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}

	return scanner.Err()
}

// handleFEN loads a FEN line into the board and prints it.
func (c *Console) handleFEN(line string) error {
	b, err := board.ParseFEN(line)
	if err != nil {
		return err
	}
	c.board = b
	c.printBoard()
	return nil
}

// printBoard writes the FEN, the glyph grid and the piece index.
func (c *Console) printBoard() {
	fmt.Fprintln(c.out, c.board.ToFEN())
	fmt.Fprintln(c.out, c.board.Render())

	index := c.board.PieceIndex()
	pieces := make([]board.Piece, 0, len(index))
	for p := range index {
		pieces = append(pieces, p)
	}
	slices.SortFunc(pieces, func(a, b board.Piece) int {
		return int(a.Letter()) - int(b.Letter())
	})
	for _, p := range pieces {
		for _, sq := range index[p] {
			fmt.Fprintf(c.out, "%c : %s\n", p.Letter(), sq)
		}
	}
}

func (c *Console) handleSave(name string) error {
	if c.store == nil {
		return ErrNoStore
	}
	if name == "" {
		return errors.New("usage: save <name>")
	}
	rec, err := c.store.Save(name, c.board.ToFEN())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "saved %s %s\n", rec.ID, rec.Name)
	return nil
}

func (c *Console) handleLoad(key string) error {
	if c.store == nil {
		return ErrNoStore
	}
	rec, err := c.store.Lookup(key)
	if err != nil {
		return err
	}
	return c.handleFEN(rec.FEN)
}

func (c *Console) handleList() error {
	if c.store == nil {
		return ErrNoStore
	}
	recs, err := c.store.List()
	if err != nil {
		return err
	}
	for _, rec := range recs {
		fmt.Fprintf(c.out, "%s %s %s\n", rec.ID, rec.Name, rec.FEN)
	}
	return nil
}

func (c *Console) handlePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := diagram.WritePNG(f, c.board, c.diagramSize); err != nil {
		return err
	}
	log.Printf("wrote %s", path)
	return nil
}
