// Package diagram draws boards as SVG and PNG images.
package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/fenboard/internal/board"
)

// DefaultSquareSize is the edge of one square in pixels.
const DefaultSquareSize = 48

// Board colors
const (
	lightSquare = "#f0d9b5"
	darkSquare  = "#b58863"
	whiteFill   = "#ffffff"
	blackFill   = "#202020"
	errorFill   = "#d03030"
	outline     = "#000000"
)

// fill returns the disc color and the letter color for a piece.
func fill(p board.Piece) (disc string, letter color.Color) {
	switch {
	case p.IsError():
		return errorFill, color.White
	case p.Color == board.White:
		return whiteFill, color.Black
	default:
		return blackFill, color.White
	}
}

// SVG returns the board as an SVG document with size-pixel squares.
// Pieces are discs; their letters are added by Draw, since oksvg has no text support.
func SVG(b *board.Board, size int) string {
	var sb strings.Builder
	edge := 8 * size
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, edge, edge, edge, edge)

	for row := 0; row < 8; row++ {
		for file, p := range b.Rank(row) {
			x, y := file*size, row*size
			sq := lightSquare
			if (file+row)%2 == 1 {
				sq = darkSquare
			}
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`, x, y, size, size, sq)

			if p.IsEmpty() {
				continue
			}
			disc, _ := fill(p)
			fmt.Fprintf(&sb, `<circle cx="%d" cy="%d" r="%d" fill="%s" stroke="%s" stroke-width="%d"/>`,
				x+size/2, y+size/2, size*2/5, disc, outline, max(1, size/24))
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// Draw rasterizes the board and labels each piece with its FEN letter.
func Draw(b *board.Board, size int) (*image.RGBA, error) {
	if size <= 0 {
		size = DefaultSquareSize
	}
	edge := 8 * size

	icon, err := oksvg.ReadIconStream(strings.NewReader(SVG(b, size)))
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(edge), float64(edge))

	rgba := image.NewRGBA(image.Rect(0, 0, edge, edge))
	scanner := rasterx.NewScannerGV(edge, edge, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(edge, edge, scanner)
	icon.Draw(raster, 1.0)

	face := basicfont.Face7x13
	for row := 0; row < 8; row++ {
		for file, p := range b.Rank(row) {
			if p.IsEmpty() {
				continue
			}
			_, ink := fill(p)
			label := p.String()
			d := &font.Drawer{
				Dst:  rgba,
				Src:  image.NewUniform(ink),
				Face: face,
			}
			w := d.MeasureString(label).Ceil()
			x := file*size + (size-w)/2
			y := row*size + (size+face.Ascent-face.Descent)/2
			d.Dot = fixed.P(x, y)
			d.DrawString(label)
		}
	}

	return rgba, nil
}

// WritePNG encodes the board diagram as PNG to w.
func WritePNG(w io.Writer, b *board.Board, size int) error {
	img, err := Draw(b, size)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// PNG returns the board diagram as PNG bytes.
func PNG(b *board.Board, size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, b, size); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
