// Package filters renders the learned filters of a RBM - each hidden
// unit's incoming weight vector reshaped to a small grayscale tile - as
// frames of an animated GIF, one frame per epoch.
package filters

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/chewxy/math32"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"

	"github.com/10183308/dll/rbm"
)

var regular *truetype.Font

const (
	dpi        = 144.0
	fontsize   = 10.0
	lineheight = 1.2
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var grays = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{uint8(i)}
	}
	return p
}()

// Encoder lays the filters out in a grid and implements dll.OutputEncoder.
type Encoder struct {
	TileH, TileW int // geometry of one filter; TileH*TileW must equal the visible unit count
	Cols         int // tiles per grid row; 0 picks a near-square grid
	Scale        int // edge length in pixels of one weight entry
	Pad          int // pixels between tiles

	font.Drawer
	io.Writer

	out         *gif.GIF
	face        font.Face
	w, h        int // frame geometry
	captionH    int
	initialized bool
}

// NewGifEncoder renders tileH×tileW filters into w.
func NewGifEncoder(w io.Writer, tileH, tileW int) *Encoder {
	return &Encoder{
		TileH:  tileH,
		TileW:  tileW,
		Scale:  4,
		Pad:    2,
		Writer: w,
		out:    &gif.GIF{LoopCount: -1},
	}
}

// Encode appends one frame showing the current filters of m.
func (enc *Encoder) Encode(m *rbm.RBM, epoch int, reconErr float32) error {
	if enc.TileH*enc.TileW != m.Visible {
		return errors.Errorf("%d×%d tiles cannot hold %d visible units", enc.TileH, enc.TileW, m.Visible)
	}

	cols := enc.Cols
	if cols == 0 {
		cols = int(math.Ceil(math.Sqrt(float64(m.Hidden))))
	}
	rows := (m.Hidden + cols - 1) / cols

	if !enc.initialized {
		enc.face = truetype.NewFace(regular, &truetype.Options{
			Size:    fontsize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		enc.Drawer.Src = image.Black
		enc.Drawer.Face = enc.face

		enc.captionH = int(math.Ceil(fontsize * lineheight * dpi / 72))
		enc.w = cols*(enc.TileW*enc.Scale+enc.Pad) + enc.Pad
		enc.h = rows*(enc.TileH*enc.Scale+enc.Pad) + enc.Pad + enc.captionH
		enc.initialized = true
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.w, enc.h), grays)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)

	// weights are normalized per frame so the full gray range is used
	lo, hi := math32.Inf(1), math32.Inf(-1)
	for _, v := range m.Weights() {
		lo = math32.Min(lo, v)
		hi = math32.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	it := rbm.MakeIterator(m.Weights(), m.Visible, m.Hidden)
	for j := 0; j < m.Hidden; j++ {
		x0 := enc.Pad + (j%cols)*(enc.TileW*enc.Scale+enc.Pad)
		y0 := enc.Pad + (j/cols)*(enc.TileH*enc.Scale+enc.Pad)
		for i := 0; i < m.Visible; i++ {
			level := uint8(255 * (it[i][j] - lo) / span)
			px := x0 + (i%enc.TileW)*enc.Scale
			py := y0 + (i/enc.TileW)*enc.Scale
			tile := image.Rect(px, py, px+enc.Scale, py+enc.Scale)
			draw.Draw(im, tile, image.NewUniform(color.Gray{level}), image.Point{}, draw.Src)
		}
	}
	rbm.ReturnIterator(m.Visible, m.Hidden, it)

	enc.Dst = im
	enc.Dot = fixed.P(enc.Pad, enc.h-enc.Pad)
	enc.DrawString(fmt.Sprintf("Epoch %d, error %.5f", epoch, reconErr))

	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, 25)
	return nil
}

// Flush writes the gif into the writer.
func (enc *Encoder) Flush() error { return gif.EncodeAll(enc.Writer, enc.out) }
