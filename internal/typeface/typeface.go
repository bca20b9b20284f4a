// Package typeface loads the fonts used for marker labels and answers the text
// metric queries needed to size and place them.
package typeface

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the label size in pixels used when none is given.
const DefaultSize = 12

// ErrEmptyFont is returned when a font source holds no data.
var ErrEmptyFont = errors.New("typeface: empty font data")

// Face is a sized label font. Faces derived with WithSize share a cache with
// the face they came from, so resizing back and forth does not reparse or
// reallocate. A Face is not safe for concurrent use.
type Face struct {
	src   []byte
	font  *opentype.Font
	size  float64
	face  font.Face
	sizes map[float64]*Face
}

// Parse builds a face from TrueType or OpenType data at the given pixel size.
func Parse(src []byte, size float64) (*Face, error) {
	if len(src) == 0 {
		return nil, ErrEmptyFont
	}
	f, err := opentype.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("typeface: parse font: %w", err)
	}
	return newFace(src, f, size, map[float64]*Face{})
}

// LoadFile reads a font file from disk; see Parse.
func LoadFile(path string, size float64) (*Face, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("typeface: %w", err)
	}
	return Parse(b, size)
}

// Default returns the embedded Go Regular font at the given size and falls back
// to a fixed bitmap face if that cannot be loaded.
func Default(size float64) *Face {
	f, err := Parse(goregular.TTF, size)
	if err != nil {
		return Fallback()
	}
	return f
}

var fallback = &Face{size: 13, face: basicfont.Face7x13}

// Fallback returns the shared 7x13 bitmap face. It cannot be resized.
func Fallback() *Face { return fallback }

func newFace(src []byte, f *opentype.Font, size float64, sizes map[float64]*Face) (*Face, error) {
	if size <= 0 {
		size = DefaultSize
	}
	ff, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("typeface: new face: %w", err)
	}
	out := &Face{src: src, font: f, size: size, face: ff, sizes: sizes}
	sizes[size] = out
	return out, nil
}

// WithSize returns the same font at another pixel size. Bitmap faces and
// non-positive sizes return f unchanged.
func (f *Face) WithSize(size float64) *Face {
	if f == nil || f.font == nil || size <= 0 || size == f.size {
		return f
	}
	if cached, ok := f.sizes[size]; ok {
		return cached
	}
	out, err := newFace(f.src, f.font, size, f.sizes)
	if err != nil {
		return f
	}
	return out
}

// Size reports the pixel size of the face.
func (f *Face) Size() float64 { return f.size }

// Source returns the raw font data, or nil for the bitmap fallback.
func (f *Face) Source() []byte { return f.src }

// FontFace exposes the underlying x/image face for drawing.
func (f *Face) FontFace() font.Face { return f.face }

// Advance returns the horizontal advance of s in pixels.
func (f *Face) Advance(s string) float64 {
	return fromFixed(font.MeasureString(f.face, s))
}

// InkHeight returns the height of the inked bounds of s in pixels.
func (f *Face) InkHeight(s string) float64 {
	b, _ := font.BoundString(f.face, s)
	return fromFixed(b.Max.Y - b.Min.Y)
}

// Close releases every face sharing this face's cache.
func (f *Face) Close() error {
	if f == nil || f.font == nil {
		return nil
	}
	var errs []error
	for size, ff := range f.sizes {
		if err := ff.face.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(f.sizes, size)
	}
	return errors.Join(errs...)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
