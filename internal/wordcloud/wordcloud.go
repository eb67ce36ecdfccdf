// ABOUTME: Deterministic word cloud rendering to PNG
// ABOUTME: Sizes words by frequency and places them on a spiral from the canvas center
package wordcloud

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrNoWords is returned when nothing is left to draw after filtering
var ErrNoWords = errors.New("no words to render after removing stop words")

// Options controls the canvas and word sizing
type Options struct {
	Width       int
	Height      int
	Background  color.Color
	MinFontSize float64
	MaxFontSize float64
	MaxWords    int
	StopWords   []string
	Palette     []color.Color
}

// DefaultOptions is an 800x400 white canvas with a viridis palette
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      400,
		Background:  color.White,
		MinFontSize: 10,
		MaxFontSize: 120,
		MaxWords:    200,
		StopWords:   StopWords,
		Palette: []color.Color{
			color.RGBA{0x44, 0x01, 0x54, 0xff},
			color.RGBA{0x48, 0x28, 0x78, 0xff},
			color.RGBA{0x3e, 0x49, 0x89, 0xff},
			color.RGBA{0x31, 0x68, 0x8e, 0xff},
			color.RGBA{0x26, 0x82, 0x8e, 0xff},
			color.RGBA{0x1f, 0x9e, 0x89, 0xff},
			color.RGBA{0x35, 0xb7, 0x79, 0xff},
			color.RGBA{0x6d, 0xcd, 0x59, 0xff},
			color.RGBA{0xb4, 0xde, 0x2c, 0xff},
		},
	}
}

// Renderer draws word clouds
type Renderer struct {
	opts Options
	font *opentype.Font
	stop map[string]struct{}
}

// New creates a Renderer using the Go Regular font
func New(opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas %dx%d", opts.Width, opts.Height)
	}
	if opts.MinFontSize <= 0 || opts.MaxFontSize < opts.MinFontSize {
		return nil, fmt.Errorf("invalid font sizes %.1f-%.1f", opts.MinFontSize, opts.MaxFontSize)
	}
	if len(opts.Palette) == 0 {
		opts.Palette = []color.Color{color.Black}
	}
	if opts.Background == nil {
		opts.Background = color.White
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Renderer{opts: opts, font: f, stop: stopSet(opts.StopWords)}, nil
}

// Words returns the frequencies that would be drawn for text
func (r *Renderer) Words(text string) []WordCount {
	freqs := Frequencies(Tokenize(text, r.stop))
	if r.opts.MaxWords > 0 && len(freqs) > r.opts.MaxWords {
		freqs = freqs[:r.opts.MaxWords]
	}
	return freqs
}

// Render draws the word cloud for text and returns PNG bytes
func (r *Renderer) Render(text string) ([]byte, error) {
	freqs := r.Words(text)
	if len(freqs) == 0 {
		return nil, ErrNoWords
	}

	img := image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.opts.Background), image.Point{}, draw.Src)

	faces := map[int]font.Face{}
	defer func() {
		for _, f := range faces {
			_ = f.Close()
		}
	}()
	faceFor := func(size int) (font.Face, error) {
		if f, ok := faces[size]; ok {
			return f, nil
		}
		f, err := opentype.NewFace(r.font, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingNone})
		if err != nil {
			return nil, err
		}
		faces[size] = f
		return f, nil
	}

	maxCount := float64(freqs[0].Count)
	var placed []image.Rectangle
	for i, wc := range freqs {
		size := r.opts.MinFontSize + (r.opts.MaxFontSize-r.opts.MinFontSize)*float64(wc.Count)/maxCount
		for ; size >= r.opts.MinFontSize; size *= 0.85 {
			face, err := faceFor(int(math.Round(size)))
			if err != nil {
				return nil, fmt.Errorf("font face: %w", err)
			}
			box, ok := r.place(face, wc.Word, placed)
			if !ok {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(r.opts.Palette[i%len(r.opts.Palette)]),
				Face: face,
				Dot:  fixed.P(box.Min.X, box.Min.Y+face.Metrics().Ascent.Ceil()),
			}
			d.DrawString(wc.Word)
			placed = append(placed, box)
			break
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderBase64 renders text and base64-encodes the PNG
func (r *Renderer) RenderBase64(text string) (string, error) {
	data, err := r.Render(text)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// place walks an Archimedean spiral out from the center until the word's box fits
func (r *Renderer) place(face font.Face, word string, placed []image.Rectangle) (image.Rectangle, bool) {
	m := face.Metrics()
	w := font.MeasureString(face, word).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	if w <= 0 || h <= 0 || w > r.opts.Width || h > r.opts.Height {
		return image.Rectangle{}, false
	}

	bounds := image.Rect(0, 0, r.opts.Width, r.opts.Height)
	cx, cy := r.opts.Width/2, r.opts.Height/2
	ratio := float64(r.opts.Height) / float64(r.opts.Width)
	maxRadius := math.Hypot(float64(cx), float64(cy))

	for t := 0.0; 3*t <= maxRadius; t += 0.2 {
		x := cx + int(3*t*math.Cos(t)) - w/2
		y := cy + int(3*t*math.Sin(t)*ratio) - h/2
		box := image.Rect(x, y, x+w, y+h)
		if !box.In(bounds) {
			continue
		}
		if overlapsAny(box, placed) {
			continue
		}
		return box, true
	}
	return image.Rectangle{}, false
}

func overlapsAny(box image.Rectangle, placed []image.Rectangle) bool {
	for _, p := range placed {
		if box.Overlaps(p) {
			return true
		}
	}
	return false
}
