package gimbal

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // blueprint texture references decode as PNG

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TTFFace is the hydrated font payload: an Ebitengine text/v2 face ready
// for rendering.
type TTFFace struct {
	Face   *text.GoTextFace
	source *text.GoTextFaceSource
	lh     float64 // cached line height
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFace) LineHeight() float64 { return f.lh }

// Measure returns the width and height of the rendered text.
func (f *TTFFace) Measure(s string) (width, height float64) {
	return text.Measure(s, f.Face, f.lh)
}

// FetchFunc retrieves the raw bytes for an asset reference. Supplied by the
// caller: an embed lookup, a file read, an HTTP fetch.
type FetchFunc func(ref string) ([]byte, error)

// ImageLoader is a Loader that decodes fetched bytes into renderer-usable
// payloads: PNG textures into *ebiten.Image and TTF/OTF fonts into
// *TTFFace. All failures come back as errors (settling slots into
// AssetError), never as panics.
type ImageLoader struct {
	// Fetch retrieves raw bytes for a reference. Required.
	Fetch FetchFunc
	// FontSize is the face size for hydrated fonts. Zero means 16.
	FontSize float64
}

// LoadTexture fetches and decodes a PNG texture reference.
func (l *ImageLoader) LoadTexture(ref string) (any, error) {
	data, err := l.Fetch(ref)
	if err != nil {
		return nil, fmt.Errorf("gimbal: fetch texture %q: %w", ref, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gimbal: decode texture %q: %w", ref, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadFont fetches and parses a TTF/OTF font reference.
func (l *ImageLoader) LoadFont(ref string) (any, error) {
	data, err := l.Fetch(ref)
	if err != nil {
		return nil, fmt.Errorf("gimbal: fetch font %q: %w", ref, err)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gimbal: parse font %q: %w", ref, err)
	}
	size := l.FontSize
	if size == 0 {
		size = 16
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFace{
		Face:   face,
		source: source,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}
