// Package render rasterizes a scene to an image: theme background plus
// every element in paint order, rotated about its own center. No
// interaction chrome (selection rings, handles) is drawn — the export
// captures only the element set.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/slateboard/slateboard/internal/asset"
	"github.com/slateboard/slateboard/internal/document"
	"github.com/slateboard/slateboard/internal/geometry"
	"github.com/slateboard/slateboard/internal/scene"
)

// Options sizes the output surface and picks the background theme.
type Options struct {
	Width  int
	Height int
	Theme  document.Theme
}

const textPadding = 8.0

// Scene rasterizes the scene into a new image.
func Scene(s *scene.Scene, opts Options) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	drawBackground(dc, opts)

	for _, el := range s.PaintOrder() {
		if err := drawElement(dc, el); err != nil {
			return nil, fmt.Errorf("draw element %s: %w", el.Common().ID, err)
		}
	}

	return dc.Image(), nil
}

// ContentBounds returns the axis-aligned extent covering every
// element, rotation included. An empty scene yields the empty rect.
// Export uses this to size the surface when the caller omits one.
func ContentBounds(s *scene.Scene) geometry.Rect {
	var bounds geometry.Rect
	for _, el := range s.Elements() {
		a := el.Common()
		r := a.Bounds()
		if a.Rotation != 0 {
			cx, cy := r.Center()
			r = geometry.RotateAround(a.Rotation, cx, cy).TransformRect(r)
		}
		bounds = bounds.Union(r)
	}
	return bounds
}

// PNG rasterizes the scene and writes it as PNG.
func PNG(w io.Writer, s *scene.Scene, opts Options) error {
	img, err := Scene(s, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawElement(dc *gg.Context, el scene.Element) error {
	a := el.Common()
	r := a.Bounds()

	dc.Push()
	defer dc.Pop()

	if a.Rotation != 0 {
		cx, cy := r.Center()
		dc.RotateAbout(gg.Radians(a.Rotation), cx, cy)
	}

	switch e := el.(type) {
	case *scene.SwatchElement:
		dc.SetHexColor(e.Fill)
		dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		dc.Fill()

	case *scene.TextElement:
		face, err := fontFace(e.FontFamily, e.FontSize)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		dc.SetHexColor(e.Fill)
		dc.DrawStringWrapped(e.Text,
			r.X+textPadding, r.Y+textPadding, 0, 0,
			r.Width-2*textPadding, 1.3, gg.AlignLeft)

	case *scene.ImageElement:
		img, err := asset.Decode(e.Source)
		if err != nil {
			return err
		}
		dc.DrawImage(scaleToRect(img, r), int(math.Round(r.X)), int(math.Round(r.Y)))
	}

	return nil
}

// scaleToRect resamples the source image to the element's pixel size.
func scaleToRect(src image.Image, r geometry.Rect) image.Image {
	w := int(math.Round(r.Width))
	h := int(math.Round(r.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func drawBackground(dc *gg.Context, opts Options) {
	w := float64(opts.Width)
	h := float64(opts.Height)

	base := "#ffffff"
	if opts.Theme == document.ThemePaper {
		base = "#fbf3e4"
	}
	dc.SetHexColor(base)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	switch opts.Theme {
	case document.ThemeGrid:
		dc.SetHexColor("#e4e7eb")
		dc.SetLineWidth(1)
		for x := float64(geometry.GridUnit); x < w; x += geometry.GridUnit {
			dc.DrawLine(x, 0, x, h)
			dc.Stroke()
		}
		for y := float64(geometry.GridUnit); y < h; y += geometry.GridUnit {
			dc.DrawLine(0, y, w, y)
			dc.Stroke()
		}
	case document.ThemeDots:
		dc.SetHexColor("#cbd2d9")
		for x := float64(geometry.GridUnit); x < w; x += geometry.GridUnit {
			for y := float64(geometry.GridUnit); y < h; y += geometry.GridUnit {
				dc.DrawCircle(x, y, 1.5)
				dc.Fill()
			}
		}
	}
}
