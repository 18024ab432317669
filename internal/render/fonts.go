package render

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"

	"github.com/slateboard/slateboard/internal/scene"
)

// fontTTF maps each selectable family to an embedded typeface, so
// export needs no font files on the host.
var fontTTF = map[scene.FontFamily][]byte{
	scene.FontSans:      goregular.TTF,
	scene.FontMono:      gomono.TTF,
	scene.FontSmallCaps: gosmallcaps.TTF,
	scene.FontItalic:    goitalic.TTF,
}

func fontFace(family scene.FontFamily, size float64) (font.Face, error) {
	ttf, ok := fontTTF[family]
	if !ok {
		ttf = fontTTF[scene.DefaultFontFamily]
	}

	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", family, err)
	}

	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
