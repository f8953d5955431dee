package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Card geometry in logical units; the bitmap is Scale times larger.
const (
	CardWidth  = 360
	CardHeight = 480
	Scale      = 3
)

var (
	gradientStops = []color.RGBA{
		{R: 255, G: 107, B: 53, A: 255},
		{R: 247, G: 37, B: 133, A: 255},
		{R: 114, G: 9, B: 183, A: 255},
	}
	textColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	mutedColor = color.RGBA{R: 255, G: 255, B: 255, A: 180}
	badgeColor = color.RGBA{R: 255, G: 255, B: 255, A: 60}
)

// RenderCard draws the card at full resolution.
func RenderCard(card Card) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, CardWidth*Scale, CardHeight*Scale))
	paintGradient(img)

	layer := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	y := 40
	y = drawCentered(layer, card.Title, y, 3, textColor)
	y = drawCentered(layer, card.Subtitle, y+6, 1, mutedColor)

	y += 28
	if n := len(card.Stats); n > 0 {
		colWidth := CardWidth / n
		for i, s := range card.Stats {
			cx := colWidth*i + colWidth/2
			drawAt(layer, s.Value, cx, y, 2, textColor)
			drawAt(layer, s.Label, cx, y+30, 1, mutedColor)
		}
		y += 64
	}

	y += 16
	for _, h := range card.Highlights {
		y = drawCentered(layer, h, y, 1, textColor) + 6
	}

	if card.Role != "" {
		y += 20
		w := textWidth(card.Role)*2 + 40
		badge := image.Rect((CardWidth-w)/2, y-6, (CardWidth+w)/2, y+32)
		draw.Draw(layer, badge, image.NewUniform(badgeColor), image.Point{}, draw.Over)
		y = drawCentered(layer, card.Role, y, 2, textColor) + 10
	}

	if card.Quote != "" {
		drawCentered(layer, "\""+card.Quote+"\"", CardHeight-48, 1, mutedColor)
	}

	draw.NearestNeighbor.Scale(img, img.Bounds(), layer, layer.Bounds(), draw.Over, nil)
	return img
}

// EncodePNG renders card and encodes it as PNG.
func EncodePNG(card Card) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, RenderCard(card)); err != nil {
		return nil, fmt.Errorf("failed to encode card: %w", err)
	}
	return buf.Bytes(), nil
}

func paintGradient(img *image.RGBA) {
	b := img.Bounds()
	span := float64(b.Dx() + b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, gradientAt(float64(x+y)/span))
		}
	}
}

func gradientAt(t float64) color.RGBA {
	if t <= 0 {
		return gradientStops[0]
	}
	if t >= 1 {
		return gradientStops[len(gradientStops)-1]
	}
	seg := t * float64(len(gradientStops)-1)
	i := int(seg)
	f := seg - float64(i)
	a, b := gradientStops[i], gradientStops[i+1]
	return color.RGBA{
		R: lerp(a.R, b.R, f),
		G: lerp(a.G, b.G, f),
		B: lerp(a.B, b.B, f),
		A: 255,
	}
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f)
}

// drawCentered draws text horizontally centered with its top at y and
// returns the y below it.
func drawCentered(dst *image.RGBA, text string, y, scale int, c color.Color) int {
	return drawAt(dst, text, CardWidth/2, y, scale, c)
}

func drawAt(dst *image.RGBA, text string, cx, y, scale int, c color.Color) int {
	text = printable(text)
	face := basicfont.Face7x13
	w := textWidth(text)
	for scale > 1 && w*scale > CardWidth-16 {
		scale--
	}
	lineHeight := face.Height * scale
	if text == "" {
		return y + lineHeight
	}
	glyphs := image.NewRGBA(image.Rect(0, 0, w, face.Height))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)

	sw := w * scale
	target := image.Rect(cx-sw/2, y, cx-sw/2+sw, y+lineHeight)
	draw.NearestNeighbor.Scale(dst, target, glyphs, glyphs.Bounds(), draw.Over, nil)
	return y + lineHeight
}

func textWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, printable(text)).Ceil()
}

// printable drops runes the bitmap font cannot draw, such as emoji.
func printable(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
