// Package compositor renders the fixed vertical ad layout: logo, product image,
// punchline and a call-to-action button on a white 768x1024 canvas.
package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/adstudio/internal/entity"
	"github.com/ds124wfegd/adstudio/internal/pkg/imageio"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type Compositor interface {
	Compose(product, logo image.Image, layout entity.AdLayout) (*image.NRGBA, error)
}

type compositor struct {
	fonts *Fonts
}

func NewCompositor(fonts *Fonts) Compositor {
	return &compositor{fonts: fonts}
}

// Compose returns an opaque CanvasWidth x CanvasHeight ad. The only error is an
// unparsable accent color.
func (c *compositor) Compose(product, logo image.Image, layout entity.AdLayout) (*image.NRGBA, error) {
	accent, err := ParseHex(layout.ColorHex)
	if err != nil {
		return nil, err
	}

	headline, label, release := c.fonts.faces()
	defer release()

	fitted := FitLogo(logo)
	p := Layout(
		fitted.Bounds().Size(),
		measure(headline, layout.Punchline),
		measure(label, layout.ButtonText),
	)

	canvas := imaging.New(CanvasWidth, CanvasHeight, color.White)
	canvas = imaging.Overlay(canvas, fitted, p.Logo.Min, 1.0)
	canvas = imaging.Paste(canvas, StretchProduct(product), p.Product.Min)

	drawText(canvas, headline, layout.Punchline, p.Punchline.Min, accent)
	draw.Draw(canvas, p.Button, image.NewUniform(accent), image.Point{}, draw.Src)
	drawText(canvas, label, layout.ButtonText, p.Label.Min, color.White)

	return canvas, nil
}

// FitLogo shrinks the logo into LogoMaxWidth x LogoMaxHeight keeping its aspect ratio.
// Smaller logos are returned unscaled.
func FitLogo(logo image.Image) *image.NRGBA {
	return imaging.Fit(logo, LogoMaxWidth, LogoMaxHeight, imaging.Lanczos)
}

// StretchProduct resizes to ProductSize x ProductSize without keeping the aspect ratio.
func StretchProduct(product image.Image) *image.NRGBA {
	return imaging.Resize(imageio.ToRGB(product), ProductSize, ProductSize, imaging.Lanczos)
}

func measure(face font.Face, s string) image.Point {
	m := face.Metrics()
	return image.Pt(font.MeasureString(face, s).Ceil(), (m.Ascent + m.Descent).Ceil())
}

// drawText places s with its line box top-left corner at pt.
func drawText(dst draw.Image, face font.Face, s string, pt image.Point, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(pt.X), Y: fixed.I(pt.Y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}
