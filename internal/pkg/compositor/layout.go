package compositor

import "image"

const (
	CanvasWidth  = 768
	CanvasHeight = 1024

	LogoMaxWidth  = 200
	LogoMaxHeight = 100
	LogoTop       = 30

	ProductSize = 400

	ButtonWidth  = 300
	ButtonHeight = 60

	// Vertical gap between stacked elements.
	Gap = 20
)

// Placement holds the canvas rectangle of every ad element.
type Placement struct {
	Logo      image.Rectangle
	Product   image.Rectangle
	Punchline image.Rectangle
	Button    image.Rectangle
	Label     image.Rectangle
}

// Layout stacks logo, product, punchline and button top to bottom, each horizontally
// centered. logo, punchline and label are the rendered sizes of those elements.
// Nothing is bounds checked: elements past the canvas are clipped when drawn.
func Layout(logo, punchline, label image.Point) Placement {
	var p Placement

	p.Logo = image.Rect(0, 0, logo.X, logo.Y).Add(image.Pt(center(CanvasWidth, logo.X), LogoTop))

	product := image.Pt(center(CanvasWidth, ProductSize), p.Logo.Max.Y+Gap)
	p.Product = image.Rect(0, 0, ProductSize, ProductSize).Add(product)

	p.Punchline = image.Rect(0, 0, punchline.X, punchline.Y).
		Add(image.Pt(center(CanvasWidth, punchline.X), p.Product.Max.Y+Gap))

	p.Button = image.Rect(0, 0, ButtonWidth, ButtonHeight).
		Add(image.Pt(center(CanvasWidth, ButtonWidth), p.Punchline.Max.Y+Gap))

	p.Label = image.Rect(0, 0, label.X, label.Y).Add(image.Pt(
		p.Button.Min.X+center(ButtonWidth, label.X),
		p.Button.Min.Y+center(ButtonHeight, label.Y),
	))

	return p
}

// center returns the offset that centers size inside outer, rounding toward negative
// infinity so oversized elements spill evenly past both edges.
func center(outer, size int) int {
	d := outer - size
	if d < 0 && d%2 != 0 {
		return d/2 - 1
	}
	return d / 2
}
