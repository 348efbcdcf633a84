package compositor

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const (
	DefaultFontPath     = "coolvetica.otf"
	DefaultHeadlineSize = 40
	DefaultLabelSize    = 20
)

// Fonts resolves the punchline and button faces. A nil font means every face is the
// built-in basicfont, which is what a missing or unreadable font file degrades to.
type Fonts struct {
	font         *opentype.Font
	headlineSize float64
	labelSize    float64
}

// LoadFonts never fails.
func LoadFonts(path string, headlineSize, labelSize float64) *Fonts {
	f := &Fonts{headlineSize: headlineSize, labelSize: labelSize}

	data, err := os.ReadFile(path)
	if err != nil {
		logrus.WithFields(logrus.Fields{"path": path, "error": err}).Warn("Font file unavailable, using default font")
		return f
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		logrus.WithFields(logrus.Fields{"path": path, "error": err}).Warn("Font file unreadable, using default font")
		return f
	}
	f.font = parsed
	return f
}

func (f *Fonts) Fallback() bool {
	return f == nil || f.font == nil
}

// faces builds fresh faces per call: opentype faces keep glyph caches and are not safe
// for concurrent use. The returned func releases them.
func (f *Fonts) faces() (headline, label font.Face, release func()) {
	if f.Fallback() {
		return basicfont.Face7x13, basicfont.Face7x13, func() {}
	}
	headline, err := f.newFace(f.headlineSize)
	if err != nil {
		return basicfont.Face7x13, basicfont.Face7x13, func() {}
	}
	label, err = f.newFace(f.labelSize)
	if err != nil {
		headline.Close()
		return basicfont.Face7x13, basicfont.Face7x13, func() {}
	}
	return headline, label, func() {
		headline.Close()
		label.Close()
	}
}

func (f *Fonts) newFace(size float64) (font.Face, error) {
	return opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
