package imageio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/ds124wfegd/adstudio/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{name: "png", data: encodePNG(t, solid(20, 10, color.NRGBA{R: 255, A: 255}))},
		{name: "jpeg", data: encodeJPEG(t, solid(20, 10, color.NRGBA{G: 255, A: 255}))},
		{name: "garbage", data: []byte("definitely not an image"), wantErr: true},
		{name: "empty", data: nil, wantErr: true},
		{name: "header claims 2^20 x 2^20", data: pngHeaderOnly(1<<20, 1<<20), wantErr: true},
		{name: "header just over the cap", data: pngHeaderOnly(DefaultMaxPixels, 2), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, entity.ErrDecode))
				var decodeErr *DecodeError
				assert.True(t, errors.As(err, &decodeErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 20, img.Bounds().Dx())
			assert.Equal(t, 10, img.Bounds().Dy())
		})
	}
}

func TestDecodeMaxPixels(t *testing.T) {
	t.Cleanup(func() { SetMaxPixels(0) })
	data := encodePNG(t, solid(20, 10, color.NRGBA{R: 255, A: 255}))

	SetMaxPixels(199)
	_, err := Decode(data)
	assert.True(t, errors.Is(err, entity.ErrDecode))
	assert.Contains(t, err.Error(), "20x10")

	SetMaxPixels(200)
	_, err = Decode(data)
	assert.NoError(t, err)

	SetMaxPixels(0)
	assert.Equal(t, int64(DefaultMaxPixels), MaxPixels())
}

func TestToRGBDropsAlpha(t *testing.T) {
	src := solid(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	rgb := ToRGB(src)

	for i := 0; i < len(rgb.Pix); i += 4 {
		assert.Equal(t, uint8(10), rgb.Pix[i])
		assert.Equal(t, uint8(20), rgb.Pix[i+1])
		assert.Equal(t, uint8(30), rgb.Pix[i+2])
		assert.Equal(t, uint8(0xff), rgb.Pix[i+3])
	}
}

func TestPrepareBase(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{name: "small square", width: 100, height: 100},
		{name: "portrait", width: 300, height: 900},
		{name: "already working size", width: BaseWidth, height: BaseHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodePNG(t, solid(tt.width, tt.height, color.NRGBA{B: 255, A: 60}))

			img, err := PrepareBase(data)

			require.NoError(t, err)
			assert.Equal(t, BaseWidth, img.Bounds().Dx())
			assert.Equal(t, BaseHeight, img.Bounds().Dy())
			assert.Equal(t, uint8(0xff), img.NRGBAAt(BaseWidth/2, BaseHeight/2).A)
		})
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(solid(7, 3, color.NRGBA{R: 1, G: 2, B: 3, A: 255}))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 7, cfg.Width)
	assert.Equal(t, 3, cfg.Height)
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

// pngHeaderOnly returns a tiny PNG whose IHDR claims w x h RGBA pixels with no pixel data.
func pngHeaderOnly(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA
	writeChunk(&buf, "IHDR", ihdr)
	writeChunk(&buf, "IDAT", nil)
	writeChunk(&buf, "IEND", nil)
	return buf.Bytes()
}

func writeChunk(buf *bytes.Buffer, typ string, data []byte) {
	_ = binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.WriteString(typ)
	buf.Write(data)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	_ = binary.Write(buf, binary.BigEndian, crc.Sum32())
}
