package test_utils

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/afero"
)

const (
	ImagePath = "SEVSE_Image.png"
	Name      = "logo_data"
	QRText    = "http://evse.local/"
)

// PNG encodes a width x height gradient as PNG.
func PNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{uint8(x * 16), uint8(y * 16), 0x80, 0xff})
		}
	}

	var buf bytes.Buffer
	Assert(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// HugePNG returns a few dozen bytes of PNG whose header claims width x height
// RGBA pixels, far more than its pixel data holds.
func HugePNG(t *testing.T, width, height uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	chunk := func(typ string, data []byte) {
		binary.Write(&buf, binary.BigEndian, uint32(len(data)))
		body := append([]byte(typ), data...)
		buf.Write(body)
		binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(body))
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], width)
	binary.BigEndian.PutUint32(ihdr[4:], height)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA
	chunk("IHDR", ihdr)

	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	_, err := zw.Write(make([]byte, 16))
	Assert(t, err)
	Assert(t, zw.Close())
	chunk("IDAT", idat.Bytes())

	chunk("IEND", nil)
	return buf.Bytes()
}

func QR(t *testing.T, text string) []byte {
	t.Helper()
	data, err := qrcode.Encode(text, qrcode.Medium, 64)
	Assert(t, err)
	return data
}

// MemFs returns an in-memory filesystem holding the given files.
func MemFs(t *testing.T, files map[string][]byte) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, data := range files {
		Assert(t, afero.WriteFile(fs, path, data, 0o644))
	}
	return fs
}
