// Package source reads an image file verbatim. The file is also decoded, so
// anything that isn't a recognised image is rejected, but only the raw bytes
// are ever handed on.
package source

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
	"github.com/sergeymakinen/go-bmp"
	"github.com/spf13/afero"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/KoviRobi/progmem/limits"
)

func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
}

var (
	ErrTooLarge      = errors.New("input too large")
	ErrTooManyPixels = errors.New("image has too many pixels")
)

type Image struct {
	Path string
	// Data is the file contents, not the decoded pixels
	Data   []byte
	Format string
	Bounds image.Rectangle
}

func Read(fs afero.Fs, path string) (Image, error) {
	data, err := readAll(fs, path)
	if err != nil {
		return Image{}, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, errors.Wrapf(err, "cannot decode image %s", path)
	}
	// Decoding allocates for every pixel the header claims
	pixels := int64(cfg.Width) * int64(cfg.Height)
	if limits.MaxImagePixels > 0 && pixels > limits.MaxImagePixels {
		return Image{}, errors.Wrapf(ErrTooManyPixels, "%s is %dx%d, limit is %d pixels",
			path, cfg.Width, cfg.Height, limits.MaxImagePixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, errors.Wrapf(err, "cannot decode image %s", path)
	}

	return Image{
		Path:   path,
		Data:   data,
		Format: format,
		Bounds: img.Bounds(),
	}, nil
}

func readAll(fs afero.Fs, path string) ([]byte, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open image")
	}
	defer file.Close()

	if limits.MaxInputBytes > 0 {
		info, err := file.Stat()
		if err != nil {
			return nil, errors.Wrapf(err, "cannot stat %s", path)
		}
		if info.Size() > limits.MaxInputBytes {
			return nil, errors.Wrapf(ErrTooLarge, "%s is %d bytes, limit is %d",
				path, info.Size(), limits.MaxInputBytes)
		}
	}

	data, err := afero.ReadAll(file)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}
	return data, nil
}
