package emitter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/KoviRobi/progmem/carray"
	"github.com/KoviRobi/progmem/source"
)

// DefaultImage is converted when no path is given.
const DefaultImage = "SEVSE_Image.png"

// Emitter converts image files into PROGMEM declarations. The zero value reads
// from the OS filesystem and does not log.
type Emitter struct {
	Fs  afero.Fs
	Log *zap.Logger
	// 0 means limits.BytesPerLine
	BytesPerLine int
}

func (e *Emitter) fs() afero.Fs {
	if e.Fs == nil {
		return afero.NewOsFs()
	}
	return e.Fs
}

func (e *Emitter) log() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// Emit writes the PROGMEM declaration for the image at path to w. The whole
// declaration is rendered before anything is written, so on error w is left
// untouched.
func (e *Emitter) Emit(w io.Writer, path, name string) error {
	img, err := source.Read(e.fs(), path)
	if err != nil {
		return err
	}
	e.log().Debug("Decoded image",
		zap.String("path", img.Path),
		zap.String("format", img.Format),
		zap.Int("width", img.Bounds.Dx()),
		zap.Int("height", img.Bounds.Dy()),
	)
	return e.EmitBytes(w, path, name, img.Data)
}

// EmitBytes writes the declaration of an in-memory buffer, label takes the
// place of the path in the header comment.
func (e *Emitter) EmitBytes(w io.Writer, label, name string, data []byte) error {
	var buf bytes.Buffer
	err := carray.Write(&buf, carray.Declaration{
		Path:         label,
		Name:         name,
		Data:         data,
		BytesPerLine: e.BytesPerLine,
	})
	if err != nil {
		return err
	}

	if _, err := buf.WriteTo(w); err != nil {
		return errors.Wrap(err, "cannot write declaration")
	}
	e.log().Info("Emitted array",
		zap.String("image", label),
		zap.String("name", name),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Run is Emit with every failure reported as a single "Error: ..." line on w
// instead of being returned.
func (e *Emitter) Run(w io.Writer, path, name string) {
	e.Report(w, e.Emit(w, path, name))
}

// Report prints err, if any, the way Run does.
func (e *Emitter) Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	e.log().Debug("Conversion failed", zap.Error(err))
	fmt.Fprintf(w, "Error: %v\n", err)
}
