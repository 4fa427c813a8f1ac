package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strings"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/KoviRobi/progmem/test_utils"
)

func TestEncodeQR(t *testing.T) {
	data, err := encodeQR(QRText, "High", 96)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())

	expected, err := qrcode.Encode(QRText, qrcode.High, 96)
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestEncodeQRBadLevel(t *testing.T) {
	_, err := encodeQR(QRText, "extreme", 96)
	assert.ErrorContains(t, err, "extreme")
}

func TestQrCommand(t *testing.T) {
	expected, err := qrcode.Encode(QRText, qrcode.Medium, 128)
	require.NoError(t, err)

	out, _, err := run(t, afero.NewMemMapFs(), "qr", "--name", "web_qr", QRText)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "// Image: qr:"+QRText+"\n"))
	assert.Contains(t, out, fmt.Sprintf("// Size: %d bytes\n", len(expected)))
	assert.Contains(t, out, "const unsigned char web_qr[] PROGMEM = {\n")
	assert.Contains(t, out, fmt.Sprintf("const unsigned int web_qr_len = %d;\n", len(expected)))

	var tokens []string
	for _, row := range Tokens(t, out) {
		tokens = append(tokens, row...)
	}
	require.Len(t, tokens, len(expected))
	assert.Equal(t, "0x89", tokens[0])
}

func TestQrCommandFlags(t *testing.T) {
	expected, err := qrcode.Encode(QRText, qrcode.Low, 64)
	require.NoError(t, err)

	out, _, err := run(t, afero.NewMemMapFs(), "qr", "--size", "64", "--level", "low", QRText)
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("const unsigned int logo_data_len = %d;\n", len(expected)))
}

func TestQrCommandError(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), "qr", "--level", "extreme", QRText)
	require.NoError(t, err)
	assert.Equal(t, "Error: unknown QR recovery level \"extreme\"\n", out)
}

func TestQrCommandArgs(t *testing.T) {
	_, _, err := run(t, afero.NewMemMapFs(), "qr")
	assert.Error(t, err)
}

func TestBindQrFlags(t *testing.T) {
	v := viper.New()
	cmd := newQrCmd(&app{fs: afero.NewMemMapFs(), v: v})
	require.NoError(t, bindQrFlags(v, cmd.Flags()))

	err := bindQrFlags(viper.New(), pflag.NewFlagSet("renamed", pflag.ContinueOnError))
	assert.ErrorContains(t, err, "--size")
}

func TestBrokenCommand(t *testing.T) {
	cmd := &cobra.Command{
		Use: "qr",
		Run: func(*cobra.Command, []string) { t.Fatal("should not run") },
	}
	broken(cmd, errors.New("cannot bind --size"))
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.ErrorContains(t, cmd.Execute(), "cannot bind --size")
}
