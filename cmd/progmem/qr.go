package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var qrLevels = map[string]qrcode.RecoveryLevel{
	"low":     qrcode.Low,
	"medium":  qrcode.Medium,
	"high":    qrcode.High,
	"highest": qrcode.Highest,
}

func encodeQR(text, level string, size int) ([]byte, error) {
	lvl, ok := qrLevels[strings.ToLower(level)]
	if !ok {
		return nil, errors.Errorf("unknown QR recovery level %q", level)
	}
	png, err := qrcode.Encode(text, lvl, size)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode QR code")
	}
	return png, nil
}

func bindQrFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{"size", "level"} {
		if err := v.BindPFlag("qr-"+key, flags.Lookup(key)); err != nil {
			return errors.Wrapf(err, "cannot bind --%s", key)
		}
	}
	return nil
}

func newQrCmd(a *app) *cobra.Command {
	qrCmd := &cobra.Command{
		Use:   "qr <text>",
		Short: "Print a QR code PNG as a C PROGMEM array",
		Long: `Encodes text (e.g. the URL of the charger's web interface) as a QR code PNG
and prints it in the same format as an image file would be, with the header
comment naming "qr:<text>" instead of a path.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			e := a.emitter()
			png, err := encodeQR(args[0], a.v.GetString("qr-level"), a.v.GetInt("qr-size"))
			if err == nil {
				err = e.EmitBytes(cmd.OutOrStdout(), "qr:"+args[0], a.v.GetString("name"), png)
			}
			e.Report(cmd.OutOrStdout(), err)
		},
	}

	qrCmd.Flags().Int("size", 128, "width and height of the PNG in pixels")
	qrCmd.Flags().String("level", "medium", "error recovery level: low, medium, high or highest")

	if err := bindQrFlags(a.v, qrCmd.Flags()); err != nil {
		broken(qrCmd, err)
	}

	return qrCmd
}
