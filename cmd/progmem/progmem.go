package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KoviRobi/progmem/carray"
	"github.com/KoviRobi/progmem/emitter"
	"github.com/KoviRobi/progmem/limits"
)

type app struct {
	fs      afero.Fs
	v       *viper.Viper
	cfgFile string
	log     *zap.Logger
}

func (a *app) emitter() *emitter.Emitter {
	return &emitter.Emitter{Fs: a.fs, Log: a.log}
}

func newRootCmd(fs afero.Fs, stdout io.Writer) *cobra.Command {
	a := &app{fs: fs, v: viper.New(), log: zap.NewNop()}
	a.v.SetFs(fs)

	rootCmd := &cobra.Command{
		Use:   "progmem [image]",
		Short: "Print an image file as a C PROGMEM array",
		Long: `Reads an image file and prints its raw bytes as a C array placed in program
memory, followed by a length constant, for embedding into firmware:

	// Image: SEVSE_Image.png
	// Size: 1234 bytes
	const unsigned char logo_data[] PROGMEM = {
	0x89, 0x50, 0x4e, 0x47, ...
	};
	const unsigned int logo_data_len = 1234;

The file must decode as an image (PNG, JPEG, GIF or BMP) but the bytes emitted
are the file as stored on disk, not the decoded pixels.

Without arguments SEVSE_Image.png in the current directory is converted. Any
failure is reported as a single "Error: ..." line on standard output.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			path := emitter.DefaultImage
			if len(args) > 0 {
				path = args[0]
			}
			a.emitter().Run(cmd.OutOrStdout(), path, a.v.GetString("name"))
		},
	}
	rootCmd.SetOut(stdout)

	rootCmd.PersistentFlags().String("name", carray.DefaultName, "C identifier of the array, the length is <name>_len")
	rootCmd.PersistentFlags().Int("per-line", 12, "bytes per line of output")
	rootCmd.PersistentFlags().Int64("max-input-bytes", 0, "refuse inputs larger than this (0 for no limit)")
	rootCmd.PersistentFlags().Int64("max-image-pixels", limits.DefaultMaxImagePixels,
		"refuse images whose header claims more pixels than this (0 for no limit)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log debug information to stderr")

	if err := a.v.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		broken(rootCmd, errors.Wrap(err, "cannot bind flags"))
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./progmem.yaml or /etc/progmem.yaml)")
	AddVersionFlag(rootCmd.PersistentFlags(), stdout)

	rootCmd.AddCommand(newQrCmd(a))

	return rootCmd
}

// broken makes cmd fail with err instead of running, for flag wiring that
// could not be set up.
func broken(cmd *cobra.Command, err error) {
	cmd.Run = nil
	cmd.RunE = func(*cobra.Command, []string) error {
		return err
	}
}

// initConfig reads in config file and ENV variables if set.
func (a *app) initConfig(cmd *cobra.Command) error {
	v := a.v
	if a.cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(a.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("/etc")
		v.SetConfigName("progmem")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("progmem")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	} else if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || a.cfgFile != "" {
		return errors.Wrap(err, "cannot read config")
	}

	perLine := v.GetInt("per-line")
	if perLine < 1 {
		return errors.Errorf("per-line must be at least 1, got %d", perLine)
	}
	limits.BytesPerLine = perLine
	limits.MaxInputBytes = v.GetInt64("max-input-bytes")
	limits.MaxImagePixels = v.GetInt64("max-image-pixels")

	a.log = newLogger(v.GetBool("verbose"), cmd.ErrOrStderr())
	return nil
}

// newLogger logs to w, which must not be the output the array goes to.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	al := zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		al.SetLevel(zap.DebugLevel)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), al))
}

func main() {
	err := newRootCmd(afero.NewOsFs(), os.Stdout).Execute()
	if err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}
