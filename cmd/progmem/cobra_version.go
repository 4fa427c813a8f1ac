package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/spf13/pflag"
)

// Replaced in tests
var exit = os.Exit

// AddVersionFlag adds -v and --version flags to the FlagSet, which print
// version information to out and exit. A nil FlagSet means pflag.CommandLine.
func AddVersionFlag(f *pflag.FlagSet, out io.Writer) {
	if f == nil {
		f = pflag.CommandLine
	}
	flag := f.VarPF(versionFlag{out}, "version", "v", "print version information and exit")
	flag.DefValue = "false"
	flag.NoOptDefVal = "true"
}

func writeVersion(out io.Writer) {
	fmt.Fprintln(out, "Version:", versioninfo.Version)
	fmt.Fprintln(out, "Revision:", versioninfo.Revision)
	if versioninfo.Revision != "unknown" {
		fmt.Fprintln(out, "Committed:", versioninfo.LastCommit.Format(time.RFC1123))
		if versioninfo.DirtyBuild {
			fmt.Fprintln(out, "Dirty Build")
		}
	}
}

type versionFlag struct {
	out io.Writer
}

func (f versionFlag) IsBoolFlag() bool {
	return true
}

func (f versionFlag) String() string {
	return ""
}

func (f versionFlag) Type() string {
	return "bool"
}

func (f versionFlag) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if b {
		writeVersion(f.out)
		exit(0)
	}
	return nil
}
