// Package carray renders a byte buffer as a C array declaration suitable for
// placing in program memory (PROGMEM) on AVR/ESP targets.
package carray

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/KoviRobi/progmem/limits"
)

// DefaultName is the identifier used when none is given.
const DefaultName = "logo_data"

// Declaration is one array and its length constant.
type Declaration struct {
	// Path is only used for the header comment
	Path string
	Name string
	Data []byte
	// BytesPerLine of 0 means limits.BytesPerLine
	BytesPerLine int
}

func (d Declaration) String() string {
	return Format(d)
}

func (d Declaration) perLine() int {
	if d.BytesPerLine > 0 {
		return d.BytesPerLine
	}
	if limits.BytesPerLine > 0 {
		return limits.BytesPerLine
	}
	return 12
}

func (d Declaration) name() string {
	if d.Name == "" {
		return DefaultName
	}
	return d.Name
}

// Write writes the declaration:
//
//	// Image: <path>
//	// Size: <N> bytes
//	const unsigned char <name>[] PROGMEM = {
//	0xHH, 0xHH, ...
//	};
//	const unsigned int <name>_len = <N>;
//
// Every byte, including the last, is followed by ", ". A line break follows
// each full row, and one more precedes the closing brace.
func Write(w io.Writer, d Declaration) error {
	bw := bufio.NewWriter(w)
	name := d.name()
	perLine := d.perLine()

	fmt.Fprintf(bw, "// Image: %s\n", d.Path)
	fmt.Fprintf(bw, "// Size: %d bytes\n", len(d.Data))
	fmt.Fprintf(bw, "const unsigned char %s[] PROGMEM = {\n", name)

	for i, b := range d.Data {
		fmt.Fprintf(bw, "0x%02x, ", b)
		if (i+1)%perLine == 0 {
			bw.WriteByte('\n')
		}
	}

	bw.WriteString("\n};\n")
	fmt.Fprintf(bw, "const unsigned int %s_len = %d;\n", name, len(d.Data))

	return bw.Flush()
}

// Format returns what Write would write.
func Format(d Declaration) string {
	var sb strings.Builder
	// strings.Builder never fails to write
	_ = Write(&sb, d)
	return sb.String()
}
