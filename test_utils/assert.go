package test_utils

import (
	"strings"
	"testing"
)

func Assert(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// Tokens returns the hex byte tokens of an emitted array body, one slice per
// output row, skipping the header, the closing brace and the length line.
func Tokens(t *testing.T, out string) [][]string {
	t.Helper()
	_, body, found := strings.Cut(out, "PROGMEM = {\n")
	if !found {
		t.Fatalf("No array declaration in output:\n%s", out)
	}
	body, _, found = strings.Cut(body, "};\n")
	if !found {
		t.Fatalf("Unterminated array declaration in output:\n%s", out)
	}

	var rows [][]string
	for _, line := range strings.Split(strings.TrimSuffix(body, "\n"), "\n") {
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(strings.TrimSuffix(line, ", "), ", "))
	}
	return rows
}
