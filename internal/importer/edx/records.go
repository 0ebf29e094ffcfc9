package edx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eamon-archive/eamon-import/internal/importer"
)

// Fixed record sizes of the EDX binary suite. Names are space-padded text of
// the given width; descriptions are one 255-byte block per record in the
// paired .DSC file.
const (
	roomNameLen    = 79
	entityNameLen  = 35
	descBlockLen   = 255
	roomFieldLen   = 22 // 11 little-endian int16s
	artifactFields = 16 // 8 int16s
	monsterFields  = 26 // 13 int16s
)

// readBlock reads exactly n bytes. A clean EOF before the first byte reports
// done; this is the sole loop-termination condition of the record readers,
// since the files carry no record count.
func readBlock(r io.Reader, n int) (b []byte, done bool, err error) {
	b = make([]byte, n)
	_, err = io.ReadFull(r, b)
	if errors.Is(err, io.EOF) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %d-byte block: %w", n, err)
	}
	return b, false, nil
}

// int16Fields unpacks little-endian signed 16-bit integers.
func int16Fields(b []byte) []int {
	out := make([]int, len(b)/2)
	for i := range out {
		out[i] = int(int16(binary.LittleEndian.Uint16(b[i*2:])))
	}
	return out
}

// decodeText converts a padded CP437 text field to a trimmed string.
func decodeText(b []byte) string {
	return strings.TrimRight(importer.DecodeCP437(b), " \x00")
}
