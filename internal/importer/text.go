package importer

// text.go turns uploaded bytes into the text handed to the roster engine.
//
// Spreadsheet tools on Windows commonly export CSV as Windows-1252 and may
// prefix UTF-8 output with a byte order mark. Both are handled here so the
// engine only ever sees clean UTF-8.

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Encoding names reported by DecodeText.
const (
	EncodingUTF8        = "utf-8"
	EncodingUTF8BOM     = "utf-8-bom"
	EncodingWindows1252 = "windows-1252"
)

// DecodeText strips a UTF-8 BOM and returns data as a UTF-8 string. Input
// that is not valid UTF-8 is decoded as Windows-1252.
func DecodeText(data []byte) (string, string, error) {
	if bytes.HasPrefix(data, bomUTF8) {
		data = data[len(bomUTF8):]
		if utf8.Valid(data) {
			return string(data), EncodingUTF8BOM, nil
		}
	}

	if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("encoding error: %w", err)
	}
	return string(decoded), EncodingWindows1252, nil
}
