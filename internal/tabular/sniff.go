package tabular

import (
	"bytes"
	"unicode/utf8"
)

// Format is the detected input file format.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatDelimited
	FormatSpreadsheet
)

func (f Format) String() string {
	switch f {
	case FormatDelimited:
		return "delimited"
	case FormatSpreadsheet:
		return "spreadsheet"
	default:
		return "unknown"
	}
}

// xlsxMagic is the ZIP local-file-header signature. XLSX workbooks are ZIP
// containers, so this is sufficient to route to the spreadsheet parser.
var xlsxMagic = []byte{0x50, 0x4b, 0x03, 0x04}

// SniffFormat inspects a content prefix and classifies the file format.
// The fallback from delimited text to spreadsheet is a designed branch here,
// not an exception raised by a failed CSV parse: spreadsheet detection is by
// container magic, delimited detection by the content being header-like text.
func SniffFormat(head []byte) Format {
	if len(head) == 0 {
		return FormatUnknown
	}
	if bytes.HasPrefix(head, xlsxMagic) {
		return FormatSpreadsheet
	}
	if looksDelimited(head) {
		return FormatDelimited
	}
	return FormatUnknown
}

// looksDelimited reports whether the prefix resembles a delimited text table:
// a first line that is valid UTF-8, contains at least one comma, and carries
// no control bytes (tab, CR, LF excepted).
func looksDelimited(head []byte) bool {
	line := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		line = head[:i]
	}
	line = bytes.TrimSuffix(line, []byte{'\r'})
	if !bytes.ContainsRune(line, ',') || !utf8.Valid(line) {
		return false
	}
	for _, b := range head {
		if b < 0x20 && b != '\t' && b != '\r' && b != '\n' {
			return false
		}
	}
	return true
}
