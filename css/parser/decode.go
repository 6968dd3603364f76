package parser

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

var charsetPrefix = []byte(`@charset "`)

// fallbackEncoding implements the encoding determination of
// https://www.w3.org/TR/css-syntax-3/#input-byte-stream, once the
// BOM has been checked.
func fallbackEncoding(css []byte, protocolEncoding, environmentEncoding string) encoding.Encoding {
	if protocolEncoding != "" {
		if enc, err := htmlindex.Get(protocolEncoding); err == nil {
			return enc
		}
	}
	if bytes.HasPrefix(css, charsetPrefix) {
		rest := css[len(charsetPrefix):]
		if end := bytes.Index(rest, []byte(`";`)); end >= 0 && end < 100 {
			name := string(rest[:end])
			if enc, err := htmlindex.Get(name); err == nil {
				// a declared UTF-16 is handled as UTF-8
				if n, _ := htmlindex.Name(enc); strings.HasPrefix(n, "utf-16") {
					return unicode.UTF8
				}
				return enc
			}
		}
	}
	if environmentEncoding != "" {
		if enc, err := htmlindex.Get(environmentEncoding); err == nil {
			return enc
		}
	}
	return unicode.UTF8
}

// DecodeSheet returns the text of a style sheet file, using, in order,
// its BOM, the encoding given by the transport layer (like the charset
// of a Content-Type header), its `@charset` rule and the encoding of
// the referring document. Both encodings may be empty.
func DecodeSheet(css []byte, protocolEncoding, environmentEncoding string) (string, error) {
	var enc encoding.Encoding
	switch {
	case bytes.HasPrefix(css, []byte{0xEF, 0xBB, 0xBF}):
		return string(css[3:]), nil
	case bytes.HasPrefix(css, []byte{0xFE, 0xFF}):
		enc = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	case bytes.HasPrefix(css, []byte{0xFF, 0xFE}):
		enc = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	default:
		enc = fallbackEncoding(css, protocolEncoding, environmentEncoding)
	}
	if enc == unicode.UTF8 {
		if !utf8.Valid(css) {
			return strings.ToValidUTF8(string(css), "\uFFFD"), nil
		}
		return string(css), nil
	}
	out, err := enc.NewDecoder().Bytes(css)
	if err != nil {
		return "", fmt.Errorf("decoding style sheet: %w", err)
	}
	return string(out), nil
}
