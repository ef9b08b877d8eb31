package runner

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// sourceEncoding returns the encoding announced by the byte order mark of
// src, or nil for UTF-8 without a BOM.
func sourceEncoding(src []byte) encoding.Encoding {
	switch {
	case bytes.HasPrefix(src, []byte{0xEF, 0xBB, 0xBF}):
		return unicode.UTF8BOM
	case bytes.HasPrefix(src, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case bytes.HasPrefix(src, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	}
	return nil
}

// decodeSource returns src as BOM-less UTF-8 together with the encoding
// to restore on output.
func decodeSource(src []byte) ([]byte, encoding.Encoding, error) {
	enc := sourceEncoding(src)
	if enc == nil {
		return src, nil, nil
	}
	text, err := enc.NewDecoder().Bytes(src)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding source: %w", err)
	}
	return text, enc, nil
}

// encodeSource converts text back to enc. A nil enc leaves it as is.
func encodeSource(text []byte, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return text, nil
	}
	out, err := enc.NewEncoder().Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("encoding output: %w", err)
	}
	return out, nil
}
