package main

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// candidateEncodings are tried in order; the first one that decodes the whole
// input wins. Bytes a candidate cannot map come back as U+FFFD and are
// removed by the ASCII filter, so bad bytes are dropped rather than fatal.
var candidateEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"utf-8", unicode.UTF8},
	{"latin-1", charmap.ISO8859_1},
	{"cp1252", charmap.Windows1252},
	{"iso-8859-1", charmap.ISO8859_1},
}

// Decode turns arbitrary file content into filtered, trimmed ASCII text.
// It never fails; content with no printable ASCII yields "".
func Decode(raw []byte) string {
	text, _ := decodeWithEncoding(raw)
	return text
}

// decodeWithEncoding is Decode that also reports which candidate encoding
// produced the text ("ascii" for the raw fallback).
func decodeWithEncoding(raw []byte) (string, string) {
	text, enc := decodeText(raw)
	return strings.TrimSpace(filterASCII(text)), enc
}

// decodeText returns the decoded text and the name of the encoding used.
func decodeText(raw []byte) (string, string) {
	if len(raw) == 0 {
		return "", candidateEncodings[0].name
	}
	for _, c := range candidateEncodings {
		out, err := c.enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		return string(out), c.name
	}
	return asciiOnly(raw), "ascii"
}

// asciiOnly reads raw as ASCII, dropping every byte outside 0-127.
func asciiOnly(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		if c < 0x80 {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// filterASCII keeps code points below 128 that are printable (>= 32) or
// one of newline, tab, carriage return and form feed.
func filterASCII(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if keepRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keepRune(r rune) bool {
	if r >= 128 {
		return false
	}
	if r >= 32 {
		return true
	}
	switch r {
	case '\n', '\t', '\r', '\f':
		return true
	}
	return false
}
