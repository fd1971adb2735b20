package core

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Recognized encoding names. The set is closed: ParseEncodingOption rejects
// anything else, so downstream code never sees an unknown name.
const (
	EncodingUTF8SIG = "utf-8-sig" // UTF-8 with byte order mark
	EncodingUTF8    = "utf-8"
	EncodingCP1252  = "cp1252" // Windows-1252
	EncodingLatin1  = "latin1" // ISO 8859-1
)

// DefaultEncoding is used for serialization when the option is auto.
const DefaultEncoding = EncodingUTF8SIG

// fallbackEncodings is the ordered list tried when decoding. utf-8-sig is
// first so a BOM is consumed rather than leaking into the first header name;
// latin1 is last because it is total over all byte values.
var fallbackEncodings = []string{EncodingUTF8SIG, EncodingUTF8, EncodingCP1252, EncodingLatin1}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EncodingCandidates builds the ordered list of encodings to attempt when
// reading a file. An explicit request goes first, followed by the fallback
// list with case-insensitive duplicates removed; auto yields the fallback
// list as-is. First-seen order is preserved.
func EncodingCandidates(opt EncodingOption) []string {
	if opt.IsAuto() {
		return append([]string(nil), fallbackEncodings...)
	}
	out := []string{opt.Name()}
	seen := map[string]struct{}{strings.ToLower(opt.Name()): {}}
	for _, enc := range fallbackEncodings {
		key := strings.ToLower(enc)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, enc)
	}
	return out
}

// ResolveOutputEncoding maps the encoding option to the name the serializer
// uses: the explicit name, or DefaultEncoding under auto.
func ResolveOutputEncoding(opt EncodingOption) string {
	if opt.IsAuto() {
		return DefaultEncoding
	}
	return opt.Name()
}

// cp1252Undefined are the Windows-1252 code points with no assigned
// character. x/text decodes them to U+FFFD without erroring, so strict
// decoding has to reject them up front.
var cp1252Undefined = [256]bool{0x81: true, 0x8D: true, 0x8F: true, 0x90: true, 0x9D: true}

// decodeStrict decodes data with the named encoding, failing on any byte the
// encoding cannot represent. This is what makes the ordered-retry contract
// in ReadTable meaningful.
func decodeStrict(data []byte, name string) (string, error) {
	switch strings.ToLower(name) {
	case EncodingUTF8SIG:
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid UTF-8 byte sequence")
		}
		return string(data), nil
	case EncodingUTF8:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid UTF-8 byte sequence")
		}
		return string(data), nil
	case EncodingCP1252:
		for i, b := range data {
			if cp1252Undefined[b] {
				return "", fmt.Errorf("byte 0x%02X at offset %d is undefined in cp1252", b, i)
			}
		}
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case EncodingLatin1:
		// latin1 maps every byte to a code point; decoding is total.
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", name)
	}
}

// decodeReplace decodes data with the named encoding, replacing undecodable
// bytes instead of failing. Used for the detector's permissive sample decode
// and for the reader's final guaranteed pass.
func decodeReplace(data []byte, name string) string {
	switch strings.ToLower(name) {
	case EncodingUTF8SIG:
		data = bytes.TrimPrefix(data, utf8BOM)
		return strings.ToValidUTF8(string(data), "�")
	case EncodingUTF8:
		return strings.ToValidUTF8(string(data), "�")
	case EncodingCP1252:
		// The charmap decoder already substitutes U+FFFD for undefined bytes.
		out, _ := charmap.Windows1252.NewDecoder().Bytes(data)
		return string(out)
	case EncodingLatin1:
		out, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
		return string(out)
	default:
		return strings.ToValidUTF8(string(data), "�")
	}
}

// encodeText encodes text with the named encoding. Runes the target charset
// cannot represent are replaced, so encoding never fails for well-formed
// tables.
func encodeText(text, name string) ([]byte, error) {
	switch strings.ToLower(name) {
	case EncodingUTF8SIG:
		return unicode.UTF8BOM.NewEncoder().Bytes([]byte(text))
	case EncodingUTF8:
		return unicode.UTF8.NewEncoder().Bytes([]byte(text))
	case EncodingCP1252:
		return encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).Bytes([]byte(text))
	case EncodingLatin1:
		return encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes([]byte(text))
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
