package analyzer

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// decoderFor maps a configured encoding name to a decoder. UTF-8 is
// handled separately through a validity check.
func decoderFor(name string) *encoding.Decoder {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder()
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder()
	case "euc-kr", "cp949", "ms949":
		return korean.EUCKR.NewDecoder()
	}
	return nil
}

// ReadFile reads a source file trying the configured encodings in order.
// When no configured encoding applies, the bytes are decoded as
// ISO-8859-1, which accepts any byte sequence and so preserves the file
// content for the regex layer instead of failing the analysis.
func ReadFile(path string, encodings []string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	for _, name := range encodings {
		lower := strings.ToLower(strings.TrimSpace(name))
		if lower == "utf-8" || lower == "utf8" {
			if utf8.Valid(raw) {
				return string(raw), nil
			}
			continue
		}
		dec := decoderFor(name)
		if dec == nil {
			continue
		}
		if decoded, _, derr := transform.Bytes(dec, raw); derr == nil {
			return string(decoded), nil
		}
	}

	decoded, _, derr := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if derr != nil {
		return string(raw), nil
	}
	return string(decoded), nil
}

var (
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRegex  = regexp.MustCompile(`//.*`)
)

// StripComments removes Java comments so annotations and call patterns in
// commented-out code do not produce phantom matches.
func StripComments(content string) string {
	content = blockCommentRegex.ReplaceAllString(content, "")
	return lineCommentRegex.ReplaceAllString(content, "")
}
