// Package gbk converts between the GB18030 text used in vendor records and Go strings.
package gbk

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// Decode converts a NUL-terminated GB18030 field to UTF-8. Bytes after the
// first NUL are ignored. Undecodable sequences become U+FFFD.
func Decode(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if len(b) == 0 {
		return ""
	}
	if isASCII(b) {
		return string(b)
	}
	out, err := simplifiedchinese.GB18030.NewDecoder().Bytes(b)
	if err != nil {
		return string(bytes.ToValidUTF8(b, []byte(string(utf8.RuneError))))
	}
	return string(out)
}

// Encode converts s to GB18030.
func Encode(s string) ([]byte, error) {
	if isASCII([]byte(s)) {
		return []byte(s), nil
	}
	out, err := simplifiedchinese.GB18030.NewEncoder().String(s)
	if err != nil {
		return nil, fmt.Errorf("encoding %q as GB18030: %w", s, err)
	}
	return []byte(out), nil
}

// Put writes s into the fixed field dst as NUL-terminated GB18030. Text that
// does not fit is cut at a character boundary so at least one NUL remains.
// It returns the number of bytes written, excluding the terminator.
func Put(dst []byte, s string) (int, error) {
	clear(dst)
	if len(dst) == 0 {
		return 0, nil
	}
	limit := len(dst) - 1
	enc := simplifiedchinese.GB18030.NewEncoder()
	n := 0
	for _, r := range s {
		var buf []byte
		if r < utf8.RuneSelf {
			buf = []byte{byte(r)}
		} else {
			out, err := enc.String(string(r))
			if err != nil {
				return n, fmt.Errorf("encoding %q as GB18030: %w", r, err)
			}
			buf = []byte(out)
		}
		if n+len(buf) > limit {
			break
		}
		n += copy(dst[n:], buf)
	}
	return n, nil
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
