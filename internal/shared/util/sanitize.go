package util

import (
	"errors"
	"mime"
	"strings"
	"unicode"
)

const maxFileNameRunes = 120

// ErrInvalidFileName is returned for names that are empty or resolve to a
// relative directory reference.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName flattens path separators, drops control characters and
// quotes, and caps the length. Dots inside a name are kept; the bare "." and
// ".." names are rejected.
func SanitizeFileName(name string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune('_')
		case r == '"' || unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	s := []rune(strings.TrimSpace(b.String()))
	if len(s) == 0 || string(s) == "." || string(s) == ".." {
		return "", ErrInvalidFileName
	}
	if len(s) > maxFileNameRunes {
		s = s[:maxFileNameRunes]
	}
	return string(s), nil
}

// AttachmentDisposition builds a quoted Content-Disposition value for a
// download. Non-ASCII names also get an RFC 2231 filename* parameter.
func AttachmentDisposition(fileName string) string {
	name, err := SanitizeFileName(fileName)
	if err != nil {
		name = "download"
	}
	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return '_'
		}
		return r
	}, name)
	v := `attachment; filename="` + ascii + `"`
	if ascii == name {
		return v
	}
	if ext := mime.FormatMediaType("attachment", map[string]string{"filename": name}); ext != "" {
		v += "; " + strings.TrimPrefix(ext, "attachment; ")
	}
	return v
}
