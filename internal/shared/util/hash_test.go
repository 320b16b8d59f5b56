package util

import (
	"strings"
	"testing"
)

func TestHashUserKey(t *testing.T) {
	id := "user-42"
	got := HashUserKey(id)
	if got != HashUserKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	if got == HashUserKey("user-43") {
		t.Fatalf("expected distinct users to hash differently")
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		" a/b\\c.pdf ":               "a_b_c.pdf",
		"Ada \"The\" Lovelace.pdf":   "Ada The Lovelace.pdf",
		"line\nbreak.pdf":            "linebreak.pdf",
		strings.Repeat("x", 200):     strings.Repeat("x", maxFileNameRunes),
		"John_Smith_Jr.._Resume.pdf": "John_Smith_Jr.._Resume.pdf",
		"../x.pdf":                   ".._x.pdf",
	}
	for in, want := range cases {
		if got, err := SanitizeFileName(in); err != nil || got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "  ", ".", "..", " .. ", "\"\""} {
		if _, err := SanitizeFileName(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestAttachmentDisposition(t *testing.T) {
	if got := AttachmentDisposition("Grace_Hopper_Resume.pdf"); got != `attachment; filename="Grace_Hopper_Resume.pdf"` {
		t.Fatalf("unexpected ascii disposition %q", got)
	}
	got := AttachmentDisposition("José_Resume.pdf")
	if !strings.HasPrefix(got, `attachment; filename="Jos__Resume.pdf"; filename*=utf-8''`) {
		t.Fatalf("expected ascii fallback plus RFC 2231 encoding, got %q", got)
	}
	if got := AttachmentDisposition(".."); got != `attachment; filename="download"` {
		t.Fatalf("unexpected fallback %q", got)
	}
	if got := AttachmentDisposition("John_Smith_Jr.._Resume.pdf"); got != `attachment; filename="John_Smith_Jr.._Resume.pdf"` {
		t.Fatalf("expected dotted name to be kept, got %q", got)
	}
}
