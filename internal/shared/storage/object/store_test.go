package object

import (
	"strings"
	"testing"
)

func TestExportKey(t *testing.T) {
	key, err := ExportKey("user-1", "exp-1", "Ada_Lovelace_Resume.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(key, "exports/") || !strings.HasSuffix(key, "/exp-1/Ada_Lovelace_Resume.pdf") {
		t.Fatalf("unexpected key %q", key)
	}
	if strings.Contains(key, "user-1") {
		t.Fatalf("expected hashed owner segment, got %q", key)
	}

	key, err = ExportKey("user-1", "exp-1", "../escape.pdf")
	if err != nil || !strings.HasSuffix(key, "/exp-1/.._escape.pdf") {
		t.Fatalf("expected separators to be flattened under the export dir, got %q, %v", key, err)
	}
	if _, err := ExportKey("user-1", "exp-1", ".."); err == nil {
		t.Fatalf("expected bare parent reference to be rejected")
	}
}
