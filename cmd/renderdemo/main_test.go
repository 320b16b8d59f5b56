package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderAndInspectSample(t *testing.T) {
	out := filepath.Join(t.TempDir(), "resume.pdf")

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"render", "--out", out, "--page-size", "Letter"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "OK: wrote") {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(out), "sample_resume.json")); err != nil {
		t.Fatalf("expected input json next to pdf: %v", err)
	}

	buf.Reset()
	root = newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"inspect", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "pages: ") {
		t.Fatalf("unexpected inspect output %q", buf.String())
	}
}

func TestInspectStoredKey(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "exports", "owner", "exp-1", "resume.pdf")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"render", "--out", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	var buf bytes.Buffer
	root = newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"inspect", "--store-dir", dir, "--text", "exports/owner/exp-1/resume.pdf"})
	if err := root.Execute(); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "pages: ") || !strings.Contains(buf.String(), "Jordan Lee") {
		t.Fatalf("unexpected inspect output %q", buf.String())
	}

	root = newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"inspect", "--store-dir", dir, "exports/owner/missing.pdf"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for a missing key")
	}
}

func TestRenderRejectsInvalidInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(in, []byte(`{"skills":null}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"render", "--in", in, "--out", filepath.Join(dir, "x.pdf")})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for invalid document")
	}

	root = newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"render", "--out", filepath.Join(dir, "y.pdf"), "--margin", "0"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for zero margin")
	}
}
