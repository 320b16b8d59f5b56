package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("OBJECT_STORE", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GEMINI_MODEL", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.Env != "dev" || cfg.ObjectStoreType != "local" {
		t.Fatalf("unexpected env/store: %q %q", cfg.Env, cfg.ObjectStoreType)
	}
	if cfg.JWTSecret == "" {
		t.Fatalf("expected a dev jwt secret")
	}
	if cfg.GeminiModel == "" {
		t.Fatalf("expected a default gemini model")
	}
}

func TestLoadEnvFilesDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "RB_TEST_FROM_FILE=\"file value\"\nRB_TEST_PRESET=file\n# comment\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("RB_TEST_PRESET", "env")
	t.Cleanup(func() { os.Unsetenv("RB_TEST_FROM_FILE") })

	loadEnvFiles(filepath.Join(dir, "missing.env"), path)

	if got := os.Getenv("RB_TEST_FROM_FILE"); got != "file value" {
		t.Fatalf("expected value from file, got %q", got)
	}
	if got := os.Getenv("RB_TEST_PRESET"); got != "env" {
		t.Fatalf("expected environment to win, got %q", got)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{Env: "dev", ObjectStoreType: "local"}).Validate(); err != nil {
		t.Fatalf("dev config should validate: %v", err)
	}
	err := (Config{Env: "production", ObjectStoreType: "s3"}).Validate()
	if err == nil {
		t.Fatalf("expected production errors")
	}
	for _, want := range []string{"DATABASE_URL", "JWT_SECRET", "S3_BUCKET"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in %v", want, err)
		}
	}
}

func TestProductionHasNoDevSecret(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("JWT_SECRET", "")
	if cfg := Load(); cfg.JWTSecret != "" {
		t.Fatalf("production must not fall back to a dev secret")
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("RB_TEST_BOOL", "true")
	if !getBool("RB_TEST_BOOL", false) {
		t.Fatalf("expected true")
	}
	t.Setenv("RB_TEST_BOOL", "maybe")
	if getBool("RB_TEST_BOOL", false) {
		t.Fatalf("expected default for malformed value")
	}
}

func TestNormalizers(t *testing.T) {
	if normalizeEnv("PROD") != "production" || normalizeEnv("weird") != "dev" {
		t.Fatalf("unexpected env normalization")
	}
	if normalizeStoreType(" S3 ") != "s3" || normalizeStoreType("gcs") != "local" {
		t.Fatalf("unexpected store normalization")
	}
	if got := splitAndTrim(" a, ,b "); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected split %v", got)
	}
}
