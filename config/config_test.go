package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadDefaultsAndValidation(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		f, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if f.Annotations != AnnotationsAuto || f.Format != FormatText || f.ErrorOnMissing {
			t.Fatalf("unexpected defaults: %#v", f)
		}
	})

	t.Run("empty file returns defaults", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "")
		f, err := Load(dir)
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if f.Format != FormatText {
			t.Fatalf("Format = %q, want %q", f.Format, FormatText)
		}
	})

	t.Run("reads values", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "languages: [fr, ' de ']\n"+
			"error_on_missing: true\n"+
			"annotations: github\n"+
			"format: yaml\n")

		f, err := Load(dir)
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if !reflect.DeepEqual(f.Languages, []string{"fr", "de"}) {
			t.Fatalf("Languages = %v, want [fr de]", f.Languages)
		}
		if !f.ErrorOnMissing {
			t.Fatal("ErrorOnMissing = false, want true")
		}
		if f.Annotations != AnnotationsGitHub || f.Format != FormatYAML {
			t.Fatalf("unexpected values: %#v", f)
		}
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "langs: [fr]\n")
		if _, err := Load(dir); err == nil {
			t.Fatal("expected error for unknown key")
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "format: xml\n")
		_, err := Load(dir)
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), `unknown format "xml"`) {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects unknown annotations", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "annotations: gitlab\n")
		if _, err := Load(dir); err == nil {
			t.Fatal("expected validation error")
		}
	})
}

func TestDetectCI(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	if !DetectCI(env(map[string]string{"GITHUB_ACTIONS": "true"})) {
		t.Fatal("DetectCI(GITHUB_ACTIONS=true) = false")
	}
	if DetectCI(env(map[string]string{"GITHUB_ACTIONS": "false"})) {
		t.Fatal("DetectCI(GITHUB_ACTIONS=false) = true")
	}
	if DetectCI(env(nil)) {
		t.Fatal("DetectCI(empty) = true")
	}
}

func TestUseAnnotations(t *testing.T) {
	cases := []struct {
		mode string
		ci   bool
		want bool
	}{
		{AnnotationsAuto, true, true},
		{AnnotationsAuto, false, false},
		{AnnotationsGitHub, false, true},
		{AnnotationsPlain, true, false},
	}
	for _, tc := range cases {
		if got := UseAnnotations(tc.mode, tc.ci); got != tc.want {
			t.Fatalf("UseAnnotations(%q, %v) = %v, want %v", tc.mode, tc.ci, got, tc.want)
		}
	}
}
