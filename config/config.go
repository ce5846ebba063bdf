// Package config — .xcstatus.yaml configuration file support.
//
// The file is optional. When present in the scanned directory it supplies
// defaults for command-line flags; flags given explicitly always win.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = ".xcstatus.yaml"

// Annotation modes.
const (
	AnnotationsAuto   = "auto"
	AnnotationsGitHub = "github"
	AnnotationsPlain  = "plain"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .xcstatus.yaml structure.
type File struct {
	// Languages is the default language list for `xcstatus status`.
	Languages []string `yaml:"languages,omitempty"`
	// ErrorOnMissing makes findings fail the run, like --errorOnMissing.
	ErrorOnMissing bool `yaml:"error_on_missing,omitempty"`
	// Annotations selects the message style: auto, github or plain.
	Annotations string `yaml:"annotations,omitempty"`
	// Format selects the report format: text, json or yaml.
	Format string `yaml:"format,omitempty"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load loads and validates .xcstatus.yaml from dir. A missing file yields
// the defaults.
func Load(dir string) (*File, error) {
	f := &File{}
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			f.applyDefaults()
			return f, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func (f *File) applyDefaults() {
	if f.Annotations == "" {
		f.Annotations = AnnotationsAuto
	}
	if f.Format == "" {
		f.Format = FormatText
	}
	for i, lang := range f.Languages {
		f.Languages[i] = strings.TrimSpace(lang)
	}
}

// Validate checks enumerated values.
func (f *File) Validate() error {
	if err := ValidateAnnotations(f.Annotations); err != nil {
		return err
	}
	return ValidateFormat(f.Format)
}

// ValidateAnnotations rejects unknown annotation modes.
func ValidateAnnotations(mode string) error {
	switch mode {
	case AnnotationsAuto, AnnotationsGitHub, AnnotationsPlain:
		return nil
	}
	return fmt.Errorf("unknown annotations mode %q (valid: auto, github, plain)", mode)
}

// ValidateFormat rejects unknown output formats.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q (valid: text, json, yaml)", format)
}

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// DetectCI reports whether the process runs under GitHub Actions, whose
// workflow-command syntax the annotations use.
func DetectCI(getenv func(string) string) bool {
	return getenv("GITHUB_ACTIONS") == "true"
}

// UseAnnotations resolves an annotation mode to a yes/no decision.
func UseAnnotations(mode string, ci bool) bool {
	switch mode {
	case AnnotationsGitHub:
		return true
	case AnnotationsPlain:
		return false
	}
	return ci
}
