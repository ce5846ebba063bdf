// Package xcstrings implements reading of Xcode string catalogs (.xcstrings)
// and detection of missing translations in them.
//
// The expected file format is:
//
//	{
//	    "sourceLanguage": "en",
//	    "strings": {
//	        "Hello": {
//	            "localizations": {
//	                "fr": { "stringUnit": { "state": "translated", "value": "Bonjour" } },
//	                "de": { "stringUnit": { "state": "needs_review", "value": "Hallo" } }
//	            }
//	        },
//	        "Bye": {}
//	    },
//	    "version": "1.0"
//	}
//
// Only a string unit whose state is exactly "translated" counts as a
// completed translation. A string with no "localizations" block at all is
// untranslated in every language.
package xcstrings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// Ext is the file name suffix of a string catalog.
const Ext = ".xcstrings"

// StateTranslated is the only string unit state that counts as translated.
const StateTranslated = "translated"

// ---------------------------------------------------------------------------
// File model
// ---------------------------------------------------------------------------

// Catalog is a parsed string catalog.
type Catalog struct {
	// Path is the file the catalog was read from (empty for Parse).
	Path string
	// SourceLanguage is the catalog's development language, if declared.
	SourceLanguage string
	// Version is the catalog format version, if declared.
	Version string
	// Strings maps original (source) strings to their translation records.
	Strings map[string]Record
}

// Record holds the translation state of one original string.
type Record struct {
	// Localizations maps language code to entry. A nil map means the
	// catalog has no localizations block for the string.
	Localizations map[string]Localization
}

// Localization is one language's translation unit for one original string.
type Localization struct {
	// HasUnit reports whether a stringUnit object was present.
	HasUnit bool
	// State is the stringUnit state, empty when absent or not a string.
	State string
}

// Translated reports whether the entry is an approved translation.
func (l Localization) Translated() bool {
	return l.HasUnit && l.State == StateTranslated
}

// Translated reports whether lang has an approved translation.
func (r Record) Translated(lang string) bool {
	loc, ok := r.Localizations[lang]
	return ok && loc.Translated()
}

// Keys returns the original strings in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.Strings))
	for k := range c.Strings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Languages returns every language that appears in any localizations block,
// sorted.
func (c *Catalog) Languages() []string {
	seen := make(map[string]bool)
	var langs []string
	for _, rec := range c.Strings {
		for lang := range rec.Localizations {
			if !seen[lang] {
				seen[lang] = true
				langs = append(langs, lang)
			}
		}
	}
	sort.Strings(langs)
	return langs
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// document mirrors the fields of the catalog JSON that are read.
type document struct {
	SourceLanguage json.RawMessage       `json:"sourceLanguage"`
	Version        json.RawMessage       `json:"version"`
	Strings        map[string]*rawRecord `json:"strings"`
}

type rawRecord struct {
	Localizations map[string]json.RawMessage `json:"localizations"`
}

// ParseFile reads and parses a string catalog from disk. Any failure is
// reported as a *FileUnprocessableError.
func ParseFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileUnprocessableError{Path: path, Err: err}
	}
	c, err := Parse(data)
	if err != nil {
		return nil, &FileUnprocessableError{Path: path, Err: err}
	}
	c.Path = path
	return c, nil
}

// Parse parses string catalog content.
func Parse(data []byte) (*Catalog, error) {
	if !isObject(data) {
		return nil, errors.New("parsing catalog: top level is not a JSON object")
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if doc.Strings == nil {
		return nil, errors.New(`parsing catalog: no "strings" object`)
	}

	c := &Catalog{
		SourceLanguage: optionalString(doc.SourceLanguage),
		Version:        optionalString(doc.Version),
		Strings:        make(map[string]Record, len(doc.Strings)),
	}

	for key, raw := range doc.Strings {
		if raw == nil {
			return nil, fmt.Errorf("parsing catalog: entry for %q is not an object", key)
		}
		rec := Record{}
		if raw.Localizations != nil {
			rec.Localizations = make(map[string]Localization, len(raw.Localizations))
			for lang, entry := range raw.Localizations {
				rec.Localizations[lang] = decodeLocalization(entry)
			}
		}
		c.Strings[key] = rec
	}

	return c, nil
}

// decodeLocalization never fails: a malformed language entry simply does not
// count as translated.
func decodeLocalization(raw json.RawMessage) Localization {
	var entry struct {
		StringUnit json.RawMessage `json:"stringUnit"`
	}
	if !isObject(raw) || json.Unmarshal(raw, &entry) != nil || !isObject(entry.StringUnit) {
		return Localization{}
	}

	var unit struct {
		State any `json:"state"`
	}
	if err := json.Unmarshal(entry.StringUnit, &unit); err != nil {
		return Localization{HasUnit: true}
	}
	state, _ := unit.State.(string)
	return Localization{HasUnit: true, State: state}
}

func isObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func optionalString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
