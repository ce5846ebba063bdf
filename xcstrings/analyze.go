package xcstrings

// MissingTranslation is one finding: an original string in a catalog file
// that lacks an approved translation in one or more languages.
//
// Languages holds the full requested list when the string has no
// localizations block at all, and a single language otherwise.
type MissingTranslation struct {
	File      string   `json:"file" yaml:"file"`
	Original  string   `json:"original" yaml:"original"`
	Languages []string `json:"missingLanguages" yaml:"missing_languages"`
}

// Missing returns the findings for the requested languages. Strings are
// visited in sorted order and languages in the order given.
func (c *Catalog) Missing(langs []string) []MissingTranslation {
	var out []MissingTranslation
	for _, key := range c.Keys() {
		rec := c.Strings[key]

		if rec.Localizations == nil {
			if len(langs) == 0 {
				continue
			}
			all := make([]string, len(langs))
			copy(all, langs)
			out = append(out, MissingTranslation{File: c.Path, Original: key, Languages: all})
			continue
		}

		for _, lang := range langs {
			if rec.Translated(lang) {
				continue
			}
			out = append(out, MissingTranslation{File: c.Path, Original: key, Languages: []string{lang}})
		}
	}
	return out
}

// LangStats counts translated strings for one language of a catalog.
type LangStats struct {
	Lang       string
	Total      int
	Translated int
}

// Untranslated returns the number of strings without an approved translation.
func (s LangStats) Untranslated() int { return s.Total - s.Translated }

// Percent returns the translated share, rounded down.
func (s LangStats) Percent() int {
	if s.Total == 0 {
		return 100
	}
	return s.Translated * 100 / s.Total
}

// Stats returns per-language counts for the requested languages.
func (c *Catalog) Stats(langs []string) []LangStats {
	stats := make([]LangStats, 0, len(langs))
	for _, lang := range langs {
		st := LangStats{Lang: lang, Total: len(c.Strings)}
		for _, rec := range c.Strings {
			if rec.Translated(lang) {
				st.Translated++
			}
		}
		stats = append(stats, st)
	}
	return stats
}

// AnalyzeFile parses the catalog at path and returns its findings.
func AnalyzeFile(path string, langs []string) ([]MissingTranslation, error) {
	c, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return c.Missing(langs), nil
}

// AnalyzeDirectory scans dir and analyzes every catalog in listing order,
// one at a time. The first unprocessable file aborts the run and no
// findings are returned.
func AnalyzeDirectory(dir string, langs []string) ([]MissingTranslation, error) {
	paths, err := Scan(dir)
	if err != nil {
		return nil, err
	}

	var all []MissingTranslation
	for _, path := range paths {
		found, err := AnalyzeFile(path, langs)
		if err != nil {
			return nil, err
		}
		all = append(all, found...)
	}
	return all, nil
}
