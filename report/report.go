// Package report renders missing-translation findings for people and for CI.
//
// Plain mode prints one readable line per finding. GitHub mode prints
// workflow commands (::warning / ::error) so findings show up as inline
// annotations on the catalog files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/xcstatus/config"
	"github.com/minios-linux/xcstatus/i18n"
	"github.com/minios-linux/xcstatus/langmeta"
	"github.com/minios-linux/xcstatus/xcstrings"
)

// Mode selects the message style.
type Mode int

const (
	ModePlain Mode = iota
	ModeGitHub
)

// Reporter writes findings and errors to Out.
type Reporter struct {
	Out  io.Writer
	Mode Mode
	// Fail marks findings as errors rather than warnings.
	Fail bool
}

var (
	pathColor = color.New(color.FgCyan).SprintFunc()
	langColor = color.New(color.FgYellow).SprintFunc()
	headColor = color.New(color.FgBlue, color.Bold).SprintFunc()
)

// Finding writes one finding.
func (r *Reporter) Finding(f xcstrings.MissingTranslation) {
	langs := strings.Join(f.Languages, ", ")
	if r.Mode == ModeGitHub {
		level := "warning"
		if r.Fail {
			level = "error"
		}
		msg := i18n.T("Missing translation for \"%s\" in %s", f.Original, langs)
		fmt.Fprintf(r.Out, "::%s file=%s::%s\n", level, escapeProperty(f.File), escapeData(msg))
		return
	}
	fmt.Fprintf(r.Out, "%s: %s\n", pathColor(f.File),
		i18n.T("\"%s\" is missing %s", f.Original, langColor(langs)))
}

// Findings writes every finding in order.
func (r *Reporter) Findings(fs []xcstrings.MissingTranslation) {
	for _, f := range fs {
		r.Finding(f)
	}
}

// Error writes a fatal error, naming the offending path when known.
func (r *Reporter) Error(err error) {
	path := xcstrings.PathOf(err)
	if r.Mode == ModeGitHub {
		if path != "" {
			fmt.Fprintf(r.Out, "::error file=%s::%s\n", escapeProperty(path), escapeData(err.Error()))
			return
		}
		fmt.Fprintf(r.Out, "::error::%s\n", escapeData(err.Error()))
		return
	}
	fmt.Fprintf(r.Out, "%s %v\n", i18n.T("error:"), err)
}

// Summary writes the total number of findings and a per-language breakdown.
func (r *Reporter) Summary(fs []xcstrings.MissingTranslation) {
	if len(fs) == 0 {
		fmt.Fprintln(r.Out, i18n.T("All translations are complete."))
		return
	}

	counts := CountByLanguage(fs)
	fmt.Fprintln(r.Out)
	fmt.Fprintln(r.Out, headColor(i18n.N("%d missing translation", "%d missing translations", len(fs), len(fs))))
	for _, lc := range counts {
		fmt.Fprintf(r.Out, "  %-28s %d\n", langmeta.Label(lc.Lang), lc.Count)
	}
}

// LangCount is the number of findings that name a language.
type LangCount struct {
	Lang  string `json:"lang" yaml:"lang"`
	Count int    `json:"count" yaml:"count"`
}

// CountByLanguage counts findings per language, sorted by language code.
func CountByLanguage(fs []xcstrings.MissingTranslation) []LangCount {
	langs := lo.FlatMap(fs, func(f xcstrings.MissingTranslation, _ int) []string {
		return f.Languages
	})
	groups := lo.GroupBy(langs, func(lang string) string { return lang })

	keys := lo.Keys(groups)
	sort.Strings(keys)
	return lo.Map(keys, func(lang string, _ int) LangCount {
		return LangCount{Lang: lang, Count: len(groups[lang])}
	})
}

// ---------------------------------------------------------------------------
// Machine-readable output
// ---------------------------------------------------------------------------

// Document is the json/yaml report shape.
type Document struct {
	Missing    []xcstrings.MissingTranslation `json:"missing" yaml:"missing"`
	ByLanguage []LangCount                    `json:"byLanguage" yaml:"by_language"`
}

// Encode writes findings as json or yaml.
func Encode(w io.Writer, format string, fs []xcstrings.MissingTranslation) error {
	doc := Document{
		Missing:    fs,
		ByLanguage: CountByLanguage(fs),
	}
	if doc.Missing == nil {
		doc.Missing = []xcstrings.MissingTranslation{}
	}

	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}

// ---------------------------------------------------------------------------
// Workflow command escaping
// ---------------------------------------------------------------------------

var (
	dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string { return dataEscaper.Replace(s) }
func escapeProperty(s string) string { return propEscaper.Replace(s) }
