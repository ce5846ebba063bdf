// Package langmeta provides language display metadata (native names and
// emoji flags) for the language codes used in string catalogs.
package langmeta

import "strings"

// Meta describes language display metadata.
type Meta struct {
	Name string
	Flag string
}

// Registry contains canonical language metadata keyed by the codes Xcode
// writes into catalogs. Variants are resolved in Resolve().
var Registry = map[string]Meta{
	"ar":      {Name: "العربية", Flag: "🇸🇦"},
	"ca":      {Name: "Català", Flag: "🇪🇸"},
	"cs":      {Name: "Čeština", Flag: "🇨🇿"},
	"da":      {Name: "Dansk", Flag: "🇩🇰"},
	"de":      {Name: "Deutsch", Flag: "🇩🇪"},
	"el":      {Name: "Ελληνικά", Flag: "🇬🇷"},
	"en":      {Name: "English", Flag: "🇺🇸"},
	"en-AU":   {Name: "English (Australia)", Flag: "🇦🇺"},
	"en-GB":   {Name: "English (UK)", Flag: "🇬🇧"},
	"en-IN":   {Name: "English (India)", Flag: "🇮🇳"},
	"es":      {Name: "Español", Flag: "🇪🇸"},
	"es-419":  {Name: "Español (Latinoamérica)", Flag: "🇲🇽"},
	"es-MX":   {Name: "Español (México)", Flag: "🇲🇽"},
	"fi":      {Name: "Suomi", Flag: "🇫🇮"},
	"fr":      {Name: "Français", Flag: "🇫🇷"},
	"fr-CA":   {Name: "Français (Canada)", Flag: "🇨🇦"},
	"he":      {Name: "עברית", Flag: "🇮🇱"},
	"hi":      {Name: "हिन्दी", Flag: "🇮🇳"},
	"hr":      {Name: "Hrvatski", Flag: "🇭🇷"},
	"hu":      {Name: "Magyar", Flag: "🇭🇺"},
	"id":      {Name: "Bahasa Indonesia", Flag: "🇮🇩"},
	"it":      {Name: "Italiano", Flag: "🇮🇹"},
	"ja":      {Name: "日本語", Flag: "🇯🇵"},
	"ko":      {Name: "한국어", Flag: "🇰🇷"},
	"ms":      {Name: "Bahasa Melayu", Flag: "🇲🇾"},
	"nb":      {Name: "Norsk bokmål", Flag: "🇳🇴"},
	"nl":      {Name: "Nederlands", Flag: "🇳🇱"},
	"pl":      {Name: "Polski", Flag: "🇵🇱"},
	"pt-BR":   {Name: "Português (Brasil)", Flag: "🇧🇷"},
	"pt-PT":   {Name: "Português (Portugal)", Flag: "🇵🇹"},
	"ro":      {Name: "Română", Flag: "🇷🇴"},
	"ru":      {Name: "Русский", Flag: "🇷🇺"},
	"sk":      {Name: "Slovenčina", Flag: "🇸🇰"},
	"sv":      {Name: "Svenska", Flag: "🇸🇪"},
	"th":      {Name: "ไทย", Flag: "🇹🇭"},
	"tr":      {Name: "Türkçe", Flag: "🇹🇷"},
	"uk":      {Name: "Українська", Flag: "🇺🇦"},
	"vi":      {Name: "Tiếng Việt", Flag: "🇻🇳"},
	"zh-HK":   {Name: "繁體中文 (香港)", Flag: "🇭🇰"},
	"zh-Hans": {Name: "简体中文", Flag: "🇨🇳"},
	"zh-Hant": {Name: "繁體中文", Flag: "🇹🇼"},
}

// canonicalize normalizes separators and subtag case: language lower-case,
// script title-case, region upper-case.
func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	for i := 1; i < len(parts); i++ {
		switch p := parts[i]; {
		case len(p) == 4:
			parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
		case len(p) == 2:
			parts[i] = strings.ToUpper(p)
		}
	}
	return strings.Join(parts, "-")
}

// Resolve returns best-effort metadata for a language code, trying the
// exact code, its canonical form, and finally the bare language.
func Resolve(lang string) Meta {
	if m, ok := Registry[lang]; ok {
		return m
	}
	normalized := canonicalize(lang)
	if m, ok := Registry[normalized]; ok {
		return m
	}
	if base, _, found := strings.Cut(normalized, "-"); found {
		if m, ok := Registry[base]; ok {
			return m
		}
	}
	return Meta{Name: lang}
}

// Label formats a language code for display, e.g. "🇩🇪 de (Deutsch)".
func Label(lang string) string {
	m := Resolve(lang)
	label := lang
	if m.Name != "" && m.Name != lang {
		label += " (" + m.Name + ")"
	}
	if m.Flag != "" {
		label = m.Flag + " " + label
	}
	return label
}
