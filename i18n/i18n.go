// Package i18n translates xcstatus's own user-facing messages.
//
// It wraps gotext with T() and N() helpers. Catalogs are embedded from
// locales/{lang}/LC_MESSAGES/xcstatus.po and selected once by Init().
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for xcstatus.
const domain = "xcstatus"

var po *gotext.Locale

// Init selects the message language. If lang is empty it is detected from
// LANGUAGE, LC_ALL, LC_MESSAGES and LANG, in GNU gettext order.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage(os.Getenv)
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates msgid, returning it unchanged when no translation exists.
// Extra arguments are applied as Printf-style verbs.
func T(msgid string, vars ...any) string {
	if po == nil {
		return sprintf(msgid, vars...)
	}
	return po.Get(msgid, vars...)
}

// N translates a message with plural forms.
func N(singular, plural string, n int, vars ...any) string {
	if po == nil {
		if n == 1 {
			return sprintf(singular, vars...)
		}
		return sprintf(plural, vars...)
	}
	return po.GetN(singular, plural, n, vars...)
}

func sprintf(format string, vars ...any) string {
	return gotext.Printf(format, vars...)
}

func detectLanguage(getenv func(string) string) string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE is a colon-separated preference list.
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// ru_RU.UTF-8 -> ru_RU
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
