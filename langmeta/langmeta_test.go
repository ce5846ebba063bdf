package langmeta

import "testing"

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "pt_br", want: "pt-BR"},
		{in: " EN-us ", want: "en-US"},
		{in: "zh-hans", want: "zh-Hans"},
		{in: "ZH_HANT_tw", want: "zh-Hant-TW"},
		{in: "es-419", want: "es-419"},
		{in: "ru", want: "ru"},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		got := canonicalize(tc.in)
		if got != tc.want {
			t.Fatalf("canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		got := Resolve("en-GB")
		if got.Name != "English (UK)" || got.Flag == "" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("normalized match", func(t *testing.T) {
		got := Resolve("zh_hans")
		if got.Name != "简体中文" || got.Flag == "" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("base fallback", func(t *testing.T) {
		got := Resolve("fr-LU")
		if got.Name != "Français" || got.Flag != "🇫🇷" {
			t.Fatalf("unexpected fallback result: %#v", got)
		}
	})

	t.Run("unknown passthrough", func(t *testing.T) {
		got := Resolve("zz-ZZ")
		if got.Name != "zz-ZZ" || got.Flag != "" {
			t.Fatalf("unexpected unknown result: %#v", got)
		}
	})
}

func TestLabel(t *testing.T) {
	if got := Label("de"); got != "🇩🇪 de (Deutsch)" {
		t.Fatalf("Label(de) = %q", got)
	}
	if got := Label("tlh"); got != "tlh" {
		t.Fatalf("Label(tlh) = %q, want passthrough", got)
	}
	if got := Label("fr_LU"); got != "🇫🇷 fr_LU (Français)" {
		t.Fatalf("Label(fr_LU) = %q", got)
	}
}
