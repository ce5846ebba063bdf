// xcstatus — reports missing translations in Xcode string catalogs.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/minios-linux/xcstatus/config"
	"github.com/minios-linux/xcstatus/i18n"
	"github.com/minios-linux/xcstatus/langmeta"
	"github.com/minios-linux/xcstatus/report"
	"github.com/minios-linux/xcstatus/xcstrings"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	infoPrefix    = color.New(color.FgBlue).SprintFunc()
	successPrefix = color.New(color.FgGreen).SprintFunc()
	warningPrefix = color.New(color.FgYellow, color.Bold).SprintFunc()
	errorPrefix   = color.New(color.FgRed).SprintFunc()
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, infoPrefix("[INFO]")+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, successPrefix("[OK]")+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, warningPrefix("[WARN]")+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, errorPrefix("[ERROR]")+" "+format+"\n", args...)
}

// errReported is returned once the failure has already been printed.
var errReported = errors.New("reported")

// ---------------------------------------------------------------------------
// Root command (the check itself)
// ---------------------------------------------------------------------------

type checkOptions struct {
	langs          []string
	errorOnMissing bool
	format         string
	annotations    string
}

func newRootCmd() *cobra.Command {
	var (
		errorOnMissing bool
		format         string
		annotations    string
	)

	root := &cobra.Command{
		Use:   "xcstatus <languages> [--errorOnMissing]",
		Short: "Report missing translations in Xcode string catalogs",
		Long: `xcstatus — reports missing translations in Xcode string catalogs.

Scans the *.xcstrings files in the current directory (not recursively) and
lists every string that has no approved ("translated") translation in one of
the requested languages.

Languages are given as a comma-separated list, e.g. "fr,de,zh-Hans".

Under GitHub Actions findings are printed as workflow annotations.

Commands:
  status      Show per-catalog translation statistics
  version     Show version information`,
		Example: `  xcstatus fr,de
  xcstatus fr,de,ja --errorOnMissing
  xcstatus fr --format json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New(i18n.T("Usage error") + ": " +
					i18n.T("expected a comma-separated list of languages, e.g. %s", `"fr,de"`))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}

			opts := checkOptions{
				langs:          parseLanguages(args[0]),
				errorOnMissing: cfg.ErrorOnMissing,
				format:         cfg.Format,
				annotations:    cfg.Annotations,
			}
			if cmd.Flags().Changed("errorOnMissing") {
				opts.errorOnMissing = errorOnMissing
			}
			if cmd.Flags().Changed("format") {
				opts.format = format
			}
			if cmd.Flags().Changed("annotations") {
				opts.annotations = annotations
			}
			if err := config.ValidateFormat(opts.format); err != nil {
				return err
			}
			if err := config.ValidateAnnotations(opts.annotations); err != nil {
				return err
			}

			ci := config.DetectCI(os.Getenv)
			return runCheck(cmd.OutOrStdout(), cmd.ErrOrStderr(), dir, ci, opts)
		},
	}

	root.Flags().BoolVar(&errorOnMissing, "errorOnMissing", false, "Exit with status 1 when translations are missing")
	root.Flags().StringVar(&format, "format", config.FormatText, "Output format: text, json, yaml")
	root.Flags().StringVar(&annotations, "annotations", config.AnnotationsAuto, "Message style: auto, github, plain")

	root.AddCommand(
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			logError("%v", err)
		}
		os.Exit(1)
	}
}

// parseLanguages splits a comma-separated language list. Codes are not
// validated; blanks are dropped.
func parseLanguages(s string) []string {
	return lo.FilterMap(strings.Split(s, ","), func(lang string, _ int) (string, bool) {
		lang = strings.TrimSpace(lang)
		return lang, lang != ""
	})
}

// runCheck analyzes dir and prints the findings. It returns errReported
// when the run must fail after its output has been written.
func runCheck(stdout, stderr io.Writer, dir string, ci bool, opts checkOptions) error {
	mode := report.ModePlain
	if config.UseAnnotations(opts.annotations, ci) {
		mode = report.ModeGitHub
	}
	rep := &report.Reporter{Out: stdout, Mode: mode, Fail: opts.errorOnMissing}

	if len(opts.langs) == 0 {
		logWarning("%s", i18n.T("No languages requested; nothing to check."))
	}

	findings, err := xcstrings.AnalyzeDirectory(dir, opts.langs)
	if err != nil {
		errRep := &report.Reporter{Out: stderr, Mode: mode}
		if mode == report.ModeGitHub {
			errRep.Out = stdout
		}
		errRep.Error(err)
		return errReported
	}

	if opts.format != config.FormatText {
		if err := report.Encode(stdout, opts.format, findings); err != nil {
			return err
		}
	} else {
		rep.Findings(findings)
		rep.Summary(findings)
	}

	if len(findings) > 0 && opts.errorOnMissing {
		return errReported
	}
	return nil
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "xcstatus version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// status (read-only: per-catalog translation stats)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [languages]",
		Short: "Show per-catalog translation statistics",
		Long: `Show translation progress for every string catalog in the current
directory. Languages default to the "languages" list in .xcstatus.yaml, then
to every language found in the catalogs except the source language.
Does not modify any files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			var langs []string
			if len(args) == 1 {
				langs = parseLanguages(args[0])
			} else {
				langs = cfg.Languages
			}
			return runStatus(cmd.OutOrStdout(), dir, langs)
		},
	}
}

func runStatus(w io.Writer, dir string, langs []string) error {
	paths, err := xcstrings.Scan(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		logInfo("%s", i18n.T("No string catalogs found in %s", dir))
		return nil
	}

	catalogs := make([]*xcstrings.Catalog, 0, len(paths))
	for _, path := range paths {
		c, err := xcstrings.ParseFile(path)
		if err != nil {
			return err
		}
		catalogs = append(catalogs, c)
	}

	if len(langs) == 0 {
		langs = discoverLanguages(catalogs)
	}
	if len(langs) == 0 {
		logInfo("%s", i18n.T("No target languages found."))
		return nil
	}

	labels := lo.Map(langs, func(lang string, _ int) string { return langmeta.Label(lang) })
	width := langColumnWidth(labels)
	complete := true
	for _, c := range catalogs {
		fmt.Fprintf(w, "\n%s (%s)\n", color.New(color.FgBlue).Sprint(c.Path),
			i18n.N("%d string", "%d strings", len(c.Strings), len(c.Strings)))
		fmt.Fprintln(w, strings.Repeat("─", 60))
		for i, st := range c.Stats(langs) {
			if st.Untranslated() > 0 {
				complete = false
			}
			fmt.Fprintf(w, "  %-*s %s  %d/%d\n", width, labels[i], progressBar(st.Percent(), 20), st.Translated, st.Total)
		}
	}
	fmt.Fprintln(w)

	if complete {
		logSuccess("%s", i18n.T("All translations are complete."))
	}
	return nil
}

// discoverLanguages returns every language used by the catalogs, without
// their source languages.
func discoverLanguages(catalogs []*xcstrings.Catalog) []string {
	langs := lo.Uniq(lo.FlatMap(catalogs, func(c *xcstrings.Catalog, _ int) []string {
		return c.Languages()
	}))
	sources := lo.FilterMap(catalogs, func(c *xcstrings.Catalog, _ int) (string, bool) {
		return c.SourceLanguage, c.SourceLanguage != ""
	})
	langs = lo.Filter(langs, func(lang string, _ int) bool {
		return !lo.Contains(sources, lang)
	})
	sort.Strings(langs)
	return langs
}

func langColumnWidth(langs []string) int {
	width := 4
	for _, lang := range langs {
		if len(lang) > width {
			width = len(lang)
		}
	}
	return width
}

func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100

	c := color.New(color.FgGreen)
	switch {
	case percent < 50:
		c = color.New(color.FgRed)
	case percent < 100:
		c = color.New(color.FgYellow)
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return c.Sprint(bar) + fmt.Sprintf(" %3d%%", percent)
}
