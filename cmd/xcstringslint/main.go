package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/lmittmann/tint"

	"github.com/lifei6671/xcstrings"
	"github.com/lifei6671/xcstrings/cmd/xcstringslint/checker"
	"github.com/lifei6671/xcstrings/internal/config"
	"github.com/lifei6671/xcstrings/internal/logging"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	defaultLocale := flag.String("default", cfg.DefaultLocale, "default locale the other locales are compared against; empty takes the .xcstrings sourceLanguage")
	pluralRules := flag.String("plural", cfg.PluralRules, "plural rules used for the render check: simple or cldr")
	failOnError := flag.Bool("fail", false, "exit with code 1 if any issue found")
	verbose := flag.Bool("v", false, "log debug output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		cfg.LogLevel = "debug"
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogNoColor)

	files := flag.Args()
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg.DefaultLocale = *defaultLocale
	cfg.PluralRules = *pluralRules
	if err := cfg.ValidateForFiles(files); err != nil {
		log.Error("invalid configuration", tint.Err(err))
		os.Exit(2)
	}
	log.Debug("checking catalog files", "files", files, "default", cfg.DefaultLocale, "plural", cfg.PluralRules)

	opts := append(cfg.EngineOptions(), xcstrings.WithLogger(log))
	res, err := checker.CheckFiles(cfg.DefaultLocale, files, opts...)
	if err != nil {
		log.Error("load catalog", tint.Err(err))
		os.Exit(1)
	}

	printResult(res)

	if *failOnError && res.HasIssues() {
		os.Exit(1)
	}
}

func printResult(res *checker.Result) {
	fmt.Println("=== XCSTRINGS CHECK RESULT ===")
	fmt.Println("Default language:", res.DefaultLocale)
	fmt.Println("Languages:", res.Languages)
	fmt.Println("Total keys:", len(res.AllKeys))

	for _, lang := range res.Languages {
		fmt.Printf("\n--- [%s] ---\n", lang)

		printList("Missing keys", res.MissingKeys[lang])
		printList("Redundant keys", res.RedundantKeys[lang])

		if errs := res.SyntaxErrors[lang]; len(errs) > 0 {
			fmt.Println("Syntax errors:")
			for _, key := range sortedKeys(errs) {
				fmt.Printf("  - %s: %v\n", key, errs[key])
			}
		} else {
			fmt.Println("Syntax errors: None")
		}

		if m := res.SignatureMismatches[lang]; len(m) > 0 {
			fmt.Println("Signature mismatches:")
			for _, key := range sortedKeys(m) {
				fmt.Printf("  - %s: %s\n", key, m[key])
			}
		} else {
			fmt.Println("Signature mismatches: None")
		}

		if errs := res.RenderErrors[lang]; len(errs) > 0 {
			fmt.Println("Render errors:")
			for _, key := range sortedKeys(errs) {
				fmt.Printf("  - %s: %v\n", key, errs[key])
			}
		} else {
			fmt.Println("Render errors: None")
		}
	}
}

func printList(title string, arr []string) {
	if len(arr) == 0 {
		fmt.Printf("%s: None\n", title)
		return
	}
	fmt.Printf("%s:\n", title)
	for _, k := range arr {
		fmt.Println("  -", k)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
