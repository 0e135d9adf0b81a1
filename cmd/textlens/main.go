package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/textlens/internal/extract"
	"github.com/cognicore/textlens/internal/logging"
	"github.com/cognicore/textlens/pkg/textlens"
	"github.com/cognicore/textlens/pkg/textlens/cards"
	"github.com/cognicore/textlens/pkg/textlens/config"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "textlens:", err)
		if errors.Is(err, internalerr.ErrInvalidInput) || errors.Is(err, internalerr.ErrInvalidConfig) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("textlens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		mode      = fs.String("mode", "all", "Analysis: semantic, style, stats or all")
		file      = fs.String("file", "", "Input file (default: stdin)")
		isHTML    = fs.Bool("html", false, "Treat input as HTML")
		lexPath   = fs.String("lexicon", "", "YAML lexicon merged over the default")
		wordList  = fs.String("wordlist", "", "Word list (class|word|...) merged last")
		lexDB     = fs.String("lexicon-db", "", "SQLite lexicon store")
		title     = fs.String("title", "", "Report title (default: input file name)")
		pretty    = fs.Bool("pretty", false, "Indent JSON output")
		logLevel  = fs.String("log-level", "warn", "Log level")
		logFormat = fs.String("log-format", "text", "Log format: text or json")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}

	kind := cards.Kind(*mode)
	switch kind {
	case cards.KindSemantic, cards.KindStyle, cards.KindStats, cards.KindAll:
	default:
		return fmt.Errorf("%w: unknown mode %q", internalerr.ErrInvalidConfig, *mode)
	}

	logger := logging.New(logging.Config{Level: *logLevel, Format: *logFormat})
	logger.SetOutput(stderr)

	text, err := readInput(*file, stdin)
	if err != nil {
		return err
	}
	if *isHTML {
		text = extract.String(text)
	}
	if *title == "" && *file != "" {
		*title = filepath.Base(*file)
	}

	comp, err := (&config.Loader{
		LexiconPath:  *lexPath,
		WordListPath: *wordList,
		LexiconDB:    *lexDB,
	}).Load(ctx)
	if err != nil {
		return err
	}
	defer comp.Close()

	analyzer := textlens.New(textlens.Options{Tagger: comp.Tagger, Logger: logger})
	parts, err := analyze(ctx, analyzer, kind, text)
	if err != nil {
		return err
	}

	report := cards.New().Build(*title, parts)

	logger.WithFields(logrus.Fields{
		"report_id": report.ID,
		"kind":      report.Kind,
		"words":     comp.Lexicon.Stats().Words,
	}).Debug("report built")

	enc := json.NewEncoder(stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", internalerr.ErrInvalidInput, err)
	}
	return string(data), nil
}

func analyze(ctx context.Context, a *textlens.Analyzer, kind cards.Kind, text string) (cards.Parts, error) {
	var parts cards.Parts
	var err error

	if kind == cards.KindSemantic || kind == cards.KindAll {
		if parts.Semantic, err = a.AnalyzeSemantics(ctx, text); err != nil {
			return parts, err
		}
	}
	if kind == cards.KindStyle || kind == cards.KindAll {
		if parts.Style, err = a.AnalyzeStyle(ctx, text); err != nil {
			return parts, err
		}
	}
	if kind == cards.KindStats || kind == cards.KindAll {
		if parts.Stats, err = a.AnalyzeText(ctx, text); err != nil {
			return parts, err
		}
	}
	return parts, nil
}
