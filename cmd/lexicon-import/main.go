package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/textlens/internal/logging"
	"github.com/cognicore/textlens/pkg/textlens/config"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/lexicon"
	"github.com/cognicore/textlens/pkg/textlens/store"
	"github.com/cognicore/textlens/pkg/textlens/store/sqlite"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "lexicon-import:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lexicon-import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dbPath      = fs.String("db", "", "SQLite lexicon store (required)")
		yamlPath    = fs.String("lexicon", "", "YAML lexicon to import")
		wordList    = fs.String("wordlist", "", "Word list (class|word|...) to import")
		withDefault = fs.Bool("default", false, "Import the built-in lexicon")
		export      = fs.Bool("export", false, "Write the stored lexicon as YAML to stdout instead of importing")
		removeWord  = fs.String("remove-word", "", "Remove a class membership given as class|word")
		removeLemma = fs.String("remove-lemma", "", "Remove a lemma group")
		logLevel    = fs.String("log-level", "info", "Log level")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if *dbPath == "" {
		return fmt.Errorf("%w: -db required", internalerr.ErrInvalidConfig)
	}

	logger := logging.New(logging.Config{Level: *logLevel})
	logger.SetOutput(stderr)

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", *dbPath, err)
	}
	defer st.Close()

	if *export {
		lex, err := store.LoadLexicon(ctx, st)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(lex); err != nil {
			return err
		}
		return enc.Close()
	}

	if *removeWord != "" || *removeLemma != "" {
		return remove(ctx, st, logger, *removeWord, *removeLemma)
	}

	if !*withDefault && *yamlPath == "" && *wordList == "" {
		return fmt.Errorf("%w: nothing to import (use -default, -lexicon or -wordlist)", internalerr.ErrInvalidConfig)
	}

	lex := lexicon.New()
	if *withDefault {
		lex.Merge(lexicon.Default())
	}
	if *yamlPath != "" {
		fileLex, err := lexicon.LoadFromYAML(*yamlPath)
		if err != nil {
			return fmt.Errorf("%w: load %s: %v", internalerr.ErrInvalidConfig, *yamlPath, err)
		}
		lex.Merge(fileLex)
	}
	if *wordList != "" {
		list, err := config.LoadWordList(*wordList)
		if err != nil {
			return fmt.Errorf("%w: load %s: %v", internalerr.ErrInvalidConfig, *wordList, err)
		}
		list.Apply(lex)
	}

	if err := store.SaveLexicon(ctx, st, lex); err != nil {
		return err
	}

	s := lex.Stats()
	logger.WithFields(logrus.Fields{
		"db":      *dbPath,
		"words":   s.Words,
		"phrases": s.Phrases,
		"lemmas":  s.LemmaGroups,
		"forms":   s.Forms,
	}).Info("lexicon imported")
	return nil
}

func remove(ctx context.Context, st store.Store, logger logrus.FieldLogger, word, lemma string) error {
	if word != "" {
		class, w, ok := strings.Cut(word, "|")
		if !ok || strings.TrimSpace(w) == "" {
			return fmt.Errorf("%w: -remove-word wants class|word, got %q", internalerr.ErrInvalidConfig, word)
		}
		c, err := lexicon.ParseClass(class)
		if err != nil {
			return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
		}
		e := lexicon.Entry{Word: strings.ToLower(strings.TrimSpace(w)), Class: c}
		if err := st.DeleteEntry(ctx, e); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{"word": e.Word, "class": e.Class}).Info("entry removed")
	}
	if lemma != "" {
		lemma = strings.ToLower(strings.TrimSpace(lemma))
		if err := st.DeleteLemma(ctx, lemma); err != nil {
			return err
		}
		logger.WithField("lemma", lemma).Info("lemma removed")
	}
	return nil
}
