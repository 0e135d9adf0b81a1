package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/textlens/internal/logging"
	"github.com/cognicore/textlens/internal/server"
	"github.com/cognicore/textlens/pkg/textlens"
	"github.com/cognicore/textlens/pkg/textlens/config"
	"github.com/cognicore/textlens/pkg/textlens/lexicon"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.New(logging.Config{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Output: settings.LogOutput,
	})
	logger.WithFields(logrus.Fields{
		"env":        settings.Env,
		"log_level":  settings.LogLevel,
		"lexicon":    settings.Lexicon,
		"lexicon_db": settings.LexiconDB,
	}).Info("Starting textlens server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comp, err := (&config.Loader{
		LexiconPath: settings.Lexicon,
		LexiconDB:   settings.LexiconDB,
	}).Load(ctx)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load lexicon")
	}
	defer comp.Close()

	lexStats := comp.Lexicon.Stats()
	logger.WithFields(logrus.Fields{
		"words":   lexStats.Words,
		"phrases": lexStats.Phrases,
		"lemmas":  lexStats.LemmaGroups,
	}).Info("Lexicon loaded")

	var lex *lexicon.Lexicon
	if settings.LexiconRoutes {
		lex = comp.Lexicon
	}

	srv := server.New(server.Options{
		Analyzer:     textlens.New(textlens.Options{Tagger: comp.Tagger, Logger: logger}),
		Lexicon:      lex,
		Logger:       logger,
		MaxBodyBytes: settings.MaxBodyBytes,
		Timeout:      time.Duration(settings.HTTPTimeoutSeconds) * time.Second,
	})

	if err := srv.ListenAndServe(ctx, "0.0.0.0:"+settings.ServerPort); err != nil {
		logger.WithError(err).Error("Server stopped")
		comp.Close()
		os.Exit(1)
	}
}
